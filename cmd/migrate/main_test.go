package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitIDs(t *testing.T) {
	assert.Equal(t, []string{"LGR-A", "AFD-500"}, splitIDs(" LGR-A, ,AFD-500,"))
	assert.Empty(t, splitIDs(""))
}
