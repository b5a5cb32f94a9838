package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLogger(level LogLevel) (*StructuredLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := NewStructuredLogger("drying-test", "0.0.1", level)
	logger.SetOutput(buf)
	return logger, buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()

	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
		entries = append(entries, entry)
	}
	return entries
}

func TestStructuredLogger_Info(t *testing.T) {
	logger, buf := captureLogger(InfoLevel)

	ctx := WithRequestID(context.Background(), "req-123")
	logger.Info(ctx, "[ASSESS_COMPLETE] Assessment completed", Fields{
		"areas":    3,
		"severity": "ADVISORY",
	})

	entries := decodeLines(t, buf)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "[ASSESS_COMPLETE] Assessment completed", entry["message"])
	assert.Equal(t, "drying-test", entry["service"])
	assert.Equal(t, "0.0.1", entry["version"])
	assert.Equal(t, "req-123", entry["request_id"])
	assert.Contains(t, entry, "timestamp")

	fields, ok := entry["fields"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(3), fields["areas"])
	assert.Equal(t, "ADVISORY", fields["severity"])
}

func TestStructuredLogger_LevelFiltering(t *testing.T) {
	logger, buf := captureLogger(WarnLevel)

	logger.Debug(context.Background(), "debug", nil)
	logger.Info(context.Background(), "info", nil)
	logger.Warn(context.Background(), "warn", nil)
	logger.Error(context.Background(), "error", Fields{"op": "reload"}, errors.New("boom"))

	entries := decodeLines(t, buf)
	require.Len(t, entries, 2)
	assert.Equal(t, "WARN", entries[0]["level"])
	assert.Equal(t, "ERROR", entries[1]["level"])
	assert.Equal(t, "boom", entries[1]["error"])

	buf.Reset()
	logger.SetLevel(DebugLevel)
	logger.Debug(context.Background(), "now visible", nil)
	assert.Len(t, decodeLines(t, buf), 1)
}

func TestContextLogger_MergeFields(t *testing.T) {
	logger, buf := captureLogger(DebugLevel)

	scoped := logger.WithFields(Fields{"component": "catalog", "source": "file"})
	scoped.Info(context.Background(), "loaded", Fields{"source": "postgres", "count": 9})

	entries := decodeLines(t, buf)
	require.Len(t, entries, 1)

	fields := entries[0]["fields"].(map[string]interface{})
	assert.Equal(t, "catalog", fields["component"])
	assert.Equal(t, "postgres", fields["source"], "call fields override scoped fields")
	assert.Equal(t, float64(9), fields["count"])
	assert.NotContains(t, entries[0], "request_id")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DebugLevel, ParseLevel("debug"))
	assert.Equal(t, WarnLevel, ParseLevel("WARNING"))
	assert.Equal(t, ErrorLevel, ParseLevel(" error "))
	assert.Equal(t, InfoLevel, ParseLevel("verbose"))
	assert.Equal(t, "FATAL", FatalLevel.String())
}
