package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestCollector_RecordAssessment(t *testing.T) {
	c := NewCollector("drying_test", prometheus.NewRegistry())

	c.RecordAssessment("ADVISORY", 1235, 1840)
	c.RecordAssessment("ADVISORY", 500, 60.5)
	c.RecordAssessment("OK", 100, 10)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.AssessmentsTotal.WithLabelValues("ADVISORY")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.AssessmentsTotal.WithLabelValues("OK")))
	assert.InDelta(t, 1910.5, testutil.ToFloat64(c.EstimatedCostTotal), 1e-9)
	assert.Equal(t, 1, testutil.CollectAndCount(c.WaterRemovalTarget))
}

func TestCollector_RecordCatalogReload(t *testing.T) {
	c := NewCollector("drying_test", prometheus.NewRegistry())

	c.RecordCatalogReload("file", 9, nil)
	assert.Equal(t, 9.0, testutil.ToFloat64(c.CatalogEquipmentCount))

	c.RecordCatalogReload("file", 0, errors.New("parse failed"))
	assert.Equal(t, 9.0, testutil.ToFloat64(c.CatalogEquipmentCount), "failed reload keeps the previous size")
	assert.Equal(t, 1.0, testutil.ToFloat64(c.CatalogReloadsTotal.WithLabelValues("file", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.CatalogReloadsTotal.WithLabelValues("file", "success")))
}

func TestCollector_SeparateRegistries(t *testing.T) {
	// Two collectors with the same namespace must not collide on distinct registries.
	a := NewCollector("drying_test", prometheus.NewRegistry())
	b := NewCollector("drying_test", prometheus.NewRegistry())

	a.RecordAssessmentError("empty_scope")
	assert.Equal(t, 1.0, testutil.ToFloat64(a.AssessmentErrorsTotal.WithLabelValues("empty_scope")))
	assert.Equal(t, 0.0, testutil.ToFloat64(b.AssessmentErrorsTotal.WithLabelValues("empty_scope")))
}

func TestTimer_ObserveDuration(t *testing.T) {
	c := NewCollector("drying_test", prometheus.NewRegistry())

	timer := c.NewTimer(c.AssessmentDuration)
	d := timer.ObserveDuration()
	assert.GreaterOrEqual(t, int64(d), int64(0))
	assert.Equal(t, 1, testutil.CollectAndCount(c.AssessmentDuration))
}
