package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector provides application metrics collection
type Collector struct {
	// API Metrics
	APIRequestsTotal   *prometheus.CounterVec
	APIRequestDuration *prometheus.HistogramVec
	APIErrorsTotal     *prometheus.CounterVec

	// Assessment Metrics
	AssessmentsTotal       *prometheus.CounterVec
	AssessmentErrorsTotal  *prometheus.CounterVec
	AssessmentDuration     prometheus.Histogram
	WaterRemovalTarget     prometheus.Histogram
	EstimatedCostTotal     prometheus.Counter
	PsychrometricsByStatus *prometheus.CounterVec

	// Catalog Metrics
	CatalogEquipmentCount prometheus.Gauge
	CatalogReloadsTotal   *prometheus.CounterVec

	// Database Metrics
	DBQueryDuration  *prometheus.HistogramVec
	DBConnectionPool *prometheus.GaugeVec
	DBErrorsTotal    *prometheus.CounterVec
}

// NewCollector creates a new metrics collector registered on reg. Pass
// prometheus.DefaultRegisterer for the process-wide /metrics endpoint, or a
// fresh registry in tests.
func NewCollector(namespace string, reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		APIRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_requests_total",
				Help:      "Total number of API requests by endpoint, method, and status",
			},
			[]string{"endpoint", "method", "status"},
		),

		APIRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "api_request_duration_seconds",
				Help:      "API request duration in seconds",
				Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.02, 0.05, 0.1, 0.2, 0.5, 1.0},
			},
			[]string{"endpoint"},
		),

		APIErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "api_errors_total",
				Help:      "Total number of API errors by type",
			},
			[]string{"error_type", "endpoint"},
		),

		AssessmentsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "assessments_total",
				Help:      "Completed drying assessments by capacity severity",
			},
			[]string{"severity"},
		),

		AssessmentErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "assessment_errors_total",
				Help:      "Rejected drying assessments by error kind",
			},
			[]string{"error_kind"},
		),

		AssessmentDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "assessment_duration_seconds",
				Help:      "Duration of one assessment pipeline run in seconds",
				Buckets:   []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
			},
		),

		WaterRemovalTarget: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "water_removal_target_litres_per_day",
				Help:      "Distribution of computed water removal targets",
				Buckets:   []float64{100, 250, 500, 1000, 2000, 5000, 10000},
			},
		),

		EstimatedCostTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "estimated_equipment_cost_total",
				Help:      "Sum of total equipment cost across completed assessments",
			},
		),

		PsychrometricsByStatus: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "psychrometric_readings_total",
				Help:      "Psychrometric readings by drying status",
			},
			[]string{"status"},
		),

		CatalogEquipmentCount: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "catalog_equipment_count",
				Help:      "Number of entries in the active equipment catalog",
			},
		),

		CatalogReloadsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "catalog_reloads_total",
				Help:      "Equipment catalog reloads by source and result",
			},
			[]string{"source", "result"},
		),

		DBQueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "db_query_duration_seconds",
				Help:      "Catalog store statement duration in seconds by query type",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 10),
			},
			[]string{"query_type"},
		),

		DBConnectionPool: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "db_connection_pool",
				Help:      "Catalog store connections by state (in_use, idle, total)",
			},
			[]string{"state"},
		),

		DBErrorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "db_errors_total",
				Help:      "Failed catalog store statements by query type",
			},
			[]string{"query_type"},
		),
	}
}

// Timer provides timing functionality for operations
type Timer struct {
	start    time.Time
	observer prometheus.Observer
}

// NewTimer creates a new timer
func (c *Collector) NewTimer(histogram prometheus.Observer) *Timer {
	return &Timer{
		start:    time.Now(),
		observer: histogram,
	}
}

// ObserveDuration records the elapsed time since timer creation
func (t *Timer) ObserveDuration() time.Duration {
	duration := time.Since(t.start)
	if t.observer != nil {
		t.observer.Observe(duration.Seconds())
	}
	return duration
}

// RecordAPIRequest increments API request counter
func (c *Collector) RecordAPIRequest(endpoint, method, status string) {
	c.APIRequestsTotal.WithLabelValues(endpoint, method, status).Inc()
}

// RecordAPIError increments API error counter
func (c *Collector) RecordAPIError(errorType, endpoint string) {
	c.APIErrorsTotal.WithLabelValues(errorType, endpoint).Inc()
}

// RecordAssessment records one completed assessment
func (c *Collector) RecordAssessment(severity string, removalTarget int, totalCost float64) {
	c.AssessmentsTotal.WithLabelValues(severity).Inc()
	c.WaterRemovalTarget.Observe(float64(removalTarget))
	c.EstimatedCostTotal.Add(totalCost)
}

// RecordAssessmentError increments the rejected assessment counter
func (c *Collector) RecordAssessmentError(errorKind string) {
	c.AssessmentErrorsTotal.WithLabelValues(errorKind).Inc()
}

// RecordCatalogReload records a catalog reload attempt and the resulting size
func (c *Collector) RecordCatalogReload(source string, size int, err error) {
	if err != nil {
		c.CatalogReloadsTotal.WithLabelValues(source, "error").Inc()
		return
	}
	c.CatalogReloadsTotal.WithLabelValues(source, "success").Inc()
	c.CatalogEquipmentCount.Set(float64(size))
}

// RecordDBError counts one failed statement
func (c *Collector) RecordDBError(queryType string) {
	c.DBErrorsTotal.WithLabelValues(queryType).Inc()
}

// UpdateDBConnectionPool publishes one sample of the pool's connection counts
func (c *Collector) UpdateDBConnectionPool(inUse, idle, total int) {
	for state, n := range map[string]int{"in_use": inUse, "idle": idle, "total": total} {
		c.DBConnectionPool.WithLabelValues(state).Set(float64(n))
	}
}
