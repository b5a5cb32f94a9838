package drying

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drying-engine/internal/catalog"
	"drying-engine/internal/models"
)

func referenceInput() AssessmentInput {
	return AssessmentInput{
		Areas:      referenceAreas(),
		WaterClass: models.Class2,
		Ambient: Ambient{
			TemperatureCelsius:      25,
			RelativeHumidityPercent: 60,
			SystemType:              models.SystemClosed,
		},
		Selections:   referenceLoadout(),
		DurationDays: 4,
	}
}

func newReferenceEngine(t *testing.T) *Engine {
	t.Helper()
	engine, err := New(DefaultConfig(), catalog.Reference())
	require.NoError(t, err)
	return engine
}

func TestEngine_Run(t *testing.T) {
	result, err := newReferenceEngine(t).Run(referenceInput())
	require.NoError(t, err)

	assert.InDelta(t, 123.525, result.TotalVolumeCubicMetres, 1e-9)
	assert.InDelta(t, 34.3875, result.TotalAffectedAreaSquareMetres, 1e-9)
	assert.Equal(t, 1235, result.WaterRemovalTargetLitresPerDay)
	assert.Equal(t, 3, result.MinAirMoversRequired)
	assert.InDelta(t, 225.0, result.AchievedCapacityLitresPerDay, 1e-9)
	assert.Equal(t, 16, result.AchievedAirMoverUnits)
	assert.Equal(t, "460.00", result.TotalDailyCost.StringFixed(2))
	assert.Equal(t, "1840.00", result.TotalCost.StringFixed(2))
	assert.InDelta(t, 41.05, result.TotalAmps, 1e-9)
	assert.Equal(t, models.SeverityAdvisory, result.Severity)
	assert.False(t, result.CapacitySufficient)

	require.NotNil(t, result.Psychrometrics)
	assert.Equal(t, 33.6, result.Psychrometrics.DryingIndex)
	assert.Equal(t, models.StatusFair, result.Psychrometrics.Status)
}

// TestEngine_Deterministic checks that identical input gives identical output
func TestEngine_Deterministic(t *testing.T) {
	engine := newReferenceEngine(t)

	first, err := engine.Run(referenceInput())
	require.NoError(t, err)
	second, err := engine.Run(referenceInput())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

// TestEngine_Concurrent runs many reports against one engine in parallel
func TestEngine_Concurrent(t *testing.T) {
	engine := newReferenceEngine(t)
	want, err := engine.Run(referenceInput())
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]models.DryingAssessmentResult, 32)
	errs := make([]error, len(results))

	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = engine.Run(referenceInput())
		}(i)
	}
	wg.Wait()

	for i := range results {
		require.NoError(t, errs[i])
		assert.Equal(t, want, results[i])
	}
}

func TestEngine_Errors(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(in *AssessmentInput)
		wantKind string
	}{
		{"empty scope", func(in *AssessmentInput) { in.Areas = nil }, "empty_scope"},
		{"zero duration", func(in *AssessmentInput) { in.DurationDays = 0 }, "invalid_duration"},
		{"unknown class", func(in *AssessmentInput) { in.WaterClass = 9 }, "invalid_class"},
		{"humidity out of range", func(in *AssessmentInput) { in.Ambient.RelativeHumidityPercent = 140 }, "out_of_range"},
		{"missing system type", func(in *AssessmentInput) { in.Ambient.SystemType = "" }, "invalid_system_type"},
		{"unknown equipment", func(in *AssessmentInput) {
			in.Selections[0].EquipmentID = "LGR-Z"
		}, "unknown_equipment"},
		{"invalid area", func(in *AssessmentInput) { in.Areas[2].Height = -2.7 }, "invalid_area"},
	}

	engine := newReferenceEngine(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := referenceInput()
			tt.mutate(&in)

			_, err := engine.Run(in)
			require.Error(t, err)
			assert.Equal(t, tt.wantKind, models.ErrorKind(err))
		})
	}
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ReferenceAirflowPerUnit = 0

	_, err := New(cfg, catalog.Reference())
	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "reference_airflow_per_unit", validationErr.Field)
}

// TestEngine_ConfigIsolation checks that retuning a copy leaves the engine alone
func TestEngine_ConfigIsolation(t *testing.T) {
	engine := newReferenceEngine(t)

	cfg := engine.Config()
	cfg.ClassMultipliers[1] = 3
	cfg.BaseRate = 1

	result, err := engine.Run(referenceInput())
	require.NoError(t, err)
	assert.Equal(t, 1235, result.WaterRemovalTargetLitresPerDay)
	assert.Equal(t, 1.0, engine.Config().ClassMultipliers[1])
}
