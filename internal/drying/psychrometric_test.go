package drying

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drying-engine/internal/models"
)

// TestAssess_Calibration reproduces the reference calibration point
func TestAssess_Calibration(t *testing.T) {
	reading, err := Assess(DefaultConfig().Psychrometrics, 25, 60, models.SystemClosed)
	require.NoError(t, err)

	assert.Equal(t, 33.6, reading.DryingIndex)
	assert.Equal(t, models.StatusFair, reading.Status)
	assert.Equal(t, models.SystemClosed, reading.SystemType)
	assert.Equal(t, 25.0, reading.TemperatureCelsius)
	assert.Equal(t, 60.0, reading.RelativeHumidityPercent)
}

func TestAssess(t *testing.T) {
	cfg := DefaultConfig().Psychrometrics

	tests := []struct {
		name        string
		temperature float64
		humidity    float64
		system      models.SystemType
		wantIndex   float64
		wantStatus  models.DryingStatus
	}{
		{"open dries faster than closed", 25, 60, models.SystemOpen, 48, models.StatusGood},
		{"reference temperature", 20, 50, models.SystemOpen, 50, models.StatusGood},
		{"saturated air", 25, 100, models.SystemOpen, 0, models.StatusPoor},
		{"hot and dry", 35, 20, models.SystemOpen, 128, models.StatusExcellent},
		{"cold and damp", 5, 85, models.SystemClosed, 4.2, models.StatusPoor},
		{"temperature factor floors at zero", -10, 10, models.SystemOpen, 0, models.StatusPoor},
		{"bone dry at the upper bound", 60, 0, models.SystemClosed, 182, models.StatusExcellent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reading, err := Assess(cfg, tt.temperature, tt.humidity, tt.system)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantIndex, reading.DryingIndex, 1e-9)
			assert.Equal(t, tt.wantStatus, reading.Status)
		})
	}
}

func TestAssess_OutOfRange(t *testing.T) {
	cfg := DefaultConfig().Psychrometrics

	tests := []struct {
		name        string
		temperature float64
		humidity    float64
		wantField   string
	}{
		{"humidity above 100", 20, 100.1, "relative_humidity_percent"},
		{"humidity negative", 20, -1, "relative_humidity_percent"},
		{"humidity NaN", 20, math.NaN(), "relative_humidity_percent"},
		{"too cold", -10.5, 50, "temperature_celsius"},
		{"too hot", 61, 50, "temperature_celsius"},
		{"temperature NaN", math.NaN(), 50, "temperature_celsius"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Assess(cfg, tt.temperature, tt.humidity, models.SystemOpen)

			var rangeErr *models.OutOfRangeError
			require.ErrorAs(t, err, &rangeErr)
			assert.Equal(t, tt.wantField, rangeErr.Field)
		})
	}
}

func TestAssess_UnknownSystemType(t *testing.T) {
	_, err := Assess(DefaultConfig().Psychrometrics, 20, 50, models.SystemType("VENTED"))

	var stErr *models.InvalidSystemTypeError
	require.ErrorAs(t, err, &stErr)
}

func TestClassify_Thresholds(t *testing.T) {
	cfg := DefaultConfig().Psychrometrics

	assert.Equal(t, models.StatusPoor, cfg.Classify(19.9))
	assert.Equal(t, models.StatusFair, cfg.Classify(20))
	assert.Equal(t, models.StatusFair, cfg.Classify(39.9))
	assert.Equal(t, models.StatusGood, cfg.Classify(40))
	assert.Equal(t, models.StatusGood, cfg.Classify(59.9))
	assert.Equal(t, models.StatusExcellent, cfg.Classify(60))
}

// TestAssess_Retuned checks that thresholds come from configuration
func TestAssess_Retuned(t *testing.T) {
	cfg := DefaultConfig().Psychrometrics
	cfg.FairThreshold = 35
	cfg.GoodThreshold = 50
	cfg.ExcellentThreshold = 70

	reading, err := Assess(cfg, 25, 60, models.SystemClosed)
	require.NoError(t, err)
	assert.Equal(t, 33.6, reading.DryingIndex)
	assert.Equal(t, models.StatusPoor, reading.Status)
}
