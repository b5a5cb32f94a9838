package drying

import (
	"math"

	"drying-engine/internal/models"
)

// Assess classifies ambient drying potential from one environmental sample.
//
// A CLOSED chamber gets a lower multiplier than an OPEN one for identical
// readings because it has less make-up air.
func Assess(cfg PsychrometricConfig, temperatureCelsius, relativeHumidityPercent float64, system models.SystemType) (models.PsychrometricReading, error) {
	if math.IsNaN(temperatureCelsius) || temperatureCelsius < cfg.MinTemperatureCelsius || temperatureCelsius > cfg.MaxTemperatureCelsius {
		return models.PsychrometricReading{}, &models.OutOfRangeError{
			Field: "temperature_celsius",
			Value: temperatureCelsius,
			Min:   cfg.MinTemperatureCelsius,
			Max:   cfg.MaxTemperatureCelsius,
		}
	}

	if math.IsNaN(relativeHumidityPercent) || relativeHumidityPercent < 0 || relativeHumidityPercent > 100 {
		return models.PsychrometricReading{}, &models.OutOfRangeError{
			Field: "relative_humidity_percent",
			Value: relativeHumidityPercent,
			Min:   0,
			Max:   100,
		}
	}

	multiplier, err := cfg.systemMultiplier(system)
	if err != nil {
		return models.PsychrometricReading{}, err
	}

	deficit := math.Max(0, cfg.SaturationReferencePercent-relativeHumidityPercent)
	temperatureFactor := math.Max(0, 1+(temperatureCelsius-cfg.ReferenceTemperatureCelsius)*cfg.TemperatureWeight)
	index := roundTo(deficit*temperatureFactor*multiplier, 1)

	return models.PsychrometricReading{
		TemperatureCelsius:      temperatureCelsius,
		RelativeHumidityPercent: relativeHumidityPercent,
		SystemType:              system,
		DryingIndex:             index,
		Status:                  cfg.Classify(index),
	}, nil
}

// Classify maps a drying index onto a status using the configured thresholds
func (cfg PsychrometricConfig) Classify(index float64) models.DryingStatus {
	switch {
	case index < cfg.FairThreshold:
		return models.StatusPoor
	case index < cfg.GoodThreshold:
		return models.StatusFair
	case index < cfg.ExcellentThreshold:
		return models.StatusGood
	default:
		return models.StatusExcellent
	}
}

func (cfg PsychrometricConfig) systemMultiplier(system models.SystemType) (float64, error) {
	switch system {
	case models.SystemOpen:
		return cfg.OpenSystemMultiplier, nil
	case models.SystemClosed:
		return cfg.ClosedSystemMultiplier, nil
	default:
		return 0, &models.InvalidSystemTypeError{Value: string(system)}
	}
}

// roundTo rounds v half away from zero to the given number of decimals
func roundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}
