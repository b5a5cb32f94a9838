package drying

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"sigs.k8s.io/yaml"

	"drying-engine/internal/models"
)

// PsychrometricConfig holds the assessor's weighting and thresholds.
//
// The drying index is
//
//	(SaturationReferencePercent - RH) × max(0, 1 + (T - ReferenceTemperatureCelsius) × TemperatureWeight) × systemMultiplier
//
// rounded to one decimal, and classified as POOR below FairThreshold, FAIR
// below GoodThreshold, GOOD below ExcellentThreshold and EXCELLENT otherwise.
type PsychrometricConfig struct {
	MinTemperatureCelsius       float64 `json:"min_temperature_celsius"`
	MaxTemperatureCelsius       float64 `json:"max_temperature_celsius"`
	SaturationReferencePercent  float64 `json:"saturation_reference_percent"`
	ReferenceTemperatureCelsius float64 `json:"reference_temperature_celsius"`
	TemperatureWeight           float64 `json:"temperature_weight"`
	OpenSystemMultiplier        float64 `json:"open_system_multiplier"`
	ClosedSystemMultiplier      float64 `json:"closed_system_multiplier"`
	FairThreshold               float64 `json:"fair_threshold"`
	GoodThreshold               float64 `json:"good_threshold"`
	ExcellentThreshold          float64 `json:"excellent_threshold"`
}

// ClassTable holds one value per water class, Class 1 first
type ClassTable [models.MaxWaterClass]float64

// UnmarshalJSON requires exactly one entry per water class
func (t *ClassTable) UnmarshalJSON(data []byte) error {
	var values []float64
	if err := json.Unmarshal(data, &values); err != nil {
		return err
	}
	if len(values) != len(t) {
		return &models.ValidationError{
			Field:   "class table",
			Value:   fmt.Sprint(values),
			Message: fmt.Sprintf("expected %d entries, one per water class, got %d", len(t), len(values)),
		}
	}
	copy(t[:], values)
	return nil
}

// Config bundles every tunable constant of the engine. It is a plain value:
// per-class tables are fixed-size arrays, so copying a Config copies all of
// it and no two callers can observe each other's changes. Retuning means
// building a new Config.
type Config struct {
	// BaseRate is litres of removal per cubic metre, before UnitScale
	BaseRate  float64 `json:"base_rate"`
	UnitScale float64 `json:"unit_scale"`

	// ClassMultipliers and AreaPerAirMover are indexed by WaterClass.Index()
	ClassMultipliers ClassTable `json:"class_multipliers"`
	AreaPerAirMover  ClassTable `json:"area_per_air_mover_m2"`

	// ReferenceAirflowPerUnit is the rated airflow of one baseline air mover.
	// Summed airflow is divided by it to express a mixed fleet as an
	// equivalent count of baseline movers.
	ReferenceAirflowPerUnit float64 `json:"reference_airflow_per_unit"`

	// CircuitAmps × CircuitLoadFactor is the usable draw of one circuit
	CircuitAmps       float64 `json:"circuit_amps"`
	CircuitLoadFactor float64 `json:"circuit_load_factor"`

	Psychrometrics PsychrometricConfig `json:"psychrometrics"`
}

// DefaultConfig returns the reference configuration
func DefaultConfig() Config {
	return Config{
		BaseRate:                0.01,
		UnitScale:               1000,
		ClassMultipliers:        ClassTable{0.75, 1.0, 1.25, 1.5},
		AreaPerAirMover:         ClassTable{18, 14, 11, 9},
		ReferenceAirflowPerUnit: 1500,
		CircuitAmps:             15,
		CircuitLoadFactor:       0.8,
		Psychrometrics: PsychrometricConfig{
			MinTemperatureCelsius:       -10,
			MaxTemperatureCelsius:       60,
			SaturationReferencePercent:  100,
			ReferenceTemperatureCelsius: 20,
			TemperatureWeight:           0.04,
			OpenSystemMultiplier:        1.0,
			ClosedSystemMultiplier:      0.7,
			FairThreshold:               20,
			GoodThreshold:               40,
			ExcellentThreshold:          60,
		},
	}
}

// ClassMultiplier returns the removal-rate multiplier for class
func (c Config) ClassMultiplier(class models.WaterClass) (float64, error) {
	idx, err := class.Index()
	if err != nil {
		return 0, err
	}
	return c.ClassMultipliers[idx], nil
}

// AirMoverArea returns the square metres one air mover covers for class
func (c Config) AirMoverArea(class models.WaterClass) (float64, error) {
	idx, err := class.Index()
	if err != nil {
		return 0, err
	}
	return c.AreaPerAirMover[idx], nil
}

// Validate checks that every constant is usable
func (c Config) Validate() error {
	type constant struct {
		field string
		value float64
	}

	positives := []constant{
		{"base_rate", c.BaseRate},
		{"unit_scale", c.UnitScale},
		{"reference_airflow_per_unit", c.ReferenceAirflowPerUnit},
		{"circuit_amps", c.CircuitAmps},
		{"circuit_load_factor", c.CircuitLoadFactor},
		{"psychrometrics.saturation_reference_percent", c.Psychrometrics.SaturationReferencePercent},
		{"psychrometrics.open_system_multiplier", c.Psychrometrics.OpenSystemMultiplier},
		{"psychrometrics.closed_system_multiplier", c.Psychrometrics.ClosedSystemMultiplier},
	}
	for i := range c.ClassMultipliers {
		positives = append(positives,
			constant{fmt.Sprintf("class_multipliers[%d]", i), c.ClassMultipliers[i]},
			constant{fmt.Sprintf("area_per_air_mover_m2[%d]", i), c.AreaPerAirMover[i]},
		)
	}

	for _, p := range positives {
		if !(p.value > 0) || math.IsInf(p.value, 0) {
			return &models.ValidationError{Field: p.field, Value: fmt.Sprint(p.value), Message: "must be a positive number"}
		}
	}

	if c.CircuitLoadFactor > 1 {
		return &models.ValidationError{Field: "circuit_load_factor", Value: fmt.Sprint(c.CircuitLoadFactor), Message: "must not exceed 1"}
	}

	p := c.Psychrometrics
	if p.MinTemperatureCelsius >= p.MaxTemperatureCelsius {
		return &models.ValidationError{Field: "psychrometrics.min_temperature_celsius", Message: "must be below max_temperature_celsius"}
	}
	if p.TemperatureWeight < 0 {
		return &models.ValidationError{Field: "psychrometrics.temperature_weight", Value: fmt.Sprint(p.TemperatureWeight), Message: "must not be negative"}
	}
	if !(p.FairThreshold < p.GoodThreshold && p.GoodThreshold < p.ExcellentThreshold) {
		return &models.ValidationError{Field: "psychrometrics", Message: "thresholds must increase fair < good < excellent"}
	}

	return nil
}

// ParseConfig overlays YAML (or JSON) onto DefaultConfig and validates the
// result. Keys that are absent keep their reference values; unknown keys
// are rejected.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse engine config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadConfig reads an engine configuration file. An empty path yields
// DefaultConfig.
func LoadConfig(path string) (Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read engine config: %w", err)
	}

	return ParseConfig(data)
}
