// Package drying sizes drying equipment for a water-damage assessment.
//
// Every function in this package is a pure function of its arguments: no
// I/O, no logging, no package-level mutable state. The pipeline order is
// Assess → Aggregate → ComputeTargets → Match → Finalize, enforced only by
// data dependency. Engine.Run chains them for one report.
package drying

import (
	"drying-engine/internal/models"
)

// Ambient is the psychrometric part of an assessment input
type Ambient struct {
	TemperatureCelsius      float64           `json:"temperature_celsius"`
	RelativeHumidityPercent float64           `json:"relative_humidity_percent"`
	SystemType              models.SystemType `json:"system_type"`
}

// AssessmentInput is everything one report contributes to the pipeline
type AssessmentInput struct {
	Areas        []models.ScopeArea          `json:"areas" validate:"dive"`
	WaterClass   models.WaterClass           `json:"water_class"`
	Ambient      Ambient                     `json:"ambient"`
	Selections   []models.EquipmentSelection `json:"selections" validate:"dive"`
	DurationDays int                         `json:"duration_days"`
}

// Engine binds one configuration to one catalog. Both are read-only for the
// Engine's lifetime; to retune, build a new Engine.
type Engine struct {
	config  Config
	catalog Lookup
}

// New validates cfg and returns an Engine over catalog
func New(cfg Config, catalog Lookup) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Engine{config: cfg, catalog: catalog}, nil
}

// Config returns a copy of the engine's configuration
func (e *Engine) Config() Config {
	return e.config
}

// Assess runs only the psychrometric assessor
func (e *Engine) Assess(ambient Ambient) (models.PsychrometricReading, error) {
	return Assess(e.config.Psychrometrics, ambient.TemperatureCelsius, ambient.RelativeHumidityPercent, ambient.SystemType)
}

// Run executes the whole pipeline for one report
func (e *Engine) Run(in AssessmentInput) (models.DryingAssessmentResult, error) {
	reading, err := e.Assess(in.Ambient)
	if err != nil {
		return models.DryingAssessmentResult{}, err
	}

	totals, err := Aggregate(in.Areas)
	if err != nil {
		return models.DryingAssessmentResult{}, err
	}

	targets, err := ComputeTargets(e.config, totals, in.WaterClass)
	if err != nil {
		return models.DryingAssessmentResult{}, err
	}

	match, err := Match(e.config, in.Selections, e.catalog)
	if err != nil {
		return models.DryingAssessmentResult{}, err
	}

	result, err := Finalize(e.config, targets, match, in.DurationDays)
	if err != nil {
		return models.DryingAssessmentResult{}, err
	}

	result.Psychrometrics = &reading
	return result, nil
}
