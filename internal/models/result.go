package models

import "github.com/shopspring/decimal"

// Severity grades how far an equipment loadout falls short of its targets
type Severity string

const (
	// SeverityOK means both dehumidification and air movement meet target
	SeverityOK Severity = "OK"
	// SeverityAdvisory means exactly one of the two falls short
	SeverityAdvisory Severity = "ADVISORY"
	// SeverityCritical means both fall short
	SeverityCritical Severity = "CRITICAL"
)

// LineItem is one non-empty equipment selection as it appears in the cost
// estimate.
type LineItem struct {
	EquipmentID          string          `json:"equipment_id"`
	Name                 string          `json:"name,omitempty"`
	Kind                 EquipmentKind   `json:"kind"`
	Quantity             int             `json:"quantity"`
	DailyRate            decimal.Decimal `json:"daily_rate"`
	DailyCost            decimal.Decimal `json:"daily_cost"`
	CapacityLitresPerDay float64         `json:"capacity_litres_per_day,omitempty"`
	Airflow              float64         `json:"airflow,omitempty"`
	Amps                 float64         `json:"amps"`
}

// DryingAssessmentResult is the engine's single output aggregate and the sole
// handoff to report rendering.
type DryingAssessmentResult struct {
	TotalVolumeCubicMetres        float64    `json:"total_volume_m3"`
	TotalAffectedAreaSquareMetres float64    `json:"total_affected_area_m2"`
	WaterClass                    WaterClass `json:"water_class"`

	WaterRemovalTargetLitresPerDay int `json:"water_removal_target_litres_per_day"`
	MinAirMoversRequired           int `json:"min_air_movers_required"`

	AchievedCapacityLitresPerDay float64 `json:"achieved_capacity_litres_per_day"`
	RawAirflow                   float64 `json:"raw_airflow"`
	AchievedAirMoverUnits        int     `json:"achieved_air_mover_units"`

	TotalDailyCost decimal.Decimal `json:"total_daily_cost"`
	DurationDays   int             `json:"duration_days"`
	TotalCost      decimal.Decimal `json:"total_cost"`

	TotalAmps        float64 `json:"total_amps"`
	CircuitsRequired int     `json:"circuits_required"`

	DehumidificationSufficient bool     `json:"dehumidification_sufficient"`
	AirMovementSufficient      bool     `json:"air_movement_sufficient"`
	CapacitySufficient         bool     `json:"capacity_sufficient"`
	Severity                   Severity `json:"severity"`
	Warnings                   []string `json:"warnings,omitempty"`

	LineItems      []LineItem            `json:"line_items,omitempty"`
	Psychrometrics *PsychrometricReading `json:"psychrometrics,omitempty"`
}
