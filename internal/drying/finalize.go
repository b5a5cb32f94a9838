package drying

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"drying-engine/internal/models"
)

// Finalize multiplies the daily cost by the drying duration, plans circuits
// for the total draw, and grades the loadout against its targets.
//
// Under-capacity is reported through the sufficiency flags, Severity and
// Warnings, never as an error: technicians may knowingly run short for a
// while and the caller decides whether that blocks the report.
func Finalize(cfg Config, targets Targets, match CapacityMatch, durationDays int) (models.DryingAssessmentResult, error) {
	if durationDays <= 0 {
		return models.DryingAssessmentResult{}, &models.InvalidDurationError{Days: durationDays}
	}

	dehumidificationOK := match.AchievedCapacityLitresPerDay >= float64(targets.WaterRemovalTargetLitresPerDay)
	airMovementOK := match.AchievedAirMoverUnits >= targets.MinAirMoversRequired

	result := models.DryingAssessmentResult{
		TotalVolumeCubicMetres:         targets.TotalVolume,
		TotalAffectedAreaSquareMetres:  targets.TotalAffectedArea,
		WaterClass:                     targets.WaterClass,
		WaterRemovalTargetLitresPerDay: targets.WaterRemovalTargetLitresPerDay,
		MinAirMoversRequired:           targets.MinAirMoversRequired,
		AchievedCapacityLitresPerDay:   match.AchievedCapacityLitresPerDay,
		RawAirflow:                     match.RawAirflow,
		AchievedAirMoverUnits:          match.AchievedAirMoverUnits,
		TotalDailyCost:                 match.TotalDailyCost,
		DurationDays:                   durationDays,
		TotalCost:                      match.TotalDailyCost.Mul(decimal.NewFromInt(int64(durationDays))),
		TotalAmps:                      match.TotalAmps,
		CircuitsRequired:               circuitsRequired(cfg, match.TotalAmps),
		DehumidificationSufficient:     dehumidificationOK,
		AirMovementSufficient:          airMovementOK,
		CapacitySufficient:             dehumidificationOK && airMovementOK,
		LineItems:                      match.LineItems,
	}

	switch {
	case dehumidificationOK && airMovementOK:
		result.Severity = models.SeverityOK
	case dehumidificationOK || airMovementOK:
		result.Severity = models.SeverityAdvisory
	default:
		result.Severity = models.SeverityCritical
	}

	if !dehumidificationOK {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"dehumidification capacity %.1f L/day is below the %d L/day removal target",
			match.AchievedCapacityLitresPerDay, targets.WaterRemovalTargetLitresPerDay,
		))
	}
	if !airMovementOK {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"air movement of %d equivalent units is below the %d air movers required",
			match.AchievedAirMoverUnits, targets.MinAirMoversRequired,
		))
	}

	return result, nil
}

func circuitsRequired(cfg Config, amps float64) int {
	if amps <= 0 {
		return 0
	}
	return int(math.Ceil(amps / (cfg.CircuitAmps * cfg.CircuitLoadFactor)))
}
