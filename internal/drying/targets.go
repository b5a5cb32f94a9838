package drying

import (
	"math"

	"drying-engine/internal/models"
)

// Targets is the Target Calculator's output
type Targets struct {
	TotalVolume                    float64           `json:"total_volume_m3"`
	TotalAffectedArea              float64           `json:"total_affected_area_m2"`
	WaterClass                     models.WaterClass `json:"water_class"`
	WaterRemovalTargetLitresPerDay int               `json:"water_removal_target_litres_per_day"`
	MinAirMoversRequired           int               `json:"min_air_movers_required"`
}

// ComputeTargets derives the daily water-removal target and the minimum
// air-mover count for a scope.
//
// The removal target is rounded to the nearest litre. The air-mover minimum
// is always rounded up: under-provisioned airflow is the failure this
// calculation guards against.
func ComputeTargets(cfg Config, totals ScopeTotals, class models.WaterClass) (Targets, error) {
	multiplier, err := cfg.ClassMultiplier(class)
	if err != nil {
		return Targets{}, err
	}

	areaPerMover, err := cfg.AirMoverArea(class)
	if err != nil {
		return Targets{}, err
	}

	if err := checkNonNegative("total_volume_m3", totals.TotalVolume); err != nil {
		return Targets{}, err
	}
	if err := checkNonNegative("total_affected_area_m2", totals.TotalAffectedArea); err != nil {
		return Targets{}, err
	}

	removal := math.Round(totals.TotalVolume * cfg.BaseRate * multiplier * cfg.UnitScale)
	if err := checkCount("water_removal_target_litres_per_day", removal); err != nil {
		return Targets{}, err
	}

	movers := math.Ceil(totals.TotalAffectedArea / areaPerMover)
	if err := checkCount("min_air_movers_required", movers); err != nil {
		return Targets{}, err
	}

	return Targets{
		TotalVolume:                    totals.TotalVolume,
		TotalAffectedArea:              totals.TotalAffectedArea,
		WaterClass:                     class,
		WaterRemovalTargetLitresPerDay: int(removal),
		MinAirMoversRequired:           int(movers),
	}, nil
}

// checkCount bounds a rounded figure before it becomes an int
func checkCount(field string, v float64) error {
	if v > math.MaxInt32 {
		return &models.OutOfRangeError{Field: field, Value: v, Min: 0, Max: math.MaxInt32}
	}
	return nil
}

func checkNonNegative(field string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return &models.OutOfRangeError{Field: field, Value: v, Min: 0, Max: math.MaxFloat64}
	}
	return nil
}
