package drying

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"

	"drying-engine/internal/models"
)

// Lookup resolves an equipment id to its catalog entry
type Lookup interface {
	Lookup(id string) (models.EquipmentSpec, bool)
}

// CapacityMatch is the Capacity Matcher's output
type CapacityMatch struct {
	AchievedCapacityLitresPerDay float64           `json:"achieved_capacity_litres_per_day"`
	RawAirflow                   float64           `json:"raw_airflow"`
	AchievedAirMoverUnits        int               `json:"achieved_air_mover_units"`
	TotalDailyCost               decimal.Decimal   `json:"total_daily_cost"`
	TotalAmps                    float64           `json:"total_amps"`
	LineItems                    []models.LineItem `json:"line_items,omitempty"`
}

// Match sums the rated capacity, airflow, electrical draw and daily cost of
// a loadout. Which figures a selection contributes to is decided by its
// kind's row in the kind dispatch table. Zero-quantity selections are
// resolved against the catalog but contribute nothing.
func Match(cfg Config, selections []models.EquipmentSelection, lookup Lookup) (CapacityMatch, error) {
	var (
		match     CapacityMatch
		dailyCost = decimal.Zero
	)

	for _, sel := range selections {
		if sel.Quantity < 0 {
			return CapacityMatch{}, &models.InvalidSelectionError{
				EquipmentID: sel.EquipmentID,
				Field:       "quantity",
				Value:       strconv.Itoa(sel.Quantity),
			}
		}
		if sel.DailyRate.IsNegative() {
			return CapacityMatch{}, &models.InvalidSelectionError{
				EquipmentID: sel.EquipmentID,
				Field:       "daily_rate",
				Value:       sel.DailyRate.String(),
			}
		}

		spec, ok := lookup.Lookup(sel.EquipmentID)
		if !ok {
			return CapacityMatch{}, &models.UnknownEquipmentError{EquipmentID: sel.EquipmentID}
		}

		if sel.Quantity == 0 {
			continue
		}

		traits, ok := spec.Kind.Traits()
		if !ok {
			return CapacityMatch{}, &models.ValidationError{Field: "kind", Value: string(spec.Kind), Message: "catalog entry has an unknown equipment kind"}
		}

		qty := float64(sel.Quantity)
		line := models.LineItem{
			EquipmentID: spec.ID,
			Name:        spec.Name,
			Kind:        spec.Kind,
			Quantity:    sel.Quantity,
			DailyRate:   sel.DailyRate,
			DailyCost:   sel.DailyRate.Mul(decimal.NewFromInt(int64(sel.Quantity))),
			Amps:        qty * spec.AmpDraw,
		}

		if traits.Dehumidifier {
			line.CapacityLitresPerDay = qty * spec.RatedCapacityLitresPerDay
			match.AchievedCapacityLitresPerDay += line.CapacityLitresPerDay
		}
		if traits.AirMover {
			line.Airflow = qty * spec.RatedAirflow
			match.RawAirflow += line.Airflow
		}

		dailyCost = dailyCost.Add(line.DailyCost)
		match.TotalAmps += line.Amps
		match.LineItems = append(match.LineItems, line)
	}

	match.AchievedAirMoverUnits = int(math.Round(match.RawAirflow / cfg.ReferenceAirflowPerUnit))
	match.TotalDailyCost = dailyCost
	match.TotalAmps = roundTo(match.TotalAmps, 2)

	return match, nil
}
