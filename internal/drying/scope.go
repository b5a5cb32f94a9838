package drying

import "drying-engine/internal/models"

// ScopeTotals is the Scope Aggregator's output
type ScopeTotals struct {
	TotalVolume       float64 `json:"total_volume_m3"`
	TotalAffectedArea float64 `json:"total_affected_area_m2"`
	AreaCount         int     `json:"area_count"`
}

// Aggregate sums volume and wet area across areas. Overlapping rooms are not
// detected; deduplication is the caller's job.
func Aggregate(areas []models.ScopeArea) (ScopeTotals, error) {
	if len(areas) == 0 {
		return ScopeTotals{}, &models.EmptyScopeError{}
	}

	var totals ScopeTotals
	for i, area := range areas {
		if err := area.Validate(i); err != nil {
			return ScopeTotals{}, err
		}

		totals.TotalVolume += area.Volume()
		totals.TotalAffectedArea += area.WetArea()
	}
	totals.AreaCount = len(areas)

	return totals, nil
}
