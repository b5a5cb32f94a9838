package drying

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drying-engine/internal/catalog"
	"drying-engine/internal/models"
)

func referenceLoadout() []models.EquipmentSelection {
	return []models.EquipmentSelection{
		{EquipmentID: "LGR-A", Quantity: 1, DailyRate: decimal.NewFromInt(45)},
		{EquipmentID: "LGR-B", Quantity: 2, DailyRate: decimal.NewFromInt(45)},
		{EquipmentID: "AirMover-1500", Quantity: 8, DailyRate: decimal.NewFromInt(25)},
		{EquipmentID: "AirMover-2500", Quantity: 5, DailyRate: decimal.NewFromInt(25)},
	}
}

// TestMatch_ReferenceLoadout reproduces the reference equipment set
func TestMatch_ReferenceLoadout(t *testing.T) {
	match, err := Match(DefaultConfig(), referenceLoadout(), catalog.Reference())
	require.NoError(t, err)

	assert.True(t, match.TotalDailyCost.Equal(decimal.RequireFromString("460.00")), "daily cost %s", match.TotalDailyCost)
	assert.Equal(t, "460.00", match.TotalDailyCost.StringFixed(2))
	assert.InDelta(t, 41.05, match.TotalAmps, 1e-9)
	assert.InDelta(t, 225.0, match.AchievedCapacityLitresPerDay, 1e-9)
	assert.InDelta(t, 24500.0, match.RawAirflow, 1e-9)
	assert.Equal(t, 16, match.AchievedAirMoverUnits)
	require.Len(t, match.LineItems, 4)
	assert.Equal(t, "LGR-B", match.LineItems[1].EquipmentID)
	assert.True(t, match.LineItems[1].DailyCost.Equal(decimal.NewFromInt(90)))
	assert.InDelta(t, 170.0, match.LineItems[1].CapacityLitresPerDay, 1e-9)
}

func TestMatch_KindDispatch(t *testing.T) {
	selections := []models.EquipmentSelection{
		{EquipmentID: "DESICCANT-300", Quantity: 1, DailyRate: decimal.NewFromInt(120)},
		{EquipmentID: "AirMover-900", Quantity: 5, DailyRate: decimal.NewFromInt(20)},
		{EquipmentID: "AFD-500", Quantity: 2, DailyRate: decimal.RequireFromString("55.50")},
		{EquipmentID: "HEATER-ID", Quantity: 1, DailyRate: decimal.NewFromInt(200)},
	}

	match, err := Match(DefaultConfig(), selections, catalog.Reference())
	require.NoError(t, err)

	assert.InDelta(t, 150.0, match.AchievedCapacityLitresPerDay, 1e-9, "only dehumidifiers add capacity")
	assert.InDelta(t, 4500.0, match.RawAirflow, 1e-9, "only air movers add airflow")
	assert.Equal(t, 3, match.AchievedAirMoverUnits)
	assert.Equal(t, "531.00", match.TotalDailyCost.StringFixed(2))
	assert.InDelta(t, 10.6+6.0+4.8+12.5, match.TotalAmps, 1e-9)
}

// TestMatch_ZeroQuantityNeutral checks that a deselected option changes nothing
func TestMatch_ZeroQuantityNeutral(t *testing.T) {
	base, err := Match(DefaultConfig(), referenceLoadout(), catalog.Reference())
	require.NoError(t, err)

	withZeros := append(referenceLoadout(),
		models.EquipmentSelection{EquipmentID: "LGR-XL", Quantity: 0, DailyRate: decimal.NewFromInt(80)},
		models.EquipmentSelection{EquipmentID: "AFD-500", Quantity: 0, DailyRate: decimal.NewFromInt(55)},
	)
	got, err := Match(DefaultConfig(), withZeros, catalog.Reference())
	require.NoError(t, err)

	assert.Equal(t, base, got)
}

func TestMatch_Empty(t *testing.T) {
	match, err := Match(DefaultConfig(), nil, catalog.Reference())
	require.NoError(t, err)

	assert.True(t, match.TotalDailyCost.IsZero())
	assert.Zero(t, match.TotalAmps)
	assert.Zero(t, match.AchievedAirMoverUnits)
	assert.Empty(t, match.LineItems)
}

func TestMatch_Errors(t *testing.T) {
	tests := []struct {
		name      string
		selection models.EquipmentSelection
		check     func(t *testing.T, err error)
	}{
		{
			name:      "unknown id",
			selection: models.EquipmentSelection{EquipmentID: "LGR-Z", Quantity: 1, DailyRate: decimal.NewFromInt(10)},
			check: func(t *testing.T, err error) {
				var unknownErr *models.UnknownEquipmentError
				require.ErrorAs(t, err, &unknownErr)
				assert.Equal(t, "LGR-Z", unknownErr.EquipmentID)
			},
		},
		{
			name:      "unknown id with zero quantity",
			selection: models.EquipmentSelection{EquipmentID: "LGR-Z", Quantity: 0},
			check: func(t *testing.T, err error) {
				var unknownErr *models.UnknownEquipmentError
				require.ErrorAs(t, err, &unknownErr)
			},
		},
		{
			name:      "negative quantity",
			selection: models.EquipmentSelection{EquipmentID: "LGR-A", Quantity: -1},
			check: func(t *testing.T, err error) {
				var selErr *models.InvalidSelectionError
				require.ErrorAs(t, err, &selErr)
				assert.Equal(t, "quantity", selErr.Field)
				assert.Equal(t, "-1", selErr.Value)
			},
		},
		{
			name:      "negative daily rate",
			selection: models.EquipmentSelection{EquipmentID: "LGR-A", Quantity: 1, DailyRate: decimal.NewFromInt(-5)},
			check: func(t *testing.T, err error) {
				var selErr *models.InvalidSelectionError
				require.ErrorAs(t, err, &selErr)
				assert.Equal(t, "daily_rate", selErr.Field)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Match(DefaultConfig(), append(referenceLoadout(), tt.selection), catalog.Reference())
			tt.check(t, err)
		})
	}
}

// TestMatch_ReferenceUnit checks that normalization follows the configured
// baseline rather than whichever mover is listed first
func TestMatch_ReferenceUnit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ReferenceAirflowPerUnit = 2500

	match, err := Match(cfg, referenceLoadout(), catalog.Reference())
	require.NoError(t, err)
	assert.Equal(t, 10, match.AchievedAirMoverUnits)
}
