package repository

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"drying-engine/internal/models"
)

func TestEquipmentRow_ToSpec(t *testing.T) {
	tests := []struct {
		name    string
		row     equipmentRow
		want    models.EquipmentSpec
		wantErr bool
	}{
		{
			name: "dehumidifier",
			row: equipmentRow{
				ID:                        "LGR-A",
				Name:                      "LGR Dehumidifier A",
				Kind:                      "dehumidifier-lgr",
				RatedCapacityLitresPerDay: sql.NullFloat64{Float64: 55, Valid: true},
				AmpDraw:                   2.85,
			},
			want: models.EquipmentSpec{
				ID:                        "LGR-A",
				Name:                      "LGR Dehumidifier A",
				Kind:                      models.KindDehumidifierLGR,
				RatedCapacityLitresPerDay: 55,
				AmpDraw:                   2.85,
			},
		},
		{
			name: "air mover with null capacity",
			row: equipmentRow{
				ID:           "AirMover-2500",
				Kind:         "AIR_MOVER_AXIAL",
				RatedAirflow: sql.NullFloat64{Float64: 2500, Valid: true},
				AmpDraw:      2,
			},
			want: models.EquipmentSpec{
				ID:           "AirMover-2500",
				Kind:         models.KindAirMoverAxial,
				RatedAirflow: 2500,
				AmpDraw:      2,
			},
		},
		{
			name:    "unknown kind",
			row:     equipmentRow{ID: "X", Kind: "HOVERCRAFT", AmpDraw: 1},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.row.toSpec()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRowFromSpec_RoundTrip(t *testing.T) {
	spec := models.EquipmentSpec{ID: "AFD-500", Name: "Air scrubber", Kind: models.KindAFD, AmpDraw: 2.4}
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	row := rowFromSpec(spec, now)
	assert.False(t, row.RatedCapacityLitresPerDay.Valid)
	assert.False(t, row.RatedAirflow.Valid)
	assert.Equal(t, now, row.UpdatedAt)

	back, err := row.toSpec()
	require.NoError(t, err)
	assert.Equal(t, spec, back)
}

func TestNotFoundError(t *testing.T) {
	var err error = &NotFoundError{Resource: "equipment", ID: "LGR-Z"}

	assert.Equal(t, "equipment not found: LGR-Z", err.Error())

	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.False(t, notFound.IsTransient())
}
