package models

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// EquipmentKind is the tagged variant every catalog entry carries
type EquipmentKind string

const (
	KindDehumidifierLGR       EquipmentKind = "DEHUMIDIFIER_LGR"
	KindDehumidifierDesiccant EquipmentKind = "DEHUMIDIFIER_DESICCANT"
	KindAirMoverAxial         EquipmentKind = "AIR_MOVER_AXIAL"
	KindAirMoverCentrifugal   EquipmentKind = "AIR_MOVER_CENTRIFUGAL"
	KindAFD                   EquipmentKind = "AFD"
	KindOther                 EquipmentKind = "OTHER"
)

// KindTraits says which capacity figures an equipment kind contributes to
type KindTraits struct {
	Dehumidifier bool
	AirMover     bool
}

// kindTraits is the single dispatch table for equipment kinds. Adding a kind
// means adding a row here; the capacity summation never switches on names.
var kindTraits = map[EquipmentKind]KindTraits{
	KindDehumidifierLGR:       {Dehumidifier: true},
	KindDehumidifierDesiccant: {Dehumidifier: true},
	KindAirMoverAxial:         {AirMover: true},
	KindAirMoverCentrifugal:   {AirMover: true},
	KindAFD:                   {},
	KindOther:                 {},
}

// Traits returns the kind's row in the dispatch table
func (k EquipmentKind) Traits() (KindTraits, bool) {
	t, ok := kindTraits[k]
	return t, ok
}

// ParseEquipmentKind accepts a kind name in any case, with '-' or ' ' for '_'
func ParseEquipmentKind(s string) (EquipmentKind, error) {
	normalized := strings.ToUpper(strings.TrimSpace(s))
	normalized = strings.NewReplacer("-", "_", " ", "_").Replace(normalized)

	kind := EquipmentKind(normalized)
	if _, ok := kindTraits[kind]; !ok {
		return "", &ValidationError{
			Field:   "kind",
			Value:   s,
			Message: "unknown equipment kind",
		}
	}
	return kind, nil
}

// EquipmentSpec is a catalog entry for one equipment model or group.
// RatedAirflow is in the catalog's reference flow unit (CFM).
type EquipmentSpec struct {
	ID                        string        `json:"id"`
	Name                      string        `json:"name,omitempty"`
	Kind                      EquipmentKind `json:"kind"`
	RatedCapacityLitresPerDay float64       `json:"rated_capacity_litres_per_day,omitempty"`
	RatedAirflow              float64       `json:"rated_airflow,omitempty"`
	AmpDraw                   float64       `json:"amp_draw"`
}

// Validate checks a catalog entry before it is accepted into a catalog
func (s EquipmentSpec) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return &ValidationError{Field: "id", Message: "equipment id is required"}
	}

	traits, ok := s.Kind.Traits()
	if !ok {
		return &ValidationError{Field: "kind", Value: string(s.Kind), Message: fmt.Sprintf("unknown equipment kind for %s", s.ID)}
	}

	if !positive(s.AmpDraw) {
		return &ValidationError{Field: "amp_draw", Value: fmt.Sprint(s.AmpDraw), Message: fmt.Sprintf("amp draw for %s must be positive", s.ID)}
	}

	if traits.Dehumidifier && !positive(s.RatedCapacityLitresPerDay) {
		return &ValidationError{
			Field:   "rated_capacity_litres_per_day",
			Value:   fmt.Sprint(s.RatedCapacityLitresPerDay),
			Message: fmt.Sprintf("dehumidifier %s needs a positive rated capacity", s.ID),
		}
	}

	if traits.AirMover && !positive(s.RatedAirflow) {
		return &ValidationError{
			Field:   "rated_airflow",
			Value:   fmt.Sprint(s.RatedAirflow),
			Message: fmt.Sprintf("air mover %s needs a positive rated airflow", s.ID),
		}
	}

	if s.RatedCapacityLitresPerDay < 0 || s.RatedAirflow < 0 {
		return &ValidationError{Field: "rating", Value: s.ID, Message: "ratings must not be negative"}
	}

	return nil
}

// EquipmentSelection is a quantity of one catalog entry at a caller-supplied
// daily rate. The engine never invents pricing.
type EquipmentSelection struct {
	EquipmentID string          `json:"equipment_id" validate:"required"`
	Quantity    int             `json:"quantity" validate:"gte=0"`
	DailyRate   decimal.Decimal `json:"daily_rate" validate:"gte=0"`
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
