package catalog

import "drying-engine/internal/models"

// referenceSpecs is the built-in equipment set. Airflow is in CFM;
// AirMover-1500 is the baseline unit the reference configuration
// normalizes against.
var referenceSpecs = []models.EquipmentSpec{
	{ID: "LGR-A", Name: "LGR dehumidifier, 55 L/day", Kind: models.KindDehumidifierLGR, RatedCapacityLitresPerDay: 55, AmpDraw: 2.85},
	{ID: "LGR-B", Name: "LGR dehumidifier, 85 L/day", Kind: models.KindDehumidifierLGR, RatedCapacityLitresPerDay: 85, AmpDraw: 5.02},
	{ID: "LGR-XL", Name: "LGR dehumidifier, 120 L/day", Kind: models.KindDehumidifierLGR, RatedCapacityLitresPerDay: 120, AmpDraw: 7.5},
	{ID: "DESICCANT-300", Name: "Desiccant dehumidifier", Kind: models.KindDehumidifierDesiccant, RatedCapacityLitresPerDay: 150, AmpDraw: 10.6},
	{ID: "AirMover-1500", Name: "Centrifugal air mover, 1500 CFM", Kind: models.KindAirMoverCentrifugal, RatedAirflow: 1500, AmpDraw: 2.27},
	{ID: "AirMover-2500", Name: "Axial air mover, 2500 CFM", Kind: models.KindAirMoverAxial, RatedAirflow: 2500, AmpDraw: 2.00},
	{ID: "AirMover-900", Name: "Low-profile air mover, 900 CFM", Kind: models.KindAirMoverCentrifugal, RatedAirflow: 900, AmpDraw: 1.2},
	{ID: "AFD-500", Name: "Air filtration device, HEPA", Kind: models.KindAFD, AmpDraw: 2.4},
	{ID: "HEATER-ID", Name: "Indirect heat drying unit", Kind: models.KindOther, AmpDraw: 12.5},
}

// Reference returns the built-in catalog
func Reference() *Catalog {
	c, err := New(referenceSpecs)
	if err != nil {
		panic("catalog: invalid reference data: " + err.Error())
	}
	return c
}
