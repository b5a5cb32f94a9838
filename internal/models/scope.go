package models

import "math"

// ScopeArea is one measured room or zone, in metres
type ScopeArea struct {
	Name          string  `json:"name" validate:"required"`
	Length        float64 `json:"length"`
	Width         float64 `json:"width"`
	Height        float64 `json:"height"`
	WetPercentage float64 `json:"wet_percentage"`
}

// Volume returns length × width × height in cubic metres
func (a ScopeArea) Volume() float64 {
	return a.Length * a.Width * a.Height
}

// FloorArea returns length × width in square metres
func (a ScopeArea) FloorArea() float64 {
	return a.Length * a.Width
}

// WetArea returns the affected part of the floor area
func (a ScopeArea) WetArea() float64 {
	return a.FloorArea() * (a.WetPercentage / 100.0)
}

// Validate checks the area's invariants. index is the area's position in the
// list it was submitted with and is only used for error context.
func (a ScopeArea) Validate(index int) error {
	if a.Name == "" {
		return &InvalidAreaError{Index: index, Field: "name", Message: "name is required"}
	}

	dims := []struct {
		field string
		value float64
	}{
		{"length", a.Length},
		{"width", a.Width},
		{"height", a.Height},
	}
	for _, d := range dims {
		if math.IsNaN(d.value) || math.IsInf(d.value, 0) || d.value <= 0 {
			return &InvalidAreaError{
				Index:   index,
				Name:    a.Name,
				Field:   d.field,
				Value:   d.value,
				Message: "must be a positive number of metres",
			}
		}
	}

	if math.IsNaN(a.WetPercentage) || a.WetPercentage < 0 || a.WetPercentage > 100 {
		return &InvalidAreaError{
			Index:   index,
			Name:    a.Name,
			Field:   "wet_percentage",
			Value:   a.WetPercentage,
			Message: "must be between 0 and 100",
		}
	}

	return nil
}
