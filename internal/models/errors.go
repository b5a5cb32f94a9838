package models

import (
	"errors"
	"fmt"
)

// EngineError is implemented by every input-defect error the drying engine
// returns. None of them are transient: retrying with the same input fails
// the same way.
type EngineError interface {
	error
	IsTransient() bool
	// Kind is a stable machine-readable code, used as an API error code and
	// as a metrics label.
	Kind() string
}

// IsEngineError reports whether err (or anything it wraps) is an EngineError.
func IsEngineError(err error) bool {
	var engineErr EngineError
	return errors.As(err, &engineErr)
}

// ErrorKind returns the Kind of the first EngineError in err's chain, or
// "internal" when there is none.
func ErrorKind(err error) string {
	var engineErr EngineError
	if errors.As(err, &engineErr) {
		return engineErr.Kind()
	}
	return "internal"
}

// OutOfRangeError reports a physical reading outside plausible bounds
type OutOfRangeError struct {
	Field string
	Value float64
	Min   float64
	Max   float64
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s %g out of range, expected [%g, %g]", e.Field, e.Value, e.Min, e.Max)
}

func (e *OutOfRangeError) IsTransient() bool { return false }
func (e *OutOfRangeError) Kind() string      { return "out_of_range" }

// EmptyScopeError is returned when an assessment has no scope areas
type EmptyScopeError struct{}

func (e *EmptyScopeError) Error() string {
	return "scope is empty, at least one area is required"
}

func (e *EmptyScopeError) IsTransient() bool { return false }
func (e *EmptyScopeError) Kind() string      { return "empty_scope" }

// InvalidClassError reports an unrecognized water class
type InvalidClassError struct {
	Value int
}

func (e *InvalidClassError) Error() string {
	return fmt.Sprintf("invalid water class %d, expected %d..%d", e.Value, MinWaterClass, MaxWaterClass)
}

func (e *InvalidClassError) IsTransient() bool { return false }
func (e *InvalidClassError) Kind() string      { return "invalid_class" }

// UnknownEquipmentError reports a selection whose id is not in the catalog
type UnknownEquipmentError struct {
	EquipmentID string
}

func (e *UnknownEquipmentError) Error() string {
	return fmt.Sprintf("unknown equipment %q", e.EquipmentID)
}

func (e *UnknownEquipmentError) IsTransient() bool { return false }
func (e *UnknownEquipmentError) Kind() string      { return "unknown_equipment" }

// InvalidDurationError reports a non-positive drying duration
type InvalidDurationError struct {
	Days int
}

func (e *InvalidDurationError) Error() string {
	return fmt.Sprintf("invalid drying duration %d days, expected at least 1", e.Days)
}

func (e *InvalidDurationError) IsTransient() bool { return false }
func (e *InvalidDurationError) Kind() string      { return "invalid_duration" }

// InvalidAreaError reports a scope area that violates its invariants.
// Index is the area's position in the submitted list.
type InvalidAreaError struct {
	Index   int
	Name    string
	Field   string
	Value   float64
	Message string
}

func (e *InvalidAreaError) Error() string {
	return fmt.Sprintf("area %d (%q): %s %g: %s", e.Index, e.Name, e.Field, e.Value, e.Message)
}

func (e *InvalidAreaError) IsTransient() bool { return false }
func (e *InvalidAreaError) Kind() string      { return "invalid_area" }

// InvalidSelectionError reports a negative quantity or daily rate
type InvalidSelectionError struct {
	EquipmentID string
	Field       string
	Value       string
}

func (e *InvalidSelectionError) Error() string {
	return fmt.Sprintf("selection %q: %s %s must not be negative", e.EquipmentID, e.Field, e.Value)
}

func (e *InvalidSelectionError) IsTransient() bool { return false }
func (e *InvalidSelectionError) Kind() string      { return "invalid_selection" }

// InvalidSystemTypeError reports an enclosure type other than OPEN or CLOSED
type InvalidSystemTypeError struct {
	Value string
}

func (e *InvalidSystemTypeError) Error() string {
	return fmt.Sprintf("invalid system type %q, expected %s or %s", e.Value, SystemOpen, SystemClosed)
}

func (e *InvalidSystemTypeError) IsTransient() bool { return false }
func (e *InvalidSystemTypeError) Kind() string      { return "invalid_system_type" }

// ValidationError represents a reference-data validation error, raised when
// an equipment catalog entry or engine configuration value is unusable.
type ValidationError struct {
	Field   string
	Value   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("%s %q: %s", e.Field, e.Value, e.Message)
}

// IsTransient returns false as validation errors are permanent
func (e *ValidationError) IsTransient() bool { return false }
func (e *ValidationError) Kind() string      { return "invalid_reference_data" }
