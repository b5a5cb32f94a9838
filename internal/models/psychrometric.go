package models

import (
	"encoding/json"
	"strings"
)

// SystemType describes whether the drying chamber is sealed
type SystemType string

const (
	SystemOpen   SystemType = "OPEN"
	SystemClosed SystemType = "CLOSED"
)

// ParseSystemType accepts OPEN or CLOSED in any case
func ParseSystemType(s string) (SystemType, error) {
	switch SystemType(strings.ToUpper(strings.TrimSpace(s))) {
	case SystemOpen:
		return SystemOpen, nil
	case SystemClosed:
		return SystemClosed, nil
	default:
		return "", &InvalidSystemTypeError{Value: s}
	}
}

// UnmarshalJSON normalizes OPEN and CLOSED in any case. Other values are kept
// as sent so the engine reports them as an invalid system type.
func (s *SystemType) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if parsed, err := ParseSystemType(raw); err == nil {
		*s = parsed
		return nil
	}
	*s = SystemType(raw)
	return nil
}

// DryingStatus classifies ambient drying potential
type DryingStatus string

const (
	StatusPoor      DryingStatus = "POOR"
	StatusFair      DryingStatus = "FAIR"
	StatusGood      DryingStatus = "GOOD"
	StatusExcellent DryingStatus = "EXCELLENT"
)

// PsychrometricReading is one environmental sample and its classification
type PsychrometricReading struct {
	TemperatureCelsius      float64      `json:"temperature_celsius"`
	RelativeHumidityPercent float64      `json:"relative_humidity_percent"`
	SystemType              SystemType   `json:"system_type"`
	DryingIndex             float64      `json:"drying_index"`
	Status                  DryingStatus `json:"status"`
}
