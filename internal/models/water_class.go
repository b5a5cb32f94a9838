package models

import "fmt"

// WaterClass is the IICRC-style severity tier of a water intrusion
type WaterClass int

const (
	Class1 WaterClass = iota + 1
	Class2
	Class3
	Class4
)

const (
	MinWaterClass = int(Class1)
	MaxWaterClass = int(Class4)
)

// Valid reports whether c is one of Class1..Class4
func (c WaterClass) Valid() bool {
	return int(c) >= MinWaterClass && int(c) <= MaxWaterClass
}

// Index returns the zero-based position of c in per-class tables
func (c WaterClass) Index() (int, error) {
	if !c.Valid() {
		return 0, &InvalidClassError{Value: int(c)}
	}
	return int(c) - 1, nil
}

func (c WaterClass) String() string {
	return fmt.Sprintf("Class %d", int(c))
}
