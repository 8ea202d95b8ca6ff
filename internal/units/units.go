// Package units handles blood glucose measurement units. Values are always
// stored in the canonical unit (mg/dL); conversion to and from a user's
// display unit happens at the boundary, never in storage.
package units

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Unit is a blood glucose measurement unit.
type Unit string

const (
	// MgDL is the canonical storage unit.
	MgDL Unit = "mg/dL"
	// MmolL is the SI display unit used outside the US.
	MmolL Unit = "mmol/L"
)

// Canonical is the unit every persisted value is expressed in.
const Canonical = MgDL

// conversionFactor converts mmol/L to mg/dL for glucose.
const conversionFactor = 18.018

// ErrUnsupportedUnit is returned for units other than mg/dL and mmol/L.
var ErrUnsupportedUnit = errors.New("unsupported unit")

// OutOfRangeError reports a glucose value outside the valid range for a unit.
type OutOfRangeError struct {
	Min  float64
	Max  float64
	Unit Unit
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("blood sugar should be between %.1f and %.1f %s", e.Min, e.Max, e.Unit)
}

// Parse validates a unit string.
func Parse(s string) (Unit, error) {
	switch Unit(s) {
	case MgDL:
		return MgDL, nil
	case MmolL:
		return MmolL, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedUnit, s)
	}
}

// ToCanonical converts a value in the given unit to mg/dL. Converted values
// are rounded to one decimal; the identity conversion is returned unrounded.
func ToCanonical(value float64, from Unit) (float64, error) {
	switch from {
	case MgDL:
		return value, nil
	case MmolL:
		return Round1(value * conversionFactor), nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedUnit, from)
	}
}

// FromCanonical converts a canonical mg/dL value to the given unit. Converted
// values are rounded to one decimal; the identity conversion is returned
// unrounded.
func FromCanonical(value float64, to Unit) (float64, error) {
	switch to {
	case MgDL:
		return value, nil
	case MmolL:
		return Round1(value / conversionFactor), nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedUnit, to)
	}
}

// ValidRange returns the inclusive plausible-measurement bounds for a unit.
// The mmol/L bounds are independent literals for display use; range
// validation of stored values is always performed in mg/dL.
func ValidRange(u Unit) (min, max float64, err error) {
	switch u {
	case MgDL:
		return 50.0, 500.0, nil
	case MmolL:
		return 2.8, 27.8, nil
	default:
		return 0, 0, fmt.Errorf("%w: %q", ErrUnsupportedUnit, u)
	}
}

// Format renders a value with its unit label, e.g. "120.5 mg/dL". Unknown
// units render the bare number.
func Format(value float64, u Unit) string {
	s := strconv.FormatFloat(value, 'f', -1, 64)
	switch u {
	case MgDL, MmolL:
		return s + " " + string(u)
	default:
		return s
	}
}

// Round1 rounds to one decimal place, halves away from zero.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
