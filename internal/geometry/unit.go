package geometry

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidUnit is returned for a unit outside the supported set.
var ErrInvalidUnit = errors.New("invalid unit")

// Unit is a page length unit.
type Unit string

// Supported units.
const (
	Point      Unit = "pt"
	Millimeter Unit = "mm"
	Centimeter Unit = "cm"
	Inch       Unit = "in"
	Pixel      Unit = "px"
	Pica       Unit = "pc"
	Em         Unit = "em"
	Ex         Unit = "ex"
)

// DefaultUnit is used when no unit is configured.
const DefaultUnit = Millimeter

// Points per unit. em and ex follow the PDF writer convention of a 12pt
// font, not the CSS font-relative meaning.
var pointsPerUnit = map[Unit]float64{
	Point:      1,
	Millimeter: 72 / 25.4,
	Centimeter: 72 / 2.54,
	Inch:       72,
	Pixel:      72.0 / 96.0,
	Pica:       12,
	Em:         12,
	Ex:         6,
}

// ParseUnit normalizes s and checks it against the supported units.
// An empty string yields DefaultUnit.
func ParseUnit(s string) (Unit, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultUnit, nil
	}
	u := Unit(s)
	if _, ok := pointsPerUnit[u]; !ok {
		return "", fmt.Errorf("%w: %q", ErrInvalidUnit, s)
	}
	return u, nil
}

// K returns the number of points in one unit.
func (u Unit) K() (float64, error) {
	k, ok := pointsPerUnit[u]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidUnit, string(u))
	}
	return k, nil
}

// UnitsToPx converts a length in page units to CSS pixels.
func UnitsToPx(v, k float64) float64 {
	return v * k / 72 * 96
}

// PxToUnits converts a length in CSS pixels to page units.
func PxToUnits(v, k float64) float64 {
	return v * 72 / 96 / k
}
