package geometry

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for page geometry.
var (
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")
)

// Orientation is the page orientation.
type Orientation string

// Supported orientations.
const (
	Portrait  Orientation = "portrait"
	Landscape Orientation = "landscape"
)

// ParseOrientation accepts "portrait", "p", "landscape" and "l" in any case.
// An empty string yields Portrait.
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "p", "portrait":
		return Portrait, nil
	case "l", "landscape":
		return Landscape, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidOrientation, s)
}

// Geometry is a resolved page size.
type Geometry struct {
	Width       float64 // in Unit
	Height      float64 // in Unit
	Unit        Unit
	K           float64 // points per Unit
	Orientation Orientation
}

// Resolve computes the page size for a format, unit and orientation.
// It is a pure function: identical inputs always produce identical output.
func Resolve(orientation Orientation, unit Unit, format Format) (Geometry, error) {
	if unit == "" {
		unit = DefaultUnit
	}
	k, err := unit.K()
	if err != nil {
		return Geometry{}, err
	}

	var w, h float64
	switch {
	case format.IsCustom():
		if format.Width <= 0 || format.Height <= 0 {
			return Geometry{}, fmt.Errorf("%w: %s", ErrInvalidFormat, format)
		}
		w, h = format.Width, format.Height
	default:
		name := format.Name
		if name == "" {
			name = DefaultFormat
		}
		pw, ph, ok := pointSize(name)
		if !ok {
			return Geometry{}, fmt.Errorf("%w: %q", ErrInvalidFormat, name)
		}
		w, h = pw/k, ph/k
	}

	switch orientation {
	case "", Portrait:
		orientation = Portrait
		if w > h {
			w, h = h, w
		}
	case Landscape:
		if h > w {
			w, h = h, w
		}
	default:
		return Geometry{}, fmt.Errorf("%w: %q", ErrInvalidOrientation, string(orientation))
	}

	return Geometry{Width: w, Height: h, Unit: unit, K: k, Orientation: orientation}, nil
}

// Margin holds the four page margins in the page unit.
type Margin struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// ExpandMargin applies the shorthand rules: one value sets all sides, two
// values [v, h] give [v, h, v, v], four values are taken in top, right,
// bottom, left order. Any other shape reports ok == false.
func ExpandMargin(values []float64) (m Margin, ok bool) {
	switch len(values) {
	case 1:
		v := values[0]
		return Margin{Top: v, Right: v, Bottom: v, Left: v}, true
	case 2:
		return Margin{Top: values[0], Right: values[1], Bottom: values[0], Left: values[0]}, true
	case 4:
		return Margin{Top: values[0], Right: values[1], Bottom: values[2], Left: values[3]}, true
	}
	return Margin{}, false
}

// Slice returns the margin as [top, right, bottom, left].
func (m Margin) Slice() []float64 {
	return []float64{m.Top, m.Right, m.Bottom, m.Left}
}

// Inner is the printable area of a page once margins are removed.
type Inner struct {
	Width  float64
	Height float64
	// Ratio is Height / Width. It gives the number of raster rows that
	// fill one page for a raster of a given width.
	Ratio float64
}

// Inner subtracts m from the page. Both inner dimensions must stay positive.
func (g Geometry) Inner(m Margin) (Inner, error) {
	w := g.Width - m.Left - m.Right
	h := g.Height - m.Top - m.Bottom
	if w <= 0 || h <= 0 {
		return Inner{}, fmt.Errorf("%w: inner page %gx%g%s", ErrInvalidMargin, w, h, g.Unit)
	}
	return Inner{Width: w, Height: h, Ratio: h / w}, nil
}

// WidthPx returns the inner width in CSS pixels.
func (i Inner) WidthPx(k float64) float64 {
	return UnitsToPx(i.Width, k)
}

// PageBoundaryPx returns the inner page height in CSS pixels, the distance
// between two consecutive page boundaries in the laid-out document.
func (i Inner) PageBoundaryPx(k float64) float64 {
	return UnitsToPx(i.Height, k)
}
