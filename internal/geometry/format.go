package geometry

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrInvalidFormat is returned for an unknown paper name or a degenerate
// custom size.
var ErrInvalidFormat = errors.New("invalid format")

// DefaultFormat is used when no format is configured.
const DefaultFormat = "a4"

// paperSizes holds portrait paper dimensions in points.
var paperSizes = map[string][2]float64{
	"a0":                {2383.94, 3370.39},
	"a1":                {1683.78, 2383.94},
	"a2":                {1190.55, 1683.78},
	"a3":                {841.89, 1190.55},
	"a4":                {595.28, 841.89},
	"a5":                {419.53, 595.28},
	"a6":                {297.64, 419.53},
	"a7":                {209.76, 297.64},
	"a8":                {147.40, 209.76},
	"a9":                {104.88, 147.40},
	"a10":               {73.70, 104.88},
	"b0":                {2834.65, 4008.19},
	"b1":                {2004.09, 2834.65},
	"b2":                {1417.32, 2004.09},
	"b3":                {1000.63, 1417.32},
	"b4":                {708.66, 1000.63},
	"b5":                {498.90, 708.66},
	"b6":                {354.33, 498.90},
	"b7":                {249.45, 354.33},
	"b8":                {175.75, 249.45},
	"b9":                {124.72, 175.75},
	"b10":               {87.87, 124.72},
	"c0":                {2599.37, 3676.54},
	"c1":                {1836.85, 2599.37},
	"c2":                {1298.27, 1836.85},
	"c3":                {918.43, 1298.27},
	"c4":                {649.13, 918.43},
	"c5":                {459.21, 649.13},
	"c6":                {323.15, 459.21},
	"c7":                {229.61, 323.15},
	"c8":                {161.57, 229.61},
	"c9":                {113.39, 161.57},
	"c10":               {79.37, 113.39},
	"dl":                {311.81, 623.62},
	"letter":            {612, 792},
	"government-letter": {576, 756},
	"legal":             {612, 1008},
	"junior-legal":      {576, 360},
	"ledger":            {1224, 792},
	"tabloid":           {792, 1224},
	"credit-card":       {153, 243},
}

// Format is either a named paper size or a custom width and height already
// expressed in the target unit. The zero Format means DefaultFormat.
type Format struct {
	Name   string
	Width  float64
	Height float64
}

// Named returns the paper size registered under name.
func Named(name string) Format {
	return Format{Name: name}
}

// Custom returns a literal page size in the target unit.
func Custom(width, height float64) Format {
	return Format{Width: width, Height: height}
}

// IsCustom reports whether f carries literal dimensions.
func (f Format) IsCustom() bool {
	return f.Name == "" && (f.Width != 0 || f.Height != 0)
}

func (f Format) String() string {
	if f.IsCustom() {
		return fmt.Sprintf("%gx%g", f.Width, f.Height)
	}
	if f.Name == "" {
		return DefaultFormat
	}
	return f.Name
}

// FormatNames lists the known paper names in sorted order.
func FormatNames() []string {
	names := make([]string, 0, len(paperSizes))
	for name := range paperSizes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// pointSize looks up a named paper size. Names are case-insensitive.
func pointSize(name string) (w, h float64, ok bool) {
	size, ok := paperSizes[strings.ToLower(strings.TrimSpace(name))]
	return size[0], size[1], ok
}

// ParseFormat reads a paper name ("a4", "Letter") or a custom size written
// as "WIDTHxHEIGHT" in the target unit ("210x297").
func ParseFormat(s string) (Format, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Format{}, nil
	}
	if _, _, ok := pointSize(s); ok {
		return Named(s), nil
	}
	ws, hs, found := strings.Cut(strings.ToLower(s), "x")
	if !found {
		return Format{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	w, errW := strconv.ParseFloat(strings.TrimSpace(ws), 64)
	h, errH := strconv.ParseFloat(strings.TrimSpace(hs), 64)
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return Format{}, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	return Custom(w, h), nil
}
