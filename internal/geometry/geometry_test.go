package geometry

import (
	"errors"
	"math"
	"testing"
)

func almostEqual(a, b, epsilon float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestParseUnit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Unit
		wantErr error
	}{
		{"", Millimeter, nil},
		{"pt", Point, nil},
		{"MM", Millimeter, nil},
		{" cm ", Centimeter, nil},
		{"in", Inch, nil},
		{"px", Pixel, nil},
		{"pc", Pica, nil},
		{"em", Em, nil},
		{"ex", Ex, nil},
		{"furlong", "", ErrInvalidUnit},
		{"inch", "", ErrInvalidUnit},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			got, err := ParseUnit(tt.in)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseUnit(%q) error = %v, want %v", tt.in, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseUnit(%q) unexpected error: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseUnit(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestUnitK(t *testing.T) {
	t.Parallel()

	tests := []struct {
		unit Unit
		want float64
	}{
		{Point, 1},
		{Millimeter, 72 / 25.4},
		{Centimeter, 72 / 2.54},
		{Inch, 72},
		{Pixel, 0.75},
		{Pica, 12},
		{Em, 12},
		{Ex, 6},
	}

	for _, tt := range tests {
		got, err := tt.unit.K()
		if err != nil {
			t.Fatalf("%s.K() unexpected error: %v", tt.unit, err)
		}
		if !almostEqual(got, tt.want, 1e-12) {
			t.Errorf("%s.K() = %v, want %v", tt.unit, got, tt.want)
		}
	}

	if _, err := Unit("yd").K(); !errors.Is(err, ErrInvalidUnit) {
		t.Errorf("Unit(yd).K() error = %v, want ErrInvalidUnit", err)
	}
}

func TestResolve_A4Millimeters(t *testing.T) {
	t.Parallel()

	g, err := Resolve(Portrait, Millimeter, Named("a4"))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if !almostEqual(g.Width, 210.0, 0.01) {
		t.Errorf("width = %v, want ~210", g.Width)
	}
	if !almostEqual(g.Height, 297.0, 0.01) {
		t.Errorf("height = %v, want ~297", g.Height)
	}
	if g.Unit != Millimeter || !almostEqual(g.K, 72/25.4, 1e-12) {
		t.Errorf("unit/k = %s/%v", g.Unit, g.K)
	}
}

func TestResolve_Defaults(t *testing.T) {
	t.Parallel()

	g, err := Resolve("", "", Format{})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want, _ := Resolve(Portrait, Millimeter, Named("a4"))
	if g != want {
		t.Errorf("zero-value Resolve = %+v, want %+v", g, want)
	}
}

func TestResolve_OrientationInvariant(t *testing.T) {
	t.Parallel()

	units := []Unit{Point, Millimeter, Centimeter, Inch, Pixel, Pica, Em, Ex}
	formats := []Format{Custom(300, 100), Custom(100, 300), Custom(50, 50)}
	for _, name := range FormatNames() {
		formats = append(formats, Named(name))
	}

	for _, u := range units {
		for _, f := range formats {
			p, err := Resolve(Portrait, u, f)
			if err != nil {
				t.Fatalf("Resolve(portrait, %s, %s): %v", u, f, err)
			}
			if p.Width > p.Height {
				t.Errorf("portrait %s/%s: width %v > height %v", u, f, p.Width, p.Height)
			}

			l, err := Resolve(Landscape, u, f)
			if err != nil {
				t.Fatalf("Resolve(landscape, %s, %s): %v", u, f, err)
			}
			if l.Height > l.Width {
				t.Errorf("landscape %s/%s: height %v > width %v", u, f, l.Height, l.Width)
			}
		}
	}
}

func TestResolve_Deterministic(t *testing.T) {
	t.Parallel()

	first, err := Resolve(Landscape, Inch, Named("legal"))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 10; i++ {
		again, err := Resolve(Landscape, Inch, Named("legal"))
		if err != nil {
			t.Fatal(err)
		}
		if again != first {
			t.Fatalf("call %d returned %+v, want %+v", i, again, first)
		}
	}
}

func TestResolve_CustomFormatSkipsConversion(t *testing.T) {
	t.Parallel()

	g, err := Resolve(Portrait, Inch, Custom(8.5, 11))
	if err != nil {
		t.Fatal(err)
	}
	if g.Width != 8.5 || g.Height != 11 {
		t.Errorf("custom size = %vx%v, want 8.5x11", g.Width, g.Height)
	}
}

func TestResolve_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		orientation Orientation
		unit        Unit
		format      Format
		wantErr     error
	}{
		{"unknown unit", Portrait, "yd", Named("a4"), ErrInvalidUnit},
		{"unknown format", Portrait, Millimeter, Named("a42"), ErrInvalidFormat},
		{"negative custom", Portrait, Millimeter, Custom(-1, 20), ErrInvalidFormat},
		{"unknown orientation", "sideways", Millimeter, Named("a4"), ErrInvalidOrientation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Resolve(tt.orientation, tt.unit, tt.format)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseOrientation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Orientation
		wantErr bool
	}{
		{"", Portrait, false},
		{"p", Portrait, false},
		{"Portrait", Portrait, false},
		{"L", Landscape, false},
		{"landscape", Landscape, false},
		{"upside-down", "", true},
	}

	for _, tt := range tests {
		got, err := ParseOrientation(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseOrientation(%q) error = %v", tt.in, err)
		}
		if err != nil && !errors.Is(err, ErrInvalidOrientation) {
			t.Errorf("ParseOrientation(%q) error = %v, want ErrInvalidOrientation", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseOrientation(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", Format{}, false},
		{"a4", Named("a4"), false},
		{"Letter", Named("Letter"), false},
		{"210x297", Custom(210, 297), false},
		{"8.5 x 11", Custom(8.5, 11), false},
		{"0x10", Format{}, true},
		{"big", Format{}, true},
		{"10xabc", Format{}, true},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseFormat(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestExpandMargin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		in     []float64
		want   Margin
		wantOK bool
	}{
		{"single", []float64{10}, Margin{10, 10, 10, 10}, true},
		{"pair", []float64{5, 8}, Margin{5, 8, 5, 5}, true},
		{"four", []float64{1, 2, 3, 4}, Margin{1, 2, 3, 4}, true},
		{"three", []float64{1, 2, 3}, Margin{}, false},
		{"empty", nil, Margin{}, false},
		{"five", []float64{1, 2, 3, 4, 5}, Margin{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := ExpandMargin(tt.in)
			if ok != tt.wantOK {
				t.Fatalf("ok = %v, want %v", ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("ExpandMargin(%v) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestGeometryInner(t *testing.T) {
	t.Parallel()

	g := Geometry{Width: 210, Height: 297, Unit: Millimeter, K: 72 / 25.4}

	inner, err := g.Inner(Margin{Top: 10, Right: 10, Bottom: 10, Left: 10})
	if err != nil {
		t.Fatalf("Inner: %v", err)
	}
	if inner.Width != 190 || inner.Height != 277 {
		t.Errorf("inner = %vx%v, want 190x277", inner.Width, inner.Height)
	}
	if !almostEqual(inner.Ratio, 277.0/190.0, 1e-12) {
		t.Errorf("ratio = %v, want %v", inner.Ratio, 277.0/190.0)
	}

	if _, err := g.Inner(Margin{Left: 105, Right: 105}); !errors.Is(err, ErrInvalidMargin) {
		t.Errorf("zero inner width error = %v, want ErrInvalidMargin", err)
	}
	if _, err := g.Inner(Margin{Top: 200, Bottom: 200}); !errors.Is(err, ErrInvalidMargin) {
		t.Errorf("negative inner height error = %v, want ErrInvalidMargin", err)
	}
}

func TestPageBoundaryPx(t *testing.T) {
	t.Parallel()

	// One inch of inner height is 96 CSS pixels.
	inner := Inner{Width: 1, Height: 1, Ratio: 1}
	if got := inner.PageBoundaryPx(72); !almostEqual(got, 96, 1e-9) {
		t.Errorf("PageBoundaryPx = %v, want 96", got)
	}
	if got := inner.WidthPx(72); !almostEqual(got, 96, 1e-9) {
		t.Errorf("WidthPx = %v, want 96", got)
	}
}
