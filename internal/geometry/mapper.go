package geometry

// Rect is an axis-aligned rectangle. Its unit depends on context: CSS
// pixels when it comes from the layout engine, page units once mapped.
type Rect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ToUnits maps a rectangle from CSS pixels to page units.
func ToUnits(r Rect, k float64) Rect {
	return Rect{
		Left:   PxToUnits(r.Left, k),
		Top:    PxToUnits(r.Top, k),
		Width:  PxToUnits(r.Width, k),
		Height: PxToUnits(r.Height, k),
	}
}

// ToPixels is the inverse of ToUnits.
func ToPixels(r Rect, k float64) Rect {
	return Rect{
		Left:   UnitsToPx(r.Left, k),
		Top:    UnitsToPx(r.Top, k),
		Width:  UnitsToPx(r.Width, k),
		Height: UnitsToPx(r.Height, k),
	}
}

// RelativeTo expresses r in the coordinate space whose origin is the
// top-left corner of origin.
func (r Rect) RelativeTo(origin Rect) Rect {
	r.Left -= origin.Left
	r.Top -= origin.Top
	return r
}
