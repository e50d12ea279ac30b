package flint

import (
	"image"
	"math"
)

// scaleEpsilon absorbs float rounding so that exact products such as
// 3 * 1.25 do not land a hair below the integer they should floor to.
const scaleEpsilon = 1e-9

// Scaler maps logical (DPI-independent) integer coordinates to device
// pixels through a floating-point scale factor. The factor may be
// fractional (125%, 150% display scaling). One Scaler belongs to one
// drawing surface and changes only when the surface's DPI or
// print-preview context changes.
//
// Edges follow two floor rules:
//
//   - Lower bounds and line endpoints map through Lo, a plain floor.
//   - Widths of fills and clip rectangles map through Span, defined as
//     Lo(v+l)-Lo(v), so that logical rectangles sharing an edge tile
//     device space with no gap and no overlap at any factor.
//
// Outline corners of overlay and focus rectangles use Last, the floor
// of the final logical column (v+l-1), keeping selection feedback
// inside the filled area.
type Scaler struct {
	factor float64
}

// NewScaler returns a scaler with the given factor. Factors that are
// zero or negative are replaced by 1.
func NewScaler(factor float64) Scaler {
	if factor <= 0 {
		factor = 1
	}
	return Scaler{factor: factor}
}

// Factor returns the current scale factor.
func (s Scaler) Factor() float64 {
	return s.factor
}

// Lo maps a logical coordinate to its device pixel.
func (s Scaler) Lo(v int) int {
	return int(math.Floor(float64(v)*s.factor + scaleEpsilon))
}

// Span maps a logical extent starting at v to a device extent such
// that adjacent spans tile exactly.
func (s Scaler) Span(v, length int) int {
	return s.Lo(v+length) - s.Lo(v)
}

// Last maps the final logical column or row of an extent to its
// device pixel (inclusive).
func (s Scaler) Last(v, length int) int {
	return s.Lo(v + length - 1)
}

// Rect maps a logical rectangle to device pixels using the span rule.
// Degenerate input maps to the empty rectangle.
func (s Scaler) Rect(x, y, w, h int) image.Rectangle {
	if w <= 0 || h <= 0 {
		return image.Rectangle{}
	}
	dx := s.Lo(x)
	dy := s.Lo(y)
	return image.Rect(dx, dy, dx+s.Span(x, w), dy+s.Span(y, h))
}

// Unscale maps a device rectangle back to the smallest logical
// rectangle covering it: floor for the origin, covering-ceil for the
// far edge. At factor 1 this is the identity, so clip-box results
// round-trip exactly on unscaled surfaces.
func (s Scaler) Unscale(r image.Rectangle) (x, y, w, h int) {
	if r.Empty() {
		return 0, 0, 0, 0
	}
	x = int(math.Floor(float64(r.Min.X)/s.factor + scaleEpsilon))
	y = int(math.Floor(float64(r.Min.Y)/s.factor + scaleEpsilon))
	x1 := int(math.Ceil(float64(r.Max.X)/s.factor - scaleEpsilon))
	y1 := int(math.Ceil(float64(r.Max.Y)/s.factor - scaleEpsilon))
	return x, y, x1 - x, y1 - y
}

// LineWidth maps a logical pen width to device pixels, never thinner
// than one pixel.
func (s Scaler) LineWidth(w int) int {
	if w <= 0 {
		return 1
	}
	d := int(math.Round(float64(w) * s.factor))
	if d < 1 {
		d = 1
	}
	return d
}
