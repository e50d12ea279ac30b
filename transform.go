package flint

import (
	"image"
	"math"
)

// Transform is the 2D affine transform used by print and preview
// surfaces, a 2x3 matrix in row-major order:
//
//	| A  B  C |
//	| D  E  F |
//
// mapping x' = A*x + B*y + C, y' = D*x + E*y + F.
type Transform struct {
	A, B, C float64
	D, E, F float64
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{A: 1, E: 1}
}

// Translate creates a translation transform.
func Translate(x, y float64) Transform {
	return Transform{A: 1, C: x, E: 1, F: y}
}

// ScaleBy creates a scaling transform.
func ScaleBy(x, y float64) Transform {
	return Transform{A: x, E: y}
}

// Rotate creates a rotation transform (angle in radians).
func Rotate(angle float64) Transform {
	cos := math.Cos(angle)
	sin := math.Sin(angle)
	return Transform{A: cos, B: -sin, D: sin, E: cos}
}

// Multiply composes two transforms (t applied after other).
func (t Transform) Multiply(other Transform) Transform {
	return Transform{
		A: t.A*other.A + t.B*other.D,
		B: t.A*other.B + t.B*other.E,
		C: t.A*other.C + t.B*other.F + t.C,
		D: t.D*other.A + t.E*other.D,
		E: t.D*other.B + t.E*other.E,
		F: t.D*other.C + t.E*other.F + t.F,
	}
}

// Apply maps a point through the transform.
func (t Transform) Apply(x, y float64) (float64, float64) {
	return t.A*x + t.B*y + t.C, t.D*x + t.E*y + t.F
}

// Invert returns the inverse transform, or the identity when the
// transform is singular.
func (t Transform) Invert() Transform {
	det := t.A*t.E - t.B*t.D
	if math.Abs(det) < 1e-10 {
		return Identity()
	}
	inv := 1 / det
	return Transform{
		A: t.E * inv,
		B: -t.B * inv,
		C: (t.B*t.F - t.C*t.E) * inv,
		D: -t.D * inv,
		E: t.A * inv,
		F: (t.C*t.D - t.A*t.F) * inv,
	}
}

// IsIdentity reports whether the transform is the identity.
func (t Transform) IsIdentity() bool {
	return t == Identity()
}

// Rect maps a rectangle through the transform and returns the integer
// bounding box of the mapped corners, floor on the near edges and
// covering-ceil on the far edges.
func (t Transform) Rect(r image.Rectangle) image.Rectangle {
	if r.Empty() {
		return image.Rectangle{}
	}
	corners := [4][2]float64{
		{float64(r.Min.X), float64(r.Min.Y)},
		{float64(r.Max.X), float64(r.Min.Y)},
		{float64(r.Min.X), float64(r.Max.Y)},
		{float64(r.Max.X), float64(r.Max.Y)},
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		x, y := t.Apply(c[0], c[1])
		minX = math.Min(minX, x)
		minY = math.Min(minY, y)
		maxX = math.Max(maxX, x)
		maxY = math.Max(maxY, y)
	}
	return image.Rect(
		int(math.Floor(minX+scaleEpsilon)), int(math.Floor(minY+scaleEpsilon)),
		int(math.Ceil(maxX-scaleEpsilon)), int(math.Ceil(maxY-scaleEpsilon)))
}

// PrintDevice wraps a device whose surface carries its own
// logical-to-device transform, the way print and print-preview
// contexts do. Drawing calls pass straight through; the driver's
// clip-box and clip-test queries route through the transform so
// results come back in logical coordinates.
type PrintDevice struct {
	Device
	transform Transform
	inverse   Transform
}

// NewPrintDevice wraps dev with the given surface transform.
func NewPrintDevice(dev Device, t Transform) *PrintDevice {
	return &PrintDevice{Device: dev, transform: t, inverse: t.Invert()}
}

// Transform returns the surface transform.
func (p *PrintDevice) Transform() Transform { return p.transform }

// LogicalToDevice implements CoordinateMapper.
func (p *PrintDevice) LogicalToDevice(r image.Rectangle) image.Rectangle {
	return p.transform.Rect(r)
}

// DeviceToLogical implements CoordinateMapper.
func (p *PrintDevice) DeviceToLogical(r image.Rectangle) image.Rectangle {
	return p.inverse.Rect(r)
}
