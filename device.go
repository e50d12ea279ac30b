package flint

import "image"

// Pen is an opaque handle to a device pen saved by ChangePenWidth.
// Its concrete type is backend-specific; callers only pass it back to
// ResetPenWidth.
type Pen interface{}

// Device is the contract every native graphics system implements.
// All coordinates are device pixels; the Driver has already applied
// the logical-to-device scale transform and keeps the clip region
// stack, so a device only has to translate each call into native
// drawing operations against its rendering context.
//
// Devices are stateful like the native contexts they wrap: SetColor
// and SetLineStyle mutate the pen and brush consumed by every
// subsequent draw call. A device is bound to one surface and must not
// be used from more than one goroutine.
type Device interface {
	// SetColor sets both the pen (outline) and brush (fill) color.
	SetColor(c Color)

	// SetLineStyle sets the stroke pattern, width and caps. A nil
	// dashes slice selects the style's built-in pattern; a non-nil
	// slice gives explicit on/off run lengths in device pixels.
	SetLineStyle(style LineStyle, width int, dashes []int)

	// Fill fills a device rectangle with the brush color.
	Fill(x, y, w, h int)

	// StrokeLine strokes an open polyline with the pen. The terminal
	// pixel of the final segment is part of the result; devices whose
	// native line primitive excludes it must plot it explicitly.
	StrokeLine(pts []image.Point)

	// StrokeClosed strokes a closed outline through the points,
	// including the segment from the last point back to the first.
	StrokeClosed(pts []image.Point)

	// FillPolygon fills the polygon with the brush color.
	FillPolygon(pts []image.Point)

	// PlotPixel sets a single pixel to the pen color, bypassing the
	// line style.
	PlotPixel(x, y int)

	// ApplyClip installs the effective clip region as a set of
	// disjoint device rectangles. nil means unclipped; a non-nil
	// empty slice means everything is clipped out.
	ApplyClip(rects []image.Rectangle)

	// ChangePenWidth installs a solid pen of the given device width
	// and returns a handle to the pen it replaced. Every call must be
	// paired with exactly one ResetPenWidth, including on early-return
	// paths. On allocation failure the device reports through the
	// package logger, leaves the current pen installed, and returns a
	// handle that ResetPenWidth accepts as a no-op.
	ChangePenWidth(width int) Pen

	// ResetPenWidth restores the pen saved by ChangePenWidth and
	// releases the temporary one.
	ResetPenWidth(p Pen)

	// SupportsDottedLines reports whether the device has a native
	// dotted line style. When false, the driver approximates focus
	// rectangles by plotting every other pixel.
	SupportsDottedLines() bool
}

// CoordinateMapper is implemented by devices whose native API keeps
// its own logical-to-device transform, such as print and print-preview
// contexts. The driver routes clip-box and clip-test queries through
// it instead of the plain scaler so results come back in the surface's
// logical space.
type CoordinateMapper interface {
	LogicalToDevice(r image.Rectangle) image.Rectangle
	DeviceToLogical(r image.Rectangle) image.Rectangle
}
