package flint

import (
	"image"
)

// Driver is the backend-independent drawing interface the widget
// layer renders through. It owns the cross-backend state — current
// color, line style, clip region stack, and coordinate scaler — and
// dispatches device-space primitives to the Device selected for the
// surface at creation time.
//
// A Driver belongs to one surface and one goroutine (conventionally
// the UI thread). It is not reentrant; no method may be called while
// another is in progress on the same Driver.
type Driver struct {
	dev    Device
	scaler Scaler

	color  Color
	style  LineStyle
	width  int
	dashes []int

	clip clipStack
}

// New creates a driver over the given device. The device is owned by
// the window/widget layer; the driver holds it only while drawing.
func New(dev Device, opts ...Option) *Driver {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	d := &Driver{
		dev:    dev,
		scaler: NewScaler(o.scale),
		color:  o.color,
		style:  Solid,
		width:  0,
	}
	d.clip.init()
	dev.SetColor(d.color)
	dev.SetLineStyle(Solid, d.scaler.LineWidth(0), nil)
	return d
}

// Device returns the device this driver dispatches to.
func (d *Driver) Device() Device {
	return d.dev
}

// Scale returns the current logical-to-device scale factor.
func (d *Driver) Scale() float64 {
	return d.scaler.Factor()
}

// SetScale changes the scale factor. It re-applies the current line
// style so the device pen width tracks the new factor. Clip regions
// already on the stack keep their device-space extents; callers change
// scale between drawing passes, not mid-frame.
func (d *Driver) SetScale(f float64) {
	d.scaler = NewScaler(f)
	d.dev.SetLineStyle(d.style, d.scaler.LineWidth(d.width), d.dashes)
}

// SetColor sets the current drawing color. Both state slots change:
// the pen used by outlines and the brush used by fills.
func (d *Driver) SetColor(c Color) {
	d.color = c
	d.dev.SetColor(c)
}

// Color returns the current drawing color.
func (d *Driver) Color() Color {
	return d.color
}

// LineStyle sets the stroke style and logical width. A width of zero
// selects the thinnest visible line at the current scale. dashes, when
// non-nil, gives explicit on/off run lengths in logical units.
func (d *Driver) LineStyle(style LineStyle, width int, dashes []int) {
	d.style = style
	d.width = width
	if dashes != nil {
		scaled := make([]int, len(dashes))
		for i, v := range dashes {
			scaled[i] = d.scaler.Span(0, v)
			if scaled[i] < 1 {
				scaled[i] = 1
			}
		}
		d.dashes = scaled
	} else {
		d.dashes = nil
	}
	d.dev.SetLineStyle(style, d.scaler.LineWidth(width), d.dashes)
}

// Point draws a single logical point: a filled 1x1 logical rectangle,
// which may cover several device pixels at scale factors above one.
func (d *Driver) Point(x, y int) {
	d.Rectf(x, y, 1, 1)
}

// Rectf fills a rectangle with the brush color. Degenerate rectangles
// draw nothing.
func (d *Driver) Rectf(x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	d.dev.Fill(d.scaler.Lo(x), d.scaler.Lo(y), d.scaler.Span(x, w), d.scaler.Span(y, h))
}

// Rect strokes a rectangle outline with the pen. The outline hugs the
// same device pixels Rectf would fill.
func (d *Driver) Rect(x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	x0, y0 := d.scaler.Lo(x), d.scaler.Lo(y)
	x1 := x0 + d.scaler.Span(x, w) - 1
	y1 := y0 + d.scaler.Span(y, h) - 1
	d.dev.StrokeClosed([]image.Point{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}})
}

// Line draws a line segment between two logical points, including the
// terminal pixel.
func (d *Driver) Line(x0, y0, x1, y1 int) {
	d.dev.StrokeLine([]image.Point{
		{d.scaler.Lo(x0), d.scaler.Lo(y0)},
		{d.scaler.Lo(x1), d.scaler.Lo(y1)},
	})
}

// Line3 draws two connected line segments, including the terminal
// pixel of the second.
func (d *Driver) Line3(x0, y0, x1, y1, x2, y2 int) {
	d.dev.StrokeLine([]image.Point{
		{d.scaler.Lo(x0), d.scaler.Lo(y0)},
		{d.scaler.Lo(x1), d.scaler.Lo(y1)},
		{d.scaler.Lo(x2), d.scaler.Lo(y2)},
	})
}

// XYLine draws an axis-aligned multi-segment line starting horizontal:
// from (x,y) to (x1,y), then optionally vertical to y2, then
// optionally horizontal to x3. Horizontal and vertical runs cover the
// full scaled extent of both endpoints.
func (d *Driver) XYLine(x, y, x1 int, rest ...int) {
	pts := []image.Point{{d.scaler.Lo(x), d.scaler.Lo(y)}}
	cx, cy := x1, y
	pts = append(pts, image.Point{d.axisEnd(x, x1), d.scaler.Lo(y)})
	if len(rest) >= 1 {
		y2 := rest[0]
		pts = append(pts, image.Point{pts[len(pts)-1].X, d.axisEnd(cy, y2)})
		cy = y2
	}
	if len(rest) >= 2 {
		x3 := rest[1]
		pts = append(pts, image.Point{d.axisEnd(cx, x3), pts[len(pts)-1].Y})
	}
	d.dev.StrokeLine(pts)
}

// YXLine draws an axis-aligned multi-segment line starting vertical:
// from (x,y) to (x,y1), then optionally horizontal to x2, then
// optionally vertical to y3.
func (d *Driver) YXLine(x, y, y1 int, rest ...int) {
	pts := []image.Point{{d.scaler.Lo(x), d.scaler.Lo(y)}}
	cx, cy := x, y1
	pts = append(pts, image.Point{d.scaler.Lo(x), d.axisEnd(y, y1)})
	if len(rest) >= 1 {
		x2 := rest[0]
		pts = append(pts, image.Point{d.axisEnd(cx, x2), pts[len(pts)-1].Y})
		cx = x2
	}
	if len(rest) >= 2 {
		y3 := rest[1]
		pts = append(pts, image.Point{pts[len(pts)-1].X, d.axisEnd(cy, y3)})
	}
	d.dev.StrokeLine(pts)
}

// axisEnd maps the far endpoint of an axis-aligned run so the run
// covers the endpoint's whole scaled cell: moving toward positive
// coordinates it extends to the last pixel of the cell, moving toward
// negative coordinates it stops at the first.
func (d *Driver) axisEnd(from, to int) int {
	if to >= from {
		return d.scaler.Lo(to+1) - 1
	}
	return d.scaler.Lo(to)
}

// Loop strokes a closed outline through three or four vertices with
// the pen. Other vertex counts draw nothing.
func (d *Driver) Loop(pts ...image.Point) {
	if len(pts) != 3 && len(pts) != 4 {
		return
	}
	d.dev.StrokeClosed(d.scalePoints(pts))
}

// Polygon fills a convex polygon of three or four vertices with the
// brush color. Other vertex counts draw nothing.
func (d *Driver) Polygon(pts ...image.Point) {
	if len(pts) != 3 && len(pts) != 4 {
		return
	}
	d.dev.FillPolygon(d.scalePoints(pts))
}

func (d *Driver) scalePoints(pts []image.Point) []image.Point {
	out := make([]image.Point, len(pts))
	for i, p := range pts {
		out[i] = image.Point{d.scaler.Lo(p.X), d.scaler.Lo(p.Y)}
	}
	return out
}

// ChangePenWidth installs a solid pen of the given logical width and
// returns a handle to the previous pen. Pair every call with exactly
// one ResetPenWidth; WithPenWidth does the pairing for you.
func (d *Driver) ChangePenWidth(width int) Pen {
	return d.dev.ChangePenWidth(d.scaler.LineWidth(width))
}

// ResetPenWidth restores the pen saved by ChangePenWidth.
func (d *Driver) ResetPenWidth(p Pen) {
	d.dev.ResetPenWidth(p)
}

// WithPenWidth runs fn with a wide pen installed and guarantees the
// previous pen is restored, also when fn panics.
func (d *Driver) WithPenWidth(width int, fn func()) {
	p := d.ChangePenWidth(width)
	defer d.ResetPenWidth(p)
	fn()
}

// OverlayRect draws the dashed outline used for drag selection. The
// line style is restored afterwards. White overlays draw solid so
// they stay visible on patterned backgrounds.
func (d *Driver) OverlayRect(x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	style := Dot
	if d.color == White {
		style = Solid
	}
	prevStyle, prevWidth, prevDashes := d.style, d.width, d.dashes
	d.dev.SetLineStyle(style, 1, nil)

	x0, y0 := d.scaler.Lo(x), d.scaler.Lo(y)
	x1, y1 := d.scaler.Last(x, w), d.scaler.Last(y, h)
	d.dev.StrokeClosed([]image.Point{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}})

	d.dev.SetLineStyle(prevStyle, d.scaler.LineWidth(prevWidth), prevDashes)
}

// FocusRect draws the dotted keyboard-focus outline. Devices with a
// native dotted style stroke it directly; others get every other
// pixel plotted clockwise around the perimeter starting at the
// top-left corner.
func (d *Driver) FocusRect(x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	if d.dev.SupportsDottedLines() {
		prevStyle, prevWidth, prevDashes := d.style, d.width, d.dashes
		d.dev.SetLineStyle(Dot, 1, nil)
		x0, y0 := d.scaler.Lo(x), d.scaler.Lo(y)
		x1, y1 := d.scaler.Last(x, w), d.scaler.Last(y, h)
		d.dev.StrokeClosed([]image.Point{{x0, y0}, {x1, y0}, {x1, y1}, {x0, y1}})
		d.dev.SetLineStyle(prevStyle, d.scaler.LineWidth(prevWidth), prevDashes)
		return
	}

	// No native dotted pen: plot every other pixel clockwise from the
	// top-left corner.
	dw := d.scaler.Last(x, w) - d.scaler.Lo(x) + 1
	dh := d.scaler.Last(y, h) - d.scaler.Lo(y) + 1
	dx, dy := d.scaler.Lo(x), d.scaler.Lo(y)
	i := 1
	for xx := 0; xx < dw; xx, i = xx+1, i+1 {
		if i&1 == 1 {
			d.dev.PlotPixel(dx+xx, dy)
		}
	}
	for yy := 0; yy < dh; yy, i = yy+1, i+1 {
		if i&1 == 1 {
			d.dev.PlotPixel(dx+dw, dy+yy)
		}
	}
	for xx := dw; xx > 0; xx, i = xx-1, i+1 {
		if i&1 == 1 {
			d.dev.PlotPixel(dx+xx, dy+dh)
		}
	}
	for yy := dh; yy > 0; yy, i = yy-1, i+1 {
		if i&1 == 1 {
			d.dev.PlotPixel(dx, dy+yy)
		}
	}
}
