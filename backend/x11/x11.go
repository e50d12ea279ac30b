//go:build linux

// Package x11 renders flint primitives through the X11 protocol using
// a pure-Go client (jezek/xgb). Importing the package registers the
// backend:
//
//	import _ "github.com/flintkit/flint/backend/x11"
package x11

import (
	"fmt"
	"image"

	"github.com/jezek/xgb"
	"github.com/jezek/xgb/xproto"

	"github.com/flintkit/flint"
	"github.com/flintkit/flint/backend"
)

func init() {
	backend.Register(backend.BackendX11, func() backend.GraphicsBackend {
		return &Backend{}
	})
}

// Backend is the X11 graphics backend. One backend owns one display
// connection shared by all its devices.
type Backend struct {
	conn        *xgb.Conn
	screen      *xproto.ScreenInfo
	initialized bool
}

// NewBackend creates an X11 backend. Init connects to the display.
func NewBackend() *Backend {
	return &Backend{}
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return backend.BackendX11
}

// Init connects to the display named by $DISPLAY.
func (b *Backend) Init() error {
	if b.initialized {
		return nil
	}
	conn, err := xgb.NewConn()
	if err != nil {
		return fmt.Errorf("x11: connect: %w", err)
	}
	setup := xproto.Setup(conn)
	if len(setup.Roots) == 0 {
		conn.Close()
		return fmt.Errorf("x11: display has no screens")
	}
	b.conn = conn
	b.screen = setup.DefaultScreen(conn)
	b.initialized = true
	return nil
}

// Close drops the display connection. Devices created from this
// backend must be closed first.
func (b *Backend) Close() {
	if b.conn != nil {
		b.conn.Close()
		b.conn = nil
	}
	b.initialized = false
}

// NewDevice creates a device drawing into a server-side pixmap of the
// given size at the screen's root depth.
func (b *Backend) NewDevice(width, height int) (flint.Device, error) {
	if !b.initialized {
		return nil, backend.ErrNotInitialized
	}
	pid, err := xproto.NewPixmapId(b.conn)
	if err != nil {
		return nil, fmt.Errorf("x11: pixmap id: %w", err)
	}
	root := xproto.Drawable(b.screen.Root)
	if err := xproto.CreatePixmapChecked(b.conn, b.screen.RootDepth, pid, root,
		uint16(width), uint16(height)).Check(); err != nil {
		return nil, fmt.Errorf("x11: create pixmap: %w", err)
	}
	dev, err := NewDevice(b.conn, xproto.Drawable(pid))
	if err != nil {
		xproto.FreePixmap(b.conn, pid)
		return nil, err
	}
	dev.ownsDrawable = true
	return dev, nil
}

// Device draws into one X11 drawable through its own graphics
// context. Pen and brush state live in the GC; the clip region is
// installed as client-computed rectangles via SetClipRectangles, so
// composite regions clip exactly.
type Device struct {
	conn     *xgb.Conn
	drawable xproto.Drawable
	gc       xproto.Gcontext

	fg    uint32
	style flint.LineStyle
	width int

	ownsDrawable bool
}

// NewDevice wraps an existing drawable (window or pixmap) in a
// device. The device allocates its own GC and owns it; the drawable
// stays owned by the caller.
func NewDevice(conn *xgb.Conn, drawable xproto.Drawable) (*Device, error) {
	gc, err := xproto.NewGcontextId(conn)
	if err != nil {
		return nil, fmt.Errorf("x11: gc id: %w", err)
	}
	if err := xproto.CreateGCChecked(conn, gc, drawable,
		xproto.GcGraphicsExposures, []uint32{0}).Check(); err != nil {
		return nil, fmt.Errorf("x11: create gc: %w", err)
	}
	return &Device{
		conn:     conn,
		drawable: drawable,
		gc:       gc,
		width:    1,
	}, nil
}

// Drawable returns the underlying X11 drawable.
func (d *Device) Drawable() xproto.Drawable { return d.drawable }

// Close frees the GC and, when the device owns it, the drawable.
func (d *Device) Close() {
	xproto.FreeGC(d.conn, d.gc)
	if d.ownsDrawable {
		xproto.FreePixmap(d.conn, xproto.Pixmap(d.drawable))
	}
}

// SetColor implements flint.Device. Colors map to TrueColor pixels;
// X11 has no alpha in the core protocol, so alpha is ignored.
func (d *Device) SetColor(c flint.Color) {
	d.fg = uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
	xproto.ChangeGC(d.conn, d.gc, xproto.GcForeground, []uint32{d.fg})
}

// SetLineStyle implements flint.Device. Non-solid patterns use the
// server's on-off dash style; custom dash arrays fall back to the
// default server pattern since the core protocol's dash list is
// limited anyway.
func (d *Device) SetLineStyle(style flint.LineStyle, width int, dashes []int) {
	d.style = style
	d.width = width

	lineStyle := uint32(xproto.LineStyleSolid)
	if style.Pattern() != flint.Solid || dashes != nil {
		lineStyle = xproto.LineStyleOnOffDash
	}
	capStyle := uint32(xproto.CapStyleButt)
	switch style.Cap() {
	case flint.CapRound:
		capStyle = xproto.CapStyleRound
	case flint.CapSquare:
		capStyle = xproto.CapStyleProjecting
	}
	joinStyle := uint32(xproto.JoinStyleMiter)
	switch style.Join() {
	case flint.JoinRound:
		joinStyle = xproto.JoinStyleRound
	case flint.JoinBevel:
		joinStyle = xproto.JoinStyleBevel
	}

	// Value list order follows the GC mask bit order.
	xproto.ChangeGC(d.conn, d.gc,
		xproto.GcLineWidth|xproto.GcLineStyle|xproto.GcCapStyle|xproto.GcJoinStyle,
		[]uint32{uint32(width), lineStyle, capStyle, joinStyle})
}

// Fill implements flint.Device.
func (d *Device) Fill(x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	xproto.PolyFillRectangle(d.conn, d.drawable, d.gc, []xproto.Rectangle{{
		X: int16(x), Y: int16(y), Width: uint16(w), Height: uint16(h),
	}})
}

// StrokeLine implements flint.Device. The server omits the terminal
// pixel of thin polylines, so it is plotted explicitly.
func (d *Device) StrokeLine(pts []image.Point) {
	if len(pts) < 2 {
		return
	}
	xproto.PolyLine(d.conn, xproto.CoordModeOrigin, d.drawable, d.gc, xPoints(pts))
	last := pts[len(pts)-1]
	xproto.PolyPoint(d.conn, xproto.CoordModeOrigin, d.drawable, d.gc,
		[]xproto.Point{{X: int16(last.X), Y: int16(last.Y)}})
}

// StrokeClosed implements flint.Device.
func (d *Device) StrokeClosed(pts []image.Point) {
	if len(pts) < 2 {
		return
	}
	closed := append(xPoints(pts), xproto.Point{X: int16(pts[0].X), Y: int16(pts[0].Y)})
	xproto.PolyLine(d.conn, xproto.CoordModeOrigin, d.drawable, d.gc, closed)
}

// FillPolygon implements flint.Device.
func (d *Device) FillPolygon(pts []image.Point) {
	if len(pts) < 3 {
		return
	}
	xproto.FillPoly(d.conn, d.drawable, d.gc, xproto.PolyShapeConvex,
		xproto.CoordModeOrigin, xPoints(pts))
}

// PlotPixel implements flint.Device.
func (d *Device) PlotPixel(x, y int) {
	xproto.PolyPoint(d.conn, xproto.CoordModeOrigin, d.drawable, d.gc,
		[]xproto.Point{{X: int16(x), Y: int16(y)}})
}

// ApplyClip implements flint.Device. nil restores unclipped drawing;
// an empty slice installs an empty clip list, which the server treats
// as "nothing visible".
func (d *Device) ApplyClip(rects []image.Rectangle) {
	if rects == nil {
		xproto.ChangeGC(d.conn, d.gc, xproto.GcClipMask,
			[]uint32{uint32(xproto.PixmapNone)})
		return
	}
	xr := make([]xproto.Rectangle, len(rects))
	for i, r := range rects {
		xr[i] = xproto.Rectangle{
			X: int16(r.Min.X), Y: int16(r.Min.Y),
			Width: uint16(r.Dx()), Height: uint16(r.Dy()),
		}
	}
	xproto.SetClipRectangles(d.conn, xproto.ClipOrderingUnsorted, d.gc, 0, 0, xr)
}

// x11Pen restores the GC stroke state saved by ChangePenWidth.
type x11Pen struct {
	style flint.LineStyle
	width int
}

// ChangePenWidth implements flint.Device. X11 pens are GC attributes,
// not allocated objects, so the handle just snapshots the stroke
// state.
func (d *Device) ChangePenWidth(width int) flint.Pen {
	prev := x11Pen{style: d.style, width: d.width}
	d.SetLineStyle(flint.Solid, width, nil)
	return prev
}

// ResetPenWidth implements flint.Device.
func (d *Device) ResetPenWidth(p flint.Pen) {
	prev, ok := p.(x11Pen)
	if !ok {
		return
	}
	d.SetLineStyle(prev.style, prev.width, nil)
}

// SupportsDottedLines implements flint.Device; the server dashes
// natively.
func (d *Device) SupportsDottedLines() bool { return true }

func xPoints(pts []image.Point) []xproto.Point {
	out := make([]xproto.Point, len(pts))
	for i, p := range pts {
		out[i] = xproto.Point{X: int16(p.X), Y: int16(p.Y)}
	}
	return out
}
