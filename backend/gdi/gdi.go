//go:build windows

// Package gdi renders flint primitives through Windows GDI. Importing
// the package registers the backend:
//
//	import _ "github.com/flintkit/flint/backend/gdi"
package gdi

import (
	"fmt"
	"image"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/flintkit/flint"
	"github.com/flintkit/flint/backend"
)

var (
	gdi32  = windows.NewLazySystemDLL("gdi32.dll")
	user32 = windows.NewLazySystemDLL("user32.dll")

	procCreateCompatibleDC     = gdi32.NewProc("CreateCompatibleDC")
	procCreateCompatibleBitmap = gdi32.NewProc("CreateCompatibleBitmap")
	procDeleteDC               = gdi32.NewProc("DeleteDC")
	procDeleteObject           = gdi32.NewProc("DeleteObject")
	procSelectObject           = gdi32.NewProc("SelectObject")
	procCreatePen              = gdi32.NewProc("CreatePen")
	procExtCreatePen           = gdi32.NewProc("ExtCreatePen")
	procCreateSolidBrush       = gdi32.NewProc("CreateSolidBrush")
	procMoveToEx               = gdi32.NewProc("MoveToEx")
	procLineTo                 = gdi32.NewProc("LineTo")
	procSetPixel               = gdi32.NewProc("SetPixel")
	procPolygon                = gdi32.NewProc("Polygon")
	procCreateRectRgn          = gdi32.NewProc("CreateRectRgn")
	procCombineRgn             = gdi32.NewProc("CombineRgn")
	procSelectClipRgn          = gdi32.NewProc("SelectClipRgn")
	procGetDC                  = user32.NewProc("GetDC")
	procReleaseDC              = user32.NewProc("ReleaseDC")
	procFillRect               = user32.NewProc("FillRect")
)

// GDI constants used by the device.
const (
	psGeometric  = 0x00010000
	psEndcapFlat = 0x00000200
	psJoinRound  = 0x00000000

	bsSolid = 0

	rgnOr = 2

	errorRegion = 0
)

type logBrush struct {
	Style uint32
	Color uint32
	Hatch uintptr
}

type wRect struct {
	Left, Top, Right, Bottom int32
}

type wPoint struct {
	X, Y int32
}

func colorref(c flint.Color) uintptr {
	// COLORREF is 0x00BBGGRR.
	return uintptr(uint32(c.R) | uint32(c.G)<<8 | uint32(c.B)<<16)
}

func init() {
	backend.Register(backend.BackendGDI, func() backend.GraphicsBackend {
		return &Backend{}
	})
}

// Backend is the Windows GDI graphics backend.
type Backend struct {
	initialized bool
}

// NewBackend creates a GDI backend.
func NewBackend() *Backend {
	return &Backend{}
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return backend.BackendGDI
}

// Init verifies gdi32 is loadable.
func (b *Backend) Init() error {
	if err := gdi32.Load(); err != nil {
		return fmt.Errorf("gdi: %w", err)
	}
	b.initialized = true
	return nil
}

// Close releases backend resources.
func (b *Backend) Close() {
	b.initialized = false
}

// NewDevice creates a device over a memory DC with a compatible
// bitmap of the given size.
func (b *Backend) NewDevice(width, height int) (flint.Device, error) {
	if !b.initialized {
		return nil, backend.ErrNotInitialized
	}
	screen, _, _ := procGetDC.Call(0)
	if screen == 0 {
		return nil, fmt.Errorf("gdi: GetDC failed")
	}
	defer procReleaseDC.Call(0, screen)

	dc, _, _ := procCreateCompatibleDC.Call(screen)
	if dc == 0 {
		return nil, fmt.Errorf("gdi: CreateCompatibleDC failed")
	}
	bmp, _, _ := procCreateCompatibleBitmap.Call(screen, uintptr(width), uintptr(height))
	if bmp == 0 {
		procDeleteDC.Call(dc)
		return nil, fmt.Errorf("gdi: CreateCompatibleBitmap failed")
	}
	procSelectObject.Call(dc, bmp)

	dev := NewDevice(windows.Handle(dc))
	dev.bitmap = windows.Handle(bmp)
	dev.ownsDC = true
	return dev, nil
}

// Device draws into one GDI device context. The pen and brush are
// separate GDI objects rebuilt when the color or line style changes;
// both track the single driver color, as the drawing contract
// requires.
type Device struct {
	dc     windows.Handle
	bitmap windows.Handle
	ownsDC bool

	color  flint.Color
	style  flint.LineStyle
	width  int
	pen    windows.Handle
	brush  windows.Handle
	oldPen uintptr
}

// NewDevice wraps an existing device context. The caller keeps
// ownership of the DC; Close releases only objects the device made.
func NewDevice(dc windows.Handle) *Device {
	d := &Device{dc: dc, color: flint.Black, width: 1}
	d.rebuildPen()
	d.rebuildBrush()
	return d
}

// DC returns the underlying device context handle.
func (d *Device) DC() windows.Handle { return d.dc }

// Close restores the original pen and releases GDI objects. Devices
// created by the backend also release their DC and bitmap.
func (d *Device) Close() {
	if d.oldPen != 0 {
		procSelectObject.Call(uintptr(d.dc), d.oldPen)
	}
	if d.pen != 0 {
		procDeleteObject.Call(uintptr(d.pen))
	}
	if d.brush != 0 {
		procDeleteObject.Call(uintptr(d.brush))
	}
	if d.ownsDC {
		procDeleteObject.Call(uintptr(d.bitmap))
		procDeleteDC.Call(uintptr(d.dc))
	}
}

// rebuildPen creates and selects a pen for the current color and
// stroke state. The pattern values of LineStyle match the PS_* pen
// styles.
func (d *Device) rebuildPen() {
	style := uintptr(d.style.Pattern())
	pen, _, _ := procCreatePen.Call(style, uintptr(d.width), colorref(d.color))
	if pen == 0 {
		flint.Logger().Warn("gdi: CreatePen failed, keeping previous pen")
		return
	}
	prev, _, _ := procSelectObject.Call(uintptr(d.dc), pen)
	if d.oldPen == 0 {
		d.oldPen = prev
	}
	if d.pen != 0 {
		procDeleteObject.Call(uintptr(d.pen))
	}
	d.pen = windows.Handle(pen)
}

func (d *Device) rebuildBrush() {
	brush, _, _ := procCreateSolidBrush.Call(colorref(d.color))
	if brush == 0 {
		flint.Logger().Warn("gdi: CreateSolidBrush failed, keeping previous brush")
		return
	}
	if d.brush != 0 {
		procDeleteObject.Call(uintptr(d.brush))
	}
	d.brush = windows.Handle(brush)
}

// SetColor implements flint.Device.
func (d *Device) SetColor(c flint.Color) {
	if c == d.color {
		return
	}
	d.color = c
	d.rebuildPen()
	d.rebuildBrush()
}

// SetLineStyle implements flint.Device. Custom dash arrays collapse
// to PS_DASH; cosmetic GDI pens only honor the built-in patterns.
func (d *Device) SetLineStyle(style flint.LineStyle, width int, dashes []int) {
	if dashes != nil && style.Pattern() == flint.Solid {
		style = style | flint.Dash
	}
	d.style = style
	d.width = width
	d.rebuildPen()
}

// Fill implements flint.Device.
func (d *Device) Fill(x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	r := wRect{Left: int32(x), Top: int32(y), Right: int32(x + w), Bottom: int32(y + h)}
	procFillRect.Call(uintptr(d.dc), uintptr(unsafe.Pointer(&r)), uintptr(d.brush))
}

// StrokeLine implements flint.Device. GDI's LineTo excludes the last
// pixel, so it is set explicitly.
func (d *Device) StrokeLine(pts []image.Point) {
	if len(pts) < 2 {
		return
	}
	procMoveToEx.Call(uintptr(d.dc), uintptr(pts[0].X), uintptr(pts[0].Y), 0)
	for _, p := range pts[1:] {
		procLineTo.Call(uintptr(d.dc), uintptr(p.X), uintptr(p.Y))
	}
	last := pts[len(pts)-1]
	procSetPixel.Call(uintptr(d.dc), uintptr(last.X), uintptr(last.Y), colorref(d.color))
}

// StrokeClosed implements flint.Device.
func (d *Device) StrokeClosed(pts []image.Point) {
	if len(pts) < 2 {
		return
	}
	procMoveToEx.Call(uintptr(d.dc), uintptr(pts[0].X), uintptr(pts[0].Y), 0)
	for _, p := range pts[1:] {
		procLineTo.Call(uintptr(d.dc), uintptr(p.X), uintptr(p.Y))
	}
	procLineTo.Call(uintptr(d.dc), uintptr(pts[0].X), uintptr(pts[0].Y))
}

// FillPolygon implements flint.Device. GDI's Polygon outlines with
// the pen and fills with the brush; both carry the driver color.
func (d *Device) FillPolygon(pts []image.Point) {
	if len(pts) < 3 {
		return
	}
	wp := make([]wPoint, len(pts))
	for i, p := range pts {
		wp[i] = wPoint{X: int32(p.X), Y: int32(p.Y)}
	}
	procSelectObject.Call(uintptr(d.dc), uintptr(d.brush))
	procPolygon.Call(uintptr(d.dc), uintptr(unsafe.Pointer(&wp[0])), uintptr(len(wp)))
}

// PlotPixel implements flint.Device.
func (d *Device) PlotPixel(x, y int) {
	procSetPixel.Call(uintptr(d.dc), uintptr(x), uintptr(y), colorref(d.color))
}

// ApplyClip implements flint.Device. The rectangle list is rebuilt
// into a native region; every temporary region handle is released
// before returning.
func (d *Device) ApplyClip(rects []image.Rectangle) {
	if rects == nil {
		procSelectClipRgn.Call(uintptr(d.dc), 0)
		return
	}
	rgn, _, _ := procCreateRectRgn.Call(0, 0, 0, 0)
	if rgn == 0 {
		flint.Logger().Warn("gdi: CreateRectRgn failed, clip unchanged")
		return
	}
	for _, r := range rects {
		piece, _, _ := procCreateRectRgn.Call(
			uintptr(r.Min.X), uintptr(r.Min.Y), uintptr(r.Max.X), uintptr(r.Max.Y))
		if piece == 0 {
			flint.Logger().Warn("gdi: CreateRectRgn failed, clip incomplete")
			continue
		}
		ret, _, _ := procCombineRgn.Call(rgn, rgn, piece, rgnOr)
		procDeleteObject.Call(piece)
		if ret == errorRegion {
			flint.Logger().Warn("gdi: CombineRgn failed, clip incomplete")
		}
	}
	procSelectClipRgn.Call(uintptr(d.dc), rgn)
	procDeleteObject.Call(rgn)
}

// gdiPen holds the pen handle ChangePenWidth displaced.
type gdiPen struct {
	handle uintptr
}

// ChangePenWidth implements flint.Device: a geometric pen with flat
// endcaps and round joins, as wide borders need. The previous pen
// comes back in the handle; allocation failure keeps the current pen
// and returns a no-op handle.
func (d *Device) ChangePenWidth(width int) flint.Pen {
	lb := logBrush{Style: bsSolid, Color: uint32(colorref(d.color)), Hatch: 0}
	pen, _, _ := procExtCreatePen.Call(
		psGeometric|psEndcapFlat|psJoinRound,
		uintptr(width), uintptr(unsafe.Pointer(&lb)), 0, 0)
	if pen == 0 {
		flint.Logger().Warn("gdi: ExtCreatePen failed", "width", width)
		return gdiPen{}
	}
	prev, _, _ := procSelectObject.Call(uintptr(d.dc), pen)
	return gdiPen{handle: prev}
}

// ResetPenWidth implements flint.Device: reselects the saved pen and
// deletes the wide one.
func (d *Device) ResetPenWidth(p flint.Pen) {
	prev, ok := p.(gdiPen)
	if !ok || prev.handle == 0 {
		return
	}
	wide, _, _ := procSelectObject.Call(uintptr(d.dc), prev.handle)
	if wide != 0 {
		procDeleteObject.Call(wide)
	}
}

// SupportsDottedLines implements flint.Device. Cosmetic dotted pens
// are unreliable across GDI printer drivers, so the driver's
// every-other-pixel focus fallback is used instead.
func (d *Device) SupportsDottedLines() bool { return false }
