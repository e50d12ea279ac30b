// Package ebiten renders flint primitives into Ebitengine images,
// for applications that host toolkit output inside an Ebitengine game
// loop. Importing the package registers the backend:
//
//	import _ "github.com/flintkit/flint/backend/ebiten"
package ebiten

import (
	"image"
	"image/color"

	ebt "github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/flintkit/flint"
	"github.com/flintkit/flint/backend"
)

// whiteSubImage is the 1x1 texture used to fill polygon triangles.
// The interior pixel of a 3x3 image avoids bleeding at the edges.
var (
	whiteImage    = ebt.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebt.Image)
)

func init() {
	whiteImage.Fill(color.White)
	backend.Register(backend.BackendEbiten, func() backend.GraphicsBackend {
		return &Backend{}
	})
}

// Backend is the Ebitengine graphics backend.
type Backend struct {
	initialized bool
}

// NewBackend creates an Ebitengine backend.
func NewBackend() *Backend {
	return &Backend{}
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return backend.BackendEbiten
}

// Init marks the backend ready. The GPU context itself belongs to the
// host application's ebiten.RunGame loop.
func (b *Backend) Init() error {
	b.initialized = true
	return nil
}

// Close releases backend resources.
func (b *Backend) Close() {
	b.initialized = false
}

// NewDevice creates a device drawing into a fresh offscreen image.
// Retrieve it via (*Device).Image to composite into the game frame.
func (b *Backend) NewDevice(width, height int) (flint.Device, error) {
	if !b.initialized {
		return nil, backend.ErrNotInitialized
	}
	return NewDevice(ebt.NewImage(width, height)), nil
}

// Device draws into one Ebitengine image. Clipping uses SubImage
// views, one per clip rectangle, so composite regions clip exactly
// without touching a stencil.
type Device struct {
	target *ebt.Image
	clip   []image.Rectangle

	color flint.Color
	style flint.LineStyle
	width int
}

// NewDevice wraps an existing image, typically the frame's screen
// image or an offscreen buffer.
func NewDevice(target *ebt.Image) *Device {
	return &Device{target: target, color: flint.Black, width: 1}
}

// Image returns the image the device draws into.
func (d *Device) Image() *ebt.Image { return d.target }

// targets returns the images to draw into: the whole target when
// unclipped, one SubImage view per clip rectangle otherwise. An empty
// non-nil clip yields no targets at all.
func (d *Device) targets() []*ebt.Image {
	if d.clip == nil {
		return []*ebt.Image{d.target}
	}
	out := make([]*ebt.Image, 0, len(d.clip))
	for _, r := range d.clip {
		r = r.Intersect(d.target.Bounds())
		if r.Empty() {
			continue
		}
		out = append(out, d.target.SubImage(r).(*ebt.Image))
	}
	return out
}

// SetColor implements flint.Device.
func (d *Device) SetColor(c flint.Color) {
	d.color = c
}

// SetLineStyle implements flint.Device. Ebitengine's vector strokes
// have no dash support, so patterns draw solid and the driver's
// focus-rectangle fallback covers dotted outlines.
func (d *Device) SetLineStyle(style flint.LineStyle, width int, dashes []int) {
	d.style = style
	d.width = width
}

// Fill implements flint.Device.
func (d *Device) Fill(x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	for _, dst := range d.targets() {
		vector.DrawFilledRect(dst, float32(x), float32(y), float32(w), float32(h),
			d.color.NRGBA(), false)
	}
}

// StrokeLine implements flint.Device. The 1x1 rect at the end keeps
// the terminal pixel, which a zero-length final stroke would drop.
func (d *Device) StrokeLine(pts []image.Point) {
	if len(pts) < 2 {
		return
	}
	w := float32(d.width)
	if w < 1 {
		w = 1
	}
	clr := d.color.NRGBA()
	for _, dst := range d.targets() {
		for i := 1; i < len(pts); i++ {
			vector.StrokeLine(dst,
				float32(pts[i-1].X), float32(pts[i-1].Y),
				float32(pts[i].X), float32(pts[i].Y), w, clr, false)
		}
		last := pts[len(pts)-1]
		vector.DrawFilledRect(dst, float32(last.X), float32(last.Y), 1, 1, clr, false)
	}
}

// StrokeClosed implements flint.Device.
func (d *Device) StrokeClosed(pts []image.Point) {
	if len(pts) < 2 {
		return
	}
	w := float32(d.width)
	if w < 1 {
		w = 1
	}
	clr := d.color.NRGBA()
	for _, dst := range d.targets() {
		for i := range pts {
			a := pts[i]
			b := pts[(i+1)%len(pts)]
			vector.StrokeLine(dst,
				float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), w, clr, false)
		}
	}
}

// FillPolygon implements flint.Device. The path is tessellated into
// triangles textured with the white pixel, with the fill color in the
// vertex colors.
func (d *Device) FillPolygon(pts []image.Point) {
	if len(pts) < 3 {
		return
	}
	var path vector.Path
	path.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	r := float32(d.color.R) / 255
	g := float32(d.color.G) / 255
	bl := float32(d.color.B) / 255
	a := float32(d.color.A) / 255
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = r
		vs[i].ColorG = g
		vs[i].ColorB = bl
		vs[i].ColorA = a
	}
	op := &ebt.DrawTrianglesOptions{
		FillRule: ebt.FillRuleNonZero,
	}
	for _, dst := range d.targets() {
		dst.DrawTriangles(vs, is, whiteSubImage, op)
	}
}

// PlotPixel implements flint.Device.
func (d *Device) PlotPixel(x, y int) {
	for _, dst := range d.targets() {
		vector.DrawFilledRect(dst, float32(x), float32(y), 1, 1, d.color.NRGBA(), false)
	}
}

// ApplyClip implements flint.Device.
func (d *Device) ApplyClip(rects []image.Rectangle) {
	if rects == nil {
		d.clip = nil
		return
	}
	d.clip = make([]image.Rectangle, len(rects))
	copy(d.clip, rects)
}

// ebitenPen restores the stroke state saved by ChangePenWidth.
type ebitenPen struct {
	style flint.LineStyle
	width int
}

// ChangePenWidth implements flint.Device.
func (d *Device) ChangePenWidth(width int) flint.Pen {
	prev := ebitenPen{style: d.style, width: d.width}
	d.SetLineStyle(flint.Solid, width, nil)
	return prev
}

// ResetPenWidth implements flint.Device.
func (d *Device) ResetPenWidth(p flint.Pen) {
	prev, ok := p.(ebitenPen)
	if !ok {
		return
	}
	d.SetLineStyle(prev.style, prev.width, nil)
}

// SupportsDottedLines implements flint.Device.
func (d *Device) SupportsDottedLines() bool { return false }
