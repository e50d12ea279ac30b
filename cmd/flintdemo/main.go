// Command flintdemo exercises the flint graphics driver on the
// software backend and saves the result as a PNG: filled and outlined
// rectangles, axis-aligned and free lines, polygons, focus and
// overlay rectangles, and rectangular plus composite clipping, all at
// a configurable scale factor.
package main

import (
	"flag"
	"image"
	"log"

	"github.com/flintkit/flint"
	"github.com/flintkit/flint/backend"
)

func main() {
	var (
		width  = flag.Int("width", 640, "image width in logical units")
		height = flag.Int("height", 480, "image height in logical units")
		scale  = flag.Float64("scale", 1.0, "logical-to-device scale factor")
		output = flag.String("output", "flintdemo.png", "output file")
	)
	flag.Parse()

	be := backend.NewSoftwareBackend()
	if err := be.Init(); err != nil {
		log.Fatalf("init backend: %v", err)
	}
	defer be.Close()

	dw := int(float64(*width) * *scale)
	dh := int(float64(*height) * *scale)
	dev, err := be.NewDevice(dw, dh)
	if err != nil {
		log.Fatalf("create device: %v", err)
	}

	d := flint.New(dev, flint.WithScale(*scale))

	d.SetColor(flint.White)
	d.Rectf(0, 0, *width, *height)

	drawRects(d)
	drawLines(d)
	drawPolygons(d)
	drawClipped(d)

	img, ok := dev.(*flint.ImageDevice)
	if !ok {
		log.Fatalf("unexpected device type %T", dev)
	}
	if err := img.Pixmap().SavePNG(*output); err != nil {
		log.Fatalf("save: %v", err)
	}
	log.Printf("demo saved to %s (%dx%d device pixels)", *output, dw, dh)
}

func drawRects(d *flint.Driver) {
	d.SetColor(flint.RGB(200, 60, 60))
	d.Rectf(20, 20, 120, 80)

	d.SetColor(flint.RGB(30, 30, 120))
	d.Rect(160, 20, 120, 80)

	d.WithPenWidth(4, func() {
		d.Rect(300, 20, 120, 80)
	})

	d.SetColor(flint.Black)
	d.FocusRect(40, 40, 80, 40)

	d.SetColor(flint.RGB(90, 90, 90))
	d.OverlayRect(440, 20, 120, 80)
}

func drawLines(d *flint.Driver) {
	d.SetColor(flint.RGB(20, 120, 20))
	d.Line(20, 140, 140, 200)
	d.Line3(160, 140, 280, 140, 280, 200)

	// Staircase of axis-aligned segments.
	d.XYLine(300, 140, 360, 170, 420)
	d.YXLine(440, 140, 170, 500, 200)

	d.LineStyle(flint.Dot|flint.CapRound, 1, nil)
	d.Line(20, 220, 420, 220)
	d.LineStyle(flint.Solid, 0, nil)
}

func drawPolygons(d *flint.Driver) {
	d.SetColor(flint.RGB(220, 160, 30))
	d.Polygon(image.Pt(60, 260), image.Pt(140, 280), image.Pt(100, 340))

	d.SetColor(flint.RGB(30, 160, 220))
	d.Polygon(image.Pt(180, 260), image.Pt(260, 260), image.Pt(280, 330), image.Pt(160, 330))

	d.SetColor(flint.Black)
	d.Loop(image.Pt(320, 260), image.Pt(400, 280), image.Pt(360, 340))
}

func drawClipped(d *flint.Driver) {
	// Rectangular clip.
	d.PushClip(20, 360, 200, 100)
	d.SetColor(flint.RGB(160, 40, 160))
	d.Rectf(0, 340, 640, 140)
	d.PopClip()

	// Composite clip: an L-shaped window from two rectangles.
	d.PushClip(260, 340, 240, 120)
	d.ClipRegion(image.Rect(260, 340, 500, 380), image.Rect(260, 340, 320, 460))
	d.SetColor(flint.RGB(40, 160, 80))
	d.Rectf(0, 0, 640, 480)

	x, y, w, h, status := d.ClipBox(0, 0, 640, 480)
	log.Printf("clip box: %d,%d %dx%d status=%v", x, y, w, h, status)

	d.PopClip()
}
