package flint

import "image"

// ImageDevice is the software drawing device: a pure-Go Device
// rendering into a Pixmap. It serves offscreen surfaces, tests, and
// platforms without a native backend. Clipping is exact per pixel,
// dashed styles are produced by a pixel mask, and wide pens stamp a
// square footprint along each line.
type ImageDevice struct {
	pm *Pixmap

	color  Color
	style  LineStyle
	width  int
	dashes []int

	// clip is the effective region as disjoint rectangles. nil means
	// unclipped; empty means everything is clipped out.
	clip []image.Rectangle
}

// NewImageDevice creates a software device over the given pixmap.
func NewImageDevice(pm *Pixmap) *ImageDevice {
	return &ImageDevice{
		pm:    pm,
		color: Black,
		width: 1,
	}
}

// Pixmap returns the buffer the device draws into.
func (d *ImageDevice) Pixmap() *Pixmap { return d.pm }

// SetColor implements Device.
func (d *ImageDevice) SetColor(c Color) {
	d.color = c
}

// SetLineStyle implements Device.
func (d *ImageDevice) SetLineStyle(style LineStyle, width int, dashes []int) {
	d.style = style
	if width < 1 {
		width = 1
	}
	d.width = width
	d.dashes = dashes
}

// ApplyClip implements Device.
func (d *ImageDevice) ApplyClip(rects []image.Rectangle) {
	if rects == nil {
		d.clip = nil
		return
	}
	d.clip = make([]image.Rectangle, len(rects))
	copy(d.clip, rects)
}

// visible reports whether the pixel passes the clip region.
func (d *ImageDevice) visible(x, y int) bool {
	if d.clip == nil {
		return true
	}
	p := image.Pt(x, y)
	for _, r := range d.clip {
		if p.In(r) {
			return true
		}
	}
	return false
}

func (d *ImageDevice) set(x, y int) {
	if d.visible(x, y) {
		d.pm.SetPixel(x, y, d.color)
	}
}

// stamp draws one line pixel, widened to the pen's square footprint.
func (d *ImageDevice) stamp(x, y int) {
	if d.width <= 1 {
		d.set(x, y)
		return
	}
	half := d.width / 2
	for dy := -half; dy < d.width-half; dy++ {
		for dx := -half; dx < d.width-half; dx++ {
			d.set(x+dx, y+dy)
		}
	}
}

// Fill implements Device.
func (d *ImageDevice) Fill(x, y, w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	r := image.Rect(x, y, x+w, y+h)
	if d.clip == nil {
		d.pm.FillRect(r, d.color)
		return
	}
	for _, c := range d.clip {
		if i := r.Intersect(c); !i.Empty() {
			d.pm.FillRect(i, d.color)
		}
	}
}

// dashGate returns a function deciding, per pixel along a stroke,
// whether the pixel is on an "on" run of the dash pattern. The gate
// carries its position across segments so patterns flow around
// corners.
func (d *ImageDevice) dashGate() func() bool {
	pattern := d.dashes
	if pattern == nil {
		pattern = d.style.DashPattern(d.width)
	}
	if len(pattern) == 0 {
		return func() bool { return true }
	}
	seg, left := 0, pattern[0]
	return func() bool {
		for left == 0 {
			seg = (seg + 1) % len(pattern)
			left = pattern[seg]
		}
		on := seg%2 == 0
		left--
		return on
	}
}

// StrokeLine implements Device. Lines are rasterized with Bresenham's
// algorithm; the terminal pixel of the final segment is always drawn.
func (d *ImageDevice) StrokeLine(pts []image.Point) {
	if len(pts) < 2 {
		return
	}
	gate := d.dashGate()
	for i := 0; i+1 < len(pts); i++ {
		// Skip the shared vertex on all segments but the first so
		// corners are not plotted twice.
		d.segment(pts[i], pts[i+1], i > 0, gate)
	}
}

// StrokeClosed implements Device.
func (d *ImageDevice) StrokeClosed(pts []image.Point) {
	if len(pts) < 2 {
		return
	}
	gate := d.dashGate()
	for i := 0; i+1 < len(pts); i++ {
		d.segment(pts[i], pts[i+1], i > 0, gate)
	}
	d.segment(pts[len(pts)-1], pts[0], true, gate)
}

// segment draws p0..p1 inclusive with Bresenham stepping.
func (d *ImageDevice) segment(p0, p1 image.Point, skipFirst bool, gate func() bool) {
	dx := abs(p1.X - p0.X)
	dy := -abs(p1.Y - p0.Y)
	sx, sy := 1, 1
	if p0.X > p1.X {
		sx = -1
	}
	if p0.Y > p1.Y {
		sy = -1
	}
	err := dx + dy
	x, y := p0.X, p0.Y
	first := true
	for {
		if !(first && skipFirst) {
			if gate() {
				d.stamp(x, y)
			}
		}
		first = false
		if x == p1.X && y == p1.Y {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// FillPolygon implements Device. Scanline even-odd fill sampling at
// pixel centers, matching the coverage of native polygon fills
// closely enough for the 3- and 4-vertex polygons the driver emits.
func (d *ImageDevice) FillPolygon(pts []image.Point) {
	if len(pts) < 3 {
		return
	}
	minY, maxY := pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	xs := make([]float64, 0, len(pts))
	for y := minY; y <= maxY; y++ {
		cy := float64(y) + 0.5
		xs = xs[:0]
		for i := range pts {
			a := pts[i]
			b := pts[(i+1)%len(pts)]
			y0, y1 := float64(a.Y), float64(b.Y)
			if y0 == y1 {
				continue
			}
			if (cy >= y0 && cy < y1) || (cy >= y1 && cy < y0) {
				t := (cy - y0) / (y1 - y0)
				xs = append(xs, float64(a.X)+t*float64(b.X-a.X))
			}
		}
		sortFloats(xs)
		for i := 0; i+1 < len(xs); i += 2 {
			x0 := int(xs[i] + 0.5)
			x1 := int(xs[i+1] + 0.5)
			for x := x0; x <= x1; x++ {
				d.set(x, y)
			}
		}
	}
}

// PlotPixel implements Device.
func (d *ImageDevice) PlotPixel(x, y int) {
	d.set(x, y)
}

// imagePen restores the pen state saved by ChangePenWidth.
type imagePen struct {
	width  int
	style  LineStyle
	dashes []int
}

// ChangePenWidth implements Device. The software pen cannot fail to
// allocate, so the returned handle is always valid.
func (d *ImageDevice) ChangePenWidth(width int) Pen {
	prev := imagePen{width: d.width, style: d.style, dashes: d.dashes}
	if width < 1 {
		width = 1
	}
	d.width = width
	d.style = Solid
	d.dashes = nil
	return prev
}

// ResetPenWidth implements Device.
func (d *ImageDevice) ResetPenWidth(p Pen) {
	prev, ok := p.(imagePen)
	if !ok {
		return
	}
	d.width = prev.width
	d.style = prev.style
	d.dashes = prev.dashes
}

// SupportsDottedLines implements Device; the dash mask handles every
// pattern.
func (d *ImageDevice) SupportsDottedLines() bool { return true }

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// sortFloats is insertion sort: the slices here hold at most four
// crossings.
func sortFloats(xs []float64) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j] < xs[j-1]; j-- {
			xs[j], xs[j-1] = xs[j-1], xs[j]
		}
	}
}
