package flint

import (
	"bytes"
	"image"
	"log/slog"
	"strings"
	"testing"
)

func newTestDriver(w, h int, opts ...Option) (*Driver, *ImageDevice) {
	dev := NewImageDevice(NewPixmap(w, h))
	return New(dev, opts...), dev
}

func TestClipBoxUnclipped(t *testing.T) {
	d, _ := newTestDriver(100, 100)
	x, y, w, h, status := d.ClipBox(10, 10, 5, 5)
	if x != 10 || y != 10 || w != 5 || h != 5 || status != ClipInside {
		t.Errorf("ClipBox() = %d,%d,%d,%d,%v, want 10,10,5,5,inside", x, y, w, h, status)
	}
}

func TestClipBoxStatuses(t *testing.T) {
	d, _ := newTestDriver(100, 100)
	d.PushClip(0, 0, 10, 10)
	defer d.PopClip()

	tests := []struct {
		name             string
		qx, qy, qw, qh   int
		wx, wy, ww, wh   int
		status           ClipStatus
	}{
		{"inside", 2, 2, 4, 4, 2, 2, 4, 4, ClipInside},
		{"exact cover", 0, 0, 10, 10, 0, 0, 10, 10, ClipInside},
		{"partial", 5, 5, 10, 10, 5, 5, 5, 5, ClipPartial},
		{"outside", 20, 20, 5, 5, 20, 20, 0, 0, ClipOutside},
		{"touching edge", 10, 0, 5, 5, 10, 0, 0, 0, ClipOutside},
	}
	for _, tt := range tests {
		x, y, w, h, status := d.ClipBox(tt.qx, tt.qy, tt.qw, tt.qh)
		if x != tt.wx || y != tt.wy || w != tt.ww || h != tt.wh || status != tt.status {
			t.Errorf("%s: ClipBox(%d,%d,%d,%d) = %d,%d,%d,%d,%v, want %d,%d,%d,%d,%v",
				tt.name, tt.qx, tt.qy, tt.qw, tt.qh,
				x, y, w, h, status, tt.wx, tt.wy, tt.ww, tt.wh, tt.status)
		}
	}
}

func TestClipNesting(t *testing.T) {
	d, _ := newTestDriver(100, 100)
	d.PushClip(0, 0, 20, 20)
	d.PushClip(10, 10, 20, 20)

	// The inner clip is the intersection (10,10)-(20,20).
	if x, y, w, h, status := d.ClipBox(0, 0, 100, 100); status != ClipPartial ||
		x != 10 || y != 10 || w != 10 || h != 10 {
		t.Errorf("nested ClipBox = %d,%d,%d,%d,%v", x, y, w, h, status)
	}

	d.PopClip()
	if _, _, w, h, _ := d.ClipBox(0, 0, 100, 100); w != 20 || h != 20 {
		t.Errorf("after pop, clip extent = %dx%d, want 20x20", w, h)
	}
	d.PopClip()
	if _, _, _, _, status := d.ClipBox(0, 0, 100, 100); status != ClipInside {
		t.Errorf("after final pop, status = %v, want inside", status)
	}
}

// Pushing then popping must restore ClipBox results exactly, for any
// query rectangle.
func TestClipPushPopRestores(t *testing.T) {
	d, _ := newTestDriver(100, 100)
	d.PushClip(3, 3, 40, 30)

	queries := []image.Rectangle{
		image.Rect(0, 0, 100, 100),
		image.Rect(5, 5, 15, 15),
		image.Rect(50, 50, 60, 60),
	}
	type result struct {
		x, y, w, h int
		status     ClipStatus
	}
	before := make([]result, len(queries))
	for i, q := range queries {
		var r result
		r.x, r.y, r.w, r.h, r.status = d.ClipBox(q.Min.X, q.Min.Y, q.Dx(), q.Dy())
		before[i] = r
	}

	d.PushClip(10, 10, 10, 10)
	d.PopClip()

	for i, q := range queries {
		var r result
		r.x, r.y, r.w, r.h, r.status = d.ClipBox(q.Min.X, q.Min.Y, q.Dx(), q.Dy())
		if r != before[i] {
			t.Errorf("query %v: result changed across push/pop: %+v -> %+v", q, before[i], r)
		}
	}
	d.PopClip()
}

func TestPushClipDegenerate(t *testing.T) {
	d, _ := newTestDriver(100, 100)
	d.PushClip(10, 10, 0, 5)
	defer d.PopClip()

	if d.NotClipped(10, 10, 50, 50) {
		t.Error("NotClipped() = true under an empty clip")
	}
	if _, _, w, h, status := d.ClipBox(0, 0, 100, 100); status != ClipOutside || w != 0 || h != 0 {
		t.Errorf("ClipBox under empty clip = %d,%d,%v, want 0,0,outside", w, h, status)
	}
}

func TestPushNoClip(t *testing.T) {
	d, _ := newTestDriver(100, 100)
	d.PushClip(0, 0, 10, 10)
	d.PushNoClip()

	if _, _, _, _, status := d.ClipBox(50, 50, 10, 10); status != ClipInside {
		t.Errorf("status under PushNoClip = %v, want inside", status)
	}

	d.PopClip()
	if _, _, _, _, status := d.ClipBox(50, 50, 10, 10); status != ClipOutside {
		t.Errorf("status after popping no-clip = %v, want outside", status)
	}
	d.PopClip()
}

func TestClipStackOverflow(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(nil)

	d, _ := newTestDriver(100, 100)
	const pushes = clipStackMax + 5
	for i := 0; i < pushes; i++ {
		d.PushClip(0, 0, 50, 50)
	}
	if got := d.ClipDepth(); got != pushes {
		t.Errorf("ClipDepth() = %d, want %d", got, pushes)
	}
	if !strings.Contains(buf.String(), "overflow") {
		t.Error("overflow warning not logged")
	}

	// Dropped pushes must pair with pops: after unwinding everything
	// the surface is unclipped again.
	for i := 0; i < pushes; i++ {
		d.PopClip()
	}
	if got := d.ClipDepth(); got != 0 {
		t.Errorf("ClipDepth() after unwind = %d, want 0", got)
	}
	if _, _, _, _, status := d.ClipBox(0, 0, 100, 100); status != ClipInside {
		t.Errorf("status after unwind = %v, want inside", status)
	}

	buf.Reset()
	d.PopClip()
	if !strings.Contains(buf.String(), "underflow") {
		t.Error("underflow warning not logged")
	}
}

func TestClipRegionComposite(t *testing.T) {
	d, _ := newTestDriver(100, 100)
	d.PushClip(0, 0, 100, 100)
	defer d.PopClip()

	// L-shape: top bar plus left column.
	d.ClipRegion(image.Rect(0, 0, 30, 10), image.Rect(0, 0, 10, 30))

	// A query inside the notch is outside even though it is inside
	// the region's bounding box. Exact intersection is required here.
	if _, _, _, _, status := d.ClipBox(15, 15, 10, 10); status != ClipOutside {
		t.Errorf("notch query status = %v, want outside", status)
	}
	if _, _, _, _, status := d.ClipBox(2, 2, 4, 4); status != ClipInside {
		t.Errorf("corner query status = %v, want inside", status)
	}
	if _, _, _, _, status := d.ClipBox(5, 5, 20, 20); status != ClipPartial {
		t.Errorf("straddling query status = %v, want partial", status)
	}

	if d.NotClipped(15, 15, 10, 10) {
		t.Error("NotClipped() = true for the notch")
	}
	if !d.NotClipped(0, 0, 5, 5) {
		t.Error("NotClipped() = false for the corner")
	}
}

// NotClipped must agree with ClipBox: true exactly when the status is
// not fully-outside.
func TestNotClippedMatchesClipBox(t *testing.T) {
	d, _ := newTestDriver(100, 100)
	d.PushClip(10, 10, 30, 30)
	defer d.PopClip()

	for x := 0; x < 60; x += 7 {
		for y := 0; y < 60; y += 7 {
			_, _, _, _, status := d.ClipBox(x, y, 8, 8)
			if got := d.NotClipped(x, y, 8, 8); got != (status != ClipOutside) {
				t.Errorf("NotClipped(%d,%d,8,8) = %v, status = %v", x, y, got, status)
			}
		}
	}
}

func TestNotClippedNegativeExtent(t *testing.T) {
	d, _ := newTestDriver(100, 100)
	if d.NotClipped(-10, 0, 5, 5) {
		t.Error("NotClipped() = true for a rectangle left of the origin")
	}
	if d.NotClipped(0, -10, 5, 5) {
		t.Error("NotClipped() = true for a rectangle above the origin")
	}
}

func TestClipBounds(t *testing.T) {
	d, _ := newTestDriver(100, 100)
	if _, ok := d.ClipBounds(); ok {
		t.Error("ClipBounds() ok = true on an unclipped surface")
	}
	d.PushClip(5, 5, 20, 10)
	defer d.PopClip()
	r, ok := d.ClipBounds()
	if !ok || r != image.Rect(5, 5, 25, 15) {
		t.Errorf("ClipBounds() = %v, %v", r, ok)
	}
}

// At fractional scale, clip rectangles must land on the same device
// pixels as fills of the same logical rectangle.
func TestClipMatchesFillAtScale(t *testing.T) {
	d, dev := newTestDriver(40, 40, WithScale(1.5))
	d.SetColor(Black)

	d.PushClip(2, 2, 5, 5)
	d.Rectf(0, 0, 20, 20)
	d.PopClip()

	clipped := dev.Pixmap()

	dev2 := NewImageDevice(NewPixmap(40, 40))
	d2 := New(dev2, WithScale(1.5))
	d2.SetColor(Black)
	d2.Rectf(2, 2, 5, 5)

	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			if clipped.GetPixel(x, y) != dev2.Pixmap().GetPixel(x, y) {
				t.Fatalf("pixel (%d,%d) differs between clipped fill and direct fill", x, y)
			}
		}
	}
}
