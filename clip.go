package flint

import (
	"image"

	"github.com/flintkit/flint/internal/region"
)

// clipStackMax bounds the clip stack depth. Pushes beyond it are
// dropped with a diagnostic and the clip stays at the last valid
// region.
const clipStackMax = 32

// ClipStatus classifies a rectangle against the current clip region.
type ClipStatus int

const (
	// ClipInside means the query rectangle lies fully inside the clip.
	ClipInside ClipStatus = 0
	// ClipPartial means the query rectangle partially overlaps the clip.
	ClipPartial ClipStatus = 1
	// ClipOutside means the query rectangle and the clip are disjoint.
	ClipOutside ClipStatus = 2
)

func (s ClipStatus) String() string {
	switch s {
	case ClipInside:
		return "inside"
	case ClipPartial:
		return "partial"
	case ClipOutside:
		return "outside"
	default:
		return "invalid"
	}
}

// clipEntry is one nesting level of the clip stack. open marks the
// "no clipping" sentinel; otherwise rg holds the effective region in
// device pixels (possibly empty, meaning nothing is visible).
type clipEntry struct {
	rg   region.Region
	open bool
}

// clipStack is the bounded stack of nested clip regions for one
// surface. The bottom entry is the unclipped sentinel and is never
// popped. Each entry's region is the full intersection up to that
// nesting level, so popping restores the previous region verbatim
// with no recomputation.
type clipStack struct {
	entries []clipEntry

	// dropped counts pushes rejected by the depth limit, so that the
	// matching pops unwind without popping a live entry.
	dropped int
}

func (cs *clipStack) init() {
	cs.entries = append(cs.entries[:0], clipEntry{open: true})
	cs.dropped = 0
}

func (cs *clipStack) top() clipEntry {
	return cs.entries[len(cs.entries)-1]
}

// PushClip intersects the given logical rectangle with the current
// clip and pushes the result. A degenerate rectangle (w<=0 or h<=0)
// pushes an empty region: nothing is visible until the matching
// PopClip. When the stack is full the push is dropped with a
// diagnostic and the clip is unchanged.
func (d *Driver) PushClip(x, y, w, h int) {
	var e clipEntry
	if w > 0 && h > 0 {
		rg := region.FromRect(d.logicalToDevice(x, y, w, h))
		if top := d.clip.top(); !top.open {
			rg = rg.Intersect(top.rg)
		}
		e = clipEntry{rg: rg}
	}
	// else: e is the empty region, clipping everything out.

	if len(d.clip.entries) >= clipStackMax {
		d.clip.dropped++
		Logger().Warn("flint: clip stack overflow, push dropped",
			"depth", len(d.clip.entries))
		return
	}
	d.clip.entries = append(d.clip.entries, e)
	d.RestoreClip()
}

// PushNoClip pushes an unclipped entry, letting drawing escape any
// enclosing clip until the matching PopClip.
func (d *Driver) PushNoClip() {
	if len(d.clip.entries) >= clipStackMax {
		d.clip.dropped++
		Logger().Warn("flint: clip stack overflow, push dropped",
			"depth", len(d.clip.entries))
		return
	}
	d.clip.entries = append(d.clip.entries, clipEntry{open: true})
	d.RestoreClip()
}

// PopClip restores the clip region in effect before the matching
// push. Popping past the bottom sentinel is a caller error: it is
// reported and ignored.
func (d *Driver) PopClip() {
	if d.clip.dropped > 0 {
		d.clip.dropped--
		return
	}
	if len(d.clip.entries) <= 1 {
		Logger().Warn("flint: clip stack underflow")
		return
	}
	d.clip.entries = d.clip.entries[:len(d.clip.entries)-1]
	d.RestoreClip()
}

// ClipRegion replaces the current top-of-stack clip with an explicit
// composite region, given as logical rectangles whose union forms the
// region. No entry is pushed: the replacement is undone by the pop
// matching the enclosing push. Called with no rectangles it makes the
// top entry unclipped.
func (d *Driver) ClipRegion(rects ...image.Rectangle) {
	top := len(d.clip.entries) - 1
	if len(rects) == 0 {
		d.clip.entries[top] = clipEntry{open: true}
		d.RestoreClip()
		return
	}
	device := make([]image.Rectangle, 0, len(rects))
	for _, r := range rects {
		if r.Empty() {
			continue
		}
		device = append(device, d.logicalToDevice(r.Min.X, r.Min.Y, r.Dx(), r.Dy()))
	}
	d.clip.entries[top] = clipEntry{rg: region.FromRects(device...)}
	d.RestoreClip()
}

// RestoreClip re-applies the top-of-stack region to the device. Call
// it after external code has disturbed the device's native clip state.
func (d *Driver) RestoreClip() {
	top := d.clip.top()
	if top.open {
		d.dev.ApplyClip(nil)
		return
	}
	rects := top.rg.Rects()
	if rects == nil {
		rects = []image.Rectangle{}
	}
	d.dev.ApplyClip(rects)
}

// ClipDepth returns the number of pushed clip entries (the bottom
// sentinel not counted).
func (d *Driver) ClipDepth() int {
	return len(d.clip.entries) - 1 + d.clip.dropped
}

// ClipBox intersects the query rectangle with the current clip
// region. The status is ClipInside when the query lies fully inside
// the clip (the rectangle is returned unchanged), ClipPartial when it
// partially overlaps (the overlap's bounding box is returned in
// logical coordinates), and ClipOutside when they are disjoint (a
// zero-size result). The intersection is exact, not bounding-box
// approximate, so composite regions classify correctly.
func (d *Driver) ClipBox(x, y, w, h int) (rx, ry, rw, rh int, status ClipStatus) {
	top := d.clip.top()
	if top.open {
		return x, y, w, h, ClipInside
	}

	q := region.FromRect(d.logicalToDevice(x, y, w, h))
	inter := q.Intersect(top.rg)
	switch {
	case inter.Empty():
		return x, y, 0, 0, ClipOutside
	case inter.Equal(q):
		return x, y, w, h, ClipInside
	default:
		rx, ry, rw, rh = d.deviceToLogical(inter.Bounds())
		return rx, ry, rw, rh, ClipPartial
	}
}

// NotClipped reports whether any pixel of the rectangle can be
// visible under the current clip: true exactly when ClipBox would
// report ClipInside or ClipPartial. Rectangles entirely left of or
// above the origin are rejected up front.
func (d *Driver) NotClipped(x, y, w, h int) bool {
	if x+w <= 0 || y+h <= 0 {
		return false
	}
	top := d.clip.top()
	if top.open {
		return true
	}
	return top.rg.Overlaps(d.logicalToDevice(x, y, w, h))
}

// ClipBounds returns the bounding box of the current clip region in
// logical coordinates. ok is false when the surface is unclipped.
func (d *Driver) ClipBounds() (r image.Rectangle, ok bool) {
	top := d.clip.top()
	if top.open {
		return image.Rectangle{}, false
	}
	x, y, w, h := d.deviceToLogical(top.rg.Bounds())
	return image.Rect(x, y, x+w, y+h), true
}

// logicalToDevice maps a logical rectangle into device pixels,
// letting a print-context device apply its own native transform.
func (d *Driver) logicalToDevice(x, y, w, h int) image.Rectangle {
	if m, ok := d.dev.(CoordinateMapper); ok {
		return m.LogicalToDevice(image.Rect(x, y, x+w, y+h))
	}
	return d.scaler.Rect(x, y, w, h)
}

// deviceToLogical maps a device rectangle back to logical
// coordinates, the round trip required before reporting clip-box
// results on print surfaces.
func (d *Driver) deviceToLogical(r image.Rectangle) (x, y, w, h int) {
	if m, ok := d.dev.(CoordinateMapper); ok {
		lr := m.DeviceToLogical(r)
		return lr.Min.X, lr.Min.Y, lr.Dx(), lr.Dy()
	}
	return d.scaler.Unscale(r)
}
