// Package region implements exact pixel-level region algebra for clip
// regions. A Region is a set of device pixels stored as disjoint,
// y-banded rectangles in canonical form, so that two regions covering
// the same pixel set always compare equal regardless of how they were
// built. This is what lets clip-box queries distinguish "query fully
// inside clip" from "partial overlap" without bounding-box
// approximation, even for composite (multi-rectangle) regions.
package region

import (
	"image"
	"sort"
)

// Region is an immutable set of device pixels. The zero value is the
// empty region. Regions are values; all operations return new regions
// and never mutate their receivers.
type Region struct {
	// rects is the canonical y-banded decomposition: rectangles are
	// non-empty, pairwise disjoint, sorted by (Min.Y, Min.X), and no
	// two vertically adjacent rectangles with identical x-extents
	// remain unmerged.
	rects []image.Rectangle
}

// FromRect returns the region covering exactly the pixels of r.
// A degenerate rectangle yields the empty region.
func FromRect(r image.Rectangle) Region {
	if r.Empty() {
		return Region{}
	}
	return Region{rects: []image.Rectangle{r.Canon()}}
}

// FromRects returns the region covering the union of the given
// rectangles. Overlapping and adjacent rectangles are merged.
func FromRects(rs ...image.Rectangle) Region {
	keep := make([]image.Rectangle, 0, len(rs))
	for _, r := range rs {
		if !r.Empty() {
			keep = append(keep, r.Canon())
		}
	}
	return Region{rects: canonicalize(keep)}
}

// Empty reports whether the region contains no pixels.
func (g Region) Empty() bool {
	return len(g.rects) == 0
}

// Rects returns the canonical rectangle decomposition of the region.
// The returned slice is a copy; callers may retain it. It is nil for
// the empty region.
func (g Region) Rects() []image.Rectangle {
	if len(g.rects) == 0 {
		return nil
	}
	out := make([]image.Rectangle, len(g.rects))
	copy(out, g.rects)
	return out
}

// NumRects returns the number of rectangles in the canonical
// decomposition.
func (g Region) NumRects() int {
	return len(g.rects)
}

// Bounds returns the bounding box of the region. The empty region has
// an empty bounding box at the origin.
func (g Region) Bounds() image.Rectangle {
	if len(g.rects) == 0 {
		return image.Rectangle{}
	}
	b := g.rects[0]
	for _, r := range g.rects[1:] {
		b = b.Union(r)
	}
	return b
}

// Area returns the number of pixels in the region.
func (g Region) Area() int {
	area := 0
	for _, r := range g.rects {
		area += r.Dx() * r.Dy()
	}
	return area
}

// Intersect returns the region covering the pixels common to g and o.
func (g Region) Intersect(o Region) Region {
	if g.Empty() || o.Empty() {
		return Region{}
	}
	var out []image.Rectangle
	for _, a := range g.rects {
		for _, b := range o.rects {
			if i := a.Intersect(b); !i.Empty() {
				out = append(out, i)
			}
		}
	}
	// Intersections of two disjoint sets are disjoint, but the banding
	// may no longer be canonical.
	return Region{rects: canonicalize(out)}
}

// Union returns the region covering the pixels of either g or o.
func (g Region) Union(o Region) Region {
	if g.Empty() {
		return o
	}
	if o.Empty() {
		return g
	}
	all := make([]image.Rectangle, 0, len(g.rects)+len(o.rects))
	all = append(all, g.rects...)
	all = append(all, o.rects...)
	return Region{rects: canonicalize(all)}
}

// Equal reports whether g and o cover exactly the same pixel set.
// Both operands are in canonical form, so this is a plain slice
// comparison.
func (g Region) Equal(o Region) bool {
	if len(g.rects) != len(o.rects) {
		return false
	}
	for i := range g.rects {
		if g.rects[i] != o.rects[i] {
			return false
		}
	}
	return true
}

// Overlaps reports whether the region and the rectangle share at
// least one pixel.
func (g Region) Overlaps(r image.Rectangle) bool {
	if r.Empty() {
		return false
	}
	for _, a := range g.rects {
		if a.Overlaps(r) {
			return true
		}
	}
	return false
}

// ContainsRect reports whether every pixel of r lies in the region.
// An empty rectangle is trivially contained.
func (g Region) ContainsRect(r image.Rectangle) bool {
	if r.Empty() {
		return true
	}
	covered := 0
	for _, a := range g.rects {
		if i := a.Intersect(r); !i.Empty() {
			covered += i.Dx() * i.Dy()
		}
	}
	return covered == r.Dx()*r.Dy()
}

// ContainsPoint reports whether the pixel at (x, y) lies in the region.
func (g Region) ContainsPoint(x, y int) bool {
	p := image.Pt(x, y)
	for _, a := range g.rects {
		if p.In(a) {
			return true
		}
	}
	return false
}

// canonicalize rebuilds an arbitrary (possibly overlapping) rectangle
// list into the canonical y-banded form: split the plane into
// horizontal bands at every rectangle edge, merge the x-intervals
// within each band, then coalesce vertically adjacent bands whose
// x-intervals are identical. Two lists covering the same pixel set
// always canonicalize to the same slice.
func canonicalize(rects []image.Rectangle) []image.Rectangle {
	if len(rects) == 0 {
		return nil
	}

	// Collect the distinct y edges.
	ys := make([]int, 0, len(rects)*2)
	for _, r := range rects {
		ys = append(ys, r.Min.Y, r.Max.Y)
	}
	sort.Ints(ys)
	ys = dedupe(ys)

	var out []image.Rectangle
	var prev []span // x-intervals of the previous band
	prevY0, prevY1 := 0, 0

	flush := func() {
		for _, s := range prev {
			out = append(out, image.Rect(s.lo, prevY0, s.hi, prevY1))
		}
		prev = nil
	}

	for i := 0; i+1 < len(ys); i++ {
		y0, y1 := ys[i], ys[i+1]
		var xs []span //nolint:prealloc
		for _, r := range rects {
			if r.Min.Y <= y0 && r.Max.Y >= y1 {
				xs = append(xs, span{r.Min.X, r.Max.X})
			}
		}
		if len(xs) == 0 {
			flush()
			continue
		}
		sort.Slice(xs, func(a, b int) bool { return xs[a].lo < xs[b].lo })
		// Merge overlapping or touching x-intervals.
		merged := xs[:1]
		for _, s := range xs[1:] {
			last := &merged[len(merged)-1]
			if s.lo <= last.hi {
				if s.hi > last.hi {
					last.hi = s.hi
				}
			} else {
				merged = append(merged, s)
			}
		}
		// Coalesce with the previous band when contiguous and identical.
		if prev != nil && prevY1 == y0 && spansEqual(prev, merged) {
			prevY1 = y1
			continue
		}
		flush()
		prev, prevY0, prevY1 = merged, y0, y1
	}
	flush()

	sort.Slice(out, func(a, b int) bool {
		if out[a].Min.Y != out[b].Min.Y {
			return out[a].Min.Y < out[b].Min.Y
		}
		return out[a].Min.X < out[b].Min.X
	})
	return out
}

// span is a half-open x-interval [lo, hi) within one band.
type span struct{ lo, hi int }

func spansEqual(a, b []span) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func dedupe(xs []int) []int {
	out := xs[:0]
	for i, x := range xs {
		if i == 0 || x != xs[i-1] {
			out = append(out, x)
		}
	}
	return out
}
