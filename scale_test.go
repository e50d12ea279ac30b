package flint

import (
	"image"
	"testing"
)

func TestScalerLo(t *testing.T) {
	tests := []struct {
		factor float64
		v      int
		want   int
	}{
		{1, 0, 0},
		{1, 7, 7},
		{1, -3, -3},
		{2, 5, 10},
		{1.25, 3, 3},  // 3.75 floors to 3
		{1.25, 4, 5},  // exact product must not floor down
		{1.5, 3, 4},   // 4.5 floors to 4
		{0.75, 4, 3},  // exact product
		{2, -2, -4},
	}
	for _, tt := range tests {
		s := NewScaler(tt.factor)
		if got := s.Lo(tt.v); got != tt.want {
			t.Errorf("Lo(%d) at factor %v = %d, want %d", tt.v, tt.factor, got, tt.want)
		}
	}
}

// Adjacent logical rectangles must tile device space with no gap and
// no overlap at every factor.
func TestScalerSpanTiles(t *testing.T) {
	factors := []float64{1, 1.25, 1.5, 1.75, 2, 0.75, 3}
	for _, f := range factors {
		s := NewScaler(f)
		for v := -10; v <= 10; v++ {
			for l := 1; l <= 8; l++ {
				for split := 1; split < l; split++ {
					whole := s.Span(v, l)
					a := s.Span(v, split)
					b := s.Span(v+split, l-split)
					if a+b != whole {
						t.Fatalf("factor %v: Span(%d,%d)+Span(%d,%d) = %d+%d, want %d",
							f, v, split, v+split, l-split, a, b, whole)
					}
				}
			}
		}
	}
}

func TestScalerLast(t *testing.T) {
	s := NewScaler(2)
	// Last pixel of a width-3 extent at x=1: floor(3*2) = 6.
	if got := s.Last(1, 3); got != 6 {
		t.Errorf("Last(1, 3) = %d, want 6", got)
	}
	s = NewScaler(1)
	if got := s.Last(5, 4); got != 8 {
		t.Errorf("Last(5, 4) = %d, want 8", got)
	}
}

func TestScalerRect(t *testing.T) {
	s := NewScaler(1.5)
	got := s.Rect(2, 2, 4, 4)
	want := image.Rect(3, 3, 9, 9)
	if got != want {
		t.Errorf("Rect(2,2,4,4) = %v, want %v", got, want)
	}
	if !s.Rect(0, 0, 0, 5).Empty() {
		t.Error("Rect with zero width is not empty")
	}
	if !s.Rect(0, 0, 5, -1).Empty() {
		t.Error("Rect with negative height is not empty")
	}
}

func TestScalerUnscaleIdentityAtOne(t *testing.T) {
	s := NewScaler(1)
	for _, r := range []image.Rectangle{
		image.Rect(0, 0, 5, 5),
		image.Rect(-3, 2, 7, 9),
		image.Rect(10, 10, 11, 11),
	} {
		x, y, w, h := s.Unscale(r)
		if x != r.Min.X || y != r.Min.Y || w != r.Dx() || h != r.Dy() {
			t.Errorf("Unscale(%v) = %d,%d,%d,%d", r, x, y, w, h)
		}
	}
}

func TestScalerUnscaleCovers(t *testing.T) {
	// Unscale must return a logical rectangle whose scaled image
	// covers the device input.
	factors := []float64{1.25, 1.5, 2, 3}
	for _, f := range factors {
		s := NewScaler(f)
		for _, r := range []image.Rectangle{
			image.Rect(1, 1, 4, 4),
			image.Rect(0, 0, 7, 3),
			image.Rect(5, 2, 6, 9),
		} {
			x, y, w, h := s.Unscale(r)
			back := s.Rect(x, y, w, h)
			if !r.In(back) {
				t.Errorf("factor %v: Rect(Unscale(%v)) = %v does not cover input", f, r, back)
			}
		}
	}
}

func TestScalerLineWidth(t *testing.T) {
	tests := []struct {
		factor float64
		w      int
		want   int
	}{
		{1, 0, 1},
		{1, 1, 1},
		{1, 3, 3},
		{2, 1, 2},
		{2, 0, 1},
		{0.5, 1, 1}, // never thinner than one pixel
		{1.5, 3, 5},
	}
	for _, tt := range tests {
		s := NewScaler(tt.factor)
		if got := s.LineWidth(tt.w); got != tt.want {
			t.Errorf("LineWidth(%d) at factor %v = %d, want %d", tt.w, tt.factor, got, tt.want)
		}
	}
}

func TestNewScalerBadFactor(t *testing.T) {
	for _, f := range []float64{0, -1} {
		if got := NewScaler(f).Factor(); got != 1 {
			t.Errorf("NewScaler(%v).Factor() = %v, want 1", f, got)
		}
	}
}
