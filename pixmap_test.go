package flint

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

func TestPixmapSetGet(t *testing.T) {
	pm := NewPixmap(8, 8)
	pm.SetPixel(3, 4, Red)
	if got := pm.GetPixel(3, 4); got != Red {
		t.Errorf("GetPixel(3,4) = %v, want red", got)
	}
	if got := pm.GetPixel(0, 0); got != (Color{}) {
		t.Errorf("GetPixel(0,0) = %v, want zero", got)
	}
}

func TestPixmapOutOfBounds(t *testing.T) {
	pm := NewPixmap(4, 4)
	// Out-of-bounds access must be a no-op, not a panic.
	pm.SetPixel(-1, 0, Red)
	pm.SetPixel(4, 0, Red)
	pm.SetPixel(0, 17, Red)
	if got := pm.GetPixel(-1, 0); got != (Color{}) {
		t.Errorf("GetPixel(-1,0) = %v, want zero", got)
	}
}

func TestPixmapFillRectClamped(t *testing.T) {
	pm := NewPixmap(6, 6)
	pm.FillRect(image.Rect(-2, -2, 3, 3), Blue)
	if pm.GetPixel(0, 0) != Blue || pm.GetPixel(2, 2) != Blue {
		t.Error("clamped fill missed in-bounds pixels")
	}
	if pm.GetPixel(3, 3) == Blue {
		t.Error("fill exceeded its rectangle")
	}
}

func TestPixmapClear(t *testing.T) {
	pm := NewPixmap(4, 4)
	pm.Clear(White)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if pm.GetPixel(x, y) != White {
				t.Fatalf("pixel (%d,%d) not cleared", x, y)
			}
		}
	}
}

func TestPixmapImageInterface(t *testing.T) {
	pm := NewPixmap(4, 4)
	pm.SetPixel(1, 2, RGBA(10, 20, 30, 255))

	if pm.Bounds() != image.Rect(0, 0, 4, 4) {
		t.Errorf("Bounds() = %v", pm.Bounds())
	}
	if pm.ColorModel() != color.NRGBAModel {
		t.Error("ColorModel() is not NRGBA")
	}
	got := pm.At(1, 2).(color.NRGBA)
	if got != (color.NRGBA{R: 10, G: 20, B: 30, A: 255}) {
		t.Errorf("At(1,2) = %v", got)
	}
}

func TestPixmapRoundTrip(t *testing.T) {
	pm := NewPixmap(5, 5)
	pm.SetPixel(2, 2, Green)
	back := FromImage(pm.ToImage())
	if back.Width() != 5 || back.Height() != 5 {
		t.Fatalf("round trip size = %dx%d", back.Width(), back.Height())
	}
	if back.GetPixel(2, 2) != Green {
		t.Error("pixel lost in image round trip")
	}
}

func TestPixmapRescale(t *testing.T) {
	pm := NewPixmap(8, 8)
	pm.Clear(Red)
	out := pm.Rescale(16, 4)
	if out.Width() != 16 || out.Height() != 4 {
		t.Fatalf("Rescale size = %dx%d, want 16x4", out.Width(), out.Height())
	}
	// A uniform image stays uniform under resampling.
	if out.GetPixel(8, 2) != Red {
		t.Errorf("rescaled pixel = %v, want red", out.GetPixel(8, 2))
	}
}

func TestPixmapSavePNG(t *testing.T) {
	pm := NewPixmap(4, 4)
	pm.Clear(Blue)
	path := filepath.Join(t.TempDir(), "out.png")
	if err := pm.SavePNG(path); err != nil {
		t.Fatalf("SavePNG() error = %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Size() == 0 {
		t.Error("SavePNG wrote an empty file")
	}
}
