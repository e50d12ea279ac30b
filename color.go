package flint

import "image/color"

// Color is the 8-bit-per-channel color consumed by drawing devices.
// The same value feeds both driver state slots: the pen (outline)
// color and the brush (fill) color.
type Color struct {
	R, G, B, A uint8
}

// RGB creates an opaque color from 8-bit components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 0xff}
}

// RGBA creates a color from 8-bit components including alpha.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// Gray creates an opaque gray level.
func Gray(v uint8) Color {
	return Color{R: v, G: v, B: v, A: 0xff}
}

// FromColor converts a standard color.Color.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{R: n.R, G: n.G, B: n.B, A: n.A}
}

// NRGBA converts to the standard library's non-premultiplied form.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// RGBA implements the color.Color interface (premultiplied 16-bit).
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// Common widget colors.
var (
	Black     = RGB(0x00, 0x00, 0x00)
	White     = RGB(0xff, 0xff, 0xff)
	Red       = RGB(0xff, 0x00, 0x00)
	Green     = RGB(0x00, 0xff, 0x00)
	Blue      = RGB(0x00, 0x00, 0xff)
	Yellow    = RGB(0xff, 0xff, 0x00)
	Cyan      = RGB(0x00, 0xff, 0xff)
	Magenta   = RGB(0xff, 0x00, 0xff)
	DarkGray  = Gray(0x55)
	LightGray = Gray(0xcc)
	Selection = RGB(0x00, 0x00, 0x80)
)
