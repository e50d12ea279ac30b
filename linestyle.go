package flint

// LineStyle selects the dash pattern, cap, and join of stroked
// primitives. Values combine one pattern with optional cap and join
// flags, e.g. Dash|CapRound.
type LineStyle int

// Dash patterns. The pattern length scales with the pen width so wide
// dashed lines keep their proportions.
const (
	Solid      LineStyle = 0
	Dash       LineStyle = 1
	Dot        LineStyle = 2
	DashDot    LineStyle = 3
	DashDotDot LineStyle = 4
)

// Cap flags.
const (
	CapFlat   LineStyle = 0x100
	CapRound  LineStyle = 0x200
	CapSquare LineStyle = 0x300
)

// Join flags.
const (
	JoinMiter LineStyle = 0x1000
	JoinRound LineStyle = 0x2000
	JoinBevel LineStyle = 0x3000
)

const (
	patternMask LineStyle = 0x00ff
	capMask     LineStyle = 0x0f00
	joinMask    LineStyle = 0xf000
)

// Pattern returns the dash-pattern part of the style.
func (s LineStyle) Pattern() LineStyle { return s & patternMask }

// Cap returns the cap part of the style (zero means backend default).
func (s LineStyle) Cap() LineStyle { return s & capMask }

// Join returns the join part of the style (zero means backend default).
func (s LineStyle) Join() LineStyle { return s & joinMask }

// DashPattern returns the on/off run lengths, in device pixels, for
// the style at the given pen width. A nil result means solid. Backends
// without a native dash facility feed this through a pixel mask.
func (s LineStyle) DashPattern(width int) []int {
	if width < 1 {
		width = 1
	}
	switch s.Pattern() {
	case Dash:
		return []int{3 * width, 3 * width}
	case Dot:
		return []int{width, width}
	case DashDot:
		return []int{3 * width, 2 * width, width, 2 * width}
	case DashDotDot:
		return []int{3 * width, 2 * width, width, 2 * width, width, 2 * width}
	default:
		return nil
	}
}
