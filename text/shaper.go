package text

import (
	"sync"

	"github.com/go-text/typesetting/di"
	"github.com/go-text/typesetting/font"
	tslang "github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/math/fixed"
)

// Direction is the progression of text within a run.
type Direction int

const (
	DirectionLTR Direction = iota
	DirectionRTL
)

// Glyph is one positioned glyph in a shaped run. Positions are pen
// offsets from the run origin in pixels.
type Glyph struct {
	// GID identifies the glyph in the face's font.
	GID uint32

	// Cluster is the rune index this glyph maps back to.
	Cluster int

	// X and Y offset the glyph from the pen position.
	X, Y float64

	// Advance moves the pen after this glyph.
	Advance float64
}

// Run is the result of shaping one string with one face.
type Run struct {
	Glyphs []Glyph

	// Advance is the total pen advance of the run in pixels.
	Advance float64

	// Ascent and Descent are the face's line bounds, both positive,
	// measured from the baseline.
	Ascent, Descent float64

	// LineGap is the extra leading between lines.
	LineGap float64
}

// Height returns the line height of the run's face.
func (r Run) Height() float64 {
	return r.Ascent + r.Descent + r.LineGap
}

// Shaper shapes text through HarfBuzz. The zero value is ready to
// use and safe for concurrent use; the underlying HarfBuzz buffers
// are not, so they are pooled per call.
type Shaper struct {
	pool sync.Pool
}

// NewShaper creates a shaper.
func NewShaper() *Shaper {
	return &Shaper{}
}

func (s *Shaper) get() *shaping.HarfbuzzShaper {
	if hb, ok := s.pool.Get().(*shaping.HarfbuzzShaper); ok {
		return hb
	}
	return &shaping.HarfbuzzShaper{}
}

// Shape shapes one run of text with the face. Mixed-script text
// should be split into runs first; the script is detected from the
// first non-space rune.
func (s *Shaper) Shape(str string, face *Face, dir Direction) (Run, error) {
	if face == nil {
		return Run{}, ErrNoFace
	}
	runes := []rune(str)

	d := di.DirectionLTR
	if dir == DirectionRTL {
		d = di.DirectionRTL
	}

	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: d,
		Face:      font.NewFace(face.font),
		Size:      fixed.Int26_6(face.size * 64),
		Script:    detectScript(runes),
		Language:  tslang.NewLanguage(face.lang.String()),
	}

	hb := s.get()
	out := hb.Shape(input)
	s.pool.Put(hb)

	run := Run{
		Advance: fixedToFloat(out.Advance),
		Ascent:  fixedToFloat(out.LineBounds.Ascent),
		Descent: -fixedToFloat(out.LineBounds.Descent),
		LineGap: fixedToFloat(out.LineBounds.Gap),
	}
	if len(out.Glyphs) == 0 {
		return run, nil
	}
	run.Glyphs = make([]Glyph, len(out.Glyphs))
	var pen float64
	for i, g := range out.Glyphs {
		run.Glyphs[i] = Glyph{
			GID:     uint32(g.GlyphID),
			Cluster: g.TextIndex(),
			X:       pen + fixedToFloat(g.XOffset),
			Y:       fixedToFloat(g.YOffset),
			Advance: fixedToFloat(g.Advance),
		}
		pen += fixedToFloat(g.Advance)
	}
	return run, nil
}

// Extents returns the advance width and line height of the string,
// shaped left to right.
func (s *Shaper) Extents(str string, face *Face) (width, height float64, err error) {
	run, err := s.Shape(str, face, DirectionLTR)
	if err != nil {
		return 0, 0, err
	}
	return run.Advance, run.Height(), nil
}

// detectScript returns the script of the first non-space rune, which
// decides the OpenType shaping rules for the run.
func detectScript(runes []rune) tslang.Script {
	for _, r := range runes {
		switch r {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return tslang.LookupScript(r)
	}
	return tslang.Latin
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
