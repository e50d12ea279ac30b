// Package text measures and shapes text for flint drawing surfaces.
// Shaping goes through go-text/typesetting's HarfBuzz port, so
// kerning, ligatures and complex scripts come out right; the package
// reports extents and line metrics in device-independent pixels for
// the driver's coordinate space.
package text

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/go-text/typesetting/font"
	"golang.org/x/text/language"
)

var (
	// ErrInvalidFont reports font data that could not be parsed.
	ErrInvalidFont = errors.New("text: invalid font data")

	// ErrNoFace reports an operation that needs a face when none was
	// given.
	ErrNoFace = errors.New("text: no face")
)

// Face is a font at a fixed size. The parsed font tables are shared
// and read-only; a Face is safe for concurrent use by multiple
// shapers.
type Face struct {
	font *font.Font
	size float64
	lang language.Tag
}

// ParseFont parses TTF or OTF font data and returns a face at the
// given pixel size.
func ParseFont(data []byte, size float64, opts ...FaceOption) (*Face, error) {
	if size <= 0 {
		return nil, fmt.Errorf("text: font size %v out of range", size)
	}
	parsed, err := font.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFont, err)
	}
	f := &Face{font: parsed.Font, size: size, lang: language.English}
	for _, opt := range opts {
		opt(f)
	}
	return f, nil
}

// LoadFont reads a font file and returns a face at the given pixel
// size.
func LoadFont(path string, size float64, opts ...FaceOption) (*Face, error) {
	data, err := os.ReadFile(path) //nolint:gosec // font path is chosen by the caller
	if err != nil {
		return nil, fmt.Errorf("text: load font: %w", err)
	}
	return ParseFont(data, size, opts...)
}

// FaceOption configures a Face.
type FaceOption func(*Face)

// WithLanguage sets the language used for shaping, which selects
// language-specific OpenType features. The default is English.
func WithLanguage(tag language.Tag) FaceOption {
	return func(f *Face) {
		f.lang = tag
	}
}

// Size returns the face's pixel size.
func (f *Face) Size() float64 { return f.size }

// WithSize returns a face sharing the same font at a different size.
func (f *Face) WithSize(size float64) *Face {
	return &Face{font: f.font, size: size, lang: f.lang}
}
