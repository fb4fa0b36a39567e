package ebitenview

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// TTFFont wraps Ebitengine's text/v2 for TrueType glyph drawing and
// implements cascade.Font so the page layout measures with the same face
// that draws.
type TTFFont struct {
	face *text.GoTextFace
	size float64
	lh   float64 // cached line height
}

// LoadTTFFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadTTFFont(ttfData []byte, size float64) (*TTFFont, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("ebitenview: failed to parse TTF data: %w", err)
	}

	face := &text.GoTextFace{
		Source: source,
		Size:   size,
	}

	m := face.Metrics()
	lh := m.HAscent + m.HDescent + m.HLineGap

	return &TTFFont{
		face: face,
		size: size,
		lh:   lh,
	}, nil
}

// DefaultFont loads Go Regular at size.
func DefaultFont(size float64) (*TTFFont, error) {
	return LoadTTFFont(goregular.TTF, size)
}

// Advance returns the horizontal advance of glyph.
func (f *TTFFont) Advance(glyph string) float64 {
	return text.Advance(glyph, f.face)
}

// LineHeight returns the vertical distance between baselines.
func (f *TTFFont) LineHeight() float64 {
	return f.lh
}

// Size returns the font size the face was loaded at.
func (f *TTFFont) Size() float64 {
	return f.size
}

// Face returns the underlying GoTextFace for direct text/v2 rendering.
func (f *TTFFont) Face() *text.GoTextFace {
	return f.face
}
