package cascade

import "github.com/rivo/uniseg"

// Font is the interface for glyph measurement used by Layout.
type Font interface {
	// Advance returns the horizontal advance of one grapheme cluster.
	Advance(glyph string) float64
	// LineHeight returns the height of one line of text.
	LineHeight() float64
}

// MonoFont measures every cluster as a whole number of fixed-width cells,
// using the cluster's display width (wide East Asian glyphs take two cells).
type MonoFont struct {
	CellWidth float64
	Line      float64
}

// Advance returns the cluster's display width times CellWidth.
func (f MonoFont) Advance(glyph string) float64 {
	return float64(uniseg.StringWidth(glyph)) * f.CellWidth
}

// LineHeight returns Line.
func (f MonoFont) LineHeight() float64 {
	return f.Line
}

// defaultFont is used when Layout.Font is nil.
var defaultFont = MonoFont{CellWidth: 48, Line: 96}

// Layout stacks the page vertically: an intro block, the sections in order
// separated by Gap, and an outro block. Sizes of zero default to one
// viewport height.
type Layout struct {
	IntroHeight   float64
	SectionHeight float64
	Gap           float64
	OutroHeight   float64
	Font          Font
}

func (l Layout) font() Font {
	if l.Font == nil {
		return defaultFont
	}
	return l.Font
}

func orViewport(v, viewportHeight float64) float64 {
	if v > 0 {
		return v
	}
	return viewportHeight
}

// ContentHeight returns the total scrollable height for n sections.
func (l Layout) ContentHeight(n int, viewportHeight float64) float64 {
	h := orViewport(l.IntroHeight, viewportHeight) + orViewport(l.OutroHeight, viewportHeight)
	if n > 0 {
		h += float64(n)*orViewport(l.SectionHeight, viewportHeight) + float64(n-1)*l.Gap
	}
	return h
}

// arrange positions every section container and measures its glyphs.
func (l Layout) arrange(triggers []Trigger, viewportHeight float64) {
	font := l.font()
	sectionH := orViewport(l.SectionHeight, viewportHeight)
	y := orViewport(l.IntroHeight, viewportHeight)
	for i := range triggers {
		t := &triggers[i]
		t.Container.Top = y
		t.Container.Height = sectionH
		t.Container.MarkDirty()

		x := 0.0
		ci := 0
		for _, cl := range t.clusters {
			adv := font.Advance(cl)
			if !isBlank(cl) && ci < len(t.Chars) {
				node := t.Chars[ci].Node
				node.HomeX = x
				node.Width = adv
				node.MarkDirty()
				ci++
			}
			x += adv
		}
		t.Container.Width = x

		y += sectionH + l.Gap
	}
}

// SectionVisible reports whether any part of a section, including glyphs
// pushed up to one section height outside it by their offsets, can reach
// the viewport at scrollY.
func SectionVisible(container *Node, scrollY float64, viewport Rect) bool {
	band := Rect{
		Y:      container.Top - scrollY - container.Height,
		Width:  viewport.Width,
		Height: 3 * container.Height,
	}
	return band.Intersects(Rect{Width: viewport.Width, Height: viewport.Height})
}

// GlyphOrigin returns the viewport position of a glyph's top-left corner.
// The text line is centered horizontally in the viewport and vertically in
// its section; the container's X shifts the line by a percentage of its own
// width and the glyph's Y lifts or drops it.
func GlyphOrigin(viewportW, scrollY, lineHeight float64, container, glyph *Node) (x, y float64) {
	x = (viewportW-container.Width)/2 + container.X/100*container.Width + glyph.HomeX
	y = container.Top - scrollY + (container.Height-lineHeight)/2 + glyph.Y
	return x, y
}
