package termview

import (
	"math"

	"github.com/rivo/uniseg"
)

// CellFont measures glyphs in terminal cells scaled to content units, so
// the engine's pixel-sized amplitude and edges keep their proportions on a
// character grid.
type CellFont struct {
	// ColUnit and RowUnit are the content units of one column and one row.
	ColUnit, RowUnit float64
}

// DefaultCellFont approximates a 16x32 pixel terminal cell.
var DefaultCellFont = CellFont{ColUnit: 16, RowUnit: 32}

// Advance returns the cluster's display width in columns times ColUnit.
func (f CellFont) Advance(glyph string) float64 {
	return float64(uniseg.StringWidth(glyph)) * f.ColUnit
}

// LineHeight returns one row.
func (f CellFont) LineHeight() float64 {
	return f.RowUnit
}

// Cell converts a content-space position to the nearest cell.
func (f CellFont) Cell(x, y float64) (col, row int) {
	return int(math.Round(x / f.ColUnit)), int(math.Round(y / f.RowUnit))
}

// Units converts a terminal size in cells to content units.
func (f CellFont) Units(cols, rows int) (w, h float64) {
	return float64(cols) * f.ColUnit, float64(rows) * f.RowUnit
}
