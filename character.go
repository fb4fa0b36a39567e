package cascade

import (
	"strconv"
	"unicode"

	"github.com/rivo/uniseg"
)

// DefaultAmplitude is the magnitude of a character's initial vertical offset.
const DefaultAmplitude = 150.0

// Char is one character unit of a section. Index and InitialY are fixed at
// creation; the currently applied offset lives on Node.Y.
type Char struct {
	// Index is the position within the section's character sequence.
	Index int
	// Glyph is the grapheme cluster this unit draws.
	Glyph string
	// InitialY is the entrance offset: negative (above) for even indices,
	// positive (below) for odd ones.
	InitialY float64
	// Node receives the current vertical offset every tick.
	Node *Node
}

// ParityOffset returns the initial vertical offset for a character index.
func ParityOffset(index int, amplitude float64) float64 {
	if index%2 == 0 {
		return -amplitude
	}
	return amplitude
}

// Segmenter splits heading text into an ordered list of grapheme clusters,
// including whitespace clusters. The engine drops whitespace when it creates
// character units but keeps it for layout advances.
type Segmenter func(text string) []string

// SplitGraphemes is the default Segmenter. It splits text into extended
// grapheme clusters so combining marks and emoji sequences stay one unit.
func SplitGraphemes(text string) []string {
	var out []string
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// isBlank reports whether a cluster consists only of whitespace.
func isBlank(cluster string) bool {
	for _, r := range cluster {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// newChars creates character units and their glyph nodes for the non-blank
// clusters, attaching each node to container in order.
func newChars(container *Node, clusters []string, amplitude float64) []Char {
	chars := make([]Char, 0, len(clusters))
	for _, cl := range clusters {
		if isBlank(cl) {
			continue
		}
		i := len(chars)
		node := NewGlyph(container.Name+"/"+strconv.Itoa(i), cl)
		y := ParityOffset(i, amplitude)
		node.Y = y
		container.AddChild(node)
		chars = append(chars, Char{Index: i, Glyph: cl, InitialY: y, Node: node})
	}
	return chars
}
