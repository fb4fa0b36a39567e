package cascade

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrBadEdge is wrapped by every ParseEdge failure.
var ErrBadEdge = errors.New("cascade: bad trigger edge")

// Offset is a distance along one axis: Percent of a reference size plus a
// fixed number of Pixels.
type Offset struct {
	Percent float64
	Pixels  float64
}

func (o Offset) resolve(size float64) float64 {
	return o.Percent/100*size + o.Pixels
}

func (o Offset) String() string {
	var base string
	switch {
	case o.Percent == 0 && o.Pixels != 0:
		return formatPixels(o.Pixels)
	case o.Percent == 0:
		base = "top"
	case o.Percent == 50:
		base = "center"
	case o.Percent == 100:
		base = "bottom"
	default:
		base = strconv.FormatFloat(o.Percent, 'f', -1, 64) + "%"
	}
	if o.Pixels > 0 {
		return base + "+=" + strconv.FormatFloat(o.Pixels, 'f', -1, 64)
	}
	if o.Pixels < 0 {
		return base + "-=" + strconv.FormatFloat(-o.Pixels, 'f', -1, 64)
	}
	return base
}

func formatPixels(px float64) string {
	return strconv.FormatFloat(px, 'f', -1, 64) + "px"
}

// Edge is one trigger boundary: the scroll position at which a point on the
// element (Element, relative to the element's height) meets a point on the
// viewport (Viewport, relative to the viewport height).
//
// A Relative edge is Shift pixels past an anchor instead. End edges anchor
// on the resolved start; start edges anchor on the element top.
type Edge struct {
	Element  Offset
	Viewport Offset
	Relative bool
	Shift    float64
}

// Geometry is the element and viewport measurement an edge resolves against.
// All values are content-space units.
type Geometry struct {
	ElementTop     float64
	ElementHeight  float64
	ViewportHeight float64
}

// Resolve returns the absolute scroll position of the edge.
func (e Edge) Resolve(g Geometry, anchor float64) float64 {
	if e.Relative {
		return anchor + e.Shift
	}
	return g.ElementTop + e.Element.resolve(g.ElementHeight) - e.Viewport.resolve(g.ViewportHeight)
}

// String formats the edge in the syntax ParseEdge accepts.
func (e Edge) String() string {
	if e.Relative {
		if e.Shift < 0 {
			return "-=" + strconv.FormatFloat(-e.Shift, 'f', -1, 64)
		}
		return "+=" + strconv.FormatFloat(e.Shift, 'f', -1, 64)
	}
	return e.Element.String() + " " + e.Viewport.String()
}

// Default trigger edges: progress starts when the element's top reaches the
// viewport bottom and completes when it is a quarter viewport above the top.
var (
	DefaultStart = MustParseEdge("top bottom")
	DefaultEnd   = MustParseEdge("top -25%")
)

// DefaultScrub is the default smoothing time in seconds.
const DefaultScrub = 1.0

// ParseEdge parses a trigger boundary.
//
//	"top bottom"      element top meets viewport bottom
//	"center 50%"      element center meets viewport middle
//	"top -25%"        element top is a quarter viewport above the top
//	"bottom+=100 top" 100px below the element bottom meets the viewport top
//	"120px 0"         pixel offsets on both sides
//	"+=300"           300px past the anchor (relative)
//
// A single token is used for both sides ("center" is "center center").
func ParseEdge(s string) (Edge, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Edge{}, fmt.Errorf("%w: empty", ErrBadEdge)
	}
	if strings.HasPrefix(s, "+=") || strings.HasPrefix(s, "-=") {
		px, err := parsePixels(s[2:])
		if err != nil {
			return Edge{}, fmt.Errorf("%w: %q: %v", ErrBadEdge, s, err)
		}
		if s[0] == '-' {
			px = -px
		}
		return Edge{Relative: true, Shift: px}, nil
	}

	fields := strings.Fields(s)
	if len(fields) > 2 {
		return Edge{}, fmt.Errorf("%w: %q: want at most two positions", ErrBadEdge, s)
	}
	elem, err := parseOffset(fields[0])
	if err != nil {
		return Edge{}, fmt.Errorf("%w: %q: %v", ErrBadEdge, s, err)
	}
	view := elem
	if len(fields) == 2 {
		view, err = parseOffset(fields[1])
		if err != nil {
			return Edge{}, fmt.Errorf("%w: %q: %v", ErrBadEdge, s, err)
		}
	}
	return Edge{Element: elem, Viewport: view}, nil
}

// MustParseEdge is like ParseEdge but panics on error. For package-level
// defaults and tests.
func MustParseEdge(s string) Edge {
	e, err := ParseEdge(s)
	if err != nil {
		panic(err)
	}
	return e
}

// parseOffset parses "<base>[+=N|-=N]".
func parseOffset(tok string) (Offset, error) {
	base, adjust := tok, ""
	if i := strings.Index(tok, "+="); i > 0 {
		base, adjust = tok[:i], tok[i:]
	} else if i := strings.Index(tok, "-="); i > 0 {
		base, adjust = tok[:i], tok[i:]
	}

	var o Offset
	switch base {
	case "top", "left":
		o.Percent = 0
	case "center":
		o.Percent = 50
	case "bottom", "right":
		o.Percent = 100
	default:
		if strings.HasSuffix(base, "%") {
			v, err := strconv.ParseFloat(strings.TrimSuffix(base, "%"), 64)
			if err != nil || !isFinite(v) {
				return Offset{}, fmt.Errorf("bad percentage %q", base)
			}
			o.Percent = v
		} else {
			v, err := parsePixels(base)
			if err != nil {
				return Offset{}, err
			}
			o.Pixels = v
		}
	}

	if adjust != "" {
		v, err := parsePixels(adjust[2:])
		if err != nil {
			return Offset{}, err
		}
		if adjust[0] == '-' {
			v = -v
		}
		o.Pixels += v
	}
	return o, nil
}

// parsePixels parses "120" or "120px".
func parsePixels(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "px"), 64)
	if err != nil || !isFinite(v) {
		return 0, fmt.Errorf("bad pixel value %q", s)
	}
	return v, nil
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
