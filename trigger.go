package cascade

import "math"

// scrubSettle is ln(100): with it the gap between smoothed and raw progress
// shrinks to 1% after Scrub seconds.
const scrubSettle = 4.605170185988092

// snapEpsilon is the gap below which smoothed progress snaps to raw.
const snapEpsilon = 1e-6

// Trigger tracks one section's progress through its scroll interval and owns
// the section's character units.
type Trigger struct {
	// Index is the section's document order.
	Index int
	// Name labels the section in logs and node names.
	Name string

	Start, End Edge
	// Scrub is the smoothing time in seconds; 0 follows scroll instantly.
	Scrub float64

	Role  Role
	Style RoleStyle

	// Container receives the horizontal offset. Chars are the container's
	// glyph children, in order.
	Container *Node
	Chars     []Char

	clusters []string // all clusters including whitespace, for layout

	startPos, endPos float64
	progress         float64
	smoothed         float64
	primed           bool
}

// Refresh resolves the trigger edges against the current geometry. Call it
// at setup and whenever the viewport or layout changes.
func (t *Trigger) Refresh(g Geometry) {
	t.startPos = t.Start.Resolve(g, g.ElementTop)
	t.endPos = t.End.Resolve(g, t.startPos)
}

// Bounds returns the resolved scroll positions of the start and end edges.
func (t *Trigger) Bounds() (start, end float64) {
	return t.startPos, t.endPos
}

// RawProgress returns the unsmoothed progress for scroll position p.
func (t *Trigger) RawProgress(p float64) float64 {
	return ProgressAt(p, t.startPos, t.endPos)
}

// Progress returns the raw progress computed on the last tick.
func (t *Trigger) Progress() float64 {
	return t.progress
}

// Smoothed returns the scrub-smoothed progress computed on the last tick.
func (t *Trigger) Smoothed() float64 {
	return t.smoothed
}

// ProgressAt maps scroll position p onto the interval [start, end] as a
// value in [0, 1]. A degenerate or inverted interval switches instantly at
// start.
func ProgressAt(p, start, end float64) float64 {
	if end <= start {
		if p >= start {
			return 1
		}
		return 0
	}
	return clamp01((p - start) / (end - start))
}

// ScrubRate returns the per-tick damping factor for a scrub time and a
// frame delta, both in seconds.
func ScrubRate(scrub, dt float64) float64 {
	if scrub <= 0 {
		return 1
	}
	if dt <= 0 {
		return 0
	}
	return 1 - math.Exp(-dt*scrubSettle/scrub)
}

// update recomputes raw progress and advances the smoothed value by dt
// seconds. The first update after setup jumps straight to raw progress.
func (t *Trigger) update(scrollY, dt float64) {
	t.progress = t.RawProgress(scrollY)
	if !t.primed {
		t.smoothed = t.progress
		t.primed = true
		return
	}
	t.smoothed += (t.progress - t.smoothed) * ScrubRate(t.Scrub, dt)
	if math.Abs(t.progress-t.smoothed) < snapEpsilon {
		t.smoothed = t.progress
	}
}

// reset drops smoothing state so the next update jumps to raw progress.
func (t *Trigger) reset() {
	t.primed = false
}

// geometry measures the container for edge resolution.
func (t *Trigger) geometry(viewportHeight float64) Geometry {
	return Geometry{
		ElementTop:     t.Container.Top,
		ElementHeight:  t.Container.Height,
		ViewportHeight: viewportHeight,
	}
}
