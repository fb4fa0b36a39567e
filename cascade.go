package cascade

// Rect is a box in content units: a viewport, or a screen-space band used
// for culling. Y grows downward, in the scroll direction.
type Rect struct {
	X, Y, Width, Height float64
}

// Intersects reports whether r and other share any point, edges included.
func (r Rect) Intersects(other Rect) bool {
	if r.X > other.X+other.Width || other.X > r.X+r.Width {
		return false
	}
	return r.Y <= other.Y+other.Height && other.Y <= r.Y+r.Height
}

// clamp01 restricts v to [0, 1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
