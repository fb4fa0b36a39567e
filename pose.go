package cascade

// Pose is a section's computed visual state for one progress value.
type Pose struct {
	// Progress is the section progress the pose was evaluated at.
	Progress float64
	// ContainerX is the container's horizontal offset, in percent of its
	// own width.
	ContainerX float64
	// CharLocal and CharY hold each character's local progress and
	// vertical offset, in character order.
	CharLocal []float64
	CharY     []float64
}

// ContainerX interpolates the container offset from initialX toward 0.
func ContainerX(progress, initialX float64) float64 {
	return initialX - progress*initialX
}

// CharY interpolates a character offset from initialY toward 0.
func CharY(local, initialY float64) float64 {
	return initialY - local*initialY
}

// Evaluate computes the trigger's pose at progress into dst, reusing dst's
// slices. It does not touch nodes.
func (t *Trigger) Evaluate(progress float64, timing *StaggerTiming, dst *Pose) {
	progress = clamp01(progress)
	dst.Progress = progress
	dst.ContainerX = ContainerX(progress, t.Style.InitialX)

	n := len(t.Chars)
	if cap(dst.CharY) < n || cap(dst.CharLocal) < n {
		dst.CharY = make([]float64, n)
		dst.CharLocal = make([]float64, n)
	}
	dst.CharY = dst.CharY[:n]
	dst.CharLocal = dst.CharLocal[:n]
	for i := range t.Chars {
		local := timing.Local(progress, i, n, t.Style.Reversed)
		dst.CharLocal[i] = local
		dst.CharY[i] = CharY(local, t.Chars[i].InitialY)
	}
}

// apply writes a pose to the section's nodes. A disposed container is left
// alone.
func (t *Trigger) apply(p *Pose) {
	if t.Container == nil || t.Container.IsDisposed() {
		return
	}
	if t.Container.X != p.ContainerX {
		t.Container.X = p.ContainerX
		t.Container.MarkDirty()
	}
	for i := range t.Chars {
		node := t.Chars[i].Node
		if node.Y != p.CharY[i] {
			node.Y = p.CharY[i]
			node.MarkDirty()
		}
	}
}
