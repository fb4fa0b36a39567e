package cascade

import "testing"

func TestContainerX(t *testing.T) {
	tests := []struct {
		progress, initial, want float64
	}{
		{0, 100, 100},
		{0.5, 100, 50},
		{1, 100, 0},
		{0, -100, -100},
		{0.5, -100, -50},
		{1, -100, 0},
	}
	for _, tt := range tests {
		if got := ContainerX(tt.progress, tt.initial); got != tt.want {
			t.Errorf("ContainerX(%v, %v) = %v, want %v", tt.progress, tt.initial, got, tt.want)
		}
	}
}

func TestCharY(t *testing.T) {
	if CharY(0, -150) != -150 || CharY(1, -150) != 0 || CharY(1, 150) != 0 {
		t.Error("CharY endpoints wrong")
	}
	if CharY(0.5, 150) != 75 {
		t.Errorf("CharY(0.5, 150) = %v, want 75", CharY(0.5, 150))
	}
}

func TestTriggerEvaluateClampsProgress(t *testing.T) {
	container := NewContainer("c")
	tr := &Trigger{
		Style:     RoleStyle{InitialX: 100},
		Container: container,
		Chars:     newChars(container, SplitGraphemes("ab"), DefaultAmplitude),
	}
	var p Pose
	tr.Evaluate(1.7, &DefaultStaggerTiming, &p)
	if p.Progress != 1 || p.ContainerX != 0 {
		t.Errorf("over-range pose = %+v", p)
	}
	tr.Evaluate(-3, &DefaultStaggerTiming, &p)
	if p.Progress != 0 || p.ContainerX != 100 || p.CharY[0] != -150 || p.CharY[1] != 150 {
		t.Errorf("under-range pose = %+v", p)
	}
}

func TestTriggerApplySkipsDisposed(t *testing.T) {
	container := NewContainer("c")
	tr := &Trigger{
		Style:     RoleStyle{InitialX: 100},
		Container: container,
		Chars:     newChars(container, SplitGraphemes("ab"), DefaultAmplitude),
	}
	var p Pose
	tr.Evaluate(1, &DefaultStaggerTiming, &p)

	glyph := tr.Chars[0].Node
	container.Dispose()
	tr.apply(&p)
	if container.X != 0 {
		t.Errorf("container x = %v, want untouched 0", container.X)
	}
	if glyph.Y != -150 {
		t.Errorf("glyph y = %v, want untouched -150", glyph.Y)
	}
}

func TestTriggerApplyMarksDirty(t *testing.T) {
	container := NewContainer("c")
	tr := &Trigger{
		Style:     RoleStyle{InitialX: 100},
		Container: container,
		Chars:     newChars(container, SplitGraphemes("ab"), DefaultAmplitude),
	}
	container.X = 100
	container.ClearDirty()
	tr.Chars[0].Node.ClearDirty()
	tr.Chars[1].Node.ClearDirty()

	var p Pose
	tr.Evaluate(0, &DefaultStaggerTiming, &p)
	tr.apply(&p)
	if container.Dirty() || tr.Chars[0].Node.Dirty() {
		t.Error("unchanged offsets should not mark nodes dirty")
	}

	tr.Evaluate(1, &DefaultStaggerTiming, &p)
	tr.apply(&p)
	if !container.Dirty() || !tr.Chars[0].Node.Dirty() || !tr.Chars[1].Node.Dirty() {
		t.Error("changed offsets should mark nodes dirty")
	}
}
