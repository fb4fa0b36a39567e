package cascade

import (
	"strings"
	"testing"
)

func TestLoadScrollScript(t *testing.T) {
	data := []byte(`{
		"steps": [
			{"action": "snapshot", "label": "initial"},
			{"action": "scroll", "by": 300, "frames": 3},
			{"action": "wait", "frames": 2},
			{"action": "scrollTo", "y": 1200, "duration": 0.5},
			{"action": "settle"},
			{"action": "snapshot", "label": "end"}
		]
	}`)

	runner, err := LoadScrollScript(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(runner.steps) != 6 {
		t.Fatalf("expected 6 steps, got %d", len(runner.steps))
	}
	if runner.steps[1].Action != ActionScroll || runner.steps[1].By != 300 || runner.steps[1].Frames != 3 {
		t.Error("step 1 mismatch")
	}
	if runner.steps[3].Y != 1200 || runner.steps[3].Duration != 0.5 {
		t.Error("step 3 mismatch")
	}
}

func TestLoadScrollScript_Invalid(t *testing.T) {
	tests := map[string]string{
		"not json":       `not json`,
		"no steps":       `{"steps": []}`,
		"unknown action": `{"steps": [{"action": "click"}]}`,
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadScrollScript([]byte(data))
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.HasPrefix(err.Error(), "cascade:") {
				t.Errorf("error %q lacks package prefix", err)
			}
		})
	}
}

func TestRunnerStep_Scroll(t *testing.T) {
	s := NewSmoothScroller(1000)
	runner, err := LoadScrollScript([]byte(`{"steps": [{"action": "scroll", "by": 300, "frames": 3}]}`))
	if err != nil {
		t.Fatal(err)
	}

	// The delta is spread evenly over the frames.
	for i, want := range []float64{100, 200, 300} {
		runner.Step(s)
		if s.Target() != want {
			t.Errorf("frame %d target = %v, want %v", i, s.Target(), want)
		}
	}
	if !runner.Done() {
		t.Error("runner should be done once the deltas are fed")
	}
}

func TestRunnerStep_Wait(t *testing.T) {
	s := NewSmoothScroller(1000)
	var shots []string
	runner, err := LoadScrollScript([]byte(`{"steps": [
		{"action": "wait", "frames": 3},
		{"action": "snapshot", "label": "done"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	runner.OnSnapshot = func(label string) { shots = append(shots, label) }

	for i := 0; i < 3; i++ {
		runner.Step(s)
		if runner.Done() {
			t.Fatalf("done during wait at frame %d", i)
		}
	}
	runner.Step(s)
	if !runner.Done() {
		t.Error("runner should be done after snapshot step")
	}
	if len(shots) != 1 || shots[0] != "done" {
		t.Errorf("snapshots = %v, want [done]", shots)
	}
}

func TestRunnerStep_JumpAndScrollTo(t *testing.T) {
	s := NewSmoothScroller(1000)
	runner, err := LoadScrollScript([]byte(`{"steps": [
		{"action": "jump", "y": 400},
		{"action": "scrollTo", "y": 900, "duration": 1}
	]}`))
	if err != nil {
		t.Fatal(err)
	}

	runner.Step(s)
	if s.ScrollY() != 400 {
		t.Errorf("after jump y = %v, want 400", s.ScrollY())
	}
	runner.Step(s)
	if s.Target() != 900 || s.Settled() {
		t.Errorf("scrollTo target = %v settled = %v, want running toward 900", s.Target(), s.Settled())
	}
	if !runner.Done() {
		t.Error("runner should be done after last step")
	}
}

func TestRunnerStep_Settle(t *testing.T) {
	s := NewSmoothScroller(1000)
	runner, err := LoadScrollScript([]byte(`{"steps": [
		{"action": "scrollTo", "y": 500, "duration": 0.5},
		{"action": "settle"},
		{"action": "snapshot", "label": "settled"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	var shotAt float64 = -1
	runner.OnSnapshot = func(string) { shotAt = s.ScrollY() }

	for i := 0; i < 120; i++ {
		runner.Step(s)
		s.Update(1.0 / 60.0)
		if runner.Done() {
			break
		}
	}
	if !runner.Done() {
		t.Fatal("runner never finished")
	}
	if shotAt != 500 {
		t.Errorf("snapshot taken at y = %v, want 500", shotAt)
	}
}

func TestRunnerAttach(t *testing.T) {
	ticker := NewTicker()
	s := NewSmoothScroller(1000)
	s.Lerp = 1
	runner, err := LoadScrollScript([]byte(`{"steps": [{"action": "scroll", "by": 200, "frames": 2}]}`))
	if err != nil {
		t.Fatal(err)
	}
	runner.Attach(ticker, s)
	s.Attach(ticker)

	ticker.Tick(0)
	ticker.Advance(frame)
	if s.ScrollY() != 200 {
		t.Errorf("y = %v, want 200", s.ScrollY())
	}
	if !runner.Done() {
		t.Error("runner should be done")
	}
	if ticker.Len() != 2 {
		t.Errorf("handlers = %d, want 2", ticker.Len())
	}
}
