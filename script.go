package cascade

import (
	"encoding/json"
	"fmt"
	"time"
)

// Script actions.
const (
	ActionScroll   = "scroll"
	ActionScrollTo = "scrollTo"
	ActionJump     = "jump"
	ActionWait     = "wait"
	ActionSettle   = "settle"
	ActionSnapshot = "snapshot"
)

// ScriptStep is a single action in a scroll script.
type ScriptStep struct {
	Action   string  `json:"action"`
	Label    string  `json:"label,omitempty"`
	Y        float64 `json:"y,omitempty"`
	By       float64 `json:"by,omitempty"`
	Duration float32 `json:"duration,omitempty"`
	Frames   int     `json:"frames,omitempty"`
}

// ScrollScript is the top-level JSON structure for a scroll script.
type ScrollScript struct {
	Steps []ScriptStep `json:"steps"`
}

// ScriptRunner plays a ScrollScript against a SmoothScroller one frame at a
// time, for demos and automated captures.
type ScriptRunner struct {
	// OnSnapshot is called for every snapshot step. Nil ignores them.
	OnSnapshot func(label string)

	steps     []ScriptStep
	cursor    int
	waitCount int
	settling  bool
	pending   []float64
	done      bool
	detach    func()
}

// LoadScrollScript parses a JSON scroll script.
func LoadScrollScript(jsonData []byte) (*ScriptRunner, error) {
	var script ScrollScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("cascade: parse scroll script: %w", err)
	}
	return NewScriptRunner(script)
}

// NewScriptRunner validates script and returns a runner for it.
func NewScriptRunner(script ScrollScript) (*ScriptRunner, error) {
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("cascade: parse scroll script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case ActionScroll, ActionScrollTo, ActionJump, ActionWait, ActionSettle, ActionSnapshot:
		default:
			return nil, fmt.Errorf("cascade: scroll script step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// Done reports whether every step has run.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Step advances the runner by one frame.
func (r *ScriptRunner) Step(s *SmoothScroller) {
	if r.done {
		return
	}
	// Feed queued scroll deltas one per frame before advancing.
	if len(r.pending) > 0 {
		s.ScrollBy(r.pending[0])
		r.pending = r.pending[1:]
		r.checkDone()
		return
	}
	if r.settling {
		if !s.Settled() {
			return
		}
		r.settling = false
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case ActionScroll:
		frames := max(st.Frames, 1)
		delta := st.By / float64(frames)
		s.ScrollBy(delta)
		for i := 1; i < frames; i++ {
			r.pending = append(r.pending, delta)
		}
	case ActionScrollTo:
		s.ScrollTo(st.Y, st.Duration, nil)
	case ActionJump:
		s.Jump(st.Y)
	case ActionWait:
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case ActionSettle:
		r.settling = !s.Settled()
	case ActionSnapshot:
		if r.OnSnapshot != nil {
			r.OnSnapshot(st.Label)
		}
	}

	r.checkDone()
}

// checkDone finishes the runner once the last step has run and nothing is
// left pending.
func (r *ScriptRunner) checkDone() {
	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(r.pending) == 0 && !r.settling {
		r.done = true
	}
}

// Attach subscribes the runner to ticker, driving s. Attach it before the
// scroller so input lands on the same frame. Calling Attach again replaces
// the previous subscription.
func (r *ScriptRunner) Attach(ticker *Ticker, s *SmoothScroller) (detach func()) {
	if r.detach != nil {
		r.detach()
	}
	r.detach = ticker.Add(func(time.Duration) { r.Step(s) })
	return r.detach
}
