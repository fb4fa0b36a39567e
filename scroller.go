package cascade

import (
	"math"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// DefaultLerp is the per-frame fraction of the remaining distance a
// SmoothScroller covers at 60 frames per second.
const DefaultLerp = 0.1

// settleEpsilon is the distance below which the scroller snaps to target.
const settleEpsilon = 0.01

// SmoothScroller turns discrete scroll input into a continuously damped
// scroll position. It implements ScrollSource, so an Engine can read it
// directly; attach both to the same Ticker with the scroller first.
type SmoothScroller struct {
	// Lerp is the per-frame damping factor in (0, 1]. 1 disables damping.
	Lerp float64
	// Limit is the largest scroll position. Positions are clamped to
	// [0, Limit].
	Limit float64

	y      float64
	target float64
	tween  *gween.Tween

	lastTick time.Duration
	primed   bool
	detach   func()
}

// NewSmoothScroller creates a scroller at position 0 with DefaultLerp.
func NewSmoothScroller(limit float64) *SmoothScroller {
	return &SmoothScroller{Lerp: DefaultLerp, Limit: max(0, limit)}
}

// ScrollY returns the current smoothed position.
func (s *SmoothScroller) ScrollY() float64 {
	return s.y
}

// Target returns the position the scroller is heading toward.
func (s *SmoothScroller) Target() float64 {
	return s.target
}

// ScrollBy moves the target by delta, as a wheel or key would. It cancels a
// running ScrollTo tween.
func (s *SmoothScroller) ScrollBy(delta float64) {
	s.tween = nil
	s.target = s.clamp(s.target + delta)
}

// ScrollTo animates to y over duration seconds using easeFn. A nil easeFn
// uses ease.OutExpo. A non-positive duration jumps.
func (s *SmoothScroller) ScrollTo(y float64, duration float32, easeFn ease.TweenFunc) {
	y = s.clamp(y)
	if duration <= 0 {
		s.Jump(y)
		return
	}
	if easeFn == nil {
		easeFn = ease.OutExpo
	}
	s.target = y
	s.tween = gween.New(float32(s.y), float32(y), duration, easeFn)
}

// Jump sets the position and target immediately.
func (s *SmoothScroller) Jump(y float64) {
	s.tween = nil
	s.y = s.clamp(y)
	s.target = s.y
}

// SetLimit changes Limit and re-clamps the position and target, e.g. after
// a resize.
func (s *SmoothScroller) SetLimit(limit float64) {
	s.Limit = max(0, limit)
	s.y = s.clamp(s.y)
	s.target = s.clamp(s.target)
}

// Settled reports whether the position has reached the target and no tween
// is running.
func (s *SmoothScroller) Settled() bool {
	return s.tween == nil && s.y == s.target
}

// Update advances the position by dt seconds.
func (s *SmoothScroller) Update(dt float32) {
	if dt <= 0 {
		return
	}
	if s.tween != nil {
		val, done := s.tween.Update(dt)
		s.y = s.clamp(float64(val))
		if done {
			s.y = s.target
			s.tween = nil
		}
		return
	}
	if s.y == s.target {
		return
	}
	s.y += (s.target - s.y) * s.damp(float64(dt))
	if math.Abs(s.target-s.y) < settleEpsilon {
		s.y = s.target
	}
}

// damp converts Lerp into a frame-rate independent blend for dt.
func (s *SmoothScroller) damp(dt float64) float64 {
	if s.Lerp >= 1 || s.Lerp <= 0 {
		return 1
	}
	return 1 - math.Pow(1-s.Lerp, dt*60)
}

// OnTick is the Ticker handler.
func (s *SmoothScroller) OnTick(now time.Duration) {
	dt := frameDelta(s.lastTick, now, s.primed)
	s.lastTick = now
	s.primed = true
	s.Update(float32(dt))
}

// Attach subscribes OnTick to ticker, replacing any previous subscription,
// and returns a func that detaches it.
func (s *SmoothScroller) Attach(ticker *Ticker) (detach func()) {
	if s.detach != nil {
		s.detach()
	}
	s.detach = ticker.Add(s.OnTick)
	return s.detach
}

func (s *SmoothScroller) clamp(y float64) float64 {
	return min(max(y, 0), s.Limit)
}
