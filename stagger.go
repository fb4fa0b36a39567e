package cascade

import (
	"errors"
	"fmt"
	"math"

	"github.com/tanema/gween/ease"
)

// StaggerTiming maps a section's progress to each character's local progress.
//
// Every character animates for the same duration. Start points are spread
// across the section's progress range in stagger order, leaving StartDelay
// of the range before the first character moves.
type StaggerTiming struct {
	// StartDelay is the share of the progress range reserved before any
	// character begins.
	StartDelay float64
	// MaxSpread caps the total inter-character delay spread.
	MaxSpread float64
	// SpreadRatio is the share of the remaining span used for spreading
	// start points, before the MaxSpread cap.
	SpreadRatio float64
	// Ease shapes local progress. Nil is linear. It must be non-decreasing
	// on [0, 1]; overshooting curves (back, elastic, bounce) are not. Output
	// is clamped to [0, 1] and the endpoints are pinned.
	Ease ease.TweenFunc
}

// ErrBadStagger is wrapped by every StaggerTiming.Validate failure.
var ErrBadStagger = errors.New("cascade: bad stagger timing")

// DefaultStaggerTiming is the reveal curve used when Options.Stagger is nil.
var DefaultStaggerTiming = StaggerTiming{
	StartDelay:  0.1,
	MaxSpread:   0.75,
	SpreadRatio: 0.75,
}

// Validate reports whether every character gets a positive duration that
// ends inside the progress range, for any character count.
func (st StaggerTiming) Validate() error {
	for _, v := range []float64{st.StartDelay, st.MaxSpread, st.SpreadRatio} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite value", ErrBadStagger)
		}
	}
	if st.StartDelay < 0 || st.StartDelay >= 1 {
		return fmt.Errorf("%w: start delay %v outside [0, 1)", ErrBadStagger, st.StartDelay)
	}
	if st.MaxSpread < 0 || st.SpreadRatio < 0 {
		return fmt.Errorf("%w: negative spread", ErrBadStagger)
	}
	if st.Spread() >= st.Span() {
		return fmt.Errorf("%w: spread %v leaves no duration within span %v", ErrBadStagger, st.Spread(), st.Span())
	}
	return nil
}

// Span is the share of the range left after StartDelay.
func (st StaggerTiming) Span() float64 {
	return 1 - st.StartDelay
}

// Spread is the total inter-character delay spread.
func (st StaggerTiming) Spread() float64 {
	return math.Min(st.MaxSpread, st.Span()*st.SpreadRatio)
}

// Window returns the start point and duration of character index within a
// section of count characters. With reversed set, the last character starts
// first.
func (st StaggerTiming) Window(index, count int, reversed bool) (delay, duration float64) {
	if count <= 0 {
		return st.StartDelay, st.Span()
	}
	staggerIndex := index
	if reversed {
		staggerIndex = count - 1 - index
	}
	spread := st.Spread()
	n := float64(count)
	delay = st.StartDelay + float64(staggerIndex)/n*spread
	duration = st.Span() - spread*(n-1)/n
	return delay, duration
}

// Local returns the local progress in [0, 1] of character index for the
// given section progress.
func (st StaggerTiming) Local(progress float64, index, count int, reversed bool) float64 {
	if progress >= 1 {
		return 1
	}
	delay, duration := st.Window(index, count, reversed)
	if progress < delay {
		return 0
	}
	local := 1.0
	if duration > 0 {
		local = math.Min(1, (progress-delay)/duration)
	}
	return st.shape(local)
}

// shape applies Ease with pinned endpoints.
func (st StaggerTiming) shape(local float64) float64 {
	if st.Ease == nil || local <= 0 || local >= 1 {
		return local
	}
	return clamp01(float64(st.Ease(float32(local), 0, 1, 1)))
}

// Stagger returns the local progress of a character with DefaultStaggerTiming.
func Stagger(progress float64, index, count int, reversed bool) float64 {
	return DefaultStaggerTiming.Local(progress, index, count, reversed)
}
