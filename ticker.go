package cascade

import "time"

// tickHandler is one registered frame callback.
type tickHandler struct {
	id uint32
	fn func(now time.Duration)
}

// Ticker is the shared frame clock. The smooth scroller and the engine both
// subscribe to one Ticker so every frame first advances scrolling and then
// evaluates poses against the fresh scroll position.
//
// Handlers run in registration order. A handler removed during a tick does
// not run for the rest of that tick.
type Ticker struct {
	handlers []tickHandler
	nextID   uint32
	now      time.Duration
	frame    uint64
	pruning  bool
}

// NewTicker creates an empty ticker at time zero.
func NewTicker() *Ticker {
	return &Ticker{}
}

// Add registers fn and returns a func that removes it. Calling the returned
// func more than once is a no-op.
func (t *Ticker) Add(fn func(now time.Duration)) (remove func()) {
	t.nextID++
	id := t.nextID
	t.handlers = append(t.handlers, tickHandler{id: id, fn: fn})
	return func() { t.remove(id) }
}

func (t *Ticker) remove(id uint32) {
	for i := range t.handlers {
		if t.handlers[i].id == id {
			t.handlers[i].fn = nil
			t.pruning = true
			return
		}
	}
}

// Tick dispatches now to every handler.
func (t *Ticker) Tick(now time.Duration) {
	t.now = now
	t.frame++
	// Handlers added during dispatch wait for the next tick.
	n := len(t.handlers)
	for i := 0; i < n; i++ {
		if fn := t.handlers[i].fn; fn != nil {
			fn(now)
		}
	}
	if t.pruning {
		t.prune()
	}
}

// Advance ticks at the current time plus dt.
func (t *Ticker) Advance(dt time.Duration) {
	t.Tick(t.now + dt)
}

// prune drops removed handlers, keeping order.
func (t *Ticker) prune() {
	kept := t.handlers[:0]
	for _, h := range t.handlers {
		if h.fn != nil {
			kept = append(kept, h)
		}
	}
	for i := len(kept); i < len(t.handlers); i++ {
		t.handlers[i] = tickHandler{}
	}
	t.handlers = kept
	t.pruning = false
}

// Now returns the timestamp of the last tick.
func (t *Ticker) Now() time.Duration {
	return t.now
}

// Frame returns the number of ticks dispatched.
func (t *Ticker) Frame() uint64 {
	return t.frame
}

// Len returns the number of live handlers.
func (t *Ticker) Len() int {
	n := 0
	for _, h := range t.handlers {
		if h.fn != nil {
			n++
		}
	}
	return n
}

// frameDelta converts two tick timestamps into a non-negative delta in
// seconds. The first tick (primed == false) has no delta.
func frameDelta(prev, now time.Duration, primed bool) float64 {
	if !primed || now <= prev {
		return 0
	}
	return (now - prev).Seconds()
}
