package cascade

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
)

// ErrNoSections is returned by NewEngine when no sections are configured.
var ErrNoSections = errors.New("cascade: no sections")

// ScrollSource supplies the current scroll position in content units.
type ScrollSource interface {
	ScrollY() float64
}

// ScrollFunc adapts a plain func to ScrollSource.
type ScrollFunc func() float64

// ScrollY calls f.
func (f ScrollFunc) ScrollY() float64 { return f() }

// SectionConfig describes one heading.
type SectionConfig struct {
	// Text is the heading content.
	Text string
	// Name labels the section; defaults to "section-<index>".
	Name string
	// Start and End use the ParseEdge syntax. Empty means DefaultStart and
	// DefaultEnd.
	Start, End string
	// Scrub is the smoothing time in seconds. Nil means Options.Scrub.
	Scrub *float64
	// Role pins the section's role. Nil means Options.RoleRule decides.
	Role *Role
}

// Seconds returns a pointer to v, for SectionConfig.Scrub.
func Seconds(v float64) *float64 { return &v }

// RoleOf returns a pointer to r, for SectionConfig.Role.
func RoleOf(r Role) *Role { return &r }

// Options configures an Engine. The zero value is usable.
type Options struct {
	// Viewport is the initial viewport; Refresh replaces it on resize.
	Viewport Rect
	// Layout positions sections in content space.
	Layout Layout
	// Amplitude is the magnitude of each character's initial offset.
	// Zero means DefaultAmplitude.
	Amplitude float64
	// Scrub is the default smoothing time. Nil means DefaultScrub.
	Scrub *float64
	// Stagger is the character timing. Nil means DefaultStaggerTiming.
	Stagger *StaggerTiming
	// RoleRule assigns roles to sections without a pinned role. Nil means
	// DefaultRoleRule.
	RoleRule RoleRule
	// RoleStyles maps roles to entrances. Nil means DefaultRoleStyles.
	RoleStyles RoleStyles
	// Segmenter splits heading text. Nil means SplitGraphemes.
	Segmenter Segmenter
	// Logger receives setup, teardown and, at debug level, per-tick stats.
	// Nil disables logging.
	Logger *log.Logger
}

// Engine evaluates every section's pose from the scroll position on each
// tick of the shared clock. It owns the sections, their character units and
// their nodes; Dispose releases all of them together.
type Engine struct {
	triggers []Trigger
	poses    []Pose
	root     *Node

	scroll   ScrollSource
	timing   StaggerTiming
	layout   Layout
	viewport Rect
	logger   *log.Logger

	lastTick time.Duration
	primed   bool
	detach   func()
	disposed bool
}

// NewEngine builds the section registry from sections. Edge syntax errors
// and invalid stagger timing are returned; degenerate intervals and empty
// headings are accepted and degrade at tick time.
func NewEngine(sections []SectionConfig, scroll ScrollSource, opts Options) (*Engine, error) {
	if len(sections) == 0 {
		return nil, ErrNoSections
	}

	e := &Engine{
		triggers: make([]Trigger, len(sections)),
		poses:    make([]Pose, len(sections)),
		root:     NewContainer("root"),
		scroll:   scroll,
		timing:   DefaultStaggerTiming,
		layout:   opts.Layout,
		viewport: opts.Viewport,
		logger:   opts.Logger,
	}
	if opts.Stagger != nil {
		if err := opts.Stagger.Validate(); err != nil {
			return nil, err
		}
		e.timing = *opts.Stagger
	}

	amplitude := opts.Amplitude
	if amplitude == 0 {
		amplitude = DefaultAmplitude
	}
	scrub := DefaultScrub
	if opts.Scrub != nil {
		scrub = *opts.Scrub
	}
	rule := opts.RoleRule
	if rule == nil {
		rule = DefaultRoleRule
	}
	styles := opts.RoleStyles
	if styles == nil {
		styles = DefaultRoleStyles
	}
	segment := opts.Segmenter
	if segment == nil {
		segment = SplitGraphemes
	}

	for i, sc := range sections {
		t := &e.triggers[i]
		t.Index = i
		t.Name = sc.Name
		if t.Name == "" {
			t.Name = "section-" + strconv.Itoa(i)
		}

		var err error
		t.Start, err = edgeOr(sc.Start, DefaultStart)
		if err != nil {
			return nil, fmt.Errorf("cascade: section %q start: %w", t.Name, err)
		}
		t.End, err = edgeOr(sc.End, DefaultEnd)
		if err != nil {
			return nil, fmt.Errorf("cascade: section %q end: %w", t.Name, err)
		}

		t.Scrub = scrub
		if sc.Scrub != nil {
			t.Scrub = *sc.Scrub
		}
		t.Role = rule(i, len(sections))
		if sc.Role != nil {
			t.Role = *sc.Role
		}
		t.Style = styles.Style(t.Role)

		t.Container = NewContainer(t.Name)
		t.Container.X = t.Style.InitialX
		t.Container.UserData = t
		e.root.AddChild(t.Container)

		t.clusters = segment(sc.Text)
		t.Chars = newChars(t.Container, t.clusters, amplitude)
		if len(t.Chars) == 0 && e.logger != nil {
			e.logger.Warn("section has no characters", "section", t.Name)
		}

		// Preallocate pose buffers so ticks do not allocate.
		e.poses[i].CharY = make([]float64, len(t.Chars))
		e.poses[i].CharLocal = make([]float64, len(t.Chars))
		e.poses[i].ContainerX = t.Style.InitialX
		for ci := range t.Chars {
			e.poses[i].CharY[ci] = t.Chars[ci].InitialY
		}
	}

	e.Refresh(opts.Viewport)
	if e.logger != nil {
		e.logger.Debug("engine ready", "sections", len(e.triggers), "viewport", fmt.Sprintf("%gx%g", e.viewport.Width, e.viewport.Height))
	}
	return e, nil
}

func edgeOr(s string, def Edge) (Edge, error) {
	if s == "" {
		return def, nil
	}
	return ParseEdge(s)
}

// Refresh re-runs layout and re-resolves every trigger for a new viewport.
// Smoothing restarts so the next tick lands on the new geometry directly.
func (e *Engine) Refresh(viewport Rect) {
	if e.disposed {
		return
	}
	e.viewport = viewport
	e.layout.arrange(e.triggers, viewport.Height)
	for i := range e.triggers {
		t := &e.triggers[i]
		t.Refresh(t.geometry(viewport.Height))
		t.reset()
	}
}

// OnTick is the frame entry point: it recomputes each section's progress
// from the current scroll position, applies scrub smoothing over the time
// since the previous tick, evaluates poses and writes them to the nodes.
// Sections update in document order. A tick after Dispose is a no-op.
func (e *Engine) OnTick(now time.Duration) {
	if e.disposed || e.scroll == nil {
		return
	}
	var t0 time.Time
	debug := e.debugEnabled()
	if debug {
		t0 = time.Now()
	}

	dt := frameDelta(e.lastTick, now, e.primed)
	e.lastTick = now
	e.primed = true

	scrollY := e.scroll.ScrollY()
	chars := 0
	for i := range e.triggers {
		t := &e.triggers[i]
		t.update(scrollY, dt)
		t.Evaluate(t.smoothed, &e.timing, &e.poses[i])
		t.apply(&e.poses[i])
		chars += len(t.Chars)
	}

	if debug {
		e.debugLog(tickStats{
			scrollY:  scrollY,
			dt:       dt,
			sections: len(e.triggers),
			chars:    chars,
			elapsed:  time.Since(t0),
		})
	}
}

// Evaluate computes every section's pose at scrollY from raw progress,
// without smoothing and without touching nodes. dst is reused when it has
// room. Evaluating the same scrollY twice yields identical poses.
func (e *Engine) Evaluate(scrollY float64, dst []Pose) []Pose {
	if cap(dst) < len(e.triggers) {
		dst = make([]Pose, len(e.triggers))
	}
	dst = dst[:len(e.triggers)]
	for i := range e.triggers {
		t := &e.triggers[i]
		t.Evaluate(t.RawProgress(scrollY), &e.timing, &dst[i])
	}
	return dst
}

// Attach subscribes OnTick to ticker. Dispose removes the subscription.
func (e *Engine) Attach(ticker *Ticker) {
	if e.detach != nil {
		e.detach()
	}
	e.detach = ticker.Add(e.OnTick)
}

// Dispose releases the ticker subscription and every section node. Later
// ticks and refreshes are no-ops.
func (e *Engine) Dispose() {
	if e.disposed {
		return
	}
	e.disposed = true
	if e.detach != nil {
		e.detach()
		e.detach = nil
	}
	e.root.Dispose()
	for i := range e.triggers {
		e.triggers[i].Chars = nil
		e.triggers[i].clusters = nil
	}
	if e.logger != nil {
		e.logger.Debug("engine disposed", "sections", len(e.triggers))
	}
}

// Disposed reports whether Dispose has been called.
func (e *Engine) Disposed() bool {
	return e.disposed
}

// Root returns the node whose children are the section containers.
func (e *Engine) Root() *Node {
	return e.root
}

// NumSections returns the number of sections.
func (e *Engine) NumSections() int {
	return len(e.triggers)
}

// Section returns the trigger of section i.
func (e *Engine) Section(i int) *Trigger {
	return &e.triggers[i]
}

// Pose returns the pose computed for section i on the last tick. The
// returned value MUST NOT be mutated.
func (e *Engine) Pose(i int) *Pose {
	return &e.poses[i]
}

// Viewport returns the viewport of the last Refresh.
func (e *Engine) Viewport() Rect {
	return e.viewport
}

// Timing returns the stagger timing in use.
func (e *Engine) Timing() StaggerTiming {
	return e.timing
}

// ContentHeight returns the scrollable page height for the current viewport.
func (e *Engine) ContentHeight() float64 {
	return e.layout.ContentHeight(len(e.triggers), e.viewport.Height)
}

// ScrollLimit returns the largest meaningful scroll position.
func (e *Engine) ScrollLimit() float64 {
	return max(0, e.ContentHeight()-e.viewport.Height)
}
