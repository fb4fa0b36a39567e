// Package termview paints a cascade page on a terminal with tcell.
package termview

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/cascade"
)

// DefaultFrameInterval paces Run at about 60 frames per second.
const DefaultFrameInterval = 16 * time.Millisecond

// Options configures a View.
type Options struct {
	// Font maps content units to cells. Zero means DefaultCellFont. It
	// should be the font the engine's Layout measured with.
	Font CellFont
	// Runner, when set, plays a scroll script before input is read.
	Runner *cascade.ScriptRunner
	// QuitWhenDone ends Run once Runner has finished.
	QuitWhenDone bool
	// Style draws the glyphs. Zero means the terminal default.
	Style tcell.Style
	// ShowStatus draws a status line with the scroll position.
	ShowStatus bool
	// Logger receives script snapshots. Nil discards them.
	Logger *log.Logger
}

// View draws one page on a tcell screen and drives its ticker.
type View struct {
	Engine   *cascade.Engine
	Scroller *cascade.SmoothScroller
	Ticker   *cascade.Ticker

	screen       tcell.Screen
	font         CellFont
	runner       *cascade.ScriptRunner
	quitWhenDone bool
	style        tcell.Style
	status       tcell.Style
	showStatus   bool
	logger       *log.Logger

	cols, rows int
	now        time.Duration
}

// New wires engine and scroller to a new ticker and sizes the engine to
// screen. The screen must already be initialized.
func New(screen tcell.Screen, engine *cascade.Engine, scroller *cascade.SmoothScroller, opts Options) *View {
	v := &View{
		Engine:       engine,
		Scroller:     scroller,
		Ticker:       cascade.NewTicker(),
		screen:       screen,
		font:         opts.Font,
		runner:       opts.Runner,
		quitWhenDone: opts.QuitWhenDone,
		style:        opts.Style,
		status:       tcell.StyleDefault.Reverse(true),
		showStatus:   opts.ShowStatus,
		logger:       opts.Logger,
	}
	if v.font == (CellFont{}) {
		v.font = DefaultCellFont
	}
	if v.logger == nil {
		v.logger = log.New(io.Discard)
	}
	if v.runner != nil {
		v.runner.OnSnapshot = v.snapshot
		v.runner.Attach(v.Ticker, scroller)
	}
	scroller.Attach(v.Ticker)
	engine.Attach(v.Ticker)
	v.Resize()
	return v
}

// Resize refreshes the engine for the screen's current size.
func (v *View) Resize() {
	v.cols, v.rows = v.screen.Size()
	w, h := v.font.Units(v.cols, v.rows)
	v.Engine.Refresh(cascade.Rect{Width: w, Height: h})
	v.Scroller.SetLimit(v.Engine.ScrollLimit())
}

// Frame advances the ticker by dt and redraws.
func (v *View) Frame(dt time.Duration) {
	v.now += dt
	v.Ticker.Tick(v.now)
	v.Draw()
}

// Draw paints every glyph in its current cell and shows the screen.
func (v *View) Draw() {
	v.screen.Clear()

	vw, vh := v.font.Units(v.cols, v.rows)
	viewport := cascade.Rect{Width: vw, Height: vh}
	scrollY := v.Scroller.ScrollY()
	lh := v.font.LineHeight()

	root := v.Engine.Root()
	for i := 0; i < root.NumChildren(); i++ {
		c := root.ChildAt(i)
		if !c.Visible || !cascade.SectionVisible(c, scrollY, viewport) {
			continue
		}
		for j := 0; j < c.NumChildren(); j++ {
			glyph := c.ChildAt(j)
			if !glyph.Visible || glyph.Glyph == "" {
				continue
			}
			col, row := v.font.Cell(cascade.GlyphOrigin(vw, scrollY, lh, c, glyph))
			if col < 0 || col >= v.cols || row < 0 || row >= v.rows {
				continue
			}
			runes := []rune(glyph.Glyph)
			v.screen.SetContent(col, row, runes[0], runes[1:], v.style)
		}
	}

	if v.showStatus && v.rows > 0 {
		v.drawStatus(scrollY)
	}
	v.screen.Show()
}

func (v *View) drawStatus(scrollY float64) {
	line := fmt.Sprintf(" scroll %4.0f / %.0f  q quit  j/k scroll  space page ", scrollY, v.Scroller.Limit)
	row := v.rows - 1
	col := 0
	for _, r := range line {
		if col >= v.cols {
			break
		}
		v.screen.SetContent(col, row, r, nil, v.status)
		col++
	}
	for ; col < v.cols; col++ {
		v.screen.SetContent(col, row, ' ', nil, v.status)
	}
}

// HandleEvent applies one terminal event and reports whether the view
// should keep running.
func (v *View) HandleEvent(ev tcell.Event) bool {
	row := v.font.RowUnit
	page := float64(v.rows) * row * 0.9

	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyDown:
			v.Scroller.ScrollBy(2 * row)
		case tcell.KeyUp:
			v.Scroller.ScrollBy(-2 * row)
		case tcell.KeyPgDn:
			v.Scroller.ScrollBy(page)
		case tcell.KeyPgUp:
			v.Scroller.ScrollBy(-page)
		case tcell.KeyHome:
			v.Scroller.ScrollTo(0, 1.2, nil)
		case tcell.KeyEnd:
			v.Scroller.ScrollTo(v.Scroller.Limit, 1.2, nil)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'j':
				v.Scroller.ScrollBy(2 * row)
			case 'k':
				v.Scroller.ScrollBy(-2 * row)
			case ' ':
				v.Scroller.ScrollBy(page)
			case 'g':
				v.Scroller.ScrollTo(0, 1.2, nil)
			case 'G':
				v.Scroller.ScrollTo(v.Scroller.Limit, 1.2, nil)
			}
		}

	case *tcell.EventMouse:
		buttons := ev.Buttons()
		if buttons&tcell.WheelDown != 0 {
			v.Scroller.ScrollBy(3 * row)
		}
		if buttons&tcell.WheelUp != 0 {
			v.Scroller.ScrollBy(-3 * row)
		}

	case *tcell.EventResize:
		v.Resize()
		v.screen.Sync()
	}
	return true
}

// Run polls events and draws frames until ctx ends, the user quits or, with
// QuitWhenDone, the script finishes.
func (v *View) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = DefaultFrameInterval
	}
	v.screen.EnableMouse()
	defer v.screen.DisableMouse()

	events := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !v.HandleEvent(ev) {
				return nil
			}
		case now := <-ticker.C:
			v.Frame(now.Sub(last))
			last = now
			if v.quitWhenDone && v.runner != nil && v.runner.Done() {
				return nil
			}
		}
	}
}

func (v *View) snapshot(label string) {
	v.logger.Info("snapshot", "label", label, "scroll", v.Scroller.ScrollY())
}
