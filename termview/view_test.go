package termview

import (
	"bytes"
	"context"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/cascade"
)

const frame = time.Second / 60

func newSimView(t *testing.T, opts Options) (*View, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(80, 24)

	if opts.Font == (CellFont{}) {
		opts.Font = DefaultCellFont
	}
	scroller := cascade.NewSmoothScroller(0)
	scroller.Lerp = 1
	engine, err := cascade.NewEngine([]cascade.SectionConfig{
		{Text: "Subtle Phase"},
		{Text: "Hidden Flow"},
		{Text: "Calm Glide"},
	}, scroller, cascade.Options{
		Scrub:  cascade.Seconds(0),
		Layout: cascade.Layout{Font: opts.Font},
	})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return New(screen, engine, scroller, opts), screen
}

func rowText(screen tcell.SimulationScreen, row, from, to int) string {
	var b strings.Builder
	for col := from; col < to; col++ {
		r, _, _, _ := screen.GetContent(col, row)
		b.WriteRune(r)
	}
	return b.String()
}

func TestCellFont(t *testing.T) {
	f := CellFont{ColUnit: 16, RowUnit: 32}
	if f.Advance("a") != 16 || f.Advance("世") != 32 {
		t.Errorf("Advance = %v/%v, want 16/32", f.Advance("a"), f.Advance("世"))
	}
	if f.LineHeight() != 32 {
		t.Errorf("LineHeight = %v, want 32", f.LineHeight())
	}
	if col, row := f.Cell(40, 47); col != 3 || row != 1 {
		t.Errorf("Cell(40, 47) = (%d, %d), want (3, 1)", col, row)
	}
	if w, h := f.Units(80, 24); w != 1280 || h != 768 {
		t.Errorf("Units(80, 24) = (%v, %v), want (1280, 768)", w, h)
	}
}

func TestNewSizesEngine(t *testing.T) {
	v, _ := newSimView(t, Options{})
	if vp := v.Engine.Viewport(); vp.Width != 1280 || vp.Height != 768 {
		t.Errorf("viewport = %+v, want 1280x768", vp)
	}
	if v.Scroller.Limit != v.Engine.ScrollLimit() {
		t.Errorf("limit = %v, want %v", v.Scroller.Limit, v.Engine.ScrollLimit())
	}
	if v.Ticker.Len() != 2 {
		t.Errorf("handlers = %d, want 2", v.Ticker.Len())
	}
}

func TestDrawSettledTitle(t *testing.T) {
	v, screen := newSimView(t, Options{})

	// The end edge of the first section: every glyph at rest.
	_, end := v.Engine.Section(0).Bounds()
	v.Scroller.Jump(end)
	v.Frame(frame)

	// "Subtle Phase" is 12 cells wide, centered in 80 columns, in the
	// middle row of its section.
	if got := rowText(screen, 6, 34, 46); got != "Subtle Phase" {
		t.Errorf("row 6 = %q, want %q", got, "Subtle Phase")
	}
}

func TestDrawEnteringTitleIsScattered(t *testing.T) {
	v, screen := newSimView(t, Options{})

	start, end := v.Engine.Section(0).Bounds()
	v.Scroller.Jump(start + (end-start)*0.3)
	v.Frame(frame)

	if got := rowText(screen, 6, 34, 46); got == "Subtle Phase" {
		t.Error("title should not be assembled at 30% progress")
	}
}

func TestDrawStatusLine(t *testing.T) {
	v, screen := newSimView(t, Options{ShowStatus: true})
	v.Frame(frame)
	if got := rowText(screen, 23, 0, 7); got != " scroll" {
		t.Errorf("status line = %q, want prefix %q", got, " scroll")
	}
	_, _, style, _ := screen.GetContent(79, 23)
	if _, _, attrs := style.Decompose(); attrs&tcell.AttrReverse == 0 {
		t.Error("status line should be reversed")
	}
}

func TestHandleEventKeys(t *testing.T) {
	v, _ := newSimView(t, Options{})

	tests := []struct {
		name string
		ev   tcell.Event
		want float64
	}{
		{"down", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), 64},
		{"j", tcell.NewEventKey(tcell.KeyRune, 'j', tcell.ModNone), 128},
		{"up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), 64},
		{"page", tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone), 64 + 24*32*0.9},
		{"wheel up", tcell.NewEventMouse(0, 0, tcell.WheelUp, tcell.ModNone), 64 + 24*32*0.9 - 96},
	}
	for _, tt := range tests {
		if !v.HandleEvent(tt.ev) {
			t.Fatalf("%s: view quit", tt.name)
		}
		if got := v.Scroller.Target(); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("%s: target = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestHandleEventQuit(t *testing.T) {
	v, _ := newSimView(t, Options{})
	quits := []tcell.Event{
		tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl),
		tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone),
	}
	for _, ev := range quits {
		if v.HandleEvent(ev) {
			t.Errorf("%v should quit", ev)
		}
	}
}

func TestHandleEventResize(t *testing.T) {
	v, screen := newSimView(t, Options{})
	screen.SetSize(40, 12)
	v.HandleEvent(tcell.NewEventResize(40, 12))
	if vp := v.Engine.Viewport(); vp.Width != 640 || vp.Height != 384 {
		t.Errorf("viewport = %+v, want 640x384", vp)
	}
}

func TestRunStopsOnContext(t *testing.T) {
	v, _ := newSimView(t, Options{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := v.Run(ctx, time.Millisecond); err != nil {
		t.Errorf("Run = %v", err)
	}
}

func TestRunQuitsWhenScriptDone(t *testing.T) {
	runner, err := cascade.LoadScrollScript([]byte(`{"steps": [
		{"action": "jump", "y": 500},
		{"action": "snapshot", "label": "half"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.InfoLevel})
	v, _ := newSimView(t, Options{Runner: runner, QuitWhenDone: true, Logger: logger})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := v.Run(ctx, time.Millisecond); err != nil {
		t.Fatalf("Run = %v", err)
	}
	if !runner.Done() {
		t.Error("Run returned before the script finished")
	}
	if v.Scroller.ScrollY() != 500 {
		t.Errorf("scroll = %v, want 500", v.Scroller.ScrollY())
	}
	if !strings.Contains(buf.String(), "half") {
		t.Errorf("snapshot not logged: %q", buf.String())
	}
}
