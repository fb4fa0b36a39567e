// Package ebitenview paints a cascade page in an Ebitengine window.
package ebitenview

import (
	"fmt"
	"image/color"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/phanxgames/cascade"
)

// DefaultWheelStep is the scroll distance of one wheel notch.
const DefaultWheelStep = 120.0

// Options configures a Game.
type Options struct {
	// Font draws the glyphs. It should be the font the engine's Layout
	// measured with. Nil loads Go Regular at 64.
	Font *TTFFont
	// Runner, when set, plays a scroll script before input is read.
	Runner *cascade.ScriptRunner
	// QuitWhenDone ends the game once Runner has finished and its last
	// screenshot is written.
	QuitWhenDone bool
	// Background and Foreground default to near-black and off-white.
	Background color.Color
	Foreground color.Color
	// ShowFPS overlays frame rate and scroll position.
	ShowFPS bool
	// ScreenshotDir receives screenshot PNGs. Empty means the working
	// directory.
	ScreenshotDir string
	// WheelStep is the scroll distance per wheel notch. Zero means
	// DefaultWheelStep.
	WheelStep float64
	// Logger receives screenshot results. Nil discards them.
	Logger *log.Logger
}

// Game implements ebiten.Game for one cascade page. Every Update advances
// the shared ticker by one tick; the script runner, the scroller and the
// engine run on it in that order.
type Game struct {
	Engine   *cascade.Engine
	Scroller *cascade.SmoothScroller
	Ticker   *cascade.Ticker

	ShowFPS       bool
	ScreenshotDir string

	font         *TTFFont
	runner       *cascade.ScriptRunner
	quitWhenDone bool
	bg, fg       color.Color
	wheelStep    float64
	logger       *log.Logger

	width, height   int
	now             time.Duration
	op              text.DrawOptions
	screenshotQueue []string
}

// NewGame wires engine and scroller to a new ticker.
func NewGame(engine *cascade.Engine, scroller *cascade.SmoothScroller, opts Options) (*Game, error) {
	g := &Game{
		Engine:        engine,
		Scroller:      scroller,
		Ticker:        cascade.NewTicker(),
		ShowFPS:       opts.ShowFPS,
		ScreenshotDir: opts.ScreenshotDir,
		font:          opts.Font,
		runner:        opts.Runner,
		quitWhenDone:  opts.QuitWhenDone,
		bg:            opts.Background,
		fg:            opts.Foreground,
		wheelStep:     opts.WheelStep,
		logger:        opts.Logger,
	}
	if g.font == nil {
		f, err := DefaultFont(64)
		if err != nil {
			return nil, err
		}
		g.font = f
	}
	if g.bg == nil {
		g.bg = color.RGBA{R: 0x12, G: 0x12, B: 0x14, A: 0xff}
	}
	if g.fg == nil {
		g.fg = color.RGBA{R: 0xf2, G: 0xee, B: 0xe6, A: 0xff}
	}
	if g.wheelStep == 0 {
		g.wheelStep = DefaultWheelStep
	}
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}

	if g.runner != nil {
		g.runner.OnSnapshot = g.Screenshot
		g.runner.Attach(g.Ticker, scroller)
	}
	scroller.Attach(g.Ticker)
	engine.Attach(g.Ticker)

	vp := engine.Viewport()
	g.width, g.height = int(vp.Width), int(vp.Height)
	scroller.SetLimit(engine.ScrollLimit())
	return g, nil
}

// Update reads input and advances the ticker by one tick.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	g.handleInput()

	g.now += time.Second / time.Duration(ebiten.TPS())
	g.Ticker.Tick(g.now)

	if g.quitWhenDone && g.runner != nil && g.runner.Done() && len(g.screenshotQueue) == 0 {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) handleInput() {
	if _, wy := ebiten.Wheel(); wy != 0 {
		g.Scroller.ScrollBy(-wy * g.wheelStep)
	}

	page := pageStep(float64(g.height))
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeySpace), inpututil.IsKeyJustPressed(ebiten.KeyPageDown):
		g.Scroller.ScrollBy(page)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		g.Scroller.ScrollBy(-page)
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		g.Scroller.ScrollTo(0, 1.2, nil)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		g.Scroller.ScrollTo(g.Scroller.Limit, 1.2, nil)
	case inpututil.IsKeyJustPressed(ebiten.KeyF12):
		g.Screenshot("manual")
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		g.Scroller.ScrollBy(g.wheelStep / 6)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		g.Scroller.ScrollBy(-g.wheelStep / 6)
	}
}

// Draw paints every visible glyph at its current offset.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.bg)

	vw, vh := float64(g.width), float64(g.height)
	scrollY := g.Scroller.ScrollY()
	lh := g.font.LineHeight()

	root := g.Engine.Root()
	for i := 0; i < root.NumChildren(); i++ {
		c := root.ChildAt(i)
		if !c.Visible || !cascade.SectionVisible(c, scrollY, cascade.Rect{Width: vw, Height: vh}) {
			continue
		}
		for j := 0; j < c.NumChildren(); j++ {
			glyph := c.ChildAt(j)
			if !glyph.Visible {
				continue
			}
			x, y := cascade.GlyphOrigin(vw, scrollY, lh, c, glyph)
			g.op.GeoM.Reset()
			g.op.GeoM.Translate(x, y)
			g.op.ColorScale.Reset()
			g.op.ColorScale.ScaleWithColor(g.fg)
			text.Draw(screen, glyph.Glyph, g.font.Face(), &g.op)
		}
	}

	if g.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nscroll: %.0f / %.0f",
			ebiten.ActualFPS(), ebiten.ActualTPS(), scrollY, g.Scroller.Limit))
	}
	g.flushScreenshots(screen)
}

// Layout refreshes the engine when the window size changes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func (g *Game) resize(w, h int) {
	if w == g.width && h == g.height {
		return
	}
	g.width, g.height = w, h
	g.Engine.Refresh(cascade.Rect{Width: float64(w), Height: float64(h)})
	g.Scroller.SetLimit(g.Engine.ScrollLimit())
}

// pageStep is the distance of one page key.
func pageStep(viewportH float64) float64 {
	return viewportH * 0.9
}
