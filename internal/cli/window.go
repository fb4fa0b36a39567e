package cli

import (
	"github.com/spf13/cobra"

	"github.com/phanxgames/cascade/ebitenview"
)

// windowOpts holds the command-line flags for the window command.
type windowOpts struct {
	script        string // scroll script to play
	quitWhenDone  bool   // close once the script finishes
	showFPS       bool   // overlay frame rate
	screenshotDir string // where snapshot PNGs go
	fixed         bool   // disable window resizing
}

func (c *CLI) windowCommand() *cobra.Command {
	var opts windowOpts

	cmd := &cobra.Command{
		Use:   "window",
		Short: "Open the page in a window",
		Long:  `Open the page in a window. Scroll with the wheel, arrows, space or page keys; Home and End glide to either end; F12 saves a screenshot; Esc or q quits.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWindow(opts)
		},
	}

	cmd.Flags().StringVar(&opts.script, "script", "", "play a JSON scroll script")
	cmd.Flags().BoolVar(&opts.quitWhenDone, "quit-when-done", false, "close the window when the script finishes")
	cmd.Flags().BoolVar(&opts.showFPS, "fps", false, "show frame rate and scroll position")
	cmd.Flags().StringVar(&opts.screenshotDir, "screenshots", "screenshots", "directory for screenshots")
	cmd.Flags().BoolVar(&opts.fixed, "fixed", false, "disable window resizing")
	return cmd
}

func (c *CLI) runWindow(opts windowOpts) error {
	page, err := c.loadPage()
	if err != nil {
		return err
	}
	runner, err := loadScript(opts.script)
	if err != nil {
		return err
	}

	font, err := ebitenview.DefaultFont(page.Layout.FontSize)
	if err != nil {
		return err
	}
	scroller := newScroller(page)
	engine, err := c.newEngine(page, font, scroller, c.Logger)
	if err != nil {
		return err
	}
	defer engine.Dispose()

	game, err := ebitenview.NewGame(engine, scroller, ebitenview.Options{
		Font:          font,
		Runner:        runner,
		QuitWhenDone:  opts.quitWhenDone,
		ShowFPS:       opts.showFPS,
		ScreenshotDir: opts.screenshotDir,
		WheelStep:     page.Scroll.WheelStep,
		Logger:        c.Logger,
	})
	if err != nil {
		return err
	}

	c.Logger.Info("opening window", "title", page.Title, "sections", engine.NumSections())
	return ebitenview.Run(game, ebitenview.RunConfig{
		Title:  page.Title,
		Width:  int(page.Viewport.Width),
		Height: int(page.Viewport.Height),
		Fixed:  opts.fixed,
	})
}
