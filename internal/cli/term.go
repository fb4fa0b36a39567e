package cli

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/phanxgames/cascade/termview"
)

// termOpts holds the command-line flags for the term command.
type termOpts struct {
	script       string // scroll script to play
	quitWhenDone bool   // exit once the script finishes
	status       bool   // draw the status line
}

func (c *CLI) termCommand() *cobra.Command {
	var opts termOpts

	cmd := &cobra.Command{
		Use:   "term",
		Short: "Play the page in the terminal",
		Long:  `Play the page in the terminal. Scroll with the mouse wheel, j/k or the arrows, space or page keys; g and G glide to either end; q, Esc or Ctrl-C quits.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTerm(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.script, "script", "", "play a JSON scroll script")
	cmd.Flags().BoolVar(&opts.quitWhenDone, "quit-when-done", false, "exit when the script finishes")
	cmd.Flags().BoolVar(&opts.status, "status", true, "show the status line")
	return cmd
}

func (c *CLI) runTerm(ctx context.Context, opts termOpts) error {
	page, err := c.loadPage()
	if err != nil {
		return err
	}
	runner, err := loadScript(opts.script)
	if err != nil {
		return err
	}

	font := termview.DefaultCellFont
	scroller := newScroller(page)
	// The screen owns the terminal while running; engine logs would tear it.
	engine, err := c.newEngine(page, font, scroller, nil)
	if err != nil {
		return err
	}
	defer engine.Dispose()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	defer screen.Fini()

	view := termview.New(screen, engine, scroller, termview.Options{
		Font:         font,
		Runner:       runner,
		QuitWhenDone: opts.quitWhenDone,
		ShowStatus:   opts.status,
	})
	return view.Run(ctx, termview.DefaultFrameInterval)
}
