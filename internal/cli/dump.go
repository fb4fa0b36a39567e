package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/phanxgames/cascade"
	"github.com/phanxgames/cascade/internal/config"
)

// maxScriptFrames bounds a headless script run at 60 frames per second.
const maxScriptFrames = 60 * 60 * 10

// dumpOpts holds the command-line flags for the dump command.
type dumpOpts struct {
	at      []float64 // explicit scroll positions
	samples int       // evenly spaced positions when at is empty
	script  string    // run a scroll script headless instead
}

func (c *CLI) dumpCommand() *cobra.Command {
	var opts dumpOpts

	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print section poses at scroll positions",
		Long: `Print each section's progress, container offset and per-character offsets.

Positions come from --at, or are spread evenly over the scroll range with
--samples. With --script the script runs headless at 60 frames per second and
a table is printed at every snapshot step, using smoothed progress.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runDump(cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().Float64SliceVar(&opts.at, "at", nil, "scroll positions to evaluate (comma-separated)")
	cmd.Flags().IntVar(&opts.samples, "samples", 5, "evenly spaced positions when --at is not given")
	cmd.Flags().StringVar(&opts.script, "script", "", "run a JSON scroll script and dump at each snapshot")
	return cmd
}

func (c *CLI) runDump(w io.Writer, opts dumpOpts) error {
	page, err := c.loadPage()
	if err != nil {
		return err
	}
	font := cascade.MonoFont{CellWidth: page.Layout.FontSize / 2, Line: page.Layout.FontSize}

	if opts.script != "" {
		runner, err := loadScript(opts.script)
		if err != nil {
			return err
		}
		return c.dumpScript(w, page, font, runner)
	}

	engine, err := c.newEngine(page, font, nil, c.Logger)
	if err != nil {
		return err
	}
	defer engine.Dispose()

	printSummary(w, page, engine)
	positions := opts.at
	if len(positions) == 0 {
		if opts.samples < 1 {
			return errors.New("dump: --samples must be at least 1")
		}
		positions = samplePositions(engine.ScrollLimit(), opts.samples)
	}

	var poses []cascade.Pose
	var rows [][]string
	for _, y := range positions {
		poses = engine.Evaluate(y, poses)
		for i := range poses {
			rows = append(rows, poseRow(formatFloat(y), engine.Section(i), &poses[i]))
		}
	}
	fmt.Fprintln(w, renderPoses("scroll", rows))
	return nil
}

// dumpScript plays runner against a headless scroller and prints the
// engine's live poses after each snapshot frame.
func (c *CLI) dumpScript(w io.Writer, page *config.Page, font cascade.Font, runner *cascade.ScriptRunner) error {
	scroller := newScroller(page)
	engine, err := c.newEngine(page, font, scroller, c.Logger)
	if err != nil {
		return err
	}
	defer engine.Dispose()
	scroller.SetLimit(engine.ScrollLimit())

	var pending []string
	runner.OnSnapshot = func(label string) { pending = append(pending, label) }

	ticker := cascade.NewTicker()
	runner.Attach(ticker, scroller)
	scroller.Attach(ticker)
	engine.Attach(ticker)

	printSummary(w, page, engine)
	var rows [][]string
	for frame := 0; !runner.Done(); frame++ {
		if frame >= maxScriptFrames {
			return fmt.Errorf("dump: script still running after %d frames", maxScriptFrames)
		}
		ticker.Advance(time.Second / 60)
		for _, label := range pending {
			for i := 0; i < engine.NumSections(); i++ {
				rows = append(rows, poseRow(label, engine.Section(i), engine.Pose(i)))
			}
		}
		pending = pending[:0]
	}
	c.Logger.Debug("script finished", "frames", ticker.Frame(), "scroll", scroller.ScrollY())
	fmt.Fprintln(w, renderPoses("snapshot", rows))
	return nil
}

func printSummary(w io.Writer, page *config.Page, engine *cascade.Engine) {
	vp := engine.Viewport()
	printTitle(w, page.Title)
	printKeyValue(w, "viewport", fmt.Sprintf("%sx%s", formatFloat(vp.Width), formatFloat(vp.Height)))
	printKeyValue(w, "content", formatFloat(engine.ContentHeight()))
	printKeyValue(w, "scroll limit", formatFloat(engine.ScrollLimit()))
	printKeyValue(w, "sections", engine.NumSections())
	fmt.Fprintln(w)
}

// samplePositions spreads n positions evenly over [0, limit].
func samplePositions(limit float64, n int) []float64 {
	if n <= 1 {
		return []float64{0}
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = limit * float64(i) / float64(n-1)
	}
	return out
}

func poseRow(at string, t *cascade.Trigger, p *cascade.Pose) []string {
	ys := make([]string, len(p.CharY))
	for i, y := range p.CharY {
		ys[i] = strconv.FormatFloat(y, 'f', 0, 64)
	}
	return []string{
		at,
		strconv.Itoa(t.Index),
		t.Name,
		t.Role.String(),
		strconv.FormatFloat(p.Progress, 'f', 3, 64),
		strconv.FormatFloat(p.ContainerX, 'f', 1, 64),
		strings.Join(ys, " "),
	}
}

// renderPoses formats rows as a table. Fully revealed rows are highlighted.
func renderPoses(first string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers(first, "#", "section", "role", "progress", "x %", "char y").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return styleHeader
			}
			if row >= 0 && row < len(rows) && rows[row][4] == "1.000" {
				return styleSettled
			}
			return styleCell
		})
	return t.Render()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
