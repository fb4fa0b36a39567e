// Package cli implements the cascade command-line interface.
//
// # Commands
//
//   - window: open the page in an Ebitengine window
//   - term: play the page in the terminal
//   - dump: print section poses at chosen scroll positions
//
// Every command reads the page from --config (TOML) and, with --markdown,
// takes its titles from a markdown file's headings instead. --verbose
// switches logging to debug level, which includes per-tick engine stats.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/phanxgames/cascade"
	"github.com/phanxgames/cascade/internal/config"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

var (
	version = "dev" // semantic version, set via SetVersion
	commit  string  // git commit SHA
	date    string  // build timestamp
)

// SetVersion sets the version information displayed by --version. It is
// called from main with values injected via ldflags.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath   string
	markdownPath string
	headingLevel int
}

// New creates a CLI that logs to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "cascade",
		Short:        "Cascade plays scroll-synced staggered title reveals",
		Long:         `Cascade lays out a page of titles and animates each one as it scrolls into view: the line slides in from the side while its letters settle one after another.`,
		Version:      version,
		SilenceUsage: true,
	}
	root.SetVersionTemplate(fmt.Sprintf("cascade %s\ncommit: %s\nbuilt: %s\n", version, commit, date))

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "page file (TOML); defaults to the built-in three titles")
	root.PersistentFlags().StringVarP(&c.markdownPath, "markdown", "m", "", "take titles from this markdown file's headings")
	root.PersistentFlags().IntVar(&c.headingLevel, "heading-level", 1, "heading level used with --markdown")

	root.AddCommand(c.windowCommand())
	root.AddCommand(c.termCommand())
	root.AddCommand(c.dumpCommand())
	return root
}

// loadPage reads the page described by the persistent flags.
func (c *CLI) loadPage() (*config.Page, error) {
	page := config.Default()
	if c.configPath != "" {
		p, err := config.Load(c.configPath)
		if err != nil {
			return nil, err
		}
		page = p
		c.Logger.Debug("page loaded", "path", c.configPath, "sections", len(page.Sections))
	}
	if c.markdownPath != "" {
		headings, err := config.LoadMarkdown(c.markdownPath, c.headingLevel)
		if err != nil {
			return nil, err
		}
		page.UseHeadings(headings)
		c.Logger.Debug("headings loaded", "path", c.markdownPath, "sections", len(headings))
	}
	return page, nil
}

// newEngine builds the engine for page measured with font.
func (c *CLI) newEngine(page *config.Page, font cascade.Font, scroll cascade.ScrollSource, logger *log.Logger) (*cascade.Engine, error) {
	sections, err := page.SectionConfigs()
	if err != nil {
		return nil, err
	}
	opts, err := page.Options(font)
	if err != nil {
		return nil, err
	}
	opts.Logger = logger
	return cascade.NewEngine(sections, scroll, opts)
}

// newScroller builds the smooth scroller for page.
func newScroller(page *config.Page) *cascade.SmoothScroller {
	s := cascade.NewSmoothScroller(0)
	s.Lerp = page.Scroll.Lerp
	return s
}

// loadScript reads a scroll script. An empty path means no script.
func loadScript(path string) (*cascade.ScriptRunner, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return cascade.LoadScrollScript(data)
}
