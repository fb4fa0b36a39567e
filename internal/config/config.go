// Package config loads cascade pages from TOML files and markdown documents.
package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/phanxgames/cascade"
)

// ErrUnknownKeys is returned when a page file contains keys that map to no
// setting.
var ErrUnknownKeys = errors.New("config: unknown keys")

// Page is the on-disk description of one cascade page.
type Page struct {
	Title    string   `toml:"title"`
	RoleRule string   `toml:"role_rule"`
	Scrub    *float64 `toml:"scrub"`

	Viewport Viewport  `toml:"viewport"`
	Layout   Layout    `toml:"layout"`
	Stagger  Stagger   `toml:"stagger"`
	Scroll   Scroll    `toml:"scroll"`
	Sections []Section `toml:"section"`
}

// Viewport is the initial window or capture size.
type Viewport struct {
	Width  float64 `toml:"width"`
	Height float64 `toml:"height"`
}

// Layout sizes the page blocks. Zero heights mean one viewport.
type Layout struct {
	IntroHeight   float64 `toml:"intro_height"`
	SectionHeight float64 `toml:"section_height"`
	Gap           float64 `toml:"gap"`
	OutroHeight   float64 `toml:"outro_height"`
	FontSize      float64 `toml:"font_size"`
}

// Stagger tunes the character reveal.
type Stagger struct {
	StartDelay  *float64 `toml:"start_delay"`
	MaxSpread   *float64 `toml:"max_spread"`
	SpreadRatio *float64 `toml:"spread_ratio"`
	Ease        string   `toml:"ease"`
	Amplitude   float64  `toml:"amplitude"`
}

// Scroll tunes the smooth scroller.
type Scroll struct {
	Lerp      float64 `toml:"lerp"`
	WheelStep float64 `toml:"wheel_step"`
}

// Section is one heading.
type Section struct {
	Text  string   `toml:"text"`
	Name  string   `toml:"name"`
	Start string   `toml:"start"`
	End   string   `toml:"end"`
	Scrub *float64 `toml:"scrub"`
	Role  string   `toml:"role"`
}

// Default sizes.
const (
	DefaultWidth    = 1280
	DefaultHeight   = 800
	DefaultFontSize = 96
)

// Default returns the built-in three-title page.
func Default() *Page {
	p := &Page{
		Title: "cascade",
		Sections: []Section{
			{Text: "Subtle Phase"},
			{Text: "Hidden Flow"},
			{Text: "Calm Glide"},
		},
	}
	p.applyDefaults()
	return p
}

// Parse decodes a TOML page.
func Parse(data []byte) (*Page, error) {
	var p Page
	md, err := toml.Decode(string(data), &p)
	if err != nil {
		return nil, fmt.Errorf("config: parse: %w", err)
	}
	if err := checkUndecoded(md); err != nil {
		return nil, err
	}
	p.applyDefaults()
	return &p, nil
}

// Load decodes the TOML page at path.
func Load(path string) (*Page, error) {
	var p Page
	md, err := toml.DecodeFile(path, &p)
	if err != nil {
		return nil, fmt.Errorf("config: load %s: %w", path, err)
	}
	if err := checkUndecoded(md); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	p.applyDefaults()
	return &p, nil
}

func checkUndecoded(md toml.MetaData) error {
	keys := md.Undecoded()
	if len(keys) == 0 {
		return nil
	}
	names := make([]string, len(keys))
	for i, k := range keys {
		names[i] = k.String()
	}
	sort.Strings(names)
	return fmt.Errorf("%w: %s", ErrUnknownKeys, strings.Join(names, ", "))
}

func (p *Page) applyDefaults() {
	if p.Title == "" {
		p.Title = "cascade"
	}
	if p.Viewport.Width <= 0 {
		p.Viewport.Width = DefaultWidth
	}
	if p.Viewport.Height <= 0 {
		p.Viewport.Height = DefaultHeight
	}
	if p.Layout.FontSize <= 0 {
		p.Layout.FontSize = DefaultFontSize
	}
	if p.Scroll.Lerp <= 0 {
		p.Scroll.Lerp = cascade.DefaultLerp
	}
}

// UseHeadings replaces the page sections with one plain section per
// heading, e.g. from HeadingsFromMarkdown.
func (p *Page) UseHeadings(headings []string) {
	p.Sections = make([]Section, len(headings))
	for i, h := range headings {
		p.Sections[i] = Section{Text: h}
	}
}

// SectionConfigs converts the page sections for cascade.NewEngine.
func (p *Page) SectionConfigs() ([]cascade.SectionConfig, error) {
	out := make([]cascade.SectionConfig, len(p.Sections))
	for i, s := range p.Sections {
		out[i] = cascade.SectionConfig{
			Text:  s.Text,
			Name:  s.Name,
			Start: s.Start,
			End:   s.End,
			Scrub: s.Scrub,
		}
		if s.Role != "" {
			r, err := cascade.ParseRole(s.Role)
			if err != nil {
				return nil, fmt.Errorf("config: section %d: %w", i, err)
			}
			out[i].Role = cascade.RoleOf(r)
		}
	}
	return out, nil
}

// Options converts the page settings for cascade.NewEngine. font measures
// the layout; nil keeps the engine default.
func (p *Page) Options(font cascade.Font) (cascade.Options, error) {
	opts := cascade.Options{
		Viewport: cascade.Rect{Width: p.Viewport.Width, Height: p.Viewport.Height},
		Layout: cascade.Layout{
			IntroHeight:   p.Layout.IntroHeight,
			SectionHeight: p.Layout.SectionHeight,
			Gap:           p.Layout.Gap,
			OutroHeight:   p.Layout.OutroHeight,
			Font:          font,
		},
		Amplitude: p.Stagger.Amplitude,
		Scrub:     p.Scrub,
	}

	timing := cascade.DefaultStaggerTiming
	if v := p.Stagger.StartDelay; v != nil {
		timing.StartDelay = *v
	}
	if v := p.Stagger.MaxSpread; v != nil {
		timing.MaxSpread = *v
	}
	if v := p.Stagger.SpreadRatio; v != nil {
		timing.SpreadRatio = *v
	}
	if err := timing.Validate(); err != nil {
		return opts, fmt.Errorf("config: [stagger]: %w", err)
	}
	fn, err := EaseByName(p.Stagger.Ease)
	if err != nil {
		return opts, err
	}
	timing.Ease = fn
	opts.Stagger = &timing

	rule, err := RoleRuleByName(p.RoleRule)
	if err != nil {
		return opts, err
	}
	opts.RoleRule = rule
	return opts, nil
}

// RoleRuleByName returns the named role rule. Empty means the default.
func RoleRuleByName(name string) (cascade.RoleRule, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default":
		return cascade.DefaultRoleRule, nil
	case "alternating":
		return cascade.AlternatingRoleRule, nil
	}
	return nil, fmt.Errorf("config: unknown role_rule %q", name)
}
