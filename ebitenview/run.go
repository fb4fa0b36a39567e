package ebitenview

import (
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig holds window settings for Run.
type RunConfig struct {
	Title         string
	Width, Height int
	// Fixed disables window resizing.
	Fixed bool
}

// Run opens a window and blocks until the game ends.
func Run(g *Game, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = g.width, g.height
	}
	if cfg.Title == "" {
		cfg.Title = "cascade"
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	if !cfg.Fixed {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("ebitenview: %w", err)
	}
	return nil
}
