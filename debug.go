package cascade

import (
	"time"

	"github.com/charmbracelet/log"
)

// tickStats holds per-tick timing and work counts.
// Only populated when the engine logger is at debug level.
type tickStats struct {
	scrollY  float64
	dt       float64
	sections int
	chars    int
	elapsed  time.Duration
}

// debugEnabled reports whether per-tick stats should be collected.
func (e *Engine) debugEnabled() bool {
	return e.logger != nil && e.logger.GetLevel() <= log.DebugLevel
}

// debugLog writes one tick's stats.
func (e *Engine) debugLog(stats tickStats) {
	e.logger.Debug("tick",
		"scroll", stats.scrollY,
		"dt", stats.dt,
		"sections", stats.sections,
		"chars", stats.chars,
		"elapsed", stats.elapsed,
	)
}
