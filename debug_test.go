package cascade

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
)

func TestDebugEnabled(t *testing.T) {
	tests := []struct {
		name   string
		logger *log.Logger
		want   bool
	}{
		{"nil logger", nil, false},
		{"info", log.NewWithOptions(io.Discard, log.Options{Level: log.InfoLevel}), false},
		{"debug", log.NewWithOptions(io.Discard, log.Options{Level: log.DebugLevel}), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &Engine{logger: tt.logger}
			if got := e.debugEnabled(); got != tt.want {
				t.Errorf("debugEnabled() = %v, want %v", got, tt.want)
			}
		})
	}
}
