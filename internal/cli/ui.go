package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorCyan  = lipgloss.Color("36")  // Teal - headings
	colorGreen = lipgloss.Color("35")  // Green - settled values
	colorWhite = lipgloss.Color("255") // Bright white - values
	colorGray  = lipgloss.Color("245") // Gray - secondary text
	colorDim   = lipgloss.Color("240") // Dim gray - borders
)

var (
	styleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleHeader  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Padding(0, 1)
	styleCell    = lipgloss.NewStyle().Foreground(colorWhite).Padding(0, 1)
	styleSettled = lipgloss.NewStyle().Foreground(colorGreen).Padding(0, 1)
	styleBorder  = lipgloss.NewStyle().Foreground(colorDim)
	styleKey     = lipgloss.NewStyle().Foreground(colorGray)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
)

func printTitle(w io.Writer, title string) {
	fmt.Fprintln(w, styleTitle.Render(title))
}

func printKeyValue(w io.Writer, key string, value any) {
	fmt.Fprintf(w, "  %s %s\n", styleKey.Render(key+":"), styleValue.Render(fmt.Sprint(value)))
}
