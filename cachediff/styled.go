package cachediff

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var valueStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("3"))

// StyledValue is a terminal-aware formatter. When the output supports colors
// the value is rendered bold and yellow, otherwise it falls back to
// FormatValue.
//
// Select it at generation time with --formatter cachediff.StyledValue.
func StyledValue(v any) string {
	if lipgloss.ColorProfile() == termenv.Ascii {
		return FormatValue(v)
	}

	return valueStyle.Render(fmt.Sprint(v))
}
