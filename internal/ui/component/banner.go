package component

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	figure "github.com/common-nighthawk/go-figure"
	"github.com/rovshanmuradov/esports-earnings/internal/ui/style"
)

// Banner renders text as ASCII art for the empty dashboard. Text that does
// not fit in width falls back to a plain title.
func Banner(text string, width int) string {
	palette := style.DefaultPalette()
	titleStyle := lipgloss.NewStyle().Foreground(palette.Primary).Bold(true)

	fig := figure.NewFigure(text, "small", false)
	lines := fig.Slicify()
	for _, line := range lines {
		if lipgloss.Width(line) > width {
			return titleStyle.Render(text)
		}
	}
	return titleStyle.Render(strings.Join(lines, "\n"))
}
