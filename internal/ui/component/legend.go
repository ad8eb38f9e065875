package component

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/rovshanmuradov/esports-earnings/internal/chart"
	"github.com/rovshanmuradov/esports-earnings/internal/earnings"
	"github.com/rovshanmuradov/esports-earnings/internal/summary"
	"github.com/rovshanmuradov/esports-earnings/internal/ui/style"
)

// Legend lists the filtered entries next to the chart, one per slice, with
// the hovered entry emphasised.
type Legend struct {
	entries []earnings.Entry
	total   float64
	hover   chart.Hover
	width   int
	height  int

	textStyle   lipgloss.Style
	activeStyle lipgloss.Style
	mutedStyle  lipgloss.Style
}

// NewLegend creates a new legend component
func NewLegend() *Legend {
	palette := style.DefaultPalette()
	return &Legend{
		hover:  chart.NewHover(),
		width:  40,
		height: 20,

		textStyle: lipgloss.NewStyle().
			Foreground(palette.TextSecondary),
		activeStyle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Bold(true),
		mutedStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted).
			Italic(true),
	}
}

// SetEntries sets the entries to list
func (l *Legend) SetEntries(entries []earnings.Entry, total float64) *Legend {
	l.entries = entries
	l.total = total
	return l
}

// SetHover sets the highlighted entry
func (l *Legend) SetHover(h chart.Hover) *Legend {
	l.hover = h
	return l
}

// SetSize sets the legend dimensions
func (l *Legend) SetSize(width, height int) *Legend {
	l.width = width
	l.height = height
	return l
}

// Lines returns the plain legend lines, without styling.
func (l *Legend) Lines() []string {
	lines := make([]string, len(l.entries))
	for i, e := range l.entries {
		lines[i] = summary.LegendLine(e, l.total)
	}
	return lines
}

// View renders the legend
func (l *Legend) View() string {
	if len(l.entries) == 0 {
		return l.mutedStyle.Render("No data")
	}

	visible := len(l.entries)
	if l.height > 0 && visible > l.height {
		// keep the last row for the overflow note
		visible = max(l.height-1, 0)
	}

	textWidth := max(l.width-2, 1)
	rows := make([]string, 0, visible+1)
	for i, line := range l.Lines()[:visible] {
		hovered := l.hover.Is(i)
		swatch := lipgloss.NewStyle().
			Foreground(style.SliceColor(i, hovered)).
			Render("■")

		text := ansi.Truncate(line, textWidth, "…")
		if hovered {
			text = l.activeStyle.Render(text)
		} else {
			text = l.textStyle.Render(text)
		}
		rows = append(rows, swatch+" "+text)
	}

	if hidden := len(l.entries) - visible; hidden > 0 {
		rows = append(rows, l.mutedStyle.Render(fmt.Sprintf("… %d more", hidden)))
	}
	return strings.Join(rows, "\n")
}
