package style

import (
	"github.com/charmbracelet/lipgloss"
)

var palette = DefaultPalette()

// HeaderStyle renders the dashboard title.
var HeaderStyle = lipgloss.NewStyle().
	Background(palette.Background).
	Foreground(palette.Primary).
	Bold(true).
	Padding(0, 2)

// Layout styles
var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(palette.TextMuted).
			Padding(0, 1)

	ActivePanelStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(palette.Primary).
				Padding(0, 1)
)

// Status styles
var (
	SuccessStyle = lipgloss.NewStyle().
			Foreground(palette.Success).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(palette.Error).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(palette.Info)

	MutedStyle = lipgloss.NewStyle().
			Foreground(palette.TextMuted)
)

// Slider styles
var (
	SliderFilledStyle = lipgloss.NewStyle().
				Foreground(palette.Primary)

	SliderEmptyStyle = lipgloss.NewStyle().
				Foreground(palette.BackgroundAlt)
)

// LogStyles holds per-level styles for the logs screen.
type LogStyles struct {
	Timestamp lipgloss.Style
	Component lipgloss.Style
	Error     lipgloss.Style
	Warning   lipgloss.Style
	Info      lipgloss.Style
	Debug     lipgloss.Style
}

// NewLogStyles creates log styles from palette.
func NewLogStyles(p Palette) LogStyles {
	return LogStyles{
		Timestamp: lipgloss.NewStyle().Foreground(p.TextMuted),
		Component: lipgloss.NewStyle().Foreground(p.Secondary).Bold(true),
		Error:     lipgloss.NewStyle().Foreground(p.Error).Bold(true),
		Warning:   lipgloss.NewStyle().Foreground(p.Warning).Bold(true),
		Info:      lipgloss.NewStyle().Foreground(p.Text),
		Debug:     lipgloss.NewStyle().Foreground(p.TextMuted),
	}
}

// Level returns the style for a zap level name.
func (s LogStyles) Level(level string) lipgloss.Style {
	switch level {
	case "error", "dpanic", "panic", "fatal":
		return s.Error
	case "warn":
		return s.Warning
	case "debug":
		return s.Debug
	default:
		return s.Info
	}
}

// AdaptiveJoinHorizontal stacks blocks vertically on narrow screens.
func AdaptiveJoinHorizontal(width int, blocks ...string) string {
	if width < 80 {
		return lipgloss.JoinVertical(lipgloss.Left, blocks...)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}
