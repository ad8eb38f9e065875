package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines keyboard shortcuts for the application
type KeyMap struct {
	// Global navigation
	Quit key.Binding
	Back key.Binding

	// Navigation
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Enter key.Binding

	// Dashboard
	Open          key.Binding
	ToggleMode    key.Binding
	Threshold     key.Binding
	ToggleSummary key.Binding
	Logs          key.Binding

	// Export
	ExportAll  key.Binding
	ExportCSV  key.Binding
	ExportPNG  key.Binding
	ExportJPEG key.Binding
	ExportHTML key.Binding

	// Logs
	FilterError key.Binding
	FilterWarn  key.Binding
	FilterInfo  key.Binding
	FilterAll   key.Binding
	Tail        key.Binding
}

// DefaultKeyMap returns the default key bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		// Global navigation
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),

		// Navigation
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "less"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "more"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "apply"),
		),

		// Dashboard
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open csv"),
		),
		ToggleMode: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "top n/threshold"),
		),
		Threshold: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "type threshold"),
		),
		ToggleSummary: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "summary/legend"),
		),
		Logs: key.NewBinding(
			key.WithKeys("L"),
			key.WithHelp("L", "logs"),
		),

		// Export
		ExportAll: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export all"),
		),
		ExportCSV: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "csv"),
		),
		ExportPNG: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "png"),
		),
		ExportJPEG: key.NewBinding(
			key.WithKeys("j"),
			key.WithHelp("j", "jpeg"),
		),
		ExportHTML: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "html"),
		),

		// Logs
		FilterError: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "errors"),
		),
		FilterWarn: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "warnings"),
		),
		FilterInfo: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "info"),
		),
		FilterAll: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "all"),
		),
		Tail: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "tail"),
		),
	}
}

// ShortHelp returns key help text for the current context
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Back, k.Quit}
}

// ContextualHelp returns help text based on the current route
func (k KeyMap) ContextualHelp(route Route) []key.Binding {
	switch route {
	case RouteDashboard:
		return []key.Binding{
			k.Open, k.ToggleMode, k.Left, k.Right, k.Threshold, k.ToggleSummary,
			k.ExportAll, k.ExportCSV, k.ExportPNG, k.ExportJPEG, k.ExportHTML,
			k.Logs, k.Quit,
		}
	case RouteLogs:
		return []key.Binding{
			k.Up, k.Down, k.FilterError, k.FilterWarn, k.FilterInfo, k.FilterAll,
			k.Tail, k.Back, k.Quit,
		}
	default:
		return k.ShortHelp()
	}
}

// InputHelp returns the bindings shown while a text input has focus.
func (k KeyMap) InputHelp() []key.Binding {
	return []key.Binding{k.Enter, k.Back}
}
