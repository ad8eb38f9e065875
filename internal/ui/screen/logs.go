package screen

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/rovshanmuradov/esports-earnings/internal/logger"
	"github.com/rovshanmuradov/esports-earnings/internal/ui"
	"github.com/rovshanmuradov/esports-earnings/internal/ui/component"
	"github.com/rovshanmuradov/esports-earnings/internal/ui/router"
	"github.com/rovshanmuradov/esports-earnings/internal/ui/style"
)

// LogLevel is a minimum level filter for the logs screen.
type LogLevel string

const (
	LogLevelAll   LogLevel = "ALL"
	LogLevelInfo  LogLevel = "INFO"
	LogLevelWarn  LogLevel = "WARN"
	LogLevelError LogLevel = "ERROR"
)

var levelRank = map[string]int{
	"debug":  0,
	"info":   1,
	"warn":   2,
	"error":  3,
	"dpanic": 4,
	"panic":  4,
	"fatal":  4,
}

// Allows reports whether an entry with the given zap level passes the filter.
func (l LogLevel) Allows(level string) bool {
	switch l {
	case LogLevelInfo:
		return levelRank[level] >= 1
	case LogLevelWarn:
		return levelRank[level] >= 2
	case LogLevelError:
		return levelRank[level] >= 3
	default:
		return true
	}
}

// LogsScreen represents the logs viewing screen
type LogsScreen struct {
	width  int
	height int
	keyMap ui.KeyMap

	buffer  *logger.LogBuffer
	helpBar *component.HelpBar

	// State
	logs            []logger.LogEntry
	filteredLogs    []logger.LogEntry
	currentFilter   LogLevel
	refreshInterval time.Duration
	lastUpdate      time.Time
	scrollPosition  int
	tailMode        bool // Follow new logs

	// Styling
	titleStyle  lipgloss.Style
	statusStyle lipgloss.Style
	levels      style.LogStyles
}

// NewLogsScreen creates a new logs screen
func NewLogsScreen(buffer *logger.LogBuffer) *LogsScreen {
	palette := style.DefaultPalette()
	keyMap := ui.DefaultKeyMap()

	return &LogsScreen{
		keyMap:          keyMap,
		buffer:          buffer,
		helpBar:         component.NewHelpBar().SetKeyBindings(keyMap.ContextualHelp(ui.RouteLogs)),
		currentFilter:   LogLevelAll,
		refreshInterval: time.Second,
		tailMode:        true,

		titleStyle: lipgloss.NewStyle().
			Foreground(palette.Primary).
			Bold(true),

		statusStyle: lipgloss.NewStyle().
			Foreground(palette.TextMuted),

		levels: style.NewLogStyles(palette),
	}
}

// Init initializes the logs screen
func (s *LogsScreen) Init() tea.Cmd {
	s.reload(time.Now())
	return ui.RefreshLogsCmd(s.refreshInterval)
}

// Update handles screen updates
func (s *LogsScreen) Update(msg tea.Msg) (router.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, s.keyMap.Quit):
			return s, tea.Quit

		case key.Matches(msg, s.keyMap.Back):
			return s, func() tea.Msg { return ui.RouterMsg{To: ui.RouteDashboard} }

		case key.Matches(msg, s.keyMap.Up):
			s.tailMode = false // Disable tail mode when manually scrolling
			s.scrollPosition = max(s.scrollPosition-1, 0)

		case key.Matches(msg, s.keyMap.Down):
			s.scrollPosition = min(s.scrollPosition+1, s.maxScroll())

		case key.Matches(msg, s.keyMap.Tail):
			s.tailMode = !s.tailMode
			if s.tailMode {
				s.scrollToBottom()
			}

		case key.Matches(msg, s.keyMap.FilterError):
			s.setFilter(LogLevelError)

		case key.Matches(msg, s.keyMap.FilterWarn):
			s.setFilter(LogLevelWarn)

		case key.Matches(msg, s.keyMap.FilterInfo):
			s.setFilter(LogLevelInfo)

		case key.Matches(msg, s.keyMap.FilterAll):
			s.setFilter(LogLevelAll)
		}

	case ui.RefreshLogsMsg:
		s.reload(msg.Time)
		return s, ui.RefreshLogsCmd(s.refreshInterval)
	}

	return s, nil
}

func (s *LogsScreen) reload(now time.Time) {
	s.lastUpdate = now
	if s.buffer == nil {
		return
	}
	s.logs = s.buffer.GetRecentLogs(0)
	s.applyFilters()
}

func (s *LogsScreen) setFilter(level LogLevel) {
	s.currentFilter = level
	s.applyFilters()
}

func (s *LogsScreen) applyFilters() {
	s.filteredLogs = s.filteredLogs[:0]
	for _, entry := range s.logs {
		if s.currentFilter.Allows(entry.Level) {
			s.filteredLogs = append(s.filteredLogs, entry)
		}
	}
	if s.tailMode {
		s.scrollToBottom()
	} else {
		s.scrollPosition = min(s.scrollPosition, s.maxScroll())
	}
}

func (s *LogsScreen) pageSize() int {
	// title, status, spacer and help
	return max(s.height-4-s.helpBar.Lines(), 1)
}

func (s *LogsScreen) maxScroll() int {
	return max(len(s.filteredLogs)-s.pageSize(), 0)
}

func (s *LogsScreen) scrollToBottom() {
	s.scrollPosition = s.maxScroll()
}

// View renders the logs screen
func (s *LogsScreen) View() string {
	if s.width == 0 || s.height == 0 {
		return "Loading..."
	}

	var content strings.Builder

	title := "Application Logs"
	if s.tailMode {
		title += " (Tail mode)"
	}
	content.WriteString(s.titleStyle.Render(title))
	content.WriteString("\n")
	content.WriteString(s.renderStatusBar())
	content.WriteString("\n\n")

	if len(s.filteredLogs) == 0 {
		content.WriteString(s.statusStyle.Render("No log entries match the current filter."))
		content.WriteString("\n")
	} else {
		end := min(s.scrollPosition+s.pageSize(), len(s.filteredLogs))
		for _, entry := range s.filteredLogs[s.scrollPosition:end] {
			content.WriteString(ansi.Truncate(s.renderEntry(entry), s.width, "…"))
			content.WriteString("\n")
		}
	}

	content.WriteString(s.helpBar.SetWidth(s.width).View())
	return content.String()
}

func (s *LogsScreen) renderStatusBar() string {
	statusParts := []string{
		fmt.Sprintf("Filter: %s", s.currentFilter),
		fmt.Sprintf("Showing %d of %d", len(s.filteredLogs), len(s.logs)),
		fmt.Sprintf("Updated %s", s.lastUpdate.Format("15:04:05")),
	}
	if s.buffer != nil {
		total, spilled := s.buffer.GetStats()
		statusParts = append(statusParts, fmt.Sprintf("Total %d, spilled %d", total, spilled))
	}
	return s.statusStyle.Render(strings.Join(statusParts, " | "))
}

func (s *LogsScreen) renderEntry(entry logger.LogEntry) string {
	levelStyle := s.levels.Level(entry.Level)

	var b strings.Builder
	b.WriteString(s.levels.Timestamp.Render(entry.Timestamp.Format("15:04:05")))
	b.WriteString(" ")
	b.WriteString(levelStyle.Render(fmt.Sprintf("%-5s", strings.ToUpper(entry.Level))))
	b.WriteString(" ")
	if name, ok := entry.Fields["logger"].(string); ok {
		b.WriteString(s.levels.Component.Render("[" + name + "]"))
		b.WriteString(" ")
	}
	b.WriteString(levelStyle.Render(entry.Message))
	if extra := formatFields(entry.Fields); extra != "" {
		b.WriteString(" ")
		b.WriteString(s.levels.Debug.Render(extra))
	}
	return b.String()
}

// formatFields renders structured fields as sorted key=value pairs.
func formatFields(fields map[string]interface{}) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if k == "logger" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%v", k, fields[k])
	}
	return strings.Join(parts, " ")
}

// SetSize sets the screen dimensions
func (s *LogsScreen) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.helpBar.SetWidth(width)
	if s.tailMode {
		s.scrollToBottom()
	}
}
