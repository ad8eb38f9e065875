package ui

import (
	"time"

	"github.com/rovshanmuradov/esports-earnings/internal/earnings"
)

// Tea message types for UI communication

// RouterMsg represents navigation between screens
type RouterMsg struct {
	To Route
}

// FileLoadedMsg carries a successfully imported earnings file.
type FileLoadedMsg struct {
	Path  string
	Data  *earnings.Map
	Stats earnings.Stats
}

// ExportedMsg reports files written by an export.
type ExportedMsg struct {
	Paths []string
}

// AnimationTickMsg advances the donut entrance animation. ID identifies the
// tick chain so that a restarted animation ignores frames of the old one.
type AnimationTickMsg struct {
	ID   int
	Time time.Time
}

// RefreshLogsMsg is sent to trigger a logs refresh
type RefreshLogsMsg struct {
	Time time.Time
}

// ErrorMsg represents error conditions
type ErrorMsg struct {
	Error error
	Title string
}

// SuccessMsg represents success conditions
type SuccessMsg struct {
	Message string
	Title   string
}

// Route represents different screens in the application
type Route int

const (
	RouteDashboard Route = iota
	RouteLogs
)

// String returns the string representation of the route
func (r Route) String() string {
	switch r {
	case RouteDashboard:
		return "dashboard"
	case RouteLogs:
		return "logs"
	default:
		return "unknown"
	}
}
