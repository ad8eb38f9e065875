package router

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rovshanmuradov/esports-earnings/internal/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeScreen struct {
	name   string
	inits  int
	width  int
	height int
	seen   []tea.Msg
}

func (f *fakeScreen) Init() tea.Cmd {
	f.inits++
	return nil
}

func (f *fakeScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	f.seen = append(f.seen, msg)
	return f, nil
}

func (f *fakeScreen) View() string { return f.name }

func (f *fakeScreen) SetSize(width, height int) {
	f.width = width
	f.height = height
}

func newTestRouter() (*Router, *fakeScreen, func() *fakeScreen) {
	dashboard := &fakeScreen{name: "dashboard"}
	var lastLogs *fakeScreen
	factory := func(route ui.Route) Screen {
		switch route {
		case ui.RouteDashboard:
			return dashboard
		case ui.RouteLogs:
			lastLogs = &fakeScreen{name: "logs"}
			return lastLogs
		}
		return nil
	}
	return New(factory, ui.RouteDashboard), dashboard, func() *fakeScreen { return lastLogs }
}

func TestNavigatePushesAndSizesScreen(t *testing.T) {
	r, _, logs := newTestRouter()
	r.SetSize(100, 40)

	r.Navigate(ui.RouteLogs)

	require.Equal(t, 2, r.Depth())
	assert.Equal(t, "logs", r.View())
	assert.Equal(t, 1, logs().inits)
	assert.Equal(t, 100, logs().width)
	route, ok := r.CurrentRoute()
	assert.True(t, ok)
	assert.Equal(t, ui.RouteLogs, route)
}

func TestNavigateToRouteOnStackPopsBack(t *testing.T) {
	r, dashboard, _ := newTestRouter()
	r.Navigate(ui.RouteLogs)

	r.Navigate(ui.RouteDashboard)

	assert.Equal(t, 1, r.Depth())
	assert.Same(t, dashboard, r.Current())
	assert.False(t, r.CanGoBack())
}

func TestEscPopsButNeverPastRoot(t *testing.T) {
	r, dashboard, _ := newTestRouter()
	r.Navigate(ui.RouteLogs)

	esc := tea.KeyMsg{Type: tea.KeyEsc}
	r, _ = r.Update(esc)
	assert.Equal(t, 1, r.Depth())

	// At the root esc is handed to the screen instead.
	r, _ = r.Update(esc)
	assert.Equal(t, 1, r.Depth())
	require.Len(t, dashboard.seen, 1)
	assert.Equal(t, esc, dashboard.seen[0])
}

func TestRouterMsgNavigates(t *testing.T) {
	r, _, _ := newTestRouter()
	r, _ = r.Update(ui.RouterMsg{To: ui.RouteLogs})
	assert.Equal(t, "logs", r.View())
}

func TestUnknownRouteIsIgnored(t *testing.T) {
	r, _, _ := newTestRouter()
	assert.Nil(t, r.Navigate(ui.Route(99)))
	assert.Equal(t, 1, r.Depth())
}

func TestResultsAreBroadcastToEveryScreen(t *testing.T) {
	r, dashboard, logs := newTestRouter()
	r.Navigate(ui.RouteLogs)

	msgs := []tea.Msg{
		ui.FileLoadedMsg{Path: "a.csv"},
		ui.ExportedMsg{Paths: []string{"a.png"}},
		ui.ErrorMsg{Error: errors.New("boom")},
	}
	for _, m := range msgs {
		r, _ = r.Update(m)
	}

	assert.Equal(t, msgs, dashboard.seen)
	assert.Equal(t, msgs, logs().seen)
}

func TestOtherMessagesGoToCurrentScreenOnly(t *testing.T) {
	r, dashboard, logs := newTestRouter()
	r.Navigate(ui.RouteLogs)

	r, _ = r.Update(ui.RefreshLogsMsg{})

	assert.Empty(t, dashboard.seen)
	assert.Len(t, logs().seen, 1)
}

func TestEmptyRouter(t *testing.T) {
	r := New(func(ui.Route) Screen { return nil }, ui.RouteDashboard)
	assert.Nil(t, r.Current())
	assert.Nil(t, r.Init())
	assert.Equal(t, "No screen available", r.View())
	_, ok := r.CurrentRoute()
	assert.False(t, ok)
}
