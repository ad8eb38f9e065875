package screen

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rovshanmuradov/esports-earnings/internal/chart"
	"github.com/rovshanmuradov/esports-earnings/internal/config"
	"github.com/rovshanmuradov/esports-earnings/internal/earnings"
	"github.com/rovshanmuradov/esports-earnings/internal/filter"
	"github.com/rovshanmuradov/esports-earnings/internal/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func sampleData() *earnings.Map {
	m := earnings.NewMap()
	m.Add("Dota 2", 1500)
	m.Add("CS:GO", 300)
	return m
}

func newTestDashboard(t *testing.T) *DashboardScreen {
	t.Helper()
	cfg := config.Default()
	cfg.ExportDir = t.TempDir()
	services := ui.NewRealServiceProvider(context.Background(), cfg, zap.NewNop(), nil)
	s := NewDashboardScreen(services, "")
	s.SetSize(120, 40)
	return s
}

func loaded(t *testing.T) *DashboardScreen {
	t.Helper()
	s := newTestDashboard(t)
	_, cmd := s.Update(ui.FileLoadedMsg{Path: "/data/earnings.csv", Data: sampleData()})
	require.NotNil(t, cmd)
	s.session.Clock().Finish()
	return s
}

func TestDashboardFileLoaded(t *testing.T) {
	s := loaded(t)

	assert.Equal(t, 2, s.session.Data().Len())
	assert.Equal(t, "/data/earnings.csv", s.loadedPath)
	assert.False(t, s.statusErr)
	assert.Contains(t, s.status, "Imported 2 games from earnings.csv")
	assert.Contains(t, s.View(), "earnings.csv")
}

func TestDashboardEmptyShowsPlaceholder(t *testing.T) {
	s := newTestDashboard(t)
	view := s.View()
	assert.Contains(t, view, "Esports Earnings")
	assert.Contains(t, view, "No data to chart")
}

func TestDashboardThresholdKeyNeedsThresholdMode(t *testing.T) {
	s := loaded(t)

	_, cmd := s.Update(runes("t"))

	assert.Nil(t, cmd)
	assert.Equal(t, focusNone, s.focus)
	assert.True(t, s.statusErr)
}

func TestDashboardThresholdInput(t *testing.T) {
	s := loaded(t)

	s.Update(runes("m"))
	require.Equal(t, filter.ModeThreshold, s.session.Filter().Mode)

	s.Update(runes("t"))
	require.Equal(t, focusThreshold, s.focus)

	s.thresholdInput.SetValue("750")
	s.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, focusNone, s.focus)
	assert.Equal(t, 750.0, s.session.Filter().Threshold)
	assert.Len(t, s.session.State().Entries, 1)
	assert.Equal(t, "Threshold set to $750.00", s.status)
}

func TestDashboardInvalidThresholdIsIgnored(t *testing.T) {
	s := loaded(t)
	s.Update(runes("m"))
	before := s.session.Filter()

	s.Update(runes("t"))
	status := s.status
	s.thresholdInput.SetValue("lots")
	_, cmd := s.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Nil(t, cmd)
	assert.Equal(t, focusNone, s.focus)
	assert.Equal(t, before, s.session.Filter())
	assert.False(t, s.statusErr)
	assert.Equal(t, status, s.status)
}

func TestDashboardEscLeavesInput(t *testing.T) {
	s := loaded(t)
	s.Update(runes("o"))
	require.Equal(t, focusPath, s.focus)

	s.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, focusNone, s.focus)
}

func TestDashboardStepKeys(t *testing.T) {
	s := loaded(t)
	topN := s.session.Filter().TopN

	_, cmd := s.Update(runes("h"))
	assert.Equal(t, topN-1, s.session.Filter().TopN)
	assert.NotNil(t, cmd)
	s.session.Clock().Finish()

	_, cmd = s.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, topN, s.session.Filter().TopN)
	assert.NotNil(t, cmd)
}

func TestDashboardFilterChangeReplaysAnimation(t *testing.T) {
	s := loaded(t)
	id := s.tickID

	_, cmd := s.Update(runes("m"))
	require.NotNil(t, cmd)
	assert.Equal(t, id+1, s.tickID)
	assert.Equal(t, 0.0, s.session.Clock().Progress())

	// a tick from the chain started by the load is stale now
	_, cmd = s.Update(ui.AnimationTickMsg{ID: id})
	assert.Nil(t, cmd)
	assert.Equal(t, 0.0, s.session.Clock().Progress())
}

func TestDashboardMouseHover(t *testing.T) {
	s := loaded(t)
	slices := s.session.State().Slices
	require.Len(t, slices, 2)

	// Find a cell drawn for the second slice.
	w, h := s.donut.Size()
	col, row := -1, -1
	for r := 0; r < h && col < 0; r++ {
		for c := 0; c < w; c++ {
			if i, ok := chart.HitTest(slices, s.donut.CellPoint(c, r), s.donut.Ring()); ok && i == 1 {
				col, row = c, r
				break
			}
		}
	}
	require.GreaterOrEqual(t, col, 0)

	s.Update(tea.MouseMsg{X: col + donutLeft, Y: row + donutTop, Action: tea.MouseActionMotion})
	i, e, ok := s.session.Hovered()
	require.True(t, ok)
	assert.Equal(t, 1, i)
	assert.Equal(t, "CS:GO", e.Label)
	assert.Contains(t, s.View(), "CS:GO")

	s.Update(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionMotion})
	_, ok = s.session.Hover().Index()
	assert.False(t, ok)
}

func TestDashboardIgnoresStaleTicks(t *testing.T) {
	s := newTestDashboard(t)
	s.Update(ui.FileLoadedMsg{Path: "a.csv", Data: sampleData()})
	progress := s.session.Clock().Progress()

	_, cmd := s.Update(ui.AnimationTickMsg{ID: s.tickID - 1})
	assert.Nil(t, cmd)
	assert.Equal(t, progress, s.session.Clock().Progress())

	_, cmd = s.Update(ui.AnimationTickMsg{ID: s.tickID})
	assert.NotNil(t, cmd)
	assert.Greater(t, s.session.Clock().Progress(), progress)
}

func TestDashboardLogsKeyNavigates(t *testing.T) {
	s := newTestDashboard(t)
	_, cmd := s.Update(runes("L"))
	require.NotNil(t, cmd)
	assert.Equal(t, ui.RouterMsg{To: ui.RouteLogs}, cmd())
}

func TestDashboardErrorKeepsData(t *testing.T) {
	s := loaded(t)

	s.Update(ui.ErrorMsg{Error: errors.New("no such file"), Title: "Import failed"})

	assert.True(t, s.statusErr)
	assert.Equal(t, "Import failed: no such file", s.status)
	assert.Equal(t, 2, s.session.Data().Len())
}

func TestDashboardExportCSV(t *testing.T) {
	s := loaded(t)

	_, cmd := s.Update(runes("c"))
	require.NotNil(t, cmd)

	msg, ok := cmd().(ui.ExportedMsg)
	require.True(t, ok)
	require.Len(t, msg.Paths, 1)
	assert.FileExists(t, msg.Paths[0])

	s.Update(msg)
	assert.Contains(t, s.status, "Exported")
}

func TestDashboardToggleSummary(t *testing.T) {
	s := loaded(t)
	s.Update(runes("s"))
	assert.True(t, s.showSummary)
	assert.Contains(t, s.View(), "Total Earnings:")
}
