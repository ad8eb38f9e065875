package session

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/rovshanmuradov/esports-earnings/internal/chart"
	"github.com/rovshanmuradov/esports-earnings/internal/config"
	"github.com/rovshanmuradov/esports-earnings/internal/earnings"
	"github.com/rovshanmuradov/esports-earnings/internal/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const sampleCSV = `Tournament,TotalMoney,Game
T1,1000,Dota 2
T2,500,Dota 2
T3,300,Chess
`

func newTestSession(t *testing.T) *Session {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	return New(zap.NewNop(), cfg)
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "earnings.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestTransitionScenario(t *testing.T) {
	m := earnings.NewMap()
	m.Add("Dota 2", 1500)
	m.Add("Chess", 300)

	state := Transition(m, filter.DefaultConfig(), filter.MaxTopN)

	require.Len(t, state.Slices, 2)
	assert.InDelta(t, 300.0, state.Slices[0].SweepAngle, 1e-9)
	assert.InDelta(t, 60.0, state.Slices[1].SweepAngle, 1e-9)
	assert.Equal(t, 1800.0, state.Total)
	assert.True(t, strings.HasSuffix(state.Summary, "Total Earnings: $1,800.00"))
	assert.Equal(t, 20.0, state.Range.Max)
	assert.Equal(t, 10.0, state.Range.Value)
}

func TestTransitionEmpty(t *testing.T) {
	state := Transition(earnings.NewMap(), filter.DefaultConfig(), 0)

	assert.True(t, state.Empty())
	assert.Empty(t, state.Slices)
	assert.True(t, strings.HasSuffix(state.Summary, "Total Earnings: $0.00"))

	_, ok := state.Entry(0)
	assert.False(t, ok)
}

func TestNewSessionIsEmptyAndSettled(t *testing.T) {
	s := newTestSession(t)

	assert.True(t, s.State().Empty())
	assert.True(t, s.Clock().Done())
	assert.Equal(t, filter.ModeTopN, s.Filter().Mode)
	assert.Equal(t, config.DefaultTopN, s.Filter().TopN)
}

func TestLoadReplacesDataAndRestartsAnimation(t *testing.T) {
	s := newTestSession(t)

	stats, err := s.Load(writeCSV(t, sampleCSV))
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Accepted)

	state := s.State()
	require.Len(t, state.Entries, 2)
	assert.Equal(t, "Dota 2", state.Entries[0].Label)
	assert.Equal(t, 0.0, s.Clock().Progress())

	for _, sl := range s.Visible() {
		assert.Zero(t, sl.SweepAngle)
	}
	for s.Tick() {
	}
	assert.True(t, s.Clock().Done())
	assert.Equal(t, state.Slices, s.Visible())
}

func TestLoadFailureKeepsPreviousState(t *testing.T) {
	s := newTestSession(t)
	_, err := s.Load(writeCSV(t, sampleCSV))
	require.NoError(t, err)
	before := s.State()

	_, err = s.Load(filepath.Join(t.TempDir(), "missing.csv"))
	require.Error(t, err)

	var ioErr *earnings.IOError
	assert.ErrorAs(t, err, &ioErr)
	assert.Equal(t, before, s.State())
}

func TestLoadReader(t *testing.T) {
	s := newTestSession(t)

	_, err := s.LoadReader(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	assert.Equal(t, 2, s.Data().Len())
}

func TestToggleModeAndBack(t *testing.T) {
	s := newTestSession(t)
	_, err := s.LoadReader(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	s.Step(-7)
	assert.Equal(t, 3, s.Filter().TopN)

	assert.Equal(t, filter.ModeThreshold, s.ToggleMode())
	assert.Equal(t, 750.0, s.Filter().Threshold)
	require.Len(t, s.State().Entries, 1)
	assert.Equal(t, 1500.0, s.State().Range.Max)

	assert.Equal(t, filter.ModeTopN, s.ToggleMode())
	assert.Equal(t, 3, s.Filter().TopN)
	assert.Len(t, s.State().Entries, 2)
}

func TestSetThresholdText(t *testing.T) {
	s := newTestSession(t)
	_, err := s.LoadReader(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	s.ToggleMode()

	require.NoError(t, s.SetThresholdText("200"))
	assert.Equal(t, 200.0, s.Filter().Threshold)
	assert.Len(t, s.State().Entries, 2)

	err = s.SetThresholdText("lots")
	assert.ErrorIs(t, err, filter.ErrInvalidThreshold)
	assert.Equal(t, 200.0, s.Filter().Threshold)

	require.NoError(t, s.SetThresholdText("-5"))
	assert.Equal(t, 0.0, s.Filter().Threshold)
}

func TestApplyClampsTopN(t *testing.T) {
	s := newTestSession(t)

	s.Apply(filter.Config{Mode: filter.ModeTopN, TopN: 100})
	assert.Equal(t, config.DefaultTopNMax, s.Filter().TopN)

	s.Apply(filter.Config{Mode: filter.ModeTopN, TopN: -1})
	assert.Equal(t, 0, s.Filter().TopN)
}

func TestHoverAt(t *testing.T) {
	s := newTestSession(t)
	_, err := s.LoadReader(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	ring := chart.Ring{Center: chart.Point{X: 100, Y: 100}, Radius: 100, InnerRatio: 0.4}

	// straight up is the start of the first slice
	assert.True(t, s.HoverAt(chart.Point{X: 100, Y: 30}, ring))
	i, e, ok := s.Hovered()
	require.True(t, ok)
	assert.Equal(t, 0, i)
	assert.Equal(t, "Dota 2", e.Label)

	assert.False(t, s.HoverAt(chart.Point{X: 100, Y: 31}, ring), "same slice does not redraw")

	// in the hole
	assert.True(t, s.HoverAt(chart.Point{X: 100, Y: 100}, ring))
	_, _, ok = s.Hovered()
	assert.False(t, ok)
}

func TestSetHoverOutOfRange(t *testing.T) {
	s := newTestSession(t)
	_, err := s.LoadReader(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	assert.True(t, s.SetHover(1))
	assert.True(t, s.SetHover(5))
	_, _, ok := s.Hovered()
	assert.False(t, ok)
}

func TestFilterChangeClearsHover(t *testing.T) {
	s := newTestSession(t)
	_, err := s.LoadReader(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	s.SetHover(1)
	s.Step(1)

	_, ok := s.Hover().Index()
	assert.False(t, ok)
}

func TestHint(t *testing.T) {
	s := newTestSession(t)
	assert.Equal(t, "Popular: CS, COD", s.Hint("First Person Shooter"))
}

func settle(s *Session) {
	for s.Tick() {
	}
}

func TestNewLayoutRestartsAnimation(t *testing.T) {
	s := newTestSession(t)
	_, err := s.LoadReader(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	settle(s)
	s.Step(-1)
	assert.Equal(t, 0.0, s.Clock().Progress(), "after Step")

	settle(s)
	s.ToggleMode()
	assert.Equal(t, 0.0, s.Clock().Progress(), "after ToggleMode")

	settle(s)
	require.NoError(t, s.SetThresholdText("400"))
	assert.Equal(t, 0.0, s.Clock().Progress(), "after SetThresholdText")

	settle(s)
	assert.ErrorIs(t, s.SetThresholdText("lots"), filter.ErrInvalidThreshold)
	assert.True(t, s.Clock().Done(), "ignored text keeps the current layout")
}

func TestLoadReaderFailureKeepsPreviousState(t *testing.T) {
	s := newTestSession(t)
	_, err := s.LoadReader(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	before := s.State()

	_, err = s.LoadReader(iotest.ErrReader(errors.New("disk gone")))

	var ioErr *earnings.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "read", ioErr.Op)
	assert.Equal(t, 2, s.Data().Len())
	assert.Equal(t, before, s.State())
}
