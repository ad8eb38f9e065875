// =================================
// File: internal/session/session.go
// =================================
package session

import (
	"io"

	"github.com/rovshanmuradov/esports-earnings/internal/chart"
	"github.com/rovshanmuradov/esports-earnings/internal/config"
	"github.com/rovshanmuradov/esports-earnings/internal/earnings"
	"github.com/rovshanmuradov/esports-earnings/internal/filter"
	"go.uber.org/zap"
)

// Session owns the earnings map and everything derived from it.
// It is not safe for concurrent use; the UI event loop is its only caller.
type Session struct {
	logger   *zap.Logger
	cfg      *config.Config
	ingestor *earnings.Ingestor

	data   *earnings.Map
	filter filter.Config
	state  RenderState
	hover  chart.Hover
	clock  *chart.AnimationClock
}

// New creates an empty session configured from cfg.
func New(logger *zap.Logger, cfg *config.Config) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg == nil {
		cfg = config.Default()
	}

	s := &Session{
		logger:   logger.Named("session"),
		cfg:      cfg,
		ingestor: earnings.NewIngestor(logger),
		data:     earnings.NewMap(),
		filter:   filter.Config{Mode: filter.ModeTopN, TopN: cfg.TopN},
		hover:    chart.NewHover(),
		clock:    chart.NewAnimationClock(cfg.AnimationStep, cfg.AnimationInterval),
	}
	s.refresh()
	s.clock.Finish()
	return s
}

// Load imports the CSV file at path. On failure the previous data is kept.
func (s *Session) Load(path string) (earnings.Stats, error) {
	m, stats, err := s.ingestor.LoadFile(path)
	if err != nil {
		s.logger.Warn("Import failed, keeping previous data",
			zap.String("path", path), zap.Error(err))
		return stats, err
	}
	s.Replace(m)
	return stats, nil
}

// LoadReader imports CSV rows from r. Like Load, a failure keeps the
// previous data and returns the *earnings.IOError as is.
func (s *Session) LoadReader(r io.Reader) (earnings.Stats, error) {
	m, stats, err := s.ingestor.Parse(r)
	if err != nil {
		s.logger.Warn("Import failed, keeping previous data", zap.Error(err))
		return stats, err
	}
	s.Replace(m)
	return stats, nil
}

// Replace swaps in a freshly imported map.
func (s *Session) Replace(m *earnings.Map) {
	if m == nil {
		m = earnings.NewMap()
	}
	s.data = m
	s.filter = filter.Rebase(m, s.filter)
	s.refresh()

	s.logger.Debug("Dataset replaced",
		zap.Int("games", m.Len()),
		zap.Int("slices", len(s.state.Slices)))
}

// Apply sets the filter and recomputes the render state.
func (s *Session) Apply(cfg filter.Config) {
	if cfg.TopN < 0 {
		cfg.TopN = 0
	}
	if cfg.TopN > s.cfg.TopNMax {
		cfg.TopN = s.cfg.TopNMax
	}
	if cfg.Threshold < 0 {
		cfg.Threshold = 0
	}
	s.filter = cfg
	s.refresh()
}

// ToggleMode switches between TopN and Threshold filtering.
func (s *Session) ToggleMode() filter.Mode {
	s.filter = filter.Toggle(s.data, s.filter)
	s.refresh()
	s.logger.Debug("Filter mode changed", zap.Stringer("mode", s.filter.Mode))
	return s.filter.Mode
}

// Step moves the slider of the active mode by delta steps.
func (s *Session) Step(delta int) {
	s.filter = filter.Step(s.data, s.filter, delta, s.cfg.TopNMax)
	s.refresh()
}

// SetThresholdText applies manually typed threshold text. Invalid text leaves
// the state untouched and returns filter.ErrInvalidThreshold.
func (s *Session) SetThresholdText(text string) error {
	v, err := filter.ParseThreshold(text)
	if err != nil {
		s.logger.Debug("Ignoring threshold input", zap.String("text", text))
		return err
	}
	cfg := s.filter
	cfg.Threshold = v
	s.Apply(cfg)
	return nil
}

// SetHover highlights slice i, or clears the highlight when i is negative.
// It reports whether anything changed.
func (s *Session) SetHover(i int) bool {
	if i >= len(s.state.Slices) {
		i = chart.NoHover
	}
	return s.hover.Set(i)
}

// HoverAt hit-tests p against the ring and updates the highlight.
func (s *Session) HoverAt(p chart.Point, ring chart.Ring) bool {
	i, ok := chart.HitTest(s.state.Slices, p, ring)
	if !ok {
		return s.hover.Clear()
	}
	return s.hover.Set(i)
}

// Hovered returns the highlighted entry, if any.
func (s *Session) Hovered() (int, earnings.Entry, bool) {
	i, ok := s.hover.Index()
	if !ok {
		return chart.NoHover, earnings.Entry{}, false
	}
	e, ok := s.state.Entry(i)
	return i, e, ok
}

// Hover returns the highlight state.
func (s *Session) Hover() chart.Hover {
	return s.hover
}

// Tick advances the animation. It returns false once the animation is done.
func (s *Session) Tick() bool {
	return s.clock.Tick()
}

// Clock returns the animation clock
func (s *Session) Clock() *chart.AnimationClock {
	return s.clock
}

// Visible returns the slices as drawn at the current animation progress.
func (s *Session) Visible() []chart.Slice {
	return chart.Reveal(s.state.Slices, s.clock.Progress())
}

// State returns the current render state.
func (s *Session) State() RenderState {
	return s.state
}

// Data returns the unfiltered earnings map.
func (s *Session) Data() *earnings.Map {
	return s.data
}

// Filter returns the active filter.
func (s *Session) Filter() filter.Config {
	return s.filter
}

// Hint returns the tooltip hint configured for label.
func (s *Session) Hint(label string) string {
	return s.cfg.Hint(label)
}

func (s *Session) refresh() {
	s.state = Transition(s.data, s.filter, s.cfg.TopNMax)
	// indices refer to the previous dataset
	s.hover.Clear()
	// every new layout is revealed from the start
	s.clock.Reset()
}
