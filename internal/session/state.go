// Package session holds the state of one interactive analysis: the imported
// earnings, the active filter, hover and the entrance animation.
package session

import (
	"github.com/rovshanmuradov/esports-earnings/internal/chart"
	"github.com/rovshanmuradov/esports-earnings/internal/earnings"
	"github.com/rovshanmuradov/esports-earnings/internal/filter"
	"github.com/rovshanmuradov/esports-earnings/internal/summary"
)

// RenderState is everything a view needs to draw the current dataset.
// It is derived from the map and the filter and never mutated afterwards.
type RenderState struct {
	Config  filter.Config
	Entries []earnings.Entry
	Slices  []chart.Slice
	Total   float64
	Summary string
	Range   filter.Range
}

// Transition derives the render state for m under cfg.
func Transition(m *earnings.Map, cfg filter.Config, maxTopN int) RenderState {
	entries := filter.Apply(m, cfg)
	return RenderState{
		Config:  cfg,
		Entries: entries,
		Slices:  chart.Layout(entries),
		Total:   filter.Total(entries),
		Summary: summary.Format(entries),
		Range:   filter.RangeFor(m, cfg, maxTopN),
	}
}

// Empty reports whether there is nothing to draw.
func (s RenderState) Empty() bool {
	return len(s.Entries) == 0
}

// Entry returns the entry behind slice i.
func (s RenderState) Entry(i int) (earnings.Entry, bool) {
	if i < 0 || i >= len(s.Entries) {
		return earnings.Entry{}, false
	}
	return s.Entries[i], true
}
