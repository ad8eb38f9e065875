package filter

import (
	"sort"

	"github.com/rovshanmuradov/esports-earnings/internal/earnings"
	"gonum.org/v1/gonum/floats"
)

// OtherLabel is the label of the bucket that absorbs truncated entries.
const OtherLabel = "Other"

// Mode selects how the earnings map is reduced.
type Mode int

const (
	ModeTopN Mode = iota
	ModeThreshold
)

// String returns the string representation of the mode
func (m Mode) String() string {
	switch m {
	case ModeTopN:
		return "top_n"
	case ModeThreshold:
		return "threshold"
	default:
		return "unknown"
	}
}

// ParseMode maps a mode name back to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "top_n", "topn", "top":
		return ModeTopN, true
	case "threshold":
		return ModeThreshold, true
	default:
		return ModeTopN, false
	}
}

// Config is the active filter. Only the field matching Mode is used.
type Config struct {
	Mode      Mode
	TopN      int
	Threshold float64
}

// Apply sorts the map by value, descending, and reduces it according to cfg.
// Ties keep the map's encounter order. Under TopN the truncated remainder is
// folded into a trailing "Other" entry; under Threshold entries below the
// threshold are dropped without a bucket.
func Apply(m *earnings.Map, cfg Config) []earnings.Entry {
	entries := Sorted(m)
	if len(entries) == 0 {
		return []earnings.Entry{}
	}

	switch cfg.Mode {
	case ModeThreshold:
		return aboveThreshold(entries, cfg.Threshold)
	default:
		return topN(entries, cfg.TopN)
	}
}

// Sorted returns every entry of m ordered by value, descending.
func Sorted(m *earnings.Map) []earnings.Entry {
	entries := m.Entries()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Value > entries[j].Value
	})
	return entries
}

func topN(entries []earnings.Entry, n int) []earnings.Entry {
	if n < 0 {
		n = 0
	}
	if len(entries) <= n {
		return entries
	}

	rest := make([]float64, 0, len(entries)-n)
	for _, e := range entries[n:] {
		rest = append(rest, e.Value)
	}

	out := make([]earnings.Entry, 0, n+1)
	out = append(out, entries[:n]...)
	return append(out, earnings.Entry{Label: OtherLabel, Value: floats.Sum(rest)})
}

func aboveThreshold(entries []earnings.Entry, threshold float64) []earnings.Entry {
	out := make([]earnings.Entry, 0, len(entries))
	for _, e := range entries {
		if e.Value >= threshold {
			out = append(out, e)
		}
	}
	return out
}

// Total sums the values of entries.
func Total(entries []earnings.Entry) float64 {
	values := make([]float64, len(entries))
	for i, e := range entries {
		values[i] = e.Value
	}
	return floats.Sum(values)
}
