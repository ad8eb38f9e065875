package filter

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/rovshanmuradov/esports-earnings/internal/earnings"
)

// Slider defaults for TopN mode.
const (
	DefaultTopN = 10
	MaxTopN     = 20

	// fallbackThresholdMax is used when there is no data to size the slider.
	fallbackThresholdMax = 1000.0
	thresholdSteps       = 20
)

// ErrInvalidThreshold is returned for manual threshold text that is not a number.
var ErrInvalidThreshold = errors.New("invalid threshold")

// Range describes the slider for the active mode.
type Range struct {
	Min   float64
	Max   float64
	Value float64
	Step  float64
}

// DefaultConfig returns a TopN filter showing the ten largest titles.
func DefaultConfig() Config {
	return Config{Mode: ModeTopN, TopN: DefaultTopN}
}

// ThresholdMax is the largest total in m, or a fixed fallback for empty data.
func ThresholdMax(m *earnings.Map) float64 {
	if v, ok := m.Max(); ok {
		return v
	}
	return fallbackThresholdMax
}

// RangeFor returns the slider bounds and value for cfg.
func RangeFor(m *earnings.Map, cfg Config, maxTopN int) Range {
	if maxTopN <= 0 {
		maxTopN = MaxTopN
	}
	if cfg.Mode == ModeThreshold {
		max := ThresholdMax(m)
		step := max / thresholdSteps
		if step <= 0 {
			step = 1
		}
		return Range{Min: 0, Max: max, Value: cfg.Threshold, Step: step}
	}
	return Range{Min: 0, Max: float64(maxTopN), Value: float64(cfg.TopN), Step: 1}
}

// Toggle switches between TopN and Threshold. Entering Threshold mode resets
// the threshold to half the largest total; entering TopN keeps the last N.
func Toggle(m *earnings.Map, cfg Config) Config {
	if cfg.Mode == ModeThreshold {
		cfg.Mode = ModeTopN
		return cfg
	}
	cfg.Mode = ModeThreshold
	cfg.Threshold = ThresholdMax(m) / 2
	return cfg
}

// Rebase re-centres the threshold after a new import.
func Rebase(m *earnings.Map, cfg Config) Config {
	if cfg.Mode == ModeThreshold {
		cfg.Threshold = ThresholdMax(m) / 2
	}
	return cfg
}

// Step nudges the active slider by delta steps, clamped to its range.
func Step(m *earnings.Map, cfg Config, delta int, maxTopN int) Config {
	r := RangeFor(m, cfg, maxTopN)
	v := clamp(r.Value+float64(delta)*r.Step, r.Min, r.Max)

	if cfg.Mode == ModeThreshold {
		cfg.Threshold = v
	} else {
		cfg.TopN = int(math.Round(v))
	}
	return cfg
}

// ParseThreshold parses manual threshold input. Negative values clamp to 0.
func ParseThreshold(text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidThreshold
	}
	if v < 0 {
		v = 0
	}
	return v, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
