package chart

import "time"

// Reference animation pace: the ring is fully revealed after one second.
const (
	DefaultStep     = 0.02
	DefaultInterval = 20 * time.Millisecond
)

// AnimationClock drives the entrance animation. Progress only moves forward
// and stays within [0, 1]; once it reaches 1 the clock is done.
type AnimationClock struct {
	step     float64
	interval time.Duration
	ticks    int
	progress float64
}

// NewAnimationClock creates a clock. Non-positive values fall back to the defaults.
func NewAnimationClock(step float64, interval time.Duration) *AnimationClock {
	if step <= 0 {
		step = DefaultStep
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &AnimationClock{step: step, interval: interval}
}

// Interval returns the tick period
func (c *AnimationClock) Interval() time.Duration {
	return c.interval
}

// Progress returns the current progress
func (c *AnimationClock) Progress() float64 {
	return c.progress
}

// Done reports whether the animation has finished.
func (c *AnimationClock) Done() bool {
	return c.progress >= 1
}

// Tick advances the clock by one step. It returns false once the clock is
// done, in which case nothing changes.
func (c *AnimationClock) Tick() bool {
	if c.Done() {
		return false
	}
	c.ticks++
	c.progress = float64(c.ticks) * c.step
	if c.progress >= 1 {
		c.progress = 1
	}
	return true
}

// Reset restarts the animation from zero.
func (c *AnimationClock) Reset() {
	c.ticks = 0
	c.progress = 0
}

// Finish jumps to the terminal state.
func (c *AnimationClock) Finish() {
	c.progress = 1
}

// Reveal returns the slices as they should be drawn at progress p.
// Indices are preserved; slices not yet reached get a zero sweep and the one
// being revealed is cut to the angle swept so far.
func Reveal(slices []Slice, progress float64) []Slice {
	if progress >= 1 {
		out := make([]Slice, len(slices))
		copy(out, slices)
		return out
	}

	revealed := progress * FullCircle
	out := make([]Slice, len(slices))
	before := 0.0
	for i, s := range slices {
		out[i] = s
		out[i].SweepAngle = VisibleSweep(s.SweepAngle, before, revealed)
		before += s.SweepAngle
	}
	return out
}

// VisibleSweep returns how much of a slice with the given sweep, preceded by
// offset degrees of other slices, is visible once revealed degrees are drawn.
func VisibleSweep(sweep, offset, revealed float64) float64 {
	if offset > revealed {
		return 0
	}
	visible := revealed - offset
	if visible > sweep {
		visible = sweep
	}
	if visible <= 0 {
		return 0
	}
	return visible
}
