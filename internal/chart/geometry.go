package chart

import (
	"math"

	"github.com/rovshanmuradov/esports-earnings/internal/earnings"
	"github.com/rovshanmuradov/esports-earnings/internal/filter"
)

const (
	// StartAngle puts the first slice at 12 o'clock.
	StartAngle = 90.0
	// FullCircle is the sweep of a complete ring, in degrees.
	FullCircle = 360.0
	// DefaultInnerRatio is the hole radius relative to the outer radius.
	DefaultInnerRatio = 0.4
)

// Slice is the angular extent of one dataset entry, in degrees.
// Angles follow the mathematical convention (counter-clockwise, Y up);
// HitTest flips screen Y, so slices also run counter-clockwise on screen.
type Slice struct {
	StartAngle float64
	SweepAngle float64
	ColorIndex int
}

// EndAngle returns the unnormalized end of the slice.
func (s Slice) EndAngle() float64 {
	return s.StartAngle + s.SweepAngle
}

// Point is a position in screen coordinates (Y grows downwards).
type Point struct {
	X, Y float64
}

// Ring describes where the donut sits on screen.
type Ring struct {
	Center     Point
	Radius     float64
	InnerRatio float64
}

// Layout converts entries into consecutive slices starting at 12 o'clock.
// A zero total yields zero-sweep slices.
func Layout(entries []earnings.Entry) []Slice {
	total := filter.Total(entries)
	slices := make([]Slice, len(entries))

	current := StartAngle
	for i, e := range entries {
		sweep := 0.0
		if total > 0 {
			sweep = FullCircle * e.Value / total
		}
		slices[i] = Slice{StartAngle: current, SweepAngle: sweep, ColorIndex: i}
		current += sweep
	}
	return slices
}

// HitTest resolves p to the index of the slice under it.
// Points outside the outer radius or inside the hole miss.
func HitTest(slices []Slice, p Point, ring Ring) (int, bool) {
	dx := p.X - ring.Center.X
	dy := ring.Center.Y - p.Y
	distance := math.Hypot(dx, dy)
	if distance > ring.Radius || distance < ring.Radius*ring.InnerRatio {
		return -1, false
	}

	theta := normalize(math.Atan2(dy, dx) * 180 / math.Pi)
	return sliceAt(slices, theta)
}

// sliceAt returns the first slice containing theta, handling wraparound past 360.
func sliceAt(slices []Slice, theta float64) (int, bool) {
	for i, s := range slices {
		if s.SweepAngle <= 0 {
			continue
		}
		if s.SweepAngle >= FullCircle {
			return i, true
		}

		start := normalize(s.StartAngle)
		end := normalize(s.EndAngle())
		if start <= end {
			if theta >= start && theta < end {
				return i, true
			}
		} else if theta >= start || theta < end {
			return i, true
		}
	}
	return -1, false
}

// normalize maps an angle in degrees into [0, 360).
func normalize(deg float64) float64 {
	deg = math.Mod(deg, FullCircle)
	if deg < 0 {
		deg += FullCircle
	}
	return deg
}
