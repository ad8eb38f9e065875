package chart

import (
	"fmt"
	"math"
	"math/rand"
	"testing"

	"github.com/rovshanmuradov/esports-earnings/internal/earnings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRing = Ring{Center: Point{X: 200, Y: 200}, Radius: 100, InnerRatio: DefaultInnerRatio}

// pointAt returns the screen point at angle deg (math convention) and distance r.
func pointAt(ring Ring, deg, r float64) Point {
	rad := deg * math.Pi / 180
	return Point{
		X: ring.Center.X + r*math.Cos(rad),
		Y: ring.Center.Y - r*math.Sin(rad),
	}
}

func TestLayoutScenario(t *testing.T) {
	slices := Layout([]earnings.Entry{{Label: "Dota 2", Value: 1500}, {Label: "Chess", Value: 300}})

	require.Len(t, slices, 2)
	assert.InDelta(t, 90.0, slices[0].StartAngle, 1e-9)
	assert.InDelta(t, 300.0, slices[0].SweepAngle, 1e-9)
	assert.InDelta(t, 390.0, slices[1].StartAngle, 1e-9)
	assert.InDelta(t, 60.0, slices[1].SweepAngle, 1e-9)
	assert.Equal(t, 1, slices[1].ColorIndex)
}

func TestLayoutZeroTotal(t *testing.T) {
	slices := Layout([]earnings.Entry{{Label: "A", Value: 0}, {Label: "B", Value: 0}})

	for _, s := range slices {
		assert.Equal(t, 0.0, s.SweepAngle)
		assert.Equal(t, StartAngle, s.StartAngle)
	}

	_, ok := HitTest(slices, pointAt(testRing, 45, 70), testRing)
	assert.False(t, ok)
}

func TestLayoutSweepsSumToFullCircle(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	for trial := 0; trial < 100; trial++ {
		n := 1 + r.Intn(25)
		entries := make([]earnings.Entry, n)
		for i := range entries {
			entries[i] = earnings.Entry{Label: fmt.Sprint(i), Value: r.Float64() * 1e6}
		}

		sum := 0.0
		for _, s := range Layout(entries) {
			sum += s.SweepAngle
		}
		assert.InDelta(t, FullCircle, sum, 1e-6)
	}
}

func TestHitTestScenario(t *testing.T) {
	// Dota 2 covers 90..390, Chess covers 30..90 once normalized.
	slices := Layout([]earnings.Entry{{Label: "Dota 2", Value: 1500}, {Label: "Chess", Value: 300}})

	tests := []struct {
		name  string
		deg   float64
		r     float64
		want  int
		wants bool
	}{
		{"top", 90.5, 70, 0, true},
		{"left", 180, 70, 0, true},
		{"bottom", 270, 70, 0, true},
		{"right of wrap", 10, 70, 0, true},
		{"chess", 60, 70, 1, true},
		{"inside hole", 60, 30, -1, false},
		{"outside ring", 60, 101, -1, false},
		{"near outer edge", 60, 99.9, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := HitTest(slices, pointAt(testRing, tt.deg, tt.r), testRing)
			assert.Equal(t, tt.wants, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHitTestScreenAxes(t *testing.T) {
	// A point above the center on screen (smaller Y) is at 90 degrees.
	slices := []Slice{
		{StartAngle: 45, SweepAngle: 90},
		{StartAngle: 135, SweepAngle: 270},
	}

	got, ok := HitTest(slices, Point{X: 200, Y: 130}, testRing)
	require.True(t, ok)
	assert.Equal(t, 0, got)

	got, ok = HitTest(slices, Point{X: 200, Y: 270}, testRing)
	require.True(t, ok)
	assert.Equal(t, 1, got)
}

func TestHitTestSingleFullSlice(t *testing.T) {
	slices := Layout([]earnings.Entry{{Label: "Only", Value: 42}})

	for deg := 0.0; deg < 360; deg += 15 {
		got, ok := HitTest(slices, pointAt(testRing, deg, 80), testRing)
		assert.True(t, ok, "angle %v", deg)
		assert.Equal(t, 0, got)
	}
}

func TestHitTestPartition(t *testing.T) {
	r := rand.New(rand.NewSource(9))
	entries := make([]earnings.Entry, 12)
	for i := range entries {
		entries[i] = earnings.Entry{Label: fmt.Sprint(i), Value: 1 + r.Float64()*100}
	}
	slices := Layout(entries)

	for i := 0; i < 2000; i++ {
		deg := r.Float64() * 360
		dist := testRing.Radius * (DefaultInnerRatio + 0.01 + r.Float64()*0.58)
		theta := normalize(deg)

		matches := 0
		for j := range slices {
			if _, ok := sliceAt(slices[j:j+1], theta); ok {
				matches++
			}
		}
		if matches != 1 {
			// only allowed right on a boundary
			assert.True(t, nearBoundary(slices, theta), "theta %v matched %d slices", theta, matches)
			continue
		}

		_, ok := HitTest(slices, pointAt(testRing, deg, dist), testRing)
		assert.True(t, ok)
	}
}

func nearBoundary(slices []Slice, theta float64) bool {
	for _, s := range slices {
		if math.Abs(normalize(s.StartAngle)-theta) < 1e-9 || math.Abs(normalize(s.EndAngle())-theta) < 1e-9 {
			return true
		}
	}
	return false
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, 0.0, normalize(360))
	assert.Equal(t, 30.0, normalize(390))
	assert.Equal(t, 270.0, normalize(-90))
}
