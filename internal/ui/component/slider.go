package component

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rovshanmuradov/esports-earnings/internal/filter"
	"github.com/rovshanmuradov/esports-earnings/internal/summary"
	"github.com/rovshanmuradov/esports-earnings/internal/ui/style"
)

// Slider renders the filter slider as a gauge bar with its value.
type Slider struct {
	mode  filter.Mode
	r     filter.Range
	width int

	labelStyle lipgloss.Style
	valueStyle lipgloss.Style
}

// NewSlider creates a new slider component
func NewSlider(width int) *Slider {
	palette := style.DefaultPalette()
	return &Slider{
		width: width,
		labelStyle: lipgloss.NewStyle().
			Foreground(palette.Secondary).
			Bold(true),
		valueStyle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Bold(true),
	}
}

// SetRange sets the mode and range to display
func (s *Slider) SetRange(mode filter.Mode, r filter.Range) *Slider {
	s.mode = mode
	s.r = r
	return s
}

// SetWidth sets the gauge width
func (s *Slider) SetWidth(width int) *Slider {
	s.width = width
	return s
}

// Label returns the caption for the active mode.
func (s *Slider) Label() string {
	if s.mode == filter.ModeThreshold {
		return "Threshold"
	}
	return "Top N"
}

// ValueText returns the slider value as shown next to the bar.
func (s *Slider) ValueText() string {
	if s.mode == filter.ModeThreshold {
		return summary.Currency(s.r.Value)
	}
	return fmt.Sprintf("%d / %d", int(s.r.Value), int(s.r.Max))
}

// Fraction returns the position of the value within the range, in [0, 1].
func (s *Slider) Fraction() float64 {
	span := s.r.Max - s.r.Min
	if span <= 0 {
		return 0
	}
	f := (s.r.Value - s.r.Min) / span
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// View renders the slider
func (s *Slider) View() string {
	barWidth := max(s.width, 1)
	filled := int(s.Fraction()*float64(barWidth) + 0.5)

	bar := style.SliderFilledStyle.Render(strings.Repeat("━", filled)) +
		style.SliderEmptyStyle.Render(strings.Repeat("─", barWidth-filled))

	return fmt.Sprintf("%s %s %s",
		s.labelStyle.Render(s.Label()),
		bar,
		s.valueStyle.Render(s.ValueText()))
}
