package component

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/rovshanmuradov/esports-earnings/internal/chart"
	"github.com/rovshanmuradov/esports-earnings/internal/ui/style"
)

// cellAspect is how much taller a terminal cell is than it is wide.
const cellAspect = 2.0

const donutGlyph = "█"

// Donut draws the ring chart on a grid of terminal cells. Every cell is
// mapped to a point in a square coordinate space and resolved with the same
// hit test used for mouse hover, so what is drawn is what gets hovered.
type Donut struct {
	width      int
	height     int
	innerRatio float64

	tooltipStyle lipgloss.Style
}

// NewDonut creates a new donut component
func NewDonut(innerRatio float64) *Donut {
	if innerRatio <= 0 || innerRatio >= 1 {
		innerRatio = chart.DefaultInnerRatio
	}
	palette := style.DefaultPalette()
	return &Donut{
		width:      40,
		height:     20,
		innerRatio: innerRatio,
		tooltipStyle: lipgloss.NewStyle().
			Foreground(palette.Text).
			Bold(true),
	}
}

// SetSize sets the drawing area in cells
func (d *Donut) SetSize(width, height int) *Donut {
	d.width = max(width, 0)
	d.height = max(height, 0)
	return d
}

// Size returns the drawing area in cells
func (d *Donut) Size() (int, int) {
	return d.width, d.height
}

// Ring returns the ring in cell coordinate space.
func (d *Donut) Ring() chart.Ring {
	w := float64(d.width)
	h := float64(d.height) * cellAspect
	return chart.Ring{
		Center:     chart.Point{X: w / 2, Y: h / 2},
		Radius:     math.Max(math.Min(w, h)/2-0.5, 0),
		InnerRatio: d.innerRatio,
	}
}

// CellPoint maps the centre of a cell to chart coordinates.
func (d *Donut) CellPoint(col, row int) chart.Point {
	return chart.Point{
		X: float64(col) + 0.5,
		Y: (float64(row) + 0.5) * cellAspect,
	}
}

// Contains reports whether the cell lies inside the drawing area.
func (d *Donut) Contains(col, row int) bool {
	return col >= 0 && row >= 0 && col < d.width && row < d.height
}

// View renders the revealed slices with the hovered one brightened, and the
// tooltip lines centred in the hole.
func (d *Donut) View(slices []chart.Slice, hover chart.Hover, tooltip []string) string {
	if d.width == 0 || d.height == 0 {
		return ""
	}

	ring := d.Ring()
	overlay := d.tooltipRows(tooltip)

	rows := make([]string, d.height)
	for row := 0; row < d.height; row++ {
		if line, ok := overlay[row]; ok {
			rows[row] = d.renderRowWithText(slices, hover, ring, row, line)
			continue
		}
		rows[row] = d.renderCells(slices, hover, ring, row, 0, d.width)
	}
	return strings.Join(rows, "\n")
}

// renderCells renders cells [from, to) of a row, grouping runs of equal color.
func (d *Donut) renderCells(slices []chart.Slice, hover chart.Hover, ring chart.Ring, row, from, to int) string {
	var sb strings.Builder
	runIndex := -2
	runLen := 0

	flush := func() {
		if runLen == 0 {
			return
		}
		if runIndex < 0 {
			sb.WriteString(strings.Repeat(" ", runLen))
		} else {
			s := slices[runIndex]
			fg := style.SliceColor(s.ColorIndex, hover.Is(runIndex))
			sb.WriteString(lipgloss.NewStyle().Foreground(fg).Render(strings.Repeat(donutGlyph, runLen)))
		}
		runLen = 0
	}

	for col := from; col < to; col++ {
		i, ok := chart.HitTest(slices, d.CellPoint(col, row), ring)
		if !ok {
			i = -1
		}
		if i != runIndex {
			flush()
			runIndex = i
		}
		runLen++
	}
	flush()
	return sb.String()
}

func (d *Donut) renderRowWithText(slices []chart.Slice, hover chart.Hover, ring chart.Ring, row int, text string) string {
	textWidth := ansi.StringWidth(text)
	start := (d.width - textWidth) / 2
	if start < 0 {
		start = 0
	}
	end := min(start+textWidth, d.width)

	return d.renderCells(slices, hover, ring, row, 0, start) +
		d.tooltipStyle.Render(text) +
		d.renderCells(slices, hover, ring, row, end, d.width)
}

// tooltipRows places the tooltip lines in the middle rows, truncated to the
// width of the hole.
func (d *Donut) tooltipRows(lines []string) map[int]string {
	out := make(map[int]string, len(lines))
	if len(lines) == 0 {
		return out
	}

	ring := d.Ring()
	holeWidth := int(ring.Radius*ring.InnerRatio*2) - 1
	if holeWidth < 1 {
		return out
	}

	first := d.height/2 - len(lines)/2
	for i, line := range lines {
		row := first + i
		if row < 0 || row >= d.height {
			continue
		}
		out[row] = ansi.Truncate(line, holeWidth, "…")
	}
	return out
}
