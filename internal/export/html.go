package export

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/rovshanmuradov/esports-earnings/internal/chart"
	"github.com/rovshanmuradov/esports-earnings/internal/earnings"
)

const (
	htmlBackground = "#ffffff"
	htmlTextColor  = "#333333"
)

// BuildPie builds the interactive donut for entries. Slices keep the order
// and palette of the terminal and raster charts.
func BuildPie(entries []earnings.Entry, o Options) *charts.Pie {
	data := make([]opts.PieData, 0, len(entries))
	for i, e := range entries {
		data = append(data, opts.PieData{
			Name:  e.Label,
			Value: math.Round(e.Value*100) / 100,
			ItemStyle: &opts.ItemStyle{
				Color: chart.Hex(chart.ColorAt(i)),
			},
		})
	}

	pie := charts.NewPie()
	pie.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:       o.Title,
			Width:           fmt.Sprintf("%dpx", o.Width),
			Height:          fmt.Sprintf("%dpx", o.Height),
			BackgroundColor: htmlBackground,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:      o.Title,
			Left:       "center",
			TitleStyle: &opts.TextStyle{Color: htmlTextColor},
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:      opts.Bool(true),
			Trigger:   "item",
			Formatter: "{b}: {c} ({d}%)",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show:      opts.Bool(true),
			Right:     "10",
			Top:       "middle",
			Orient:    "vertical",
			TextStyle: &opts.TextStyle{Color: htmlTextColor},
			Type:      "scroll",
		}),
	)

	outer := 75.0
	inner := outer * o.InnerRatio
	pie.AddSeries("Earnings", data).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show: opts.Bool(false),
			}),
			charts.WithPieChartOpts(opts.PieChart{
				Radius: []string{fmt.Sprintf("%.0f%%", inner), fmt.Sprintf("%.0f%%", outer)},
				Center: []string{"40%", "55%"},
			}),
		)

	return pie
}

// WriteHTML renders the donut as a standalone HTML page.
func WriteHTML(w io.Writer, entries []earnings.Entry, o Options) error {
	if err := BuildPie(entries, o).Render(w); err != nil {
		return fmt.Errorf("failed to render HTML chart: %w", err)
	}
	return nil
}
