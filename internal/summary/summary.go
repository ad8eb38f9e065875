// Package summary renders filtered earnings as text: the summary panel, the
// legend lines and the hover tooltip.
package summary

import (
	"fmt"
	"strings"

	"github.com/rovshanmuradov/esports-earnings/internal/earnings"
	"github.com/rovshanmuradov/esports-earnings/internal/filter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	// Header opens every summary.
	Header = "Aggregated Earnings:"
	// TotalPrefix starts the trailing total line.
	TotalPrefix = "Total Earnings: "

	labelWidth = 35
)

var printer = message.NewPrinter(language.AmericanEnglish)

// Currency formats v as US dollars with thousands separators, e.g. $1,500.00.
func Currency(v float64) string {
	return printer.Sprintf("$%.2f", v)
}

// Percent returns the share of value in total, or 0 when total is 0.
func Percent(value, total float64) float64 {
	if total == 0 {
		return 0
	}
	return value / total * 100
}

// Format renders one line per entry followed by the total.
func Format(entries []earnings.Entry) string {
	total := filter.Total(entries)

	var sb strings.Builder
	sb.WriteString(Header)
	sb.WriteString("\n\n")
	for _, e := range entries {
		sb.WriteString(fmt.Sprintf("%-*s : %s (%.1f%%)\n",
			labelWidth, e.Label, Currency(e.Value), Percent(e.Value, total)))
	}
	sb.WriteString("\n")
	sb.WriteString(TotalPrefix)
	sb.WriteString(Currency(total))
	return sb.String()
}

// LegendLine renders an entry the way the legend lists it.
func LegendLine(e earnings.Entry, total float64) string {
	return fmt.Sprintf("%s - %s (%.1f%%)", e.Label, Currency(e.Value), Percent(e.Value, total))
}

// Tooltip returns the lines shown in the middle of the donut for a hovered
// entry. hint is optional extra text, such as popular titles of a genre.
func Tooltip(e earnings.Entry, total float64, hint string) []string {
	lines := []string{
		e.Label,
		fmt.Sprintf("%.2f%%", Percent(e.Value, total)),
		Currency(e.Value),
	}
	if hint != "" {
		lines = append(lines, hint)
	}
	return lines
}
