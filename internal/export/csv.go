package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/rovshanmuradov/esports-earnings/internal/earnings"
	"github.com/rovshanmuradov/esports-earnings/internal/filter"
)

// WriteCSV writes the unfiltered totals of m in encounter order as
// name,value lines. Names are written as-is, without quoting. Values use the
// shortest representation that parses back to the same float.
func WriteCSV(w io.Writer, m *earnings.Map) error {
	writer := bufio.NewWriter(w)

	if _, err := fmt.Fprintln(writer, earnings.SummaryHeader); err != nil {
		return fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, e := range m.Entries() {
		if _, err := fmt.Fprintf(writer, "%s,%s\n", e.Label, strconv.FormatFloat(e.Value, 'f', -1, 64)); err != nil {
			return fmt.Errorf("failed to write row for %q: %w", e.Label, err)
		}
	}

	return writer.Flush()
}

type jsonEntry struct {
	Label   string  `json:"label"`
	Value   float64 `json:"value"`
	Percent float64 `json:"percent"`
}

// WriteJSON writes the filtered dataset with export metadata.
func WriteJSON(w io.Writer, snap Snapshot, now time.Time) error {
	total := filter.Total(snap.Entries)

	entries := make([]jsonEntry, len(snap.Entries))
	for i, e := range snap.Entries {
		pct := 0.0
		if total > 0 {
			pct = e.Value / total * 100
		}
		entries[i] = jsonEntry{Label: e.Label, Value: e.Value, Percent: pct}
	}

	exportData := struct {
		ExportTime time.Time   `json:"export_time"`
		Mode       string      `json:"mode"`
		TopN       int         `json:"top_n,omitempty"`
		Threshold  float64     `json:"threshold,omitempty"`
		GameCount  int         `json:"game_count"`
		Total      float64     `json:"total"`
		Entries    []jsonEntry `json:"entries"`
	}{
		ExportTime: now,
		Mode:       snap.Filter.Mode.String(),
		GameCount:  snap.Data.Len(),
		Total:      total,
		Entries:    entries,
	}
	if snap.Filter.Mode == filter.ModeThreshold {
		exportData.Threshold = snap.Filter.Threshold
	} else {
		exportData.TopN = snap.Filter.TopN
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(exportData); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
