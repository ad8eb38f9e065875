package ui

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rovshanmuradov/esports-earnings/internal/earnings"
	"github.com/rovshanmuradov/esports-earnings/internal/export"
)

// LoadFileCmd reads path off the event loop. The result is delivered as a
// FileLoadedMsg or an ErrorMsg; nothing is mutated here.
func LoadFileCmd(in *earnings.Ingestor, path string) tea.Cmd {
	return func() tea.Msg {
		m, stats, err := in.LoadFile(path)
		if err != nil {
			return ErrorMsg{Error: err, Title: "Import failed"}
		}
		return FileLoadedMsg{Path: path, Data: m, Stats: stats}
	}
}

// ExportCmd writes one format into dir.
func ExportCmd(ex *export.Exporter, format export.Format, dir string, snap export.Snapshot) tea.Cmd {
	return func() tea.Msg {
		path := filepath.Join(dir, ex.Filename(format))
		if err := ex.Export(format, path, snap); err != nil {
			return ErrorMsg{Error: err, Title: "Export failed"}
		}
		return ExportedMsg{Paths: []string{path}}
	}
}

// ExportAllCmd writes every format into dir.
func ExportAllCmd(ctx context.Context, ex *export.Exporter, dir string, snap export.Snapshot) tea.Cmd {
	return func() tea.Msg {
		paths, err := ex.ExportAll(ctx, dir, snap)
		if err != nil {
			return ErrorMsg{Error: err, Title: "Export failed"}
		}
		return ExportedMsg{Paths: paths}
	}
}

// AnimationTickCmd schedules the next animation frame.
func AnimationTickCmd(id int, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return AnimationTickMsg{ID: id, Time: t}
	})
}

// RefreshLogsCmd schedules a logs refresh.
func RefreshLogsCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return RefreshLogsMsg{Time: t}
	})
}

// Describe turns an ErrorMsg into status line text.
func (m ErrorMsg) Describe() string {
	if m.Title == "" {
		return m.Error.Error()
	}
	return fmt.Sprintf("%s: %v", m.Title, m.Error)
}
