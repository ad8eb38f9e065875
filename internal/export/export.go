// =================================
// File: internal/export/export.go
// =================================
package export

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rovshanmuradov/esports-earnings/internal/config"
	"github.com/rovshanmuradov/esports-earnings/internal/earnings"
	"github.com/rovshanmuradov/esports-earnings/internal/filter"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Format represents the export file format
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatHTML Format = "html"
)

// Formats lists every format written by ExportAll, in order.
func Formats() []Format {
	return []Format{FormatCSV, FormatJSON, FormatPNG, FormatJPEG, FormatHTML}
}

// Ext returns the file extension for the format, without the dot.
func (f Format) Ext() string {
	if f == FormatJPEG {
		return "jpg"
	}
	return string(f)
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, bool) {
	switch strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")) {
	case "csv":
		return FormatCSV, true
	case "json":
		return FormatJSON, true
	case "png":
		return FormatPNG, true
	case "jpg", "jpeg":
		return FormatJPEG, true
	case "html", "htm":
		return FormatHTML, true
	default:
		return "", false
	}
}

// Options controls the rendered exports.
type Options struct {
	Width       int
	Height      int
	ChartSize   int
	ChartTop    int
	TitleY      int
	InnerRatio  float64
	Title       string
	JPEGQuality int
}

// DefaultOptions matches the reference 800x600 canvas.
func DefaultOptions() Options {
	return Options{
		Width:       config.DefaultCanvasWidth,
		Height:      config.DefaultCanvasHeight,
		ChartSize:   config.DefaultChartSize,
		ChartTop:    50,
		TitleY:      30,
		InnerRatio:  config.DefaultInnerRadiusRatio,
		Title:       config.DefaultTitle,
		JPEGQuality: 90,
	}
}

// OptionsFromConfig applies the canvas settings from cfg.
func OptionsFromConfig(cfg *config.Config) Options {
	o := DefaultOptions()
	if cfg == nil {
		return o
	}
	o.Width = cfg.CanvasWidth
	o.Height = cfg.CanvasHeight
	o.ChartSize = cfg.ChartSize
	o.InnerRatio = cfg.InnerRadiusRatio
	if cfg.Title != "" {
		o.Title = cfg.Title
	}
	return o
}

// Snapshot is the immutable data an export is written from.
// Data is the unfiltered map; Entries is the filtered dataset on screen.
type Snapshot struct {
	Data    *earnings.Map
	Entries []earnings.Entry
	Filter  filter.Config
}

// Exporter writes earnings snapshots to disk.
type Exporter struct {
	logger *zap.Logger
	opts   Options
	now    func() time.Time
}

// NewExporter creates a new exporter
func NewExporter(logger *zap.Logger, opts Options) *Exporter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exporter{
		logger: logger.Named("export"),
		opts:   opts,
		now:    time.Now,
	}
}

// Export writes snap in the given format to path, creating parent directories.
// Failures are returned as *earnings.IOError.
func (e *Exporter) Export(format Format, path string, snap Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &earnings.IOError{Op: "write", Path: path, Err: err}
	}

	file, err := os.Create(path)
	if err != nil {
		return &earnings.IOError{Op: "write", Path: path, Err: err}
	}

	w := bufio.NewWriter(file)
	writeErr := e.Write(format, w, snap)
	if writeErr == nil {
		writeErr = w.Flush()
	}
	closeErr := file.Close()
	if writeErr == nil {
		writeErr = closeErr
	}
	if writeErr != nil {
		_ = os.Remove(path)
		return &earnings.IOError{Op: "write", Path: path, Err: writeErr}
	}

	e.logger.Info("Earnings exported",
		zap.String("file", path),
		zap.String("format", string(format)),
		zap.Int("games", snap.Data.Len()),
		zap.Int("slices", len(snap.Entries)))
	return nil
}

// Write encodes snap in the given format to w.
func (e *Exporter) Write(format Format, w io.Writer, snap Snapshot) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, snap.Data)
	case FormatJSON:
		return WriteJSON(w, snap, e.now())
	case FormatPNG:
		return WritePNG(w, snap.Entries, e.opts)
	case FormatJPEG:
		return WriteJPEG(w, snap.Entries, e.opts)
	case FormatHTML:
		return WriteHTML(w, snap.Entries, e.opts)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// Filename returns a timestamped file name for format.
func (e *Exporter) Filename(format Format) string {
	return fmt.Sprintf("%s.%s", e.baseName(), format.Ext())
}

func (e *Exporter) baseName() string {
	return "earnings_" + e.now().Format("20060102_150405")
}

// ExportAll writes every format into dir under one timestamped base name.
// The formats are written concurrently; the first failure is returned.
func (e *Exporter) ExportAll(ctx context.Context, dir string, snap Snapshot) ([]string, error) {
	base := e.baseName()
	formats := Formats()
	paths := make([]string, len(formats))

	g, gCtx := errgroup.WithContext(ctx)
	for i, format := range formats {
		i, format := i, format
		path := filepath.Join(dir, base+"."+format.Ext())
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			if err := e.Export(format, path, snap); err != nil {
				return err
			}
			paths[i] = path
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		e.logger.Error("Export all failed", zap.String("dir", dir), zap.Error(err))
		return nil, err
	}
	return paths, nil
}
