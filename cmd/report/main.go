package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/rovshanmuradov/esports-earnings/internal/config"
	"github.com/rovshanmuradov/esports-earnings/internal/export"
	"github.com/rovshanmuradov/esports-earnings/internal/filter"
	"github.com/rovshanmuradov/esports-earnings/internal/logger"
	"github.com/rovshanmuradov/esports-earnings/internal/session"
	"go.uber.org/zap"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "configs/config.yaml", "Path to config file")
	modeName := flag.String("mode", "topn", "Filter mode: topn or threshold")
	topN := flag.Int("n", -1, "Number of titles to keep in topn mode (default from config)")
	threshold := flag.Float64("threshold", 0, "Minimum total in threshold mode")
	exportDir := flag.String("export", "", "Write CSV, JSON, PNG, JPEG and HTML exports to this directory")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] earnings.csv\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	path := flag.Arg(0)

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger, err := logger.CreatePrettyLogger(cfg.DebugLogging)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer func() {
		_ = appLogger.Sync()
	}()

	if err := run(rootCtx, appLogger, cfg, path, *modeName, *topN, *threshold, *exportDir); err != nil {
		appLogger.Error("Report failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, zlog *zap.Logger, cfg *config.Config, path, modeName string, topN int, threshold float64, exportDir string) error {
	mode, ok := filter.ParseMode(modeName)
	if !ok {
		return fmt.Errorf("unknown mode %q", modeName)
	}
	if topN < 0 {
		topN = cfg.TopN
	}

	s := session.New(zlog, cfg)
	if _, err := s.Load(path); err != nil {
		return err
	}
	s.Apply(filter.Config{Mode: mode, TopN: topN, Threshold: threshold})

	state := s.State()
	fmt.Println(state.Summary)

	if exportDir == "" {
		return nil
	}

	exporter := export.NewExporter(zlog, export.OptionsFromConfig(cfg))
	paths, err := exporter.ExportAll(ctx, exportDir, export.Snapshot{
		Data:    s.Data(),
		Entries: state.Entries,
		Filter:  s.Filter(),
	})
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	for _, p := range paths {
		zlog.Info("Wrote export", zap.String("file", p))
	}
	return nil
}
