package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rovshanmuradov/esports-earnings/internal/config"
	"github.com/rovshanmuradov/esports-earnings/internal/logger"
	"github.com/rovshanmuradov/esports-earnings/internal/ui"
	"github.com/rovshanmuradov/esports-earnings/internal/ui/router"
	"github.com/rovshanmuradov/esports-earnings/internal/ui/screen"
	"go.uber.org/zap"
)

// AppModel represents the main TUI application model
type AppModel struct {
	router *router.Router
	width  int
	height int
}

// NewAppModel creates a new application model
func NewAppModel(services ui.ServiceProvider, initialFile string) *AppModel {
	// The dashboard is built once and kept at the bottom of the stack.
	dashboard := screen.NewDashboardScreen(services, initialFile)

	factory := func(route ui.Route) router.Screen {
		switch route {
		case ui.RouteDashboard:
			return dashboard
		case ui.RouteLogs:
			return screen.NewLogsScreen(services.GetLogBuffer())
		default:
			return nil
		}
	}

	return &AppModel{
		router: router.New(factory, ui.RouteDashboard),
	}
}

// Init initializes the application
func (m *AppModel) Init() tea.Cmd {
	return m.router.Init()
}

// Update handles application-level updates
func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.router, cmd = m.router.Update(msg)
	return m, cmd
}

// View renders the application
func (m *AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	return m.router.View()
}

func main() {
	// Parse command line flags
	configPath := flag.String("config", "configs/config.yaml", "Path to config file")
	file := flag.String("file", "", "Earnings CSV file to open on start")
	flag.Parse()
	if *file == "" && flag.NArg() > 0 {
		*file = flag.Arg(0)
	}

	// Create context with signal handling
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Logs go to the buffer only; anything written to the terminal would
	// corrupt the alternate screen.
	logBuffer, err := logger.NewLogBuffer(cfg.LogBufferSize, cfg.LogFile)
	if err != nil {
		log.Fatalf("Failed to create log buffer: %v", err)
	}
	defer func() {
		_ = logBuffer.Close()
	}()
	flushDone := logBuffer.StartPeriodicFlush(5*time.Second, zap.NewNop())
	defer close(flushDone)

	appLogger, err := logger.CreateTUILogger(cfg.DebugLogging, logBuffer)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer func() {
		_ = appLogger.Sync()
	}()

	appLogger.Info("Starting esports earnings TUI",
		zap.String("config", *configPath),
		zap.String("export_dir", cfg.ExportDir))

	services := ui.NewRealServiceProvider(rootCtx, cfg, appLogger, logBuffer)

	program := tea.NewProgram(
		ui.NewSafeModel(NewAppModel(services, *file), appLogger),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(rootCtx),
	)

	if _, err := program.Run(); err != nil && rootCtx.Err() == nil {
		appLogger.Error("TUI application failed", zap.Error(err))
		log.Printf("TUI application failed: %v", err)
	}

	appLogger.Info("Shutting down TUI application")
}
