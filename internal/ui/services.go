package ui

import (
	"context"

	"github.com/rovshanmuradov/esports-earnings/internal/config"
	"github.com/rovshanmuradov/esports-earnings/internal/earnings"
	"github.com/rovshanmuradov/esports-earnings/internal/export"
	"github.com/rovshanmuradov/esports-earnings/internal/logger"
	"github.com/rovshanmuradov/esports-earnings/internal/session"
	"go.uber.org/zap"
)

// ServiceProvider provides access to application services for UI screens
type ServiceProvider interface {
	GetSession() *session.Session
	GetIngestor() *earnings.Ingestor
	GetExporter() *export.Exporter
	GetLogBuffer() *logger.LogBuffer
	GetLogger() *zap.Logger
	GetConfig() *config.Config
	GetContext() context.Context
}

// RealServiceProvider implements ServiceProvider with real services
type RealServiceProvider struct {
	session   *session.Session
	ingestor  *earnings.Ingestor
	exporter  *export.Exporter
	logBuffer *logger.LogBuffer
	logger    *zap.Logger
	config    *config.Config
	context   context.Context
}

// NewRealServiceProvider wires the services used by the screens.
// logBuffer may be nil, in which case the logs screen stays empty.
func NewRealServiceProvider(
	ctx context.Context,
	cfg *config.Config,
	log *zap.Logger,
	logBuffer *logger.LogBuffer,
) ServiceProvider {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg == nil {
		cfg = config.Default()
	}
	return &RealServiceProvider{
		session:   session.New(log, cfg),
		ingestor:  earnings.NewIngestor(log),
		exporter:  export.NewExporter(log, export.OptionsFromConfig(cfg)),
		logBuffer: logBuffer,
		logger:    log.Named("ui"),
		config:    cfg,
		context:   ctx,
	}
}

// GetSession returns the analysis session
func (p *RealServiceProvider) GetSession() *session.Session {
	return p.session
}

// GetIngestor returns the CSV ingestor
func (p *RealServiceProvider) GetIngestor() *earnings.Ingestor {
	return p.ingestor
}

// GetExporter returns the exporter
func (p *RealServiceProvider) GetExporter() *export.Exporter {
	return p.exporter
}

// GetLogBuffer returns the log buffer
func (p *RealServiceProvider) GetLogBuffer() *logger.LogBuffer {
	return p.logBuffer
}

// GetLogger returns the logger
func (p *RealServiceProvider) GetLogger() *zap.Logger {
	return p.logger
}

// GetConfig returns the config
func (p *RealServiceProvider) GetConfig() *config.Config {
	return p.config
}

// GetContext returns the context
func (p *RealServiceProvider) GetContext() context.Context {
	return p.context
}
