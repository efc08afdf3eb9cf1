package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	otelx "github.com/hernandezlab/toolrep/internal/adapters/otel"
	"github.com/hernandezlab/toolrep/internal/infrastructure/config"
	"github.com/hernandezlab/toolrep/internal/ports"
)

// AppContext holds all shared dependencies for CLI commands.
type AppContext struct {
	Config  *config.Pipeline
	Logger  *zap.Logger
	Metrics ports.MetricsExporter
	RunID   string

	started time.Time
}

// NewAppContext creates an AppContext with all dependencies initialized.
// The metrics exporter degrades to a no-op when OTEL is not configured.
func NewAppContext(verbose bool) (*AppContext, error) {
	cfg, err := config.LoadPipeline()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := newLogger(verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	app := &AppContext{
		Config:  cfg,
		Logger:  logger,
		Metrics: otelx.NewNoOpExporter(),
		RunID:   uuid.NewString(),
		started: time.Now(),
	}

	otelCfg, err := otelx.LoadConfig()
	if err != nil {
		logger.Warn("invalid OTEL configuration, metrics disabled", zap.Error(err))
		return app, nil
	}
	if exporter, err := otelx.NewExporter(context.Background(), otelCfg); err == nil {
		app.Metrics = exporter
		logger.Debug("OTEL metrics exporter enabled", zap.String("endpoint", otelCfg.Endpoint))
	}
	return app, nil
}

// ExportRun reports run counters to the metrics exporter. Failures are
// logged, never fatal.
func (a *AppContext) ExportRun(command string, m ports.RunMetrics) {
	m.RunID = a.RunID
	m.Command = command
	m.StartedAt = a.started
	m.EndedAt = time.Now()
	m.DurationSeconds = m.EndedAt.Sub(a.started).Seconds()
	if m.ExitReason == "" {
		m.ExitReason = "ok"
	}
	if err := a.Metrics.ExportRunMetrics(context.Background(), &m); err != nil {
		a.Logger.Warn("failed to export run metrics", zap.Error(err))
	}
}

// Close releases all resources held by the AppContext.
func (a *AppContext) Close() error {
	err := a.Metrics.Close(context.Background())
	_ = a.Logger.Sync()
	return err
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return cfg.Build()
}
