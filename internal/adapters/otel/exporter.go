package otel

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/hernandezlab/toolrep/internal/ports"
)

const (
	serviceName    = "toolrep"
	serviceVersion = "1.0.0"
)

// Exporter exports pipeline run metrics to an OTEL Collector.
type Exporter struct {
	provider     *sdkmetric.MeterProvider
	meter        metric.Meter
	filesParsed  metric.Int64Counter
	parseErrors  metric.Int64Counter
	trialsLoaded metric.Int64Counter
	analysesRun  metric.Int64Counter
	filesWritten metric.Int64Counter
	durationHist metric.Float64Histogram
	runsTotal    metric.Int64Counter
}

// NewExporter creates a new OTEL metrics exporter.
func NewExporter(ctx context.Context, cfg Config) (*Exporter, error) {
	if !cfg.Enabled || cfg.Endpoint == "" {
		return nil, fmt.Errorf("OTEL exporter is disabled or endpoint not configured")
	}

	opts := []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetricgrpc.WithDialOption(grpc.WithTransportCredentials(insecure.NewCredentials())))
		opts = append(opts, otlpmetricgrpc.WithInsecure())
	}

	exp, err := otlpmetricgrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating OTLP exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(provider)

	meter := provider.Meter(serviceName)

	filesParsed, err := meter.Int64Counter(
		"toolrep_files_parsed_total",
		metric.WithDescription("Total data files parsed"),
		metric.WithUnit("{file}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating files counter: %w", err)
	}

	parseErrors, err := meter.Int64Counter(
		"toolrep_parse_errors_total",
		metric.WithDescription("Total files that failed to parse"),
		metric.WithUnit("{file}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating errors counter: %w", err)
	}

	trialsLoaded, err := meter.Int64Counter(
		"toolrep_trials_loaded_total",
		metric.WithDescription("Total trials reconciled into tables"),
		metric.WithUnit("{trial}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating trials counter: %w", err)
	}

	analysesRun, err := meter.Int64Counter(
		"toolrep_analyses_total",
		metric.WithDescription("Total statistical analyses run"),
		metric.WithUnit("{analysis}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating analyses counter: %w", err)
	}

	filesWritten, err := meter.Int64Counter(
		"toolrep_files_written_total",
		metric.WithDescription("Total output files written"),
		metric.WithUnit("{file}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating outputs counter: %w", err)
	}

	durationHist, err := meter.Float64Histogram(
		"toolrep_run_duration_seconds",
		metric.WithDescription("Pipeline run duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration histogram: %w", err)
	}

	runsTotal, err := meter.Int64Counter(
		"toolrep_runs_total",
		metric.WithDescription("Total pipeline runs"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating runs counter: %w", err)
	}

	return &Exporter{
		provider:     provider,
		meter:        meter,
		filesParsed:  filesParsed,
		parseErrors:  parseErrors,
		trialsLoaded: trialsLoaded,
		analysesRun:  analysesRun,
		filesWritten: filesWritten,
		durationHist: durationHist,
		runsTotal:    runsTotal,
	}, nil
}

// ExportRunMetrics exports metrics for a completed pipeline run.
func (e *Exporter) ExportRunMetrics(ctx context.Context, m *ports.RunMetrics) error {
	opt := metric.WithAttributes(
		attribute.String("run_id", m.RunID),
		attribute.String("command", m.Command),
		attribute.String("exit_reason", m.ExitReason),
		attribute.Int("participants", m.Participants),
	)

	e.filesParsed.Add(ctx, m.FilesParsed, opt)
	e.parseErrors.Add(ctx, m.ParseErrors, opt)
	e.trialsLoaded.Add(ctx, m.TrialsLoaded, opt)
	e.analysesRun.Add(ctx, m.AnalysesRun, opt)
	e.filesWritten.Add(ctx, m.FilesWritten, opt)
	e.durationHist.Record(ctx, m.DurationSeconds, opt)
	e.runsTotal.Add(ctx, 1, opt)

	return nil
}

// Close shuts down the exporter and flushes any pending metrics.
func (e *Exporter) Close(ctx context.Context) error {
	return e.provider.Shutdown(ctx)
}
