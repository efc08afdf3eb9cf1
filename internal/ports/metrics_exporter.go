// Package ports defines the interfaces between the analysis pipeline and
// external systems.
package ports

import (
	"context"
	"time"
)

// MetricsExporter exports pipeline run metrics to an external observability
// system.
type MetricsExporter interface {
	// ExportRunMetrics exports metrics for a completed pipeline run.
	ExportRunMetrics(ctx context.Context, m *RunMetrics) error
	// Close shuts down the exporter and flushes any pending metrics.
	Close(ctx context.Context) error
}

// RunMetrics describes one pipeline run over a data set.
type RunMetrics struct {
	RunID        string
	Command      string
	Participants int

	FilesParsed  int64
	ParseErrors  int64
	TrialsLoaded int64
	AnalysesRun  int64
	FilesWritten int64

	DurationSeconds float64
	ExitReason      string

	StartedAt time.Time
	EndedAt   time.Time
}
