package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	metricRunsTotal     = "crowdin.runs.total"
	metricRunDuration   = "crowdin.run.duration.seconds"
	metricFilesTotal    = "crowdin.files.total"
	metricSentenceTotal = "crowdin.sentences.total"

	attrDirection = "direction"
	attrStatus    = "status"
	attrLanguage  = "language"

	// StatusOK marks a successful run.
	StatusOK = "ok"
	// StatusError marks a failed run.
	StatusError = "error"
)

var durationBucketBoundaries = []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10}

// ConversionMetrics holds the instruments recorded by each conversion run.
type ConversionMetrics struct {
	runsTotal     metric.Int64Counter
	runDuration   metric.Float64Histogram
	filesTotal    metric.Int64Counter
	sentenceTotal metric.Int64Counter
}

// NewConversionMetrics creates the conversion instruments from the given meter.
func NewConversionMetrics(mt metric.Meter) (*ConversionMetrics, error) {
	runs, err := mt.Int64Counter(metricRunsTotal,
		metric.WithDescription("Conversion runs by direction and status"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricRunsTotal, err)
	}

	duration, err := mt.Float64Histogram(metricRunDuration,
		metric.WithDescription("Conversion run duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBucketBoundaries...),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricRunDuration, err)
	}

	files, err := mt.Int64Counter(metricFilesTotal,
		metric.WithDescription("Per-language files written or read"),
		metric.WithUnit("{file}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricFilesTotal, err)
	}

	sentences, err := mt.Int64Counter(metricSentenceTotal,
		metric.WithDescription("Sentences processed"),
		metric.WithUnit("{sentence}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", metricSentenceTotal, err)
	}

	return &ConversionMetrics{
		runsTotal:     runs,
		runDuration:   duration,
		filesTotal:    files,
		sentenceTotal: sentences,
	}, nil
}

// RecordRun records one finished run.
func (cm *ConversionMetrics) RecordRun(ctx context.Context, direction AppMode, status string, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String(attrDirection, string(direction)),
		attribute.String(attrStatus, status),
	)

	cm.runsTotal.Add(ctx, 1, attrs)
	cm.runDuration.Record(ctx, duration.Seconds(), attrs)
}

// RecordFile counts one per-language file.
func (cm *ConversionMetrics) RecordFile(ctx context.Context, direction AppMode, language string) {
	cm.filesTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrDirection, string(direction)),
		attribute.String(attrLanguage, language),
	))
}

// RecordSentences adds n processed sentences.
func (cm *ConversionMetrics) RecordSentences(ctx context.Context, direction AppMode, n int) {
	cm.sentenceTotal.Add(ctx, int64(n), metric.WithAttributes(
		attribute.String(attrDirection, string(direction)),
	))
}
