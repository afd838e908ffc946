package observability_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/S74nk0/nhm-crowdin-parser/pkg/observability"
)

func setupTestMeter(t *testing.T) (*observability.ConversionMetrics, *sdkmetric.ManualReader) {
	t.Helper()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))

	cm, err := observability.NewConversionMetrics(mp.Meter("test"))
	require.NoError(t, err)

	return cm, reader
}

func findMetric(t *testing.T, reader *sdkmetric.ManualReader, name string) *metricdata.Metrics {
	t.Helper()

	var rm metricdata.ResourceMetrics

	require.NoError(t, reader.Collect(context.Background(), &rm))

	for idx := range rm.ScopeMetrics {
		for midx := range rm.ScopeMetrics[idx].Metrics {
			if rm.ScopeMetrics[idx].Metrics[midx].Name == name {
				return &rm.ScopeMetrics[idx].Metrics[midx]
			}
		}
	}

	return nil
}

func TestConversionMetrics_RecordRun(t *testing.T) {
	t.Parallel()

	cm, reader := setupTestMeter(t)

	cm.RecordRun(context.Background(), observability.ModeForward, observability.StatusOK, 20*time.Millisecond)

	runs := findMetric(t, reader, "crowdin.runs.total")
	require.NotNil(t, runs)

	sum, ok := runs.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sum.DataPoints, 1)
	assert.Equal(t, int64(1), sum.DataPoints[0].Value)

	assert.NotNil(t, findMetric(t, reader, "crowdin.run.duration.seconds"))
}

func TestConversionMetrics_FilesAndSentences(t *testing.T) {
	t.Parallel()

	cm, reader := setupTestMeter(t)
	ctx := context.Background()

	cm.RecordFile(ctx, observability.ModeReverse, "en")
	cm.RecordFile(ctx, observability.ModeReverse, "ru")
	cm.RecordSentences(ctx, observability.ModeReverse, 42)

	files := findMetric(t, reader, "crowdin.files.total")
	require.NotNil(t, files)

	fileSum, ok := files.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	assert.Len(t, fileSum.DataPoints, 2)

	sentences := findMetric(t, reader, "crowdin.sentences.total")
	require.NotNil(t, sentences)

	sentenceSum, ok := sentences.Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, sentenceSum.DataPoints, 1)
	assert.Equal(t, int64(42), sentenceSum.DataPoints[0].Value)
}

func TestConversionMetrics_NoopMeter(t *testing.T) {
	t.Parallel()

	providers, err := observability.Init(observability.DefaultConfig())
	require.NoError(t, err)

	t.Cleanup(func() { require.NoError(t, providers.Shutdown(context.Background())) })

	cm, err := observability.NewConversionMetrics(providers.Meter)
	require.NoError(t, err)

	cm.RecordRun(context.Background(), observability.ModeTool, observability.StatusError, time.Millisecond)
}
