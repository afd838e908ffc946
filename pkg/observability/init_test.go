package observability_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/S74nk0/nhm-crowdin-parser/pkg/observability"
)

func TestInit_NoopWhenNoEndpoint(t *testing.T) {
	t.Parallel()

	providers, err := observability.Init(observability.DefaultConfig())
	require.NoError(t, err)

	require.NotNil(t, providers.Tracer)
	require.NotNil(t, providers.Meter)
	require.NotNil(t, providers.Logger)

	_, span := providers.Tracer.Start(context.Background(), "crowdin.test")
	assert.False(t, span.SpanContext().IsValid())
	span.End()

	require.NoError(t, providers.Shutdown(context.Background()))
	require.NoError(t, providers.Shutdown(context.Background()))
}

func TestInit_LoggerWritesJSONToConfiguredWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	cfg := observability.DefaultConfig()
	cfg.LogJSON = true
	cfg.LogWriter = &buf
	cfg.Mode = observability.ModeReverse

	providers, err := observability.Init(cfg)
	require.NoError(t, err)

	providers.Logger.InfoContext(context.Background(), "converted", "files", 3)

	var record map[string]any

	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "converted", record["msg"])
	assert.Equal(t, "nhm-crowdin-parser", record["service"])
	assert.Equal(t, "reverse", record["mode"])
	assert.InDelta(t, 3, record["files"], 0)
}

func TestInit_LogLevelFilters(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	cfg := observability.DefaultConfig()
	cfg.LogWriter = &buf
	cfg.LogLevel = slog.LevelWarn

	providers, err := observability.Init(cfg)
	require.NoError(t, err)

	providers.Logger.InfoContext(context.Background(), "hidden")
	providers.Logger.WarnContext(context.Background(), "shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewResource(t *testing.T) {
	t.Parallel()

	cfg := observability.DefaultConfig()
	cfg.Mode = observability.ModeTool
	cfg.ServiceVersion = "1.2.3"

	attrs := map[string]string{}
	for _, kv := range observability.NewResource(cfg).Attributes() {
		attrs[string(kv.Key)] = kv.Value.AsString()
	}

	assert.Equal(t, "tool", attrs["app.mode"])
	assert.Equal(t, "nhm-crowdin-parser", attrs["service.name"])
	assert.Equal(t, "1.2.3", attrs["service.version"])
	assert.NotContains(t, attrs, "deployment.environment")
}

func TestNewSampler(t *testing.T) {
	t.Parallel()

	params := sdktrace.SamplingParameters{
		ParentContext: context.Background(),
		TraceID:       trace.TraceID{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
		Name:          "crowdin.export",
	}

	tests := []struct {
		ratio float64
		want  sdktrace.SamplingDecision
	}{
		{1, sdktrace.RecordAndSample},
		{0, sdktrace.Drop},
	}

	for _, tt := range tests {
		got := observability.NewSampler(tt.ratio).ShouldSample(params).Decision
		assert.Equal(t, tt.want, got, "ratio %v", tt.ratio)
	}
}
