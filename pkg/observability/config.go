// Package observability sets up structured logging, tracing and metrics for
// one run of the converter.
package observability

import (
	"io"
	"log/slog"
)

// AppMode is the direction a run converts in, or ModeTool for the
// auxiliary commands.
type AppMode string

// Run modes.
const (
	ModeForward AppMode = "forward"
	ModeReverse AppMode = "reverse"
	ModeTool    AppMode = "tool"
)

const serviceName = "nhm-crowdin-parser"

// Config controls what Init builds. Telemetry is exported only when
// Endpoint is set.
type Config struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	Mode           AppMode

	// Endpoint is the OTLP gRPC collector address, e.g. "localhost:4317".
	Endpoint string
	Headers  map[string]string
	Insecure bool

	// SampleRatio is the share of root traces kept, clamped to [0, 1].
	SampleRatio float64

	LogLevel slog.Level
	LogJSON  bool

	// LogWriter defaults to stderr.
	LogWriter io.Writer
}

// DefaultConfig samples everything and logs text at INFO.
func DefaultConfig() Config {
	return Config{
		ServiceName: serviceName,
		Mode:        ModeForward,
		SampleRatio: 1,
		LogLevel:    slog.LevelInfo,
	}
}
