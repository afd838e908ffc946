package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/S74nk0/nhm-crowdin-parser/pkg/config"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, "translations.json", cfg.Paths.Translations)
	assert.Equal(t, "crowdin", cfg.Paths.CrowdinDir)
	assert.Equal(t, "en", cfg.Export.BaseLanguage)
	assert.Equal(t, "tr_", cfg.Export.FilePrefix)
	assert.Equal(t, "json", cfg.Export.Format)
	assert.Equal(t, 0, cfg.Export.Workers)
	assert.Equal(t, config.FallbackStub, cfg.Registry.Fallback)
	assert.Equal(t, "LANG_STUB", cfg.Registry.UnknownName)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.Telemetry.OTLPEndpoint)
	assert.InDelta(t, 1.0, cfg.Telemetry.SampleRatio, 0)
}

func TestLoadConfigTelemetry(t *testing.T) {
	t.Parallel()

	cfg, err := config.LoadConfig(writeConfig(t, `
telemetry:
  otlp_endpoint: "collector:4317"
  otlp_insecure: true
  sample_ratio: 0.25
  otlp_headers:
    authorization: "Bearer x"
`))
	require.NoError(t, err)

	assert.Equal(t, "collector:4317", cfg.Telemetry.OTLPEndpoint)
	assert.True(t, cfg.Telemetry.OTLPInsecure)
	assert.InDelta(t, 0.25, cfg.Telemetry.SampleRatio, 0)
	assert.Equal(t, map[string]string{"authorization": "Bearer x"}, cfg.Telemetry.OTLPHeaders)
}

func TestLoadConfigFromFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `
paths:
  translations: "i18n/translations.json"
  crowdin_dir: "i18n/crowdin"
export:
  format: yaml
  workers: 4
registry:
  fallback: derive
  languages:
    fr: "Français"
logging:
  level: debug
  json: true
`)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "i18n/translations.json", cfg.Paths.Translations)
	assert.Equal(t, "i18n/crowdin", cfg.Paths.CrowdinDir)
	assert.Equal(t, "yaml", cfg.Export.Format)
	assert.Equal(t, 4, cfg.Export.Workers)
	assert.Equal(t, config.FallbackDerive, cfg.Registry.Fallback)
	assert.Equal(t, map[string]string{"fr": "Français"}, cfg.Registry.Languages)
	assert.True(t, cfg.Logging.JSON)

	level, err := cfg.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)

	name, known := cfg.Resolver().DisplayName("fr")
	assert.True(t, known)
	assert.Equal(t, "Français (Unofficial)", name)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("NHMCROWDIN_EXPORT_BASE_LANGUAGE", "de")
	t.Setenv("NHMCROWDIN_PATHS_CROWDIN_DIR", "/tmp/env-crowdin")

	cfg, err := config.LoadConfig(writeConfig(t, ""))
	require.NoError(t, err)

	assert.Equal(t, "de", cfg.Export.BaseLanguage)
	assert.Equal(t, "/tmp/env-crowdin", cfg.Paths.CrowdinDir)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	t.Parallel()

	_, err := config.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoadConfigInvalidValues(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		content string
		want    error
	}{
		"format":   {"export:\n  format: xml\n", config.ErrInvalidFormat},
		"workers":  {"export:\n  workers: -1\n", config.ErrInvalidWorkers},
		"fallback": {"registry:\n  fallback: guess\n", config.ErrInvalidFallback},
		"level":    {"logging:\n  level: loud\n", config.ErrInvalidLogLevel},
		"base":     {"export:\n  base_language: \"\"\n", config.ErrEmptyBaseLanguage},
		"prefix":   {"export:\n  file_prefix: \"\"\n", config.ErrEmptyFilePrefix},
		"sample":   {"telemetry:\n  sample_ratio: 1.5\n", config.ErrInvalidSample},
	}

	for name, tt := range tests {
		_, err := config.LoadConfig(writeConfig(t, tt.content))
		require.ErrorIs(t, err, tt.want, name)
	}
}

func TestResolver_StubAndDerive(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Registry.UnknownName = "UNKNOWN"

	name, known := cfg.Resolver().DisplayName("de")
	assert.False(t, known)
	assert.Equal(t, "UNKNOWN", name)

	cfg.Registry.Fallback = config.FallbackDerive

	name, _ = cfg.Resolver().DisplayName("de")
	assert.Equal(t, "Deutsch (Unofficial)", name)

	name, _ = cfg.Resolver().DisplayName("en")
	assert.Equal(t, "English", name)
}

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	require.NoError(t, config.Default().Validate())
}
