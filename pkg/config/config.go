// Package config provides configuration loading and validation for nhm-crowdin-parser.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"github.com/S74nk0/nhm-crowdin-parser/pkg/langreg"
	"github.com/S74nk0/nhm-crowdin-parser/pkg/persist"
)

// Sentinel validation errors.
var (
	ErrEmptyBaseLanguage = errors.New("base language must not be empty")
	ErrEmptyFilePrefix   = errors.New("file prefix must not be empty")
	ErrInvalidFormat     = errors.New("invalid export format")
	ErrInvalidWorkers    = errors.New("export workers must not be negative")
	ErrInvalidFallback   = errors.New("invalid registry fallback")
	ErrInvalidLogLevel   = errors.New("invalid log level")
	ErrInvalidSample     = errors.New("telemetry sample ratio must be within [0, 1]")
)

// Registry fallback modes.
const (
	FallbackStub   = "stub"
	FallbackDerive = "derive"
)

// Config holds all configuration for nhm-crowdin-parser.
type Config struct {
	Paths     PathsConfig     `mapstructure:"paths"`
	Export    ExportConfig    `mapstructure:"export"`
	Registry  RegistryConfig  `mapstructure:"registry"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// PathsConfig holds the default input and output locations.
type PathsConfig struct {
	Translations string `mapstructure:"translations"`
	CrowdinDir   string `mapstructure:"crowdin_dir"`
}

// ExportConfig holds per-language file settings.
type ExportConfig struct {
	BaseLanguage string `mapstructure:"base_language"`
	FilePrefix   string `mapstructure:"file_prefix"`
	Format       string `mapstructure:"format"`
	Workers      int    `mapstructure:"workers"`
}

// RegistryConfig holds language display-name settings.
type RegistryConfig struct {
	Fallback    string            `mapstructure:"fallback"`
	UnknownName string            `mapstructure:"unknown_name"`
	Languages   map[string]string `mapstructure:"languages"`
}

// LoggingConfig holds logging-specific configuration.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	JSON  bool   `mapstructure:"json"`
}

// TelemetryConfig holds OpenTelemetry export settings.
type TelemetryConfig struct {
	OTLPEndpoint string            `mapstructure:"otlp_endpoint"`
	OTLPHeaders  map[string]string `mapstructure:"otlp_headers"`
	OTLPInsecure bool              `mapstructure:"otlp_insecure"`
	SampleRatio  float64           `mapstructure:"sample_ratio"`
	Environment  string            `mapstructure:"environment"`
}

// LoadConfig loads configuration from file and environment variables.
// With an empty configPath, .nhm-crowdin.yaml is looked up in the working
// directory and in $HOME; a missing file is not an error.
func LoadConfig(configPath string) (*Config, error) {
	viperCfg := viper.New()

	// Set defaults.
	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(".nhm-crowdin")
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("$HOME")
	}

	// Read environment variables.
	viperCfg.SetEnvPrefix(EnvPrefix)
	viperCfg.AutomaticEnv()
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	readErr := viperCfg.ReadInConfig()
	if readErr != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(readErr, &notFoundErr) {
			return nil, fmt.Errorf("failed to read config file: %w", readErr)
		}
	}

	var config Config

	unmarshalErr := viperCfg.Unmarshal(&config)
	if unmarshalErr != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", unmarshalErr)
	}

	validateErr := config.Validate()
	if validateErr != nil {
		return nil, fmt.Errorf("invalid configuration: %w", validateErr)
	}

	return &config, nil
}

// Default returns the configuration used when nothing is configured.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Translations: DefaultTranslationsPath,
			CrowdinDir:   DefaultCrowdinDir,
		},
		Export: ExportConfig{
			BaseLanguage: langreg.BaseLanguage,
			FilePrefix:   persist.DefaultPrefix,
			Format:       persist.FormatJSON,
		},
		Registry: RegistryConfig{
			Fallback:    FallbackStub,
			UnknownName: langreg.UnknownName,
			Languages:   map[string]string{},
		},
		Logging:   LoggingConfig{Level: DefaultLogLevel},
		Telemetry: TelemetryConfig{SampleRatio: DefaultSampleRatio},
	}
}

// setDefaults sets default configuration values.
func setDefaults(viperCfg *viper.Viper) {
	def := Default()

	viperCfg.SetDefault("paths.translations", def.Paths.Translations)
	viperCfg.SetDefault("paths.crowdin_dir", def.Paths.CrowdinDir)

	viperCfg.SetDefault("export.base_language", def.Export.BaseLanguage)
	viperCfg.SetDefault("export.file_prefix", def.Export.FilePrefix)
	viperCfg.SetDefault("export.format", def.Export.Format)
	viperCfg.SetDefault("export.workers", def.Export.Workers)

	viperCfg.SetDefault("registry.fallback", def.Registry.Fallback)
	viperCfg.SetDefault("registry.unknown_name", def.Registry.UnknownName)
	viperCfg.SetDefault("registry.languages", def.Registry.Languages)

	viperCfg.SetDefault("logging.level", def.Logging.Level)
	viperCfg.SetDefault("logging.json", def.Logging.JSON)

	viperCfg.SetDefault("telemetry.otlp_endpoint", "")
	viperCfg.SetDefault("telemetry.otlp_headers", map[string]string{})
	viperCfg.SetDefault("telemetry.otlp_insecure", false)
	viperCfg.SetDefault("telemetry.sample_ratio", def.Telemetry.SampleRatio)
	viperCfg.SetDefault("telemetry.environment", "")
}

// Validate checks the configuration for values the tool cannot work with.
func (c *Config) Validate() error {
	if c.Export.BaseLanguage == "" {
		return ErrEmptyBaseLanguage
	}

	if c.Export.FilePrefix == "" {
		return ErrEmptyFilePrefix
	}

	_, err := persist.CodecFor(c.Export.Format)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, c.Export.Format)
	}

	if c.Export.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, c.Export.Workers)
	}

	switch c.Registry.Fallback {
	case FallbackStub, FallbackDerive:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidFallback, c.Registry.Fallback)
	}

	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		return fmt.Errorf("%w: %v", ErrInvalidSample, c.Telemetry.SampleRatio)
	}

	_, err = c.LogLevel()

	return err
}

// LogLevel parses the configured log level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level

	err := level.UnmarshalText([]byte(c.Logging.Level))
	if err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}

	return level, nil
}

// Codec returns the codec for the configured export format.
func (c *Config) Codec() (persist.Codec, error) {
	return persist.CodecFor(c.Export.Format)
}

// Resolver builds the language display-name resolver: the built-in table
// with configured overrides, and the configured fallback for unknown codes.
func (c *Config) Resolver() *langreg.Resolver {
	unknown := c.Registry.UnknownName
	if unknown == "" {
		unknown = langreg.UnknownName
	}

	fallback := langreg.StubFallback(unknown)
	if c.Registry.Fallback == FallbackDerive {
		fallback = langreg.DeriveFallback(unknown)
	}

	return langreg.NewResolver(
		langreg.Builtin().With(c.Registry.Languages),
		langreg.WithBaseLanguage(c.Export.BaseLanguage),
		langreg.WithFallback(fallback),
	)
}
