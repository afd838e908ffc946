package config

// EnvPrefix is the prefix of environment variable overrides.
const EnvPrefix = "NHMCROWDIN"

// Path defaults.
const (
	DefaultTranslationsPath = "translations.json"
	DefaultCrowdinDir       = "crowdin"
)

// DefaultLogLevel is the default slog level name.
const DefaultLogLevel = "info"

// DefaultSampleRatio keeps every trace.
const DefaultSampleRatio = 1.0
