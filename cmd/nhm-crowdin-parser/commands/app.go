// Package commands implements the nhm-crowdin-parser subcommands.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/S74nk0/nhm-crowdin-parser/pkg/config"
	"github.com/S74nk0/nhm-crowdin-parser/pkg/observability"
	"github.com/S74nk0/nhm-crowdin-parser/pkg/version"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	configPath string
	verbose    bool
	quiet      bool
	noColor    bool
	format     string
	workers    int
}

// runtime is what a command needs once configuration and telemetry are set up.
type runtime struct {
	cfg       *config.Config
	logger    *slog.Logger
	metrics   *observability.ConversionMetrics
	providers observability.Providers
	mode      observability.AppMode
	started   time.Time
}

func (g *globalFlags) register(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&g.configPath, "config", "", "config file (default is ./.nhm-crowdin.yaml or $HOME/.nhm-crowdin.yaml)")
	flags.BoolVarP(&g.verbose, "verbose", "v", false, "verbose output")
	flags.BoolVarP(&g.quiet, "quiet", "q", false, "suppress output")
	flags.BoolVar(&g.noColor, "no-color", false, "disable colored output")
	flags.StringVar(&g.format, "format", "", "per-language file format: json or yaml (overrides config)")
	flags.IntVar(&g.workers, "workers", -1, "languages exported in parallel, 0 = one per language (overrides config)")
}

// setup loads configuration, applies flag overrides and starts telemetry.
// The caller must call finish with the command's result.
func (g *globalFlags) setup(cmd *cobra.Command, mode observability.AppMode) (*runtime, error) {
	if g.noColor {
		color.NoColor = true //nolint:reassign // intentional override of library global
	}

	cfg, err := config.LoadConfig(g.configPath)
	if err != nil {
		return nil, err
	}

	if g.format != "" {
		cfg.Export.Format = g.format
	}

	if g.workers >= 0 {
		cfg.Export.Workers = g.workers
	}

	err = cfg.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}

	switch {
	case g.quiet:
		level = slog.LevelError
	case g.verbose:
		level = slog.LevelDebug
	}

	obsCfg := observability.DefaultConfig()
	obsCfg.ServiceVersion = version.Version
	obsCfg.Environment = cfg.Telemetry.Environment
	obsCfg.Mode = mode
	obsCfg.Endpoint = cfg.Telemetry.OTLPEndpoint
	obsCfg.Headers = cfg.Telemetry.OTLPHeaders
	obsCfg.Insecure = cfg.Telemetry.OTLPInsecure
	obsCfg.SampleRatio = cfg.Telemetry.SampleRatio
	obsCfg.LogLevel = level
	obsCfg.LogJSON = cfg.Logging.JSON
	obsCfg.LogWriter = cmd.ErrOrStderr()

	providers, err := observability.Init(obsCfg)
	if err != nil {
		return nil, fmt.Errorf("init observability: %w", err)
	}

	metrics, err := observability.NewConversionMetrics(providers.Meter)
	if err != nil {
		return nil, err
	}

	return &runtime{
		cfg:       cfg,
		logger:    providers.Logger,
		metrics:   metrics,
		providers: providers,
		mode:      mode,
		started:   time.Now(),
	}, nil
}

// finish records the run and flushes telemetry. It returns runErr unchanged
// unless the flush itself fails on an otherwise successful run.
func (rt *runtime) finish(ctx context.Context, runErr error) error {
	status := observability.StatusOK
	if runErr != nil {
		status = observability.StatusError
	}

	rt.metrics.RecordRun(ctx, rt.mode, status, time.Since(rt.started))

	shutdownErr := rt.providers.Shutdown(context.WithoutCancel(ctx))
	if runErr != nil {
		return runErr
	}

	if shutdownErr != nil {
		return fmt.Errorf("flush telemetry: %w", shutdownErr)
	}

	return nil
}
