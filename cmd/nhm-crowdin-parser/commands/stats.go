package commands

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/S74nk0/nhm-crowdin-parser/pkg/coverage"
	"github.com/S74nk0/nhm-crowdin-parser/pkg/observability"
)

func newStatsCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "stats [file]",
		Short: "Show per-language translation coverage",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := flags.setup(cmd, observability.ModeTool)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}

			path := rt.cfg.Paths.Translations
			if len(args) == 1 {
				path = args[0]
			}

			model, err := loadModel(path, rt.cfg.Export.BaseLanguage)
			if err != nil {
				return rt.finish(ctx, err)
			}

			rows := coverage.Compute(model, rt.cfg.Resolver())

			return rt.finish(ctx, coverage.Render(cmd.OutOrStdout(), rows))
		},
	}
}
