package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/S74nk0/nhm-crowdin-parser/pkg/canonical"
	"github.com/S74nk0/nhm-crowdin-parser/pkg/observability"
)

// ErrInvalidCanonical is returned when a canonical file fails schema validation.
var ErrInvalidCanonical = errors.New("invalid canonical file")

func newValidateCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a canonical translations file against its schema",
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

			return rt.finish(ctx, runValidate(cmd, path, flags.quiet))
		},
	}
}

func runValidate(cmd *cobra.Command, path string, quiet bool) error {
	//nolint:gosec // path comes from the operator's CLI arguments.
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read canonical file: %w", err)
	}

	violations, err := canonical.Check(data)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	out := cmd.OutOrStdout()

	if len(violations) == 0 {
		if !quiet {
			fmt.Fprintf(out, "%s %s\n", color.GreenString("valid"), path)
		}

		return nil
	}

	for _, v := range violations {
		fmt.Fprintf(out, "%s %s\n", color.RedString("invalid"), v)
	}

	return fmt.Errorf("%s: %d violations: %w", path, len(violations), ErrInvalidCanonical)
}
