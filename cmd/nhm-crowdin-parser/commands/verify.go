package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/S74nk0/nhm-crowdin-parser/pkg/observability"
	"github.com/S74nk0/nhm-crowdin-parser/pkg/roundtrip"
	"github.com/S74nk0/nhm-crowdin-parser/pkg/transform"
)

// ErrRoundTripMismatch is returned when a canonical file does not survive a round trip.
var ErrRoundTripMismatch = errors.New("round trip mismatch")

func newVerifyCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "verify [file]",
		Short: "Check that a canonical file survives export and import unchanged",
		Long: `Export the canonical file in memory, import the result back and compare.

Duplicate base texts and empty translations are reported as warnings: the
per-language format cannot carry them.`,
		Args: cobra.MaximumNArgs(1),
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

			return rt.finish(ctx, runVerify(ctx, rt, path, cmd.OutOrStdout(), flags.quiet))
		},
	}
}

func runVerify(ctx context.Context, rt *runtime, path string, out io.Writer, quiet bool) error {
	model, err := loadModel(path, rt.cfg.Export.BaseLanguage)
	if err != nil {
		return err
	}

	report, err := roundtrip.Check(ctx, model,
		transform.ExportOptions{Workers: rt.cfg.Export.Workers, Logger: rt.logger, Tracer: rt.providers.Tracer},
		transform.ImportOptions{Names: rt.cfg.Resolver(), Logger: rt.logger, Tracer: rt.providers.Tracer},
	)
	if err != nil {
		return err
	}

	if !quiet {
		printVerifyReport(out, path, report)
	}

	if !report.OK() {
		return fmt.Errorf("%s: %w", path, ErrRoundTripMismatch)
	}

	return nil
}

func printVerifyReport(out io.Writer, path string, report *roundtrip.Report) {
	yellow := color.New(color.FgYellow).SprintFunc()

	for _, text := range report.Duplicates {
		fmt.Fprintf(out, "%s duplicate base text, only the last entry survives: %q\n", yellow("warning:"), text)
	}

	if report.EmptyTranslations > 0 {
		fmt.Fprintf(out, "%s %d empty translations will be dropped\n", yellow("warning:"), report.EmptyTranslations)
	}

	if report.OK() {
		fmt.Fprintf(out, "%s %s (%d sentences)\n", color.GreenString("OK"), path, report.Sentences)

		return
	}

	fmt.Fprintf(out, "%s %s\n", color.RedString("MISMATCH"), path)

	for line := range strings.Lines(report.Diff) {
		line = strings.TrimSuffix(line, "\n")

		switch {
		case strings.HasPrefix(line, "-"):
			fmt.Fprintln(out, color.RedString(line))
		case strings.HasPrefix(line, "+"):
			fmt.Fprintln(out, color.GreenString(line))
		default:
			fmt.Fprintln(out, line)
		}
	}
}
