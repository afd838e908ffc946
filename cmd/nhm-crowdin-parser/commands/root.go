package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/S74nk0/nhm-crowdin-parser/pkg/version"
)

// NewRootCommand creates the root command. Run without a subcommand it
// converts between the canonical file and the per-language directory.
func NewRootCommand() *cobra.Command {
	flags := &globalFlags{}
	conv := &convertCommand{flags: flags}

	rootCmd := &cobra.Command{
		Use:   "nhm-crowdin-parser",
		Short: "Convert NHM translations to and from Crowdin per-language files",
		Long: `nhm-crowdin-parser splits the canonical translations.json into one flat
tr_<lang>.json file per language for Crowdin, and merges them back.

Examples:
  nhm-crowdin-parser                          # translations.json -> crowdin/
  nhm-crowdin-parser -r                       # crowdin/ -> crowdin/translations.json
  nhm-crowdin-parser -i in.json -o out/       # explicit paths
  nhm-crowdin-parser -r -i out/ -o merged.json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          conv.run,
	}

	flags.register(rootCmd)
	conv.register(rootCmd)

	rootCmd.AddCommand(newVerifyCommand(flags))
	rootCmd.AddCommand(newStatsCommand(flags))
	rootCmd.AddCommand(newValidateCommand(flags))
	rootCmd.AddCommand(versionCmd())

	return rootCmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "nhm-crowdin-parser %s\n", version.String())
		},
	}
}
