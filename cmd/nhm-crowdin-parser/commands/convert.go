package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/S74nk0/nhm-crowdin-parser/pkg/canonical"
	"github.com/S74nk0/nhm-crowdin-parser/pkg/config"
	"github.com/S74nk0/nhm-crowdin-parser/pkg/observability"
	"github.com/S74nk0/nhm-crowdin-parser/pkg/persist"
	"github.com/S74nk0/nhm-crowdin-parser/pkg/transform"
)

type convertCommand struct {
	flags   *globalFlags
	input   string
	output  string
	reverse bool
}

func (c *convertCommand) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&c.input, "input", "i", "", "input path (default: paths.translations, or paths.crowdin_dir with -r)")
	cmd.Flags().StringVarP(&c.output, "output", "o", "", "output path (default: paths.crowdin_dir, or <crowdin_dir>/translations.json with -r)")
	cmd.Flags().BoolVarP(&c.reverse, "reverse", "r", false, "merge per-language files back into the canonical file")
}

func (c *convertCommand) run(cmd *cobra.Command, _ []string) error {
	mode := observability.ModeForward
	if c.reverse {
		mode = observability.ModeReverse
	}

	rt, err := c.flags.setup(cmd, mode)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	input, output := ResolvePaths(c.reverse, c.input, c.output, rt.cfg.Paths)
	rt.logger.DebugContext(ctx, "resolved paths", "reverse", c.reverse, "input", input, "output", output)

	if c.reverse {
		err = runReverse(ctx, rt, input, output)
	} else {
		err = runForward(ctx, rt, input, output)
	}

	return rt.finish(ctx, err)
}

// ResolvePaths fills unset paths from configuration. In reverse mode, when
// both paths are left at their defaults, the per-language directory becomes
// the input and the canonical file is written inside it.
func ResolvePaths(reverse bool, input, output string, paths config.PathsConfig) (resolvedInput, resolvedOutput string) {
	if input == "" {
		input = paths.Translations
	}

	if output == "" {
		output = paths.CrowdinDir
	}

	if reverse && input == paths.Translations && output == paths.CrowdinDir {
		return paths.CrowdinDir, filepath.Join(paths.CrowdinDir, filepath.Base(paths.Translations))
	}

	return input, output
}

// loadModel reads, validates and loads a canonical file.
func loadModel(path, base string) (*canonical.Model, error) {
	//nolint:gosec // path comes from the operator's CLI arguments.
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read canonical file: %w", err)
	}

	doc, err := canonical.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return canonical.Load(doc, base), nil
}

func runForward(ctx context.Context, rt *runtime, input, outDir string) error {
	model, err := loadModel(input, rt.cfg.Export.BaseLanguage)
	if err != nil {
		return err
	}

	codec, err := rt.cfg.Codec()
	if err != nil {
		return err
	}

	store := persist.NewStore(outDir, rt.cfg.Export.FilePrefix, codec, rt.logger)
	sink := &meteredSink{store: store, metrics: rt.metrics, mode: rt.mode}

	err = transform.ExportTo(ctx, model, sink, transform.ExportOptions{
		Workers: rt.cfg.Export.Workers,
		Logger:  rt.logger,
		Tracer:  rt.providers.Tracer,
	})
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	rt.metrics.RecordSentences(ctx, rt.mode, model.Len())
	rt.logger.InfoContext(ctx, "export complete",
		"input", input,
		"output", outDir,
		"sentences", humanize.Comma(int64(model.Len())),
		"languages", len(model.Languages),
	)

	return nil
}

func runReverse(ctx context.Context, rt *runtime, inDir, output string) error {
	codec, err := rt.cfg.Codec()
	if err != nil {
		return err
	}

	store := persist.NewStore(inDir, rt.cfg.Export.FilePrefix, codec, rt.logger)

	files, err := store.ReadAll(ctx)
	if err != nil {
		return err
	}

	for code := range files {
		rt.metrics.RecordFile(ctx, rt.mode, code)
	}

	doc, err := transform.Import(ctx, files, transform.ImportOptions{
		Base:   rt.cfg.Export.BaseLanguage,
		Names:  rt.cfg.Resolver(),
		Logger: rt.logger,
		Tracer: rt.providers.Tracer,
	})
	if err != nil {
		return fmt.Errorf("import %s: %w", inDir, err)
	}

	err = persist.WriteFile(output, persist.NewJSONCodec(), doc)
	if err != nil {
		return err
	}

	rt.metrics.RecordSentences(ctx, rt.mode, len(doc.Translations))
	rt.logger.InfoContext(ctx, "import complete",
		"input", inDir,
		"output", output,
		"sentences", humanize.Comma(int64(len(doc.Translations))),
		"languages", len(doc.Languages),
	)

	return nil
}

// meteredSink counts every language file handed to the store.
type meteredSink struct {
	store   *persist.Store
	metrics *observability.ConversionMetrics
	mode    observability.AppMode
}

func (s *meteredSink) Write(ctx context.Context, code string, file transform.LanguageFile) error {
	err := s.store.Write(ctx, code, file)
	if err != nil {
		return err
	}

	s.metrics.RecordFile(ctx, s.mode, code)

	return nil
}
