// Package transform converts between the canonical translation model and the
// flat per-language files consumed by the translation-management tool.
package transform

import (
	"context"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/S74nk0/nhm-crowdin-parser/pkg/canonical"
	"github.com/S74nk0/nhm-crowdin-parser/pkg/sparsekey"
)

const tracerName = "nhm-crowdin-parser"

// LanguageFile maps sparse keys to the text of one language. An empty value
// means the sentence has no translation.
type LanguageFile map[string]string

// Sink receives each exported language file. Write may be called
// concurrently for different codes.
type Sink interface {
	Write(ctx context.Context, code string, file LanguageFile) error
}

// ExportOptions tunes Export.
type ExportOptions struct {
	// Workers bounds the number of languages built at once. Zero or less
	// means one goroutine per language.
	Workers int

	Logger *slog.Logger

	// Tracer records the crowdin.export span. Defaults to the global provider.
	Tracer trace.Tracer
}

// Export builds one LanguageFile per language in the model.
func Export(ctx context.Context, model *canonical.Model, opts ExportOptions) (map[string]LanguageFile, error) {
	files := make([]LanguageFile, len(model.Languages))

	err := export(ctx, model, opts, func(_ context.Context, idx int, _ string, file LanguageFile) error {
		files[idx] = file

		return nil
	})
	if err != nil {
		return nil, err
	}

	out := make(map[string]LanguageFile, len(files))
	for i, code := range model.Languages {
		out[code] = files[i]
	}

	return out, nil
}

// ExportTo builds every LanguageFile and hands each one to sink as soon as it
// is ready.
func ExportTo(ctx context.Context, model *canonical.Model, sink Sink, opts ExportOptions) error {
	return export(ctx, model, opts, func(ctx context.Context, _ int, code string, file LanguageFile) error {
		err := sink.Write(ctx, code, file)
		if err != nil {
			return fmt.Errorf("write language %q: %w", code, err)
		}

		return nil
	})
}

type emitFunc func(ctx context.Context, idx int, code string, file LanguageFile) error

func export(ctx context.Context, model *canonical.Model, opts ExportOptions, emit emitFunc) error {
	logger := loggerOrDefault(opts.Logger)

	ctx, span := tracerOrDefault(opts.Tracer).Start(ctx, "crowdin.export",
		trace.WithAttributes(
			attribute.Int("export.entries", model.Len()),
			attribute.Int("export.languages", len(model.Languages)),
		))
	defer span.End()

	keys, err := Keys(model.Len())
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	if opts.Workers > 0 {
		g.SetLimit(opts.Workers)
	}

	for idx, code := range model.Languages {
		g.Go(func() error {
			file := buildLanguageFile(model, keys, code)

			logger.DebugContext(gctx, "language file built", "language", code, "keys", len(file))

			return emit(gctx, idx, code, file)
		})
	}

	err = g.Wait()
	if err != nil {
		span.RecordError(err)

		return err
	}

	return nil
}

// Keys returns the sparse keys for an export of count entries, in index order.
// The key width is derived from the exact count.
func Keys(count int) ([]string, error) {
	maxIndex := sparsekey.MaxIndex(count)
	keys := make([]string, count)

	for i := range count {
		key, err := sparsekey.Encode(i, maxIndex)
		if err != nil {
			return nil, fmt.Errorf("encode key %d: %w", i, err)
		}

		keys[i] = key
	}

	return keys, nil
}

func buildLanguageFile(model *canonical.Model, keys []string, code string) LanguageFile {
	file := make(LanguageFile, len(keys))

	for i, entry := range model.Entries {
		file[keys[i]] = entry[code]
	}

	return file
}

func loggerOrDefault(logger *slog.Logger) *slog.Logger {
	if logger == nil {
		return slog.Default()
	}

	return logger
}

func tracerOrDefault(tracer trace.Tracer) trace.Tracer {
	if tracer != nil {
		return tracer
	}

	return otel.Tracer(tracerName)
}
