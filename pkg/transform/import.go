package transform

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/S74nk0/nhm-crowdin-parser/pkg/canonical"
	"github.com/S74nk0/nhm-crowdin-parser/pkg/langreg"
	"github.com/S74nk0/nhm-crowdin-parser/pkg/sparsekey"
)

// ErrMissingBaseLanguage is returned when no file exists for the base language.
var ErrMissingBaseLanguage = errors.New("missing base language file")

// ErrInconsistentKeys is returned when base-language keys differ in width.
var ErrInconsistentKeys = errors.New("inconsistent sparse key width")

// Namer resolves display names for the Languages section.
type Namer interface {
	DisplayName(code string) (name string, known bool)
}

// ImportOptions tunes Import.
type ImportOptions struct {
	// Base is the source-of-truth language. Defaults to "en".
	Base string

	// Names resolves display names. Defaults to the built-in table.
	Names Namer

	Logger *slog.Logger

	Tracer trace.Tracer
}

// Import rebuilds the canonical document from per-language files. The base
// language file defines both the sentence text and the set of keys; keys
// found only in other languages are ignored. Empty values never reach the
// output.
func Import(ctx context.Context, files map[string]LanguageFile, opts ImportOptions) (*canonical.Document, error) {
	base := opts.Base
	if base == "" {
		base = langreg.BaseLanguage
	}

	names := opts.Names
	if names == nil {
		names = langreg.NewResolver(langreg.Builtin(), langreg.WithBaseLanguage(base))
	}

	logger := loggerOrDefault(opts.Logger)

	ctx, span := tracerOrDefault(opts.Tracer).Start(ctx, "crowdin.import",
		trace.WithAttributes(attribute.Int("import.languages", len(files))))
	defer span.End()

	baseFile, ok := files[base]
	if !ok {
		err := fmt.Errorf("%w: %q", ErrMissingBaseLanguage, base)
		span.RecordError(err)

		return nil, err
	}

	keys, err := sortedKeys(baseFile)
	if err != nil {
		span.RecordError(err)

		return nil, fmt.Errorf("language %q: %w", base, err)
	}

	others := make([]string, 0, len(files))
	for code := range files {
		if code != base {
			others = append(others, code)
		}
	}

	slices.Sort(others)

	bySentence := make(map[string]map[string]string, len(keys))

	for _, key := range keys {
		sentence := baseFile[key]

		if _, dup := bySentence[sentence]; dup {
			logger.DebugContext(ctx, "duplicate base sentence, later key wins", "key", key, "sentence", sentence)
		}

		texts := make(map[string]string)

		for _, code := range others {
			text := files[code][key]
			if text != "" {
				texts[code] = text
			}
		}

		bySentence[sentence] = texts
	}

	languages := make(map[string]string, len(files))

	for code := range files {
		name, known := names.DisplayName(code)
		if !known {
			logger.WarnContext(ctx, "unknown language code", "language", code, "display_name", name)
		}

		languages[code] = name
	}

	translations := make(canonical.Translations, 0, len(bySentence))
	for _, sentence := range slices.Sorted(maps.Keys(bySentence)) {
		translations = append(translations, canonical.Sentence{Source: sentence, Texts: bySentence[sentence]})
	}

	span.SetAttributes(attribute.Int("import.sentences", len(translations)))

	return &canonical.Document{
		Languages:    languages,
		Translations: translations,
	}, nil
}

// sortedKeys returns the keys of file in string order after checking that
// every key is well formed and all share one width.
func sortedKeys(file LanguageFile) ([]string, error) {
	keys := slices.Sorted(maps.Keys(file))
	if len(keys) == 0 {
		return keys, nil
	}

	width := len(keys[0])
	limit := maxIndexForLength(width - len(sparsekey.Prefix))

	for _, key := range keys {
		if len(key) != width {
			return nil, fmt.Errorf("%w: %q vs %q", ErrInconsistentKeys, keys[0], key)
		}

		_, err := sparsekey.Decode(key, limit)
		if err != nil {
			return nil, err
		}
	}

	return keys, nil
}

// maxIndexForLength returns the largest index representable in digits digits.
// Widths beyond what an int holds are clamped; Decode rejects them anyway.
func maxIndexForLength(digits int) int {
	const maxDigits = 18

	limit := 0
	for range min(digits, maxDigits) {
		limit = limit*10 + 9
	}

	return limit
}
