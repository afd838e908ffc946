// Package roundtrip checks that a canonical model survives an export to
// per-language files followed by an import back.
package roundtrip

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/S74nk0/nhm-crowdin-parser/pkg/canonical"
	"github.com/S74nk0/nhm-crowdin-parser/pkg/persist"
	"github.com/S74nk0/nhm-crowdin-parser/pkg/transform"
)

// Report is the outcome of a round-trip check.
type Report struct {
	// Sentences is the number of entries in the source model.
	Sentences int

	// Duplicates lists base texts shared by more than one entry. Only the
	// last of them survives an import.
	Duplicates []string

	// EmptyTranslations counts non-base translations equal to "". They are
	// indistinguishable from missing ones after export.
	EmptyTranslations int

	// Diff is a line diff between the expected and the re-imported
	// Translations section. Empty when they match.
	Diff string
}

// OK reports whether the re-imported model matches the expected one.
func (r *Report) OK() bool {
	return r.Diff == ""
}

// Lossy reports whether the source holds data a round trip cannot keep.
func (r *Report) Lossy() bool {
	return len(r.Duplicates) > 0 || r.EmptyTranslations > 0
}

// Check exports model, imports the result and compares it with what the
// import is expected to produce.
func Check(ctx context.Context, model *canonical.Model, exportOpts transform.ExportOptions, importOpts transform.ImportOptions) (*Report, error) {
	files, err := transform.Export(ctx, model, exportOpts)
	if err != nil {
		return nil, fmt.Errorf("export: %w", err)
	}

	importOpts.Base = model.Base

	back, err := transform.Import(ctx, files, importOpts)
	if err != nil {
		return nil, fmt.Errorf("import: %w", err)
	}

	expected, report := expectedTranslations(model)

	want, err := render(expected)
	if err != nil {
		return nil, err
	}

	got, err := render(back.Translations)
	if err != nil {
		return nil, err
	}

	report.Diff = LineDiff(want, got)

	return report, nil
}

// expectedTranslations normalizes model the way an import sees it: one
// row per distinct base text, later entries winning, and no empty texts.
func expectedTranslations(model *canonical.Model) (canonical.Translations, *Report) {
	report := &Report{Sentences: model.Len()}
	bySentence := make(map[string]map[string]string, model.Len())
	seen := make(map[string]int, model.Len())

	for _, entry := range model.Entries {
		sentence := entry[model.Base]
		seen[sentence]++

		texts := make(map[string]string, len(entry))

		for code, text := range entry {
			if code == model.Base {
				continue
			}

			if text == "" {
				report.EmptyTranslations++

				continue
			}

			texts[code] = text
		}

		bySentence[sentence] = texts
	}

	for sentence, n := range seen {
		if n > 1 {
			report.Duplicates = append(report.Duplicates, sentence)
		}
	}

	slices.Sort(report.Duplicates)

	out := make(canonical.Translations, 0, len(bySentence))
	for _, sentence := range slices.Sorted(maps.Keys(bySentence)) {
		out = append(out, canonical.Sentence{Source: sentence, Texts: bySentence[sentence]})
	}

	return out, report
}

func render(tr canonical.Translations) (string, error) {
	data, err := persist.Marshal(persist.NewJSONCodec(), tr)
	if err != nil {
		return "", fmt.Errorf("render translations: %w", err)
	}

	return string(data), nil
}

// LineDiff returns a unified-style line diff of want and got, with "-" for
// lines only in want and "+" for lines only in got. Equal inputs give "".
func LineDiff(want, got string) string {
	if want == got {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(want, got)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder

	for _, d := range diffs {
		var marker string

		switch d.Type {
		case diffmatchpatch.DiffDelete:
			marker = "-"
		case diffmatchpatch.DiffInsert:
			marker = "+"
		case diffmatchpatch.DiffEqual:
			continue
		}

		for _, line := range strings.SplitAfter(d.Text, "\n") {
			if line == "" {
				continue
			}

			sb.WriteString(marker)
			sb.WriteString(strings.TrimSuffix(line, "\n"))
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}
