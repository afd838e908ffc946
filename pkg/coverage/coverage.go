// Package coverage summarizes how much of the canonical model each language translates.
package coverage

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/S74nk0/nhm-crowdin-parser/pkg/canonical"
)

const percentScale = 100

// Language is the coverage of one language.
type Language struct {
	Code       string
	Name       string
	Translated int
	Total      int
}

// Missing returns the number of untranslated sentences.
func (l Language) Missing() int {
	return l.Total - l.Translated
}

// Percent returns the translated share in [0, 100]. An empty model is fully covered.
func (l Language) Percent() float64 {
	if l.Total == 0 {
		return percentScale
	}

	return float64(l.Translated) * percentScale / float64(l.Total)
}

// Namer resolves display names.
type Namer interface {
	DisplayName(code string) (name string, known bool)
}

// Compute returns one row per model language, in model language order.
// Names come from the document's Languages section, then from names.
func Compute(model *canonical.Model, names Namer) []Language {
	rows := make([]Language, 0, len(model.Languages))

	for _, code := range model.Languages {
		translated := 0

		for _, entry := range model.Entries {
			if entry[code] != "" {
				translated++
			}
		}

		name, ok := model.Names[code]
		if !ok && names != nil {
			name, _ = names.DisplayName(code)
		}

		rows = append(rows, Language{
			Code:       code,
			Name:       name,
			Translated: translated,
			Total:      model.Len(),
		})
	}

	return rows
}

// Render writes rows as a table.
func Render(w io.Writer, rows []Language) error {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.DrawBorder = false
	tbl.Style().Options.SeparateColumns = false

	tbl.AppendHeader(table.Row{"Code", "Language", "Translated", "Missing", "Coverage"})

	for _, row := range rows {
		tbl.AppendRow(table.Row{
			row.Code,
			row.Name,
			humanize.Comma(int64(row.Translated)),
			humanize.Comma(int64(row.Missing())),
			fmt.Sprintf("%.1f%%", row.Percent()),
		})
	}

	total := 0
	if len(rows) > 0 {
		total = rows[0].Total
	}

	tbl.AppendFooter(table.Row{"", "Sentences", humanize.Comma(int64(total)), "", ""})

	_, err := fmt.Fprintln(w, tbl.Render())
	if err != nil {
		return fmt.Errorf("render coverage: %w", err)
	}

	return nil
}
