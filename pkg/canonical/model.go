// Package canonical holds the nested translation structure: one entry per
// base-language sentence with all of its known translations.
package canonical

import (
	"maps"
	"slices"
	"strings"
)

// Entry maps a language code to the translated text of one sentence.
type Entry map[string]string

// Model is the loaded, immutable canonical structure.
type Model struct {
	// Base is the source-of-truth language code.
	Base string

	// Entries are sorted by base-language text. Ties keep document order.
	Entries []Entry

	// Languages is the sorted union of every code in the Languages section,
	// in any entry, and the base language.
	Languages []string

	// Names is the Languages section as it appeared in the document.
	Names map[string]string
}

// Len returns the number of entries.
func (m *Model) Len() int {
	return len(m.Entries)
}

// BaseText returns the base-language text of entry i.
func (m *Model) BaseText(i int) string {
	return m.Entries[i][m.Base]
}

// Load builds a Model from a decoded document. Every entry is guaranteed a
// base-language text: when absent it defaults to the sentence itself.
func Load(doc *Document, base string) *Model {
	entries := make([]Entry, 0, len(doc.Translations))
	langs := make(map[string]struct{}, len(doc.Languages)+1)
	langs[base] = struct{}{}

	for code := range doc.Languages {
		langs[code] = struct{}{}
	}

	for _, s := range doc.Translations {
		entry := make(Entry, len(s.Texts)+1)
		maps.Copy(entry, s.Texts)

		if _, ok := entry[base]; !ok {
			entry[base] = s.Source
		}

		for code := range entry {
			langs[code] = struct{}{}
		}

		entries = append(entries, entry)
	}

	slices.SortStableFunc(entries, func(a, b Entry) int {
		return strings.Compare(a[base], b[base])
	})

	names := make(map[string]string, len(doc.Languages))
	maps.Copy(names, doc.Languages)

	return &Model{
		Base:      base,
		Entries:   entries,
		Languages: slices.Sorted(maps.Keys(langs)),
		Names:     names,
	}
}
