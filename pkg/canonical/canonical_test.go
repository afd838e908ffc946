package canonical_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/S74nk0/nhm-crowdin-parser/pkg/canonical"
)

const sample = `{
  "Languages": {"en": "English", "fr": "French"},
  "Translations": {
    "World": {},
    "Hello": {"fr": "Bonjour"}
  }
}`

func TestDecode_PreservesDocumentOrder(t *testing.T) {
	t.Parallel()

	doc, err := canonical.Decode([]byte(sample))
	require.NoError(t, err)

	require.Len(t, doc.Translations, 2)
	assert.Equal(t, "World", doc.Translations[0].Source)
	assert.Equal(t, "Hello", doc.Translations[1].Source)
	assert.Equal(t, map[string]string{"fr": "Bonjour"}, doc.Translations[1].Texts)
	assert.Equal(t, "French", doc.Languages["fr"])
}

func TestDecode_DuplicateKeyReplacesInPlace(t *testing.T) {
	t.Parallel()

	data := `{"Languages":{},"Translations":{"A":{"fr":"1"},"B":{},"A":{"fr":"2"}}}`

	doc, err := canonical.Decode([]byte(data))
	require.NoError(t, err)

	require.Len(t, doc.Translations, 2)
	assert.Equal(t, "A", doc.Translations[0].Source)
	assert.Equal(t, "2", doc.Translations[0].Texts["fr"])
}

func TestDecode_SchemaErrors(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"missing translations": `{"Languages":{}}`,
		"missing languages":    `{"Translations":{}}`,
		"translations array":   `{"Languages":{},"Translations":[]}`,
		"non-string text":      `{"Languages":{},"Translations":{"A":{"fr":1}}}`,
		"entry not object":     `{"Languages":{},"Translations":{"A":"x"}}`,
		"language name number": `{"Languages":{"en":1},"Translations":{}}`,
	}

	for name, data := range tests {
		_, err := canonical.Decode([]byte(data))
		require.ErrorIs(t, err, canonical.ErrSchema, name)
	}
}

func TestDecode_MalformedJSON(t *testing.T) {
	t.Parallel()

	_, err := canonical.Decode([]byte(`{"Languages":`))
	require.ErrorIs(t, err, canonical.ErrMalformed)
}

func TestCheck_ListsEveryViolation(t *testing.T) {
	t.Parallel()

	violations, err := canonical.Check([]byte(`{"Translations":{"A":{"fr":1},"B":{"de":true}}}`))
	require.NoError(t, err)
	assert.Len(t, violations, 3)

	violations, err = canonical.Check([]byte(sample))
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestLoad_SynthesisesBaseAndSorts(t *testing.T) {
	t.Parallel()

	doc, err := canonical.Decode([]byte(sample))
	require.NoError(t, err)

	model := canonical.Load(doc, "en")

	require.Equal(t, 2, model.Len())
	assert.Equal(t, canonical.Entry{"en": "Hello", "fr": "Bonjour"}, model.Entries[0])
	assert.Equal(t, canonical.Entry{"en": "World"}, model.Entries[1])
	assert.Equal(t, []string{"en", "fr"}, model.Languages)
	assert.Equal(t, "Hello", model.BaseText(0))
}

func TestLoad_ExplicitBaseTextWins(t *testing.T) {
	t.Parallel()

	doc := &canonical.Document{
		Languages: map[string]string{},
		Translations: canonical.Translations{
			{Source: "b", Texts: map[string]string{"en": "a-override"}},
			{Source: "a", Texts: map[string]string{}},
		},
	}

	model := canonical.Load(doc, "en")

	assert.Equal(t, "a", model.BaseText(0))
	assert.Equal(t, "a-override", model.BaseText(1))
}

func TestLoad_StableTieBreak(t *testing.T) {
	t.Parallel()

	doc := &canonical.Document{
		Languages: map[string]string{"en": "English"},
		Translations: canonical.Translations{
			{Source: "z", Texts: map[string]string{"fr": "zz"}},
			{Source: "first", Texts: map[string]string{"en": "same", "fr": "1"}},
			{Source: "second", Texts: map[string]string{"en": "same", "fr": "2"}},
			{Source: "a", Texts: map[string]string{}},
		},
	}

	model := canonical.Load(doc, "en")

	require.Equal(t, 4, model.Len())
	assert.Equal(t, "a", model.BaseText(0))
	assert.Equal(t, "1", model.Entries[1]["fr"])
	assert.Equal(t, "2", model.Entries[2]["fr"])
	assert.Equal(t, "z", model.BaseText(3))
}

func TestLoad_LanguageUnion(t *testing.T) {
	t.Parallel()

	doc := &canonical.Document{
		Languages: map[string]string{"ru": "Russian"},
		Translations: canonical.Translations{
			{Source: "x", Texts: map[string]string{"de": "X"}},
		},
	}

	model := canonical.Load(doc, "en")

	assert.Equal(t, []string{"de", "en", "ru"}, model.Languages)
	assert.Equal(t, map[string]string{"ru": "Russian"}, model.Names)
}

func TestLoad_Empty(t *testing.T) {
	t.Parallel()

	model := canonical.Load(&canonical.Document{}, "en")

	assert.Equal(t, 0, model.Len())
	assert.Equal(t, []string{"en"}, model.Languages)
}

func TestTranslations_MarshalKeepsOrderAndHTML(t *testing.T) {
	t.Parallel()

	tr := canonical.Translations{
		{Source: "b <i>", Texts: map[string]string{"fr": "&"}},
		{Source: "a", Texts: nil},
	}

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	require.NoError(t, enc.Encode(tr))

	assert.Equal(t, `{"b <i>":{"fr":"&"},"a":{}}`+"\n", buf.String())
}
