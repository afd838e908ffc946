package canonical

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformed is returned when the canonical file is not valid JSON of the expected shape.
var ErrMalformed = errors.New("malformed canonical file")

// Sentence is one row of the Translations section: the base-language source
// text and its per-language translations.
type Sentence struct {
	Source string
	Texts  map[string]string
}

// Translations is the Translations section in document order. It encodes as
// a JSON object whose keys appear in slice order.
type Translations []Sentence

// Document is the on-disk canonical translation file.
type Document struct {
	Languages    map[string]string `json:"Languages"`
	Translations Translations      `json:"Translations"`
}

// UnmarshalJSON decodes the object while keeping the order of its keys.
// A repeated key replaces the earlier value in place.
func (t *Translations) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("%w: Translations must be an object", ErrMalformed)
	}

	out := Translations{}
	seen := make(map[string]int)

	for dec.More() {
		keyTok, keyErr := dec.Token()
		if keyErr != nil {
			return fmt.Errorf("%w: %w", ErrMalformed, keyErr)
		}

		source, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("%w: unexpected token %v", ErrMalformed, keyTok)
		}

		var texts map[string]string

		decodeErr := dec.Decode(&texts)
		if decodeErr != nil {
			return fmt.Errorf("%w: sentence %q: %w", ErrMalformed, source, decodeErr)
		}

		if texts == nil {
			texts = map[string]string{}
		}

		if idx, dup := seen[source]; dup {
			out[idx].Texts = texts

			continue
		}

		seen[source] = len(out)
		out = append(out, Sentence{Source: source, Texts: texts})
	}

	_, err = dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	*t = out

	return nil
}

// MarshalJSON encodes the section as an object in slice order. encoding/json
// would sort a map by key and drop first-seen order for duplicates, so the
// object is assembled here and only keys and per-sentence maps go through
// the encoder.
func (t Translations) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, s := range t {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := marshalNoEscape(s.Source)
		if err != nil {
			return nil, err
		}

		texts := s.Texts
		if texts == nil {
			texts = map[string]string{}
		}

		value, err := marshalNoEscape(texts)
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

func marshalNoEscape(v any) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	err := enc.Encode(v)
	if err != nil {
		return nil, fmt.Errorf("json encode: %w", err)
	}

	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Decode validates data against the canonical schema and decodes it.
func Decode(data []byte) (*Document, error) {
	err := Validate(data)
	if err != nil {
		return nil, err
	}

	var doc Document

	err = json.Unmarshal(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	return &doc, nil
}
