package canonical

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ErrSchema is returned when the canonical file does not satisfy the schema.
var ErrSchema = errors.New("canonical file schema violation")

//go:embed schema.json
var schemaJSON []byte

// Violation is a single schema validation failure.
type Violation struct {
	Field       string
	Description string
}

func (v Violation) String() string {
	return v.Field + ": " + v.Description
}

// Check validates data against the canonical schema and returns every
// violation found. The error is non-nil only when data is not JSON at all.
func Check(data []byte) ([]Violation, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewBytesLoader(schemaJSON),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	if result.Valid() {
		return nil, nil
	}

	violations := make([]Violation, 0, len(result.Errors()))
	for _, verr := range result.Errors() {
		violations = append(violations, Violation{
			Field:       verr.Field(),
			Description: verr.Description(),
		})
	}

	return violations, nil
}

// Validate is like Check but folds violations into a single ErrSchema error.
func Validate(data []byte) error {
	violations, err := Check(data)
	if err != nil {
		return err
	}

	if len(violations) == 0 {
		return nil
	}

	parts := make([]string, 0, len(violations))
	for _, v := range violations {
		parts = append(parts, v.String())
	}

	return fmt.Errorf("%w: %s", ErrSchema, strings.Join(parts, "; "))
}
