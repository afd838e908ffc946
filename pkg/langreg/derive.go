package langreg

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// DeriveFallback returns a fallback that derives a native display name from
// the code itself (e.g. "de" -> "Deutsch (Unofficial)"). Codes that cannot be
// parsed as BCP 47 tags resolve to stub.
func DeriveFallback(stub string) Fallback {
	return func(code string) string {
		tag, err := language.Parse(strings.ReplaceAll(code, "_", "-"))
		if err != nil {
			return stub
		}

		name := display.Self.Name(tag)
		if name == "" {
			name = display.English.Tags().Name(tag)
		}

		if name == "" {
			return stub
		}

		return name + UnofficialSuffix
	}
}
