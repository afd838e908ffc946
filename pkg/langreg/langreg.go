// Package langreg maps language codes to human-readable display names.
//
// Only the base language is authoritative, so every other known language is
// rendered with an "(Unofficial)" suffix. Codes missing from the table resolve
// through a configurable [Fallback] instead of failing.
package langreg

import "strings"

const (
	// BaseLanguage is the default source-of-truth language code.
	BaseLanguage = "en"

	// UnknownName is the default display name for unrecognised codes.
	UnknownName = "LANG_STUB"

	// UnofficialSuffix marks translations that are not authoritative.
	UnofficialSuffix = " (Unofficial)"
)

// Registry looks up the bare display name of a language code.
type Registry interface {
	Lookup(code string) (string, bool)
}

// Fallback produces a display name for a code the registry does not know.
type Fallback func(code string) string

// Table is a static code to bare-name registry.
type Table map[string]string

// Lookup implements Registry.
func (t Table) Lookup(code string) (string, bool) {
	name, ok := t[code]

	return name, ok
}

// With returns a copy of the table with overrides applied on top.
func (t Table) With(overrides map[string]string) Table {
	merged := make(Table, len(t)+len(overrides))

	for code, name := range t {
		merged[code] = name
	}

	for code, name := range overrides {
		merged[code] = strings.TrimSuffix(name, UnofficialSuffix)
	}

	return merged
}

// Builtin returns the languages the game client ships with.
func Builtin() Table {
	return Table{
		"en":    "English",
		"fr":    "French",
		"ru":    "Русский",
		"es":    "Español",
		"pt":    "Português",
		"bg":    "Български",
		"it":    "Italiano",
		"pl":    "Polski",
		"zh_cn": "简体中文",
		"ro":    "Română",
	}
}

// StubFallback returns a fallback that always yields name.
func StubFallback(name string) Fallback {
	return func(string) string { return name }
}

// Resolver turns codes into display names using a registry and a fallback.
type Resolver struct {
	registry Registry
	fallback Fallback
	base     string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithFallback sets the fallback used for unknown codes.
func WithFallback(fb Fallback) Option {
	return func(r *Resolver) {
		if fb != nil {
			r.fallback = fb
		}
	}
}

// WithBaseLanguage sets the code whose name carries no suffix.
func WithBaseLanguage(code string) Option {
	return func(r *Resolver) {
		if code != "" {
			r.base = code
		}
	}
}

// NewResolver creates a Resolver. Without options the base language is "en"
// and unknown codes resolve to [UnknownName].
func NewResolver(registry Registry, opts ...Option) *Resolver {
	r := &Resolver{
		registry: registry,
		fallback: StubFallback(UnknownName),
		base:     BaseLanguage,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// DisplayName returns the display name of code and whether it was found in
// the registry. Unknown codes get the fallback value and known == false.
func (r *Resolver) DisplayName(code string) (name string, known bool) {
	bare, ok := r.registry.Lookup(code)
	if !ok {
		return r.fallback(code), false
	}

	if code == r.base {
		return bare, true
	}

	return bare + UnofficialSuffix, true
}
