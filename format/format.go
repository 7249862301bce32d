// Package format implements the pluggable "format" attribute registry:
// one Validator per Draft-07 format name, seeded at init time and
// overridable per schema Builder.
package format

// Validator reports whether s satisfies a named format. Validators never
// error: an unparseable value is simply not of that format.
type Validator func(s string) bool

// Registry maps format names to their Validator. New returns a private
// copy seeded with the built-in Draft-07 formats so a Builder can
// register or remove formats without disturbing other Builders.
type Registry map[string]Validator

// New returns a Registry seeded with every format this package ships.
func New() Registry {
	r := make(Registry, len(builtins))
	for name, v := range builtins {
		r[name] = v
	}
	return r
}

var builtins = map[string]Validator{}

// register is called from each format's own file's init().
func register(name string, v Validator) {
	builtins[name] = v
}
