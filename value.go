package taint

// Value marks a value as tainted: it originates from outside the program
// (user input, external config, network data) and an attacker may control
// part or all of it. The container is opaque; the only ways out are the
// sanitization gates (SanitizeWith, Sanitize) and, unless the module is
// built with the taint_strict tag, ExposeUnsanitized.
//
// A Value is a transparent single-field struct: wrapping changes the type,
// not the representation, so there is no allocation or runtime overhead.
type Value[Insecure any] struct {
	value Insecure
}

// Wrap marks v as tainted. Wrapping is always infallible: taint is a
// statement about provenance, not about the value itself.
func Wrap[Insecure any](v Insecure) Value[Insecure] {
	return Value[Insecure]{value: v}
}

// Value deliberately implements no Stringer, no marshaling and no comparison
// helpers. Forwarding any capability of the inner type onto tainted data is
// an explicit opt-in, via the generator's derive allow-list.

// SanitizeWith runs the tainted value through a caller-supplied sanitizer,
// consuming the wrapper. The sanitizer may change the value's type. The
// library enforces only that extraction goes through this gate; what the
// sanitizer does is up to the application.
func SanitizeWith[Insecure, Trusted any](v Value[Insecure], sanitizer func(Insecure) (Trusted, error)) (Trusted, error) {
	return sanitizer(v.value)
}

// Sanitizable is implemented by types that have one canonical sanitization
// procedure. Implementations must be deterministic for a given input, must
// return an error (not panic) on malformed input, and must not leave a
// partially trusted intermediate observable on failure.
type Sanitizable[Trusted any] interface {
	// SanitizeValue clears the taint, or reports why it cannot.
	SanitizeValue() (Trusted, error)
}

// Sanitize sanitizes a tainted value whose inner type carries its own
// canonical sanitization procedure.
func Sanitize[Trusted any, Insecure Sanitizable[Trusted]](v Value[Insecure]) (Trusted, error) {
	return v.value.SanitizeValue()
}
