package taint

// Maybe holds a value whose trust status is only known at runtime, for
// example data that is conditionally sourced from an untrusted channel.
// Exactly one of the two provenances is active; the sanitization gates below
// treat both uniformly.
type Maybe[Insecure any] struct {
	value     Insecure
	untrusted bool
}

// WrapMaybe wraps v as maybe-tainted according to the untrusted flag.
func WrapMaybe[Insecure any](v Insecure, untrusted bool) Maybe[Insecure] {
	return Maybe[Insecure]{value: v, untrusted: untrusted}
}

// MaybeTrusted wraps an already-trusted value.
func MaybeTrusted[Insecure any](v Insecure) Maybe[Insecure] {
	return Maybe[Insecure]{value: v}
}

// MaybeTainted wraps a tainted value, keeping its taint.
func MaybeTainted[Insecure any](v Value[Insecure]) Maybe[Insecure] {
	return Maybe[Insecure]{value: v.value, untrusted: true}
}

// IsUntrusted reports whether the value came from an untrusted source.
func (m Maybe[Insecure]) IsUntrusted() bool { return m.untrusted }

// IsTrusted reports whether the value came from a trusted source.
func (m Maybe[Insecure]) IsTrusted() bool { return !m.untrusted }

// SanitizeMaybeWith sanitizes the value with the caller-supplied sanitizer,
// consuming the wrapper. The sanitizer runs for both provenances: a value
// that happens to be trusted takes exactly the same path as a tainted one,
// so the trusted branch can never silently skip validation the tainted
// branch enforces.
func SanitizeMaybeWith[Insecure, Trusted any](m Maybe[Insecure], sanitizer func(Insecure) (Trusted, error)) (Trusted, error) {
	return sanitizer(m.value)
}

// SanitizeMaybe sanitizes via the inner type's canonical procedure,
// uniformly for both provenances.
func SanitizeMaybe[Trusted any, Insecure Sanitizable[Trusted]](m Maybe[Insecure]) (Trusted, error) {
	return m.value.SanitizeValue()
}
