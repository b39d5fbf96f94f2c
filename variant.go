package taint

// IntoUntrustedVariant relates a trusted struct type to its structurally
// isomorphic untrusted variant: same fields, same order, every leaf wrapped
// in Value and every nested struct replaced by its own variant. taintgen
// generates the implementation; hand-written implementations are fine too.
type IntoUntrustedVariant[Insecure any] interface {
	// ToUntrustedVariant wraps every field. This is the taint-introduction
	// step: value-preserving and always infallible, no sanitization runs.
	ToUntrustedVariant() Insecure
}

// The reverse direction, reconstructing the trusted struct by sanitizing
// every field, is the variant's Sanitizable implementation: a generated
// variant U for struct S satisfies Sanitizable[S].

// ToUntrusted converts a trusted struct into its untrusted variant.
func ToUntrusted[Insecure any, Trusted IntoUntrustedVariant[Insecure]](v Trusted) Insecure {
	return v.ToUntrustedVariant()
}

// VariantOf converts a tainted struct as a whole into its field-wise
// tainted variant. No taint is cleared: every field of the result is still
// wrapped.
func VariantOf[Insecure any, Trusted IntoUntrustedVariant[Insecure]](v Value[Trusted]) Insecure {
	return v.value.ToUntrustedVariant()
}
