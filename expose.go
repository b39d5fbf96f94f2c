//go:build !taint_strict

package taint

// ExposeUnsanitized returns the inner value without sanitizing it. Using
// this bypasses the whole point of the library; it exists for interop and
// testing. Building with the taint_strict tag removes it entirely, so
// forbidden call sites fail to compile rather than slipping through review.
func (v Value[Insecure]) ExposeUnsanitized() Insecure {
	return v.value
}

// ExposeUnsanitized returns the inner value regardless of provenance,
// without sanitizing it. Removed under the taint_strict build tag.
func (m Maybe[Insecure]) ExposeUnsanitized() Insecure {
	return m.value
}
