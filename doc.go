// Package taint provides compile-time taint tracking: values from untrusted
// sources are wrapped in an opaque container that the type system refuses to
// hand back until an explicit sanitization step has run.
//
// - Value[T] marks a value tainted; SanitizeWith/Sanitize are the only gates out
// - Maybe[T] carries runtime provenance with the same gates
// - IntoUntrustedVariant relates a struct to its field-wise tainted variant
// - cmd/taintgen generates variants and sanitizers from struct definitions
// - source/ wraps JSON/YAML/env/argv input as tainted on the way in
//
// Design policy:
// - Keep only public APIs in the root package; put generator machinery under internal/.
// - Place input helpers under source/ and the CLI under cmd/taintgen.
// - The core never logs, never panics on malformed input, and supplies no
//   sanitization logic of its own; sanitizers come from the application.
//
// Typical usage:
//
//	v := taint.Wrap(userInput)
//	port, err := taint.SanitizeWith(v, parsePort)
//
//	cfg := loadConfig().ToUntrustedVariant()
//	trusted, err := cfg.SanitizeValue()
package taint
