package taint

import (
	"errors"
	"fmt"
)

// FieldError attributes a sanitization failure to a single struct field.
// Generated sanitizers wrap each field's error in one, so call sites can
// tell which field rejected the input while the underlying error stays
// whatever type the application's sanitizer returned.
type FieldError struct {
	Struct string // struct type name
	Field  string // field name
	Err    error  // the sanitizer's own error, opaque to this package
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("sanitize %s.%s: %v", e.Struct, e.Field, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// AsFieldError extracts a FieldError from err using errors.As internally.
func AsFieldError(err error) (*FieldError, bool) {
	if err == nil {
		return nil, false
	}
	var fe *FieldError
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
