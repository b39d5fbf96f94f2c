// Package source wraps values from canonical taint sources (serialized
// input, the process environment, argv) as tainted on their way into the
// program, so application code never holds an unwrapped external value.
package source

import (
	"os"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/taintguard/taint"
)

// JSON decodes data into T and returns it tainted. Decode errors are
// returned as-is; taint wrapping itself cannot fail.
func JSON[T any](data []byte) (taint.Value[T], error) {
	var v T
	if err := gojson.Unmarshal(data, &v); err != nil {
		var zero taint.Value[T]
		return zero, err
	}
	return taint.Wrap(v), nil
}

// YAML decodes data into T and returns it tainted.
func YAML[T any](data []byte) (taint.Value[T], error) {
	var v T
	if err := yaml.Unmarshal(data, &v); err != nil {
		var zero taint.Value[T]
		return zero, err
	}
	return taint.Wrap(v), nil
}

// JSONVariant decodes data into Trusted and immediately converts it into
// its untrusted variant, so no unwrapped struct escapes the decode
// boundary.
func JSONVariant[Insecure any, Trusted taint.IntoUntrustedVariant[Insecure]](data []byte) (Insecure, error) {
	var v Trusted
	if err := gojson.Unmarshal(data, &v); err != nil {
		var zero Insecure
		return zero, err
	}
	return v.ToUntrustedVariant(), nil
}

// YAMLVariant is JSONVariant for YAML input.
func YAMLVariant[Insecure any, Trusted taint.IntoUntrustedVariant[Insecure]](data []byte) (Insecure, error) {
	var v Trusted
	if err := yaml.Unmarshal(data, &v); err != nil {
		var zero Insecure
		return zero, err
	}
	return v.ToUntrustedVariant(), nil
}

// Env returns the named environment variable, tainted.
func Env(key string) taint.Value[string] {
	return taint.Wrap(os.Getenv(key))
}

// LookupEnv returns the named environment variable, tainted, and whether it
// was set.
func LookupEnv(key string) (taint.Value[string], bool) {
	v, ok := os.LookupEnv(key)
	return taint.Wrap(v), ok
}

// Args returns the process arguments (program name excluded), each tainted.
func Args() []taint.Value[string] {
	args := os.Args[1:]
	out := make([]taint.Value[string], 0, len(args))
	for _, a := range args {
		out = append(out, taint.Wrap(a))
	}
	return out
}
