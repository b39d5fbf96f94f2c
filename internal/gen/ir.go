// Package gen turns scanned struct definitions into generated Go source:
// the untrusted variant type, the wrap/sanitize implementations and the
// opt-in forwarded capabilities. This package is internal and not part of
// the public API.
package gen

import (
	"fmt"
	"sort"
	"strings"

	"github.com/taintguard/taint/internal/scan"
)

// Policy selects which sanitization strategy is emitted. It is a
// generation-time choice: the two strategies are distinct code paths in the
// output, never a runtime branch, so sanitization timing does not depend on
// which field fails.
type Policy int

const (
	// PolicyFailFast returns on the first field failure in declaration
	// order; later sanitizers do not run.
	PolicyFailFast Policy = iota
	// PolicyHarden runs every field's sanitizer and then returns the first
	// error in declaration order.
	PolicyHarden
)

// ParsePolicy maps the configuration spelling to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "fail-fast":
		return PolicyFailFast, nil
	case "harden":
		return PolicyHarden, nil
	default:
		return 0, fmt.Errorf("unknown policy %q (want fail-fast or harden)", s)
	}
}

// Capabilities that may be forwarded onto a generated variant. Forwarding is
// allow-list only; a variant never inherits the trusted type's behaviors.
const (
	DeriveSanitize = "sanitize" // field-by-field SanitizeValue under the selected policy
	DeriveClone    = "clone"    // shallow Clone
	DeriveRedact   = "redact"   // Stringer that never prints the value
)

// ParseDerive validates a derive allow-list.
func ParseDerive(list []string) ([]string, error) {
	seen := map[string]bool{}
	out := make([]string, 0, len(list))
	for _, d := range list {
		d = strings.TrimSpace(d)
		if d == "" {
			continue
		}
		switch d {
		case DeriveSanitize, DeriveClone, DeriveRedact:
		default:
			return nil, fmt.Errorf("unknown derive %q (want sanitize, clone or redact)", d)
		}
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	return out, nil
}

// TypeDef is the IR for one struct to generate a variant for.
type TypeDef struct {
	Name   string
	Policy Policy
	Derive []string
	Fields []Field
}

func (d TypeDef) derives(cap string) bool {
	for _, c := range d.Derive {
		if c == cap {
			return true
		}
	}
	return false
}

// Field maps one trusted field to its variant counterpart.
type Field struct {
	Name   string
	Type   string // declared type expression in the trusted struct
	Nested bool   // true when Type has its own untrusted variant
}

// BuildDefs resolves the requested type names against the scanned package
// and the per-struct configuration, producing the IR the renderer consumes.
// A field referencing another requested struct recurses into that struct's
// variant unless the referenced struct is marked as a leaf.
func BuildDefs(pkg *scan.Package, typeNames []string, cfg *Config) ([]TypeDef, error) {
	targets := map[string]bool{}
	for _, name := range typeNames {
		if _, ok := pkg.Structs[name]; !ok {
			known := make([]string, 0, len(pkg.Structs))
			for k := range pkg.Structs {
				known = append(known, k)
			}
			sort.Strings(known)
			return nil, fmt.Errorf("type %s: no struct definition found in package %s (have: %s)",
				name, pkg.Name, strings.Join(known, ", "))
		}
		targets[name] = true
	}

	defs := make([]TypeDef, 0, len(typeNames))
	for _, name := range typeNames {
		st := pkg.Structs[name]
		policy, err := ParsePolicy(cfg.PolicyFor(name))
		if err != nil {
			return nil, fmt.Errorf("type %s: %w", name, err)
		}
		derive, err := ParseDerive(cfg.DeriveFor(name))
		if err != nil {
			return nil, fmt.Errorf("type %s: %w", name, err)
		}
		def := TypeDef{Name: name, Policy: policy, Derive: derive}
		for _, f := range st.Fields {
			nested := targets[f.Type] && !cfg.IsLeaf(f.Type)
			def.Fields = append(def.Fields, Field{Name: f.Name, Type: f.Type, Nested: nested})
		}
		defs = append(defs, def)
	}
	return defs, nil
}
