package gen

import (
	"bytes"
	"fmt"
	"go/format"
)

const taintImport = "github.com/taintguard/taint"

// Render emits the generated source for the given package and type
// definitions: one untrusted variant struct per TypeDef plus its wrap and
// sanitize implementations. Output is gofmt-formatted; a formatting failure
// means the renderer produced invalid Go and is reported as an error.
func Render(pkgName string, defs []TypeDef) ([]byte, error) {
	b := &bytes.Buffer{}
	fmt.Fprintf(b, "// Code generated by taintgen. DO NOT EDIT.\n\n")
	fmt.Fprintf(b, "package %s\n", pkgName)
	if usesTaint(defs) {
		fmt.Fprintf(b, "\nimport (\n\ttaint %q\n)\n", taintImport)
	}

	for _, def := range defs {
		renderVariant(b, def)
		renderWrap(b, def)
		renderSanitizeWith(b, def)
		if def.derives(DeriveSanitize) {
			renderSanitizeValue(b, def)
		}
		if def.derives(DeriveClone) {
			renderClone(b, def)
		}
		if def.derives(DeriveRedact) {
			renderRedact(b, def)
		}
	}

	src, err := format.Source(b.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated code: %w", err)
	}
	return src, nil
}

func variantName(name string) string { return name + "Untrusted" }

// usesTaint reports whether the emitted code will reference the taint
// package: any wrapped leaf field, or any generated field-by-field
// sanitizer (FieldError). A tree of purely nested, sanitize-less variants
// would otherwise leave the import dangling.
func usesTaint(defs []TypeDef) bool {
	for _, def := range defs {
		if def.derives(DeriveSanitize) && len(def.Fields) > 0 {
			return true
		}
		for _, f := range def.Fields {
			if !f.Nested {
				return true
			}
		}
	}
	return false
}

// variantFieldType maps a trusted field type point-wise: a leaf becomes
// Value[T], a type with its own variant becomes that variant (never a
// double wrap).
func (f Field) variantFieldType() string {
	if f.Nested {
		return variantName(f.Type)
	}
	return "taint.Value[" + f.Type + "]"
}

func renderVariant(b *bytes.Buffer, def TypeDef) {
	v := variantName(def.Name)
	fmt.Fprintf(b, "\n// %s is the untrusted variant of %s: structurally identical, with\n", v, def.Name)
	fmt.Fprintf(b, "// every field wrapped as tainted.\n")
	fmt.Fprintf(b, "type %s struct {\n", v)
	for _, f := range def.Fields {
		fmt.Fprintf(b, "\t%s %s\n", f.Name, f.variantFieldType())
	}
	fmt.Fprintf(b, "}\n")
}

func renderWrap(b *bytes.Buffer, def TypeDef) {
	v := variantName(def.Name)
	fmt.Fprintf(b, "\n// ToUntrustedVariant wraps every field of s as tainted. No sanitization\n")
	fmt.Fprintf(b, "// runs; wrapping is value-preserving and infallible.\n")
	fmt.Fprintf(b, "func (s %s) ToUntrustedVariant() %s {\n", def.Name, v)
	fmt.Fprintf(b, "\treturn %s{\n", v)
	for _, f := range def.Fields {
		if f.Nested {
			fmt.Fprintf(b, "\t\t%s: s.%s.ToUntrustedVariant(),\n", f.Name, f.Name)
		} else {
			fmt.Fprintf(b, "\t\t%s: taint.Wrap(s.%s),\n", f.Name, f.Name)
		}
	}
	fmt.Fprintf(b, "\t}\n}\n")
}

func renderSanitizeWith(b *bytes.Buffer, def TypeDef) {
	v := variantName(def.Name)
	fmt.Fprintf(b, "\n// SanitizeWith sanitizes the whole variant with a caller-supplied sanitizer.\n")
	fmt.Fprintf(b, "func (u %s) SanitizeWith(sanitizer func(%s) (%s, error)) (%s, error) {\n", v, v, def.Name, def.Name)
	fmt.Fprintf(b, "\treturn sanitizer(u)\n}\n")
}

// fieldSanitizeCall is the per-field sanitization expression: a nested
// variant recurses into its own SanitizeValue, a leaf goes through the
// field type's canonical sanitizer.
func (f Field) fieldSanitizeCall() string {
	if f.Nested {
		return fmt.Sprintf("u.%s.SanitizeValue()", f.Name)
	}
	return fmt.Sprintf("taint.Sanitize[%s](u.%s)", f.Type, f.Name)
}

func renderSanitizeValue(b *bytes.Buffer, def TypeDef) {
	switch def.Policy {
	case PolicyHarden:
		renderSanitizeHarden(b, def)
	default:
		renderSanitizeFailFast(b, def)
	}
}

func renderSanitizeFailFast(b *bytes.Buffer, def TypeDef) {
	v := variantName(def.Name)
	fmt.Fprintf(b, "\n// SanitizeValue sanitizes every field in declaration order and\n")
	fmt.Fprintf(b, "// reassembles %s, stopping at the first failure.\n", def.Name)
	fmt.Fprintf(b, "func (u %s) SanitizeValue() (%s, error) {\n", v, def.Name)
	for _, f := range def.Fields {
		fmt.Fprintf(b, "\tv%s, err := %s\n", f.Name, f.fieldSanitizeCall())
		fmt.Fprintf(b, "\tif err != nil {\n")
		fmt.Fprintf(b, "\t\treturn %s{}, &taint.FieldError{Struct: %q, Field: %q, Err: err}\n", def.Name, def.Name, f.Name)
		fmt.Fprintf(b, "\t}\n")
	}
	renderAssemble(b, def)
	fmt.Fprintf(b, "}\n")
}

func renderSanitizeHarden(b *bytes.Buffer, def TypeDef) {
	v := variantName(def.Name)
	fmt.Fprintf(b, "\n// SanitizeValue runs every field's sanitizer regardless of earlier\n")
	fmt.Fprintf(b, "// failures, so sanitization time does not depend on which field fails,\n")
	fmt.Fprintf(b, "// then reassembles %s or returns the first error in declaration order.\n", def.Name)
	fmt.Fprintf(b, "func (u %s) SanitizeValue() (%s, error) {\n", v, def.Name)
	for _, f := range def.Fields {
		fmt.Fprintf(b, "\tv%s, err%s := %s\n", f.Name, f.Name, f.fieldSanitizeCall())
	}
	for _, f := range def.Fields {
		fmt.Fprintf(b, "\tif err%s != nil {\n", f.Name)
		fmt.Fprintf(b, "\t\treturn %s{}, &taint.FieldError{Struct: %q, Field: %q, Err: err%s}\n", def.Name, def.Name, f.Name, f.Name)
		fmt.Fprintf(b, "\t}\n")
	}
	renderAssemble(b, def)
	fmt.Fprintf(b, "}\n")
}

func renderAssemble(b *bytes.Buffer, def TypeDef) {
	fmt.Fprintf(b, "\treturn %s{\n", def.Name)
	for _, f := range def.Fields {
		fmt.Fprintf(b, "\t\t%s: v%s,\n", f.Name, f.Name)
	}
	fmt.Fprintf(b, "\t}, nil\n")
}

func renderClone(b *bytes.Buffer, def TypeDef) {
	v := variantName(def.Name)
	fmt.Fprintf(b, "\n// Clone returns a shallow copy of the variant.\n")
	fmt.Fprintf(b, "func (u %s) Clone() %s {\n\treturn u\n}\n", v, v)
}

func renderRedact(b *bytes.Buffer, def TypeDef) {
	v := variantName(def.Name)
	fmt.Fprintf(b, "\n// String identifies the variant without revealing tainted contents.\n")
	fmt.Fprintf(b, "func (u %s) String() string {\n\treturn %q\n}\n", v, v+"(tainted)")
}
