package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"

	"github.com/taintguard/taint/internal/scan"
)

const valuePrefix = "taint.Value["

// RenderWrappers emits boundary adapters for directive-annotated functions.
//
// //taint:inputs on a function whose parameters are all taint.Value[...]
// produces <Name>Raw, which wraps raw arguments and calls the function; the
// tainted signature stays the only way to reach the body.
//
// //taint:output on a function produces <Name>Tainted, which calls the
// function and taints its return value on exit. A trailing error result
// passes through untouched.
func RenderWrappers(pkgName string, funcs []scan.Func) ([]byte, error) {
	b := &bytes.Buffer{}
	fmt.Fprintf(b, "// Code generated by taintgen. DO NOT EDIT.\n\n")
	fmt.Fprintf(b, "package %s\n\n", pkgName)
	fmt.Fprintf(b, "import (\n\ttaint %q\n)\n", taintImport)

	for _, fn := range funcs {
		if fn.Inputs && fn.Output {
			return nil, fmt.Errorf("func %s: taint:inputs and taint:output cannot be combined on one function", fn.Name)
		}
		if fn.Inputs {
			if err := renderInputsWrapper(b, fn); err != nil {
				return nil, err
			}
		}
		if fn.Output {
			if err := renderOutputWrapper(b, fn); err != nil {
				return nil, err
			}
		}
	}

	src, err := format.Source(b.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated code: %w", err)
	}
	return src, nil
}

// innerValueType extracts T from taint.Value[T]; ok is false for anything
// else. The taint package must be imported unaliased in the scanned file.
func innerValueType(typ string) (string, bool) {
	if !strings.HasPrefix(typ, valuePrefix) || !strings.HasSuffix(typ, "]") {
		return "", false
	}
	return typ[len(valuePrefix) : len(typ)-1], true
}

func renderInputsWrapper(b *bytes.Buffer, fn scan.Func) error {
	params := make([]string, 0, len(fn.Params))
	args := make([]string, 0, len(fn.Params))
	for _, p := range fn.Params {
		inner, ok := innerValueType(p.Type)
		if !ok {
			return fmt.Errorf("func %s: taint:inputs requires every parameter to be taint.Value[...]; %s is %s",
				fn.Name, p.Name, p.Type)
		}
		params = append(params, p.Name+" "+inner)
		args = append(args, "taint.Wrap("+p.Name+")")
	}

	fmt.Fprintf(b, "\n// %sRaw wraps every argument as tainted and calls %s.\n", fn.Name, fn.Name)
	fmt.Fprintf(b, "func %sRaw(%s)%s {\n", fn.Name, strings.Join(params, ", "), resultSignature(fn.Results))
	if len(fn.Results) > 0 {
		fmt.Fprintf(b, "\treturn %s(%s)\n", fn.Name, strings.Join(args, ", "))
	} else {
		fmt.Fprintf(b, "\t%s(%s)\n", fn.Name, strings.Join(args, ", "))
	}
	fmt.Fprintf(b, "}\n")
	return nil
}

func renderOutputWrapper(b *bytes.Buffer, fn scan.Func) error {
	params := make([]string, 0, len(fn.Params))
	args := make([]string, 0, len(fn.Params))
	for _, p := range fn.Params {
		params = append(params, p.Name+" "+p.Type)
		args = append(args, p.Name)
	}
	call := fmt.Sprintf("%s(%s)", fn.Name, strings.Join(args, ", "))

	switch {
	case len(fn.Results) == 1 && fn.Results[0] != "error":
		fmt.Fprintf(b, "\n// %sTainted calls %s and taints its return value on exit.\n", fn.Name, fn.Name)
		fmt.Fprintf(b, "func %sTainted(%s) taint.Value[%s] {\n", fn.Name, strings.Join(params, ", "), fn.Results[0])
		fmt.Fprintf(b, "\treturn taint.Wrap(%s)\n}\n", call)
	case len(fn.Results) == 2 && fn.Results[1] == "error" && fn.Results[0] != "error":
		fmt.Fprintf(b, "\n// %sTainted calls %s and taints its return value on exit. The error\n", fn.Name, fn.Name)
		fmt.Fprintf(b, "// result passes through untouched.\n")
		fmt.Fprintf(b, "func %sTainted(%s) (taint.Value[%s], error) {\n", fn.Name, strings.Join(params, ", "), fn.Results[0])
		fmt.Fprintf(b, "\tv, err := %s\n", call)
		fmt.Fprintf(b, "\treturn taint.Wrap(v), err\n}\n")
	default:
		return fmt.Errorf("func %s: taint:output requires exactly one non-error result (optionally followed by error), got (%s)",
			fn.Name, strings.Join(fn.Results, ", "))
	}
	return nil
}

func resultSignature(results []string) string {
	switch len(results) {
	case 0:
		return ""
	case 1:
		return " " + results[0]
	default:
		return " (" + strings.Join(results, ", ") + ")"
	}
}
