package gen_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taintguard/taint/internal/gen"
	"github.com/taintguard/taint/internal/scan"
)

func TestRenderWrappers_Inputs(t *testing.T) {
	out, err := gen.RenderWrappers("handlers", []scan.Func{{
		Name:   "Index",
		Inputs: true,
		Params: []scan.Param{
			{Name: "name", Type: "taint.Value[string]"},
			{Name: "id", Type: "taint.Value[int]"},
		},
		Results: []string{"string", "error"},
	}})
	require.NoError(t, err)

	s := string(out)
	require.Contains(t, s, "// Code generated by taintgen. DO NOT EDIT.")
	require.Contains(t, s, "func IndexRaw(name string, id int) (string, error) {")
	require.Contains(t, s, "return Index(taint.Wrap(name), taint.Wrap(id))")
}

func TestRenderWrappers_InputsNoResults(t *testing.T) {
	out, err := gen.RenderWrappers("handlers", []scan.Func{{
		Name:   "Record",
		Inputs: true,
		Params: []scan.Param{{Name: "line", Type: "taint.Value[string]"}},
	}})
	require.NoError(t, err)
	require.Contains(t, string(out), "func RecordRaw(line string) {")
	require.Contains(t, string(out), "Record(taint.Wrap(line))")
}

func TestRenderWrappers_InputsRejectsPlainParam(t *testing.T) {
	_, err := gen.RenderWrappers("handlers", []scan.Func{{
		Name:   "Index",
		Inputs: true,
		Params: []scan.Param{{Name: "name", Type: "string"}},
	}})
	require.ErrorContains(t, err, "requires every parameter to be taint.Value[...]")
}

func TestRenderWrappers_Output(t *testing.T) {
	out, err := gen.RenderWrappers("handlers", []scan.Func{{
		Name:    "ReadToken",
		Output:  true,
		Params:  []scan.Param{{Name: "path", Type: "string"}},
		Results: []string{"string", "error"},
	}})
	require.NoError(t, err)

	s := string(out)
	require.Contains(t, s, "func ReadTokenTainted(path string) (taint.Value[string], error) {")
	require.Contains(t, s, "v, err := ReadToken(path)")
	require.Contains(t, s, "return taint.Wrap(v), err")
}

func TestRenderWrappers_OutputSingleResult(t *testing.T) {
	out, err := gen.RenderWrappers("handlers", []scan.Func{{
		Name:    "Hostname",
		Output:  true,
		Results: []string{"string"},
	}})
	require.NoError(t, err)
	require.Contains(t, string(out), "func HostnameTainted() taint.Value[string] {")
	require.Contains(t, string(out), "return taint.Wrap(Hostname())")
}

func TestRenderWrappers_OutputRejectsBadResultShapes(t *testing.T) {
	cases := [][]string{
		nil,
		{"error"},
		{"string", "int"},
		{"string", "int", "error"},
	}
	for _, results := range cases {
		_, err := gen.RenderWrappers("handlers", []scan.Func{{
			Name:    "Bad",
			Output:  true,
			Results: results,
		}})
		require.ErrorContains(t, err, "exactly one non-error result", "results %v", results)
	}
}

func TestRenderWrappers_RejectsCombinedDirectives(t *testing.T) {
	_, err := gen.RenderWrappers("handlers", []scan.Func{{
		Name:   "Both",
		Inputs: true,
		Output: true,
	}})
	require.ErrorContains(t, err, "cannot be combined")
}
