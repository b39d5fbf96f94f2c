package scan_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taintguard/taint/internal/scan"
)

func writePkg(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, src := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644))
	}
	return dir
}

func TestDir_CollectsStructFields(t *testing.T) {
	dir := writePkg(t, map[string]string{
		"cfg.go": `package cfg

type NetworkConfig struct {
	Port          uint32
	ListenAddress string
	Tags          []string
	Limits        map[string]int
	TLS           *TLSConfig
}

type TLSConfig struct {
	CertFile string
}
`,
	})

	pkg, err := scan.Dir(dir)
	require.NoError(t, err)
	require.Equal(t, "cfg", pkg.Name)
	require.Len(t, pkg.Structs, 2)

	nc := pkg.Structs["NetworkConfig"]
	require.NotNil(t, nc)
	require.Equal(t, []scan.Field{
		{Name: "Port", Type: "uint32"},
		{Name: "ListenAddress", Type: "string"},
		{Name: "Tags", Type: "[]string"},
		{Name: "Limits", Type: "map[string]int"},
		{Name: "TLS", Type: "*TLSConfig"},
	}, nc.Fields)
}

func TestDir_SharedFieldDeclaration(t *testing.T) {
	dir := writePkg(t, map[string]string{
		"p.go": "package p\n\ntype Pair struct {\n\tA, B int\n}\n",
	})
	pkg, err := scan.Dir(dir)
	require.NoError(t, err)
	require.Equal(t, []scan.Field{{Name: "A", Type: "int"}, {Name: "B", Type: "int"}}, pkg.Structs["Pair"].Fields)
}

func TestDir_FailsClosedOnUnsupportedFieldShapes(t *testing.T) {
	cases := map[string]string{
		"chan field":      "package p\n\ntype S struct {\n\tC chan int\n}\n",
		"func field":      "package p\n\ntype S struct {\n\tF func() error\n}\n",
		"interface field": "package p\n\ntype S struct {\n\tI interface{ Close() error }\n}\n",
		"embedded field":  "package p\n\ntype T struct{}\n\ntype S struct {\n\tT\n}\n",
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			dir := writePkg(t, map[string]string{"p.go": src})
			_, err := scan.Dir(dir)
			require.Error(t, err)
		})
	}
}

func TestDir_SkipsTestFiles(t *testing.T) {
	dir := writePkg(t, map[string]string{
		"p.go":      "package p\n\ntype S struct{ N int }\n",
		"p_test.go": "package p\n\ntype FromTest struct{ C chan int }\n",
	})
	pkg, err := scan.Dir(dir)
	require.NoError(t, err)
	require.Contains(t, pkg.Structs, "S")
	require.NotContains(t, pkg.Structs, "FromTest")
}

func TestDir_CollectsDirectiveFuncs(t *testing.T) {
	dir := writePkg(t, map[string]string{
		"h.go": `package h

import taint "github.com/taintguard/taint"

//taint:inputs
func Index(name taint.Value[string], id taint.Value[int]) (string, error) {
	_ = name
	_ = id
	return "", nil
}

//taint:output
func ReadToken(path string) (string, error) {
	return path, nil
}

func unannotated(s string) string { return s }
`,
	})

	pkg, err := scan.Dir(dir)
	require.NoError(t, err)
	require.Len(t, pkg.Funcs, 2)

	byName := map[string]scan.Func{}
	for _, fn := range pkg.Funcs {
		byName[fn.Name] = fn
	}

	idx := byName["Index"]
	require.True(t, idx.Inputs)
	require.False(t, idx.Output)
	require.Equal(t, []scan.Param{
		{Name: "name", Type: "taint.Value[string]"},
		{Name: "id", Type: "taint.Value[int]"},
	}, idx.Params)
	require.Equal(t, []string{"string", "error"}, idx.Results)

	rt := byName["ReadToken"]
	require.True(t, rt.Output)
	require.Equal(t, []string{"string", "error"}, rt.Results)
}

func TestDir_NoPackage(t *testing.T) {
	_, err := scan.Dir(t.TempDir())
	require.Error(t, err)
}
