package source_test

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"

	taint "github.com/taintguard/taint"
	"github.com/taintguard/taint/source"
)

type netCfg struct {
	Port int    `json:"port" yaml:"port"`
	Addr string `json:"addr" yaml:"addr"`
}

type netCfgUntrusted struct {
	Port taint.Value[int]
	Addr taint.Value[string]
}

func (c netCfg) ToUntrustedVariant() netCfgUntrusted {
	return netCfgUntrusted{
		Port: taint.Wrap(c.Port),
		Addr: taint.Wrap(c.Addr),
	}
}

func TestJSON_WrapsDecodedValue(t *testing.T) {
	v, err := source.JSON[netCfg]([]byte(`{"port":8080,"addr":"0.0.0.0"}`))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	got, err := taint.SanitizeWith(v, func(c netCfg) (netCfg, error) { return c, nil })
	if err != nil {
		t.Fatalf("sanitize failed: %v", err)
	}
	want := netCfg{Port: 8080, Addr: "0.0.0.0"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("decoded value mismatch (-want +got):\n%s", diff)
	}
}

func TestJSON_DecodeErrorPassesThrough(t *testing.T) {
	if _, err := source.JSON[netCfg]([]byte(`{"port":`)); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestYAML_WrapsDecodedValue(t *testing.T) {
	v, err := source.YAML[netCfg]([]byte("port: 443\naddr: localhost\n"))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	got, err := taint.SanitizeWith(v, func(c netCfg) (netCfg, error) { return c, nil })
	if err != nil || got.Port != 443 || got.Addr != "localhost" {
		t.Fatalf("got %+v/%v", got, err)
	}
}

func TestJSONVariant_NoUnwrappedStructEscapes(t *testing.T) {
	u, err := source.JSONVariant[netCfgUntrusted, netCfg]([]byte(`{"port":22,"addr":"bastion"}`))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	port, err := taint.SanitizeWith(u.Port, func(p int) (int, error) { return p, nil })
	if err != nil || port != 22 {
		t.Fatalf("got %d/%v", port, err)
	}
	addr, err := taint.SanitizeWith(u.Addr, func(a string) (string, error) { return a, nil })
	if err != nil || addr != "bastion" {
		t.Fatalf("got %q/%v", addr, err)
	}
}

func TestYAMLVariant_DecodeErrorYieldsZeroVariant(t *testing.T) {
	if _, err := source.YAMLVariant[netCfgUntrusted, netCfg]([]byte("port: [")); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestEnv_Tainted(t *testing.T) {
	t.Setenv("TAINT_SOURCE_TEST", "sekrit")
	got, err := taint.SanitizeWith(source.Env("TAINT_SOURCE_TEST"), func(s string) (string, error) { return s, nil })
	if err != nil || got != "sekrit" {
		t.Fatalf("got %q/%v", got, err)
	}

	if _, ok := source.LookupEnv("TAINT_SOURCE_TEST"); !ok {
		t.Fatalf("expected variable to be present")
	}
	if _, ok := source.LookupEnv("TAINT_SOURCE_TEST_MISSING"); ok {
		t.Fatalf("expected variable to be absent")
	}
}

func TestArgs_TaintedAndExcludesProgramName(t *testing.T) {
	saved := os.Args
	defer func() { os.Args = saved }()
	os.Args = []string{"prog", "--listen", "0.0.0.0"}

	args := source.Args()
	if len(args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(args))
	}
	got, err := taint.SanitizeWith(args[0], func(s string) (string, error) { return s, nil })
	if err != nil || got != "--listen" {
		t.Fatalf("got %q/%v", got, err)
	}
}
