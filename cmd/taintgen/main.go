// Command taintgen generates untrusted-variant types and taint boundary
// wrappers for Go packages, in the manner of stringer: point it at a
// package directory via go:generate and it writes a formatted source file.
//
//	taintgen variant --type NetworkConfig,TLSConfig -o config_untrusted.go
//	taintgen wrappers -o taint_wrappers.go
//
// Per-struct annotations (derive allow-list, sanitization policy, leaf
// markers) come from a .taintgen.yaml in the package directory or an
// explicit -config file.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/taintguard/taint/internal/gen"
	"github.com/taintguard/taint/internal/scan"
)

var (
	flagDir     string
	flagOut     string
	flagTypes   string
	flagPolicy  string
	flagDerive  string
	flagConfig  string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:           "taintgen",
	Short:         "Generate untrusted variants and taint boundary wrappers",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var variantCmd = &cobra.Command{
	Use:   "variant",
	Short: "Generate untrusted-variant types for the named structs",
	RunE:  runVariant,
}

var wrappersCmd = &cobra.Command{
	Use:   "wrappers",
	Short: "Generate adapters for //taint:inputs and //taint:output functions",
	RunE:  runWrappers,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDir, "dir", ".", "package directory to scan")
	rootCmd.PersistentFlags().StringVarP(&flagOut, "out", "o", "", "output filename (required)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable verbose logs")

	variantCmd.Flags().StringVar(&flagTypes, "type", "", "comma-separated struct names to generate variants for (required)")
	variantCmd.Flags().StringVar(&flagPolicy, "policy", "", "default sanitization policy: fail-fast or harden")
	variantCmd.Flags().StringVar(&flagDerive, "derive", "", "default derive allow-list: sanitize,clone,redact")
	variantCmd.Flags().StringVar(&flagConfig, "config", "", "per-struct config file (default: <dir>/.taintgen.yaml when present)")

	rootCmd.AddCommand(variantCmd, wrappersCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "taintgen: %v\n", err)
		os.Exit(1)
	}
}

func newLogger() *zap.Logger {
	if !flagVerbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func runVariant(cmd *cobra.Command, args []string) error {
	if flagTypes == "" || flagOut == "" {
		return fmt.Errorf("variant requires --type and -o")
	}
	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	cfg, err := loadConfig(logger)
	if err != nil {
		return err
	}
	if flagPolicy != "" {
		cfg.Policy = flagPolicy
	}
	if flagDerive != "" {
		cfg.Derive = splitCSV(flagDerive)
	}

	pkg, err := scan.Dir(flagDir)
	if err != nil {
		return err
	}
	types := splitCSV(flagTypes)
	logger.Debug("scanned package",
		zap.String("package", pkg.Name),
		zap.Int("structs", len(pkg.Structs)),
		zap.Strings("types", types))

	defs, err := gen.BuildDefs(pkg, types, cfg)
	if err != nil {
		return err
	}
	code, err := gen.Render(pkg.Name, defs)
	if err != nil {
		return err
	}
	return writeOutput(logger, code)
}

func runWrappers(cmd *cobra.Command, args []string) error {
	if flagOut == "" {
		return fmt.Errorf("wrappers requires -o")
	}
	logger := newLogger()
	defer func() { _ = logger.Sync() }()

	pkg, err := scan.Dir(flagDir)
	if err != nil {
		return err
	}
	if len(pkg.Funcs) == 0 {
		return fmt.Errorf("no //taint:inputs or //taint:output directives found in %s", flagDir)
	}
	logger.Debug("scanned package",
		zap.String("package", pkg.Name),
		zap.Int("annotated_funcs", len(pkg.Funcs)))

	code, err := gen.RenderWrappers(pkg.Name, pkg.Funcs)
	if err != nil {
		return err
	}
	return writeOutput(logger, code)
}

func loadConfig(logger *zap.Logger) (*gen.Config, error) {
	path := flagConfig
	explicit := path != ""
	if !explicit {
		path = filepath.Join(flagDir, gen.DefaultConfigFile)
	}
	cfg, err := gen.LoadConfig(path, explicit)
	if err != nil {
		return nil, err
	}
	logger.Debug("loaded config", zap.String("path", path), zap.Bool("explicit", explicit))
	return cfg, nil
}

func writeOutput(logger *zap.Logger, code []byte) error {
	if dir := filepath.Dir(flagOut); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output dir: %w", err)
		}
	}
	if err := os.WriteFile(flagOut, code, 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}
	logger.Debug("wrote generated file", zap.String("path", flagOut), zap.Int("bytes", len(code)))
	return nil
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
