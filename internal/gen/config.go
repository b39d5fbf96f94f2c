package gen

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries the per-struct generation annotations: the derive
// allow-list, the sanitization policy and the leaf (end-of-recursion)
// marker. It is usually loaded from a .taintgen.yaml next to the package.
type Config struct {
	// Policy is the package-wide default; fail-fast when empty.
	Policy string `yaml:"policy"`
	// Derive is the package-wide default allow-list.
	Derive []string `yaml:"derive"`
	// Structs overrides settings per struct name.
	Structs map[string]StructConfig `yaml:"structs"`
}

// StructConfig is the per-struct annotation block.
type StructConfig struct {
	Derive []string `yaml:"derive"`
	Policy string   `yaml:"policy"`
	// Leaf forces this struct to be treated as a recursion leaf: fields of
	// this type elsewhere are wrapped whole instead of recursing into the
	// struct's own variant.
	Leaf bool `yaml:"leaf"`
}

// DefaultConfigFile is looked up in the scanned package directory when no
// explicit config path is given.
const DefaultConfigFile = ".taintgen.yaml"

// LoadConfig reads a YAML config file. A missing file yields an empty
// config only when the path is the default lookup; an explicitly named file
// must exist.
func LoadConfig(path string, explicit bool) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

// PolicyFor returns the policy spelling for a struct, falling back to the
// package-wide default.
func (c *Config) PolicyFor(name string) string {
	if sc, ok := c.Structs[name]; ok && sc.Policy != "" {
		return sc.Policy
	}
	return c.Policy
}

// DeriveFor returns the derive allow-list for a struct, falling back to the
// package-wide default.
func (c *Config) DeriveFor(name string) []string {
	if sc, ok := c.Structs[name]; ok && sc.Derive != nil {
		return sc.Derive
	}
	return c.Derive
}

// IsLeaf reports whether a struct is marked as a recursion leaf.
func (c *Config) IsLeaf(name string) bool {
	sc, ok := c.Structs[name]
	return ok && sc.Leaf
}
