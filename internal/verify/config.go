// Package verify orchestrates assertion verification across checker
// versions: it owns the per-version instance cache and the search for the
// newest version at which assertions start failing.
package verify

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// NextName is the synthetic version denoting the checker default: the
// newest, possibly unreleased language semantics. It is never configured
// explicitly.
const NextName = "next"

// VersionSpec names one configured checker version and the language version
// selector used to construct it.
type VersionSpec struct {
	Name      string `yaml:"name"`
	GoVersion string `yaml:"go"`
}

// Next is the implicit newest-of-all version.
var Next = VersionSpec{Name: NextName}

// Config is the verification run configuration.
type Config struct {
	// Versions lists the configured checker versions ordered oldest to
	// newest. Empty means single-version verification against the checker
	// default.
	Versions []VersionSpec `yaml:"versions"`
}

// LoadConfig reads and validates a yaml run configuration.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	seen := make(map[string]bool)
	for i, v := range c.Versions {
		if v.Name == "" {
			return fmt.Errorf("version %d has no name", i)
		}
		if v.Name == NextName {
			return fmt.Errorf("version name %q is reserved for the implicit newest version", NextName)
		}
		if v.GoVersion == "" {
			return fmt.Errorf("version %q has no go language version", v.Name)
		}
		if seen[v.Name] {
			return fmt.Errorf("version %q is configured twice", v.Name)
		}
		seen[v.Name] = true
	}
	return nil
}
