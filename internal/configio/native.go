// Package configio loads rustyhook configuration in both its native dialect
// (a rustyhook.yaml describing Hooks directly) and the legacy
// .pre-commit-config.yaml dialect (a list of repos, each listing hook ids
// resolved through internal/registry).
//
// The strict-decode discipline (reject unknown fields, reject trailing
// documents) is adapted from the teacher's internal/cli/graph.go
// LoadGraphFromFile, ported from JSON's DisallowUnknownFields to yaml.v3's
// KnownFields decoder option.
package configio

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/rustyhook/rustyhook/internal/hook"
)

// LoadNative parses a native-dialect rustyhook.yaml at path into a Config.
func LoadNative(path string) (*hook.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening config: %w", err)
	}
	defer f.Close()

	var cfg hook.Config
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parsing native config: %w", err)
	}

	// A yaml.v3 decoder does not error on a second document in the same
	// stream by default; reject one explicitly the way the teacher's JSON
	// loader rejects trailing data.
	var trailing any
	if err := dec.Decode(&trailing); err != io.EOF {
		if err == nil {
			return nil, fmt.Errorf("parsing native config: trailing document")
		}
		return nil, fmt.Errorf("parsing native config: %w", err)
	}

	for i := range cfg.Hooks {
		if len(cfg.Hooks[i].Stages) == 0 && len(cfg.DefaultStages) > 0 {
			cfg.Hooks[i].Stages = cfg.DefaultStages
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// WriteNative serializes a Config back to native-dialect YAML at path.
func WriteNative(path string, cfg *hook.Config) error {
	buf, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling native config: %w", err)
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return fmt.Errorf("writing native config: %w", err)
	}
	return nil
}
