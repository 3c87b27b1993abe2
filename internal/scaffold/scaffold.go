// Package scaffold emits a starter native configuration file, backing the
// `rustyhook init` subcommand (spec.md §6).
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/rustyhook/rustyhook/internal/hook"
)

// Starter returns a minimal-but-useful Config: the built-in whitespace and
// merge-conflict checks, which need no provisioned toolchain and so work
// the moment the file is written.
func Starter() *hook.Config {
	return &hook.Config{
		Hooks: []hook.Hook{
			{
				ID:       "trailing-whitespace",
				Language: hook.LanguageSystem,
				Entry:    "trailing-whitespace",
			},
			{
				ID:       "end-of-file-fixer",
				Language: hook.LanguageSystem,
				Entry:    "end-of-file-fixer",
			},
			{
				ID:       "check-merge-conflict",
				Language: hook.LanguageSystem,
				Entry:    "check-merge-conflict",
			},
		},
	}
}

// Write scaffolds a starter config at path, refusing to overwrite an
// existing file unless force is set.
func Write(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	buf, err := yaml.Marshal(Starter())
	if err != nil {
		return fmt.Errorf("marshaling starter config: %w", err)
	}
	if err := os.WriteFile(path, buf, 0o644); err != nil {
		return fmt.Errorf("writing starter config: %w", err)
	}
	return nil
}
