package provision

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/rustyhook/rustyhook/internal/hook"
)

// RubyInstaller provisions gems into a per-fingerprint GEM_HOME using the
// system `gem` binary, grounded on
// original_source/src/toolchains/ruby.rs's shell-out-to-system-gem design.
type RubyInstaller struct{}

func (RubyInstaller) Install(ctx context.Context, spec hook.EnvSpec, stagingDir string) ([]string, map[string]string, error) {
	gem, err := exec.LookPath("gem")
	if err != nil {
		return nil, nil, fmt.Errorf("gem not found on PATH: %w", err)
	}

	gemHome := filepath.Join(stagingDir, "gems")
	if err := os.MkdirAll(gemHome, 0o755); err != nil {
		return nil, nil, fmt.Errorf("preparing gem home: %w", err)
	}

	pkgs := append([]string{spec.Tool}, spec.Dependencies...)
	for _, pkg := range pkgs {
		args := []string{"install", pkg, "--install-dir", gemHome, "--no-document"}
		if spec.Version != "" && spec.Version != "stable" && pkg == spec.Tool {
			args = append(args, "--version", spec.Version)
		}
		cmd := exec.CommandContext(ctx, gem, args...)
		cmd.Env = append(os.Environ(), "GEM_HOME="+gemHome)
		if out, err := cmd.CombinedOutput(); err != nil {
			return nil, nil, fmt.Errorf("gem install %s: %w: %s", pkg, err, out)
		}
	}

	binDirs, extraEnv := RubyInstaller{}.HandleFor(stagingDir)
	return binDirs, extraEnv, nil
}

func (RubyInstaller) HandleFor(root string) ([]string, map[string]string) {
	gemHome := filepath.Join(root, "gems")
	return []string{filepath.Join(gemHome, "bin")}, map[string]string{"GEM_HOME": gemHome}
}
