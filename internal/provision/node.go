package provision

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/rustyhook/rustyhook/internal/hook"
)

// NodeInstaller provisions a scoped node_modules tree via npm, grounded on
// original_source/src/toolchains/node.rs's NodeTool (which shells out to
// the system package manager rather than vendoring one).
type NodeInstaller struct{}

func (NodeInstaller) Install(ctx context.Context, spec hook.EnvSpec, stagingDir string) ([]string, map[string]string, error) {
	npm, err := exec.LookPath("npm")
	if err != nil {
		return nil, nil, fmt.Errorf("npm not found on PATH: %w", err)
	}

	if err := os.MkdirAll(stagingDir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("preparing node install dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(stagingDir, "package.json"), []byte(`{"name":"rustyhook-env","version":"0.0.0","private":true}`), 0o644); err != nil {
		return nil, nil, fmt.Errorf("writing package.json: %w", err)
	}

	pkg := spec.Tool
	if spec.Version != "" && spec.Version != "stable" {
		pkg = fmt.Sprintf("%s@%s", spec.Tool, spec.Version)
	}
	pkgs := append([]string{pkg}, spec.Dependencies...)

	cmd := exec.CommandContext(ctx, npm, append([]string{"install", "--no-save", "--no-audit", "--no-fund"}, pkgs...)...)
	cmd.Dir = stagingDir
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, nil, fmt.Errorf("npm install %v: %w: %s", pkgs, err, out)
	}

	binDirs, extraEnv := NodeInstaller{}.HandleFor(stagingDir)
	return binDirs, extraEnv, nil
}

func (NodeInstaller) HandleFor(root string) ([]string, map[string]string) {
	return []string{filepath.Join(root, "node_modules", ".bin")}, map[string]string{"NODE_PATH": filepath.Join(root, "node_modules")}
}
