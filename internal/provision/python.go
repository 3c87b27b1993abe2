package provision

import (
	"context"
	"fmt"
	"os/exec"
	"path/filepath"

	"github.com/rustyhook/rustyhook/internal/hook"
)

// PythonInstaller provisions an isolated venv and installs the requested
// tool plus its declared Dependencies into it.
//
// Grounded on original_source/src/toolchains/python.rs's PythonTool: locate
// a system `python3` first (its find_python probing order is mirrored by
// findSystemPython), falling back to a downloaded interpreter only when
// none is found (see download.go).
type PythonInstaller struct{}

func (PythonInstaller) Install(ctx context.Context, spec hook.EnvSpec, stagingDir string) ([]string, map[string]string, error) {
	python, err := findSystemPython()
	if err != nil {
		python, err = ensureDownloadedInterpreter(ctx, hook.LanguagePython, spec, stagingDir)
		if err != nil {
			return nil, nil, err
		}
	}

	venvDir := filepath.Join(stagingDir, "venv")
	if out, err := exec.CommandContext(ctx, python, "-m", "venv", venvDir).CombinedOutput(); err != nil {
		return nil, nil, fmt.Errorf("creating venv: %w: %s", err, out)
	}

	pip := filepath.Join(venvDir, "bin", "pip")
	pkgs := append([]string{spec.Tool}, spec.Dependencies...)
	if spec.Version != "" && spec.Version != "stable" {
		pkgs[0] = fmt.Sprintf("%s==%s", spec.Tool, spec.Version)
	}
	args := append([]string{"install", "--quiet"}, pkgs...)
	if out, err := exec.CommandContext(ctx, pip, args...).CombinedOutput(); err != nil {
		return nil, nil, fmt.Errorf("installing %v: %w: %s", pkgs, err, out)
	}

	binDirs, extraEnv := PythonInstaller{}.HandleFor(stagingDir)
	return binDirs, extraEnv, nil
}

func (PythonInstaller) HandleFor(root string) ([]string, map[string]string) {
	venvDir := filepath.Join(root, "venv")
	return []string{filepath.Join(venvDir, "bin")}, map[string]string{"VIRTUAL_ENV": venvDir}
}

func findSystemPython() (string, error) {
	for _, candidate := range []string{"python3.12", "python3.11", "python3.10", "python3.9", "python3", "python"} {
		if path, err := exec.LookPath(candidate); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("python 3 not found on PATH")
}
