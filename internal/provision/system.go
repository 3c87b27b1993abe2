package provision

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rustyhook/rustyhook/internal/builtinhooks"
	"github.com/rustyhook/rustyhook/internal/hook"
)

// SystemInstaller does no installation: it verifies the requested command
// exists on PATH, matching original_source/src/toolchains/system.rs's
// setup(), which does nothing beyond a `which` lookup.
//
// A Tool of builtinhooks.Tool is a special case: these are the built-in
// checks in internal/builtinhooks, resolved in-process by internal/engine
// without ever reaching the dispatcher, so no PATH lookup applies.
type SystemInstaller struct{}

// BuiltinTool re-exports builtinhooks.Tool for callers that only import
// internal/provision.
const BuiltinTool = builtinhooks.Tool

func (SystemInstaller) Install(ctx context.Context, spec hook.EnvSpec, stagingDir string) ([]string, map[string]string, error) {
	if spec.Tool == BuiltinTool {
		return nil, nil, nil
	}
	cmd := firstWord(spec.Tool)
	if _, err := exec.LookPath(cmd); err != nil {
		return nil, nil, fmt.Errorf("command %q not found on PATH: %w", cmd, err)
	}
	return nil, nil, nil
}

func (SystemInstaller) HandleFor(root string) ([]string, map[string]string) {
	return nil, nil
}

func firstWord(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return s
	}
	return fields[0]
}
