package main

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/rustyhook/rustyhook/internal/cliapp"
)

// main resolves the repository root before any subcommand logic runs, then
// hands off to internal/cliapp, matching the teacher's
// cmd/scriptweaver/main.go boundary: canonicalize ambient inputs once, then
// translate the result straight into a process exit code.
func main() {
	repoRoot, err := repoRootFromGit()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cliapp.ExitSystemError)
	}

	os.Exit(cliapp.Execute(repoRoot, os.Args[1:]))
}

func repoRootFromGit() (string, error) {
	out, err := exec.Command("git", "rev-parse", "--show-toplevel").Output()
	if err != nil {
		return "", fmt.Errorf("resolving repository root (are you inside a git repository?): %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}
