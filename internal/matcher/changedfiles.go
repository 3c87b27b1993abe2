package matcher

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"sort"
	"strings"
)

// ChangedFiles returns the sorted, deduplicated set of paths git reports as
// staged changes against HEAD, relative to repoRoot. This is the candidate
// set fed into each hook's FileMatcher for the pre-commit stage.
func ChangedFiles(ctx context.Context, repoRoot string) ([]string, error) {
	return diffNameStatus(ctx, repoRoot, "--cached", "--diff-filter=ACMR")
}

// AllTrackedFiles returns every path git tracks in repoRoot, sorted and
// deduplicated; it is the candidate set for `run --all-files`.
func AllTrackedFiles(ctx context.Context, repoRoot string) ([]string, error) {
	cmd := exec.CommandContext(ctx, "git", "ls-files", "-z")
	cmd.Dir = repoRoot
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("git ls-files: %w: %s", err, stderr.String())
	}
	return splitNulSorted(stdout.String()), nil
}

func diffNameStatus(ctx context.Context, repoRoot string, args ...string) ([]string, error) {
	full := append([]string{"diff", "--name-only", "-z"}, args...)
	cmd := exec.CommandContext(ctx, "git", full...)
	cmd.Dir = repoRoot
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("git diff: %w: %s", err, stderr.String())
	}
	return splitNulSorted(stdout.String()), nil
}

func splitNulSorted(raw string) []string {
	parts := strings.Split(strings.Trim(raw, "\x00"), "\x00")
	set := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		if p == "" {
			continue
		}
		set[p] = struct{}{}
	}
	out := make([]string, 0, len(set))
	for p := range set {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
