package builtinhooks

import (
	"context"
	"fmt"
	"strings"
)

// checkCaseConflict rejects a file set containing two paths that would
// collide on a case-insensitive filesystem, grounded on
// check_case_conflict.rs.
type checkCaseConflict struct{}

func (checkCaseConflict) Run(ctx context.Context, files []string, args []string) error {
	seen := make(map[string]string, len(files))
	var conflicts []string
	for _, f := range files {
		lower := strings.ToLower(f)
		if _, ok := seen[lower]; ok {
			conflicts = append(conflicts, f)
		} else {
			seen[lower] = f
		}
	}
	if len(conflicts) > 0 {
		return fmt.Errorf("case-insensitive filename conflicts found: %s", strings.Join(conflicts, ", "))
	}
	return nil
}
