package builtinhooks

import (
	"bytes"
	"context"
	"fmt"
	"os"
)

// checkMergeConflict rejects files containing unresolved conflict
// markers, grounded on check_merge_conflict.rs.
type checkMergeConflict struct{}

var conflictMarkers = [][]byte{
	[]byte("<<<<<<<"),
	[]byte("======="),
	[]byte(">>>>>>>"),
}

func (checkMergeConflict) Run(ctx context.Context, files []string, args []string) error {
	for _, f := range files {
		content, err := os.ReadFile(f)
		if err != nil {
			return err
		}
		for _, marker := range conflictMarkers {
			if bytes.Contains(content, marker) {
				return fmt.Errorf("merge conflict markers found in %s", f)
			}
		}
	}
	return nil
}
