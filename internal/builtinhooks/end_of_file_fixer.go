package builtinhooks

import (
	"bytes"
	"context"
	"os"
)

// endOfFileFixer ensures every non-empty file ends with exactly one
// trailing newline, grounded on end_of_file_fixer.rs.
type endOfFileFixer struct{}

func (endOfFileFixer) Run(ctx context.Context, files []string, args []string) error {
	for _, f := range files {
		content, err := os.ReadFile(f)
		if err != nil {
			if os.IsPermission(err) {
				continue
			}
			return err
		}
		if len(content) == 0 {
			continue
		}
		want := append(append([]byte(nil), bytes.TrimRight(content, "\n")...), '\n')
		if bytes.Equal(want, content) {
			continue
		}
		if err := os.WriteFile(f, want, 0o644); err != nil {
			if os.IsPermission(err) {
				continue
			}
			return err
		}
	}
	return nil
}
