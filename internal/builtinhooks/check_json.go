package builtinhooks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// checkJSON rejects files that fail to parse as JSON, grounded on
// check_json.rs's serde_json::from_str check.
type checkJSON struct{}

func (checkJSON) Run(ctx context.Context, files []string, args []string) error {
	for _, f := range files {
		content, err := os.ReadFile(f)
		if err != nil {
			return err
		}
		var v any
		if err := json.Unmarshal(content, &v); err != nil {
			return fmt.Errorf("invalid JSON in %s: %w", f, err)
		}
	}
	return nil
}
