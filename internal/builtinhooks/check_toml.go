package builtinhooks

import (
	"context"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// checkTOML rejects files that fail to parse as TOML. check_toml.rs does a
// hand-rolled key-value/line scan rather than a real parser; a proper TOML
// library is available in the example pack
// (jinterlante1206-AleutianLocal's go.mod), so this uses that instead of
// reproducing the original's approximate check.
type checkTOML struct{}

func (checkTOML) Run(ctx context.Context, files []string, args []string) error {
	for _, f := range files {
		content, err := os.ReadFile(f)
		if err != nil {
			return err
		}
		var v map[string]any
		if err := toml.Unmarshal(content, &v); err != nil {
			return fmt.Errorf("invalid TOML in %s: %w", f, err)
		}
	}
	return nil
}
