package builtinhooks

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// checkYAML rejects files that fail to parse as YAML. Grounded on
// check_yaml.rs, which parses with serde_yaml; here gopkg.in/yaml.v3 (the
// same decoder internal/configio already depends on) plays the same role.
type checkYAML struct{}

func (checkYAML) Run(ctx context.Context, files []string, args []string) error {
	for _, f := range files {
		content, err := os.ReadFile(f)
		if err != nil {
			return err
		}
		var v any
		if err := yaml.Unmarshal(content, &v); err != nil {
			return fmt.Errorf("invalid YAML in %s: %w", f, err)
		}
	}
	return nil
}
