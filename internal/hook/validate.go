package hook

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks struct-level invariants (required fields, enumerated
// Language) via go-playground/validator, then checks the invariants the
// struct tags cannot express: Files/Exclude must compile as RE2 regexes,
// and hook IDs must be unique within the Config.
func (c *Config) Validate() error {
	if err := instance().Struct(c); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}

	if c.Exclude != "" {
		if _, err := regexp.Compile(c.Exclude); err != nil {
			return fmt.Errorf("config: invalid exclude pattern: %w", err)
		}
	}

	seen := make(map[string]struct{}, len(c.Hooks))
	for i := range c.Hooks {
		h := &c.Hooks[i]
		if _, dup := seen[h.ID]; dup {
			return fmt.Errorf("config validation: duplicate hook id %q", h.ID)
		}
		seen[h.ID] = struct{}{}

		if h.Files != "" {
			if _, err := regexp.Compile(h.Files); err != nil {
				return fmt.Errorf("hook %q: invalid files pattern: %w", h.ID, err)
			}
		}
		if h.Exclude != "" {
			if _, err := regexp.Compile(h.Exclude); err != nil {
				return fmt.Errorf("hook %q: invalid exclude pattern: %w", h.ID, err)
			}
		}
	}
	return nil
}
