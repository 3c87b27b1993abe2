package convert

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LegacyHookDef mirrors a single hook entry under a legacy repo block.
// Field names/tags mirror .pre-commit-config.yaml, grounded on
// original_source/src/config/compat.rs's PreCommitHookDefinition.
type LegacyHookDef struct {
	ID                     string            `yaml:"id"`
	Name                   string            `yaml:"name,omitempty"`
	Language               string            `yaml:"language,omitempty"`
	Entry                  string            `yaml:"entry,omitempty"`
	Args                   []string          `yaml:"args,omitempty"`
	Files                  string            `yaml:"files,omitempty"`
	Exclude                string            `yaml:"exclude,omitempty"`
	Stages                 []string          `yaml:"stages,omitempty"`
	AdditionalDependencies []string          `yaml:"additional_dependencies,omitempty"`
	Env                    map[string]string `yaml:"env,omitempty"`
	AlwaysRun              bool              `yaml:"always_run,omitempty"`
	PassFilenames          *bool             `yaml:"pass_filenames,omitempty"`
}

// LegacyRepo mirrors one `- repo: ...` block.
type LegacyRepo struct {
	Repo  string          `yaml:"repo"`
	Rev   string          `yaml:"rev,omitempty"`
	Hooks []LegacyHookDef `yaml:"hooks"`
}

// LegacyFile mirrors the top-level .pre-commit-config.yaml document.
type LegacyFile struct {
	Repos         []LegacyRepo `yaml:"repos"`
	DefaultStages []string     `yaml:"default_stages,omitempty"`
	FailFast      bool         `yaml:"fail_fast,omitempty"`
	Exclude       string       `yaml:"exclude,omitempty"`
}

// LoadLegacy parses a .pre-commit-config.yaml at path.
//
// Parse errors here are treated the same as native parse errors: fatal and
// surfaced immediately (spec.md §4.1), never silently downgraded to a
// best-effort partial config.
func LoadLegacy(path string) (*LegacyFile, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening legacy config: %w", err)
	}

	var lf LegacyFile
	dec := yaml.NewDecoder(bytes.NewReader(buf))
	dec.KnownFields(true)
	if err := dec.Decode(&lf); err != nil {
		return nil, fmt.Errorf("parsing legacy config: %w", err)
	}
	return &lf, nil
}
