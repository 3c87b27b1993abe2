// Package builtinhooks implements the small library of system-language
// checks rustyhook ships with itself, so a config can reference them
// without provisioning anything.
//
// Grounded file-for-file on original_source/src/hooks/*.rs, which provides
// native Rust re-implementations of the most common
// github.com/pre-commit/pre-commit-hooks checks. The Rust HookFactory's
// create_hook(id, args) match statement becomes Lookup here; the Hook
// trait's run(&self, files) becomes the Check interface.
package builtinhooks

import "context"

// Tool is the sentinel EnvSpec.Tool value meaning "resolved here,
// in-process, no provisioning or PATH lookup required" — never passed to
// internal/provision's installers for real work.
const Tool = "rustyhook-builtin"

// Check is one built-in hook implementation.
type Check interface {
	// Run applies the check to files (already matched and resolved to
	// absolute or repo-root-relative paths). A non-nil error is reported as
	// a hook failure, matching the Rust trait's Result<(), HookError>.
	Run(ctx context.Context, files []string, args []string) error
}

var registry = map[string]Check{
	"check-yaml":              checkYAML{},
	"check-toml":              checkTOML{},
	"check-json":              checkJSON{},
	"check-xml":               checkXML{},
	"check-merge-conflict":    checkMergeConflict{},
	"check-case-conflict":     checkCaseConflict{},
	"check-added-large-files": checkAddedLargeFiles{},
	"detect-private-key":      detectPrivateKey{},
	"end-of-file-fixer":       endOfFileFixer{},
	"trailing-whitespace":     trailingWhitespace{},
}

// Lookup returns the Check registered under name, if any.
func Lookup(name string) (Check, bool) {
	c, ok := registry[name]
	return c, ok
}

// IsBuiltin reports whether name names a built-in check.
func IsBuiltin(name string) bool {
	_, ok := registry[name]
	return ok
}
