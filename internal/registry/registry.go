// Package registry holds the static lookup table used to resolve legacy
// .pre-commit-config.yaml entries — which name a (repo URL, hook id) pair,
// not a language/entry directly — into the {language, tool, entry} triple
// the native Hook model requires.
//
// Grounded on original_source/src/config/compat.rs's
// find_precommit_hooks_for_repo, which hardcodes the same well-known
// repositories against a match statement; here it is a single table.
package registry

import "github.com/rustyhook/rustyhook/internal/hook"

// Entry is what the registry knows about a single legacy (repo, hook id)
// pair.
type Entry struct {
	Language       hook.Language
	Tool           string
	DefaultEntry   string
	DefaultVersion string
}

type key struct {
	repo string
	id   string
}

var table = map[key]Entry{
	{repo: "https://github.com/pre-commit/pre-commit-hooks", id: "check-yaml"}: {
		Language: hook.LanguageSystem, Tool: "rustyhook-builtin", DefaultEntry: "check-yaml",
	},
	{repo: "https://github.com/pre-commit/pre-commit-hooks", id: "check-toml"}: {
		Language: hook.LanguageSystem, Tool: "rustyhook-builtin", DefaultEntry: "check-toml",
	},
	{repo: "https://github.com/pre-commit/pre-commit-hooks", id: "check-json"}: {
		Language: hook.LanguageSystem, Tool: "rustyhook-builtin", DefaultEntry: "check-json",
	},
	{repo: "https://github.com/pre-commit/pre-commit-hooks", id: "check-xml"}: {
		Language: hook.LanguageSystem, Tool: "rustyhook-builtin", DefaultEntry: "check-xml",
	},
	{repo: "https://github.com/pre-commit/pre-commit-hooks", id: "check-merge-conflict"}: {
		Language: hook.LanguageSystem, Tool: "rustyhook-builtin", DefaultEntry: "check-merge-conflict",
	},
	{repo: "https://github.com/pre-commit/pre-commit-hooks", id: "check-case-conflict"}: {
		Language: hook.LanguageSystem, Tool: "rustyhook-builtin", DefaultEntry: "check-case-conflict",
	},
	{repo: "https://github.com/pre-commit/pre-commit-hooks", id: "check-added-large-files"}: {
		Language: hook.LanguageSystem, Tool: "rustyhook-builtin", DefaultEntry: "check-added-large-files",
	},
	{repo: "https://github.com/pre-commit/pre-commit-hooks", id: "detect-private-key"}: {
		Language: hook.LanguageSystem, Tool: "rustyhook-builtin", DefaultEntry: "detect-private-key",
	},
	{repo: "https://github.com/pre-commit/pre-commit-hooks", id: "end-of-file-fixer"}: {
		Language: hook.LanguageSystem, Tool: "rustyhook-builtin", DefaultEntry: "end-of-file-fixer",
	},
	{repo: "https://github.com/pre-commit/pre-commit-hooks", id: "trailing-whitespace"}: {
		Language: hook.LanguageSystem, Tool: "rustyhook-builtin", DefaultEntry: "trailing-whitespace",
	},
	{repo: "https://github.com/psf/black", id: "black"}: {
		Language: hook.LanguagePython, Tool: "black", DefaultEntry: "black", DefaultVersion: "stable",
	},
	{repo: "https://github.com/pycqa/isort", id: "isort"}: {
		Language: hook.LanguagePython, Tool: "isort", DefaultEntry: "isort", DefaultVersion: "stable",
	},
	{repo: "https://github.com/astral-sh/ruff-pre-commit", id: "ruff"}: {
		Language: hook.LanguagePython, Tool: "ruff", DefaultEntry: "ruff", DefaultVersion: "stable",
	},
	{repo: "https://github.com/astral-sh/ruff-pre-commit", id: "ruff-format"}: {
		Language: hook.LanguagePython, Tool: "ruff", DefaultEntry: "ruff format", DefaultVersion: "stable",
	},
	{repo: "https://github.com/pre-commit/mirrors-eslint", id: "eslint"}: {
		Language: hook.LanguageNode, Tool: "eslint", DefaultEntry: "eslint", DefaultVersion: "stable",
	},
	{repo: "https://github.com/biomejs/pre-commit", id: "biome-check"}: {
		Language: hook.LanguageNode, Tool: "@biomejs/biome", DefaultEntry: "biome check", DefaultVersion: "stable",
	},
	{repo: "https://github.com/rubocop/rubocop", id: "rubocop"}: {
		Language: hook.LanguageRuby, Tool: "rubocop", DefaultEntry: "rubocop", DefaultVersion: "stable",
	},
}

// Lookup returns the registered Entry for a legacy (repo, hook id) pair.
func Lookup(repoURL, hookID string) (Entry, bool) {
	e, ok := table[key{repo: repoURL, id: hookID}]
	return e, ok
}
