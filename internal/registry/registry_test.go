package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rustyhook/rustyhook/internal/hook"
)

func TestLookup_KnownEntry(t *testing.T) {
	entry, ok := Lookup("https://github.com/psf/black", "black")
	assert.True(t, ok)
	assert.Equal(t, hook.LanguagePython, entry.Language)
	assert.Equal(t, "black", entry.Tool)
}

func TestLookup_ToolDivergesFromEntry(t *testing.T) {
	entry, ok := Lookup("https://github.com/biomejs/pre-commit", "biome-check")
	assert.True(t, ok)
	assert.Equal(t, "@biomejs/biome", entry.Tool)
	assert.Equal(t, "biome check", entry.DefaultEntry)
}

func TestLookup_BuiltinHooksRouteToSystemLanguage(t *testing.T) {
	entry, ok := Lookup("https://github.com/pre-commit/pre-commit-hooks", "trailing-whitespace")
	assert.True(t, ok)
	assert.Equal(t, hook.LanguageSystem, entry.Language)
	assert.Equal(t, "rustyhook-builtin", entry.Tool)
}

func TestLookup_UnknownPairMisses(t *testing.T) {
	_, ok := Lookup("https://github.com/unknown/repo", "unknown-hook")
	assert.False(t, ok)
}

func TestLookup_KnownRepoWrongID(t *testing.T) {
	_, ok := Lookup("https://github.com/psf/black", "not-black")
	assert.False(t, ok)
}
