package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyhook/rustyhook/internal/configio"
	"github.com/rustyhook/rustyhook/internal/hook"
)

func TestToNative_ExplicitLanguageWins(t *testing.T) {
	lf := &configio.LegacyFile{Repos: []configio.LegacyRepo{{
		Repo: "https://example.com/whatever",
		Hooks: []configio.LegacyHookDef{
			{ID: "custom", Language: "node", Entry: "custom-tool"},
		},
	}}}

	cfg, warnings, err := ToNative(lf)
	require.NoError(t, err)
	require.Empty(t, warnings)
	require.Len(t, cfg.Hooks, 1)
	assert.Equal(t, hook.LanguageNode, cfg.Hooks[0].Language)
	assert.Equal(t, "custom-tool", cfg.Hooks[0].Entry)
}

func TestToNative_ExplicitScriptLanguageMapsToSystem(t *testing.T) {
	lf := &configio.LegacyFile{Repos: []configio.LegacyRepo{{
		Repo:  "local",
		Hooks: []configio.LegacyHookDef{{ID: "custom", Language: "script", Entry: "./run.sh"}},
	}}}

	cfg, _, err := ToNative(lf)
	require.NoError(t, err)
	assert.Equal(t, hook.LanguageSystem, cfg.Hooks[0].Language)
	assert.Equal(t, "./run.sh", cfg.Hooks[0].Entry)
}

func TestToNative_ExplicitLanguageRequiresEntry(t *testing.T) {
	lf := &configio.LegacyFile{Repos: []configio.LegacyRepo{{
		Repo:  "local",
		Hooks: []configio.LegacyHookDef{{ID: "custom", Language: "node"}},
	}}}

	_, _, err := ToNative(lf)
	assert.ErrorContains(t, err, "requires entry")
}

func TestToNative_RegistryLookupFillsInDefaults(t *testing.T) {
	lf := &configio.LegacyFile{Repos: []configio.LegacyRepo{{
		Repo:  "https://github.com/psf/black",
		Hooks: []configio.LegacyHookDef{{ID: "black"}},
	}}}

	cfg, warnings, err := ToNative(lf)
	require.NoError(t, err)
	require.Empty(t, warnings)
	assert.Equal(t, hook.LanguagePython, cfg.Hooks[0].Language)
	assert.Equal(t, "black", cfg.Hooks[0].Tool)
	assert.Equal(t, "stable", cfg.Hooks[0].Version)
}

func TestToNative_RegistryLookupRespectsOverriddenEntry(t *testing.T) {
	lf := &configio.LegacyFile{Repos: []configio.LegacyRepo{{
		Repo:  "https://github.com/astral-sh/ruff-pre-commit",
		Hooks: []configio.LegacyHookDef{{ID: "ruff", Entry: "ruff check --fix"}},
	}}}

	cfg, _, err := ToNative(lf)
	require.NoError(t, err)
	assert.Equal(t, "ruff check --fix", cfg.Hooks[0].Entry)
}

func TestToNative_UnknownRepoFallsBackWithWarning(t *testing.T) {
	lf := &configio.LegacyFile{Repos: []configio.LegacyRepo{{
		Repo:  "https://example.com/unknown",
		Hooks: []configio.LegacyHookDef{{ID: "mystery-hook"}},
	}}}

	cfg, warnings, err := ToNative(lf)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	assert.Equal(t, "mystery-hook", warnings[0].HookID)
	assert.Contains(t, warnings[0].String(), "mystery-hook")

	assert.Equal(t, hook.LanguageSystem, cfg.Hooks[0].Language)
	assert.Equal(t, "mystery-hook", cfg.Hooks[0].Entry)
}

func TestToNative_NilInput(t *testing.T) {
	_, _, err := ToNative(nil)
	assert.Error(t, err)
}

func TestToNative_CarriesTopLevelDefaults(t *testing.T) {
	lf := &configio.LegacyFile{
		FailFast:      true,
		DefaultStages: []string{"pre-push"},
		Exclude:       `^vendor/`,
	}

	cfg, _, err := ToNative(lf)
	require.NoError(t, err)
	assert.True(t, cfg.FailFast)
	assert.Equal(t, []hook.Stage{hook.StagePrePush}, cfg.DefaultStages)
	assert.Equal(t, `^vendor/`, cfg.Exclude)
}

func TestToNative_RegistryLookupPinsVersionFromRev(t *testing.T) {
	lf := &configio.LegacyFile{Repos: []configio.LegacyRepo{{
		Repo:  "https://github.com/astral-sh/ruff-pre-commit",
		Rev:   "v0.8.3",
		Hooks: []configio.LegacyHookDef{{ID: "ruff"}},
	}}}

	cfg, _, err := ToNative(lf)
	require.NoError(t, err)
	require.Len(t, cfg.Hooks, 1)
	assert.Equal(t, hook.LanguagePython, cfg.Hooks[0].Language)
	assert.Equal(t, "ruff", cfg.Hooks[0].Tool)
	assert.Equal(t, "==0.8.3", cfg.Hooks[0].Version)
}

func TestToNative_RegistryLookupWithoutRevKeepsDefaultVersion(t *testing.T) {
	lf := &configio.LegacyFile{Repos: []configio.LegacyRepo{{
		Repo:  "https://github.com/psf/black",
		Hooks: []configio.LegacyHookDef{{ID: "black"}},
	}}}

	cfg, _, err := ToNative(lf)
	require.NoError(t, err)
	assert.Equal(t, "stable", cfg.Hooks[0].Version)
}

func TestToNative_NodeAndRubyRevsUseSemverAndGemSpecForms(t *testing.T) {
	lf := &configio.LegacyFile{Repos: []configio.LegacyRepo{
		{
			Repo:  "https://github.com/pre-commit/mirrors-eslint",
			Rev:   "v9.1.0",
			Hooks: []configio.LegacyHookDef{{ID: "eslint"}},
		},
		{
			Repo:  "https://github.com/rubocop/rubocop",
			Rev:   "v1.65.0",
			Hooks: []configio.LegacyHookDef{{ID: "rubocop"}},
		},
	}}

	cfg, _, err := ToNative(lf)
	require.NoError(t, err)
	require.Len(t, cfg.Hooks, 2)
	assert.Equal(t, "^9.1.0", cfg.Hooks[0].Version)
	assert.Equal(t, "~> 1.65.0", cfg.Hooks[1].Version)
}

func TestToNative_ExplicitLanguagePinsVersionFromRev(t *testing.T) {
	lf := &configio.LegacyFile{Repos: []configio.LegacyRepo{{
		Repo:  "https://example.com/whatever",
		Rev:   "v2.0.0",
		Hooks: []configio.LegacyHookDef{{ID: "custom", Language: "node", Entry: "custom-tool"}},
	}}}

	cfg, _, err := ToNative(lf)
	require.NoError(t, err)
	assert.Equal(t, "^2.0.0", cfg.Hooks[0].Version)
}
