// Package convert implements the Converter component: turning a legacy
// .pre-commit-config.yaml document into the native hook.Config shape.
//
// Grounded on original_source/src/config/compat.rs's
// convert_to_rustyhook_config: for each legacy hook entry, resolve
// {language, entry} in three steps, falling back progressively rather than
// aborting the whole conversion:
//
//  1. an explicit `language` on the legacy hook entry wins outright;
//  2. otherwise, look the (repo, hook id) pair up in internal/registry;
//  3. otherwise, fall back to `system` with a placeholder entry equal to
//     the hook id, and report a warning (never a hard error) — this mirrors
//     the permissive behavior of the original implementation.
package convert

import (
	"fmt"
	"strings"

	"github.com/rustyhook/rustyhook/internal/hook"
	"github.com/rustyhook/rustyhook/internal/registry"
)

// Warning is a non-fatal note produced during conversion.
type Warning struct {
	HookID  string
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("hook %q: %s", w.HookID, w.Message)
}

// DefaultWarner is a no-op sink; callers that care about warnings should
// use ToNativeWithWarner directly instead of relying on this.
func DefaultWarner(Warning) {}

// ToNative converts a parsed LegacyFile into a native hook.Config, returning
// every fallback warning in the order it was produced.
func ToNative(lf *LegacyFile) (*hook.Config, []Warning, error) {
	var warnings []Warning
	cfg, err := ToNativeWithWarner(lf, func(w Warning) { warnings = append(warnings, w) })
	return cfg, warnings, err
}

// ToNativeWithWarner converts lf, invoking warn for every fallback decision
// so callers (such as internal/configio's Load, which backs `compat`) can
// surface them to the user.
func ToNativeWithWarner(lf *LegacyFile, warn func(Warning)) (*hook.Config, error) {
	if lf == nil {
		return nil, fmt.Errorf("nil legacy config")
	}
	if warn == nil {
		warn = DefaultWarner
	}

	cfg := &hook.Config{
		FailFast:      lf.FailFast,
		DefaultStages: convertStages(lf.DefaultStages),
		Exclude:       lf.Exclude,
	}

	for _, repo := range lf.Repos {
		for _, h := range repo.Hooks {
			nh, err := convertHook(repo.Repo, repo.Rev, h, warn)
			if err != nil {
				return nil, err
			}
			cfg.Hooks = append(cfg.Hooks, nh)
		}
	}

	return cfg, nil
}

func convertHook(repoURL, rev string, h LegacyHookDef, warn func(Warning)) (hook.Hook, error) {
	nh := hook.Hook{
		ID:            h.ID,
		Name:          h.Name,
		Args:          h.Args,
		Files:         h.Files,
		Exclude:       h.Exclude,
		Stages:        convertStages(h.Stages),
		Dependencies:  h.AdditionalDependencies,
		Env:           h.Env,
		AlwaysRun:     h.AlwaysRun,
		PassFilenames: h.PassFilenames,
	}

	switch {
	case h.Language != "":
		// Step 1: explicit language wins. A legacy `language: script` maps
		// to `system` with the literal entry path (spec.md Open Questions).
		lang := h.Language
		if lang == "script" {
			lang = "system"
		}
		nh.Language = hook.Language(lang)
		nh.Entry = h.Entry
		if nh.Entry == "" {
			return hook.Hook{}, fmt.Errorf("hook %q: language %q requires entry", h.ID, h.Language)
		}
		nh.Version = pinVersion(nh.Language, rev)

	default:
		// Step 2: registry lookup by (repo, hook id).
		if entry, ok := registry.Lookup(repoURL, h.ID); ok {
			nh.Language = entry.Language
			nh.Entry = entry.DefaultEntry
			nh.Tool = entry.Tool
			nh.Version = entry.DefaultVersion
			if h.Entry != "" {
				nh.Entry = h.Entry
			}
			if v := pinVersion(nh.Language, rev); v != "" {
				nh.Version = v
			}
		} else {
			// Step 3: permissive fallback, reported not aborted.
			nh.Language = hook.LanguageSystem
			nh.Entry = h.ID
			warn(Warning{
				HookID:  h.ID,
				Message: fmt.Sprintf("no registry entry for repo %q; falling back to system language with entry %q", repoURL, nh.Entry),
			})
		}
	}

	return nh, nil
}

// pinVersion derives a native `version` constraint from a legacy repo's
// `rev` (spec.md §3: "pinned equality for Python; semver range for Node;
// gem spec for Ruby"), stripping a leading "v" the way Git tag conventions
// commonly add one (spec.md §8 scenario 4: rev "v0.8.3" -> "==0.8.3"). An
// empty rev yields no constraint, leaving the registry's DefaultVersion (or
// an explicit-language hook's unset Version) in place.
func pinVersion(lang hook.Language, rev string) string {
	if rev == "" {
		return ""
	}
	numeric := strings.TrimPrefix(rev, "v")
	switch lang {
	case hook.LanguagePython:
		return "==" + numeric
	case hook.LanguageNode:
		return "^" + numeric
	case hook.LanguageRuby:
		return "~> " + numeric
	default:
		return rev
	}
}

func convertStages(raw []string) []hook.Stage {
	if len(raw) == 0 {
		return nil
	}
	out := make([]hook.Stage, len(raw))
	for i, s := range raw {
		out[i] = hook.Stage(s)
	}
	return out
}
