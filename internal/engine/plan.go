package engine

import (
	"fmt"

	"github.com/rustyhook/rustyhook/internal/hook"
	"github.com/rustyhook/rustyhook/internal/matcher"
)

// PlannedHook is one hook's selection result for a requested stage: the
// files it will be invoked against, and whether it should be skipped
// outright before any provisioning or dispatch is attempted.
type PlannedHook struct {
	Hook       *hook.Hook
	Files      []string
	Skip       bool
	SkipReason string
}

// Plan selects which of cfg.Hooks participate in stage, applying each
// hook's File Matcher against candidateFiles and then cfg's repository-wide
// Exclude. A hook that declares no stages participates in hook.DefaultStage
// only. A hook with no matching files is marked Skip unless AlwaysRun is
// set.
//
// Grounded on spec.md §4.4 steps 1-3 (stage filter, then per-hook file
// selection, then the global exclude).
func Plan(cfg *hook.Config, stage hook.Stage, candidateFiles []string) ([]PlannedHook, error) {
	out := make([]PlannedHook, 0, len(cfg.Hooks))
	for i := range cfg.Hooks {
		h := &cfg.Hooks[i]
		if !h.RunsAtStage(stage) {
			continue
		}

		fm, err := matcher.New(h.Files, h.Exclude)
		if err != nil {
			return nil, fmt.Errorf("hook %q: %w", h.ID, err)
		}
		selected := fm.Select(candidateFiles)

		selected, err = matcher.ExcludeGlobal(selected, cfg.Exclude)
		if err != nil {
			return nil, fmt.Errorf("config exclude: %w", err)
		}

		p := PlannedHook{Hook: h, Files: selected}
		if len(selected) == 0 && !h.AlwaysRun {
			p.Skip = true
			p.SkipReason = "no matching files"
		}
		out = append(out, p)
	}
	return out, nil
}
