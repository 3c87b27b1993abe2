package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/rustyhook/rustyhook/internal/builtinhooks"
	"github.com/rustyhook/rustyhook/internal/dispatch"
	"github.com/rustyhook/rustyhook/internal/hook"
	"github.com/rustyhook/rustyhook/internal/platform"
	"github.com/rustyhook/rustyhook/internal/provision"
	"github.com/rustyhook/rustyhook/internal/trace"
)

// Executor runs a Plan's hooks to completion: provisioning phase first
// (one environment per distinct fingerprint, deduplicated by
// internal/provision.Provisioner), then a dispatch phase, both bounded by
// the same concurrency budget.
//
// Restaged from the teacher's internal/dag.Executor.RunParallel: that
// executor stages work by topological depth because tasks have
// dependency edges. Hooks have none, so the two phases here replace depth
// staging: every non-skipped hook is "ready" for provisioning immediately,
// and every hook whose environment is ready is "ready" for dispatch
// immediately. Concurrency bounding and fail-fast propagation are kept.
type Executor struct {
	Config      *hook.Config
	Provisioner *provision.Provisioner
	RepoRoot    string
	Recorder    *trace.Recorder
}

// Run selects hooks for stage via Plan, provisions their environments, and
// dispatches them, returning the deterministic RunReport.
func (e *Executor) Run(ctx context.Context, stage hook.Stage, candidateFiles []string) (*hook.RunReport, error) {
	planned, err := Plan(e.Config, stage, candidateFiles)
	if err != nil {
		return nil, fmt.Errorf("planning hooks: %w", err)
	}

	concurrency := e.Config.Concurrency
	if concurrency <= 0 {
		concurrency = platform.RecommendedConcurrency()
	}

	state := make(ExecutionState, len(planned))
	for _, p := range planned {
		state[p.Hook.ID] = StatePending
	}

	results := make(map[string]hook.HookResult, len(planned))
	var mu sync.Mutex
	record := func(kind trace.EventKind, id, reason string) {
		if e.Recorder != nil {
			e.Recorder.Record(kind, id, reason)
		}
	}

	// Hooks skipped during planning never enter provisioning or dispatch.
	active := make([]PlannedHook, 0, len(planned))
	for _, p := range planned {
		if p.Skip {
			mu.Lock()
			state[p.Hook.ID] = StateSkipped
			results[p.Hook.ID] = hook.HookResult{HookID: p.Hook.ID, Outcome: hook.OutcomeSkipped, SkipReason: p.SkipReason}
			mu.Unlock()
			record(trace.EventHookSkipped, p.Hook.ID, p.SkipReason)
			continue
		}
		active = append(active, p)
	}

	handles := make(map[string]*hook.EnvHandle, len(active))

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Provision phase.
	{
		grp, gctx := errgroup.WithContext(runCtx)
		sem := semaphore.NewWeighted(int64(concurrency))
		for i := range active {
			p := active[i]
			if err := sem.Acquire(gctx, 1); err != nil {
				break
			}
			grp.Go(func() error {
				defer sem.Release(1)
				mu.Lock()
				_ = Transition(state, p.Hook.ID, StatePending, StateProvisioning)
				mu.Unlock()
				record(trace.EventHookProvisioning, p.Hook.ID, "")

				handle, err := e.Provisioner.Ensure(gctx, p.Hook.EnvSpec())
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					_ = Transition(state, p.Hook.ID, StateProvisioning, StateErrored)
					results[p.Hook.ID] = hook.HookResult{HookID: p.Hook.ID, Outcome: hook.OutcomeErrored, Error: err.Error()}
					record(trace.EventHookErrored, p.Hook.ID, err.Error())
					return nil
				}
				handles[p.Hook.ID] = handle
				_ = Transition(state, p.Hook.ID, StateProvisioning, StateQueued)
				record(trace.EventHookQueued, p.Hook.ID, "")
				return nil
			})
		}
		if err := grp.Wait(); err != nil && !errors.Is(err, context.Canceled) {
			return nil, fmt.Errorf("provisioning: %w", err)
		}
	}

	// Dispatch phase: only hooks that reached Queued participate.
	toDispatch := make([]PlannedHook, 0, len(active))
	for _, p := range active {
		if state[p.Hook.ID] == StateQueued {
			toDispatch = append(toDispatch, p)
		}
	}

	// stopDispatching gates only the loop below's own sem.Acquire calls: a
	// fail-fast trigger cancels it to stop handing out new work, but gctx
	// (the context passed into already-running e.dispatchOne calls) is
	// derived from runCtx instead, so it is never canceled by fail-fast and
	// an in-flight hook always runs to its real outcome (spec.md §3, §4.4
	// step 6: fail_fast never reaps an already-dispatched hook early).
	stopCtx, stopDispatching := context.WithCancel(runCtx)
	defer stopDispatching()

	failFast := e.Config.FailFast
	var failedOnce sync.Once
	triggerFailFast := func(reason string) {
		if !failFast {
			return
		}
		failedOnce.Do(func() {
			stopDispatching()
			mu.Lock()
			for _, id := range SkipRemaining(state, reason) {
				if _, already := results[id]; !already {
					results[id] = hook.HookResult{HookID: id, Outcome: hook.OutcomeSkipped, SkipReason: reason}
					record(trace.EventHookSkipped, id, reason)
				}
			}
			mu.Unlock()
		})
	}

	{
		grp, gctx := errgroup.WithContext(runCtx)
		sem := semaphore.NewWeighted(int64(concurrency))
		for i := range toDispatch {
			p := toDispatch[i]

			mu.Lock()
			started := state[p.Hook.ID] == StateQueued
			mu.Unlock()
			if !started {
				continue
			}

			if err := sem.Acquire(stopCtx, 1); err != nil {
				break
			}
			grp.Go(func() error {
				defer sem.Release(1)

				mu.Lock()
				if state[p.Hook.ID] != StateQueued {
					mu.Unlock()
					return nil
				}
				_ = Transition(state, p.Hook.ID, StateQueued, StateRunning)
				mu.Unlock()
				record(trace.EventHookRunning, p.Hook.ID, "")

				res := e.dispatchOne(gctx, p, handles[p.Hook.ID])

				mu.Lock()
				results[p.Hook.ID] = res
				switch res.Outcome {
				case hook.OutcomePassed:
					_ = Transition(state, p.Hook.ID, StateRunning, StatePassed)
				case hook.OutcomeFailed:
					_ = Transition(state, p.Hook.ID, StateRunning, StateFailed)
				default:
					_ = Transition(state, p.Hook.ID, StateRunning, StateErrored)
				}
				mu.Unlock()

				switch res.Outcome {
				case hook.OutcomePassed:
					record(trace.EventHookPassed, p.Hook.ID, "")
				case hook.OutcomeFailed:
					record(trace.EventHookFailed, p.Hook.ID, res.Error)
					triggerFailFast(fmt.Sprintf("fail-fast: %q failed", p.Hook.ID))
				default:
					record(trace.EventHookErrored, p.Hook.ID, res.Error)
					triggerFailFast(fmt.Sprintf("fail-fast: %q errored", p.Hook.ID))
				}
				return nil
			})
		}
		_ = grp.Wait()
	}

	return assembleReport(stage, planned, results), nil
}

// dispatchOne runs every Invocation for a single hook, stopping at the
// first non-zero exit and reporting the hook as Failed; a process/runtime
// error reports Errored.
//
// A hook whose provisioned environment resolved to builtinhooks.Tool never
// reaches internal/dispatch: it is looked up and run in-process instead,
// since these checks have no executable to spawn.
func (e *Executor) dispatchOne(ctx context.Context, p PlannedHook, handle *hook.EnvHandle) hook.HookResult {
	start := time.Now()

	if handle != nil && handle.Spec.Tool == builtinhooks.Tool {
		return e.dispatchBuiltin(ctx, p, start)
	}

	invocations := dispatch.BuildInvocations(p.Hook, handle, e.RepoRoot, p.Files)

	var stdout, stderr bytes.Buffer
	for _, inv := range invocations {
		res, err := dispatch.Run(ctx, inv)
		if err != nil {
			return hook.HookResult{
				HookID:     p.Hook.ID,
				Outcome:    hook.OutcomeErrored,
				Stdout:     stdout.String(),
				Stderr:     stderr.String(),
				FilesCount: len(p.Files),
				Duration:   time.Since(start),
				Error:      err.Error(),
			}
		}
		stdout.Write(res.Stdout)
		stderr.Write(res.Stderr)
		if res.ExitCode != 0 {
			return hook.HookResult{
				HookID:     p.Hook.ID,
				Outcome:    hook.OutcomeFailed,
				ExitCode:   res.ExitCode,
				Stdout:     stdout.String(),
				Stderr:     stderr.String(),
				FilesCount: len(p.Files),
				Duration:   time.Since(start),
			}
		}
	}

	return hook.HookResult{
		HookID:     p.Hook.ID,
		Outcome:    hook.OutcomePassed,
		Stdout:     stdout.String(),
		Stderr:     stderr.String(),
		FilesCount: len(p.Files),
		Duration:   time.Since(start),
	}
}

// dispatchBuiltin runs an in-process check (see internal/builtinhooks)
// against p.Files resolved to absolute paths under e.RepoRoot.
func (e *Executor) dispatchBuiltin(ctx context.Context, p PlannedHook, start time.Time) hook.HookResult {
	name := p.Hook.Tool
	if name == "" {
		fields := strings.Fields(p.Hook.Entry)
		if len(fields) > 0 {
			name = fields[0]
		} else {
			name = p.Hook.Entry
		}
	}

	check, ok := builtinhooks.Lookup(name)
	if !ok {
		return hook.HookResult{
			HookID:     p.Hook.ID,
			Outcome:    hook.OutcomeErrored,
			FilesCount: len(p.Files),
			Duration:   time.Since(start),
			Error:      fmt.Sprintf("no built-in check registered for %q", name),
		}
	}

	absFiles := make([]string, len(p.Files))
	for i, f := range p.Files {
		absFiles[i] = filepath.Join(e.RepoRoot, f)
	}

	if err := check.Run(ctx, absFiles, p.Hook.Args); err != nil {
		return hook.HookResult{
			HookID:     p.Hook.ID,
			Outcome:    hook.OutcomeFailed,
			FilesCount: len(p.Files),
			Duration:   time.Since(start),
			Error:      err.Error(),
		}
	}

	return hook.HookResult{
		HookID:     p.Hook.ID,
		Outcome:    hook.OutcomePassed,
		FilesCount: len(p.Files),
		Duration:   time.Since(start),
	}
}

// assembleReport builds the deterministic RunReport: results are ordered
// by the Plan's (i.e. the Config's declared) hook order, never by
// completion time.
func assembleReport(stage hook.Stage, planned []PlannedHook, results map[string]hook.HookResult) *hook.RunReport {
	ordered := make([]hook.HookResult, 0, len(planned))
	var summary hook.RunSummary
	for _, p := range planned {
		res, ok := results[p.Hook.ID]
		if !ok {
			res = hook.HookResult{HookID: p.Hook.ID, Outcome: hook.OutcomeSkipped, SkipReason: "not dispatched"}
		}
		ordered = append(ordered, res)
		switch res.Outcome {
		case hook.OutcomePassed:
			summary.Passed++
		case hook.OutcomeFailed:
			summary.Failed++
		case hook.OutcomeErrored:
			summary.Errored++
		case hook.OutcomeSkipped:
			summary.Skipped++
		}
	}
	return &hook.RunReport{Stage: stage, Results: ordered, Summary: summary}
}
