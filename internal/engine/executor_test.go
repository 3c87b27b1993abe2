package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyhook/rustyhook/internal/cachestore"
	"github.com/rustyhook/rustyhook/internal/hook"
	"github.com/rustyhook/rustyhook/internal/provision"
	"github.com/rustyhook/rustyhook/internal/trace"
)

func newTestExecutor(t *testing.T, cfg *hook.Config) (*Executor, string) {
	t.Helper()
	store, err := cachestore.New(t.TempDir())
	require.NoError(t, err)
	repoRoot := t.TempDir()
	return &Executor{
		Config:      cfg,
		Provisioner: provision.New(store),
		RepoRoot:    repoRoot,
		Recorder:    trace.NewRecorder("test-run"),
	}, repoRoot
}

func TestRun_AllHooksPassProducesPassedSummary(t *testing.T) {
	cfg := &hook.Config{Hooks: []hook.Hook{
		{ID: "greet", Language: hook.LanguageSystem, Entry: "/bin/echo", AlwaysRun: true},
	}}
	e, _ := newTestExecutor(t, cfg)

	report, err := e.Run(context.Background(), hook.DefaultStage, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Summary.Passed)
	assert.Equal(t, hook.OutcomePassed, report.Results[0].Outcome)
}

func TestRun_FailingHookReportsFailedWithExitCode(t *testing.T) {
	cfg := &hook.Config{Hooks: []hook.Hook{
		{ID: "boom", Language: hook.LanguageSystem, Entry: "/bin/false", AlwaysRun: true},
	}}
	e, _ := newTestExecutor(t, cfg)

	report, err := e.Run(context.Background(), hook.DefaultStage, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Summary.Failed)
	assert.NotEqual(t, 0, report.Results[0].ExitCode)
}

func TestRun_SkipsHooksWithNoMatchingFiles(t *testing.T) {
	cfg := &hook.Config{Hooks: []hook.Hook{
		{ID: "gofmt", Language: hook.LanguageSystem, Entry: "/bin/echo", Files: `\.go$`},
	}}
	e, _ := newTestExecutor(t, cfg)

	report, err := e.Run(context.Background(), hook.DefaultStage, []string{"README.md"})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Summary.Skipped)
	assert.Equal(t, "no matching files", report.Results[0].SkipReason)
}

func TestRun_BuiltinHookRunsInProcessAgainstRepoFiles(t *testing.T) {
	cfg := &hook.Config{Hooks: []hook.Hook{
		{ID: "trailing-whitespace", Language: hook.LanguageSystem, Entry: "trailing-whitespace", Files: `\.txt$`},
	}}
	e, repoRoot := newTestExecutor(t, cfg)
	require.NoError(t, os.WriteFile(filepath.Join(repoRoot, "a.txt"), []byte("trailing   \n"), 0o644))

	report, err := e.Run(context.Background(), hook.DefaultStage, []string{"a.txt"})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Summary.Failed)

	cleaned, err := os.ReadFile(filepath.Join(repoRoot, "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, "trailing\n", string(cleaned))
}

func TestRun_FailFastSkipsRemainingHooksAfterFirstFailure(t *testing.T) {
	cfg := &hook.Config{
		FailFast:    true,
		Concurrency: 1,
		Hooks: []hook.Hook{
			{ID: "boom", Language: hook.LanguageSystem, Entry: "/bin/false", AlwaysRun: true},
			{ID: "after", Language: hook.LanguageSystem, Entry: "/bin/echo", AlwaysRun: true},
		},
	}
	e, _ := newTestExecutor(t, cfg)

	report, err := e.Run(context.Background(), hook.DefaultStage, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Summary.Failed)
	assert.Equal(t, 1, report.Summary.Skipped)
}

func TestRun_FailFastDoesNotCancelAnAlreadyRunningHook(t *testing.T) {
	cfg := &hook.Config{
		FailFast:    true,
		Concurrency: 2,
		Hooks: []hook.Hook{
			{ID: "slow", Language: hook.LanguageSystem, Entry: "/bin/sleep", Args: []string{"1"}, AlwaysRun: true},
			{ID: "boom", Language: hook.LanguageSystem, Entry: "/bin/false", AlwaysRun: true},
		},
	}
	e, _ := newTestExecutor(t, cfg)

	report, err := e.Run(context.Background(), hook.DefaultStage, nil)
	require.NoError(t, err)

	byID := make(map[string]hook.HookResult, len(report.Results))
	for _, r := range report.Results {
		byID[r.HookID] = r
	}

	// "boom" fails and triggers fail-fast, but "slow" was already dispatched
	// concurrently: it must be allowed to run to completion and report its
	// real outcome, never get canceled/skipped out from under it.
	assert.Equal(t, hook.OutcomePassed, byID["slow"].Outcome)
	assert.Equal(t, hook.OutcomeFailed, byID["boom"].Outcome)
}

func TestRun_ProvisionFailureReportsErrored(t *testing.T) {
	cfg := &hook.Config{Hooks: []hook.Hook{
		{ID: "missing", Language: hook.LanguageSystem, Entry: "definitely-not-a-real-command-xyz", AlwaysRun: true},
	}}
	e, _ := newTestExecutor(t, cfg)

	report, err := e.Run(context.Background(), hook.DefaultStage, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Summary.Errored)
}

func TestRun_ResultsAreOrderedByDeclaredHookOrderNotCompletionTime(t *testing.T) {
	cfg := &hook.Config{Concurrency: 4, Hooks: []hook.Hook{
		{ID: "first", Language: hook.LanguageSystem, Entry: "/bin/echo", AlwaysRun: true},
		{ID: "second", Language: hook.LanguageSystem, Entry: "/bin/echo", AlwaysRun: true},
		{ID: "third", Language: hook.LanguageSystem, Entry: "/bin/echo", AlwaysRun: true},
	}}
	e, _ := newTestExecutor(t, cfg)

	report, err := e.Run(context.Background(), hook.DefaultStage, nil)
	require.NoError(t, err)
	require.Len(t, report.Results, 3)
	assert.Equal(t, []string{"first", "second", "third"}, []string{
		report.Results[0].HookID, report.Results[1].HookID, report.Results[2].HookID,
	})
}
