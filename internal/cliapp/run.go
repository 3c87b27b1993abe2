package cliapp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rustyhook/rustyhook/internal/configio"
	"github.com/rustyhook/rustyhook/internal/convert"
	"github.com/rustyhook/rustyhook/internal/engine"
	"github.com/rustyhook/rustyhook/internal/hook"
	"github.com/rustyhook/rustyhook/internal/hookerr"
	"github.com/rustyhook/rustyhook/internal/matcher"
	"github.com/rustyhook/rustyhook/internal/provision"
	"github.com/rustyhook/rustyhook/internal/report"
	"github.com/rustyhook/rustyhook/internal/trace"

	"github.com/google/uuid"
)

const stagePreCommitDefault = hook.StagePreCommit

type runFlags struct {
	hookID   string
	allFiles bool
	filesCSV string
	verbose  bool
	noCache  bool
	stage    string
}

func newRunCommand(repoRoot string, g *globalFlags) *cobra.Command {
	rf := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run hooks from the native config for a stage",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRunOrCompat(cmd.Context(), repoRoot, g, rf, false)
		},
	}
	addRunFlags(cmd, rf)
	return cmd
}

func newCompatCommand(repoRoot string, g *globalFlags) *cobra.Command {
	rf := &runFlags{}
	cmd := &cobra.Command{
		Use:   "compat",
		Short: "Run hooks from the legacy .pre-commit-config.yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRunOrCompat(cmd.Context(), repoRoot, g, rf, true)
		},
	}
	addRunFlags(cmd, rf)
	return cmd
}

func addRunFlags(cmd *cobra.Command, rf *runFlags) {
	cmd.Flags().StringVar(&rf.hookID, "hook", "", "restrict the run to a single hook id")
	cmd.Flags().BoolVar(&rf.allFiles, "all-files", false, "run against every git-tracked file, not just the changed set")
	cmd.Flags().StringVar(&rf.filesCSV, "files", "", "comma-separated explicit file list, overriding the changed-file discovery")
	cmd.Flags().BoolVar(&rf.verbose, "verbose", false, "print stdout/stderr for every hook, not just failures")
	cmd.Flags().BoolVar(&rf.noCache, "no-cache", false, "ignore the .ready shortcut and force re-provisioning")
	cmd.Flags().StringVar(&rf.stage, "stage", string(stagePreCommitDefault), "git hook stage to run")
}

func runRunOrCompat(ctx context.Context, repoRoot string, gf *globalFlags, rf *runFlags, legacy bool) error {
	g, err := gf.resolve(repoRoot)
	if err != nil {
		return err
	}

	if rf.allFiles && rf.filesCSV != "" {
		return userErrorf("--all-files and --files are mutually exclusive")
	}

	cfg, err := loadConfig(repoRoot, g, legacy)
	if err != nil {
		return err
	}

	if rf.hookID != "" {
		cfg, err = filterToHook(cfg, rf.hookID)
		if err != nil {
			return err
		}
	}

	stage := hook.Stage(rf.stage)

	candidateFiles, err := discoverFiles(ctx, repoRoot, rf)
	if err != nil {
		return &InvocationError{ExitCode: ExitSystemError, Message: err.Error()}
	}

	store, provisioner, err := openProvisioner(g, rf.noCache)
	if err != nil {
		return &InvocationError{ExitCode: ExitSystemError, Message: err.Error()}
	}
	if store.ephemeral {
		defer os.RemoveAll(store.Store.RootDir)
	}

	runID := uuid.NewString()
	recorder := trace.NewRecorder(runID)

	exec := &engine.Executor{
		Config:      cfg,
		Provisioner: provisioner,
		RepoRoot:    repoRoot,
		Recorder:    recorder,
	}

	runReport, err := exec.Run(ctx, stage, candidateFiles)
	if err != nil {
		return &InvocationError{ExitCode: ExitSystemError, Message: fmt.Sprintf("running hooks: %v", err)}
	}

	reporter := report.NewReporter(os.Stdout)
	if rf.verbose {
		printVerbose(runReport)
	}
	reporter.Summary(runReport)

	if err := persistRunArtifacts(g, runID, runReport, recorder); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to persist run artifacts: %v\n", err)
	}

	if !runReport.Passed() {
		return &InvocationError{ExitCode: ExitHookFailure, Message: ""}
	}
	return nil
}

func printVerbose(r *hook.RunReport) {
	for _, res := range r.Results {
		if res.Stdout != "" {
			fmt.Fprintf(os.Stdout, "--- %s stdout ---\n%s\n", res.HookID, res.Stdout)
		}
		if res.Stderr != "" {
			fmt.Fprintf(os.Stdout, "--- %s stderr ---\n%s\n", res.HookID, res.Stderr)
		}
	}
}

func persistRunArtifacts(g Globals, runID string, r *hook.RunReport, rec *trace.Recorder) error {
	runsDir := filepath.Join(g.CacheDir, "runs", runID)
	if err := report.Persist(runsDir, r); err != nil {
		return err
	}
	t := rec.Finish()
	data, err := t.CanonicalJSON()
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(runsDir, "trace.json"), data, 0o644)
}

func discoverFiles(ctx context.Context, repoRoot string, rf *runFlags) ([]string, error) {
	if rf.filesCSV != "" {
		parts := strings.Split(rf.filesCSV, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				out = append(out, p)
			}
		}
		return out, nil
	}
	if rf.allFiles {
		return matcher.AllTrackedFiles(ctx, repoRoot)
	}
	return matcher.ChangedFiles(ctx, repoRoot)
}

func loadConfig(repoRoot string, g Globals, legacy bool) (*hook.Config, error) {
	path := g.ConfigPath
	if path == "" {
		if legacy {
			path = filepath.Join(repoRoot, DefaultLegacyConfigPath)
		} else {
			path = filepath.Join(repoRoot, DefaultNativeConfigPath)
		}
	} else if !filepath.IsAbs(path) {
		path = filepath.Join(repoRoot, path)
	}

	warn := func(w convert.Warning) {
		fmt.Fprintf(os.Stderr, "warning: %s\n", w.String())
	}

	cfg, err := configio.Load(path, warn)
	if err != nil {
		pe := &hookerr.ParseError{Message: fmt.Sprintf("loading config %s", path), Cause: err}
		return nil, &InvocationError{ExitCode: ExitConfigError, Message: pe.Error()}
	}
	return cfg, nil
}

func filterToHook(cfg *hook.Config, id string) (*hook.Config, error) {
	for i := range cfg.Hooks {
		if cfg.Hooks[i].ID == id {
			filtered := *cfg
			filtered.Hooks = []hook.Hook{cfg.Hooks[i]}
			return &filtered, nil
		}
	}
	return nil, userErrorf("no hook with id %q in config", id)
}

func openProvisioner(g Globals, noCache bool) (*provisionStore, *provision.Provisioner, error) {
	store, err := newProvisionStore(g.CacheDir, noCache)
	if err != nil {
		return nil, nil, err
	}
	return store, provision.New(store.Store), nil
}
