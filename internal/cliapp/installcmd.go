package cliapp

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rustyhook/rustyhook/internal/hook"
)

const hookScriptTemplate = `#!/bin/sh
# Installed by "rustyhook install"; do not edit by hand.
exec rustyhook run --stage %s "$@"
`

func newInstallCommand(repoRoot string, g *globalFlags) *cobra.Command {
	var stage string
	var force bool

	cmd := &cobra.Command{
		Use:   "install",
		Short: "Write a Git hook script under .git/hooks/<stage>",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := g.resolve(repoRoot); err != nil {
				return err
			}
			if !isKnownStage(stage) {
				return userErrorf("unknown stage %q", stage)
			}

			path := filepath.Join(repoRoot, ".git", "hooks", stage)
			if !force {
				if _, err := os.Stat(path); err == nil {
					return userErrorf("%s already exists (use --force to overwrite)", path)
				}
			}

			script := fmt.Sprintf(hookScriptTemplate, stage)
			if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
				return &InvocationError{ExitCode: ExitSystemError, Message: err.Error()}
			}
			fmt.Fprintf(os.Stdout, "installed %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&stage, "stage", string(stagePreCommitDefault), "git hook stage to install")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing hook script")
	return cmd
}

func newUninstallCommand(repoRoot string, g *globalFlags) *cobra.Command {
	var stage string

	cmd := &cobra.Command{
		Use:   "uninstall",
		Short: "Remove a previously installed Git hook script",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := g.resolve(repoRoot); err != nil {
				return err
			}
			if !isKnownStage(stage) {
				return userErrorf("unknown stage %q", stage)
			}

			path := filepath.Join(repoRoot, ".git", "hooks", stage)
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				return &InvocationError{ExitCode: ExitSystemError, Message: err.Error()}
			}
			fmt.Fprintf(os.Stdout, "removed %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&stage, "stage", string(stagePreCommitDefault), "git hook stage to uninstall")
	return cmd
}

func isKnownStage(s string) bool {
	switch hook.Stage(s) {
	case hook.StagePreCommit, hook.StagePrePush, hook.StageCommitMsg, hook.StagePrepareCommit,
		hook.StagePostCheckout, hook.StagePostCommit, hook.StagePostMerge, hook.StagePostRewrite,
		hook.StagePreMergeCommit, hook.StagePreRebase, hook.StagePreAutoGC:
		return true
	default:
		return false
	}
}
