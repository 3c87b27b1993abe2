package cliapp

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rustyhook/rustyhook/internal/scaffold"
)

func newInitCommand(repoRoot string, g *globalFlags) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Scaffold an empty native config",
		RunE: func(cmd *cobra.Command, args []string) error {
			gg, err := g.resolve(repoRoot)
			if err != nil {
				return err
			}
			path := gg.ConfigPath
			if path == "" {
				path = filepath.Join(repoRoot, DefaultNativeConfigPath)
			} else if !filepath.IsAbs(path) {
				path = filepath.Join(repoRoot, path)
			}
			if err := scaffold.Write(path, force); err != nil {
				return &InvocationError{ExitCode: ExitUserError, Message: err.Error()}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing config")
	return cmd
}
