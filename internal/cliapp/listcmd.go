package cliapp

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/rustyhook/rustyhook/internal/cachestore"
	"github.com/rustyhook/rustyhook/internal/fingerprint"
)

func newListCommand(repoRoot string, g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Enumerate loaded hooks and their cached environment status",
		RunE: func(cmd *cobra.Command, args []string) error {
			gg, err := g.resolve(repoRoot)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(repoRoot, gg, false)
			if err != nil {
				return err
			}

			store, err := cachestore.New(filepath.Join(gg.CacheDir, "envs"))
			if err != nil {
				return &InvocationError{ExitCode: ExitSystemError, Message: err.Error()}
			}

			tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "HOOK\tLANGUAGE\tTOOL\tSTAGES\tENV STATUS")
			for i := range cfg.Hooks {
				h := &cfg.Hooks[i]
				spec := h.EnvSpec()
				digest := fingerprint.Compute(spec)
				status := "not provisioned"
				if store.IsReady(digest, spec) {
					status = "ready"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%v\t%s\n", h.ID, h.Language, h.EnvSpec().Tool, h.EffectiveStages(), status)
			}
			return tw.Flush()
		},
	}
	return cmd
}
