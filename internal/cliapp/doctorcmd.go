package cliapp

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rustyhook/rustyhook/internal/cachestore"
	"github.com/rustyhook/rustyhook/internal/fingerprint"
	"github.com/rustyhook/rustyhook/internal/hook"
)

// interpreterProbe pairs a provisionable language with the command-line
// entry point `doctor` checks for it, probed the same way
// original_source/src/toolchains/*.rs's setup() probes a `which`-style
// lookup before attempting any install.
type interpreterProbe struct {
	language hook.Language
	command  string
}

// interpreterProbes is a fixed-order list, not a map, so doctor's output is
// deterministic across runs.
var interpreterProbes = []interpreterProbe{
	{hook.LanguagePython, "python3"},
	{hook.LanguageNode, "node"},
	{hook.LanguageRuby, "ruby"},
}

func newDoctorCommand(repoRoot string, g *globalFlags) *cobra.Command {
	var reindex bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Probe interpreters and cache health",
		RunE: func(cmd *cobra.Command, args []string) error {
			gg, err := g.resolve(repoRoot)
			if err != nil {
				return err
			}

			fmt.Fprintln(os.Stdout, "interpreters:")
			for _, p := range interpreterProbes {
				if path, err := exec.LookPath(p.command); err == nil {
					fmt.Fprintf(os.Stdout, "  %-8s %s (%s)\n", p.language, "found", path)
				} else {
					fmt.Fprintf(os.Stdout, "  %-8s %s\n", p.language, "missing")
				}
			}

			envRoot := filepath.Join(gg.CacheDir, "envs")
			store, err := cachestore.New(envRoot)
			if err != nil {
				return &InvocationError{ExitCode: ExitSystemError, Message: err.Error()}
			}
			digests, err := store.List()
			if err != nil {
				return &InvocationError{ExitCode: ExitSystemError, Message: err.Error()}
			}
			fmt.Fprintf(os.Stdout, "\ncache: %d ready environment(s) under %s\n", len(digests), envRoot)

			if reindex {
				idx, err := cachestore.OpenIndex(filepath.Join(gg.CacheDir, "index.badger"))
				if err != nil {
					return &InvocationError{ExitCode: ExitSystemError, Message: err.Error()}
				}
				defer idx.Close()

				cfg, cfgErr := loadConfig(repoRoot, gg, false)
				specByDigest := map[fingerprint.Digest]hook.EnvSpec{}
				if cfgErr == nil {
					for i := range cfg.Hooks {
						spec := cfg.Hooks[i].EnvSpec()
						specByDigest[fingerprint.Compute(spec)] = spec
					}
				}

				if err := cachestore.Rebuild(idx, store, func(d fingerprint.Digest) (hook.EnvSpec, bool) {
					spec, ok := specByDigest[d]
					return spec, ok
				}); err != nil {
					return &InvocationError{ExitCode: ExitSystemError, Message: err.Error()}
				}
				fmt.Fprintln(os.Stdout, "index: rebuilt")
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&reindex, "reindex", false, "rebuild the badger cache index from a directory scan")
	return cmd
}
