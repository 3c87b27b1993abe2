package cliapp

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rustyhook/rustyhook/internal/cachestore"
	"github.com/rustyhook/rustyhook/internal/hook"
)

func newCleanCommand(repoRoot string, g *globalFlags) *cobra.Command {
	var language string

	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Purge the cache root, or a single language's environments",
		RunE: func(cmd *cobra.Command, args []string) error {
			gg, err := g.resolve(repoRoot)
			if err != nil {
				return err
			}

			envRoot := filepath.Join(gg.CacheDir, "envs")

			if language == "" {
				if err := os.RemoveAll(envRoot); err != nil {
					return &InvocationError{ExitCode: ExitSystemError, Message: err.Error()}
				}
				fmt.Fprintf(os.Stdout, "removed %s\n", envRoot)
				return nil
			}

			switch hook.Language(language) {
			case hook.LanguagePython, hook.LanguageNode, hook.LanguageRuby, hook.LanguageSystem:
			default:
				return userErrorf("unknown language %q", language)
			}

			// Environments are content-addressed and sharded by digest
			// prefix, not by language (see internal/cachestore), so a
			// language-scoped purge needs the badger index to know which
			// digest belongs to which language.
			idx, err := cachestore.OpenIndex(filepath.Join(gg.CacheDir, "index.badger"))
			if err != nil {
				return &InvocationError{ExitCode: ExitSystemError, Message: fmt.Sprintf("opening cache index for --language purge: %v", err)}
			}
			defer idx.Close()

			store, err := cachestore.New(envRoot)
			if err != nil {
				return &InvocationError{ExitCode: ExitSystemError, Message: err.Error()}
			}

			entries, err := idx.All()
			if err != nil {
				return &InvocationError{ExitCode: ExitSystemError, Message: err.Error()}
			}

			removed := 0
			for digest, entry := range entries {
				if string(entry.Spec.Language) != language {
					continue
				}
				if err := store.Remove(digest); err != nil {
					return &InvocationError{ExitCode: ExitSystemError, Message: err.Error()}
				}
				if err := idx.Remove(digest); err != nil {
					return &InvocationError{ExitCode: ExitSystemError, Message: err.Error()}
				}
				removed++
			}
			fmt.Fprintf(os.Stdout, "removed %d %s environment(s)\n", removed, language)
			return nil
		},
	}

	cmd.Flags().StringVar(&language, "language", "", "restrict the purge to one language (python|node|ruby|system); requires a built index (see `doctor --reindex`)")
	return cmd
}
