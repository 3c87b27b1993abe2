package cliapp

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/rustyhook/rustyhook/internal/configio"
	"github.com/rustyhook/rustyhook/internal/convert"
	"github.com/rustyhook/rustyhook/internal/hookerr"
)

func newConvertCommand(repoRoot string, g *globalFlags) *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "convert",
		Short: "Convert a legacy .pre-commit-config.yaml to the native dialect",
		RunE: func(cmd *cobra.Command, args []string) error {
			gg, err := g.resolve(repoRoot)
			if err != nil {
				return err
			}

			legacyPath := gg.ConfigPath
			if legacyPath == "" {
				legacyPath = filepath.Join(repoRoot, DefaultLegacyConfigPath)
			} else if !filepath.IsAbs(legacyPath) {
				legacyPath = filepath.Join(repoRoot, legacyPath)
			}

			lf, err := configio.LoadLegacy(legacyPath)
			if err != nil {
				pe := &hookerr.ParseError{Message: fmt.Sprintf("loading legacy config %s", legacyPath), Cause: err}
				return &InvocationError{ExitCode: ExitConfigError, Message: pe.Error()}
			}

			cfg, warnings, err := convert.ToNative(lf)
			if err != nil {
				return &InvocationError{ExitCode: ExitConfigError, Message: err.Error()}
			}
			for _, w := range warnings {
				fmt.Fprintf(os.Stderr, "warning: %s\n", w.String())
			}

			buf, err := yaml.Marshal(cfg)
			if err != nil {
				return &InvocationError{ExitCode: ExitSystemError, Message: err.Error()}
			}

			if outPath == "" {
				_, err := os.Stdout.Write(buf)
				return err
			}
			if !filepath.IsAbs(outPath) {
				outPath = filepath.Join(repoRoot, outPath)
			}
			return os.WriteFile(outPath, buf, 0o644)
		},
	}

	cmd.Flags().StringVar(&outPath, "output", "", "write converted config here instead of stdout")
	return cmd
}
