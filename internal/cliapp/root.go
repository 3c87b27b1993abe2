package cliapp

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type globalFlags struct {
	configPath string
	cacheDir   string
	logLevel   string
	noColor    bool
}

// NewRootCommand builds the full rustyhook command tree. repoRoot is the
// absolute path the CLI shell resolved before invoking cobra (it is never
// derived from os.Getwd() inside this package, matching the teacher's
// "WorkDir must be explicit" discipline).
func NewRootCommand(repoRoot string) *cobra.Command {
	flags := &globalFlags{}

	root := &cobra.Command{
		Use:           "rustyhook",
		Short:         "Deterministic git hook orchestration",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to config file (overrides "+EnvConfig+")")
	root.PersistentFlags().StringVar(&flags.cacheDir, "cache-dir", "", "cache root directory (overrides "+EnvCacheDir+")")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "debug|info|warn|error (overrides "+EnvLogLevel+")")
	root.PersistentFlags().BoolVar(&flags.noColor, "no-color", false, "disable ANSI styling (overrides "+EnvNoColor+")")

	root.AddCommand(
		newRunCommand(repoRoot, flags),
		newCompatCommand(repoRoot, flags),
		newConvertCommand(repoRoot, flags),
		newInitCommand(repoRoot, flags),
		newListCommand(repoRoot, flags),
		newDoctorCommand(repoRoot, flags),
		newCleanCommand(repoRoot, flags),
		newInstallCommand(repoRoot, flags),
		newUninstallCommand(repoRoot, flags),
	)

	return root
}

func (f *globalFlags) resolve(repoRoot string) (Globals, error) {
	return resolveGlobals(repoRoot, f.configPath, f.cacheDir, f.logLevel, f.noColor)
}

// Execute runs the root command for args (excluding argv[0]) and returns
// the process exit code, following the teacher's cmd/scriptweaver/main.go
// "canonicalize, execute, translate to exit code" boundary — cobra's own
// error printing is silenced so every message and exit code flows through
// this one path.
func Execute(repoRoot string, args []string) int {
	root := NewRootCommand(repoRoot)
	root.SetArgs(args)

	err := root.Execute()
	if err == nil {
		return ExitSuccess
	}

	var invErr *InvocationError
	if errors.As(err, &invErr) {
		fmt.Fprintln(os.Stderr, invErr.Message)
		return invErr.ExitCode
	}

	fmt.Fprintln(os.Stderr, err)
	return ExitSystemError
}
