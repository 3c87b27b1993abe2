// Package cliapp assembles the rustyhook command surface (spec.md §6) on
// top of github.com/spf13/cobra: one thin *cobra.Command per subcommand
// that canonicalizes flags and environment variables into a Globals value
// before calling straight into internal/configio, internal/engine, and
// internal/convert.
//
// Grounded on the teacher's internal/cli/input.go: canonicalize every
// ambient input (flags, env vars) at one edge, then never read ambient
// state again deeper in the call stack.
package cliapp

import (
	"fmt"
	"os"
)

// Exit codes, per spec.md §6.
const (
	ExitSuccess     = 0
	ExitHookFailure = 1
	ExitConfigError = 2
	ExitSystemError = 3
	ExitUserError   = 4
)

// Environment variable names, per spec.md §6.
const (
	EnvConfig   = "RUSTYHOOK_CONFIG"
	EnvCacheDir = "RUSTYHOOK_CACHE_DIR"
	EnvLogLevel = "RUSTYHOOK_LOG_LEVEL"
	EnvNoColor  = "RUSTYHOOK_NO_COLOR"
)

// DefaultCacheDirName is the cache root's default directory name at the
// repository root (spec.md §6's persisted state layout).
const DefaultCacheDirName = ".rustyhook"

// DefaultNativeConfigPath is where `init` scaffolds a config and `run`
// looks for one absent an override.
const DefaultNativeConfigPath = ".rustyhook/config.yaml"

// DefaultLegacyConfigPath is the well-known legacy dialect filename.
const DefaultLegacyConfigPath = ".pre-commit-config.yaml"

// LogLevel is one of the four levels spec.md §6 names for RUSTYHOOK_LOG_LEVEL.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

// Globals is the fully canonicalized set of inputs every subcommand needs,
// resolved once at the root command's PersistentPreRunE boundary from
// flags (highest priority) and environment variables (fallback).
type Globals struct {
	RepoRoot   string
	ConfigPath string
	CacheDir   string
	LogLevel   LogLevel
	NoColor    bool
}

// InvocationError pairs a message with the exit code it should produce,
// mirroring the teacher's InvocationError/ExitCode pattern in
// internal/cli/input.go.
type InvocationError struct {
	ExitCode int
	Message  string
}

func (e *InvocationError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func userErrorf(format string, args ...any) error {
	return &InvocationError{ExitCode: ExitUserError, Message: fmt.Sprintf(format, args...)}
}

// resolveGlobals builds a Globals from explicit flag values (empty string
// meaning "not set on the command line") and environment variable
// fallbacks, never reading an environment variable anywhere else in this
// package.
func resolveGlobals(repoRoot, configFlag, cacheDirFlag, logLevelFlag string, noColorFlag bool) (Globals, error) {
	g := Globals{RepoRoot: repoRoot}

	g.ConfigPath = firstNonEmpty(configFlag, os.Getenv(EnvConfig))
	g.CacheDir = firstNonEmpty(cacheDirFlag, os.Getenv(EnvCacheDir), DefaultCacheDirName)

	level := firstNonEmpty(logLevelFlag, os.Getenv(EnvLogLevel), string(LogLevelInfo))
	switch LogLevel(level) {
	case LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError:
		g.LogLevel = LogLevel(level)
	default:
		return Globals{}, userErrorf("invalid log level %q (expected debug|info|warn|error)", level)
	}

	g.NoColor = noColorFlag || os.Getenv(EnvNoColor) != "" || os.Getenv("NO_COLOR") != ""
	if g.NoColor {
		_ = os.Setenv("RUSTYHOOK_NO_COLOR", "1")
	}

	return g, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
