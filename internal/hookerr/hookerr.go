// Package hookerr implements the error taxonomy spec.md §7 defines for
// hook orchestration: typed error structs a caller classifies centrally via
// Classify, rather than matching error strings.
//
// Grounded on the teacher's internal/recovery/state/failures.go: one
// struct per failure kind, each carrying an optional Cause and exposing
// Unwrap so errors.As/errors.Is work through wrapping.
package hookerr

import (
	"errors"
	"fmt"
)

// Kind is the coarse classification a CLI command uses to pick an exit
// code; it deliberately does not attempt to be a richer taxonomy than
// spec.md §7 names.
type Kind string

const (
	KindParse        Kind = "parse"
	KindRegistryMiss Kind = "registry_miss"
	KindProvision    Kind = "provision"
	KindSpawn        Kind = "spawn"
	KindHookFailure  Kind = "hook_failure"
	KindCancel       Kind = "cancel"
	KindUnknown      Kind = "unknown"
)

// ParseError wraps a config load/schema failure: invalid YAML, a schema
// violation, a duplicate hook id, or an uncompilable regex. Fatal at load
// time — no hooks run.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// RegistryMissError reports a legacy hook with no matching internal/registry
// entry. Non-fatal: the converter's permissive fallback still produces a
// Hook, this only records that the fallback happened.
type RegistryMissError struct {
	Repo   string
	HookID string
}

func (e *RegistryMissError) Error() string {
	return fmt.Sprintf("no registry entry for repo %q hook %q", e.Repo, e.HookID)
}

// ProvisionError wraps a toolchain installation failure: download,
// extraction, package-manager nonzero exit, or digest mismatch.
type ProvisionError struct {
	Tool  string
	Cause error
}

func (e *ProvisionError) Error() string {
	return fmt.Sprintf("provisioning %q: %v", e.Tool, e.Cause)
}

func (e *ProvisionError) Unwrap() error { return e.Cause }

// SpawnError wraps a failure to start a hook's process: executable not
// found, or permission denied.
type SpawnError struct {
	HookID string
	Cause  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("spawning hook %q: %v", e.HookID, e.Cause)
}

func (e *SpawnError) Unwrap() error { return e.Cause }

// HookFailureError wraps a hook whose tool exited nonzero.
type HookFailureError struct {
	HookID   string
	ExitCode int
}

func (e *HookFailureError) Error() string {
	return fmt.Sprintf("hook %q exited %d", e.HookID, e.ExitCode)
}

// CancelError wraps a run aborted by a termination signal.
type CancelError struct {
	HookID string
	Cause  error
}

func (e *CancelError) Error() string {
	if e.HookID != "" {
		return fmt.Sprintf("cancelled during hook %q: %v", e.HookID, e.Cause)
	}
	return fmt.Sprintf("cancelled: %v", e.Cause)
}

func (e *CancelError) Unwrap() error { return e.Cause }

// Classify inspects err's dynamic type via errors.As and returns the
// matching Kind, or KindUnknown if err is not one of this package's types.
func Classify(err error) Kind {
	if err == nil {
		return ""
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return KindParse
	}
	var rm *RegistryMissError
	if errors.As(err, &rm) {
		return KindRegistryMiss
	}
	var pv *ProvisionError
	if errors.As(err, &pv) {
		return KindProvision
	}
	var sp *SpawnError
	if errors.As(err, &sp) {
		return KindSpawn
	}
	var hf *HookFailureError
	if errors.As(err, &hf) {
		return KindHookFailure
	}
	var ce *CancelError
	if errors.As(err, &ce) {
		return KindCancel
	}
	return KindUnknown
}
