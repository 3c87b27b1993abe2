// Package cachestore implements the on-disk layout for provisioned
// toolchain environments: one directory per Fingerprint, made visible only
// once a ".ready" marker is committed atomically.
//
// The atomic-commit discipline is adapted from the teacher's
// internal/core/cache.go FileCache.Put: write into a temp directory on the
// same filesystem, then rename into place, so a crash mid-install can never
// leave a partially-installed environment looking ready.
package cachestore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/rustyhook/rustyhook/internal/fingerprint"
	"github.com/rustyhook/rustyhook/internal/hook"
)

const readyMarker = ".ready"

// Store is the root of the provisioned-environment cache.
type Store struct {
	RootDir string
}

// New creates a Store rooted at rootDir. rootDir is created if absent.
func New(rootDir string) (*Store, error) {
	if err := os.MkdirAll(rootDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating cache root: %w", err)
	}
	return &Store{RootDir: rootDir}, nil
}

// EnvDir returns the (possibly not-yet-existing) directory for a digest.
func (s *Store) EnvDir(d fingerprint.Digest) string {
	return filepath.Join(s.RootDir, d.ShardPrefix(), d.String())
}

// IsReady reports whether the environment for d has a committed .ready
// marker whose recorded EnvSpec equals spec exactly (spec.md §4.3 step 3:
// reuse only "if ... its recorded EnvSpec equals E"). This is the
// Provisioner's single source of truth for "usable" — a digest collision
// against a different spec, or a marker left over from a stale layout,
// reports not-ready rather than being reused blindly.
func (s *Store) IsReady(d fingerprint.Digest, spec hook.EnvSpec) bool {
	recorded, err := s.readMarker(d)
	if err != nil {
		return false
	}
	want, err := canonicalEnvSpecJSON(spec)
	if err != nil {
		return false
	}
	return bytes.Equal(recorded, want)
}

// hasMarker reports whether a .ready marker exists for d at all, regardless
// of its recorded EnvSpec. Used by List/doctor reindexing, which only needs
// to know which digests were committed, not what they were committed for.
func (s *Store) hasMarker(d fingerprint.Digest) bool {
	_, err := os.Stat(filepath.Join(s.EnvDir(d), readyMarker))
	return err == nil
}

func (s *Store) readMarker(d fingerprint.Digest) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.EnvDir(d), readyMarker))
}

// canonicalEnvSpecJSON serializes spec deterministically: Dependencies are
// sorted first so that two installs of the same logical EnvSpec (spec.md
// §8's "idempotent provisioning" property) always produce byte-identical
// marker contents, matching the order-insensitivity of
// internal/fingerprint.Compute.
func canonicalEnvSpecJSON(spec hook.EnvSpec) ([]byte, error) {
	deps := make([]string, len(spec.Dependencies))
	copy(deps, spec.Dependencies)
	sort.Strings(deps)
	spec.Dependencies = deps
	return json.Marshal(spec)
}

// StagingDir creates a fresh temp directory beside the final env directory,
// on the same filesystem so the later rename is atomic. Callers install the
// toolchain into this directory and then call Commit.
func (s *Store) StagingDir(d fingerprint.Digest) (string, error) {
	parent := filepath.Join(s.RootDir, d.ShardPrefix())
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return "", fmt.Errorf("creating shard directory: %w", err)
	}
	return os.MkdirTemp(parent, "staging-"+d.String()+"-")
}

// Commit atomically publishes a staged install as the ready environment for
// d: it writes the .ready marker inside the staging directory first (so a
// crash before rename leaves an orphaned staging dir, never a half-ready
// published one), then renames staging into place. The marker's contents
// are the canonical serialized EnvSpec (spec.md §6), not a timestamp, so
// IsReady can compare "what was installed" against "what is being asked
// for" instead of only checking presence.
func (s *Store) Commit(d fingerprint.Digest, stagingDir string, spec hook.EnvSpec) error {
	contents, err := canonicalEnvSpecJSON(spec)
	if err != nil {
		return fmt.Errorf("encoding ready marker: %w", err)
	}

	markerPath := filepath.Join(stagingDir, readyMarker)
	if err := writeFileAtomic(markerPath, contents, 0o644); err != nil {
		return fmt.Errorf("writing ready marker: %w", err)
	}

	final := s.EnvDir(d)
	if err := os.RemoveAll(final); err != nil {
		return fmt.Errorf("clearing stale env dir: %w", err)
	}
	if err := os.Rename(stagingDir, final); err != nil {
		return fmt.Errorf("committing env dir: %w", err)
	}
	return nil
}

// Discard removes a staging directory that failed to install, so it never
// accumulates as garbage.
func (s *Store) Discard(stagingDir string) {
	_ = os.RemoveAll(stagingDir)
}

// Remove deletes a previously-committed environment (used by `clean`).
func (s *Store) Remove(d fingerprint.Digest) error {
	return os.RemoveAll(s.EnvDir(d))
}

// List returns every ready digest currently on disk, by walking the shard
// directories. This is the fallback path `doctor --reindex` uses to rebuild
// internal/cachestore's badger index from ground truth.
func (s *Store) List() ([]fingerprint.Digest, error) {
	var out []fingerprint.Digest
	shards, err := os.ReadDir(s.RootDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	for _, shard := range shards {
		if !shard.IsDir() {
			continue
		}
		entries, err := os.ReadDir(filepath.Join(s.RootDir, shard.Name()))
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if !e.IsDir() {
				continue
			}
			d := fingerprint.Digest(e.Name())
			if s.hasMarker(d) {
				out = append(out, d)
			}
		}
	}
	return out, nil
}

func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	tmp, err := os.CreateTemp(dir, base+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	_ = tmp.Sync()
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
