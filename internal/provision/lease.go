//go:build unix

package provision

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// fileLease is a cross-process advisory lock guarding a single staging
// directory, so two concurrent rustyhook invocations never install the same
// fingerprint at once. In-process dedup (single process, many goroutines)
// is handled separately by Provisioner's singleflight gate; this is the
// cross-process half of the lease discipline in spec.md §4.3.
type fileLease struct {
	f *os.File
}

// acquireLease blocks until it holds an exclusive flock on
// "<envDir>.lock", creating the shard directory if needed.
func acquireLease(envDir string) (*fileLease, error) {
	if err := os.MkdirAll(filepath.Dir(envDir), 0o755); err != nil {
		return nil, fmt.Errorf("creating lease parent dir: %w", err)
	}
	lockPath := envDir + ".lock"
	f, err := os.OpenFile(lockPath, os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening lease file: %w", err)
	}
	if err := unix.Flock(int(f.Fd()), unix.LOCK_EX); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("acquiring lease: %w", err)
	}
	return &fileLease{f: f}, nil
}

// release drops the flock and closes the lease file. The lock file itself
// is left on disk; it is a zero-cost handle for the next acquirer.
func (l *fileLease) release() error {
	if l == nil || l.f == nil {
		return nil
	}
	_ = unix.Flock(int(l.f.Fd()), unix.LOCK_UN)
	return l.f.Close()
}
