package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"

	"github.com/rustyhook/rustyhook/internal/hook"
)

// Persist writes report to <dir>/run.json atomically and durably: a
// temp-file write, fsync, rename, then directory fsync, adapted from the
// teacher's internal/recovery/state.Store writeFileAtomicDurable/
// ensureDirDurable pair. A crash mid-write can never leave a corrupt or
// partially-written run.json behind.
func Persist(dir string, report *hook.RunReport) error {
	if err := ensureDirDurable(dir, 0o755); err != nil {
		return err
	}
	clean := *report
	clean.Results = make([]hook.HookResult, len(report.Results))
	for i, res := range report.Results {
		res.Stdout, res.Stderr = StripANSI(res.Stdout), StripANSI(res.Stderr)
		clean.Results[i] = res
	}
	data, err := json.MarshalIndent(&clean, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return writeFileAtomicDurable(filepath.Join(dir, "run.json"), data, 0o644)
}

// Load reads a previously Persisted RunReport, rejecting unknown fields and
// trailing content the same way the teacher's readJSONStrict does.
func Load(dir string) (*hook.RunReport, error) {
	f, err := os.Open(filepath.Join(dir, "run.json"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var report hook.RunReport
	dec := json.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&report); err != nil {
		return nil, err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return nil, errors.New("invalid run.json: trailing content")
	}
	return &report, nil
}

func ensureDirDurable(dir string, perm os.FileMode) error {
	if err := os.MkdirAll(dir, perm); err != nil {
		return err
	}
	if err := fsyncDir(dir); err != nil {
		return err
	}
	parent := filepath.Dir(dir)
	if parent != dir {
		if err := fsyncDir(parent); err != nil {
			return err
		}
	}
	return nil
}

func writeFileAtomicDurable(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, base+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := io.Copy(tmp, bytes.NewReader(data)); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return fsyncDir(dir)
}

func fsyncDir(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
