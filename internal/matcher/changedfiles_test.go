package matcher

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	run := func(args ...string) {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, "git %v: %s", args, out)
	}
	run("init", "-q")
	run("config", "user.email", "test@example.com")
	run("config", "user.name", "test")
	return dir
}

func TestAllTrackedFiles(t *testing.T) {
	dir := initRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("b"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0o644))

	cmd := exec.Command("git", "add", "a.txt", "b.txt")
	cmd.Dir = dir
	require.NoError(t, cmd.Run())

	got, err := AllTrackedFiles(context.Background(), dir)
	require.NoError(t, err)
	require.Equal(t, []string{"a.txt", "b.txt"}, got)
}

func TestChangedFiles_ReflectsStagedChanges(t *testing.T) {
	dir := initRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "existing.txt"), []byte("v1"), 0o644))

	add := exec.Command("git", "add", "existing.txt")
	add.Dir = dir
	require.NoError(t, add.Run())
	commit := exec.Command("git", "commit", "-q", "-m", "initial")
	commit.Dir = dir
	require.NoError(t, commit.Run())

	require.NoError(t, os.WriteFile(filepath.Join(dir, "existing.txt"), []byte("v2"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "new.txt"), []byte("new"), 0o644))
	addAll := exec.Command("git", "add", "-A")
	addAll.Dir = dir
	require.NoError(t, addAll.Run())

	got, err := ChangedFiles(context.Background(), dir)
	require.NoError(t, err)
	require.Equal(t, []string{"existing.txt", "new.txt"}, got)
}

func TestChangedFiles_NoStagedChanges(t *testing.T) {
	dir := initRepo(t)
	commit := exec.Command("git", "commit", "-q", "--allow-empty", "-m", "initial")
	commit.Dir = dir
	require.NoError(t, commit.Run())

	got, err := ChangedFiles(context.Background(), dir)
	require.NoError(t, err)
	require.Empty(t, got)
}
