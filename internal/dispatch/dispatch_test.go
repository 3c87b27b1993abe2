package dispatch

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyhook/rustyhook/internal/hook"
)

func TestBuildInvocations_NoFilesYieldsBaseArgvOnly(t *testing.T) {
	h := &hook.Hook{Entry: "echo", Args: []string{"hi"}}
	invs := BuildInvocations(h, nil, "/repo", nil)
	require.Len(t, invs, 1)
	assert.Equal(t, []string{"echo", "hi"}, invs[0].Argv)
}

func TestBuildInvocations_PassFilenamesAppendsAllInOneInvocation(t *testing.T) {
	h := &hook.Hook{Entry: "black"}
	invs := BuildInvocations(h, nil, "/repo", []string{"a.py", "b.py"})
	require.Len(t, invs, 1)
	assert.Equal(t, []string{"black", "a.py", "b.py"}, invs[0].Argv)
}

func TestBuildInvocations_PassFilenamesFalseIgnoresFiles(t *testing.T) {
	no := false
	h := &hook.Hook{Entry: "black", PassFilenames: &no}
	invs := BuildInvocations(h, nil, "/repo", []string{"a.py", "b.py"})
	require.Len(t, invs, 1)
	assert.Equal(t, []string{"black"}, invs[0].Argv)
}

func TestBuildInvocations_SeparateProcessOnePerFile(t *testing.T) {
	h := &hook.Hook{Entry: "shellcheck", SeparateProcess: true}
	invs := BuildInvocations(h, nil, "/repo", []string{"a.sh", "b.sh"})
	require.Len(t, invs, 2)
	assert.Equal(t, []string{"shellcheck", "a.sh"}, invs[0].Argv)
	assert.Equal(t, []string{"shellcheck", "b.sh"}, invs[1].Argv)
}

func TestBuildInvocations_WorkingDirJoinsRepoRoot(t *testing.T) {
	h := &hook.Hook{Entry: "make", WorkingDir: "sub"}
	invs := BuildInvocations(h, nil, "/repo", nil)
	require.Len(t, invs, 1)
	assert.Equal(t, "/repo/sub", invs[0].WorkDir)
}

func TestBuildInvocations_EnvAllowlistedNotInherited(t *testing.T) {
	h := &hook.Hook{Entry: "tool", Env: map[string]string{"FOO": "bar"}}
	invs := BuildInvocations(h, nil, "/repo", nil)
	require.Len(t, invs, 1)
	assert.Equal(t, []string{"FOO=bar"}, invs[0].Env)
}

func TestBuildInvocations_EnvHandleContributesPathAndExtraEnv(t *testing.T) {
	h := &hook.Hook{Entry: "black"}
	handle := &hook.EnvHandle{BinDirs: []string{"/envs/abc/bin"}, ExtraEnv: map[string]string{"VIRTUAL_ENV": "/envs/abc"}}
	invs := BuildInvocations(h, handle, "/repo", nil)
	require.Len(t, invs, 1)
	assert.Contains(t, invs[0].Env, "PATH=/envs/abc/bin")
	assert.Contains(t, invs[0].Env, "VIRTUAL_ENV=/envs/abc")
}

func TestBuildInvocations_ChunksLargeFileListsByArgMax(t *testing.T) {
	h := &hook.Hook{Entry: "lint"}
	files := make([]string, 0, 20000)
	for i := 0; i < 20000; i++ {
		files = append(files, strings.Repeat("x", 20))
	}

	invs := BuildInvocations(h, nil, "/repo", files)
	assert.Greater(t, len(invs), 1)

	var total int
	for _, inv := range invs {
		total += len(inv.Argv) - 1 // minus the entry token
	}
	assert.Equal(t, len(files), total)
}

func TestRun_CapturesStdoutAndExitCode(t *testing.T) {
	res, err := Run(context.Background(), Invocation{Argv: []string{"/bin/echo", "hello"}, WorkDir: "/tmp"})
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "hello\n", string(res.Stdout))
}

func TestRun_NonZeroExitCodeIsNotAnError(t *testing.T) {
	res, err := Run(context.Background(), Invocation{Argv: []string{"/bin/sh", "-c", "exit 3"}, WorkDir: "/tmp"})
	require.NoError(t, err)
	assert.Equal(t, 3, res.ExitCode)
}

func TestRun_EmptyArgvErrors(t *testing.T) {
	_, err := Run(context.Background(), Invocation{})
	assert.Error(t, err)
}

func TestRun_CancellationKillsProcessGroup(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := Run(ctx, Invocation{Argv: []string{"/bin/sleep", "5"}, WorkDir: "/tmp"})
	assert.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
