package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransition_ValidSequenceSucceeds(t *testing.T) {
	state := ExecutionState{"a": StatePending}

	require.NoError(t, Transition(state, "a", StatePending, StateProvisioning))
	require.NoError(t, Transition(state, "a", StateProvisioning, StateQueued))
	require.NoError(t, Transition(state, "a", StateQueued, StateRunning))
	require.NoError(t, Transition(state, "a", StateRunning, StatePassed))
	assert.Equal(t, StatePassed, state["a"])
}

func TestTransition_RejectsDisallowedTransition(t *testing.T) {
	state := ExecutionState{"a": StatePending}
	err := Transition(state, "a", StatePending, StateRunning)
	assert.ErrorContains(t, err, "disallowed transition")
	assert.Equal(t, StatePending, state["a"], "a rejected transition must not mutate state")
}

func TestTransition_RejectsMismatchedExpectedFrom(t *testing.T) {
	state := ExecutionState{"a": StateQueued}
	err := Transition(state, "a", StatePending, StateProvisioning)
	assert.ErrorContains(t, err, "invalid transition")
}

func TestTransition_UnknownHookErrors(t *testing.T) {
	state := ExecutionState{}
	err := Transition(state, "ghost", StatePending, StateProvisioning)
	assert.ErrorContains(t, err, "unknown hook")
}

func TestSkipRemaining_OnlyTouchesNonTerminalHooks(t *testing.T) {
	state := ExecutionState{
		"pending": StatePending,
		"running": StateRunning,
		"passed":  StatePassed,
		"skipped": StateSkipped,
		"errored": StateErrored,
	}

	skipped := SkipRemaining(state, "fail-fast")

	assert.ElementsMatch(t, []string{"pending", "running"}, skipped)
	assert.Equal(t, StateSkipped, state["pending"])
	assert.Equal(t, StateSkipped, state["running"])
	assert.Equal(t, StatePassed, state["passed"], "terminal states must be left untouched")
	assert.Equal(t, StateErrored, state["errored"])
}

func TestIsTerminal(t *testing.T) {
	terminal := []HookState{StatePassed, StateFailed, StateErrored, StateSkipped}
	for _, s := range terminal {
		assert.True(t, IsTerminal(s), "%s should be terminal", s)
	}

	nonTerminal := []HookState{StatePending, StateProvisioning, StateQueued, StateRunning}
	for _, s := range nonTerminal {
		assert.False(t, IsTerminal(s), "%s should not be terminal", s)
	}
}
