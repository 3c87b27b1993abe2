package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rustyhook/rustyhook/internal/hook"
)

func TestResult_SkippedShowsReasonInsteadOfDuration(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)
	r.Result(hook.HookResult{HookID: "gofmt", Outcome: hook.OutcomeSkipped, SkipReason: "no matching files"})
	assert.Contains(t, buf.String(), "gofmt (no matching files)")
	assert.Contains(t, buf.String(), "SKIPPED")
}

func TestResult_PassedShowsDuration(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)
	r.Result(hook.HookResult{HookID: "gofmt", Outcome: hook.OutcomePassed, Duration: 5 * time.Millisecond})
	assert.Contains(t, buf.String(), "gofmt (5ms)")
	assert.Contains(t, buf.String(), "PASSED")
}

func TestSummary_PrintsTallyLine(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)
	r.Summary(&hook.RunReport{
		Results: []hook.HookResult{
			{HookID: "a", Outcome: hook.OutcomePassed},
			{HookID: "b", Outcome: hook.OutcomeFailed},
		},
		Summary: hook.RunSummary{Passed: 1, Failed: 1},
	})
	assert.Contains(t, buf.String(), "1 passed, 1 failed, 0 skipped, 0 errored")
}

func TestNewReporter_BufferIsNeverATerminalSoColorIsDisabled(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(&buf)
	assert.False(t, r.useColor)
}
