package trace

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder_FinishReturnsCanonicalizedTrace(t *testing.T) {
	r := NewRecorder("run-1")
	r.Record(EventHookSkipped, "b", "no matching files")
	r.Record(EventHookProvisioning, "a", "")
	r.Record(EventHookQueued, "a", "")

	tr := r.Finish()
	require.Len(t, tr.Events, 3)
	assert.Equal(t, "a", tr.Events[0].HookID)
	assert.Equal(t, "run-1", tr.RunID)
}

func TestRecorder_ConcurrentRecordIsSafe(t *testing.T) {
	r := NewRecorder("run-2")
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r.Record(EventHookPassed, "hook", "")
		}(i)
	}
	wg.Wait()

	tr := r.Finish()
	assert.Len(t, tr.Events, 50)
}
