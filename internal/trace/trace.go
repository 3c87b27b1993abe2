// Package trace records the deterministic, ordered lifecycle events of a
// run: which hooks were skipped and why, when provisioning started, when a
// hook was dispatched, and its terminal outcome.
//
// Adapted from the teacher's internal/trace package: the canonicalization
// and custom MarshalJSON field-ordering are kept nearly verbatim, with
// event kinds renamed from graph-execution semantics to hook semantics.
package trace

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
)

// ExecutionTrace is the canonical, deterministic record of one run.
type ExecutionTrace struct {
	RunID  string
	Events []Event
}

// EventKind is the stable discriminator for Event. These values are part of
// the trace's canonical bytes; do not rename them.
type EventKind string

const (
	EventHookSkipped      EventKind = "HookSkipped"
	EventHookProvisioning EventKind = "HookProvisioning"
	EventHookQueued       EventKind = "HookQueued"
	EventHookRunning      EventKind = "HookRunning"
	EventHookPassed       EventKind = "HookPassed"
	EventHookFailed       EventKind = "HookFailed"
	EventHookErrored      EventKind = "HookErrored"
)

// Event is a single logical transition for one hook.
type Event struct {
	Kind   EventKind
	HookID string
	Reason string
}

// Validate checks basic invariants.
func (t *ExecutionTrace) Validate() error {
	if t == nil {
		return errors.New("trace is nil")
	}
	if t.RunID == "" {
		return errors.New("runID is required")
	}
	for i, e := range t.Events {
		if e.Kind == "" {
			return fmt.Errorf("events[%d].kind is required", i)
		}
		if e.HookID == "" {
			return fmt.Errorf("events[%d].hookID is required", i)
		}
	}
	return nil
}

// Canonicalize sorts events into a total order independent of execution
// timing or goroutine scheduling: primarily by HookID, then by lifecycle
// order, then by Reason.
func (t *ExecutionTrace) Canonicalize() {
	if t == nil {
		return
	}
	sort.SliceStable(t.Events, func(i, j int) bool {
		a, b := t.Events[i], t.Events[j]
		if a.HookID != b.HookID {
			return a.HookID < b.HookID
		}
		if kindOrder(a.Kind) != kindOrder(b.Kind) {
			return kindOrder(a.Kind) < kindOrder(b.Kind)
		}
		return a.Reason < b.Reason
	})
}

func kindOrder(k EventKind) int {
	switch k {
	case EventHookSkipped:
		return 10
	case EventHookProvisioning:
		return 20
	case EventHookQueued:
		return 30
	case EventHookRunning:
		return 40
	case EventHookPassed:
		return 50
	case EventHookFailed:
		return 60
	case EventHookErrored:
		return 70
	default:
		return 1000
	}
}

// CanonicalJSON returns the canonical JSON encoding of a copy of the trace.
func (t ExecutionTrace) CanonicalJSON() ([]byte, error) {
	cp := ExecutionTrace{RunID: t.RunID, Events: append([]Event(nil), t.Events...)}
	cp.Canonicalize()
	if err := cp.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(&cp)
}

// Hash returns the deterministic sha256 hex digest of the canonical JSON.
func (t ExecutionTrace) Hash() (string, error) {
	b, err := t.CanonicalJSON()
	if err != nil {
		return "", err
	}
	return ComputeTraceHash(b), nil
}

// MarshalJSON fixes field order: runId, then events.
func (t ExecutionTrace) MarshalJSON() ([]byte, error) {
	if t.RunID == "" {
		return nil, errors.New("runID is required")
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	buf.WriteString(`"runId":`)
	rb, _ := json.Marshal(t.RunID)
	buf.Write(rb)
	buf.WriteByte(',')
	buf.WriteString(`"events":[`)
	for i, e := range t.Events {
		if i > 0 {
			buf.WriteByte(',')
		}
		eb, err := json.Marshal(e)
		if err != nil {
			return nil, err
		}
		buf.Write(eb)
	}
	buf.WriteString("]}")
	return buf.Bytes(), nil
}

// MarshalJSON fixes field order: kind, hookId, reason (reason omitted when
// empty).
func (e Event) MarshalJSON() ([]byte, error) {
	if e.Kind == "" {
		return nil, errors.New("kind is required")
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	buf.WriteString(`"kind":`)
	kb, _ := json.Marshal(string(e.Kind))
	buf.Write(kb)
	buf.WriteString(`,"hookId":`)
	hb, _ := json.Marshal(e.HookID)
	buf.Write(hb)
	if e.Reason != "" {
		buf.WriteString(`,"reason":`)
		rb, _ := json.Marshal(e.Reason)
		buf.Write(rb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
