package api

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"
)

//
// Helpers
//

// testObserver is a simple Observer implementation used to verify fan-out behavior.
type testObserver struct {
	mu sync.Mutex

	machineStarts    int
	transitionStarts int
	completes        int

	lastMachineStart struct {
		Info    MachineInfo
		Initial State
	}
	lastTransitionStart struct {
		Info  MachineInfo
		From  State
		To    State
		Event any
	}
	lastCompleted struct {
		Info     MachineInfo
		From     State
		To       State
		Event    any
		Err      error
		Duration time.Duration
	}
}

func (o *testObserver) OnMachineStart(ctx context.Context, info MachineInfo, initial State) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.machineStarts++
	o.lastMachineStart = struct {
		Info    MachineInfo
		Initial State
	}{info, initial}
}

func (o *testObserver) OnTransitionStart(ctx context.Context, info MachineInfo, from, to State, event any) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.transitionStarts++
	o.lastTransitionStart = struct {
		Info  MachineInfo
		From  State
		To    State
		Event any
	}{info, from, to, event}
}

func (o *testObserver) OnTransitionCompleted(ctx context.Context, info MachineInfo, from, to State, event any, err error, d time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.completes++
	o.lastCompleted = struct {
		Info     MachineInfo
		From     State
		To       State
		Event    any
		Err      error
		Duration time.Duration
	}{info, from, to, event, err, d}
}

// recordingHandler is a minimal slog.Handler that just records log records.
type recordingHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *recordingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return true
}

func (h *recordingHandler) Handle(ctx context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	// Copy to avoid reuse issues.
	cpy := slog.Record{
		Time:    r.Time,
		Level:   r.Level,
		Message: r.Message,
	}
	r.Attrs(func(a slog.Attr) bool {
		cpy.AddAttrs(a)
		return true
	})
	h.records = append(h.records, cpy)
	return nil
}

func (h *recordingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	// Not needed for tests; just return itself.
	return h
}

func (h *recordingHandler) WithGroup(name string) slog.Handler {
	// Not needed for tests.
	return h
}

func attrsToMap(r slog.Record) map[string]any {
	m := make(map[string]any)
	r.Attrs(func(a slog.Attr) bool {
		m[a.Key] = a.Value.Any()
		return true
	})
	return m
}

func newTestInfo() MachineInfo {
	return MachineInfo{
		ID:    "machine-123",
		Model: "door",
	}
}

//
// NoopObserver
//

func TestNoopObserver_DoesNotPanic(t *testing.T) {
	ctx := context.Background()
	info := newTestInfo()
	var o Observer = NoopObserver{}

	// These calls should simply not panic.
	o.OnMachineStart(ctx, info, "locked")
	o.OnTransitionStart(ctx, info, "locked", "unlocked", nil)
	o.OnTransitionCompleted(ctx, info, "locked", "unlocked", nil, errors.New("boom"), time.Second)
}

//
// CompositeObserver
//

func TestNewCompositeObserver_EmptyReturnsNoop(t *testing.T) {
	o := NewCompositeObserver()
	if _, ok := o.(NoopObserver); !ok {
		t.Fatalf("expected NewCompositeObserver() to return NoopObserver, got %T", o)
	}
}

func TestNewCompositeObserver_SingleReturnsThatObserver(t *testing.T) {
	single := &testObserver{}
	o := NewCompositeObserver(single, nil) // include a nil to ensure it is filtered

	if got, ok := o.(*testObserver); !ok || got != single {
		t.Fatalf("expected the single non-nil observer to be returned, got %T (%p)", o, o)
	}
}

func TestNewCompositeObserver_MultipleReturnsComposite(t *testing.T) {
	o1 := &testObserver{}
	o2 := &testObserver{}
	o := NewCompositeObserver(o1, o2)

	if _, ok := o.(*CompositeObserver); !ok {
		t.Fatalf("expected *CompositeObserver, got %T", o)
	}
}

func TestCompositeObserver_ForwardsAllEvents(t *testing.T) {
	ctx := context.Background()
	info := newTestInfo()

	o1 := &testObserver{}
	o2 := &testObserver{}
	co, ok := NewCompositeObserver(o1, o2).(*CompositeObserver)
	if !ok {
		t.Fatalf("expected *CompositeObserver")
	}

	err := errors.New("transition failed")
	co.OnMachineStart(ctx, info, "locked")
	co.OnTransitionStart(ctx, info, "locked", "unlocked", "key turned")
	co.OnTransitionCompleted(ctx, info, "locked", "unlocked", "key turned", err, 2*time.Second)

	for i, o := range []*testObserver{o1, o2} {
		if o.machineStarts != 1 || o.transitionStarts != 1 || o.completes != 1 {
			t.Fatalf("observer %d did not receive all calls: %+v", i+1, o)
		}
		if o.lastMachineStart.Info != info || o.lastMachineStart.Initial != "locked" {
			t.Fatalf("observer %d machineStart mismatch: %+v", i+1, o.lastMachineStart)
		}
		if o.lastTransitionStart.From != "locked" || o.lastTransitionStart.To != "unlocked" ||
			o.lastTransitionStart.Event != "key turned" {
			t.Fatalf("observer %d transitionStart mismatch: %+v", i+1, o.lastTransitionStart)
		}
		if o.lastCompleted.From != "locked" || o.lastCompleted.To != "unlocked" ||
			o.lastCompleted.Err != err || o.lastCompleted.Duration != 2*time.Second {
			t.Fatalf("observer %d completed mismatch: %+v", i+1, o.lastCompleted)
		}
	}
}

//
// LoggingObserver
//

func TestNewLoggingObserver_NilLoggerUsesDefault(t *testing.T) {
	o := NewLoggingObserver(nil)
	lo, ok := o.(*LoggingObserver)
	if !ok {
		t.Fatalf("expected *LoggingObserver, got %T", o)
	}
	if lo.Logger == nil {
		t.Fatalf("expected non-nil Logger when created with nil")
	}
}

func TestLoggingObserver_OnMachineStart_EmitsInfoLog(t *testing.T) {
	ctx := context.Background()
	info := newTestInfo()

	h := &recordingHandler{}
	logger := slog.New(h)
	o := NewLoggingObserver(logger)

	o.OnMachineStart(ctx, info, "locked")

	if len(h.records) != 1 {
		t.Fatalf("expected 1 log record, got %d", len(h.records))
	}

	rec := h.records[0]
	if rec.Level != slog.LevelInfo {
		t.Fatalf("expected LevelInfo, got %v", rec.Level)
	}
	if rec.Message != "machine_start" {
		t.Fatalf("expected message machine_start, got %q", rec.Message)
	}

	attrs := attrsToMap(rec)
	if attrs["model"] != info.Model {
		t.Fatalf("expected model=%q, got %v", info.Model, attrs["model"])
	}
	if attrs["machine_id"] != info.ID {
		t.Fatalf("expected machine_id=%q, got %v", info.ID, attrs["machine_id"])
	}
	if attrs["initial"] != "locked" {
		t.Fatalf("expected initial=locked, got %v", attrs["initial"])
	}
}

func TestLoggingObserver_OnTransitionCompleted_LevelDependsOnError(t *testing.T) {
	ctx := context.Background()
	info := newTestInfo()

	h := &recordingHandler{}
	logger := slog.New(h)
	o := NewLoggingObserver(logger)

	// success
	o.OnTransitionCompleted(ctx, info, "locked", "unlocked", nil, nil, time.Second)
	// failure
	err := errors.New("boom")
	o.OnTransitionCompleted(ctx, info, "unlocked", "open", nil, err, 2*time.Second)

	if len(h.records) != 2 {
		t.Fatalf("expected 2 log records, got %d", len(h.records))
	}

	successRec := h.records[0]
	failRec := h.records[1]

	if successRec.Level != slog.LevelDebug {
		t.Fatalf("expected success record LevelDebug, got %v", successRec.Level)
	}
	if failRec.Level != slog.LevelError {
		t.Fatalf("expected failure record LevelError, got %v", failRec.Level)
	}
	if successRec.Message != "transition_completed" || failRec.Message != "transition_completed" {
		t.Fatalf("expected transition_completed messages, got %q and %q", successRec.Message, failRec.Message)
	}

	attrs := attrsToMap(failRec)
	if attrs["from"] != "unlocked" || attrs["to"] != "open" {
		t.Fatalf("expected from=unlocked to=open, got %v and %v", attrs["from"], attrs["to"])
	}
	if attrs["error"] == nil {
		t.Fatalf("expected error attribute on failure record, got nil")
	}
}

//
// BasicMetrics
//

func TestBasicMetrics_CountersAndSnapshot(t *testing.T) {
	var m BasicMetrics

	ctx := context.Background()
	info := newTestInfo()

	// 2 machines started, 3 transition attempts: 1 success, 1 denied, 1 faulted.
	m.OnMachineStart(ctx, info, "locked")
	m.OnMachineStart(ctx, info, "locked")

	m.OnTransitionStart(ctx, info, "locked", "unlocked", nil)
	m.OnTransitionCompleted(ctx, info, "locked", "unlocked", nil, nil, time.Second)

	m.OnTransitionStart(ctx, info, "unlocked", "unlocked", nil)
	m.OnTransitionCompleted(ctx, info, "unlocked", "unlocked", nil,
		&IllegalTransitionError{From: "unlocked", To: "unlocked"}, time.Second)

	m.OnTransitionStart(ctx, info, "unlocked", "open", nil)
	m.OnTransitionCompleted(ctx, info, "unlocked", "open", nil,
		&ActionExecutionError{State: "open", Phase: PhaseEnter, Stage: StagePostMutation, Err: errors.New("jam")}, time.Second)

	snap := m.Snapshot()

	if snap.MachinesStarted != 2 {
		t.Fatalf("MachinesStarted=%d, want 2", snap.MachinesStarted)
	}
	if snap.TransitionsStarted != 3 {
		t.Fatalf("TransitionsStarted=%d, want 3", snap.TransitionsStarted)
	}
	if snap.TransitionsCompleted != 1 {
		t.Fatalf("TransitionsCompleted=%d, want 1", snap.TransitionsCompleted)
	}
	if snap.TransitionsDenied != 1 {
		t.Fatalf("TransitionsDenied=%d, want 1", snap.TransitionsDenied)
	}
	if snap.ActionFailures != 1 {
		t.Fatalf("ActionFailures=%d, want 1", snap.ActionFailures)
	}
}

func TestBasicMetrics_GuardFailuresCountAsDenied(t *testing.T) {
	var m BasicMetrics
	ctx := context.Background()
	info := newTestInfo()

	m.OnTransitionCompleted(ctx, info, "off", "on", nil,
		&GuardRejectedError{From: "off", To: "on", Index: 0}, time.Second)
	m.OnTransitionCompleted(ctx, info, "off", "on", nil,
		&GuardEvaluationError{Target: "on", Index: 1, Err: errors.New("sensor offline")}, time.Second)

	snap := m.Snapshot()

	if snap.TransitionsDenied != 2 {
		t.Fatalf("TransitionsDenied=%d, want 2", snap.TransitionsDenied)
	}
	if snap.ActionFailures != 0 {
		t.Fatalf("ActionFailures=%d, want 0", snap.ActionFailures)
	}
	if snap.TransitionsCompleted != 0 {
		t.Fatalf("TransitionsCompleted=%d, want 0", snap.TransitionsCompleted)
	}
}

func TestBasicMetrics_SuccessOnlyCountsDuration(t *testing.T) {
	var m BasicMetrics
	ctx := context.Background()
	info := newTestInfo()

	// two successful transitions: 1s and 3s
	m.OnTransitionCompleted(ctx, info, "off", "on", nil, nil, 1*time.Second)
	m.OnTransitionCompleted(ctx, info, "on", "off", nil, nil, 3*time.Second)

	// one failed transition, should NOT affect the average
	err := &ActionExecutionError{State: "on", Phase: PhaseEnter, Stage: StagePostMutation, Err: errors.New("fail")}
	m.OnTransitionCompleted(ctx, info, "off", "on", nil, err, 10*time.Second)

	snap := m.Snapshot()

	if snap.TransitionsCompleted != 2 {
		t.Fatalf("TransitionsCompleted=%d, want 2", snap.TransitionsCompleted)
	}

	wantAvg := 2 * time.Second // (1s + 3s) / 2
	if snap.AvgTransitionDuration != wantAvg {
		t.Fatalf("AvgTransitionDuration=%v, want %v", snap.AvgTransitionDuration, wantAvg)
	}
}

func TestBasicMetrics_SnapshotZeroTransitionsHasZeroAverage(t *testing.T) {
	var m BasicMetrics
	snap := m.Snapshot()
	if snap.TransitionsCompleted != 0 {
		t.Fatalf("TransitionsCompleted=%d, want 0", snap.TransitionsCompleted)
	}
	if snap.AvgTransitionDuration != 0 {
		t.Fatalf("AvgTransitionDuration=%v, want 0", snap.AvgTransitionDuration)
	}
}
