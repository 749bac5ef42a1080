package api

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"
)

// Observer receives callbacks from machine instances for logging and metrics.
//
// Hooks are called synchronously from Machine.Transition, so implementations
// should be fast and non-blocking. Observers must not call back into the
// machine that invoked them.
type Observer interface {
	// OnMachineStart is called once when a machine instance is constructed,
	// positioned at its model's initial state.
	OnMachineStart(ctx context.Context, info MachineInfo, initial State)

	// OnTransitionStart is called at the top of Machine.Transition, before
	// the table lookup.
	OnTransitionStart(ctx context.Context, info MachineInfo, from, to State, event any)

	// OnTransitionCompleted is called after a transition attempt finishes,
	// for both successes and failures (err != nil carries the taxonomy
	// error). On entry-action failures the machine has already moved to
	// the target state despite the non-nil err.
	OnTransitionCompleted(ctx context.Context, info MachineInfo, from, to State, event any, err error, duration time.Duration)
}

// NoopObserver is an Observer that does nothing.
// It is used as the default when no observer is configured.
type NoopObserver struct{}

func (NoopObserver) OnMachineStart(ctx context.Context, info MachineInfo, initial State) {}
func (NoopObserver) OnTransitionStart(ctx context.Context, info MachineInfo, from, to State, event any) {
}
func (NoopObserver) OnTransitionCompleted(ctx context.Context, info MachineInfo, from, to State, event any, err error, d time.Duration) {
}

// CompositeObserver fans out callbacks to multiple observers.
type CompositeObserver struct {
	observers []Observer
}

// NewCompositeObserver creates an Observer that forwards callbacks to each
// non-nil observer in obs.
func NewCompositeObserver(obs ...Observer) Observer {
	filtered := make([]Observer, 0, len(obs))
	for _, o := range obs {
		if o != nil {
			filtered = append(filtered, o)
		}
	}
	if len(filtered) == 0 {
		return NoopObserver{}
	}
	if len(filtered) == 1 {
		return filtered[0]
	}
	return &CompositeObserver{observers: filtered}
}

func (c *CompositeObserver) OnMachineStart(ctx context.Context, info MachineInfo, initial State) {
	for _, o := range c.observers {
		o.OnMachineStart(ctx, info, initial)
	}
}

func (c *CompositeObserver) OnTransitionStart(ctx context.Context, info MachineInfo, from, to State, event any) {
	for _, o := range c.observers {
		o.OnTransitionStart(ctx, info, from, to, event)
	}
}

func (c *CompositeObserver) OnTransitionCompleted(ctx context.Context, info MachineInfo, from, to State, event any, err error, d time.Duration) {
	for _, o := range c.observers {
		o.OnTransitionCompleted(ctx, info, from, to, event, err, d)
	}
}

// LoggingObserver writes structured logs using log/slog.
type LoggingObserver struct {
	Logger *slog.Logger
}

// NewLoggingObserver creates an Observer that logs machine / transition
// lifecycle events using the provided slog.Logger. If logger is nil,
// slog.Default() is used.
func NewLoggingObserver(logger *slog.Logger) Observer {
	if logger == nil {
		logger = slog.Default()
	}
	return &LoggingObserver{Logger: logger}
}

func (o *LoggingObserver) OnMachineStart(ctx context.Context, info MachineInfo, initial State) {
	o.Logger.InfoContext(ctx, "machine_start",
		slog.String("model", info.Model),
		slog.String("machine_id", info.ID),
		slog.String("initial", string(initial)),
	)
}

func (o *LoggingObserver) OnTransitionStart(ctx context.Context, info MachineInfo, from, to State, event any) {
	o.Logger.DebugContext(ctx, "transition_start",
		slog.String("model", info.Model),
		slog.String("machine_id", info.ID),
		slog.String("from", string(from)),
		slog.String("to", string(to)),
	)
}

func (o *LoggingObserver) OnTransitionCompleted(ctx context.Context, info MachineInfo, from, to State, event any, err error, d time.Duration) {
	level := slog.LevelDebug
	if err != nil {
		level = slog.LevelError
	}
	o.Logger.Log(ctx, level, "transition_completed",
		slog.String("model", info.Model),
		slog.String("machine_id", info.ID),
		slog.String("from", string(from)),
		slog.String("to", string(to)),
		slog.Duration("duration", d),
		slog.Any("error", err),
	)
}

// BasicMetrics collects simple counters and aggregate transition durations.
// It implements Observer, and can be combined with LoggingObserver via
// NewCompositeObserver.
type BasicMetrics struct {
	NoopObserver

	machinesStarted         atomic.Int64
	transitionsStarted      atomic.Int64
	transitionsCompleted    atomic.Int64
	transitionsDenied       atomic.Int64
	actionFailures          atomic.Int64
	totalTransitionDuration atomic.Int64 // nanoseconds
}

// BasicMetricsSnapshot is an immutable snapshot of BasicMetrics.
type BasicMetricsSnapshot struct {
	MachinesStarted      int64
	TransitionsStarted   int64
	TransitionsCompleted int64
	TransitionsDenied    int64
	ActionFailures       int64

	AvgTransitionDuration time.Duration
}

func (m *BasicMetrics) OnMachineStart(ctx context.Context, info MachineInfo, initial State) {
	m.machinesStarted.Add(1)
}

func (m *BasicMetrics) OnTransitionStart(ctx context.Context, info MachineInfo, from, to State, event any) {
	m.transitionsStarted.Add(1)
}

func (m *BasicMetrics) OnTransitionCompleted(ctx context.Context, info MachineInfo, from, to State, event any, err error, d time.Duration) {
	if err == nil {
		// Only successful transitions count toward the average duration.
		m.transitionsCompleted.Add(1)
		m.totalTransitionDuration.Add(d.Nanoseconds())
		return
	}
	if IsTransitionDenied(err) {
		m.transitionsDenied.Add(1)
		return
	}
	var actionErr *ActionExecutionError
	if errors.As(err, &actionErr) {
		m.actionFailures.Add(1)
	}
}

// Snapshot returns a snapshot of the current metrics.
func (m *BasicMetrics) Snapshot() BasicMetricsSnapshot {
	completed := m.transitionsCompleted.Load()
	totalNs := m.totalTransitionDuration.Load()

	var avg time.Duration
	if completed > 0 {
		avg = time.Duration(totalNs / completed)
	}

	return BasicMetricsSnapshot{
		MachinesStarted:       m.machinesStarted.Load(),
		TransitionsStarted:    m.transitionsStarted.Load(),
		TransitionsCompleted:  completed,
		TransitionsDenied:     m.transitionsDenied.Load(),
		ActionFailures:        m.actionFailures.Load(),
		AvgTransitionDuration: avg,
	}
}
