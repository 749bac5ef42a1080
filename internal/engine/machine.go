package engine

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/petrijr/stato/pkg/api"
)

// machineSeq mints default instance IDs. Machines are single-threaded, but a
// shared Program may construct them from many goroutines, so the counter is
// atomic.
var machineSeq atomic.Int64

// machine drives one Program. current is the only mutable field; the machine
// takes no locks, per the single-threaded contract.
type machine struct {
	prog    *Program
	current api.State

	info     api.MachineInfo
	observer api.Observer
	journal  api.Journal
}

var _ api.Machine = (*machine)(nil)

// New constructs a machine positioned at prog's initial state.
func New(prog *Program, cfg api.MachineConfig) api.Machine {
	obs := cfg.Observer
	if obs == nil {
		obs = api.NoopObserver{}
	}
	jnl := cfg.Journal
	if jnl == nil {
		jnl = api.NoopJournal{}
	}
	id := cfg.ID
	if id == "" {
		id = fmt.Sprintf("machine-%d", machineSeq.Add(1))
	}

	m := &machine{
		prog:     prog,
		current:  prog.initial,
		info:     api.MachineInfo{ID: id, Model: prog.name},
		observer: obs,
		journal:  jnl,
	}

	ctx := context.Background()
	m.observer.OnMachineStart(ctx, m.info, m.current)
	_ = m.journal.Append(ctx, api.TransitionRecord{
		MachineID: m.info.ID,
		At:        time.Now(),
		Type:      api.RecordMachineStarted,
		Model:     m.info.Model,
		To:        m.current,
	})

	return m
}

func (m *machine) ID() string    { return m.info.ID }
func (m *machine) Model() string { return m.info.Model }

func (m *machine) CurrentState() api.State { return m.current }

func (m *machine) CanTransition(target api.State) bool {
	return m.prog.Allowed(m.current, target)
}

func (m *machine) Transition(ctx context.Context, target api.State, event any) (api.State, error) {
	from := m.current

	m.observer.OnTransitionStart(ctx, m.info, from, target, event)
	start := time.Now()

	if !m.prog.Allowed(from, target) {
		err := &api.IllegalTransitionError{From: from, To: target}
		return from, m.finish(ctx, from, target, event, err, start)
	}

	for i, g := range m.prog.guards[target] {
		ok, err := g(ctx)
		if err != nil {
			werr := &api.GuardEvaluationError{Target: target, Index: i, Err: err}
			return from, m.finish(ctx, from, target, event, werr, start)
		}
		if !ok {
			werr := &api.GuardRejectedError{From: from, To: target, Index: i}
			return from, m.finish(ctx, from, target, event, werr, start)
		}
	}

	if exit := m.prog.exit[from]; exit != nil {
		if err := exit(ctx, event); err != nil {
			werr := &api.ActionExecutionError{State: from, Phase: api.PhaseExit, Stage: api.StagePreMutation, Err: err}
			return from, m.finish(ctx, from, target, event, werr, start)
		}
	}

	// Point of no return: from here the machine is in the target state,
	// whatever the entry action does.
	m.current = target

	if enter := m.prog.enter[target]; enter != nil {
		if err := enter(ctx, event); err != nil {
			werr := &api.ActionExecutionError{State: target, Phase: api.PhaseEnter, Stage: api.StagePostMutation, Err: err}
			return from, m.finish(ctx, from, target, event, werr, start)
		}
	}

	return from, m.finish(ctx, from, target, event, nil, start)
}

// finish emits the completion hook and the journal record for one attempt,
// passing err through unchanged. Journal appends are best-effort.
func (m *machine) finish(ctx context.Context, from, to api.State, event any, err error, start time.Time) error {
	m.observer.OnTransitionCompleted(ctx, m.info, from, to, event, err, time.Since(start))

	rec := api.TransitionRecord{
		MachineID: m.info.ID,
		At:        time.Now(),
		Type:      recordType(err),
		Model:     m.info.Model,
		From:      from,
		To:        to,
	}
	if err != nil {
		rec.Detail = err.Error()
	}
	_ = m.journal.Append(ctx, rec)

	return err
}

func recordType(err error) api.RecordType {
	switch {
	case err == nil:
		return api.RecordTransitionCompleted
	case api.IsTransitionDenied(err):
		return api.RecordTransitionDenied
	default:
		return api.RecordTransitionFaulted
	}
}
