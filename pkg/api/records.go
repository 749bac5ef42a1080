package api

import (
	"context"
	"time"
)

// RecordType identifies a transition journal record.
type RecordType string

const (
	RecordMachineStarted RecordType = "machine.started"

	RecordTransitionCompleted RecordType = "transition.completed"
	RecordTransitionDenied    RecordType = "transition.denied"
	RecordTransitionFaulted   RecordType = "transition.faulted"
)

// TransitionRecord is a minimal append-only history record for audit and
// debugging. It is intentionally small and stable; richer history can be
// layered later.
//
// The journal is not a checkpoint: records are never read back to position
// a machine, and a new machine always starts at its model's initial state.
type TransitionRecord struct {
	MachineID string
	At        time.Time
	Type      RecordType

	// Optional context.
	Model string
	From  State
	To    State

	// Small, human-oriented details (e.g. the error string on failure).
	// Keep this low-volume: event payloads are never journaled.
	Detail string
}

// Journal is an append-only sink for transition records. Machines append
// best-effort: an append error never changes the outcome of a transition.
type Journal interface {
	Append(ctx context.Context, rec TransitionRecord) error

	// List returns the records for one machine in append order.
	List(ctx context.Context, machineID string) ([]TransitionRecord, error)
}

// NoopJournal discards all records.
// It is used as the default when no journal is configured.
type NoopJournal struct{}

func (NoopJournal) Append(ctx context.Context, rec TransitionRecord) error { return nil }
func (NoopJournal) List(ctx context.Context, machineID string) ([]TransitionRecord, error) {
	return nil, nil
}
