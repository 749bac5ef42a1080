package stato

import (
	"database/sql"

	"github.com/petrijr/stato/internal/journal"
	"github.com/petrijr/stato/pkg/api"
)

// Re-export key types so users don't need to dig into pkg/api.

type (
	State         = api.State
	Phase         = api.Phase
	Guard         = api.Guard
	Action        = api.Action
	Transition    = api.Transition
	GuardBinding  = api.GuardBinding
	ActionBinding = api.ActionBinding
	Declaration   = api.Declaration
	Machine       = api.Machine
	MachineInfo   = api.MachineInfo
	MachineOption = api.MachineOption
	Stage         = api.Stage

	Observer             = api.Observer
	LoggingObserver      = api.LoggingObserver
	BasicMetrics         = api.BasicMetrics
	BasicMetricsSnapshot = api.BasicMetricsSnapshot
	CompositeObserver    = api.CompositeObserver
	NoopObserver         = api.NoopObserver

	Journal          = api.Journal
	NoopJournal      = api.NoopJournal
	TransitionRecord = api.TransitionRecord
	RecordType       = api.RecordType
)

// Re-export the error taxonomy.

type (
	InvalidInitialStateError = api.InvalidInitialStateError
	DuplicateActionError     = api.DuplicateActionError
	UnknownStateError        = api.UnknownStateError
	IllegalTransitionError   = api.IllegalTransitionError
	GuardEvaluationError     = api.GuardEvaluationError
	GuardRejectedError       = api.GuardRejectedError
	ActionExecutionError     = api.ActionExecutionError
)

// Re-export common observer helpers, machine options and error predicates.

var (
	NewLoggingObserver   = api.NewLoggingObserver
	NewCompositeObserver = api.NewCompositeObserver

	WithMachineID = api.WithMachineID
	WithObserver  = api.WithObserver
	WithJournal   = api.WithJournal

	IsConfigurationError = api.IsConfigurationError
	IsTransitionDenied   = api.IsTransitionDenied
)

// Re-export sentinel configuration errors.

var (
	ErrNoTransitions = api.ErrNoTransitions
	ErrNilGuard      = api.ErrNilGuard
	ErrNilAction     = api.ErrNilAction
	ErrUnknownPhase  = api.ErrUnknownPhase
)

// Re-export phase, stage and record type values for convenience.

const (
	PhaseEnter = api.PhaseEnter
	PhaseExit  = api.PhaseExit

	StagePreMutation  = api.StagePreMutation
	StagePostMutation = api.StagePostMutation

	RecordMachineStarted      = api.RecordMachineStarted
	RecordTransitionCompleted = api.RecordTransitionCompleted
	RecordTransitionDenied    = api.RecordTransitionDenied
	RecordTransitionFaulted   = api.RecordTransitionFaulted
)

// Journal constructors
// These wrap the internal/journal package so external callers
// never need to import internal packages.

// NewMemoryJournal returns a goroutine-safe Journal backed by memory.
// Useful for tests and for inspecting recent history in-process.
func NewMemoryJournal() Journal {
	return journal.NewMemory()
}

// NewSQLiteJournal returns a Journal that appends records to a SQLite
// database, creating its table if needed. The caller owns db and is expected
// to have opened it with a SQLite driver such as modernc.org/sqlite.
func NewSQLiteJournal(db *sql.DB) (Journal, error) {
	return journal.NewSQLite(db)
}
