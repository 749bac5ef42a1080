package api

import (
	"errors"
	"fmt"
)

// Sentinel configuration errors. They are degenerate-declaration cases and
// are always wrapped with positional context, so match them with errors.Is.
var (
	// ErrNoTransitions is returned when a declaration contains no transition pairs.
	ErrNoTransitions = errors.New("declaration has no transitions")

	// ErrNilGuard is returned when a guard binding carries a nil callable.
	ErrNilGuard = errors.New("guard is nil")

	// ErrNilAction is returned when an action binding carries a nil callable.
	ErrNilAction = errors.New("action is nil")

	// ErrUnknownPhase is returned when an action binding names a phase
	// outside the closed set of PhaseEnter and PhaseExit.
	ErrUnknownPhase = errors.New("unknown action phase")
)

// Stage tells whether an action failed before or after the state change.
type Stage string

const (
	// StagePreMutation marks an exit-action failure; the machine did not move.
	StagePreMutation Stage = "pre-mutation"

	// StagePostMutation marks an entry-action failure; the machine had
	// already moved and keeps the new state.
	StagePostMutation Stage = "post-mutation"
)

// InvalidInitialStateError reports a declaration whose initial state is
// missing from the derived state set. With the set derived as the union of
// all pair elements plus the initial state itself, only an absent (empty)
// initial state can trigger it.
type InvalidInitialStateError struct {
	Initial State
}

func (e *InvalidInitialStateError) Error() string {
	if e.Initial == "" {
		return "initial state is required"
	}
	return fmt.Sprintf("initial state %q is not part of the state set", e.Initial)
}

// DuplicateActionError reports a second action bound to a (state, phase)
// slot that already holds one.
type DuplicateActionError struct {
	State State
	Phase Phase
}

func (e *DuplicateActionError) Error() string {
	return fmt.Sprintf("state %q already has an action for phase %q", e.State, e.Phase)
}

// UnknownStateError reports a guard or action bound to a state that does not
// appear in the derived state set.
type UnknownStateError struct {
	State State

	// Binding names the offending binding kind, "guard" or "action".
	Binding string
}

func (e *UnknownStateError) Error() string {
	return fmt.Sprintf("%s bound to state %q, which is not declared in the transition list", e.Binding, e.State)
}

// IllegalTransitionError reports a requested transition with no matching
// pair in the transition table. The machine did not move.
type IllegalTransitionError struct {
	From State
	To   State
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("transition from %q to %q is not declared", e.From, e.To)
}

// GuardEvaluationError reports a guard callback that returned an error.
// The machine did not move. Index is the guard's position in declaration
// order for Target.
type GuardEvaluationError struct {
	Target State
	Index  int
	Err    error
}

func (e *GuardEvaluationError) Error() string {
	return fmt.Sprintf("guard %d for state %q failed: %v", e.Index, e.Target, e.Err)
}

func (e *GuardEvaluationError) Unwrap() error { return e.Err }

// GuardRejectedError reports a guard that returned false. The machine did
// not move, and guards after Index were not evaluated.
type GuardRejectedError struct {
	From  State
	To    State
	Index int
}

func (e *GuardRejectedError) Error() string {
	return fmt.Sprintf("transition from %q to %q rejected by guard %d", e.From, e.To, e.Index)
}

// ActionExecutionError reports an action callback that returned an error.
// Stage tells whether the machine moved: StagePreMutation means the exit
// action failed and the state is unchanged; StagePostMutation means the
// entry action failed after the state had already changed, and the machine
// keeps the new state.
type ActionExecutionError struct {
	State State
	Phase Phase
	Stage Stage
	Err   error
}

func (e *ActionExecutionError) Error() string {
	return fmt.Sprintf("%s action for state %q failed (%s): %v", e.Phase, e.State, e.Stage, e.Err)
}

func (e *ActionExecutionError) Unwrap() error { return e.Err }

// IsConfigurationError reports whether err is one of the build-time error
// kinds. Configuration errors are unrecoverable: no model is produced.
func IsConfigurationError(err error) bool {
	var (
		initial   *InvalidInitialStateError
		duplicate *DuplicateActionError
		unknown   *UnknownStateError
	)
	if errors.As(err, &initial) || errors.As(err, &duplicate) || errors.As(err, &unknown) {
		return true
	}
	return errors.Is(err, ErrNoTransitions) || errors.Is(err, ErrNilGuard) ||
		errors.Is(err, ErrNilAction) || errors.Is(err, ErrUnknownPhase)
}

// IsTransitionDenied reports whether err means the transition was refused
// with no state change and no actions run: an undeclared pair, a guard
// rejection, or a guard failure.
func IsTransitionDenied(err error) bool {
	var (
		illegal  *IllegalTransitionError
		rejected *GuardRejectedError
		failed   *GuardEvaluationError
	)
	return errors.As(err, &illegal) || errors.As(err, &rejected) || errors.As(err, &failed)
}
