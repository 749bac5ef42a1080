package api

import "context"

// State identifies a single state in a machine's state set.
// States are opaque to the library and compared by value.
type State string

// Phase identifies when an action bound to a state runs.
// The phase set is closed; bindings with any other value are
// rejected at build time.
type Phase string

const (
	// PhaseEnter actions run right after the machine has moved into their state.
	PhaseEnter Phase = "enter"

	// PhaseExit actions run right before the machine leaves their state.
	PhaseExit Phase = "exit"
)

// Guard is a predicate protecting every transition into the state it is
// bound to. Returning false vetoes the transition; returning an error aborts
// evaluation and surfaces as a GuardEvaluationError. Guards must not mutate
// the machine they protect.
type Guard func(ctx context.Context) (bool, error)

// Action is a side effect bound to a (state, phase) slot. The event value
// passed to Machine.Transition is forwarded to it untouched; the library
// never inspects event payloads.
type Action func(ctx context.Context, event any) error

// Transition declares that a machine may move from From to To.
type Transition struct {
	From State `yaml:"from"`
	To   State `yaml:"to"`
}

// GuardBinding attaches a guard to every transition into Target.
type GuardBinding struct {
	Target State
	Guard  Guard
}

// ActionBinding attaches an action to a (state, phase) slot.
// Each slot holds at most one action; a second binding for the same slot
// is a build error.
type ActionBinding struct {
	State  State
	Phase  Phase
	Action Action
}

// Declaration describes a machine model: the initial state, the allowed
// transition pairs, and the guard and action bindings. It is the input to
// compilation. stato.New provides a fluent way to assemble one; structural
// fields can also be loaded from YAML.
type Declaration struct {
	Name        string       `yaml:"name"`
	Initial     State        `yaml:"initial"`
	Transitions []Transition `yaml:"transitions"`

	// Guards and Actions hold callables and do not serialize.
	// Bind them in code, e.g. via stato.FromDeclaration.
	Guards  []GuardBinding  `yaml:"-"`
	Actions []ActionBinding `yaml:"-"`
}

// MachineInfo identifies a machine instance to observers and journal records.
type MachineInfo struct {
	ID    string
	Model string
}

// MachineConfig describes how to construct a machine instance.
// Most callers use the MachineOption helpers instead of filling it directly.
type MachineConfig struct {
	ID       string
	Observer Observer
	Journal  Journal
}

// MachineOption customizes a machine instance at construction time.
type MachineOption func(*MachineConfig)

// WithMachineID sets a stable identifier for the machine, used in logs and
// journal records. When absent, an ID is minted from a process-wide counter.
func WithMachineID(id string) MachineOption {
	return func(c *MachineConfig) { c.ID = id }
}

// WithObserver attaches an Observer to the machine.
func WithObserver(obs Observer) MachineOption {
	return func(c *MachineConfig) { c.Observer = obs }
}

// WithJournal attaches an append-only transition journal to the machine.
func WithJournal(j Journal) MachineOption {
	return func(c *MachineConfig) { c.Journal = j }
}

// Machine is a live state machine instance positioned at exactly one state
// of its model.
//
// A Machine is single-threaded by contract: it performs no internal locking,
// and concurrent calls on the same instance are undefined behavior. The
// compiled model behind it is immutable and freely shared between instances.
type Machine interface {
	// ID returns the instance identifier.
	ID() string

	// Model returns the name of the compiled model this machine runs.
	Model() string

	// CurrentState returns the state the machine is currently in.
	CurrentState() State

	// CanTransition reports whether the transition table declares a pair
	// from the current state to target. It consults only the table: no
	// guards are evaluated, no actions run, the machine does not move.
	CanTransition(target State) bool

	// Transition attempts to move the machine from its current state to
	// target, forwarding event to any actions that run. The sequence is
	// fixed: table lookup, guards of target in declaration order, exit
	// action of the current state, state change, entry action of target.
	//
	// The state change is the point of no return. If the entry action of
	// target fails, the machine KEEPS the new state and the returned
	// ActionExecutionError reports StagePostMutation; there is no rollback.
	// Every earlier failure leaves the machine in the state it started in.
	//
	// The returned State is the state the machine was in when the call was
	// made, regardless of outcome.
	Transition(ctx context.Context, target State, event any) (State, error)
}
