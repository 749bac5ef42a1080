// Package stato provides a small, embeddable finite state machine library
// for Go.
//
// Stato is designed for application code that needs to enforce a declared
// state graph (an order lifecycle, a connection handshake) without heavy
// infrastructure. A machine's structure is declared once,
// validated up front, and then driven explicitly by the caller: the library
// never decides where to go next, it only makes illegal moves impossible and
// runs the side effects you bound to the legal ones.
//
// # Core Concepts
//
// The stato programming model is intentionally small and idiomatic:
//
//  1. Builder
//  2. Model
//  3. Machine
//  4. Guards and Actions
//  5. Observers and Journals
//
// # Builder
//
// Builder provides the ergonomic, declarative API used to define machines:
//
//	model, err := stato.New("lightbulb").
//	    Initial("off").
//	    Transition("off", "on").
//	    Transition("on", "off").
//	    Transition("off", "broken").
//	    Transition("on", "broken").
//	    Guard("on", hasElectricity).
//	    OnEnter("on", glow).
//	    OnEnter("off", dim).
//	    Build()
//
// The state set is derived from the transition pairs plus the initial state;
// there is no separate state list to keep in sync. Structural declarations
// (name, initial state, pairs) can also be loaded from YAML with
// LoadDeclaration and completed in code via FromDeclaration.
//
// # Model
//
// Build validates the whole declaration, from the initial state down to every
// guard and action binding, and compiles it into an immutable Model.
// Configuration mistakes (an action bound to an undeclared state, two actions
// on one slot) fail at Build, not mid-transition.
//
// A Model is shared, read-only infrastructure: create it once and mint as
// many machines from it as you need, from any goroutine. It can also render
// itself as a Mermaid state diagram for documentation.
//
// # Machine
//
// A Machine is one live instance positioned at exactly one state. Drive it
// with Transition, which runs a fixed protocol: check the table, evaluate
// the target's guards in declaration order, run the exit action of the
// current state, change state, run the entry action of the target.
//
// The state change is the point of no return. An entry action failure is
// reported with StagePostMutation, but the machine keeps its new state; there
// is no rollback. Everything before the state change fails cleanly, leaving
// the machine where it was.
//
// Machines are deliberately single-threaded and take no locks. Confine each
// instance to one goroutine; share the Model instead.
//
// # Guards and Actions
//
// Guards are predicates bound to a target state; every transition into that
// state must satisfy all of them, and evaluation short-circuits on the first
// rejection. Actions are side effects bound to a (state, phase) slot, where
// the phase is enter or exit, with at most one action per slot.
//
// Both receive the context passed to Transition; actions also receive the
// caller's opaque event value.
//
// # Observers and Journals
//
// Machines report their lifecycle through the Observer interface: ready-made
// implementations cover structured logging (log/slog) and in-memory metrics,
// and compose via NewCompositeObserver. For a durable audit trail, attach a
// Journal: an append-only record of transition attempts with memory and
// SQLite sinks in this module, and Redis, Postgres and MongoDB sinks in
// their own submodules. The journal records history; it is never used to
// restore a machine's position.
//
// # Summary
//
// Stato’s goal is to give Go developers a state machine that feels like Go:
// explicit registration instead of reflection, errors as values with a
// precise taxonomy, immutable shared models, and no hidden goroutines. The
// Builder declares, the Model validates and shares, the Machine enforces,
// and observers and journals watch from the side.
//
// For examples, see the /examples directory or the project README.
package stato
