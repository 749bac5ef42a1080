// Package api contains the core building blocks used by the stato state
// machine library. It provides the low-level primitives for declaring
// machines, driving transitions, and observing machine behavior.
//
// Most users interact with the higher-level stato package, which re-exports
// selected types and helpers from this package. The api package is intended
// for advanced use cases, custom integrations, or contributors extending the
// engine itself.
//
// # Concepts
//
// The api package centers around a small set of concepts:
//
//   - Declarations and compiled models
//   - Machines and the transition protocol
//   - Guards and actions
//   - Observability and the transition journal
//
// These primitives are assembled by the higher-level Builder API in the
// stato package, but can also be used directly where fine-grained control is
// needed.
//
// # Declarations
//
// A Declaration describes the structure of a machine model: its name, its
// initial state, the list of allowed transition pairs, and the guard and
// action bindings. The full state set is derived rather than declared: it is
// the union of every pair element plus the initial state.
//
// Declarations are compiled once into an immutable model. Compilation
// validates the whole declaration up front, so a machine built from a model
// can never reach an unknown state or consult a dangling binding at run time.
//
// # Machines and the Transition Protocol
//
// A Machine is a live instance of a compiled model, positioned at exactly
// one state. Transitions are caller-driven: the caller decides which target
// state to request in response to external input, and the machine enforces
// the declared structure.
//
// Every transition attempt follows a fixed sequence: table lookup, guard
// evaluation in declaration order, exit action of the current state, the
// state change itself, entry action of the target. The state change is the
// point of no return; an entry action failure leaves the machine in the new
// state and is reported with StagePostMutation.
//
// Machines are single-threaded by contract and perform no internal locking.
// The compiled model behind them is immutable and safe to share between any
// number of instances.
//
// # Guards and Actions
//
// A Guard is a predicate protecting every transition into the state it is
// bound to. A target may have several guards; they are evaluated in the
// order they were declared and must all pass. Evaluation stops at the first
// guard that rejects or fails.
//
// An Action is a side effect bound to a (state, phase) slot, where the phase
// is either enter or exit. Each slot holds at most one action, enforced at
// build time.
//
// # Observability
//
// The api package defines the Observer interface, invoked synchronously by
// machines around each transition attempt, and the Journal interface, an
// append-only sink for small audit records. Ready-made implementations
// (logging via log/slog, basic in-memory metrics, composite fan-out, memory
// and SQLite journals) ship with the library; Redis, Postgres and MongoDB
// journal sinks live in their own submodules.
//
// # Usage
//
// Most applications should start from the stato package, using the Builder
// and the constructors provided there. The api package is useful when you
// need lower-level access, custom observers or journal sinks, or when
// contributing changes to the core engine.
//
// See the stato package documentation and the examples directory for
// end-to-end usage.
package api
