package stato

import (
	"github.com/petrijr/stato/internal/engine"
	"github.com/petrijr/stato/pkg/api"
)

// Model is a compiled machine model: the derived state set, the transition
// table and the guard/action registries, built once by Build and never
// mutated. A Model is safe to share; any number of machines, created from
// any goroutine, can run it.
type Model struct {
	prog *engine.Program
}

// Name returns the model name.
func (m *Model) Name() string { return m.prog.Name() }

// InitialState returns the declared initial state.
func (m *Model) InitialState() State { return m.prog.Initial() }

// States returns the derived state set in sorted order.
func (m *Model) States() []State { return m.prog.States() }

// TargetsFrom returns the declared targets reachable from state, sorted.
func (m *Model) TargetsFrom(s State) []State { return m.prog.TargetsFrom(s) }

// NewMachine creates a machine positioned at the model's initial state.
//
// Machines are single-threaded: share the Model freely, not the machine.
func (m *Model) NewMachine(opts ...MachineOption) Machine {
	var cfg api.MachineConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return engine.New(m.prog, cfg)
}
