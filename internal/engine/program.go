package engine

import (
	"fmt"
	"slices"

	"github.com/petrijr/stato/pkg/api"
)

// Program is a compiled machine model: the derived state set, the transition
// table, and the guard and action registries. All fields are written once by
// Compile and never again, so a Program is safe to share between any number
// of machine instances.
type Program struct {
	name    string
	initial api.State

	states []api.State // sorted
	table  map[api.State]map[api.State]struct{}
	guards map[api.State][]api.Guard
	enter  map[api.State]api.Action
	exit   map[api.State]api.Action
}

// Compile validates a declaration and folds it into a Program.
//
// Checks run in a fixed order: transitions present, initial state present,
// guard bindings against the derived state set, action bindings against the
// derived state set and the closed phase set. The first violation aborts
// compilation; no partial Program is ever returned.
func Compile(decl api.Declaration) (*Program, error) {
	if len(decl.Transitions) == 0 {
		return nil, fmt.Errorf("model %q: %w", decl.Name, api.ErrNoTransitions)
	}
	if decl.Initial == "" {
		return nil, &api.InvalidInitialStateError{Initial: decl.Initial}
	}

	p := &Program{
		name:    decl.Name,
		initial: decl.Initial,
		table:   make(map[api.State]map[api.State]struct{}),
		guards:  make(map[api.State][]api.Guard),
		enter:   make(map[api.State]api.Action),
		exit:    make(map[api.State]api.Action),
	}

	// The state set is derived, not declared: every pair element plus the
	// initial state. Duplicate pairs collapse silently.
	set := map[api.State]struct{}{decl.Initial: {}}
	for _, t := range decl.Transitions {
		set[t.From] = struct{}{}
		set[t.To] = struct{}{}
		targets, ok := p.table[t.From]
		if !ok {
			targets = make(map[api.State]struct{})
			p.table[t.From] = targets
		}
		targets[t.To] = struct{}{}
	}

	for i, g := range decl.Guards {
		if _, ok := set[g.Target]; !ok {
			return nil, &api.UnknownStateError{State: g.Target, Binding: "guard"}
		}
		if g.Guard == nil {
			return nil, fmt.Errorf("guard %d for state %q: %w", i, g.Target, api.ErrNilGuard)
		}
		p.guards[g.Target] = append(p.guards[g.Target], g.Guard)
	}

	for _, a := range decl.Actions {
		if _, ok := set[a.State]; !ok {
			return nil, &api.UnknownStateError{State: a.State, Binding: "action"}
		}
		if a.Action == nil {
			return nil, fmt.Errorf("%s action for state %q: %w", a.Phase, a.State, api.ErrNilAction)
		}
		var reg map[api.State]api.Action
		switch a.Phase {
		case api.PhaseEnter:
			reg = p.enter
		case api.PhaseExit:
			reg = p.exit
		default:
			return nil, fmt.Errorf("action for state %q: %w %q", a.State, api.ErrUnknownPhase, a.Phase)
		}
		if _, dup := reg[a.State]; dup {
			return nil, &api.DuplicateActionError{State: a.State, Phase: a.Phase}
		}
		reg[a.State] = a.Action
	}

	p.states = make([]api.State, 0, len(set))
	for s := range set {
		p.states = append(p.states, s)
	}
	slices.Sort(p.states)

	return p, nil
}

// Name returns the model name.
func (p *Program) Name() string { return p.name }

// Initial returns the declared initial state.
func (p *Program) Initial() api.State { return p.initial }

// States returns the derived state set in sorted order.
func (p *Program) States() []api.State { return slices.Clone(p.states) }

// Allowed reports whether the (from, to) pair is declared in the table.
func (p *Program) Allowed(from, to api.State) bool {
	_, ok := p.table[from][to]
	return ok
}

// TargetsFrom returns the declared targets reachable from state, sorted.
func (p *Program) TargetsFrom(from api.State) []api.State {
	targets := make([]api.State, 0, len(p.table[from]))
	for t := range p.table[from] {
		targets = append(targets, t)
	}
	slices.Sort(targets)
	return targets
}
