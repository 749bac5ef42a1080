package stato

import (
	"fmt"

	"github.com/petrijr/stato/internal/engine"
	"github.com/petrijr/stato/pkg/api"
)

// Builder provides a fluent API for declaring machines:
//
//	model, err := stato.New("lightbulb").
//	    Initial("off").
//	    Transition("off", "on").
//	    Transition("on", "off").
//	    Guard("on", hasElectricity).
//	    OnEnter("on", turnOn).
//	    Build()
//
//	bulb := model.NewMachine()
//	prev, err := bulb.Transition(ctx, "on", "switch flipped")
type Builder struct {
	decl api.Declaration
}

// New creates a new declaration builder with the given model name.
func New(name string) *Builder {
	return &Builder{
		decl: api.Declaration{
			Name:        name,
			Transitions: make([]api.Transition, 0),
		},
	}
}

// FromDeclaration wraps an existing declaration, for example one loaded from
// YAML, so guards and actions can be bound before building.
func FromDeclaration(decl Declaration) *Builder {
	return &Builder{decl: decl}
}

// Name returns the model name.
func (b *Builder) Name() string {
	return b.decl.Name
}

// Declaration returns the accumulated declaration.
// Typically used when interacting with lower-level APIs.
func (b *Builder) Declaration() Declaration {
	return b.decl
}

// Initial sets the initial state.
func (b *Builder) Initial(s State) *Builder {
	b.decl.Initial = s
	return b
}

// Transition declares that machines may move from source to target.
// Declaring the same pair twice is harmless; the table stores it once.
func (b *Builder) Transition(source, target State) *Builder {
	b.decl.Transitions = append(b.decl.Transitions, api.Transition{From: source, To: target})
	return b
}

// Guard attaches a guard to every transition into target. A target may have
// several guards; they run in the order they were attached and must all pass.
func (b *Builder) Guard(target State, g Guard) *Builder {
	if g == nil {
		panic(fmt.Sprintf("stato: guard for state %q is nil", target))
	}
	b.decl.Guards = append(b.decl.Guards, api.GuardBinding{Target: target, Guard: g})
	return b
}

// OnEnter attaches an action that runs right after machines move into s.
// A state holds at most one enter action; Build rejects a second one.
func (b *Builder) OnEnter(s State, a Action) *Builder {
	if a == nil {
		panic(fmt.Sprintf("stato: enter action for state %q is nil", s))
	}
	b.decl.Actions = append(b.decl.Actions, api.ActionBinding{State: s, Phase: api.PhaseEnter, Action: a})
	return b
}

// OnExit attaches an action that runs right before machines leave s.
// A state holds at most one exit action; Build rejects a second one.
func (b *Builder) OnExit(s State, a Action) *Builder {
	if a == nil {
		panic(fmt.Sprintf("stato: exit action for state %q is nil", s))
	}
	b.decl.Actions = append(b.decl.Actions, api.ActionBinding{State: s, Phase: api.PhaseExit, Action: a})
	return b
}

// Build compiles the declaration into an immutable Model. All validation
// happens here; on error no model is produced.
func (b *Builder) Build() (*Model, error) {
	prog, err := engine.Compile(b.decl)
	if err != nil {
		return nil, err
	}
	return &Model{prog: prog}, nil
}

// MustBuild is like Build but panics on error.
// Useful for initialization in main().
func (b *Builder) MustBuild() *Model {
	m, err := b.Build()
	if err != nil {
		panic(err)
	}
	return m
}
