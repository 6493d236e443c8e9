package hsm

// State is a node in a state chart. A State with a non-nil submachine is
// composite; otherwise it is a leaf. Parent is nil for a state that belongs
// to a chart's top-level StateMachine; for a state nested inside a
// composite state's submachine, Parent is that composite State.
//
// Parent, the callback hooks, and the transition list are immutable once
// built; only the owning StateMachine's current/previous fields change at
// runtime.
type State struct {
	name    string
	parent  *State
	machine *StateMachine

	onEntry func(*State)
	onRun   func(*State)
	onExit  func(*State)
	onEvent func(*State, int)

	transitions []*Transition
	submachine  *StateMachine
}

// Name returns the state's configured name.
func (s *State) Name() string {
	if s == nil {
		return "<nil>"
	}
	return s.name
}

// IsLeaf reports whether the state has no submachine.
func (s *State) IsLeaf() bool {
	return s.submachine == nil
}

// Submachine lazily creates (on first call) and returns the StateMachine
// nested inside this state, making the state composite. Subsequent calls
// return the same submachine.
func (s *State) Submachine() *StateMachine {
	if s.submachine == nil {
		s.submachine = &StateMachine{owner: s}
	}
	return s.submachine
}

// Transition returns a builder for a new outgoing transition from s to
// target. Transitions fire in the order they are Build()-ed; the first
// whose guard returns true wins.
func (s *State) Transition(target *State) *TransitionBuilder {
	return &TransitionBuilder{src: s, t: &Transition{target: target}}
}

// AddTransition is shorthand for Transition(target).Build(), for an
// unconditional edge (guard always fires).
func (s *State) AddTransition(target *State) *Transition {
	return s.Transition(target).Build()
}

// Transition is a directed edge from an implicit source (its owner state)
// to an explicit target. Guard is consulted on every tick of the owner's
// machine; Action, if present, fires between the exit and entry phases of
// the transition.
type Transition struct {
	target *State

	guard     func() bool
	guardName string

	action     func()
	actionName string
}

// Target returns the transition's destination state.
func (t *Transition) Target() *State {
	return t.target
}

// TransitionBuilder provides a fluent API for configuring a Transition
// before it is attached to its source state's transition list.
type TransitionBuilder struct {
	src *State
	t   *Transition
}

// Guard sets the (nullary) predicate that must return true for this
// transition to fire. name is used only for diagram/debug output. A
// transition with no guard set always fires (useful for AddTransition's
// default).
func (tb *TransitionBuilder) Guard(name string, guard func() bool) *TransitionBuilder {
	tb.t.guardName = name
	tb.t.guard = guard
	return tb
}

// Action sets the (nullary) side effect invoked when this transition
// fires, after the exit phase and before the entry phase. name is used
// only for diagram/debug output.
func (tb *TransitionBuilder) Action(name string, action func()) *TransitionBuilder {
	tb.t.actionName = name
	tb.t.action = action
	return tb
}

// Build attaches the configured transition to its source state's
// transition list, in the order Build is called, and returns it.
func (tb *TransitionBuilder) Build() *Transition {
	tb.src.transitions = append(tb.src.transitions, tb.t)
	return tb.t
}
