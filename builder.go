package hsm

import "fmt"

// StateBuilder provides a fluent API for building a new State, in the
// manner of dragomit-hsm's StateBuilder: a chain of optional setters
// followed by a terminal Build().
type StateBuilder struct {
	sm      *StateMachine
	name    string
	initial bool

	entry func(*State)
	run   func(*State)
	exit  func(*State)
	event func(*State, int)
}

// State returns a builder for a new top-level state of sm, or, if sm is a
// submachine obtained via State.Submachine, a new direct substate of that
// composite state.
func (sm *StateMachine) State(name string) *StateBuilder {
	return &StateBuilder{sm: sm, name: name}
}

// Entry sets the state's on_entry callback.
func (sb *StateBuilder) Entry(f func(*State)) *StateBuilder {
	sb.entry = f
	return sb
}

// Run sets the state's on_run callback, invoked on ticks where no
// transition out of the state fires.
func (sb *StateBuilder) Run(f func(*State)) *StateBuilder {
	sb.run = f
	return sb
}

// Exit sets the state's on_exit callback.
func (sb *StateBuilder) Exit(f func(*State)) *StateBuilder {
	sb.exit = f
	return sb
}

// Event sets the state's on_event callback, invoked by SendEvent.
func (sb *StateBuilder) Event(f func(*State, int)) *StateBuilder {
	sb.event = f
	return sb
}

// Initial marks the state being built as its StateMachine's initial
// state. Build panics if another state was already marked initial for the
// same machine: a chart-assembly programmer error, not a runtime condition.
func (sb *StateBuilder) Initial() *StateBuilder {
	sb.initial = true
	return sb
}

// Build constructs the State, appends it to its owning StateMachine, and
// returns it.
func (sb *StateBuilder) Build() *State {
	s := &State{
		name:    sb.name,
		parent:  sb.sm.owner,
		machine: sb.sm,
		onEntry: sb.entry,
		onRun:   sb.run,
		onExit:  sb.exit,
		onEvent: sb.event,
	}
	sb.sm.states = append(sb.sm.states, s)
	if sb.initial {
		if sb.sm.initial != nil && sb.sm.initial != s {
			panic(fmt.Sprintf("hsm: states %q and %q can not both be initial", sb.sm.initial.name, s.name))
		}
		sb.sm.initial = s
	}
	return s
}
