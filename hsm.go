// Package hsm implements a small, deterministic, tick-driven hierarchical
// state machine runtime: nested state charts with composite states,
// guard-conditioned transitions, and entry/exit callbacks ordered along
// the shortest path through the state hierarchy.
//
// A chart is built once via the fluent State/Transition builders, then
// driven with Init, Tick and SendEvent. The engine performs no internal
// scheduling: every operation runs synchronously to completion, and the
// caller decides when to call Tick.
package hsm

// StateMachine is a (sub)chart: a set of constituent states, an initial
// state, and the currently/previously active state within this chart. A
// composite state's submachine is itself a StateMachine, which is how the
// hierarchy is represented.
//
// The top-level StateMachine for a chart has a nil owner. A StateMachine
// obtained via State.Submachine has owner set to that composite state, and
// every state built directly on it gets that state as its Parent.
type StateMachine struct {
	owner *State

	states   []*State
	initial  *State
	current  *State
	previous *State
}

// NewStateMachine creates a new top-level state machine, ready to have
// states built on it via State.
func NewStateMachine() *StateMachine {
	return &StateMachine{}
}

// Current returns the machine's currently active state, or nil if the
// machine has not been initialized (or has no initial state). The result
// is one of this machine's own states and may be composite; the deeper
// active states are reached through its Submachine().Current().
func (sm *StateMachine) Current() *State {
	if sm == nil {
		return nil
	}
	return sm.current
}

// Previous returns the state that was active immediately before the most
// recently completed transition, or nil.
func (sm *StateMachine) Previous() *State {
	if sm == nil {
		return nil
	}
	return sm.previous
}

// getDepth returns the number of hops from s to the chart root, counting s
// itself: a root has depth 1, its children depth 2, and so on. A nil state
// has depth 0.
func getDepth(s *State) int {
	depth := 0
	for ; s != nil; s = s.parent {
		depth++
	}
	return depth
}

// findCommonAncestor returns the deepest state that is an ancestor of (or
// equal to) both a and b. If a and b live in disjoint trees the walk runs
// off the top and the result is nil, which callers treat as "above the
// root": exits walk all the way up, entries walk all the way down from
// the root.
func findCommonAncestor(a, b *State) *State {
	da, db := getDepth(a), getDepth(b)
	for da > db {
		a = a.parent
		da--
	}
	for db > da {
		b = b.parent
		db--
	}
	for a != nil && b != nil && a != b {
		a = a.parent
		b = b.parent
	}
	return a
}

// exitToAncestor invokes on_exit for each state from 'from' up to, but not
// including, ancestor.
func exitToAncestor(from, ancestor *State) {
	for s := from; s != nil && s != ancestor; s = s.parent {
		if s.onExit != nil {
			s.onExit(s)
		}
	}
}

// enterPath invokes on_entry top-down for each state strictly below
// ancestor on the path to 'to', including 'to' itself, updating every
// entered state's own owning machine's current/previous as it goes. A
// multi-level entry (crossing from one composite's submachine into a
// sibling's) touches more than one StateMachine, and each must end up
// pointing at the state on the new active path that belongs to it.
//
// Bookkeeping for 'to' itself runs even when to == ancestor, so a
// self-transition (or a transition targeting an ancestor of its source)
// still records previous/current, even though no callback fires and no
// submachine is touched. enterPath never initializes a submachine;
// callers do that once, for the actual transition target, after the walk
// completes.
func enterPath(to, ancestor *State) {
	if to == ancestor {
		bookkeep(to)
		return
	}
	if to.parent != ancestor {
		enterPath(to.parent, ancestor)
	}
	if to.onEntry != nil {
		to.onEntry(to)
	}
	bookkeep(to)
}

func bookkeep(s *State) {
	if s == nil || s.machine == nil {
		return
	}
	s.machine.previous = s.machine.current
	s.machine.current = s
}

// Init activates sm: sets previous to nil, current to initial, invokes
// initial's on_entry, and then, if initial is composite, recursively
// initializes its submachine. States above sm (its owner and the owner's
// ancestors) are not entered; for a chart's top-level machine initial is a
// root, so the entry path runs from the root down to the innermost
// initial leaf. If
// initial is nil, Init leaves current nil and does nothing further:
// chart misconfiguration is tolerated, not reported.
func (sm *StateMachine) Init() {
	sm.current = nil
	sm.previous = nil
	if sm.initial == nil {
		return
	}
	enterPath(sm.initial, sm.owner)
	if sm.initial.submachine != nil {
		sm.initial.submachine.Init()
	}
}

// Tick advances sm by one step. It evaluates the outgoing transitions of
// the current state in declared order; the first whose guard fires is
// executed per the exit/action/entry algorithm on findCommonAncestor and
// enterPath, and Tick returns immediately without invoking on_run. If no
// transition fires, Tick invokes the current state's on_run (if any) and
// recursively ticks its submachine (if any).
//
// A fired transition's target may belong to a different StateMachine
// than its source (a sibling composite's submachine, or an ancestor of
// the source), since transitions are resolved purely via State.parent
// chains, not by machine membership. enterPath updates every machine
// touched along the entry path, so sm itself is not assumed to be the
// one whose current changes.
//
// Tick is a no-op if sm is nil or sm.Current() is nil.
func (sm *StateMachine) Tick() {
	if sm == nil || sm.current == nil {
		return
	}
	current := sm.current

	for _, t := range current.transitions {
		if t.guard != nil && !t.guard() {
			continue
		}
		lca := findCommonAncestor(current, t.target)
		exitToAncestor(current, lca)
		if t.action != nil {
			t.action()
		}
		enterPath(t.target, lca)
		if t.target != lca && t.target.submachine != nil {
			t.target.submachine.Init()
		}
		return
	}

	if current.onRun != nil {
		current.onRun(current)
	}
	if current.submachine != nil {
		current.submachine.Tick()
	}
}

// SendEvent dispatches event across sm's active stack, innermost-first: if
// the current state is composite, its submachine is dispatched into
// first, then the current state's own on_event (if any) is invoked
// unconditionally. There is no "handled" signal that halts propagation.
//
// SendEvent is a no-op if sm is nil or sm.Current() is nil.
func (sm *StateMachine) SendEvent(event int) {
	if sm == nil || sm.current == nil {
		return
	}
	if sm.current.submachine != nil {
		sm.current.submachine.SendEvent(event)
	}
	if sm.current.onEvent != nil {
		sm.current.onEvent(sm.current, event)
	}
}
