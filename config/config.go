// Package config loads a state chart's static topology (states, their
// nesting into composite submachines, and transition edges) from a YAML
// document, using gopkg.in/yaml.v3. Guards, actions and the four callback
// hooks remain Go functions: the document names them, and the caller
// supplies a Registry resolving those names to funcs. This mirrors the
// split comalice-statechartx draws between declarative chart shape and
// executable behavior, and keeps the loader from reintroducing state
// persistence: only the chart's static shape is ever described in data.
package config

import (
	"fmt"

	"github.com/orvane/tickhsm"
	"gopkg.in/yaml.v3"
)

// Chart is the YAML document shape for a state chart.
type Chart struct {
	States []StateDoc `yaml:"states"`
}

// StateDoc is one state's YAML representation, possibly with nested
// States describing its submachine.
type StateDoc struct {
	Name        string          `yaml:"name"`
	Initial     bool            `yaml:"initial"`
	Entry       string          `yaml:"entry,omitempty"`
	Run         string          `yaml:"run,omitempty"`
	Exit        string          `yaml:"exit,omitempty"`
	Event       string          `yaml:"event,omitempty"`
	States      []StateDoc      `yaml:"states,omitempty"`
	Transitions []TransitionDoc `yaml:"transitions,omitempty"`
}

// TransitionDoc is one transition's YAML representation. Target names a
// state anywhere in the chart by its configured name; guard/action name
// funcs resolved through the Registry passed to Build.
type TransitionDoc struct {
	Target string `yaml:"target"`
	Guard  string `yaml:"guard,omitempty"`
	Action string `yaml:"action,omitempty"`
}

// Registry resolves the names used in a Chart document to the Go
// functions that implement them.
type Registry struct {
	Entries map[string]func(*hsm.State)
	Runs    map[string]func(*hsm.State)
	Exits   map[string]func(*hsm.State)
	Events  map[string]func(*hsm.State, int)
	Guards  map[string]func() bool
	Actions map[string]func()
}

// Parse decodes a YAML document into a Chart.
func Parse(doc []byte) (Chart, error) {
	var c Chart
	if err := yaml.Unmarshal(doc, &c); err != nil {
		return Chart{}, fmt.Errorf("config: parse chart: %w", err)
	}
	return c, nil
}

// Build constructs a hsm.StateMachine from a parsed Chart, resolving
// named hooks, guards and actions against reg. Transition targets are
// resolved in a second pass, once every state in the chart has been
// built, so that forward references (a transition to a state declared
// later in the document) work.
func Build(c Chart, reg Registry) (*hsm.StateMachine, error) {
	sm := hsm.NewStateMachine()
	byName := map[string]*hsm.State{}

	if err := buildStates(sm, c.States, reg, byName); err != nil {
		return nil, err
	}
	if err := wireTransitions(c.States, reg, byName); err != nil {
		return nil, err
	}
	return sm, nil
}

func buildStates(sm *hsm.StateMachine, docs []StateDoc, reg Registry, byName map[string]*hsm.State) error {
	for _, d := range docs {
		if _, dup := byName[d.Name]; dup {
			return fmt.Errorf("config: duplicate state name %q", d.Name)
		}
		b := sm.State(d.Name)
		if f, ok := reg.Entries[d.Entry]; ok {
			b = b.Entry(f)
		}
		if f, ok := reg.Runs[d.Run]; ok {
			b = b.Run(f)
		}
		if f, ok := reg.Exits[d.Exit]; ok {
			b = b.Exit(f)
		}
		if f, ok := reg.Events[d.Event]; ok {
			b = b.Event(f)
		}
		if d.Initial {
			b = b.Initial()
		}
		s := b.Build()
		byName[d.Name] = s

		if len(d.States) > 0 {
			if err := buildStates(s.Submachine(), d.States, reg, byName); err != nil {
				return err
			}
		}
	}
	return nil
}

func wireTransitions(docs []StateDoc, reg Registry, byName map[string]*hsm.State) error {
	for _, d := range docs {
		src := byName[d.Name]
		for _, td := range d.Transitions {
			target, ok := byName[td.Target]
			if !ok {
				return fmt.Errorf("config: state %q: unknown transition target %q", d.Name, td.Target)
			}
			tb := src.Transition(target)
			if td.Guard != "" {
				guard, ok := reg.Guards[td.Guard]
				if !ok {
					return fmt.Errorf("config: state %q: unknown guard %q", d.Name, td.Guard)
				}
				tb.Guard(td.Guard, guard)
			}
			if td.Action != "" {
				action, ok := reg.Actions[td.Action]
				if !ok {
					return fmt.Errorf("config: state %q: unknown action %q", d.Name, td.Action)
				}
				tb.Action(td.Action, action)
			}
			tb.Build()
		}
		if err := wireTransitions(d.States, reg, byName); err != nil {
			return err
		}
	}
	return nil
}
