package hsm

import (
	"fmt"
	"strings"
)

// PlantUML renders sm's chart as a PlantUML state diagram, recursing into
// composite states' submachines. It is a read-only debugging aid; the
// engine never parses diagrams back into a chart. Grounded on
// dragomit-hsm's DiagramBuilder, simplified to this package's single
// guard/action-per-transition model.
func (sm *StateMachine) PlantUML() string {
	var bld strings.Builder
	bld.WriteString("@startuml\n")
	writeStates(&bld, 0, sm)
	writeTransitions(&bld, sm)
	bld.WriteString("@enduml\n")
	return bld.String()
}

func writeStates(bld *strings.Builder, indent int, sm *StateMachine) {
	prefix := strings.Repeat("  ", indent)
	for _, s := range sm.states {
		if s.IsLeaf() {
			fmt.Fprintf(bld, "%sstate %s\n", prefix, diagramID(s))
			continue
		}
		fmt.Fprintf(bld, "%sstate %s {\n", prefix, diagramID(s))
		writeStates(bld, indent+1, s.submachine)
		fmt.Fprintf(bld, "%s}\n", prefix)
	}
}

func writeTransitions(bld *strings.Builder, sm *StateMachine) {
	for _, s := range sm.states {
		for _, t := range s.transitions {
			label := t.guardName
			if t.actionName != "" {
				if label != "" {
					label += " / " + t.actionName
				} else {
					label = "/ " + t.actionName
				}
			}
			if label != "" {
				fmt.Fprintf(bld, "%s --> %s : %s\n", diagramID(s), diagramID(t.target), label)
			} else {
				fmt.Fprintf(bld, "%s --> %s\n", diagramID(s), diagramID(t.target))
			}
		}
		if s.submachine != nil {
			writeTransitions(bld, s.submachine)
		}
	}
}

func diagramID(s *State) string {
	if s == nil {
		return "[*]"
	}
	return strings.ReplaceAll(s.name, " ", "_")
}
