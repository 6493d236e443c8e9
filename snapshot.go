package hsm

import "gopkg.in/yaml.v3"

// Snapshot is a read-only, point-in-time view of a StateMachine's active
// stack, suitable for logging or test assertions. It is never read back
// into a StateMachine; this module carries no persistence of run state.
type Snapshot struct {
	Current  string   `yaml:"current"`
	Previous string   `yaml:"previous,omitempty"`
	Active   []string `yaml:"active"`
}

// Snapshot walks sm's active leaf chain (current state, then its
// submachine's current state, and so on) and returns a Snapshot
// describing it.
func (sm *StateMachine) Snapshot() Snapshot {
	if sm == nil || sm.current == nil {
		return Snapshot{Current: "<none>"}
	}
	snap := Snapshot{Current: sm.current.Name()}
	if sm.previous != nil {
		snap.Previous = sm.previous.Name()
	}
	for s := sm.current; s != nil; {
		snap.Active = append(snap.Active, s.Name())
		if s.submachine == nil {
			break
		}
		s = s.submachine.current
	}
	return snap
}

// DumpYAML renders sm.Snapshot() as YAML, grounded on
// comalice-statechartx's use of yaml.v3 to dump machine state for
// benchmarking/tracing.
func (sm *StateMachine) DumpYAML() (string, error) {
	b, err := yaml.Marshal(sm.Snapshot())
	if err != nil {
		return "", err
	}
	return string(b), nil
}
