package gesture

import "github.com/looplab/fsm"

// Phase is the lock screen interaction phase.
type Phase int

const (
	Idle Phase = iota
	Dragging
	Unlocking
	Unlocked
)

var phaseNames = map[Phase]string{
	Idle:      "idle",
	Dragging:  "dragging",
	Unlocking: "unlocking",
	Unlocked:  "unlocked",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "unknown"
}

// Locked reports whether the lock surface is still accepting input.
func (p Phase) Locked() bool {
	return p == Idle || p == Dragging
}

func parsePhase(name string) Phase {
	for p, n := range phaseNames {
		if n == name {
			return p
		}
	}
	return Idle
}

// Machine events. Any event fired from a state it does not list is rejected
// by the machine and leaves the phase unchanged.
const (
	evDrag   = "drag"
	evSnap   = "snap"
	evUnlock = "unlock"
	evFinish = "finish"
)

func newMachine(callbacks fsm.Callbacks) *fsm.FSM {
	return fsm.NewFSM(
		Idle.String(),
		fsm.Events{
			{Name: evDrag, Src: []string{Idle.String()}, Dst: Dragging.String()},
			{Name: evSnap, Src: []string{Dragging.String()}, Dst: Idle.String()},
			{Name: evUnlock, Src: []string{Idle.String(), Dragging.String()}, Dst: Unlocking.String()},
			{Name: evFinish, Src: []string{Unlocking.String()}, Dst: Unlocked.String()},
		},
		callbacks,
	)
}
