package gesture

import "strings"

// Source identifies the device that produced a coordinate. Pointer and touch
// share the same transition rules.
type Source int

const (
	Pointer Source = iota
	Touch
)

func (s Source) String() string {
	if s == Touch {
		return "touch"
	}
	return "pointer"
}

// Kind is the type of an input event.
type Kind int

const (
	Down Kind = iota
	Move
	Up
	Key
)

func (k Kind) String() string {
	switch k {
	case Down:
		return "down"
	case Move:
		return "move"
	case Up:
		return "up"
	case Key:
		return "key"
	default:
		return "unknown"
	}
}

// Event is a raw interaction event routed to the engine.
type Event struct {
	Kind   Kind
	Source Source
	Point  Point
	Key    string
}

// Handle routes ev to the matching engine operation. Events that do not apply
// to the current phase are dropped.
func (e *Engine) Handle(ev Event) {
	switch ev.Kind {
	case Down:
		e.Start(ev.Point)
	case Move:
		e.Move(ev.Point)
	case Up:
		e.Release()
	case Key:
		if strings.EqualFold(strings.TrimSpace(ev.Key), "enter") {
			e.UnlockViaKey()
		}
	}
}
