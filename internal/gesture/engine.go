// Package gesture implements the lock screen unlock gesture: an upward drag
// (pointer or touch) past a fixed threshold, or the Enter key, moves the
// engine into a timed exit transition that ends in a single unlock
// notification.
//
// The engine is single-threaded. Every method must be called from the same
// execution context that runs the Scheduler callbacks.
package gesture

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/looplab/fsm"
)

const (
	// Threshold is the drag offset that must be exceeded (strictly) for a
	// release to unlock.
	Threshold = -100.0
	// UnlockDelay separates entering Unlocking from the unlock notification.
	UnlockDelay = 800 * time.Millisecond
)

// Point is a coordinate in distance units.
type Point struct {
	X float64
	Y float64
}

// Task is a scheduled callback that can be invalidated before it fires.
type Task interface {
	Cancel()
}

// Scheduler defers a callback. Callbacks must be delivered on the engine's
// execution context.
type Scheduler interface {
	Schedule(d time.Duration, fn func()) Task
}

// Listeners models the global move/up listeners that are only held while a
// drag is in progress.
type Listeners interface {
	Attach()
	Detach()
}

type noListeners struct{}

func (noListeners) Attach() {}
func (noListeners) Detach() {}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger routes transition logs to l.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// Engine is the unlock state machine.
type Engine struct {
	machine  *fsm.FSM
	origin   Point
	offset   float64
	attached bool
	closed   bool
	pending  Task
	gen      uint64

	sched     Scheduler
	listeners Listeners
	onUnlock  func()
	log       *slog.Logger
}

// New returns an engine in Idle. onUnlock may be nil.
func New(sched Scheduler, listeners Listeners, onUnlock func(), opts ...Option) *Engine {
	if listeners == nil {
		listeners = noListeners{}
	}
	e := &Engine{
		sched:     sched,
		listeners: listeners,
		onUnlock:  onUnlock,
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.machine = newMachine(fsm.Callbacks{
		"enter_state": func(_ context.Context, ev *fsm.Event) {
			e.log.Debug("gesture transition", "event", ev.Event, "from", ev.Src, "to", ev.Dst, "offset", e.offset)
		},
	})
	return e
}

func (e *Engine) Phase() Phase { return parsePhase(e.machine.Current()) }
func (e *Engine) Offset() float64 { return e.offset }
func (e *Engine) Origin() Point { return e.origin }
func (e *Engine) Dragging() bool { return e.machine.Is(Dragging.String()) }
func (e *Engine) Closed() bool { return e.closed }
func (e *Engine) Listening() bool { return e.attached }

// Start begins a drag at p. Ignored unless the engine is Idle.
func (e *Engine) Start(p Point) {
	if e.closed || !e.machine.Can(evDrag) {
		return
	}
	e.fire(evDrag)
	e.origin = p
	e.offset = 0
	e.attach()
}

// Move tracks the drag. Only upward displacement is recorded and the latest
// upward delta wins.
func (e *Engine) Move(p Point) {
	if e.closed || !e.Dragging() {
		return
	}
	if delta := p.Y - e.origin.Y; delta < 0 {
		e.offset = delta
	}
}

// Release ends the drag, unlocking when the offset is past Threshold and
// snapping back otherwise.
func (e *Engine) Release() {
	if e.closed || !e.Dragging() {
		return
	}
	e.detach()
	e.origin = Point{}
	if e.offset < Threshold {
		e.beginUnlock()
		return
	}
	e.offset = 0
	e.fire(evSnap)
}

// UnlockViaKey unlocks without a drag. A drag in progress is abandoned.
func (e *Engine) UnlockViaKey() {
	if e.closed || !e.machine.Can(evUnlock) {
		return
	}
	if e.Dragging() {
		e.detach()
		e.origin = Point{}
	}
	e.beginUnlock()
}

// Close tears the engine down: the pending unlock is cancelled, held
// listeners are released and every later call is ignored.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.closed = true
	e.gen++
	if e.pending != nil {
		e.pending.Cancel()
		e.pending = nil
	}
	e.detach()
	e.log.Debug("gesture engine closed", "phase", e.machine.Current())
}

func (e *Engine) beginUnlock() {
	if !e.fire(evUnlock) {
		return
	}
	if e.sched == nil {
		// Without a scheduler the notification can never be delivered
		// asynchronously, so the engine stays in Unlocking.
		e.log.Warn("gesture engine has no scheduler; unlock will not complete")
		return
	}
	e.gen++
	gen := e.gen
	e.pending = e.sched.Schedule(UnlockDelay, func() {
		if e.closed || gen != e.gen || !e.machine.Can(evFinish) {
			return
		}
		e.pending = nil
		e.fire(evFinish)
		if e.onUnlock != nil {
			e.onUnlock()
		}
	})
}

// fire runs event on the phase machine and reports whether the phase changed.
func (e *Engine) fire(event string) bool {
	from := e.machine.Current()
	if err := e.machine.Event(context.Background(), event); err != nil {
		e.log.Error("rejected gesture transition", "event", event, "from", from, "err", err)
		return false
	}
	return true
}

func (e *Engine) attach() {
	if e.attached {
		return
	}
	e.attached = true
	e.listeners.Attach()
}

func (e *Engine) detach() {
	if !e.attached {
		return
	}
	e.attached = false
	e.listeners.Detach()
}
