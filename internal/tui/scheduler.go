package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/foxzinnx/deskfolio/internal/gesture"
)

// fireMsg delivers a scheduled gesture callback back onto the update loop.
type fireMsg struct {
	owner int
	id    int
}

// teaScheduler implements gesture.Scheduler with tea.Tick. Callbacks run
// inside Update, so the engine stays single-threaded. Cancelled or foreign
// ticks are dropped when they arrive.
type teaScheduler struct {
	owner  int
	seq    int
	tasks  map[int]func()
	queued []tea.Cmd
	tick   func(time.Duration, func(time.Time) tea.Msg) tea.Cmd
}

type teaTask struct {
	s  *teaScheduler
	id int
}

func (t teaTask) Cancel() { delete(t.s.tasks, t.id) }

func newTeaScheduler(owner int) *teaScheduler {
	return &teaScheduler{owner: owner, tasks: make(map[int]func()), tick: tea.Tick}
}

func (s *teaScheduler) Schedule(d time.Duration, fn func()) gesture.Task {
	s.seq++
	id, owner := s.seq, s.owner
	s.tasks[id] = fn
	s.queued = append(s.queued, s.tick(d, func(time.Time) tea.Msg {
		return fireMsg{owner: owner, id: id}
	}))
	return teaTask{s: s, id: id}
}

// drain returns the ticks requested since the last call.
func (s *teaScheduler) drain() tea.Cmd {
	if len(s.queued) == 0 {
		return nil
	}
	cmds := s.queued
	s.queued = nil
	return tea.Batch(cmds...)
}

// fire runs the callback for msg if it is still live.
func (s *teaScheduler) fire(msg fireMsg) bool {
	if msg.owner != s.owner {
		return false
	}
	fn, ok := s.tasks[msg.id]
	if !ok {
		return false
	}
	delete(s.tasks, msg.id)
	fn()
	return true
}

func (s *teaScheduler) pending() int { return len(s.tasks) }

// pointerCapture stands in for the window-level move/up listeners of a drag:
// motion and release events only reach the engine while it is held.
type pointerCapture struct {
	held     bool
	acquired int
	released int
}

func (c *pointerCapture) Attach() {
	c.held = true
	c.acquired++
}

func (c *pointerCapture) Detach() {
	c.held = false
	c.released++
}
