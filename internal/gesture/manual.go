package gesture

import (
	"sort"
	"time"

	"github.com/jonboulle/clockwork"
)

// ManualScheduler runs callbacks when its fake clock is advanced. It is used
// by headless drivers and tests. Callbacks run on the goroutine that calls
// Advance, in due order.
type ManualScheduler struct {
	clock *clockwork.FakeClock
	start time.Time
	seq   int
	tasks []*manualTask
}

// NewManualScheduler returns a scheduler whose clock starts at zero elapsed
// time.
func NewManualScheduler() *ManualScheduler {
	start := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	return &ManualScheduler{clock: clockwork.NewFakeClockAt(start), start: start}
}

type manualTask struct {
	timer clockwork.Timer
	at    time.Time
	seq   int
	fn    func()
	done  bool
}

func (t *manualTask) Cancel() {
	t.timer.Stop()
	t.done = true
}

// Schedule implements Scheduler.
func (s *ManualScheduler) Schedule(d time.Duration, fn func()) Task {
	s.seq++
	t := &manualTask{
		timer: s.clock.NewTimer(d),
		at:    s.clock.Now().Add(d),
		seq:   s.seq,
		fn:    fn,
	}
	s.tasks = append(s.tasks, t)
	return t
}

// Now returns the fake time elapsed since the scheduler was created.
func (s *ManualScheduler) Now() time.Duration { return s.clock.Since(s.start) }

// Pending returns the number of tasks that have neither fired nor been
// cancelled.
func (s *ManualScheduler) Pending() int {
	n := 0
	for _, t := range s.tasks {
		if !t.done {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, running due callbacks in order.
// Tasks scheduled by a callback fire in the same call when they fall due
// before the end of the window.
func (s *ManualScheduler) Advance(d time.Duration) {
	end := s.clock.Now().Add(d)
	for {
		next := s.nextDue(end)
		if next == nil {
			break
		}
		s.advanceTo(next.at)
		<-next.timer.Chan()
		next.done = true
		next.fn()
	}
	s.advanceTo(end)
	s.compact()
}

func (s *ManualScheduler) advanceTo(t time.Time) {
	if step := t.Sub(s.clock.Now()); step > 0 {
		s.clock.Advance(step)
	}
}

func (s *ManualScheduler) nextDue(limit time.Time) *manualTask {
	due := make([]*manualTask, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !t.done && !t.at.After(limit) {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].at.Equal(due[j].at) {
			return due[i].seq < due[j].seq
		}
		return due[i].at.Before(due[j].at)
	})
	return due[0]
}

func (s *ManualScheduler) compact() {
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.done {
			kept = append(kept, t)
		}
	}
	s.tasks = kept
}
