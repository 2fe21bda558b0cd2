package clock

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// TickMsg asks a Ticker to refresh its value.
type TickMsg struct {
	ID   int
	gen  int
	Time time.Time
}

// Ticker keeps a Value fresh inside a Bubble Tea program. Each ticker only
// accepts its own ticks from its current generation, so stopping it (or
// starting it again) drops any tick already in flight.
type Ticker struct {
	id       int
	gen      int
	running  bool
	src      Source
	value    Value
	interval time.Duration
}

// NewTicker returns a stopped ticker primed with the current value.
func NewTicker(src Source) Ticker {
	return Ticker{
		id:       nextID(),
		src:      src,
		value:    src.Snapshot(),
		interval: RefreshInterval,
	}
}

func (t Ticker) ID() int { return t.id }
func (t Ticker) Value() Value { return t.value }
func (t Ticker) Running() bool { return t.running }

// Start refreshes the value and schedules the first tick.
func (t Ticker) Start() (Ticker, tea.Cmd) {
	t.gen++
	t.running = true
	t.value = t.src.Snapshot()
	return t, t.tick()
}

// Stop invalidates any outstanding tick.
func (t Ticker) Stop() Ticker {
	t.gen++
	t.running = false
	return t
}

// Update handles TickMsg values addressed to this ticker.
func (t Ticker) Update(msg tea.Msg) (Ticker, tea.Cmd) {
	m, ok := msg.(TickMsg)
	if !ok || m.ID != t.id || m.gen != t.gen || !t.running {
		return t, nil
	}
	t.value = t.src.Snapshot()
	return t, t.tick()
}

func (t Ticker) tick() tea.Cmd {
	id, gen := t.id, t.gen
	return tea.Tick(t.interval, func(now time.Time) tea.Msg {
		return TickMsg{ID: id, gen: gen, Time: now}
	})
}
