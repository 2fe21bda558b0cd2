package tui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/foxzinnx/deskfolio/internal/clock"
	"github.com/foxzinnx/deskfolio/internal/content"
	"github.com/foxzinnx/deskfolio/internal/database/repository"
)

var errOpen = errors.New("xdg-open: executable file not found")

var quietLog = slog.New(slog.NewTextHandler(io.Discard, nil))

// instantTicks makes the lock screen's scheduled callbacks arrive as soon as
// their command runs.
func instantTicks(l *LockScreen) {
	l.sched.tick = func(_ time.Duration, fn func(time.Time) tea.Msg) tea.Cmd {
		return func() tea.Msg { return fn(time.Time{}) }
	}
}

type fakeOpener struct {
	mu     sync.Mutex
	opened []string
	err    error
}

func (o *fakeOpener) Open(target string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.opened = append(o.opened, target)
	return o.err
}

type fakeStore struct {
	mu      sync.Mutex
	records []repository.Launch
}

func (s *fakeStore) Record(_ context.Context, slug, via string) (repository.Launch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l := repository.Launch{ID: slug + via, PanelSlug: slug, Via: via}
	s.records = append(s.records, l)
	return l, nil
}

func (s *fakeStore) Counts(context.Context) (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := map[string]int{}
	for _, r := range s.records {
		out[r.PanelSlug]++
	}
	return out, nil
}

func (s *fakeStore) Recent(_ context.Context, limit int) ([]repository.Launch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []repository.Launch
	for i := len(s.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.records[i])
	}
	return out, nil
}

func newTestApp(t *testing.T, mutate func(*Options)) *App {
	t.Helper()
	opts := Options{
		Panels:      content.Defaults(),
		Clock:       clock.Source{Now: func() time.Time { return time.Date(2026, 10, 15, 9, 5, 0, 0, time.UTC) }, Location: time.UTC},
		UnitsPerRow: 10,
		Logger:      quietLog,
		Opener:      &fakeOpener{},
	}
	if mutate != nil {
		mutate(&opts)
	}
	a := New(context.Background(), opts)
	a.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	instantTicks(a.lock)
	return a
}

// run executes cmd and feeds every resulting message back into a until the
// queue is empty.
func run(t *testing.T, a *App, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for steps := 0; len(queue) > 0; steps++ {
		if steps > 200 {
			t.Fatal("command queue did not settle")
		}
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch m := c().(type) {
		case nil, tea.QuitMsg:
		case tea.BatchMsg:
			queue = append(queue, m...)
		default:
			_, next := a.Update(m)
			queue = append(queue, next)
		}
	}
}

func send(t *testing.T, a *App, msg tea.Msg) {
	t.Helper()
	_, cmd := a.Update(msg)
	run(t, a, cmd)
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+l":
		return tea.KeyMsg{Type: tea.KeyCtrlL}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func mouse(action tea.MouseAction, x, y int) tea.MouseMsg {
	m := tea.MouseMsg{X: x, Y: y, Action: action}
	if action == tea.MouseActionPress {
		m.Button = tea.MouseButtonLeft
	}
	return m
}
