package tui

import (
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/foxzinnx/deskfolio/internal/clock"
	"github.com/foxzinnx/deskfolio/internal/gesture"
)

// collect runs cmd and flattens batches into the messages they produce.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	switch m := cmd().(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range m {
			out = append(out, collect(c)...)
		}
		return out
	default:
		return []tea.Msg{m}
	}
}

func unlockedMsgs(msgs []tea.Msg) int {
	n := 0
	for _, m := range msgs {
		if _, ok := m.(UnlockedMsg); ok {
			n++
		}
	}
	return n
}

func TestLockScreenEnterUnlocksAfterTick(t *testing.T) {
	l := NewLockScreen(10, quietLog)
	instantTicks(l)
	keys := NewKeyRegistry()

	cmd := l.Update(keyPress("enter"), keys)
	require.Equal(t, gesture.Unlocking, l.Phase())
	require.NotNil(t, cmd)

	msgs := collect(cmd)
	require.Len(t, msgs, 1)
	fire, ok := msgs[0].(fireMsg)
	require.True(t, ok)
	require.Equal(t, gesture.Unlocking, l.Phase(), "unlock must not complete synchronously")

	out := collect(l.Update(fire, keys))
	require.Equal(t, gesture.Unlocked, l.Phase())
	require.Equal(t, 1, unlockedMsgs(out))

	// The same tick delivered twice is ignored.
	require.Nil(t, l.Update(fire, keys))
}

func TestLockScreenMouseDragConvertsRows(t *testing.T) {
	l := NewLockScreen(10, quietLog)
	instantTicks(l)
	keys := NewKeyRegistry()

	l.Update(mouse(tea.MouseActionPress, 10, 40), keys)
	require.Equal(t, gesture.Dragging, l.Phase())
	require.True(t, l.capture.held)

	l.Update(mouse(tea.MouseActionMotion, 10, 30), keys)
	require.Equal(t, -100.0, l.Offset())

	cmd := l.Update(mouse(tea.MouseActionRelease, 10, 30), keys)
	require.Nil(t, cmd)
	require.Equal(t, gesture.Idle, l.Phase(), "exactly one hundred units snaps back")
	require.Equal(t, 0.0, l.Offset())
	require.False(t, l.capture.held)

	l.Update(mouse(tea.MouseActionPress, 10, 40), keys)
	l.Update(mouse(tea.MouseActionMotion, 10, 29), keys)
	cmd = l.Update(mouse(tea.MouseActionRelease, 10, 29), keys)
	require.Equal(t, gesture.Unlocking, l.Phase())
	require.NotNil(t, cmd)
	require.Equal(t, 2, l.capture.acquired)
	require.Equal(t, 2, l.capture.released)
}

func TestLockScreenIgnoresMotionWithoutCapture(t *testing.T) {
	l := NewLockScreen(10, quietLog)
	keys := NewKeyRegistry()

	l.Update(mouse(tea.MouseActionMotion, 0, 5), keys)
	l.Update(mouse(tea.MouseActionRelease, 0, 5), keys)
	require.Equal(t, gesture.Idle, l.Phase())

	// Right button does not start a drag.
	m := mouse(tea.MouseActionPress, 0, 20)
	m.Button = tea.MouseButtonRight
	l.Update(m, keys)
	require.Equal(t, gesture.Idle, l.Phase())
}

func TestLockScreenCloseDropsPendingUnlock(t *testing.T) {
	l := NewLockScreen(10, quietLog)
	instantTicks(l)
	keys := NewKeyRegistry()

	msgs := collect(l.Update(keyPress("enter"), keys))
	require.Len(t, msgs, 1)
	l.Close()
	require.Zero(t, l.sched.pending())

	require.Nil(t, l.Update(msgs[0], keys))
	require.Equal(t, gesture.Unlocking, l.Phase())
}

func TestLockScreenViewFollowsDrag(t *testing.T) {
	l := NewLockScreen(10, quietLog)
	keys := NewKeyRegistry()
	now := clock.Value{Time: "09:05", Date: "Quinta, 15 de outubro"}

	rowOf := func(view string) int {
		for i, line := range strings.Split(view, "\n") {
			if strings.Contains(line, now.Date) {
				return i
			}
		}
		return -1
	}

	rest := l.View(80, 40, now)
	require.Contains(t, rest, lockHint)
	before := rowOf(rest)
	require.Greater(t, before, 16)

	l.Update(mouse(tea.MouseActionPress, 10, 30), keys)
	l.Update(mouse(tea.MouseActionMotion, 10, 26), keys)
	dragged := l.View(80, 40, now)
	require.Equal(t, before-4, rowOf(dragged))
	require.Len(t, strings.Split(dragged, "\n"), 40)
}

func TestTeaSchedulerCancel(t *testing.T) {
	s := newTeaScheduler(7)
	ran := 0
	task := s.Schedule(gesture.UnlockDelay, func() { ran++ })
	s.Schedule(gesture.UnlockDelay, func() { ran += 10 })
	require.Equal(t, 2, s.pending())

	task.Cancel()
	require.False(t, s.fire(fireMsg{owner: 7, id: 1}))
	require.False(t, s.fire(fireMsg{owner: 8, id: 2}), "foreign owner")
	require.True(t, s.fire(fireMsg{owner: 7, id: 2}))
	require.Equal(t, 10, ran)
	require.Zero(t, s.pending())
}

func TestLockScreensGetDistinctOwnersAcrossGoroutines(t *testing.T) {
	const n = 32
	owners := make(chan int, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			owners <- NewLockScreen(10, quietLog).sched.owner
		}()
	}
	wg.Wait()
	close(owners)

	seen := make(map[int]bool, n)
	for owner := range owners {
		require.False(t, seen[owner], "owner %d reused", owner)
		seen[owner] = true
	}
	require.Len(t, seen, n)
}
