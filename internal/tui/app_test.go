package tui

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"

	"github.com/foxzinnx/deskfolio/internal/gesture"
	"github.com/foxzinnx/deskfolio/internal/session"
)

func TestAppDragPastThresholdShowsDesktop(t *testing.T) {
	a := newTestApp(t, nil)
	require.True(t, a.Locked())

	send(t, a, mouse(tea.MouseActionPress, 20, 50))
	send(t, a, mouse(tea.MouseActionMotion, 20, 35))
	require.Equal(t, -150.0, a.LockScreen().Offset())

	_, cmd := a.Update(mouse(tea.MouseActionRelease, 20, 35))
	require.True(t, a.Locked(), "unlock completes only after the delay")
	require.Equal(t, gesture.Unlocking, a.LockScreen().Phase())

	run(t, a, cmd)
	require.False(t, a.Locked())
	require.Equal(t, "desktop", a.Surface())
	require.Nil(t, a.LockScreen())
}

func TestAppShortDragStaysLocked(t *testing.T) {
	a := newTestApp(t, nil)

	send(t, a, mouse(tea.MouseActionPress, 20, 50))
	send(t, a, mouse(tea.MouseActionMotion, 20, 42))
	send(t, a, mouse(tea.MouseActionRelease, 20, 42))

	require.True(t, a.Locked())
	require.Equal(t, gesture.Idle, a.LockScreen().Phase())
	require.Equal(t, 0.0, a.LockScreen().Offset())
}

func TestAppEnterUnlocksAndRelockMountsFreshEngine(t *testing.T) {
	a := newTestApp(t, nil)
	send(t, a, keyPress("enter"))
	require.False(t, a.Locked())

	send(t, a, keyPress("ctrl+l"))
	require.True(t, a.Locked())
	require.Equal(t, gesture.Idle, a.LockScreen().Phase())
	require.Equal(t, 0.0, a.LockScreen().Offset())

	instantTicks(a.LockScreen())
	send(t, a, keyPress("enter"))
	require.False(t, a.Locked())
}

func TestAppStaleUnlockAfterRelockIsDropped(t *testing.T) {
	a := newTestApp(t, nil)
	_, pending := a.Update(keyPress("enter"))
	require.Equal(t, gesture.Unlocking, a.LockScreen().Phase())

	old := a.LockScreen()
	a.Relock()
	require.NotSame(t, old, a.LockScreen())
	require.True(t, old.engine.Closed())

	run(t, a, pending)
	require.True(t, a.Locked())
	require.Equal(t, gesture.Idle, a.LockScreen().Phase())

	// An UnlockedMsg from the previous screen is ignored as well.
	send(t, a, UnlockedMsg{owner: old.sched.owner})
	require.True(t, a.Locked())
}

func TestAppRelockIgnoredWhileLocked(t *testing.T) {
	a := newTestApp(t, nil)
	lock := a.LockScreen()
	send(t, a, RelockMsg{Reason: "session"})
	require.Same(t, lock, a.LockScreen())
}

func TestAppLockButtonRelocks(t *testing.T) {
	a := newTestApp(t, nil)
	send(t, a, keyPress("enter"))
	require.False(t, a.Locked())

	start, _ := lockButtonSpan(100)
	send(t, a, mouse(tea.MouseActionPress, start, 39))
	require.True(t, a.Locked())
}

func TestAppIdleRelock(t *testing.T) {
	now := time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)
	a := newTestApp(t, func(o *Options) {
		o.IdleRelock = 5 * time.Minute
		o.Now = func() time.Time { return now }
	})
	var scheduled []time.Duration
	a.tick = func(d time.Duration, _ func(time.Time) tea.Msg) tea.Cmd {
		scheduled = append(scheduled, d)
		return nil
	}

	send(t, a, keyPress("enter"))
	require.False(t, a.Locked())
	require.Equal(t, []time.Duration{5 * time.Minute}, scheduled)

	now = now.Add(3 * time.Minute)
	send(t, a, keyPress("l"))
	now = now.Add(2 * time.Minute)
	send(t, a, idleCheckMsg{gen: a.idleGen})
	require.False(t, a.Locked(), "input three minutes in pushes the deadline")
	require.Equal(t, 3*time.Minute, scheduled[len(scheduled)-1])

	// A check from an older schedule does nothing.
	now = now.Add(10 * time.Minute)
	send(t, a, idleCheckMsg{gen: a.idleGen - 1})
	require.False(t, a.Locked())

	send(t, a, idleCheckMsg{gen: a.idleGen})
	require.True(t, a.Locked())
}

func TestAppIdleRelockDisabled(t *testing.T) {
	a := newTestApp(t, nil)
	called := false
	a.tick = func(time.Duration, func(time.Time) tea.Msg) tea.Cmd {
		called = true
		return nil
	}
	send(t, a, keyPress("enter"))
	require.False(t, called)
}

func TestAppLaunchRecordsAndOpensLinks(t *testing.T) {
	store := &fakeStore{}
	opener := &fakeOpener{}
	a := newTestApp(t, func(o *Options) {
		o.Launches = store
		o.Opener = opener
	})
	send(t, a, keyPress("enter"))

	// GitHub has a panel: the modal opens and nothing is launched externally.
	send(t, a, keyPress("enter"))
	p, ok := a.Desktop().ModalPanel()
	require.True(t, ok)
	require.Equal(t, "github", p.Slug)
	require.Empty(t, opener.opened)
	require.Equal(t, 1, a.Desktop().launches["github"])

	send(t, a, keyPress("o"))
	require.Equal(t, []string{"https://github.com/foxzinnx"}, opener.opened)
	require.Contains(t, a.status, "abrindo")

	send(t, a, keyPress("esc"))
	_, ok = a.Desktop().ModalPanel()
	require.False(t, ok)

	// Email only has a link.
	send(t, a, keyPress("right"))
	send(t, a, keyPress("right"))
	send(t, a, keyPress("enter"))
	_, ok = a.Desktop().ModalPanel()
	require.False(t, ok)
	require.Equal(t, "mailto:bryangomes16624@gmail.com", opener.opened[1])
	require.Len(t, store.records, 2)
	require.Equal(t, "key", store.records[1].Via)
}

func TestAppStatusBarShowsLastLaunch(t *testing.T) {
	store := &fakeStore{}
	_, err := store.Record(context.Background(), "linkedin", "click")
	require.NoError(t, err)
	a := newTestApp(t, func(o *Options) { o.Launches = store })
	run(t, a, a.loadCounts())
	send(t, a, keyPress("enter"))
	require.Contains(t, ansi.Strip(a.View()), "último: LinkedIn")

	send(t, a, keyPress("enter"))
	send(t, a, keyPress("esc"))
	require.Equal(t, 1, a.Desktop().launches["github"])
	require.Contains(t, ansi.Strip(a.View()), "último: GitHub")
}

func TestAppOpenErrorShowsInStatus(t *testing.T) {
	opener := &fakeOpener{err: errOpen}
	a := newTestApp(t, func(o *Options) { o.Opener = opener })
	send(t, a, keyPress("enter"))
	send(t, a, keyPress("right"))
	send(t, a, keyPress("right"))
	send(t, a, keyPress("enter"))
	require.True(t, a.statusErr)
	require.Equal(t, errOpen.Error(), a.status)
}

func TestAppQuitTearsDownLock(t *testing.T) {
	a := newTestApp(t, nil)
	_, _ = a.Update(keyPress("enter"))
	lock := a.LockScreen()

	_, cmd := a.Update(keyPress("ctrl+c"))
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
	require.True(t, lock.engine.Closed())
	require.Zero(t, lock.sched.pending())
	require.Empty(t, a.View())
}

type lockSourceFunc func() error

func (f lockSourceFunc) Next() error { return f() }

func TestAppSessionLockSignalRelocks(t *testing.T) {
	calls := 0
	a := newTestApp(t, func(o *Options) {
		o.LockSource = lockSourceFunc(func() error {
			calls++
			if calls == 1 {
				return nil
			}
			return session.ErrClosed
		})
	})
	send(t, a, keyPress("enter"))
	require.False(t, a.Locked())

	run(t, a, a.waitForLock())
	require.True(t, a.Locked())
	require.Equal(t, 2, calls, "the wait is re-armed after a signal")
}
