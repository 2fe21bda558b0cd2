package tui

import (
	"context"
	"errors"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/foxzinnx/deskfolio/internal/clock"
	"github.com/foxzinnx/deskfolio/internal/content"
	"github.com/foxzinnx/deskfolio/internal/database/repository"
	"github.com/foxzinnx/deskfolio/internal/session"
)

// LaunchStore records icon activations.
type LaunchStore interface {
	Record(ctx context.Context, slug, via string) (repository.Launch, error)
	Counts(ctx context.Context) (map[string]int, error)
	Recent(ctx context.Context, limit int) ([]repository.Launch, error)
}

// LockSource blocks until something outside the program asks for a lock.
type LockSource interface {
	Next() error
}

// Options wires the app's collaborators. Only Panels is required.
type Options struct {
	Panels      []content.Panel
	Clock       clock.Source
	UnitsPerRow float64
	IdleRelock  time.Duration
	Launches    LaunchStore
	Opener      Opener
	LockSource  LockSource
	Logger      *slog.Logger
	Now         func() time.Time
}

type surface string

const (
	surfaceLock    surface = "lock"
	surfaceDesktop surface = "desktop"
)

type statusMsg struct {
	text  string
	isErr bool
}

type countsMsg struct {
	counts map[string]int
	recent []repository.Launch
	err    error
}

type idleCheckMsg struct {
	gen int
}

type lockSourceClosedMsg struct {
	err error
}

// App is the root model: it swaps between the lock screen and the desktop.
type App struct {
	ctx     context.Context
	opts    Options
	log     *slog.Logger
	keys    *KeyRegistry
	width   int
	height  int
	surface surface
	lock    *LockScreen
	desk    *Desktop
	clock   clock.Ticker

	status     string
	statusErr  bool
	lastLaunch string

	lastInput time.Time
	idleGen   int
	quitting  bool

	tick func(time.Duration, func(time.Time) tea.Msg) tea.Cmd
}

func New(ctx context.Context, opts Options) *App {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Opener == nil {
		opts.Opener = SystemOpener{}
	}
	if opts.Clock.Now == nil {
		opts.Clock = clock.NewSource(opts.Clock.Location)
	}
	a := &App{
		ctx:    ctx,
		opts:   opts,
		log:    opts.Logger,
		keys:   NewKeyRegistry(),
		width:  100,
		height: 32,
		desk:   NewDesktop(opts.Panels),
		clock:  clock.NewTicker(opts.Clock),
		tick:   tea.Tick,
	}
	a.desk.SetSize(a.width, a.height)
	a.mountLock()
	return a
}

func (a *App) Init() tea.Cmd {
	var tick tea.Cmd
	a.clock, tick = a.clock.Start()
	return tea.Batch(tick, a.loadCounts(), a.waitForLock())
}

// Surface reports which surface is visible.
func (a *App) Surface() string { return string(a.surface) }

func (a *App) Locked() bool { return a.surface == surfaceLock }

func (a *App) LockScreen() *LockScreen { return a.lock }

func (a *App) Desktop() *Desktop { return a.desk }

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = m.Width, m.Height
		a.desk.SetSize(m.Width, m.Height)
		return a, nil
	case clock.TickMsg:
		var cmd tea.Cmd
		a.clock, cmd = a.clock.Update(m)
		return a, cmd
	case UnlockedMsg:
		if a.lock == nil || a.lock.sched.owner != m.owner {
			return a, nil
		}
		return a, a.showDesktop()
	case RelockMsg:
		if a.surface == surfaceLock {
			return a, nil
		}
		a.log.Info("relock", "reason", m.Reason)
		a.Relock()
		return a, nil
	case quitMsg:
		return a, a.quit()
	case LaunchMsg:
		return a, a.launch(m)
	case OpenURLMsg:
		return a, a.open(m.URL)
	case statusMsg:
		a.status, a.statusErr = m.text, m.isErr
		return a, nil
	case countsMsg:
		if m.err != nil {
			a.log.Warn("load launch counts", "err", m.err)
			return a, nil
		}
		a.desk.SetLaunchCounts(m.counts)
		if len(m.recent) > 0 {
			a.lastLaunch = m.recent[0].PanelSlug
		}
		return a, nil
	case idleCheckMsg:
		return a, a.checkIdle(m)
	case lockSourceClosedMsg:
		if m.err != nil {
			a.log.Warn("session lock source stopped", "err", m.err)
		}
		return a, nil
	case lockSourceMsg:
		return a, tea.Batch(emit(RelockMsg{Reason: "session"}), a.waitForLock())
	case fireMsg:
		if a.lock != nil {
			return a, a.lock.Update(m, a.keys)
		}
		return a, nil
	}

	if k, ok := msg.(tea.KeyMsg); ok {
		if b := a.keys.Lookup(k.String(), a.scope()); b != nil && b.Action == actionQuit && a.scope() != scopeLauncher {
			return a, a.quit()
		}
	}

	switch a.surface {
	case surfaceLock:
		return a, a.lock.Update(msg, a.keys)
	default:
		if isInput(msg) {
			a.lastInput = a.opts.Now()
			a.status = ""
		}
		return a, a.desk.Update(msg, a.keys)
	}
}

func (a *App) scope() string {
	if a.surface == surfaceLock {
		return scopeLock
	}
	return a.desk.Scope()
}

// Relock discards the desktop state and mounts a fresh lock screen.
func (a *App) Relock() {
	a.desk.Reset()
	a.idleGen++
	a.mountLock()
}

func (a *App) mountLock() {
	if a.lock != nil {
		a.lock.Close()
	}
	a.lock = NewLockScreen(a.opts.UnitsPerRow, a.log)
	a.surface = surfaceLock
}

func (a *App) showDesktop() tea.Cmd {
	if a.surface != surfaceLock {
		return nil
	}
	a.lock.Close()
	a.lock = nil
	a.surface = surfaceDesktop
	a.lastInput = a.opts.Now()
	a.log.Info("unlocked")
	return a.scheduleIdle(a.opts.IdleRelock)
}

func (a *App) quit() tea.Cmd {
	a.quitting = true
	if a.lock != nil {
		a.lock.Close()
	}
	a.clock = a.clock.Stop()
	a.idleGen++
	return tea.Quit
}

func (a *App) scheduleIdle(after time.Duration) tea.Cmd {
	if a.opts.IdleRelock <= 0 {
		return nil
	}
	a.idleGen++
	gen := a.idleGen
	return a.tick(after, func(time.Time) tea.Msg { return idleCheckMsg{gen: gen} })
}

func (a *App) checkIdle(m idleCheckMsg) tea.Cmd {
	if m.gen != a.idleGen || a.surface != surfaceDesktop {
		return nil
	}
	idle := a.opts.Now().Sub(a.lastInput)
	if idle >= a.opts.IdleRelock {
		a.log.Info("relock", "reason", "idle", "idle", idle.String())
		a.Relock()
		return nil
	}
	return a.scheduleIdle(a.opts.IdleRelock - idle)
}

func (a *App) launch(m LaunchMsg) tea.Cmd {
	a.log.Info("launch", "panel", m.Panel.Slug, "via", m.Via)
	var cmds []tea.Cmd
	if !m.Panel.HasModal() && m.Panel.Href != "" {
		cmds = append(cmds, a.open(m.Panel.Href))
	}
	if store := a.opts.Launches; store != nil {
		ctx := a.ctx
		cmds = append(cmds, func() tea.Msg {
			if _, err := store.Record(ctx, m.Panel.Slug, m.Via); err != nil {
				return countsMsg{err: err}
			}
			return launchStats(ctx, store)
		})
	}
	return tea.Batch(cmds...)
}

func (a *App) open(target string) tea.Cmd {
	opener := a.opts.Opener
	return func() tea.Msg {
		if err := opener.Open(target); err != nil {
			return statusMsg{text: err.Error(), isErr: true}
		}
		return statusMsg{text: "abrindo " + target}
	}
}

func (a *App) loadCounts() tea.Cmd {
	store := a.opts.Launches
	if store == nil {
		return nil
	}
	ctx := a.ctx
	return func() tea.Msg { return launchStats(ctx, store) }
}

func launchStats(ctx context.Context, store LaunchStore) tea.Msg {
	counts, err := store.Counts(ctx)
	if err != nil {
		return countsMsg{err: err}
	}
	recent, err := store.Recent(ctx, 1)
	return countsMsg{counts: counts, recent: recent, err: err}
}

type lockSourceMsg struct{}

func (a *App) waitForLock() tea.Cmd {
	src := a.opts.LockSource
	if src == nil {
		return nil
	}
	return func() tea.Msg {
		if err := src.Next(); err != nil {
			if errors.Is(err, session.ErrClosed) {
				return lockSourceClosedMsg{}
			}
			return lockSourceClosedMsg{err: err}
		}
		return lockSourceMsg{}
	}
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}
	value := a.clock.Value()
	if a.surface == surfaceLock {
		return a.lock.View(a.width, a.height, value)
	}
	help := renderFooter(a.keys, a.desk.Scope())
	if a.lastLaunch != "" {
		help = footerStyle.Render("último: "+a.desk.Label(a.lastLaunch)+" · ") + help
	}
	bar := renderStatusBar(a.width, value.Time, a.status, a.statusErr, help)
	return a.desk.View() + "\n" + bar
}

func isInput(msg tea.Msg) bool {
	switch msg.(type) {
	case tea.KeyMsg, tea.MouseMsg:
		return true
	}
	return false
}
