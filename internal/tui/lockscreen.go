package tui

import (
	"log/slog"
	"math"
	"strings"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/foxzinnx/deskfolio/internal/clock"
	"github.com/foxzinnx/deskfolio/internal/gesture"
)

// UnlockedMsg is emitted once when the lock screen finished unlocking.
type UnlockedMsg struct {
	owner int
}

const lockHint = "Pressione Enter ou arraste para cima"

var lockSeq int64

// LockScreen owns a gesture engine for as long as it is mounted.
type LockScreen struct {
	engine      *gesture.Engine
	sched       *teaScheduler
	capture     *pointerCapture
	unitsPerRow float64
	notified    bool
}

// NewLockScreen mounts a fresh lock screen in Idle.
func NewLockScreen(unitsPerRow float64, log *slog.Logger) *LockScreen {
	if unitsPerRow <= 0 {
		unitsPerRow = 10
	}
	l := &LockScreen{
		sched:       newTeaScheduler(int(atomic.AddInt64(&lockSeq, 1))),
		capture:     &pointerCapture{},
		unitsPerRow: unitsPerRow,
	}
	l.engine = gesture.New(l.sched, l.capture, func() { l.notified = true }, gesture.WithLogger(log))
	return l
}

func (l *LockScreen) Phase() gesture.Phase { return l.engine.Phase() }
func (l *LockScreen) Offset() float64 { return l.engine.Offset() }

// Close unmounts the lock screen, invalidating any pending unlock.
func (l *LockScreen) Close() { l.engine.Close() }

// Update feeds msg to the engine. The returned command carries the
// engine's scheduled ticks and, once, an UnlockedMsg.
func (l *LockScreen) Update(msg tea.Msg, keys *KeyRegistry) tea.Cmd {
	switch m := msg.(type) {
	case fireMsg:
		if !l.sched.fire(m) {
			return nil
		}
	case tea.KeyMsg:
		if keys.IsAction(m.String(), scopeLock, actionUnlock) {
			l.engine.Handle(gesture.Event{Kind: gesture.Key, Key: "enter"})
		}
	case tea.MouseMsg:
		l.handleMouse(m)
	}
	cmd := l.sched.drain()
	if l.notified {
		l.notified = false
		owner := l.sched.owner
		return tea.Batch(cmd, func() tea.Msg { return UnlockedMsg{owner: owner} })
	}
	return cmd
}

func (l *LockScreen) handleMouse(m tea.MouseMsg) {
	p := gesture.Point{X: float64(m.X) * l.unitsPerRow, Y: float64(m.Y) * l.unitsPerRow}
	switch m.Action {
	case tea.MouseActionPress:
		if m.Button == tea.MouseButtonLeft {
			l.engine.Handle(gesture.Event{Kind: gesture.Down, Source: gesture.Pointer, Point: p})
		}
	case tea.MouseActionMotion:
		if l.capture.held {
			l.engine.Handle(gesture.Event{Kind: gesture.Move, Source: gesture.Pointer, Point: p})
		}
	case tea.MouseActionRelease:
		if l.capture.held {
			l.engine.Handle(gesture.Event{Kind: gesture.Up, Source: gesture.Pointer})
		}
	}
}

// shiftRows converts the drag offset into whole terminal rows.
func (l *LockScreen) shiftRows() int {
	return int(math.Round(-l.engine.Offset() / l.unitsPerRow))
}

// View renders the lock surface, following the drag.
func (l *LockScreen) View(width, height int, now clock.Value) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	timeStyle, dateStyle := lockTimeStyle, lockDateStyle
	if l.engine.Phase() == gesture.Unlocking || l.engine.Phase() == gesture.Unlocked {
		timeStyle, dateStyle = lockFadeStyle.Bold(true), lockFadeStyle
	}
	clockBlock := lipgloss.JoinVertical(lipgloss.Center,
		timeStyle.Render(bigDigits(now.Time)),
		"",
		dateStyle.Render(now.Date),
	)
	hint := lockHintStyle.Render(lockHint + "\n" + strings.Repeat(" ", len(lockHint)/2) + "▲")
	hintHeight := lipgloss.Height(hint) + 1
	body := lipgloss.Place(width, max(1, height-hintHeight), lipgloss.Center, lipgloss.Center, clockBlock)
	footer := lipgloss.PlaceHorizontal(width, lipgloss.Center, hint)
	canvas := fitCanvas(body+"\n"+footer, width, height)

	shift := l.shiftRows()
	if l.engine.Phase() == gesture.Unlocking || l.engine.Phase() == gesture.Unlocked {
		shift = max(shift, height/2)
	}
	return shiftUp(canvas, shift, width)
}

// bigDigits renders HH:MM with three-row block glyphs.
func bigDigits(s string) string {
	rows := [3][]string{}
	for _, r := range s {
		g, ok := digitGlyphs[r]
		if !ok {
			g = [3]string{"   ", " " + string(r) + " ", "   "}
		}
		for i := range rows {
			rows[i] = append(rows[i], g[i])
		}
	}
	out := make([]string, 3)
	for i := range rows {
		out[i] = strings.Join(rows[i], " ")
	}
	return strings.Join(out, "\n")
}

var digitGlyphs = map[rune][3]string{
	'0': {"█▀█", "█ █", "▀▀▀"},
	'1': {" ▄█", "  █", "  ▀"},
	'2': {"▀▀█", "█▀▀", "▀▀▀"},
	'3': {"▀▀█", " ▀█", "▀▀▀"},
	'4': {"█ █", "▀▀█", "  ▀"},
	'5': {"█▀▀", "▀▀█", "▀▀▀"},
	'6': {"█▀▀", "█▀█", "▀▀▀"},
	'7': {"▀▀█", "  █", "  ▀"},
	'8': {"█▀█", "█▀█", "▀▀▀"},
	'9': {"█▀█", "▀▀█", "▀▀▀"},
	':': {" ", "▪", " "},
}
