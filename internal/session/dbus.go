// Package session listens for the desktop session being locked by the
// system (for example `loginctl lock-session`) so the portfolio desktop can
// lock itself as well.
package session

import (
	"errors"
	"fmt"
	"sync"

	"github.com/godbus/dbus/v5"
)

const (
	login1Dest      = "org.freedesktop.login1"
	login1Path      = "/org/freedesktop/login1"
	sessionIface    = "org.freedesktop.login1.Session"
	lockSignalName  = sessionIface + ".Lock"
	getSessionCall  = "org.freedesktop.login1.Manager.GetSession"
	signalQueueSize = 8
)

// ErrClosed is returned by Next after Close.
var ErrClosed = errors.New("session watcher closed")

// Watcher delivers login1 Lock signals for a single session.
type Watcher struct {
	conn    *dbus.Conn
	path    dbus.ObjectPath
	signals chan *dbus.Signal

	closeOnce sync.Once
	done      chan struct{}
}

// Dial connects to the system bus and subscribes to the Lock signal of the
// session with the given id (usually $XDG_SESSION_ID).
func Dial(sessionID string) (*Watcher, error) {
	if sessionID == "" {
		return nil, errors.New("sessionID is empty")
	}
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to system bus: %w", err)
	}

	var path dbus.ObjectPath
	err = conn.Object(login1Dest, login1Path).
		Call(getSessionCall, 0, sessionID).
		Store(&path)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("get session %s: %w", sessionID, err)
	}

	if err := conn.AddMatchSignal(
		dbus.WithMatchObjectPath(path),
		dbus.WithMatchInterface(sessionIface),
		dbus.WithMatchSender(login1Dest),
		dbus.WithMatchMember("Lock"),
	); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to register Dbus Lock signal: %w", err)
	}

	w := &Watcher{
		conn:    conn,
		path:    path,
		signals: make(chan *dbus.Signal, signalQueueSize),
		done:    make(chan struct{}),
	}
	conn.Signal(w.signals)
	return w, nil
}

// Next blocks until the session receives a Lock signal.
func (w *Watcher) Next() error {
	for {
		select {
		case <-w.done:
			return ErrClosed
		case sig, ok := <-w.signals:
			if !ok {
				return ErrClosed
			}
			if IsLockSignal(sig, w.path) {
				return nil
			}
		}
	}
}

// Close unsubscribes and closes the bus connection. Safe to call twice.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		w.conn.RemoveSignal(w.signals)
		err = w.conn.Close()
	})
	return err
}

// IsLockSignal reports whether sig is a login1 Lock signal for path.
func IsLockSignal(sig *dbus.Signal, path dbus.ObjectPath) bool {
	if sig == nil {
		return false
	}
	return sig.Name == lockSignalName && sig.Path == path
}
