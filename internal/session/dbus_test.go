package session

import (
	"testing"

	"github.com/godbus/dbus/v5"
)

func TestIsLockSignal(t *testing.T) {
	path := dbus.ObjectPath("/org/freedesktop/login1/session/c2")
	cases := []struct {
		name string
		sig  *dbus.Signal
		want bool
	}{
		{name: "nil", sig: nil, want: false},
		{name: "lock", sig: &dbus.Signal{Name: "org.freedesktop.login1.Session.Lock", Path: path}, want: true},
		{name: "unlock", sig: &dbus.Signal{Name: "org.freedesktop.login1.Session.Unlock", Path: path}, want: false},
		{name: "other session", sig: &dbus.Signal{Name: "org.freedesktop.login1.Session.Lock", Path: "/org/freedesktop/login1/session/c3"}, want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsLockSignal(tc.sig, path); got != tc.want {
				t.Fatalf("IsLockSignal = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestDialRequiresSession(t *testing.T) {
	if _, err := Dial(""); err == nil {
		t.Fatal("expected error for empty session id")
	}
}

func TestNextAfterClose(t *testing.T) {
	w := &Watcher{signals: make(chan *dbus.Signal), done: make(chan struct{})}
	close(w.done)
	if err := w.Next(); err != ErrClosed {
		t.Fatalf("Next = %v, want ErrClosed", err)
	}
}

func TestNextSkipsUnrelatedSignals(t *testing.T) {
	path := dbus.ObjectPath("/org/freedesktop/login1/session/c2")
	w := &Watcher{path: path, signals: make(chan *dbus.Signal, 2), done: make(chan struct{})}
	w.signals <- &dbus.Signal{Name: "org.freedesktop.login1.Session.Unlock", Path: path}
	w.signals <- &dbus.Signal{Name: "org.freedesktop.login1.Session.Lock", Path: path}
	if err := w.Next(); err != nil {
		t.Fatalf("Next = %v", err)
	}
}
