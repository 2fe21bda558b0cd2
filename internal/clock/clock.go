// Package clock produces the time and date labels shown on the lock screen
// and in the desktop status bar.
package clock

import (
	"fmt"
	"time"
)

// RefreshInterval is how often displayed labels are recomputed.
const RefreshInterval = 60 * time.Second

var weekdays = [...]string{"Domingo", "Segunda", "Terça", "Quarta", "Quinta", "Sexta", "Sábado"}

var months = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// Value is an immutable snapshot of the displayed labels.
type Value struct {
	Time string
	Date string
}

// FormatTime renders t as 24-hour HH:MM.
func FormatTime(t time.Time) string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// FormatDate renders t as "<Weekday>, <DD> de <month>".
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%s, %02d de %s", weekdays[t.Weekday()], t.Day(), months[t.Month()-1])
}

// At returns the labels for t.
func At(t time.Time) Value {
	return Value{Time: FormatTime(t), Date: FormatDate(t)}
}

// Source reads wall-clock time in a fixed location.
type Source struct {
	Now      func() time.Time
	Location *time.Location
}

// NewSource returns a Source for loc, falling back to the local zone.
func NewSource(loc *time.Location) Source {
	if loc == nil {
		loc = time.Local
	}
	return Source{Now: time.Now, Location: loc}
}

// Snapshot returns the labels for the current time.
func (s Source) Snapshot() Value {
	return At(s.current())
}

func (s Source) current() time.Time {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	t := now()
	if s.Location != nil {
		t = t.In(s.Location)
	}
	return t
}
