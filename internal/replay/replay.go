// Package replay drives a gesture engine from a text script. It runs the
// engine on a virtual clock, so scripts finish instantly and deterministically.
//
// Script lines:
//
//	pointer down <y> | touch down <y>
//	pointer move <y> | touch move <y>
//	pointer up       | touch up
//	key <name>
//	wait <duration>
//	teardown
//
// Blank lines and lines starting with # are ignored.
package replay

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/foxzinnx/deskfolio/internal/gesture"
)

// Step is one parsed script line.
type Step struct {
	Line     int
	Event    *gesture.Event
	Wait     time.Duration
	Teardown bool
}

// Result summarises a run.
type Result struct {
	Phase   gesture.Phase
	Offset  float64
	Unlocks int
	Elapsed time.Duration
}

// Parse reads a script.
func Parse(r io.Reader) ([]Step, error) {
	var steps []Step
	sc := bufio.NewScanner(r)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		step, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		step.Line = n
		steps = append(steps, step)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return steps, nil
}

func parseLine(line string) (Step, error) {
	fields := strings.Fields(strings.ToLower(line))
	switch fields[0] {
	case "wait":
		if len(fields) != 2 {
			return Step{}, fmt.Errorf("wait needs a duration")
		}
		d, err := time.ParseDuration(fields[1])
		if err != nil {
			return Step{}, fmt.Errorf("wait: %w", err)
		}
		if d < 0 {
			return Step{}, fmt.Errorf("wait: negative duration %s", d)
		}
		return Step{Wait: d}, nil
	case "teardown":
		return Step{Teardown: true}, nil
	case "key":
		if len(fields) != 2 {
			return Step{}, fmt.Errorf("key needs a name")
		}
		return Step{Event: &gesture.Event{Kind: gesture.Key, Key: fields[1]}}, nil
	case "pointer", "touch":
		src := gesture.Pointer
		if fields[0] == "touch" {
			src = gesture.Touch
		}
		if len(fields) < 2 {
			return Step{}, fmt.Errorf("%s needs an action", fields[0])
		}
		ev := gesture.Event{Source: src}
		switch fields[1] {
		case "down":
			ev.Kind = gesture.Down
		case "move":
			ev.Kind = gesture.Move
		case "up":
			ev.Kind = gesture.Up
			if len(fields) != 2 {
				return Step{}, fmt.Errorf("%s up takes no coordinate", fields[0])
			}
			return Step{Event: &ev}, nil
		default:
			return Step{}, fmt.Errorf("unknown %s action %q", fields[0], fields[1])
		}
		if len(fields) != 3 {
			return Step{}, fmt.Errorf("%s %s needs a y coordinate", fields[0], fields[1])
		}
		y, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return Step{}, fmt.Errorf("bad coordinate %q: %w", fields[2], err)
		}
		ev.Point = gesture.Point{Y: y}
		return Step{Event: &ev}, nil
	default:
		return Step{}, fmt.Errorf("unknown command %q", fields[0])
	}
}

// Run executes steps against a fresh engine and writes a transcript to out.
func Run(steps []Step, out io.Writer, log *slog.Logger) Result {
	sched := gesture.NewManualScheduler()
	var res Result
	engine := gesture.New(sched, nil, func() {
		res.Unlocks++
		fmt.Fprintf(out, "%8s  unlocked: notification #%d\n", sched.Now(), res.Unlocks)
	}, gesture.WithLogger(log))

	for _, step := range steps {
		switch {
		case step.Teardown:
			engine.Close()
			fmt.Fprintf(out, "%8s  teardown\n", sched.Now())
		case step.Wait > 0:
			sched.Advance(step.Wait)
		case step.Event != nil:
			before := engine.Phase()
			engine.Handle(*step.Event)
			fmt.Fprintf(out, "%8s  %-22s %s -> %s offset=%g\n",
				sched.Now(), describe(*step.Event), before, engine.Phase(), engine.Offset())
		}
	}
	res.Phase = engine.Phase()
	res.Offset = engine.Offset()
	res.Elapsed = sched.Now()
	return res
}

func describe(ev gesture.Event) string {
	switch ev.Kind {
	case gesture.Key:
		return "key " + ev.Key
	case gesture.Up:
		return ev.Source.String() + " up"
	default:
		return fmt.Sprintf("%s %s y=%g", ev.Source, ev.Kind, ev.Point.Y)
	}
}
