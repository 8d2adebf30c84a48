package sim

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ErrBadEvent is returned for malformed event specs.
var ErrBadEvent = errors.New("event must look like name@tick")

// Action is a scripted change applied before a tick is evaluated.
type Action int

const (
	ActionFault Action = iota
	ActionReset
	ActionDeactivate
	ActionActivate
)

func (a Action) String() string {
	switch a {
	case ActionReset:
		return "reset"
	case ActionDeactivate:
		return "deactivate"
	case ActionActivate:
		return "activate"
	default:
		return "fault"
	}
}

// Event schedules an Action at a 1-based tick. Sensor is empty for
// activation events.
type Event struct {
	Tick   int
	Action Action
	Sensor string
}

// ParseSensorEvent parses "name@tick" for fault and reset actions.
func ParseSensorEvent(action Action, spec string) (Event, error) {
	i := strings.LastIndex(spec, "@")
	if i <= 0 || i == len(spec)-1 {
		return Event{}, fmt.Errorf("%w: %q", ErrBadEvent, spec)
	}
	tick, err := strconv.Atoi(spec[i+1:])
	if err != nil || tick < 1 {
		return Event{}, fmt.Errorf("%w: %q: tick must be a positive integer", ErrBadEvent, spec)
	}
	return Event{Tick: tick, Action: action, Sensor: spec[:i]}, nil
}

// Script is an ordered list of events.
type Script []Event

// At returns the events due at tick in insertion order.
func (s Script) At(tick int) []Event {
	var due []Event
	for _, ev := range s {
		if ev.Tick == tick {
			due = append(due, ev)
		}
	}
	return due
}

// Sorted returns a copy ordered by tick, stable within a tick.
func (s Script) Sorted() Script {
	out := append(Script(nil), s...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Tick < out[j].Tick })
	return out
}
