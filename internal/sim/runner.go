// Package sim drives the braking engine headlessly at a fixed tick rate and
// applies a scripted sequence of faults and activation changes.
package sim

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"aebs.klederson.com/internal/aebs"
	"github.com/sirupsen/logrus"
)

// ErrUnknownSensorName is returned when a script names a sensor the engine lacks.
var ErrUnknownSensorName = errors.New("script names unknown sensor")

// Transition records a tick where the brake level or fault indicator changed.
type Transition struct {
	Tick     int
	Decision aebs.Decision
}

// Result is the outcome of a run.
type Result struct {
	Ticks       int
	Transitions []Transition
	Final       aebs.Decision
}

// Runner evaluates an engine once per tick.
type Runner struct {
	engine   *aebs.Engine
	ticks    int
	interval time.Duration
	script   Script
	log      logrus.FieldLogger
}

// NewRunner creates a runner for ticks cycles. An interval of zero runs as
// fast as possible.
func NewRunner(engine *aebs.Engine, ticks int, interval time.Duration, script Script) *Runner {
	discard := logrus.New()
	discard.SetOutput(io.Discard)
	return &Runner{
		engine:   engine,
		ticks:    ticks,
		interval: interval,
		script:   script.Sorted(),
		log:      discard,
	}
}

// SetLogger routes per-event logs to l.
func (r *Runner) SetLogger(l logrus.FieldLogger) {
	if l != nil {
		r.log = l
	}
}

// Run executes the script. It returns early with ctx.Err() on cancellation,
// along with the partial result.
func (r *Runner) Run(ctx context.Context) (Result, error) {
	if err := r.checkScript(); err != nil {
		return Result{}, err
	}

	var ticker *time.Ticker
	if r.interval > 0 {
		ticker = time.NewTicker(r.interval)
		defer ticker.Stop()
	}

	var res Result
	prev := r.engine.Last()
	for tick := 1; tick <= r.ticks; tick++ {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if ticker != nil {
			select {
			case <-ctx.Done():
				return res, ctx.Err()
			case <-ticker.C:
			}
		}

		for _, ev := range r.script.At(tick) {
			if err := r.apply(ev); err != nil {
				return res, fmt.Errorf("tick %d: %w", tick, err)
			}
		}

		d := r.engine.Evaluate()
		res.Ticks = tick
		res.Final = d
		if tick == 1 || d.BrakeLevel != prev.BrakeLevel || d.FaultDetected != prev.FaultDetected {
			res.Transitions = append(res.Transitions, Transition{Tick: tick, Decision: d})
		}
		prev = d
	}
	return res, nil
}

func (r *Runner) apply(ev Event) error {
	fields := logrus.Fields{"tick": ev.Tick, "action": ev.Action}
	switch ev.Action {
	case ActionDeactivate:
		r.engine.SetActive(false)
	case ActionActivate:
		r.engine.SetActive(true)
	default:
		id, err := r.sensorID(ev.Sensor)
		if err != nil {
			return err
		}
		fields["sensor"] = ev.Sensor
		if ev.Action == ActionFault {
			err = r.engine.InjectFault(id)
		} else {
			err = r.engine.ResetFault(id)
		}
		if err != nil {
			return err
		}
	}
	r.log.WithFields(fields).Debug("script event applied")
	return nil
}

func (r *Runner) checkScript() error {
	for _, ev := range r.script {
		if ev.Action == ActionFault || ev.Action == ActionReset {
			if _, err := r.sensorID(ev.Sensor); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *Runner) sensorID(name string) (string, error) {
	for _, info := range r.engine.Sensors() {
		if info.Name == name {
			return info.ID, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSensorName, name)
}
