// Package aebs implements the automatic emergency braking decision core.
//
// An Engine owns a set of sensors and one bounded reading history per sensor.
// Each Evaluate call is one cycle:
//
//  1. Every sensor advances its own world state (Tick) and is polled.
//  2. The reading is appended to that sensor's history.
//  3. Fault flags are OR-reduced and healthy readings min-reduced.
//  4. The brake ladder turns the result into a BrakeLevel.
//
// Evaluate never fails. With no sensors it yields no braking and no fault, so
// missing data can never raise a false emergency brake. While the engine is
// inactive Evaluate forces the brake off and leaves every other output as it
// was.
package aebs

import (
	"errors"
	"fmt"
	"io"
	"math"
	"sync"

	"aebs.klederson.com/internal/config"
	"aebs.klederson.com/internal/history"
	"aebs.klederson.com/internal/sensor"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrNilSensor     = errors.New("sensor is nil")
	ErrEmptyName     = errors.New("sensor name is empty")
	ErrDuplicateName = errors.New("sensor name already registered")
	ErrUnknownSensor = errors.New("unknown sensor id")
)

type entry struct {
	id     string
	sensor sensor.Sensor
	last   float64
	polled bool
}

// Engine is the evaluation engine. All methods are safe for concurrent use;
// one mutex serializes the whole surface.
type Engine struct {
	mu sync.Mutex

	thresholds Thresholds
	log        logrus.FieldLogger

	active        bool
	brakeLevel    BrakeLevel
	faultDetected bool
	minDistance   float64
	faulty        []string
	cycle         uint64

	sensors []*entry
	history *history.Store
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger routes transition logs to l.
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithThresholds overrides the brake zones.
func WithThresholds(t Thresholds) Option {
	return func(e *Engine) { e.thresholds = t }
}

// WithMaxHistory sets the per-sensor history capacity.
func WithMaxHistory(n int) Option {
	return func(e *Engine) { e.history = history.NewStore(n) }
}

// New creates an active engine with no sensors, the default brake zones and
// a history of config.MaxHistory readings per sensor.
func New(opts ...Option) *Engine {
	discard := logrus.New()
	discard.SetOutput(io.Discard)

	e := &Engine{
		thresholds:  Thresholds{Full: config.FullBrakeDistance, Partial: config.PartialBrakeDistance},
		log:         discard,
		active:      true,
		minDistance: math.Inf(1),
		history:     history.NewStore(config.MaxHistory),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// FromConfig builds an engine from a validated config and installs its sensors.
func FromConfig(cfg config.Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	base := []Option{
		WithThresholds(Thresholds{Full: cfg.FullBrakeDistance, Partial: cfg.PartialBrakeDistance}),
		WithMaxHistory(cfg.MaxHistory),
	}
	e := New(append(base, opts...)...)

	for _, spec := range cfg.Sensors {
		kind, err := sensor.ParseKind(spec.Kind)
		if err != nil {
			return nil, err
		}
		s, err := sensor.New(kind, spec.Name)
		if err != nil {
			return nil, fmt.Errorf("sensor %q: %w", spec.Name, err)
		}
		if _, err := e.AddSensor(s); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// AddSensor takes ownership of s and returns its opaque id. Names must be
// unique: two sensors never share a history.
func (e *Engine) AddSensor(s sensor.Sensor) (string, error) {
	if s == nil {
		return "", ErrNilSensor
	}
	name := s.Name()
	if name == "" {
		return "", ErrEmptyName
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	for _, en := range e.sensors {
		if en.sensor.Name() == name {
			return "", fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
	}

	id := uuid.NewString()
	e.sensors = append(e.sensors, &entry{id: id, sensor: s})
	e.log.WithFields(logrus.Fields{"id": id, "name": name, "kind": s.Kind()}).Info("sensor added")
	return id, nil
}

// RemoveSensor drops a sensor and its history.
func (e *Engine) RemoveSensor(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	for i, en := range e.sensors {
		if en.id == id {
			e.sensors = append(e.sensors[:i], e.sensors[i+1:]...)
			e.history.Delete(id)
			e.log.WithFields(logrus.Fields{"id": id, "name": en.sensor.Name()}).Info("sensor removed")
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownSensor, id)
}

// Sensor returns the sensor registered under id.
func (e *Engine) Sensor(id string) (sensor.Sensor, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	en, err := e.lookup(id)
	if err != nil {
		return nil, err
	}
	return en.sensor, nil
}

// InjectFault sets the fault flag of sensor id.
func (e *Engine) InjectFault(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	en, err := e.lookup(id)
	if err != nil {
		return err
	}
	en.sensor.InjectFault()
	e.log.WithField("name", en.sensor.Name()).Warn("fault injected")
	return nil
}

// ResetFault clears the fault flag of sensor id.
func (e *Engine) ResetFault(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	en, err := e.lookup(id)
	if err != nil {
		return err
	}
	en.sensor.ResetFault()
	e.log.WithField("name", en.sensor.Name()).Info("fault reset")
	return nil
}

func (e *Engine) lookup(id string) (*entry, error) {
	for _, en := range e.sensors {
		if en.id == id {
			return en, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownSensor, id)
}

// SetActive enables or disables the engine.
func (e *Engine) SetActive(active bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.active != active {
		e.log.WithField("active", active).Info("aebs toggled")
	}
	e.active = active
}

// Active reports whether the engine is enabled.
func (e *Engine) Active() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.active
}

// BrakeLevel returns the brake command of the last cycle.
func (e *Engine) BrakeLevel() BrakeLevel {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.brakeLevel
}

// FaultDetected returns the fault indicator of the last active cycle.
func (e *Engine) FaultDetected() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.faultDetected
}

// Last returns the outputs of the most recent cycle without evaluating.
func (e *Engine) Last() Decision {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.decision()
}

func (e *Engine) decision() Decision {
	var faulty []string
	if len(e.faulty) > 0 {
		faulty = append([]string(nil), e.faulty...)
	}
	return Decision{
		Cycle:         e.cycle,
		Active:        e.active,
		BrakeLevel:    e.brakeLevel,
		FaultDetected: e.faultDetected,
		MinDistance:   e.minDistance,
		Faulty:        faulty,
	}
}

// Evaluate runs one cycle and returns its outcome.
func (e *Engine) Evaluate() Decision {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cycle++

	if !e.active {
		e.setBrake(BrakeNone)
		return e.decision()
	}

	faultAny := false
	minDistance := math.Inf(1)
	var faulty []string

	for _, en := range e.sensors {
		en.sensor.Tick()

		reading := en.sensor.Read()
		isFaulty := en.sensor.IsFaulty()

		e.history.Record(en.id, reading)
		en.last = reading
		en.polled = true

		if isFaulty {
			faultAny = true
			faulty = append(faulty, en.sensor.Name())
			continue
		}
		if reading < minDistance {
			minDistance = reading
		}
	}

	if faultAny != e.faultDetected {
		e.log.WithFields(logrus.Fields{"from": e.faultDetected, "to": faultAny, "faulty": faulty}).Warn("fault indicator changed")
	}
	e.faultDetected = faultAny
	e.faulty = faulty
	e.minDistance = minDistance
	e.setBrake(e.thresholds.Level(faultAny, minDistance))

	return e.decision()
}

func (e *Engine) setBrake(level BrakeLevel) {
	if level != e.brakeLevel {
		e.log.WithFields(logrus.Fields{
			"from":         e.brakeLevel,
			"to":           level,
			"min_distance": e.minDistance,
			"cycle":        e.cycle,
		}).Info("brake level changed")
	}
	e.brakeLevel = level
}
