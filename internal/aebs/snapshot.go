package aebs

import (
	"aebs.klederson.com/internal/history"
	"aebs.klederson.com/internal/sensor"
)

// SensorInfo is a point-in-time copy of one sensor's state for display.
type SensorInfo struct {
	ID      string
	Name    string
	Kind    sensor.Kind
	Reading float64 // Last polled reading; zero until the first active cycle
	Polled  bool
	Faulty  bool
	History int // Readings currently held
}

// Sensors returns a snapshot of every sensor in insertion order.
func (e *Engine) Sensors() []SensorInfo {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]SensorInfo, 0, len(e.sensors))
	for _, en := range e.sensors {
		out = append(out, SensorInfo{
			ID:      en.id,
			Name:    en.sensor.Name(),
			Kind:    en.sensor.Kind(),
			Reading: en.last,
			Polled:  en.polled,
			Faulty:  en.sensor.IsFaulty(),
			History: e.history.Len(en.id),
		})
	}
	return out
}

// Count returns the number of sensors.
func (e *Engine) Count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.sensors)
}

// History returns sensor id's readings, oldest first.
func (e *Engine) History(id string) ([]float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.lookup(id); err != nil {
		return nil, err
	}
	return e.history.Values(id), nil
}

// HistoryStats summarizes sensor id's history, ignoring fault readings.
func (e *Engine) HistoryStats(id string) (history.Summary, error) {
	vals, err := e.History(id)
	if err != nil {
		return history.Summary{}, err
	}
	valid := vals[:0]
	for _, v := range vals {
		if !sensor.IsSentinel(v) {
			valid = append(valid, v)
		}
	}
	return history.Summarize(valid), nil
}

// MaxHistory returns the per-sensor history capacity.
func (e *Engine) MaxHistory() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.history.Capacity()
}
