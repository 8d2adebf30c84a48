// Package sensor defines the distance-sensor capability consumed by the
// braking engine and the built-in sensor variants.
//
// Every sensor reports a distance in meters. A faulty sensor reports
// FaultSentinel, a value far outside any physical range, so a faulty reading
// can never be mistaken for a safe distance. IsFaulty is the authoritative
// fault channel; callers should not compare readings against the sentinel to
// detect faults.
package sensor

import (
	"sync/atomic"

	"aebs.klederson.com/internal/config"
)

// FaultSentinel is the reading a faulty sensor reports.
const FaultSentinel = config.FaultSentinel

// Sensor is a distance-reporting device.
type Sensor interface {
	// Name is a stable, non-empty display identifier.
	Name() string
	Kind() Kind
	// Read returns the current distance in meters, or FaultSentinel when faulty.
	Read() float64
	IsFaulty() bool
	InjectFault()
	ResetFault()
	// Tick advances the sensor's own world state by one evaluation cycle.
	Tick()
}

// IsSentinel reports whether v is a fault reading rather than a distance.
func IsSentinel(v float64) bool {
	return v >= FaultSentinel
}

// faultState is embedded by every variant. The flag is atomic so a shell may
// inject or clear faults from another goroutine while the engine polls.
type faultState struct {
	faulty atomic.Bool
}

func (f *faultState) IsFaulty() bool { return f.faulty.Load() }

func (f *faultState) InjectFault() { f.faulty.Store(true) }

func (f *faultState) ResetFault() { f.faulty.Store(false) }

// guard returns the sentinel when faulty, otherwise v.
func (f *faultState) guard(v float64) float64 {
	if f.faulty.Load() {
		return FaultSentinel
	}
	return v
}
