package sensor

import (
	"math"
	"sync"

	"aebs.klederson.com/internal/config"
)

// Lidar is a range finder tracking a single obstacle that closes in by
// DecayStep meters every tick, never passing zero.
type Lidar struct {
	faultState

	name      string
	mu        sync.Mutex
	distance  float64
	decayStep float64
}

// NewLidar creates a lidar with the obstacle at LidarStartRange.
func NewLidar(name string) *Lidar {
	return &Lidar{
		name:      name,
		distance:  config.LidarStartRange,
		decayStep: config.LidarDecayStep,
	}
}

func (l *Lidar) Name() string { return l.name }

func (l *Lidar) Kind() Kind { return KindLidar }

// Read returns the obstacle distance, or FaultSentinel while faulty.
func (l *Lidar) Read() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.guard(l.distance)
}

// Tick moves the obstacle one step closer.
func (l *Lidar) Tick() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.distance = math.Max(l.distance-l.decayStep, 0)
}

// SetDistance places the obstacle at d meters (clamped at zero).
func (l *Lidar) SetDistance(d float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.distance = math.Max(d, 0)
}

// SetDecayStep changes how far the obstacle closes per tick. Zero freezes it.
func (l *Lidar) SetDecayStep(step float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.decayStep = math.Max(step, 0)
}

// Distance returns the true obstacle distance regardless of fault state.
func (l *Lidar) Distance() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.distance
}
