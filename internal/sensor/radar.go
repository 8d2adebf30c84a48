package sensor

import (
	"math"
	"sync"

	"aebs.klederson.com/internal/config"
)

const (
	defaultRadarBase    = config.RadarBaseRange
	defaultRadarClutter = config.RadarClutter

	radarTimeStep = 0.2 // Simulated seconds per tick
	radarRate     = 0.5 // Clutter angular rate (rad/s)
)

// Radar reports a base range with sinusoidal clutter:
// base + amplitude*sin(t*0.5 + phase), floored at zero.
type Radar struct {
	faultState

	name      string
	mu        sync.Mutex
	base      float64
	amplitude float64
	phase     float64
	t         float64
}

// NewRadar creates a radar at base meters with the given clutter amplitude.
// An amplitude of zero gives a steady reading.
func NewRadar(name string, base, amplitude float64) *Radar {
	return &Radar{
		name:      name,
		base:      base,
		amplitude: amplitude,
	}
}

func (r *Radar) Name() string { return r.name }

func (r *Radar) Kind() Kind { return KindRadar }

func (r *Radar) Read() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	d := r.base + r.amplitude*math.Sin(r.t*radarRate+r.phase)
	return r.guard(math.Max(d, 0))
}

func (r *Radar) Tick() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.t += radarTimeStep
}

// SetBase moves the radar target to d meters.
func (r *Radar) SetBase(d float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.base = math.Max(d, 0)
}

// SetPhase offsets the clutter so several radars do not move in lockstep.
func (r *Radar) SetPhase(phase float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.phase = phase
}
