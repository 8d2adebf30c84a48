package scope

import (
	"math"
	"time"
)

// Pulse drives the brake warning blink.
type Pulse struct {
	Phase     float64 // Current phase in [0, 1)
	StartTime time.Time
	Rate      float64 // Blinks per second
}

// NewPulse creates a pulse blinking rate times per second.
func NewPulse(rate float64) *Pulse {
	return &Pulse{
		StartTime: time.Now(),
		Rate:      rate,
	}
}

// Update advances the phase based on elapsed time.
func (p *Pulse) Update() {
	p.Advance(time.Since(p.StartTime))
}

// Advance sets the phase for a given elapsed duration.
func (p *Pulse) Advance(elapsed time.Duration) {
	p.Phase = math.Mod(elapsed.Seconds()*p.Rate, 1)
}

// On reports whether the warning is lit in the current half cycle.
func (p *Pulse) On() bool {
	return p.Phase < 0.5
}

// Intensity returns a triangle wave in [0, 1] peaking mid cycle.
func (p *Pulse) Intensity() float64 {
	return 1 - math.Abs(2*p.Phase-1)
}
