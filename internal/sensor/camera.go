package sensor

import (
	"math"
	"sync"

	"aebs.klederson.com/internal/config"
)

const defaultCameraRange = config.CameraRange

// Camera reports a static range estimate. It has no temporal behaviour.
type Camera struct {
	faultState

	name     string
	mu       sync.Mutex
	estimate float64
}

// NewCamera creates a camera estimating an obstacle at estimate meters.
func NewCamera(name string, estimate float64) *Camera {
	return &Camera{name: name, estimate: math.Max(estimate, 0)}
}

func (c *Camera) Name() string { return c.name }

func (c *Camera) Kind() Kind { return KindCamera }

func (c *Camera) Read() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.guard(c.estimate)
}

func (c *Camera) Tick() {}

// SetRange changes the range estimate.
func (c *Camera) SetRange(d float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.estimate = math.Max(d, 0)
}
