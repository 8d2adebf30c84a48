package aebs

import "math"

// BrakeLevel is the discrete braking command in percent.
type BrakeLevel int

const (
	BrakeNone    BrakeLevel = 0
	BrakePartial BrakeLevel = 50
	BrakeFull    BrakeLevel = 100
)

func (b BrakeLevel) String() string {
	switch b {
	case BrakeFull:
		return "FULL"
	case BrakePartial:
		return "PARTIAL"
	default:
		return "NONE"
	}
}

// Thresholds are the brake zone limits in meters. A minimum distance below
// Full commands full braking, below Partial commands partial braking.
type Thresholds struct {
	Full    float64
	Partial float64
}

// Level applies the brake ladder. A fault always wins over distance.
func (t Thresholds) Level(faulty bool, minDistance float64) BrakeLevel {
	switch {
	case faulty:
		return BrakeFull
	case minDistance < t.Full:
		return BrakeFull
	case minDistance < t.Partial:
		return BrakePartial
	default:
		return BrakeNone
	}
}

// Decision is the observable outcome of an evaluation cycle.
type Decision struct {
	Cycle         uint64
	Active        bool
	BrakeLevel    BrakeLevel
	FaultDetected bool
	// MinDistance is the closest non-faulty reading, +Inf when there is none.
	MinDistance float64
	// Faulty names the sensors that reported a fault this cycle.
	Faulty []string
}

// HasObstacle reports whether any healthy sensor produced a distance.
func (d Decision) HasObstacle() bool {
	return !math.IsInf(d.MinDistance, 1)
}
