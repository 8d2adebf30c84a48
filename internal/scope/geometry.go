package scope

import (
	"crypto/sha256"
	"encoding/binary"
	"math"

	"aebs.klederson.com/internal/aebs"
)

// Zone classifies a distance against the brake thresholds.
type Zone int

const (
	ZoneClear Zone = iota
	ZonePartial
	ZoneFull
)

// ZoneFor returns the brake zone a distance falls in.
func ZoneFor(meters float64, th aebs.Thresholds) Zone {
	switch {
	case meters < th.Full:
		return ZoneFull
	case meters < th.Partial:
		return ZonePartial
	default:
		return ZoneClear
	}
}

// MetersToRow maps a distance to a scope row. Row 0 is the far edge and
// rows-1 is the bumper. Distances past maxRange pin to row 0.
func MetersToRow(meters, maxRange float64, rows int) int {
	if rows <= 1 {
		return 0
	}
	if meters >= maxRange {
		return 0
	}
	if meters < 0 {
		meters = 0
	}
	frac := meters / maxRange
	return rows - 1 - int(math.Round(frac*float64(rows-1)))
}

// RowToMeters is the inverse of MetersToRow: the distance at a row's centre.
func RowToMeters(row int, maxRange float64, rows int) float64 {
	if rows <= 1 {
		return 0
	}
	return float64(rows-1-row) / float64(rows-1) * maxRange
}

// LaneOffset derives a stable lateral position in [-1, +1] from a sensor id,
// so each sensor keeps its column across frames.
func LaneOffset(id string) float64 {
	h := sha256.Sum256([]byte(id))
	val := binary.BigEndian.Uint32(h[:4])
	return float64(val)/float64(math.MaxUint32)*2 - 1
}
