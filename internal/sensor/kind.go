package sensor

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKind is returned by ParseKind and New for unsupported kinds.
var ErrUnknownKind = errors.New("unknown sensor kind")

// ErrEmptyName is returned by New when no name is given.
var ErrEmptyName = errors.New("sensor name must not be empty")

// Kind identifies a sensor variant.
type Kind int

const (
	KindLidar Kind = iota
	KindRadar
	KindCamera
)

// Kinds lists every supported kind in display order.
var Kinds = []Kind{KindLidar, KindRadar, KindCamera}

func (k Kind) String() string {
	switch k {
	case KindRadar:
		return "Radar"
	case KindCamera:
		return "Camera"
	default:
		return "Lidar"
	}
}

// Tag returns the short list label for this kind.
func (k Kind) Tag() string {
	switch k {
	case KindRadar:
		return "[RDR]"
	case KindCamera:
		return "[CAM]"
	default:
		return "[LDR]"
	}
}

// Symbol returns the scope character for this kind.
func (k Kind) Symbol() string {
	switch k {
	case KindRadar:
		return "R"
	case KindCamera:
		return "C"
	default:
		return "L"
	}
}

// ParseKind accepts a kind name case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lidar":
		return KindLidar, nil
	case "radar":
		return KindRadar, nil
	case "camera":
		return KindCamera, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// New builds a sensor of the given kind with default parameters.
func New(kind Kind, name string) (Sensor, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	switch kind {
	case KindLidar:
		return NewLidar(name), nil
	case KindRadar:
		return NewRadar(name, defaultRadarBase, defaultRadarClutter), nil
	case KindCamera:
		return NewCamera(name, defaultCameraRange), nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownKind, int(kind))
}
