package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Validation errors returned by Config.Validate.
var (
	ErrNegativeHistory = errors.New("max_history must not be negative")
	ErrThresholds      = errors.New("brake thresholds must be positive with full < partial")
	ErrFPS             = errors.New("target_fps must be positive")
	ErrSensorKind      = errors.New("unknown sensor kind")
	ErrSensorName      = errors.New("sensor name must be unique and non-empty")
)

// validKinds mirrors sensor.Kind names. Kept here so config has no upward imports.
var validKinds = map[string]bool{"lidar": true, "radar": true, "camera": true}

// SensorSpec describes a sensor to install at startup.
type SensorSpec struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
}

// Config holds the runtime tunables. The JSON schema uses snake_case keys and
// any field omitted from a file keeps its default.
type Config struct {
	MaxHistory           int          `json:"max_history"`
	FullBrakeDistance    float64      `json:"full_brake_distance"`
	PartialBrakeDistance float64      `json:"partial_brake_distance"`
	TargetFPS            int          `json:"target_fps"`
	Sensors              []SensorSpec `json:"sensors"`
}

// Default returns the built-in configuration: one lidar named LIDAR.
func Default() Config {
	return Config{
		MaxHistory:           MaxHistory,
		FullBrakeDistance:    FullBrakeDistance,
		PartialBrakeDistance: PartialBrakeDistance,
		TargetFPS:            TargetFPS,
		Sensors:              []SensorSpec{{Kind: "lidar", Name: "LIDAR"}},
	}
}

// Load reads a JSON config file on top of Default and validates the result.
// The file must have a .json extension and be under 1MB.
func Load(path string) (Config, error) {
	cfg := Default()

	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return cfg, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	info, err := os.Stat(cleanPath)
	if err != nil {
		return cfg, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if info.Size() > maxFileSize {
		return cfg, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", cleanPath, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", cleanPath, err)
	}
	return cfg, nil
}

// Validate rejects configurations the engine would otherwise have to tolerate.
func (c Config) Validate() error {
	if c.MaxHistory < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeHistory, c.MaxHistory)
	}
	if c.FullBrakeDistance <= 0 || c.PartialBrakeDistance <= 0 || c.FullBrakeDistance >= c.PartialBrakeDistance {
		return fmt.Errorf("%w: full=%.2f partial=%.2f", ErrThresholds, c.FullBrakeDistance, c.PartialBrakeDistance)
	}
	if c.TargetFPS <= 0 {
		return fmt.Errorf("%w: %d", ErrFPS, c.TargetFPS)
	}

	seen := make(map[string]bool, len(c.Sensors))
	for i, s := range c.Sensors {
		if !validKinds[strings.ToLower(s.Kind)] {
			return fmt.Errorf("sensors[%d]: %w %q", i, ErrSensorKind, s.Kind)
		}
		if s.Name == "" || seen[s.Name] {
			return fmt.Errorf("sensors[%d]: %w: %q", i, ErrSensorName, s.Name)
		}
		seen[s.Name] = true
	}
	return nil
}
