package config

const (
	// Brake zones (meters)
	FullBrakeDistance    = 10.0 // Closer than this: full braking
	PartialBrakeDistance = 25.0 // Closer than this: partial braking

	// Sensors
	FaultSentinel   = 9999.0 // Reading reported by a faulty sensor, beyond any real range
	LidarStartRange = 100.0  // Initial obstacle distance for a new lidar
	LidarDecayStep  = 0.5    // Meters the obstacle closes per evaluation tick
	RadarBaseRange  = 60.0   // Default radar range
	RadarClutter    = 2.0    // Default radar clutter amplitude (m)
	CameraRange     = 80.0   // Default camera range estimate

	// History
	MaxHistory = 100 // Readings kept per sensor

	// Console
	MaxRange  = 120.0 // Scope range in meters
	TargetFPS = 30    // Evaluations per second in the console
	MaxSpeed  = 200.0 // Speed slider limit (km/h)
	SpeedStep = 5.0   // km/h per keypress

	// Simulation
	SimTicks = 200 // Default ticks for a headless run

	// App
	AppName    = "AEBS"
	AppVersion = "1.0"
)
