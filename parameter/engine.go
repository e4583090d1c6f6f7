package parameter

import "time"

// Frame pacing & substeps
const (
	// DefaultFPS is the target render rate of the frontends
	DefaultFPS = 60

	// DefaultTimeScale is simulated seconds per real second (1 day/sec)
	DefaultTimeScale = 60 * 60 * 24.0

	// DefaultSteps is the desired substep count per frame
	DefaultSteps = 50

	// LagFrameThreshold: a wall-clock frame longer than this is treated as lag
	LagFrameThreshold = 1.0 / 10

	// LagFrameInterval replaces a lagging frame interval
	LagFrameInterval = 1.0 / 20

	// FallbackFrameInterval replaces a non-positive frame interval
	FallbackFrameInterval = 1.0 / 144

	// TimeScaleStep and TimeScaleStepFast are per-keypress multipliers
	TimeScaleStep     = 1.015
	TimeScaleStepFast = 1.035
)

// Track history
const (
	// BodyTrackLength is the per-body track ceiling
	BodyTrackLength = 3000

	// PhotonTrackLength is the per-photon track ceiling
	PhotonTrackLength = 60

	// TrackInterval samples tracks every N frames
	TrackInterval = 5
)

// Event queue
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 1024
)

// Server
const (
	DefaultListenAddr   = ":8080"
	ServerReadTimeout   = 5 * time.Second
	ServerWriteTimeout  = 10 * time.Second
	ServerShutdownGrace = 5 * time.Second
)
