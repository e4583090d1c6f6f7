package engine

import (
	"math"

	"github.com/lixenwraith/vi-gravity/parameter"
)

// ActualSteps returns the substep count for one frame
// Keeps desiredSteps unless that would make a substep shorter than
// MinStepSize, in which case it drops to as many 1 µs substeps as fit
// Never returns less than 1; degenerate inputs yield 1
func ActualSteps(frameInterval, timeScale float64, desiredSteps int) int {
	if desiredSteps < 1 {
		desiredSteps = 1
	}
	span := frameInterval * timeScale
	if math.IsNaN(span) || math.IsInf(span, 0) || span <= 0 {
		return 1
	}

	if span/float64(desiredSteps) > parameter.MinStepSize {
		return desiredSteps
	}
	if s := int(math.Floor(span / parameter.MinStepSize)); s > 1 {
		return s
	}
	return 1
}

// StepSize is the simulated length of one substep
func StepSize(frameInterval, timeScale float64, desiredSteps int) float64 {
	return frameInterval * timeScale / float64(ActualSteps(frameInterval, timeScale, desiredSteps))
}

// FrameInterval turns a measured wall-clock frame time into the interval to simulate
// A lagging frame is replaced by LagFrameInterval, a non-positive one by FallbackFrameInterval
func FrameInterval(wall float64) float64 {
	switch {
	case math.IsNaN(wall) || wall <= 0:
		return parameter.FallbackFrameInterval
	case wall > parameter.LagFrameThreshold:
		return parameter.LagFrameInterval
	default:
		return wall
	}
}
