package physics

import (
	"math"

	"github.com/lixenwraith/vi-gravity/core"
	"github.com/lixenwraith/vi-gravity/parameter"
	"github.com/lixenwraith/vi-gravity/vmath"
)

// LaunchVelocity converts a drag from→to into a world velocity
// The drag covers one real second at timeScale; relativeTo (optional) adds its own velocity
func LaunchVelocity(from, to vmath.Vec2, timeScale float64, relativeTo *core.Body, maxSpeed float64) vmath.Vec2 {
	if timeScale <= 0 {
		timeScale = 1
	}
	v := to.Sub(from).Div(timeScale)
	if relativeTo != nil {
		v = v.Add(relativeTo.Velocity)
	}
	if v.LenSq() > maxSpeed*maxSpeed {
		v = v.SetLen(maxSpeed)
	}
	return v
}

// LaunchRadius is the physical radius of a launched moon
func LaunchRadius() float64 {
	return math.Sqrt(parameter.LaunchMass/math.Pi) / parameter.LaunchDensityDivisor
}

// PredictTrajectory previews a unit-mass launch against a single reference
// body using plain Newtonian steps of PredictionStep real seconds
// Stops early when the path enters hitRadius around ref
func PredictTrajectory(start, vel vmath.Vec2, ref *core.Body, timeScale, hitRadius float64) []vmath.Vec2 {
	steps := int(math.Round(parameter.PredictionHorizon / parameter.PredictionStep))
	path := make([]vmath.Vec2, 0, steps+1)
	path = append(path, start)
	if ref == nil {
		return path
	}

	pdt := parameter.PredictionStep * timeScale
	hitSq := hitRadius * hitRadius
	pos, v := start, vel
	for range steps {
		d := ref.Position.Sub(pos)
		accel := parameter.G * ref.Mass() / d.LenSq()
		v = v.Add(d.Scale(accel / d.Len() * pdt))
		pos = pos.Add(v.Scale(pdt))
		path = append(path, pos)
		if pos.DistSq(ref.Position) < hitSq || !pos.IsFinite() {
			break
		}
	}
	return path
}
