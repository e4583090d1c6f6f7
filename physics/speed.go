package physics

import (
	"github.com/lixenwraith/vi-gravity/vmath"
)

// CapSpeed limits the velocity vector magnitude to maxSpeed
// Returns the clamped vector and true if clamping occurred
func CapSpeed(v vmath.Vec2, maxSpeed float64) (vmath.Vec2, bool) {
	if v.LenSq() >= maxSpeed*maxSpeed {
		return v.SetLen(maxSpeed), true
	}
	return v, false
}
