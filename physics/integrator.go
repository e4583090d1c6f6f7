package physics

import (
	"math"

	"github.com/lixenwraith/vi-gravity/core"
	"github.com/lixenwraith/vi-gravity/parameter"
	"github.com/lixenwraith/vi-gravity/vmath"
)

// ComposeVelocity adds increment dv to v with relativistic velocity addition
// Both vectors are rotated into v's frame so v lies on +X, composed, rotated
// back and capped at maxSpeed. An increment that would cross -c along v
// saturates to maxSpeed along v+dv. Non-finite input passes through so the
// frame can report it
func ComposeVelocity(v, dv vmath.Vec2, maxSpeed float64) vmath.Vec2 {
	if !v.IsFinite() || !dv.IsFinite() {
		return v.Add(dv)
	}
	v, _ = CapSpeed(v, maxSpeed)
	angle := v.Angle()
	u := v.Rotate(-angle)
	w := dv.Rotate(-angle)

	denom := 1 + u.X*w.X/parameter.C2
	lorentz := 1 / math.Sqrt(1-u.X*u.X/parameter.C2)

	composed := vmath.Vec2{
		X: (u.X + w.X) / denom,
		Y: w.Y / (denom * lorentz),
	}.Rotate(angle)
	if denom <= 0 || !composed.IsFinite() {
		return saturate(v, dv, maxSpeed)
	}

	composed, _ = CapSpeed(composed, maxSpeed)
	return composed
}

// saturate points maxSpeed along v+dv, or keeps v when that sum has no direction
func saturate(v, dv vmath.Vec2, maxSpeed float64) vmath.Vec2 {
	sum := v.Add(dv)
	if !sum.IsFinite() {
		sum = dv.Normalize()
	}
	if sum.LenSq() == 0 {
		return v
	}
	return sum.SetLen(maxSpeed)
}

// IntegrateBody applies the accumulated increment and advances position (explicit Euler)
func IntegrateBody(b *core.Body, dt, maxSpeed float64) {
	b.Velocity = ComposeVelocity(b.Velocity, b.Acceleration, maxSpeed)
	b.Position = b.Position.Add(b.Velocity.Scale(dt))
}

// IntegratePhoton moves a photon at exactly C along its heading
func IntegratePhoton(p *core.Photon, dt float64) {
	p.Position = p.Position.Add(vmath.FromAngle(p.Angle, parameter.C*dt))
}

// IntegrateAll advances every body and photon by dt
func IntegrateAll(c *core.Collection, dt, maxSpeed float64) {
	for _, b := range c.Bodies().All() {
		IntegrateBody(b, dt, maxSpeed)
	}
	for _, p := range c.Photons().All() {
		IntegratePhoton(p, dt)
	}
}
