package physics

import (
	"github.com/lixenwraith/vi-gravity/core"
	"github.com/lixenwraith/vi-gravity/parameter"
	"github.com/lixenwraith/vi-gravity/vmath"
)

// Force returns the gravitational force exerted by b on a
func Force(a, b *core.Body) vmath.Vec2 {
	d := b.Position.Sub(a.Position)
	f := parameter.G * a.Mass() * b.Mass() / d.LenSq()
	return d.Scale(f / d.Len())
}

// FieldAt sums the gravitational acceleration of every gravitational body at p
func FieldAt(c *core.Collection, p vmath.Vec2) vmath.Vec2 {
	var field vmath.Vec2
	for _, b := range c.Gravitational().All() {
		d := b.Position.Sub(p)
		f := parameter.G * b.Mass() / d.LenSq()
		field = field.Add(d.Scale(f / d.Len()))
	}
	return field
}

// PullOn is the net force on body from every other gravitational body
func PullOn(c *core.Collection, body *core.Body) vmath.Vec2 {
	var pull vmath.Vec2
	for _, b := range c.Gravitational().All() {
		if b != body {
			pull = pull.Add(Force(body, b))
		}
	}
	return pull
}

// CenterOfMass of the gravitational partition, false when it is empty
func CenterOfMass(c *core.Collection) (vmath.Vec2, bool) {
	var total float64
	var sum vmath.Vec2
	for _, b := range c.Gravitational().All() {
		total += b.Mass()
		sum = sum.Add(b.Position.Scale(b.Mass()))
	}
	if total == 0 {
		return vmath.Vec2{}, false
	}
	return sum.Div(total), true
}

// OrbitalVelocity is the circular orbit speed at distance r from mass
func OrbitalVelocity(mass, r float64) float64 {
	return vmath.OrbitalSpeed(parameter.G*mass, r)
}

// EscapeVelocity is the speed needed to escape mass from distance r
func EscapeVelocity(mass, r float64) float64 {
	return vmath.EscapeSpeed(parameter.G*mass, r)
}

// BlackHoleOverlay holds the derived radii drawn around a black hole
type BlackHoleOverlay struct {
	Shadow      float64
	PhotonRing  float64
	StableOrbit float64
}

// OverlayFor returns the overlay radii for a black hole, zero for other kinds
func OverlayFor(b *core.Body) BlackHoleOverlay {
	if b.Kind() != core.BlackHole {
		return BlackHoleOverlay{}
	}
	r := b.RenderRadius()
	return BlackHoleOverlay{
		Shadow:      r * parameter.BlackHoleShadowFactor,
		PhotonRing:  r * parameter.BlackHolePhotonRingFactor,
		StableOrbit: r * parameter.BlackHoleStableOrbitFactor,
	}
}
