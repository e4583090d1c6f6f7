package physics

import (
	"github.com/lixenwraith/vi-gravity/core"
	"github.com/lixenwraith/vi-gravity/parameter"
	"github.com/lixenwraith/vi-gravity/vmath"
)

// DeflectPhotons bends every photon toward each black hole in turn
func DeflectPhotons(c *core.Collection, dt float64) {
	grav := c.Gravitational()
	for _, p := range c.Photons().All() {
		for _, b := range grav.All() {
			if b.Kind() != core.BlackHole {
				continue
			}
			DeflectPhoton(p, b, dt)
		}
	}
}

// DeflectPhoton turns the photon's heading by the pull of hole over dt
// Speed is untouched; distance is floored at the hole's render radius
func DeflectPhoton(p *core.Photon, hole *core.Body, dt float64) {
	p.Angle = PhotonPull(p.Position, hole).Scale(dt).
		Add(vmath.FromAngle(p.Angle, parameter.C)).
		Angle()
}

// PhotonPull is the per-unit-mass pull of hole on a photon at pos
func PhotonPull(pos vmath.Vec2, hole *core.Body) vmath.Vec2 {
	d := hole.Position.Sub(pos)
	dist := d.Len()
	if floor := hole.RenderRadius(); dist < floor {
		dist = floor
	}
	return d.Normalize().Scale(parameter.G * hole.Mass() / (dist * dist))
}
