package physics

import (
	"github.com/lixenwraith/vi-gravity/core"
	"github.com/lixenwraith/vi-gravity/parameter"
)

// AccumulateGravity resets every body's acceleration and accumulates the
// velocity increment for one substep of length dt
// Grav↔grav pairs act on both members, rocks feel gravity without exerting it,
// photons are deflected by black holes only
func AccumulateGravity(c *core.Collection, dt float64) {
	for _, b := range c.Bodies().All() {
		b.Acceleration.X = 0
		b.Acceleration.Y = 0
	}

	grav := c.Gravitational()
	n := grav.Len()
	for i := 0; i < n; i++ {
		a := grav.At(i)
		for j := i + 1; j < n; j++ {
			GravityPair(a, grav.At(j), dt)
		}
	}

	for _, a := range c.NonGravitational().All() {
		for _, b := range grav.All() {
			GravityOneSided(a, b, dt)
		}
	}

	if c.PhotonLen() > 0 {
		DeflectPhotons(c, dt)
	}
}

// GravityPair applies mutual attraction between a and b
// Coincident bodies produce non-finite increments, left for the caller to detect
func GravityPair(a, b *core.Body, dt float64) {
	d := b.Position.Sub(a.Position)
	distSq := d.LenSq()
	dist := d.Len()
	f := parameter.G * a.Mass() * b.Mass() / distSq
	impulse := d.Div(dist).Scale(f * dt)

	a.Acceleration = a.Acceleration.Add(impulse.Div(a.Mass()))
	b.Acceleration = b.Acceleration.Sub(impulse.Div(b.Mass()))
}

// GravityOneSided pulls a toward b without any reaction on b
func GravityOneSided(a, b *core.Body, dt float64) {
	d := b.Position.Sub(a.Position)
	distSq := d.LenSq()
	dist := d.Len()
	accel := parameter.G * b.Mass() / distSq

	a.Acceleration = a.Acceleration.Add(d.Div(dist).Scale(accel * dt))
}
