package scenario

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/lixenwraith/vi-gravity/core"
	"github.com/lixenwraith/vi-gravity/engine"
	"github.com/lixenwraith/vi-gravity/parameter"
	"github.com/lixenwraith/vi-gravity/vmath"
)

// BuildOptions control how a File becomes a Setup
type BuildOptions struct {
	// Randomize rotates every unpinned body around the origin by a random angle
	Randomize bool
	// Seed drives Randomize; equal seeds give equal systems
	Seed uint64
	// Source is recorded in the Setup, usually a path or "preset"
	Source string
}

// Build creates fresh bodies and photons for f
// Orbiting bodies take their central body's velocity plus a circular
// insertion velocity, computed after any rotation
// Photons get no tracks here; Simulation.InsertPhoton attaches them
func Build(f *File, opts BuildOptions) (engine.Setup, error) {
	setup := engine.Setup{
		Name:      f.Name,
		Source:    opts.Source,
		Focus:     f.Focus,
		TimeScale: f.TimeScale,
		Steps:     f.Steps,
		Bodies:    make([]*core.Body, 0, len(f.Bodies)),
	}

	var rng *rand.Rand
	if opts.Randomize {
		rng = rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	}

	for i, spec := range f.Bodies {
		pos, vel := spec.Position, spec.Velocity
		if rng != nil && !spec.Pinned {
			angle := rng.Float64() * 2 * math.Pi
			pos = pos.Rotate(angle)
			vel = vel.Rotate(angle)
		}
		if spec.Orbit != "" {
			j := f.body(spec.Orbit)
			if j < 0 || j >= i {
				return engine.Setup{}, fmt.Errorf("scenario %q body %d: orbit %q: %w", f.Name, i, spec.Orbit, ErrOrbitTarget)
			}
			central := setup.Bodies[j]
			vel = central.Velocity.
				Add(vmath.OrbitalInsert(pos.Sub(central.Position), parameter.G*central.Mass(), spec.Clockwise)).
				Add(vel)
		}
		b, err := core.NewBody(spec.Kind, spec.Mass, spec.Radius, pos,
			core.WithName(spec.Name), core.WithVelocity(vel))
		if err != nil {
			return engine.Setup{}, fmt.Errorf("scenario %q body %d: %w", f.Name, i, err)
		}
		setup.Bodies = append(setup.Bodies, b)
	}

	for i, spec := range f.Photons {
		p, err := core.NewPhoton(spec.Position, spec.Angle, spec.Frequency, 0)
		if err != nil {
			return engine.Setup{}, fmt.Errorf("scenario %q photon %d: %w", f.Name, i, err)
		}
		setup.Photons = append(setup.Photons, p)
	}

	for i, beam := range f.Beams {
		at := beam.From
		for range beam.Count {
			p, err := core.NewPhoton(at, beam.Angle, beam.Frequency, 0)
			if err != nil {
				return engine.Setup{}, fmt.Errorf("scenario %q beam %d: %w", f.Name, i, err)
			}
			setup.Photons = append(setup.Photons, p)
			at = at.Add(beam.Spacing)
		}
	}
	return setup, nil
}

// FromSimulation captures the current state of sim as a File
func FromSimulation(sim *engine.Simulation, name string) *File {
	cfg := sim.Config()
	f := &File{
		Name:      name,
		TimeScale: cfg.TimeScale,
		Steps:     cfg.Steps,
	}
	if b := sim.FocusBody(); b != nil {
		f.Focus = b.Name
	}

	for _, b := range sim.Bodies().Bodies().All() {
		spec := BodySpec{
			Name:     b.Name,
			Kind:     b.Kind(),
			Mass:     b.Mass(),
			Position: b.Position,
			Velocity: b.Velocity,
		}
		if b.Kind() != core.BlackHole {
			spec.Radius = b.Radius()
		}
		f.Bodies = append(f.Bodies, spec)
	}
	for _, p := range sim.Bodies().Photons().All() {
		f.Photons = append(f.Photons, PhotonSpec{
			Position:  p.Position,
			Angle:     p.Angle,
			Frequency: p.Frequency(),
		})
	}
	return f
}
