package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-gravity/core"
	"github.com/lixenwraith/vi-gravity/parameter"
	"github.com/lixenwraith/vi-gravity/vmath"
)

func TestDeflectPhotons_BendsTowardBlackHole(t *testing.T) {
	c := core.NewCollection()
	hole := core.MustBody(core.BlackHole, 4e6*parameter.SolarMass, 0, vmath.Vec2{})
	insertAll(t, c, hole)

	impact := 10 * hole.RenderRadius()
	p, err := core.NewPhoton(vmath.V2(-impact, impact), 0, parameter.GreenLightFrequency, 0)
	require.NoError(t, err)
	_, err = c.InsertPhoton(p)
	require.NoError(t, err)

	for range 100 {
		AccumulateGravity(c, 1)
		start := p.Position
		IntegrateAll(c, 1, parameter.MaxVelocity)
		assert.InEpsilon(t, parameter.C, p.Position.Dist(start), 1e-9)
	}

	assert.Less(t, p.Angle, 0.0, "heading turned toward the hole below")
	assert.Equal(t, vmath.Vec2{}, hole.Velocity, "photons exert no gravity")
}

func TestDeflectPhotons_OnlyBlackHoles(t *testing.T) {
	c := core.NewCollection()
	insertAll(t, c, core.MustBody(core.Star, 1e35, 1, vmath.V2(0, 1e6)))
	p, _ := core.NewPhoton(vmath.V2(-1e6, 0), 0, 1, 0)
	_, err := c.InsertPhoton(p)
	require.NoError(t, err)

	AccumulateGravity(c, 1)
	assert.Equal(t, 0.0, p.Angle)
}

func TestPhotonPull_FlooredAtRenderRadius(t *testing.T) {
	hole := core.MustBody(core.BlackHole, 1e32, 0, vmath.Vec2{})
	r := hole.RenderRadius()
	want := parameter.G * hole.Mass() / (r * r)

	inside := PhotonPull(vmath.V2(r/10, 0), hole)
	assert.InEpsilon(t, want, inside.Len(), 1e-12)
	assert.Less(t, inside.X, 0.0)

	outside := PhotonPull(vmath.V2(2*r, 0), hole)
	assert.InEpsilon(t, want/4, outside.Len(), 1e-12)

	center := PhotonPull(vmath.Vec2{}, hole)
	assert.True(t, center.IsFinite())
}

func TestLaunchVelocity(t *testing.T) {
	v := LaunchVelocity(vmath.V2(0, 0), vmath.V2(86400, 0), 86400, nil, parameter.MaxVelocity)
	assert.True(t, v.ApproxEqual(vmath.V2(1, 0), 1e-12))

	ref := core.MustBody(core.Planet, 1, 1, vmath.Vec2{}, core.WithVelocity(vmath.V2(0, 5)))
	v = LaunchVelocity(vmath.V2(0, 0), vmath.V2(86400, 0), 86400, ref, parameter.MaxVelocity)
	assert.True(t, v.ApproxEqual(vmath.V2(1, 5), 1e-12))

	v = LaunchVelocity(vmath.V2(0, 0), vmath.V2(1e20, 0), 1, nil, parameter.MaxVelocity)
	assert.InDelta(t, parameter.MaxVelocity, v.Len(), speedTolerance)

	assert.InDelta(t, 2.607e-6, LaunchRadius(), 1e-9)
}

func TestPredictTrajectory(t *testing.T) {
	earth := core.MustBody(core.Planet, 5.972e24, 6.371e6, vmath.Vec2{})
	full := int(math.Round(parameter.PredictionHorizon / parameter.PredictionStep))

	path := PredictTrajectory(vmath.V2(1e7, 0), vmath.Vec2{}, earth, 100, earth.Radius())
	require.NotEmpty(t, path)
	assert.Less(t, len(path), full+1, "falls in before the horizon")
	assert.Less(t, path[len(path)-1].Len(), earth.Radius())

	// Escape-speed launch never hits
	esc := EscapeVelocity(earth.Mass(), 1e7) * 1.5
	path = PredictTrajectory(vmath.V2(1e7, 0), vmath.V2(esc, 0), earth, 100, earth.Radius())
	assert.Len(t, path, full+1)

	assert.Len(t, PredictTrajectory(vmath.Vec2{}, vmath.Vec2{}, nil, 1, 1), 1)
}
