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

func insertAll(t *testing.T, c *core.Collection, bodies ...*core.Body) {
	t.Helper()
	for _, b := range bodies {
		_, err := c.Insert(b)
		require.NoError(t, err)
	}
}

func TestGravityPair_EqualAndOpposite(t *testing.T) {
	a := core.MustBody(core.Planet, 6e24, 1, vmath.V2(0, 0))
	b := core.MustBody(core.Moon, 7e22, 1, vmath.V2(3e8, 4e8))

	GravityPair(a, b, 10)

	pa := a.Acceleration.Scale(a.Mass())
	pb := b.Acceleration.Scale(b.Mass())
	assert.InDelta(t, 0, pa.Add(pb).Len(), pa.Len()*1e-12)

	// a is pulled toward b
	assert.Greater(t, a.Acceleration.Dot(b.Position.Sub(a.Position)), 0.0)

	// |Δv_b| = G·ma/r²·dt
	r2 := a.Position.DistSq(b.Position)
	assert.InEpsilon(t, parameter.G*a.Mass()/r2*10, b.Acceleration.Len(), 1e-12)
}

func TestAccumulateGravity_OneSided(t *testing.T) {
	c := core.NewCollection()
	star := core.MustBody(core.Star, 2e30, 7e8, vmath.V2(0, 0))
	rock := core.MustBody(core.Rock, 1e20, 1, vmath.V2(1e11, 0))
	rock2 := core.MustBody(core.Rock, 1e20, 1, vmath.V2(1e11, 1e3))
	insertAll(t, c, star, rock, rock2)

	AccumulateGravity(c, 1)

	assert.Equal(t, vmath.Vec2{}, star.Acceleration, "rocks exert no gravity")
	assert.Less(t, rock.Acceleration.X, 0.0)
	assert.InEpsilon(t, parameter.G*star.Mass()/1e22, rock.Acceleration.Len(), 1e-12)
	// Rocks do not attract each other
	assert.InDelta(t, rock.Acceleration.Len(), rock2.Acceleration.Len(), rock.Acceleration.Len()*1e-6)
}

func TestAccumulateGravity_ResetsEachSubstep(t *testing.T) {
	c := core.NewCollection()
	a := core.MustBody(core.Planet, 1e24, 1, vmath.V2(0, 0))
	b := core.MustBody(core.Planet, 1e24, 1, vmath.V2(1e9, 0))
	insertAll(t, c, a, b)

	AccumulateGravity(c, 1)
	first := a.Acceleration
	AccumulateGravity(c, 1)
	assert.Equal(t, first, a.Acceleration)
}

func TestAccumulateGravity_CoincidentIsNonFinite(t *testing.T) {
	c := core.NewCollection()
	a := core.MustBody(core.Planet, 1, 0, vmath.V2(5, 5))
	b := core.MustBody(core.Planet, 1, 0, vmath.V2(5, 5))
	insertAll(t, c, a, b)

	AccumulateGravity(c, 1)
	assert.False(t, a.Finite())
	assert.False(t, b.Finite())
}

// One simulated year of a Sun/Earth pair stays on a bounded near-circular orbit
func TestSunEarthYearBounded(t *testing.T) {
	tests := []struct {
		name string
		pos  vmath.Vec2
		vel  vmath.Vec2
	}{
		{"counter-clockwise from +x", vmath.V2(parameter.AU, 0), vmath.V2(0, 29780)},
		{"clockwise from +y", vmath.V2(0, 1.4762e11), vmath.V2(30000, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := core.NewCollection()
			sun := core.MustBody(core.Star, 1.989e30, 6.9634e8, vmath.V2(0, 0))
			earth := core.MustBody(core.Planet, 5.972e24, 6.371e6, tt.pos, core.WithVelocity(tt.vel))
			insertAll(t, c, sun, earth)

			const dt = 600.0
			steps := int(365.25 * 86400 / dt)
			r0 := tt.pos.Len()
			minR, maxR := math.Inf(1), 0.0
			for range steps {
				AccumulateGravity(c, dt)
				IntegrateAll(c, dt, parameter.MaxVelocity)
				pairs := DetectCollisions(c)
				require.Empty(t, pairs)

				r := earth.Position.Dist(sun.Position)
				minR = min(minR, r)
				maxR = max(maxR, r)
			}

			assert.Greater(t, minR, 0.95*r0)
			assert.Less(t, maxR, 1.05*r0)
			// Back near the start after about one revolution
			assert.InDelta(t, 0, earth.Position.Sub(sun.Position).AngleRel(tt.pos), 0.2)
		})
	}
}

func TestFieldQueries(t *testing.T) {
	c := core.NewCollection()
	a := core.MustBody(core.Planet, 1e24, 1, vmath.V2(0, 0))
	b := core.MustBody(core.Planet, 3e24, 1, vmath.V2(4e6, 0))
	rock := core.MustBody(core.Rock, 1e30, 1, vmath.V2(-1e9, 0))
	insertAll(t, c, a, b, rock)

	com, ok := CenterOfMass(c)
	require.True(t, ok)
	assert.InDelta(t, 3e6, com.X, 1e-3, "rocks are excluded")
	assert.InDelta(t, 0, com.Y, 1e-9)

	pull := PullOn(c, a)
	assert.True(t, pull.ApproxEqual(Force(a, b), 1e-6))
	assert.Greater(t, pull.X, 0.0)

	// Field per unit mass at a point equals pull on a unit test mass there
	p := vmath.V2(1e6, 2e6)
	field := FieldAt(c, p)
	probe := core.MustBody(core.Moon, 1, 1, p)
	want := Force(probe, a).Add(Force(probe, b))
	assert.True(t, field.ApproxEqual(want, want.Len()*1e-12))

	_, ok = CenterOfMass(core.NewCollection())
	assert.False(t, ok)
}

func TestOrbitalAndEscapeVelocity(t *testing.T) {
	v := OrbitalVelocity(parameter.SolarMass, parameter.AU)
	assert.InDelta(t, 29785, v, 100)
	assert.InEpsilon(t, v*math.Sqrt2, EscapeVelocity(parameter.SolarMass, parameter.AU), 1e-12)
}

func TestOverlayFor(t *testing.T) {
	bh := core.MustBody(core.BlackHole, 1e31, 0, vmath.Vec2{})
	o := OverlayFor(bh)
	assert.InEpsilon(t, bh.RenderRadius()*2.6, o.Shadow, 1e-12)
	assert.InEpsilon(t, bh.RenderRadius()*1.5, o.PhotonRing, 1e-12)
	assert.InEpsilon(t, bh.RenderRadius()*3, o.StableOrbit, 1e-12)

	assert.Equal(t, BlackHoleOverlay{}, OverlayFor(core.MustBody(core.Star, 1, 1, vmath.Vec2{})))
}
