package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-gravity/core"
	"github.com/lixenwraith/vi-gravity/vmath"
)

func TestMerge_ConservesAreaAndAddsImpulse(t *testing.T) {
	c := core.NewCollection()
	a := core.MustBody(core.Planet, 10, math.Sqrt(10/math.Pi), vmath.V2(0, 0),
		core.WithName("a"), core.WithVelocity(vmath.V2(1, 0)))
	b := core.MustBody(core.Planet, 5, math.Sqrt(5/math.Pi), vmath.V2(0.5, 0),
		core.WithName("b"), core.WithVelocity(vmath.V2(0, 1)))
	insertAll(t, c, a, b)
	aID, bID := a.ID(), b.ID()

	pairs := DetectCollisions(c)
	require.Len(t, pairs, 1)

	results, err := ResolveCollisions(c, pairs)
	require.NoError(t, err)
	require.Len(t, results, 1)

	assert.Equal(t, aID, results[0].Gainer)
	assert.Equal(t, bID, results[0].Destroyed)
	assert.Equal(t, "b", results[0].DestroyedName)
	assert.InDelta(t, 15, results[0].Mass, 1e-12)

	assert.InDelta(t, 15, a.Mass(), 1e-12)
	assert.InDelta(t, math.Sqrt(15/math.Pi), a.Radius(), 1e-12)
	assert.True(t, a.Velocity.ApproxEqual(vmath.V2(1, 0.5), 1e-12))
	assert.True(t, b.Removed())
	assert.Equal(t, 1, c.Len())
	require.NoError(t, c.Validate())
}

func TestResolveCollisions_SkipsConsumedMembers(t *testing.T) {
	c := core.NewCollection()
	a := core.MustBody(core.Planet, 10, 2, vmath.V2(0, 0))
	b := core.MustBody(core.Planet, 5, 2, vmath.V2(1, 0))
	d := core.MustBody(core.Planet, 1, 2, vmath.V2(0.5, 0.5))
	insertAll(t, c, a, b, d)

	pairs := DetectCollisions(c)
	require.Len(t, pairs, 3)

	results, err := ResolveCollisions(c, pairs)
	require.NoError(t, err)
	assert.Len(t, results, 2, "b-d pair is skipped after b is consumed")
	assert.Equal(t, 1, c.Len())
	assert.InDelta(t, 16, a.Mass(), 1e-12)
}

func TestDetectCollisions_RockRules(t *testing.T) {
	c := core.NewCollection()
	r1 := core.MustBody(core.Rock, 1, 5, vmath.V2(0, 0))
	r2 := core.MustBody(core.Rock, 1, 5, vmath.V2(1, 0))
	insertAll(t, c, r1, r2)
	assert.Empty(t, DetectCollisions(c), "rocks never collide with rocks")

	moon := core.MustBody(core.Moon, 100, 1, vmath.V2(2, 0))
	insertAll(t, c, moon)
	pairs := DetectCollisions(c)
	require.Len(t, pairs, 2)
	assert.Equal(t, moon, pairs[0].B)

	results, err := ResolveCollisions(c, pairs)
	require.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 0, c.NonGravitational().Len())
}

func TestWinner_TieBreak(t *testing.T) {
	planet := core.MustBody(core.Planet, 5, 1, vmath.Vec2{})
	star := core.MustBody(core.Star, 5, 1, vmath.Vec2{})
	g, d := Winner(Pair{planet, star})
	assert.Equal(t, star, g, "equal mass: higher rank wins")
	assert.Equal(t, planet, d)

	p2 := core.MustBody(core.Planet, 5, 1, vmath.Vec2{})
	g, _ = Winner(Pair{planet, p2})
	assert.Equal(t, planet, g, "full tie: first of pair wins")

	// Rank is checked before pair order on purpose: a rock listed first
	// still loses an equal-mass pair instead of keeping A
	rock := core.MustBody(core.Rock, 5, 1, vmath.Vec2{})
	g, d = Winner(Pair{rock, planet})
	assert.Equal(t, planet, g, "equal mass: rank beats pair order")
	assert.Equal(t, rock, d)

	heavy := core.MustBody(core.Rock, 50, 1, vmath.Vec2{})
	g, _ = Winner(Pair{heavy, star})
	assert.Equal(t, heavy, g, "mass dominates rank")
}

func TestMerge_BlackHoleGainerRederivesRadius(t *testing.T) {
	bh := core.MustBody(core.BlackHole, 1e31, 0, vmath.Vec2{})
	planet := core.MustBody(core.Planet, 1e30, 7e7, vmath.Vec2{})

	require.NoError(t, Merge(bh, planet))
	assert.InDelta(t, 1.1e31, bh.Mass(), 1e18)
	assert.InEpsilon(t, core.SchwarzschildRadius(1.1e31)/2, bh.Radius(), 1e-12)
}

func TestOverlaps_UsesLargerRadius(t *testing.T) {
	big := core.MustBody(core.Star, 1, 10, vmath.V2(0, 0))
	small := core.MustBody(core.Moon, 1, 0.1, vmath.V2(9.9, 0))
	assert.True(t, Overlaps(big, small))
	assert.True(t, Overlaps(small, big))

	small.Position = vmath.V2(10, 0)
	assert.False(t, Overlaps(big, small), "strict inequality")
}
