package physics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/vi-gravity/core"
	"github.com/lixenwraith/vi-gravity/parameter"
	"github.com/lixenwraith/vi-gravity/vmath"
)

const speedTolerance = 1e-6

func TestComposeVelocity_NewtonianLimit(t *testing.T) {
	tests := []struct {
		name string
		v    vmath.Vec2
		dv   vmath.Vec2
		want vmath.Vec2
	}{
		{"from rest", vmath.Vec2{}, vmath.V2(3, -4), vmath.V2(3, -4)},
		{"parallel", vmath.V2(10, 0), vmath.V2(5, 0), vmath.V2(15, 0)},
		{"perpendicular", vmath.V2(1, 0), vmath.V2(0, 1), vmath.V2(1, 1)},
		{"rotated frame", vmath.V2(0, -20), vmath.V2(2, 0), vmath.V2(2, -20)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComposeVelocity(tt.v, tt.dv, parameter.MaxVelocity)
			assert.True(t, got.ApproxEqual(tt.want, 1e-9), "got %v want %v", got, tt.want)
		})
	}
}

func TestComposeVelocity_NeverReachesC(t *testing.T) {
	tests := []struct {
		name string
		v    vmath.Vec2
		dv   vmath.Vec2
	}{
		{"near c plus c", vmath.V2(parameter.C-10, 0), vmath.V2(parameter.C, 0)},
		{"huge increment", vmath.V2(0.9*parameter.C, 0), vmath.V2(1e12, 5e11)},
		{"huge from rest", vmath.Vec2{}, vmath.V2(-1e15, 1e15)},
		{"diagonal", vmath.V2(2e8, 2e8), vmath.V2(1e9, -3e8)},
		{"cancels denominator", vmath.V2(parameter.C/2, 0), vmath.V2(-2*parameter.C, 0)},
		{"crosses denominator", vmath.V2(parameter.C/2, 0), vmath.V2(-3*parameter.C, 1e6)},
		{"rotated cancel", vmath.V2(0, parameter.C/2), vmath.V2(0, -2*parameter.C)},
		{"starts above c", vmath.V2(2*parameter.C, 0), vmath.V2(1, 0)},
		{"starts at c diagonal", vmath.V2(parameter.C, parameter.C), vmath.V2(-5, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComposeVelocity(tt.v, tt.dv, parameter.MaxVelocity)
			assert.LessOrEqual(t, got.Len(), parameter.MaxVelocity+speedTolerance)
			assert.Less(t, got.Len(), parameter.C)
			assert.True(t, got.IsFinite())
		})
	}
}

func TestComposeVelocity_OpposingSaturatesAlongSum(t *testing.T) {
	got := ComposeVelocity(vmath.V2(parameter.C/2, 0), vmath.V2(-2*parameter.C, 0), parameter.MaxVelocity)
	assert.InDelta(t, -parameter.MaxVelocity, got.X, speedTolerance)
	assert.InDelta(t, 0, got.Y, speedTolerance)
}

func TestComposeVelocity_NonFinitePassesThrough(t *testing.T) {
	got := ComposeVelocity(vmath.V2(1, 0), vmath.V2(math.Inf(1), 0), parameter.MaxVelocity)
	assert.False(t, got.IsFinite())

	got = ComposeVelocity(vmath.V2(math.NaN(), 0), vmath.V2(1, 0), parameter.MaxVelocity)
	assert.False(t, got.IsFinite())
}

func TestComposeVelocity_RepeatedBoostStaysBounded(t *testing.T) {
	v := vmath.Vec2{}
	dv := vmath.V2(0.3*parameter.C, 0.1*parameter.C)
	for range 1000 {
		v = ComposeVelocity(v, dv, parameter.MaxVelocity)
		assert.LessOrEqual(t, v.Len(), parameter.MaxVelocity+speedTolerance)
	}
}

func TestCapSpeed(t *testing.T) {
	v, clamped := CapSpeed(vmath.V2(3, 4), 10)
	assert.False(t, clamped)
	assert.Equal(t, vmath.V2(3, 4), v)

	v, clamped = CapSpeed(vmath.V2(30, 40), 10)
	assert.True(t, clamped)
	assert.InDelta(t, 10, v.Len(), 1e-12)
	assert.InDelta(t, 0.6, v.Normalize().X, 1e-12)
}

func TestIntegrateBody_EulerStep(t *testing.T) {
	b := core.MustBody(core.Moon, 1, 1, vmath.V2(100, 100), core.WithVelocity(vmath.V2(1, 0)))
	b.Acceleration = vmath.V2(0, 2)

	IntegrateBody(b, 10, parameter.MaxVelocity)

	assert.True(t, b.Velocity.ApproxEqual(vmath.V2(1, 2), 1e-9))
	assert.True(t, b.Position.ApproxEqual(vmath.V2(110, 120), 1e-6))
}

func TestIntegrateBody_SuperluminalStartIsClamped(t *testing.T) {
	b := core.MustBody(core.Planet, 1, 1, vmath.Vec2{})
	b.Velocity = vmath.V2(2*parameter.C, 0)

	IntegrateBody(b, 1, parameter.MaxVelocity)

	assert.True(t, b.Velocity.IsFinite())
	assert.LessOrEqual(t, b.Velocity.Len(), parameter.MaxVelocity+speedTolerance)
	assert.Greater(t, b.Velocity.X, 0.0)
}

func TestIntegratePhoton_ExactlyC(t *testing.T) {
	for _, angle := range []float64{0, 0.3, math.Pi / 2, -2.5, 4} {
		p, err := core.NewPhoton(vmath.V2(1e9, -1e9), angle, 1, 0)
		assert.NoError(t, err)
		start := p.Position
		IntegratePhoton(p, 0.5)
		assert.InEpsilon(t, parameter.C*0.5, p.Position.Dist(start), 1e-9)
	}
}
