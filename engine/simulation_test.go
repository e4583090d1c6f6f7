package engine

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/vi-gravity/core"
	"github.com/lixenwraith/vi-gravity/event"
	"github.com/lixenwraith/vi-gravity/parameter"
	"github.com/lixenwraith/vi-gravity/vmath"
)

func newSim(t *testing.T) *Simulation {
	t.Helper()
	s, err := New(DefaultConfig())
	require.NoError(t, err)
	return s
}

func mustInsert(t *testing.T, s *Simulation, b *core.Body) core.Entity {
	t.Helper()
	id, err := s.Insert(b)
	require.NoError(t, err)
	return id
}

func eventTypes(q *event.Queue) []event.EventType {
	var out []event.EventType
	for _, ev := range q.Consume() {
		out = append(out, ev.Type)
	}
	return out
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	bad := []func(*Config){
		func(c *Config) { c.Steps = 0 },
		func(c *Config) { c.TimeScale = 0 },
		func(c *Config) { c.TimeScale = math.NaN() },
		func(c *Config) { c.MaxVelocity = parameter.C },
		func(c *Config) { c.TrackInterval = 0 },
	}
	for i, mutate := range bad {
		cfg := DefaultConfig()
		mutate(&cfg)
		_, err := New(cfg)
		assert.ErrorIs(t, err, ErrInvalidConfig, "case %d", i)
	}

	s := newSim(t)
	assert.NotEqual(t, uuid.Nil, s.RunID())
}

func TestAdvanceFrame_AdvancesTime(t *testing.T) {
	s := newSim(t)
	mustInsert(t, s, core.MustBody(core.Star, parameter.SolarMass, 7e8, vmath.Vec2{}, core.WithName("Sun")))
	earth := core.MustBody(core.Planet, 5.972e24, 6.371e6, vmath.V2(parameter.AU, 0),
		core.WithName("Earth"), core.WithVelocity(vmath.V2(0, 29780)))
	mustInsert(t, s, earth)

	var seen []FrameStats
	s.AddObserver(observerFunc(func(st FrameStats) { seen = append(seen, st) }))

	n, err := s.AdvanceFrame(1.0/60, 86400, 50)
	require.NoError(t, err)
	assert.Equal(t, 50, n)
	assert.Equal(t, int64(1), s.Frame())
	assert.InDelta(t, 1440, s.SimTime(), 1e-9)
	assert.Greater(t, earth.Position.Y, 0.0)

	require.Len(t, seen, 1)
	assert.Equal(t, 50, seen[0].Substeps)
	assert.Equal(t, 2, seen[0].Bodies)
	assert.InDelta(t, 28.8, seen[0].StepSize, 1e-9)

	_, err = s.AdvanceFrame(0, 86400, 50)
	assert.ErrorIs(t, err, ErrInvalidFrame)
	_, err = s.AdvanceFrame(1.0/60, math.NaN(), 50)
	assert.ErrorIs(t, err, ErrInvalidFrame)
}

type observerFunc func(FrameStats)

func (f observerFunc) ObserveFrame(st FrameStats) { f(st) }

func TestAdvanceFrame_MergeReassignsFocus(t *testing.T) {
	s := newSim(t)
	a := mustInsert(t, s, core.MustBody(core.Planet, 10, 2, vmath.V2(0, 0), core.WithName("a")))
	b := mustInsert(t, s, core.MustBody(core.Planet, 5, 2, vmath.V2(1, 0), core.WithName("b")))
	require.NoError(t, s.SetFocus(b))

	var hookPrev, hookCur core.Entity
	s.OnFocusChange(func(prev, cur core.Entity) { hookPrev, hookCur = prev, cur })

	_, err := s.AdvanceFrame(1.0/60, 1, 1)
	require.NoError(t, err)

	assert.Equal(t, a, s.Focus())
	assert.Equal(t, b, hookPrev)
	assert.Equal(t, a, hookCur)
	assert.Equal(t, 1, s.Bodies().Len())

	assert.Equal(t, []event.EventType{
		event.EventBodyInserted,
		event.EventBodyInserted,
		event.EventBodyMerged,
		event.EventFocusReassigned,
	}, eventTypes(s.Queue()))
}

func TestRemove_ClearsFocus(t *testing.T) {
	s := newSim(t)
	id := mustInsert(t, s, core.MustBody(core.Planet, 1, 1, vmath.Vec2{}))
	require.NoError(t, s.SetFocus(id))
	s.Queue().Consume()

	assert.True(t, s.Remove(id))
	assert.False(t, s.Remove(id))
	assert.Equal(t, core.Entity(0), s.Focus())

	evs := s.Queue().Consume()
	require.Len(t, evs, 2)
	assert.Equal(t, event.EventBodyRemoved, evs[0].Type)
	focus := evs[1].Payload.(*event.FocusPayload)
	assert.Equal(t, id, focus.Previous)
	assert.Equal(t, core.Entity(0), focus.Current)
}

func TestAdvanceFrame_SamplesTracks(t *testing.T) {
	s := newSim(t)
	b := core.MustBody(core.Planet, 1, 1, vmath.Vec2{}, core.WithVelocity(vmath.V2(1, 0)))
	mustInsert(t, s, b)
	require.NotNil(t, b.Track, "insert attaches a track")
	assert.Equal(t, parameter.BodyTrackLength, b.Track.Limit())

	for range 10 {
		_, err := s.Step(1.0 / 60)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, b.Track.Len())
}

func TestAdvanceFrame_NonFinite(t *testing.T) {
	s := newSim(t)
	mustInsert(t, s, core.MustBody(core.Planet, 1, 0, vmath.V2(3, 3), core.WithName("x")))
	mustInsert(t, s, core.MustBody(core.Planet, 1, 0, vmath.V2(3, 3), core.WithName("y")))
	s.Queue().Consume()

	_, err := s.AdvanceFrame(1.0/60, 1, 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNonFinite)

	var nf *NonFiniteError
	require.True(t, errors.As(err, &nf))
	assert.False(t, nf.Photon)
	assert.Equal(t, int64(1), nf.Frame)

	assert.Equal(t, []event.EventType{event.EventNonFinite}, eventTypes(s.Queue()))
}

func TestCycleFocus(t *testing.T) {
	s := newSim(t)
	assert.Equal(t, core.Entity(0), s.CycleFocus(1), "empty")

	star := mustInsert(t, s, core.MustBody(core.Star, 1, 1, vmath.Vec2{}))
	planet := mustInsert(t, s, core.MustBody(core.Planet, 1, 1, vmath.Vec2{}))
	mustInsert(t, s, core.MustBody(core.Rock, 1, 1, vmath.Vec2{}))
	moon := mustInsert(t, s, core.MustBody(core.Moon, 1, 1, vmath.Vec2{}))

	assert.Equal(t, star, s.CycleFocus(1))
	assert.Equal(t, planet, s.CycleFocus(1))
	assert.Equal(t, moon, s.CycleFocus(1))
	assert.Equal(t, star, s.CycleFocus(1), "wraps forward")
	assert.Equal(t, moon, s.CycleFocus(-1), "wraps backward")

	assert.ErrorIs(t, s.SetFocus(999), core.ErrNotFound)
	assert.ErrorIs(t, s.FocusByName("nobody"), core.ErrNotFound)
}

func TestEmitters(t *testing.T) {
	s := newSim(t)

	_, err := s.EmitPhoton(vmath.Vec2{}, vmath.V2(0, -1))
	require.NoError(t, err)

	n, err := s.EmitRing(vmath.V2(1e9, 0))
	require.NoError(t, err)
	assert.Equal(t, parameter.PhotonRingCount, n)

	n, err = s.EmitLine(vmath.V2(0, 1e9), 10)
	require.NoError(t, err)
	assert.Equal(t, parameter.PhotonLineCount, n)

	total := 1 + parameter.PhotonRingCount + parameter.PhotonLineCount
	assert.Equal(t, total, s.Bodies().PhotonLen())

	p := s.Bodies().Photons().At(0)
	assert.Equal(t, parameter.GreenLightFrequency, p.Frequency())
	require.NotNil(t, p.Track)
	assert.Equal(t, parameter.PhotonTrackLength, p.Track.Limit())

	// Line is centered on the requested point
	first := s.Bodies().Photons().At(1 + parameter.PhotonRingCount)
	last := s.Bodies().Photons().At(total - 1)
	assert.InDelta(t, 0, first.Position.Add(last.Position).X/2, 1e-6)
	assert.InDelta(t, 490, last.Position.X-first.Position.X, 1e-6)

	s.Queue().Consume()
	assert.Equal(t, total, s.ClearPhotons())
	assert.Equal(t, 0, s.ClearPhotons())
	assert.Equal(t, []event.EventType{event.EventPhotonsCleared}, eventTypes(s.Queue()))
}

func TestPhotonsKeepSpeedThroughFrames(t *testing.T) {
	s := newSim(t)
	mustInsert(t, s, core.MustBody(core.BlackHole, 4e6*parameter.SolarMass, 0, vmath.Vec2{}))
	_, err := s.EmitRing(vmath.V2(-5e11, 0))
	require.NoError(t, err)

	p := s.Bodies().Photons().At(0)
	for range 20 {
		start := p.Position
		_, err := s.AdvanceFrame(1.0/60, 60, 1)
		require.NoError(t, err)
		assert.InEpsilon(t, parameter.C, p.Position.Dist(start), 1e-9)
	}
}

func TestDropBlackHoleAndLaunch(t *testing.T) {
	s := newSim(t)
	id, err := s.DropBlackHole(vmath.V2(5, 5))
	require.NoError(t, err)
	bh, ok := s.Bodies().Body(id)
	require.True(t, ok)
	assert.Equal(t, core.BlackHole, bh.Kind())
	assert.InEpsilon(t, 1000*parameter.SolarMass, bh.Mass(), 1e-12)

	ref := mustInsert(t, s, core.MustBody(core.Planet, 1, 1, vmath.V2(1e9, 0), core.WithVelocity(vmath.V2(0, 3))))
	lid, err := s.Launch(vmath.V2(0, 0), vmath.V2(parameter.DefaultTimeScale, 0), ref)
	require.NoError(t, err)
	moon, _ := s.Bodies().Body(lid)
	assert.Equal(t, core.Moon, moon.Kind())
	assert.Equal(t, 1.0, moon.Mass())
	assert.True(t, moon.Velocity.ApproxEqual(vmath.V2(1, 3), 1e-12))

	_, err = s.Launch(vmath.Vec2{}, vmath.V2(1, 1), 12345)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestReset(t *testing.T) {
	s := newSim(t)
	mustInsert(t, s, core.MustBody(core.Planet, 1, 1, vmath.Vec2{}))
	_, err := s.Step(1.0 / 60)
	require.NoError(t, err)

	earth := core.MustBody(core.Planet, 5.972e24, 6.371e6, vmath.V2(parameter.AU, 0), core.WithName("Earth"))
	sun := core.MustBody(core.Star, parameter.SolarMass, 7e8, vmath.Vec2{}, core.WithName("Sun"))
	err = s.Reset(Setup{
		Name:      "pair",
		Bodies:    []*core.Body{sun, earth},
		Focus:     "Earth",
		TimeScale: 3600,
		Steps:     300,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(0), s.Frame())
	assert.Equal(t, 0.0, s.SimTime())
	assert.Equal(t, 2, s.Bodies().Len())
	assert.Equal(t, earth.ID(), s.Focus())
	assert.Equal(t, 3600.0, s.TimeScale())
	assert.Equal(t, 300, s.Config().Steps)

	assert.ErrorIs(t, s.Reset(Setup{Steps: -1}), ErrInvalidConfig)
}

func TestReset_RejectedSetupLeavesSystemUntouched(t *testing.T) {
	s := newSim(t)
	kept := core.MustBody(core.Planet, 1, 1, vmath.Vec2{}, core.WithName("Kept"))
	mustInsert(t, s, kept)
	require.NoError(t, s.SetFocus(kept.ID()))
	_, err := s.Step(1.0 / 60)
	require.NoError(t, err)

	fresh := func() *core.Body { return core.MustBody(core.Star, 1, 1, vmath.V2(1e9, 0), core.WithName("New")) }
	fast := fresh()
	fast.Velocity = vmath.V2(2*parameter.C, 0)
	twice := fresh()
	photon, err := core.NewPhoton(vmath.Vec2{}, 0, 0, 0)
	require.NoError(t, err)

	tests := []struct {
		name  string
		setup Setup
		want  error
	}{
		{"reused body", Setup{Bodies: []*core.Body{fresh(), kept}, TimeScale: 1}, core.ErrAlreadyInserted},
		{"duplicate body", Setup{Bodies: []*core.Body{twice, twice}, Steps: 7}, core.ErrAlreadyInserted},
		{"superluminal body", Setup{Bodies: []*core.Body{fresh(), fast}}, core.ErrInvalidVelocity},
		{"duplicate photon", Setup{Bodies: []*core.Body{fresh()}, Photons: []*core.Photon{photon, photon}}, core.ErrAlreadyInserted},
		{"unknown focus", Setup{Bodies: []*core.Body{fresh()}, Focus: "Nobody"}, core.ErrNotFound},
		{"bad time scale", Setup{Bodies: []*core.Body{fresh()}, TimeScale: -5}, ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, s.Reset(tt.setup), tt.want)

			assert.Equal(t, 1, s.Bodies().Len())
			assert.Equal(t, kept.ID(), s.Focus())
			assert.Equal(t, int64(1), s.Frame())
			assert.Equal(t, parameter.DefaultTimeScale, s.TimeScale())
			assert.Equal(t, parameter.DefaultSteps, s.Config().Steps)
			assert.Zero(t, s.Bodies().PhotonLen())
		})
	}
}

func TestTrackLengthsAndClear(t *testing.T) {
	s := newSim(t)
	b := mustInsert(t, s, core.MustBody(core.Planet, 1, 1, vmath.Vec2{}))
	_, err := s.EmitPhoton(vmath.V2(0, 1e9), vmath.V2(1, 0))
	require.NoError(t, err)
	body, _ := s.Bodies().Body(b)
	photon := s.Bodies().Photons().At(0)
	require.NotNil(t, body.Track)
	require.NotNil(t, photon.Track)

	for range 3 * parameter.TrackInterval {
		_, err := s.Step(1.0 / 60)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, body.Track.Len())
	assert.Equal(t, 3, photon.Track.Len())

	require.NoError(t, s.SetTrackLengths(10, 2))
	assert.Equal(t, 10, body.Track.Limit())
	assert.Equal(t, 2, photon.Track.Len())
	assert.Equal(t, 10, s.Config().BodyTrackLength)
	assert.Equal(t, 2, s.Config().PhotonTrackLength)

	s.ClearTracks()
	assert.Zero(t, body.Track.Len())
	assert.Zero(t, photon.Track.Len())
	assert.NotNil(t, body.Track)

	// Disabling keeps existing tracks and skips new entities
	require.NoError(t, s.SetTrackLengths(0, 0))
	assert.Equal(t, 10, body.Track.Limit())
	late := mustInsert(t, s, core.MustBody(core.Planet, 1, 1, vmath.V2(1e12, 0)))
	lateBody, _ := s.Bodies().Body(late)
	assert.Nil(t, lateBody.Track)

	assert.ErrorIs(t, s.SetTrackLengths(-1, 0), ErrInvalidConfig)
	assert.Equal(t, 0, s.Config().BodyTrackLength)
}

func TestTimeScaleAndSnapshot(t *testing.T) {
	s := newSim(t)
	assert.InDelta(t, parameter.DefaultTimeScale*parameter.TimeScaleStep, s.ScaleTime(true, false), 1e-6)
	assert.InDelta(t, parameter.DefaultTimeScale*parameter.TimeScaleStep/parameter.TimeScaleStepFast, s.ScaleTime(false, true), 1e-6)
	assert.ErrorIs(t, s.SetTimeScale(-1), ErrInvalidConfig)
	assert.ErrorIs(t, s.SetSteps(0), ErrInvalidConfig)

	id := mustInsert(t, s, core.MustBody(core.Planet, 2, 1, vmath.V2(1, 2), core.WithName("p"), core.WithVelocity(vmath.V2(3, 0))))
	_, err := s.EmitPhoton(vmath.Vec2{}, vmath.V2(1, 0))
	require.NoError(t, err)
	_, err = s.Step(1.0 / 60)
	require.NoError(t, err)

	snap := s.Snapshot(true)
	assert.Equal(t, s.RunID().String(), snap.RunID)
	require.Len(t, snap.Bodies, 1)
	require.Len(t, snap.Photons, 1)
	assert.InDelta(t, 2, snap.Totals.Mass, 1e-12)
	assert.InDelta(t, 6, snap.Totals.Momentum.X, 1e-9)
	require.NotNil(t, snap.CenterOfMass)

	body, ok := snap.Body(id)
	require.True(t, ok)
	assert.Equal(t, "p", body.Name)

	raw, err := json.Marshal(snap)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"kind":"planet"`)
	assert.Contains(t, string(raw), `"run_id"`)
}

func TestQueries(t *testing.T) {
	s := newSim(t)
	a := mustInsert(t, s, core.MustBody(core.Planet, 1e24, 1, vmath.V2(0, 0)))
	mustInsert(t, s, core.MustBody(core.Planet, 1e24, 1, vmath.V2(2e6, 0)))

	com, ok := s.CenterOfMass()
	require.True(t, ok)
	assert.InDelta(t, 1e6, com.X, 1e-6)
	assert.InDelta(t, 0, s.FieldAt(com).Len(), 1e-12)

	pull, err := s.PullOn(a)
	require.NoError(t, err)
	assert.Greater(t, pull.X, 0.0)

	_, err = s.PullOn(999)
	assert.ErrorIs(t, err, core.ErrNotFound)
}
