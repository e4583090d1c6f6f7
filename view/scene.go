package view

import (
	"math"

	"github.com/lixenwraith/vi-gravity/core"
	"github.com/lixenwraith/vi-gravity/engine"
	"github.com/lixenwraith/vi-gravity/physics"
	"github.com/lixenwraith/vi-gravity/vmath"
)

// fieldGap is the spacing of gravity field arrows in cells
const fieldGap = 8

// scene is everything one frame draws, captured under the simulation lock
type scene struct {
	snap *engine.Snapshot

	focus      *engine.BodyState
	focusAccel vmath.Vec2

	overlays []holeOverlay

	actualSteps int
	stepSize    float64
	maxVelocity float64

	launch *launchInfo
	field  []fieldArrow
}

type holeOverlay struct {
	center vmath.Vec2
	physics.BlackHoleOverlay
}

type fieldArrow struct {
	from, to vmath.Vec2
}

// launchInfo previews a launch from start toward the cursor
type launchInfo struct {
	start  vmath.Vec2
	target vmath.Vec2

	ref *engine.BodyState

	prediction []vmath.Vec2

	relativeSpeed float64
	launchSpeed   float64

	orbit        float64
	orbitalSpeed float64
	escapeSpeed  float64
	angle        float64
}

// capture reads sim into a scene; frameInterval sizes the step readout
func (v *Viewer) capture(sim *engine.Simulation, frameInterval float64) *scene {
	sc := &scene{
		snap:        sim.Snapshot(v.showTracks),
		actualSteps: sim.ActualSteps(frameInterval),
		stepSize:    engine.StepSize(frameInterval, sim.TimeScale(), sim.Config().Steps),
		maxVelocity: sim.Config().MaxVelocity,
	}

	for _, b := range sim.Bodies().Gravitational().All() {
		if b.Kind() == core.BlackHole {
			sc.overlays = append(sc.overlays, holeOverlay{center: b.Position, BlackHoleOverlay: physics.OverlayFor(b)})
		}
	}

	if fb := sim.FocusBody(); fb != nil {
		if st, ok := sc.snap.Body(fb.ID()); ok {
			sc.focus = &st
			if pull, err := sim.PullOn(fb.ID()); err == nil {
				sc.focusAccel = pull.Div(fb.Mass())
			}
		}
	}

	if v.launching {
		sc.launch = v.captureLaunch(sim, sc.snap)
	}

	if v.showField && sim.Bodies().Gravitational().Len() > 0 {
		sc.field = v.captureField(sim)
	}
	return sc
}

func (v *Viewer) captureLaunch(sim *engine.Simulation, snap *engine.Snapshot) *launchInfo {
	li := &launchInfo{
		start:  v.launchStart,
		target: v.cam.ToWorld(v.cursorX, v.cursorY),
	}
	ts := sim.TimeScale()
	maxV := sim.Config().MaxVelocity

	var ref *core.Body
	if v.launchRel != 0 {
		if b, ok := sim.Bodies().Body(v.launchRel); ok {
			ref = b
			if st, ok := snap.Body(b.ID()); ok {
				li.ref = &st
			}
		}
	}

	li.relativeSpeed = physics.LaunchVelocity(li.start, li.target, ts, nil, maxV).Len()
	li.launchSpeed = physics.LaunchVelocity(li.start, li.target, ts, ref, maxV).Len()

	if ref != nil && li.start != li.target {
		li.orbit = ref.Position.Dist(li.start)
		li.orbitalSpeed = physics.OrbitalVelocity(ref.Mass(), li.orbit)
		li.escapeSpeed = physics.EscapeVelocity(ref.Mass(), li.orbit)

		bodyToStart := li.start.Sub(ref.Position)
		startToTarget := li.target.Sub(li.start)
		li.angle = 180 - math.Abs(bodyToStart.AngleRel(startToTarget)*180/math.Pi)

		// Preview relative to the reference body's rest frame
		vel := physics.LaunchVelocity(li.start, li.target, ts, nil, maxV)
		li.prediction = physics.PredictTrajectory(li.start, vel, ref, ts, ref.RenderRadius())
	}
	return li
}

func (v *Viewer) captureField(sim *engine.Simulation) []fieldArrow {
	var arrows []fieldArrow
	half := fieldGap / 2 * v.cam.Zoom
	for y := fieldGap / 2; y < v.cam.Height; y += fieldGap / 2 {
		for x := fieldGap / 2; x < v.cam.Width; x += fieldGap {
			p := v.cam.ToWorld(x, y)
			f := sim.FieldAt(p)
			if f.LenSq() == 0 || !f.IsFinite() {
				continue
			}
			arrows = append(arrows, fieldArrow{from: p, to: p.Add(f.SetLen(half))})
		}
	}
	return arrows
}

// relativeTrack replays track relative to ref, anchored at anchor
// Walks back from the newest sample while both tracks have history
func relativeTrack(track, ref []vmath.Vec2, anchor vmath.Vec2) []vmath.Vec2 {
	n := min(len(track), len(ref))
	if n == 0 {
		return nil
	}
	out := make([]vmath.Vec2, 0, n)
	for i := 1; i <= n; i++ {
		p := track[len(track)-i]
		r := ref[len(ref)-i]
		out = append(out, p.Sub(r).Add(anchor))
	}
	return out
}
