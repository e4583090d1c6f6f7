package view

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-gravity/core"
	"github.com/lixenwraith/vi-gravity/engine"
)

// namesZoomLimit hides black hole labels when zoomed out past this many meters per cell
const namesZoomLimit = 5e10

var helpLines = []string{
	"hjkl/HJKL cursor   +/- zoom   space center   f follow",
	"←/→ tab focus   x focus at cursor   del remove focus",
	"↑/↓ time scale (shift: fast)   s pause   q quit",
	"1 photon  2 ring  3 line  4 black hole  p clear photons",
	"enter launch from cursor, enter again to fire, esc cancel",
	"t tracks  r clear tracks  y relative tracks  g gravity field  ? help",
}

// Draw renders the current simulation state
func (v *Viewer) Draw() {
	frameInterval := 1 / float64(v.fps)
	var sc *scene
	v.loop.Read(func(sim *engine.Simulation) {
		sc = v.capture(sim, frameInterval)
	})

	if v.follow && sc.focus != nil {
		v.cam.LookAt(sc.focus.Position)
	}

	bg := tcell.StyleDefault.Background(RgbBackground).Foreground(RgbText)
	v.screen.SetStyle(bg)
	v.screen.Clear()
	cv := canvas{screen: v.screen, cam: v.cam}

	v.drawOverlays(cv, sc)
	if v.showTracks {
		v.drawTracks(cv, sc)
	}
	if sc.field != nil {
		st := bg.Foreground(RgbField)
		for _, a := range sc.field {
			x, y := cv.cam.ToScreen(a.from)
			cv.set(x, y, arrowHead(a.to.Sub(a.from)), st)
		}
	}
	if sc.focus != nil {
		v.drawForces(cv, sc)
	}
	v.drawBodies(cv, sc)
	if sc.launch != nil {
		v.drawLaunch(cv, sc.launch)
	}
	if sc.snap.CenterOfMass != nil {
		x, y := cv.cam.ToScreen(*sc.snap.CenterOfMass)
		cv.set(x, y, '+', bg.Foreground(RgbCenter))
	}
	v.drawNames(cv, sc)
	v.drawCursor(cv)
	v.drawStats(cv, sc)

	v.screen.Show()
}

func (v *Viewer) drawOverlays(cv canvas, sc *scene) {
	bg := tcell.StyleDefault.Background(RgbBackground)
	for _, o := range sc.overlays {
		cv.disc(o.center, o.Shadow, ' ', bg.Foreground(RgbShadow))
		cv.circle(o.center, o.PhotonRing, '·', bg.Foreground(RgbPhotonRing))
		cv.circle(o.center, o.StableOrbit, '·', bg.Foreground(RgbStableOrbit))
	}
}

func (v *Viewer) drawTracks(cv canvas, sc *scene) {
	st := tcell.StyleDefault.Background(RgbBackground).Foreground(RgbTrack)
	if v.relativeTracks && sc.focus != nil && len(sc.focus.Track) > 0 {
		for _, b := range sc.snap.Bodies {
			if b.ID == sc.focus.ID {
				continue
			}
			cv.polyline(relativeTrack(b.Track, sc.focus.Track, sc.focus.Position), '·', st)
		}
		return
	}
	for _, b := range sc.snap.Bodies {
		if len(b.Track) == 0 {
			continue
		}
		cv.polyline(b.Track, '·', st)
		cv.line(b.Track[len(b.Track)-1], b.Position, '·', st)
	}
}

func (v *Viewer) drawBodies(cv canvas, sc *scene) {
	bg := tcell.StyleDefault.Background(RgbBackground)
	for _, b := range sc.snap.Bodies {
		st := kindStyle(b.Kind)
		r := b.Radius
		if b.Kind == core.BlackHole {
			r *= 2
			cv.disc(b.Position, r, kindGlyph(b.Kind), bg.Foreground(tcell.ColorBlack))
			x, y := cv.cam.ToScreen(b.Position)
			cv.set(x, y, kindGlyph(b.Kind), st)
			continue
		}
		cv.disc(b.Position, r, kindGlyph(b.Kind), st)
	}

	pst := bg.Foreground(RgbPhoton)
	for _, p := range sc.snap.Photons {
		x, y := cv.cam.ToScreen(p.Position)
		cv.set(x, y, '∙', pst)
	}
}

// drawForces shows the focus velocity and acceleration over one real second
func (v *Viewer) drawForces(cv canvas, sc *scene) {
	bg := tcell.StyleDefault.Background(RgbBackground)
	f := sc.focus
	ts := sc.snap.TimeScale
	cv.arrow(f.Position, f.Position.Add(f.Velocity.Scale(ts)), bg.Foreground(RgbVelocity))
	cv.arrow(f.Position, f.Position.Add(sc.focusAccel.Scale(ts)), bg.Foreground(RgbAcceleration))
}

func (v *Viewer) drawLaunch(cv canvas, li *launchInfo) {
	bg := tcell.StyleDefault.Background(RgbBackground)
	if li.ref != nil {
		cv.arrow(li.ref.Position, li.start, bg.Foreground(RgbBodyToBody))
	}
	if len(li.prediction) > 1 {
		cv.polyline(li.prediction, '·', bg.Foreground(RgbPrediction))
	}
	cv.arrow(li.start, li.target, bg.Foreground(RgbVelocity))
	x, y := cv.cam.ToScreen(li.start)
	cv.set(x, y, 'o', bg.Foreground(RgbCursorLaunch))
}

func (v *Viewer) drawNames(cv canvas, sc *scene) {
	st := tcell.StyleDefault.Background(RgbBackground).Foreground(RgbText).Dim(true)
	for _, b := range sc.snap.Bodies {
		if b.Name == "" {
			continue
		}
		if b.Kind == core.BlackHole && v.cam.Zoom >= namesZoomLimit {
			continue
		}
		x, y := cv.cam.ToScreen(b.Position)
		r := int(cv.cam.CellsX(b.Radius))
		if b.Kind == core.BlackHole {
			r *= 2
		}
		cv.text(x+r+2, y, b.Name, st)
	}
}

func (v *Viewer) drawCursor(cv canvas) {
	st := tcell.StyleDefault.Background(RgbBackground).Foreground(RgbCursor)
	if v.launching {
		st = st.Foreground(RgbCursorLaunch)
	}
	mainc, _, _, _ := v.screen.GetContent(v.cursorX, v.cursorY)
	if mainc == ' ' || mainc == 0 {
		mainc = '┼'
	}
	cv.set(v.cursorX, v.cursorY, mainc, st.Reverse(true))
}

// drawStats writes the status panel in the top-left corner
func (v *Viewer) drawStats(cv canvas, sc *scene) {
	st := tcell.StyleDefault.Background(RgbBackground).Foreground(RgbText)
	y := 0
	line := func(s string, style tcell.Style) {
		cv.text(1, y, s, style)
		y++
	}

	snap := sc.snap
	line(fmt.Sprintf("FPS: %.0f / %.1f %%", v.measuredFPS, v.load), st)
	line("Time: "+SecToShortString(snap.SimTime), st)
	line("Time scale: "+SecToShortString(snap.TimeScale)+"/sec", st)
	line(fmt.Sprintf("Step: %s | %d", SecToShortString(sc.stepSize), sc.actualSteps), st)
	line("Zoom: "+NumberToString(v.cam.Zoom)+" m/cell", st)
	line(fmt.Sprintf("Bodies: %s  Photons: %s", CountToString(len(snap.Bodies)), CountToString(len(snap.Photons))), st)
	if v.loop.IsPaused() {
		line("PAUSE!", st.Foreground(RgbStatusPaused).Bold(true))
	}
	if err := v.loop.LastError(); err != nil {
		line("HALTED: "+err.Error(), st.Foreground(RgbStatusCritical))
	}

	if f := sc.focus; f != nil {
		y++
		name := f.Name
		if name == "" {
			name = fmt.Sprintf("#%d", f.ID)
		}
		line("Target: "+name, st)
		line("  Type: "+f.Kind.String(), st)
		line("  Velocity: "+VelocityToString(f.Speed), st)
		line("  Mass: "+NumberToString(f.Mass)+" kg", st)
	}

	if li := sc.launch; li != nil {
		y++
		if li.ref != nil && li.orbit > 0 {
			line("  Orbit: "+DistanceToString(li.orbit), st)
			line("  Orbital vel: "+VelocityToString(li.orbitalSpeed), st)
			line("  Escape vel: "+VelocityToString(li.escapeSpeed), st)
			line("  Relative vel: "+VelocityToString(li.relativeSpeed), st)
			line(fmt.Sprintf("  Angle: %.2f°", li.angle), st)
		}
		line("  Launch vel: "+VelocityToString(li.launchSpeed), st)
	}

	if msg := v.currentMessage(); msg != "" {
		cv.text(1, v.cam.Height-1, msg, st.Foreground(RgbStatusPaused))
	}

	if v.showHelp {
		y = max(y+1, v.cam.Height-len(helpLines)-2)
		for _, h := range helpLines {
			line(h, st.Dim(true))
		}
	} else {
		s := "? help"
		cv.text(v.cam.Width-len(s)-1, 0, s, st.Dim(true))
	}
}
