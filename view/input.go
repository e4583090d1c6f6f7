package view

import (
	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/vi-gravity/core"
	"github.com/lixenwraith/vi-gravity/engine"
	"github.com/lixenwraith/vi-gravity/parameter"
	"github.com/lixenwraith/vi-gravity/vmath"
)

// cursorJump is the cursor step for shifted movement keys
const cursorJump = 8

// downward is the heading of single emitted photons
var downward = vmath.V2(0, -1)

func (v *Viewer) handleKey(ev *tcell.EventKey) bool {
	fast := ev.Modifiers()&tcell.ModShift != 0

	switch ev.Key() {
	case tcell.KeyCtrlC:
		return false
	case tcell.KeyEscape:
		v.cancelLaunch()
	case tcell.KeyUp:
		v.scaleTime(true, fast)
	case tcell.KeyDown:
		v.scaleTime(false, fast)
	case tcell.KeyLeft, tcell.KeyBacktab:
		v.cycleFocus(-1)
	case tcell.KeyRight, tcell.KeyTab:
		v.cycleFocus(1)
	case tcell.KeyEnter:
		v.launchStep()
	case tcell.KeyDelete, tcell.KeyBackspace, tcell.KeyBackspace2:
		v.deleteFocus()
	case tcell.KeyRune:
		return v.handleRune(ev.Rune())
	}
	return true
}

func (v *Viewer) handleRune(r rune) bool {
	switch r {
	case 'q':
		return false

	// Cursor, pans at the edges
	case 'h':
		v.moveCursor(-1, 0)
	case 'j':
		v.moveCursor(0, 1)
	case 'k':
		v.moveCursor(0, -1)
	case 'l':
		v.moveCursor(1, 0)
	case 'H':
		v.moveCursor(-cursorJump, 0)
	case 'J':
		v.moveCursor(0, cursorJump/2)
	case 'K':
		v.moveCursor(0, -cursorJump/2)
	case 'L':
		v.moveCursor(cursorJump, 0)
	case 'c':
		v.cursorX, v.cursorY = v.cam.Width/2, v.cam.Height/2

	// Emitters at the cursor
	case '1':
		v.emit(func(sim *engine.Simulation) error {
			_, err := sim.EmitPhoton(v.cursorWorld(), downward)
			return err
		})
	case '2':
		v.emit(func(sim *engine.Simulation) error {
			_, err := sim.EmitRing(v.cursorWorld())
			return err
		})
	case '3':
		v.emit(func(sim *engine.Simulation) error {
			_, err := sim.EmitLine(v.cursorWorld(), parameter.PhotonLineSpacing*v.cam.Zoom)
			return err
		})
	case '4':
		v.emit(func(sim *engine.Simulation) error {
			_, err := sim.DropBlackHole(v.cursorWorld())
			return err
		})

	case 'x':
		v.focusAtCursor()
	case ' ':
		v.centerOnFocus()
	case 'f':
		v.follow = !v.follow
		if v.follow {
			v.centerOnFocus()
		}

	case 's':
		if v.loop.IsPaused() {
			v.loop.Resume()
		} else {
			v.loop.Pause()
		}
	case 'p':
		v.loop.RunSafe(func(sim *engine.Simulation) { sim.ClearPhotons() })
	case 't':
		v.showTracks = !v.showTracks
	case 'r':
		v.loop.RunSafe(func(sim *engine.Simulation) { sim.ClearTracks() })
	case 'y':
		v.relativeTracks = !v.relativeTracks
	case 'g':
		v.showField = !v.showField
	case '?':
		v.showHelp = !v.showHelp

	case '+', '=':
		v.cam.ZoomIn()
	case '-', '_':
		v.cam.ZoomOut()
	}
	return true
}

func (v *Viewer) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	switch btn := ev.Buttons(); {
	case btn&tcell.WheelUp != 0:
		v.cam.ZoomAt(x, y, 1/zoomStep)
	case btn&tcell.WheelDown != 0:
		v.cam.ZoomAt(x, y, zoomStep)
	case btn&tcell.Button1 != 0:
		v.cursorX, v.cursorY = x, y
		if !v.launching {
			v.focusAtCursor()
		}
	}
}

func (v *Viewer) cursorWorld() vmath.Vec2 {
	return v.cam.ToWorld(v.cursorX, v.cursorY)
}

// moveCursor clamps to the viewport and pans by the overflow
func (v *Viewer) moveCursor(dx, dy int) {
	x, y := v.cursorX+dx, v.cursorY+dy
	var panX, panY int
	switch {
	case x < 0:
		panX, x = x, 0
	case x >= v.cam.Width:
		panX, x = x-v.cam.Width+1, v.cam.Width-1
	}
	switch {
	case y < 0:
		panY, y = y, 0
	case y >= v.cam.Height:
		panY, y = y-v.cam.Height+1, v.cam.Height-1
	}
	v.cursorX, v.cursorY = x, y
	if panX != 0 || panY != 0 {
		v.cam.Pan(panX, panY)
		v.follow = false
	}
}

func (v *Viewer) scaleTime(up, fast bool) {
	v.loop.RunSafe(func(sim *engine.Simulation) { sim.ScaleTime(up, fast) })
}

func (v *Viewer) cycleFocus(dir int) {
	var pos vmath.Vec2
	var found bool
	v.loop.RunSafe(func(sim *engine.Simulation) {
		sim.CycleFocus(dir)
		if b := sim.FocusBody(); b != nil {
			pos, found = b.Position, true
		}
	})
	if found {
		v.cam.LookAt(pos)
	}
}

func (v *Viewer) focusAtCursor() {
	p := v.cursorWorld()
	v.loop.RunSafe(func(sim *engine.Simulation) {
		// Half a column keeps small bodies selectable
		if b := sim.Bodies().BodyAt(p, v.cam.Zoom/2); b != nil {
			_ = sim.SetFocus(b.ID())
			return
		}
		_ = sim.SetFocus(0)
	})
}

func (v *Viewer) centerOnFocus() {
	snap := v.loop.Latest()
	if b, ok := snap.Body(snap.Focus); ok {
		v.cam.LookAt(b.Position)
	}
}

// deleteFocus cancels an active launch first, then removes the focused body
func (v *Viewer) deleteFocus() {
	if v.launching {
		v.cancelLaunch()
		return
	}
	v.loop.RunSafe(func(sim *engine.Simulation) {
		if id := sim.Focus(); id != 0 {
			sim.Remove(id)
		}
	})
}

// launchStep starts a launch at the cursor, or fires the pending one toward it
// Starting pauses the loop so the aim can be set; firing focuses the new body
func (v *Viewer) launchStep() {
	if !v.launching {
		v.launching = true
		v.launchStart = v.cursorWorld()
		v.launchRel = v.loop.Latest().Focus
		v.loop.Pause()
		return
	}

	to := v.cursorWorld()
	var (
		id  core.Entity
		err error
	)
	v.loop.RunSafe(func(sim *engine.Simulation) {
		id, err = sim.Launch(v.launchStart, to, v.launchRel)
		if err == nil {
			_ = sim.SetFocus(id)
		}
	})
	if err != nil {
		v.logger.Warn("launch failed", zap.Error(err))
		v.flash("launch failed: " + err.Error())
	}
	v.launching = false
	v.launchRel = 0
}

func (v *Viewer) cancelLaunch() {
	v.launching = false
	v.launchRel = 0
}

func (v *Viewer) emit(fn func(*engine.Simulation) error) {
	var err error
	v.loop.RunSafe(func(sim *engine.Simulation) { err = fn(sim) })
	if err != nil {
		v.logger.Warn("emit failed", zap.Error(err))
		v.flash(err.Error())
	}
}
