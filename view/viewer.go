// Package view is the interactive terminal frontend: a camera over the
// simulation, keyboard and mouse controls, and a status panel
package view

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/vi-gravity/core"
	"github.com/lixenwraith/vi-gravity/engine"
	"github.com/lixenwraith/vi-gravity/event"
	"github.com/lixenwraith/vi-gravity/parameter"
	"github.com/lixenwraith/vi-gravity/vmath"
)

const messageDuration = 3 * time.Second

// Options configures a Viewer
type Options struct {
	FPS    int
	Zoom   float64
	Logger *zap.Logger
}

// Viewer draws a Loop's simulation and drives it one frame per tick
type Viewer struct {
	screen tcell.Screen
	loop   *engine.Loop
	logger *zap.Logger
	fps    int

	cam              Camera
	cursorX, cursorY int
	follow           bool

	showTracks     bool
	relativeTracks bool
	showField      bool
	showHelp       bool

	launching   bool
	launchStart vmath.Vec2
	launchRel   core.Entity

	lastFrame   time.Time
	measuredFPS float64
	load        float64

	msgMu     sync.Mutex
	message   string
	messageAt time.Time
}

// NewScreen creates and initializes a terminal screen with mouse support
func NewScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	screen.SetStyle(tcell.StyleDefault.Background(RgbBackground).Foreground(RgbText))
	screen.HideCursor()
	return screen, nil
}

// New creates a viewer over an initialized screen
// The viewer registers itself on the loop for merge and focus notices
func New(screen tcell.Screen, loop *engine.Loop, opts Options) *Viewer {
	if opts.FPS < 1 {
		opts.FPS = parameter.DefaultFPS
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	w, h := screen.Size()
	v := &Viewer{
		screen:     screen,
		loop:       loop,
		logger:     opts.Logger,
		fps:        opts.FPS,
		cam:        NewCamera(w, h),
		cursorX:    w / 2,
		cursorY:    h / 2,
		follow:     true,
		showTracks: true,
	}
	if opts.Zoom > 0 {
		v.cam.Zoom = opts.Zoom
	}
	if focus, ok := loop.Latest().Body(loop.Latest().Focus); ok {
		v.cam.LookAt(focus.Position)
	}
	loop.RegisterEventHandler(v)
	return v
}

// Camera returns the current camera
func (v *Viewer) Camera() Camera { return v.cam }

// Cursor returns the cursor cell
func (v *Viewer) Cursor() (int, int) { return v.cursorX, v.cursorY }

// Run polls input and renders until ctx is done or the user quits
func (v *Viewer) Run(ctx context.Context) error {
	eventChan := make(chan tcell.Event, 100)
	core.Go(func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	})

	ticker := time.NewTicker(time.Second / time.Duration(v.fps))
	defer ticker.Stop()

	v.lastFrame = time.Now()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-eventChan:
			if !v.HandleInput(ev) {
				return nil
			}
		case now := <-ticker.C:
			v.Frame(now)
		}
	}
}

// Frame advances the loop once and redraws, tracking measured fps and load
func (v *Viewer) Frame(now time.Time) {
	if dt := now.Sub(v.lastFrame).Seconds(); dt > 0 {
		fps := 1 / dt
		if v.measuredFPS == 0 {
			v.measuredFPS = fps
		} else {
			v.measuredFPS += (fps - v.measuredFPS) * 0.1
		}
	}
	v.lastFrame = now

	start := time.Now()
	v.loop.Tick()
	v.Draw()
	v.load = time.Since(start).Seconds() * float64(v.fps) * 100
}

// HandleInput applies one terminal event, returns false to quit
func (v *Viewer) HandleInput(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		w, h := ev.Size()
		v.cam.Resize(w, h)
		v.cursorX = min(v.cursorX, max(w-1, 0))
		v.cursorY = min(v.cursorY, max(h-1, 0))
		v.screen.Sync()
	case *tcell.EventKey:
		return v.handleKey(ev)
	case *tcell.EventMouse:
		v.handleMouse(ev)
	}
	return true
}

// EventTypes implements event.Handler
func (v *Viewer) EventTypes() []event.EventType {
	return []event.EventType{
		event.EventBodyMerged,
		event.EventFocusReassigned,
		event.EventNonFinite,
		event.EventScenarioLoaded,
	}
}

// HandleEvent implements event.Handler, turning events into status messages
func (v *Viewer) HandleEvent(ev event.SimEvent) {
	switch p := ev.Payload.(type) {
	case *event.MergePayload:
		v.flash(fmt.Sprintf("%s consumed %s", label(p.GainerName, p.Gainer), label(p.DestroyedName, p.Destroyed)))
	case *event.FocusPayload:
		if p.Current == 0 {
			v.flash("focus cleared")
		}
	case *event.NonFinitePayload:
		v.flash(fmt.Sprintf("non-finite state in %s, paused", label(p.Name, p.ID)))
	case *event.ScenarioPayload:
		v.flash(fmt.Sprintf("loaded %s (%s bodies)", p.Name, CountToString(p.Bodies)))
	}
}

func label(name string, id core.Entity) string {
	if name != "" {
		return name
	}
	return fmt.Sprintf("#%d", id)
}

func (v *Viewer) flash(msg string) {
	v.msgMu.Lock()
	v.message = msg
	v.messageAt = time.Now()
	v.msgMu.Unlock()
}

func (v *Viewer) currentMessage() string {
	v.msgMu.Lock()
	defer v.msgMu.Unlock()
	if time.Since(v.messageAt) > messageDuration {
		return ""
	}
	return v.message
}
