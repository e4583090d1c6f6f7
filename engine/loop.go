package engine

import (
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/vi-gravity/core"
	"github.com/lixenwraith/vi-gravity/event"
)

// Loop advances a Simulation on a fixed wall-clock tick
// Owns the simulation lock: every other goroutine goes through RunSafe
// Publishes a track-less Snapshot after each frame for lock-free readers
type Loop struct {
	sim    *Simulation
	router *event.Router
	clock  Clock
	logger *zap.Logger

	mu sync.Mutex

	tickInterval time.Duration
	lastTick     time.Time

	paused  atomic.Bool
	latest  atomic.Pointer[Snapshot]
	lastErr atomic.Pointer[error]
	frames  atomic.Uint64

	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
	running  atomic.Bool
}

// NewLoop creates a loop running at fps frames per second
func NewLoop(sim *Simulation, fps int, clock Clock) *Loop {
	if fps < 1 {
		fps = 1
	}
	if clock == nil {
		clock = SystemClock{}
	}
	l := &Loop{
		sim:          sim,
		router:       event.NewRouter(sim.Queue()),
		clock:        clock,
		logger:       sim.Logger(),
		tickInterval: time.Second / time.Duration(fps),
		stopChan:     make(chan struct{}),
	}
	l.lastTick = clock.Now()
	l.latest.Store(sim.Snapshot(false))
	return l
}

// RegisterEventHandler adds an event handler to the router, must be called before Start()
func (l *Loop) RegisterEventHandler(h event.Handler) {
	l.router.Register(h)
}

// RunSafe executes fn while holding the simulation lock, then republishes the
// snapshot and dispatches queued events. Handlers run under the same lock and
// must not call RunSafe
func (l *Loop) RunSafe(fn func(*Simulation)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.sim)
	l.latest.Store(l.sim.Snapshot(false))
	l.router.DispatchAll()
}

// Read executes fn under the simulation lock without publishing or dispatching
// fn must not mutate the simulation
func (l *Loop) Read(fn func(*Simulation)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fn(l.sim)
}

// Latest returns the most recently published snapshot
func (l *Loop) Latest() *Snapshot {
	return l.latest.Load()
}

// LastError returns the error that paused the loop, nil if none
func (l *Loop) LastError() error {
	if p := l.lastErr.Load(); p != nil {
		return *p
	}
	return nil
}

// Frames returns the number of frames advanced by this loop
func (l *Loop) Frames() uint64 { return l.frames.Load() }

func (l *Loop) Pause()         { l.paused.Store(true) }
func (l *Loop) Resume()        { l.paused.Store(false) }
func (l *Loop) IsPaused() bool { return l.paused.Load() }

// Start begins the loop
func (l *Loop) Start() {
	if l.running.CompareAndSwap(false, true) {
		l.wg.Add(1)
		// core.Go recovers panics with terminal cleanup
		core.Go(l.run)
	}
}

// Stop halts the loop and waits for the current frame to finish
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		if l.running.CompareAndSwap(true, false) {
			close(l.stopChan)
			l.wg.Wait()
		}
	})
}

func (l *Loop) run() {
	defer l.wg.Done()

	ticker := time.NewTicker(l.tickInterval)
	defer ticker.Stop()

	l.lastTick = l.clock.Now()
	for {
		select {
		case <-l.stopChan:
			return
		case <-ticker.C:
			l.Tick()
		}
	}
}

// Tick advances one frame using the wall time elapsed since the previous tick
// Paused loops only reset the tick reference
func (l *Loop) Tick() {
	now := l.clock.Now()
	wall := now.Sub(l.lastTick).Seconds()
	l.lastTick = now
	if l.paused.Load() {
		return
	}

	l.mu.Lock()
	_, err := l.sim.Step(FrameInterval(wall))
	l.latest.Store(l.sim.Snapshot(false))
	l.router.DispatchAll()
	l.mu.Unlock()

	l.frames.Add(1)

	if err != nil {
		l.lastErr.Store(&err)
		if errors.Is(err, ErrNonFinite) {
			// Keep the broken state observable instead of advancing it further
			l.Pause()
			l.logger.Warn("loop paused", zap.Error(err))
			return
		}
		l.logger.Error("frame failed", zap.Error(err))
	}
}
