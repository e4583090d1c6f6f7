package engine

import (
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lixenwraith/vi-gravity/core"
	"github.com/lixenwraith/vi-gravity/event"
	"github.com/lixenwraith/vi-gravity/parameter"
	"github.com/lixenwraith/vi-gravity/physics"
	"github.com/lixenwraith/vi-gravity/vmath"
)

var validate = validator.New()

// Config holds the tunables of one simulation
type Config struct {
	TimeScale         float64 `validate:"gt=0"`
	Steps             int     `validate:"min=1"`
	MaxVelocity       float64 `validate:"gt=0,lt=299792458"`
	TrackInterval     int     `validate:"min=1"`
	BodyTrackLength   int     `validate:"min=0"` // 0 disables body tracks
	PhotonTrackLength int     `validate:"min=0"` // 0 disables photon tracks
	EventQueueSize    int     `validate:"min=1"`
}

// DefaultConfig mirrors the parameter package defaults
func DefaultConfig() Config {
	return Config{
		TimeScale:         parameter.DefaultTimeScale,
		Steps:             parameter.DefaultSteps,
		MaxVelocity:       parameter.MaxVelocity,
		TrackInterval:     parameter.TrackInterval,
		BodyTrackLength:   parameter.BodyTrackLength,
		PhotonTrackLength: parameter.PhotonTrackLength,
		EventQueueSize:    parameter.EventQueueSize,
	}
}

// Validate checks field bounds; NaN is rejected explicitly since it passes every comparison tag
func (c Config) Validate() error {
	if math.IsNaN(c.TimeScale) || math.IsInf(c.TimeScale, 0) || math.IsNaN(c.MaxVelocity) {
		return fmt.Errorf("%w: non-finite value", ErrInvalidConfig)
	}
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// FrameStats summarizes one AdvanceFrame call
type FrameStats struct {
	Frame    int64
	Substeps int
	StepSize float64
	Merges   int
	Bodies   int
	Photons  int
	SimTime  float64
	Duration time.Duration
	// EventsDropped is the event queue's cumulative eviction count
	EventsDropped uint64
}

// FrameObserver receives stats after every frame
// Called synchronously; must not call back into the Simulation
type FrameObserver interface {
	ObserveFrame(FrameStats)
}

// FocusHook is called when focus changes without a direct SetFocus
// (the focused body was merged away or removed)
type FocusHook func(previous, current core.Entity)

// Option configures New
type Option func(*Simulation)

// WithLogger sets the structured logger, nil keeps the no-op logger
func WithLogger(l *zap.Logger) Option {
	return func(s *Simulation) {
		if l != nil {
			s.logger = l
		}
	}
}

// Simulation owns the body collection and advances it frame by frame
// Not safe for concurrent use; Loop serializes access through RunSafe
type Simulation struct {
	cfg      Config
	bodies   *core.Collection
	queue    *event.Queue
	recorder Recorder
	logger   *zap.Logger
	runID    uuid.UUID

	focus      core.Entity
	focusHooks []FocusHook
	observers  []FrameObserver

	frame   int64
	simTime float64
}

// New validates cfg and creates an empty simulation
func New(cfg Config, opts ...Option) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Simulation{
		cfg:    cfg,
		bodies: core.NewCollection(),
		queue:  event.NewQueueSize(cfg.EventQueueSize),
		logger: zap.NewNop(),
		runID:  uuid.New(),
	}
	s.recorder = Recorder{
		BodyLimit:   cfg.BodyTrackLength,
		PhotonLimit: cfg.PhotonTrackLength,
		Interval:    cfg.TrackInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(zap.String("run_id", s.runID.String()))
	return s, nil
}

func (s *Simulation) RunID() uuid.UUID { return s.runID }

func (s *Simulation) Config() Config { return s.cfg }

func (s *Simulation) Frame() int64 { return s.frame }

// SimTime is simulated seconds elapsed since the last Reset
func (s *Simulation) SimTime() float64 { return s.simTime }

func (s *Simulation) Queue() *event.Queue { return s.queue }

// Bodies exposes the collection for read access; mutate through Simulation methods
func (s *Simulation) Bodies() *core.Collection { return s.bodies }

func (s *Simulation) Logger() *zap.Logger { return s.logger }

// AddObserver registers a per-frame stats observer
func (s *Simulation) AddObserver(o FrameObserver) {
	s.observers = append(s.observers, o)
}

// Step advances one frame with the configured time scale and steps
func (s *Simulation) Step(frameInterval float64) (int, error) {
	return s.AdvanceFrame(frameInterval, s.cfg.TimeScale, s.cfg.Steps)
}

// AdvanceFrame simulates frameInterval·timeScale seconds in substeps:
// gravity, integration, then collisions per substep, tracks after the last one
// Returns the substep count. Non-finite state after the frame is reported as
// *NonFiniteError and left in place for inspection
func (s *Simulation) AdvanceFrame(frameInterval, timeScale float64, desiredSteps int) (int, error) {
	span := frameInterval * timeScale
	if !(frameInterval > 0) || !(timeScale > 0) || math.IsInf(span, 0) {
		return 0, fmt.Errorf("advance frame (interval=%g, scale=%g): %w", frameInterval, timeScale, ErrInvalidFrame)
	}

	start := time.Now()
	n := ActualSteps(frameInterval, timeScale, desiredSteps)
	dt := span / float64(n)

	merges := 0
	for range n {
		physics.AccumulateGravity(s.bodies, dt)
		physics.IntegrateAll(s.bodies, dt, s.cfg.MaxVelocity)

		pairs := physics.DetectCollisions(s.bodies)
		if len(pairs) == 0 {
			continue
		}
		results, err := physics.ResolveCollisions(s.bodies, pairs)
		s.afterMerges(results)
		merges += len(results)
		if err != nil {
			return n, fmt.Errorf("resolve collisions: %w", err)
		}
	}

	s.frame++
	s.simTime += span
	if s.recorder.Due(s.frame) {
		s.recorder.Sample(s.bodies)
	}

	stats := FrameStats{
		Frame:    s.frame,
		Substeps: n,
		StepSize: dt,
		Merges:   merges,
		Bodies:   s.bodies.Len(),
		Photons:  s.bodies.PhotonLen(),
		SimTime:  s.simTime,
		Duration: time.Since(start),

		EventsDropped: s.queue.Dropped(),
	}
	for _, o := range s.observers {
		o.ObserveFrame(stats)
	}

	if err := s.checkFinite(); err != nil {
		return n, err
	}
	return n, nil
}

// afterMerges moves focus off consumed bodies and publishes the merges
func (s *Simulation) afterMerges(results []physics.MergeResult) {
	for _, r := range results {
		s.logger.Debug("consumed",
			zap.String("destroyed", r.DestroyedName),
			zap.Stringer("kind", r.DestroyedKind),
			zap.String("gainer", r.GainerName),
			zap.Float64("mass", r.Mass),
		)
		s.emit(event.EventBodyMerged, &event.MergePayload{
			Gainer:        r.Gainer,
			Destroyed:     r.Destroyed,
			GainerName:    r.GainerName,
			DestroyedName: r.DestroyedName,
			DestroyedKind: r.DestroyedKind,
			Mass:          r.Mass,
			X:             r.Position.X,
			Y:             r.Position.Y,
		})
		if s.focus != 0 && s.focus == r.Destroyed {
			s.reassignFocus(r.Gainer)
		}
	}
}

func (s *Simulation) checkFinite() error {
	for _, b := range s.bodies.Bodies().All() {
		if !b.Finite() {
			return s.reportNonFinite(&NonFiniteError{ID: b.ID(), Name: b.Label(), Frame: s.frame})
		}
	}
	for _, p := range s.bodies.Photons().All() {
		if !p.Finite() {
			return s.reportNonFinite(&NonFiniteError{ID: p.ID(), Name: "photon", Photon: true, Frame: s.frame})
		}
	}
	return nil
}

func (s *Simulation) reportNonFinite(err *NonFiniteError) error {
	s.logger.Warn("non-finite state", zap.Error(err))
	s.emit(event.EventNonFinite, &event.NonFinitePayload{ID: err.ID, Name: err.Name, Photon: err.Photon})
	return err
}

func (s *Simulation) emit(t event.EventType, payload any) {
	s.queue.Push(event.SimEvent{
		Type:      t,
		Payload:   payload,
		Frame:     s.frame,
		SimTime:   s.simTime,
		Timestamp: time.Now(),
	})
}

// TimeScale returns simulated seconds per real second
func (s *Simulation) TimeScale() float64 { return s.cfg.TimeScale }

// SetTimeScale changes the time scale; it must be positive and finite
func (s *Simulation) SetTimeScale(ts float64) error {
	if !(ts > 0) || math.IsInf(ts, 0) {
		return fmt.Errorf("set time scale %g: %w", ts, ErrInvalidConfig)
	}
	s.cfg.TimeScale = ts
	s.emit(event.EventTimeScaleChanged, &event.TimeScalePayload{TimeScale: ts})
	return nil
}

// ScaleTime multiplies (up) or divides the time scale by the keypress step
func (s *Simulation) ScaleTime(up, fast bool) float64 {
	step := parameter.TimeScaleStep
	if fast {
		step = parameter.TimeScaleStepFast
	}
	ts := s.cfg.TimeScale
	if up {
		ts *= step
	} else {
		ts /= step
	}
	if err := s.SetTimeScale(ts); err != nil {
		return s.cfg.TimeScale
	}
	return ts
}

// SetSteps changes the desired substeps per frame
func (s *Simulation) SetSteps(n int) error {
	if n < 1 {
		return fmt.Errorf("set steps %d: %w", n, ErrInvalidConfig)
	}
	s.cfg.Steps = n
	return nil
}

// SetTrackLengths changes the track ceilings for bodies and photons
// Existing tracks are resized; 0 stops attaching tracks to new entities but
// leaves existing ones as they are
func (s *Simulation) SetTrackLengths(body, photon int) error {
	if body < 0 || photon < 0 {
		return fmt.Errorf("set track lengths %d/%d: %w", body, photon, ErrInvalidConfig)
	}
	s.cfg.BodyTrackLength = body
	s.cfg.PhotonTrackLength = photon
	s.recorder.BodyLimit = body
	s.recorder.PhotonLimit = photon
	s.recorder.Resize(s.bodies)
	return nil
}

// ClearTracks drops every recorded sample, keeping the tracks attached
func (s *Simulation) ClearTracks() {
	s.recorder.ClearTracks(s.bodies)
}

// ActualSteps is the substep count the next Step would use at frameInterval
func (s *Simulation) ActualSteps(frameInterval float64) int {
	return ActualSteps(frameInterval, s.cfg.TimeScale, s.cfg.Steps)
}

// FieldAt is the gravitational acceleration at p
func (s *Simulation) FieldAt(p vmath.Vec2) vmath.Vec2 {
	return physics.FieldAt(s.bodies, p)
}

// PullOn is the net gravitational force on body id
func (s *Simulation) PullOn(id core.Entity) (vmath.Vec2, error) {
	b, ok := s.bodies.Body(id)
	if !ok {
		return vmath.Vec2{}, fmt.Errorf("pull on %d: %w", id, core.ErrNotFound)
	}
	return physics.PullOn(s.bodies, b), nil
}

// CenterOfMass of the gravitational bodies, false if there are none
func (s *Simulation) CenterOfMass() (vmath.Vec2, bool) {
	return physics.CenterOfMass(s.bodies)
}
