package engine

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/lixenwraith/vi-gravity/core"
	"github.com/lixenwraith/vi-gravity/event"
	"github.com/lixenwraith/vi-gravity/parameter"
	"github.com/lixenwraith/vi-gravity/physics"
	"github.com/lixenwraith/vi-gravity/vmath"
)

// Setup is a complete initial system, produced by scenario files and presets
type Setup struct {
	Name   string
	Source string

	Bodies  []*core.Body
	Photons []*core.Photon

	// Focus names the body to focus after loading, empty = none
	Focus string

	// Zero values keep the current setting
	TimeScale float64
	Steps     int
}

// Insert adds a body, attaching a track when body tracks are enabled
func (s *Simulation) Insert(b *core.Body) (core.Entity, error) {
	if b != nil && b.Track == nil && s.cfg.BodyTrackLength > 0 {
		b.Track = core.NewTrack(s.cfg.BodyTrackLength)
	}
	id, err := s.bodies.Insert(b)
	if err != nil {
		return 0, err
	}
	s.logger.Debug("body inserted", zap.String("name", b.Label()), zap.Stringer("kind", b.Kind()))
	s.emit(event.EventBodyInserted, &event.BodyPayload{ID: id, Name: b.Name, Kind: b.Kind(), Mass: b.Mass()})
	return id, nil
}

// Remove deletes a body by request; removing the focus clears it
func (s *Simulation) Remove(id core.Entity) bool {
	b, ok := s.bodies.Body(id)
	if !ok {
		return false
	}
	payload := &event.BodyPayload{ID: id, Name: b.Name, Kind: b.Kind(), Mass: b.Mass()}
	s.bodies.Remove(id)
	s.emit(event.EventBodyRemoved, payload)
	if s.focus == id {
		s.reassignFocus(0)
	}
	return true
}

// SetKind changes a body's kind, re-deriving black hole radius
func (s *Simulation) SetKind(id core.Entity, k core.Kind) error {
	return s.bodies.SetKind(id, k)
}

// InsertPhoton adds a photon, attaching a track when photon tracks are enabled
func (s *Simulation) InsertPhoton(p *core.Photon) (core.Entity, error) {
	if p != nil && p.Track == nil && s.cfg.PhotonTrackLength > 0 {
		p.Track = core.NewTrack(s.cfg.PhotonTrackLength)
	}
	return s.bodies.InsertPhoton(p)
}

// EmitPhoton adds one green-light photon travelling along dir
func (s *Simulation) EmitPhoton(pos, dir vmath.Vec2) (core.Entity, error) {
	p, err := core.NewPhotonToward(pos, dir, parameter.GreenLightFrequency, s.cfg.PhotonTrackLength)
	if err != nil {
		return 0, err
	}
	id, err := s.bodies.InsertPhoton(p)
	if err != nil {
		return 0, err
	}
	s.emit(event.EventPhotonsEmitted, &event.PhotonsPayload{Count: 1})
	return id, nil
}

// EmitRing adds PhotonRingCount photons radiating from pos, 2° apart
func (s *Simulation) EmitRing(pos vmath.Vec2) (int, error) {
	step := 2 * math.Pi / parameter.PhotonRingCount
	n := 0
	for i := range parameter.PhotonRingCount {
		p, err := core.NewPhoton(pos, float64(i)*step, parameter.GreenLightFrequency, s.cfg.PhotonTrackLength)
		if err != nil {
			return n, err
		}
		if _, err := s.bodies.InsertPhoton(p); err != nil {
			return n, err
		}
		n++
	}
	s.emit(event.EventPhotonsEmitted, &event.PhotonsPayload{Count: n})
	return n, nil
}

// EmitLine adds PhotonLineCount parallel photons heading -Y, centered on pos
// spacing is the gap between neighbours in meters
func (s *Simulation) EmitLine(pos vmath.Vec2, spacing float64) (int, error) {
	dir := vmath.V2(0, -1)
	start := pos.Sub(vmath.V2(spacing*float64(parameter.PhotonLineCount-1)/2, 0))
	n := 0
	for i := range parameter.PhotonLineCount {
		at := start.Add(vmath.V2(spacing*float64(i), 0))
		p, err := core.NewPhotonToward(at, dir, parameter.GreenLightFrequency, s.cfg.PhotonTrackLength)
		if err != nil {
			return n, err
		}
		if _, err := s.bodies.InsertPhoton(p); err != nil {
			return n, err
		}
		n++
	}
	s.emit(event.EventPhotonsEmitted, &event.PhotonsPayload{Count: n})
	return n, nil
}

// ClearPhotons drops every photon
func (s *Simulation) ClearPhotons() int {
	n := s.bodies.ClearPhotons()
	if n > 0 {
		s.emit(event.EventPhotonsCleared, &event.PhotonsPayload{Count: n})
	}
	return n
}

// DropBlackHole places a resting black hole of DroppedBlackHoleSolarMasses at pos
func (s *Simulation) DropBlackHole(pos vmath.Vec2) (core.Entity, error) {
	b, err := core.NewBody(core.BlackHole, parameter.DroppedBlackHoleSolarMasses*parameter.SolarMass, 0, pos,
		core.WithName("Super Massive Black Hole"))
	if err != nil {
		return 0, err
	}
	return s.Insert(b)
}

// Launch inserts a unit-mass moon at from, moving along the drag from→to
// relativeTo (0 = none) adds that body's velocity
func (s *Simulation) Launch(from, to vmath.Vec2, relativeTo core.Entity) (core.Entity, error) {
	var ref *core.Body
	if relativeTo != 0 {
		b, ok := s.bodies.Body(relativeTo)
		if !ok {
			return 0, fmt.Errorf("launch relative to %d: %w", relativeTo, core.ErrNotFound)
		}
		ref = b
	}
	vel := physics.LaunchVelocity(from, to, s.cfg.TimeScale, ref, s.cfg.MaxVelocity)
	b, err := core.NewBody(core.Moon, parameter.LaunchMass, physics.LaunchRadius(), from, core.WithVelocity(vel))
	if err != nil {
		return 0, err
	}
	return s.Insert(b)
}

// Reset replaces the whole system with setup and restarts time
// The setup is checked in full first; a rejected setup leaves the system untouched
func (s *Simulation) Reset(setup Setup) error {
	if err := s.checkSetup(setup); err != nil {
		return fmt.Errorf("reset %q: %w", setup.Name, err)
	}
	if setup.TimeScale != 0 {
		s.cfg.TimeScale = setup.TimeScale
		s.emit(event.EventTimeScaleChanged, &event.TimeScalePayload{TimeScale: setup.TimeScale})
	}
	if setup.Steps != 0 {
		s.cfg.Steps = setup.Steps
	}

	prevFocus := s.focus
	s.bodies.Clear()
	s.focus = 0
	s.frame = 0
	s.simTime = 0

	for _, b := range setup.Bodies {
		if _, err := s.Insert(b); err != nil {
			return fmt.Errorf("reset %q: %w", setup.Name, err)
		}
	}
	for _, p := range setup.Photons {
		if _, err := s.InsertPhoton(p); err != nil {
			return fmt.Errorf("reset %q: %w", setup.Name, err)
		}
	}
	if setup.Focus != "" {
		if err := s.FocusByName(setup.Focus); err != nil {
			return fmt.Errorf("reset %q: %w", setup.Name, err)
		}
	}
	if s.focus != prevFocus {
		s.notifyFocus(prevFocus, s.focus)
	}

	s.logger.Info("scenario loaded",
		zap.String("name", setup.Name),
		zap.String("source", setup.Source),
		zap.Int("bodies", s.bodies.Len()),
		zap.Int("photons", s.bodies.PhotonLen()),
	)
	s.emit(event.EventScenarioLoaded, &event.ScenarioPayload{
		Name:    setup.Name,
		Source:  setup.Source,
		Bodies:  s.bodies.Len(),
		Photons: s.bodies.PhotonLen(),
	})
	return nil
}

// checkSetup validates everything Reset would insert or apply
func (s *Simulation) checkSetup(setup Setup) error {
	if ts := setup.TimeScale; ts != 0 && (!(ts > 0) || math.IsInf(ts, 0)) {
		return fmt.Errorf("time scale %g: %w", ts, ErrInvalidConfig)
	}
	if setup.Steps < 0 {
		return fmt.Errorf("steps %d: %w", setup.Steps, ErrInvalidConfig)
	}

	bodies := make(map[*core.Body]struct{}, len(setup.Bodies))
	focusFound := setup.Focus == ""
	for i, b := range setup.Bodies {
		if b == nil {
			return fmt.Errorf("body %d: nil body", i)
		}
		if _, dup := bodies[b]; dup {
			return fmt.Errorf("body %s: %w", b.Label(), core.ErrAlreadyInserted)
		}
		bodies[b] = struct{}{}
		if err := b.Validate(); err != nil {
			return fmt.Errorf("body %s: %w", b.Label(), err)
		}
		focusFound = focusFound || b.Name == setup.Focus
	}

	photons := make(map[*core.Photon]struct{}, len(setup.Photons))
	for i, p := range setup.Photons {
		if p == nil {
			return fmt.Errorf("photon %d: nil photon", i)
		}
		if _, dup := photons[p]; dup {
			return fmt.Errorf("photon %d: %w", i, core.ErrAlreadyInserted)
		}
		photons[p] = struct{}{}
		if err := p.Validate(); err != nil {
			return fmt.Errorf("photon %d: %w", i, err)
		}
	}

	if !focusFound {
		return fmt.Errorf("focus %q: %w", setup.Focus, core.ErrNotFound)
	}
	return nil
}
