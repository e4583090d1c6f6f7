package engine

import (
	"time"

	"github.com/lixenwraith/vi-gravity/core"
	"github.com/lixenwraith/vi-gravity/vmath"
)

// Snapshot is an immutable copy of simulation state for readers outside the loop
type Snapshot struct {
	RunID        string         `json:"run_id"`
	Frame        int64          `json:"frame"`
	SimTime      float64        `json:"sim_time"`
	TimeScale    float64        `json:"time_scale"`
	Steps        int            `json:"steps"`
	Focus        core.Entity    `json:"focus"`
	CenterOfMass *vmath.Vec2    `json:"center_of_mass,omitempty"`
	Bodies       []BodyState    `json:"bodies"`
	Photons      []PhotonState  `json:"photons"`
	Totals       SnapshotTotals `json:"totals"`
	TakenAt      time.Time      `json:"taken_at"`
}

// SnapshotTotals aggregates over the captured bodies
type SnapshotTotals struct {
	Mass     float64    `json:"mass"`
	Momentum vmath.Vec2 `json:"momentum"`
}

// BodyState is one body inside a Snapshot
type BodyState struct {
	ID       core.Entity  `json:"id"`
	Name     string       `json:"name,omitempty"`
	Kind     core.Kind    `json:"kind"`
	Mass     float64      `json:"mass"`
	Radius   float64      `json:"radius"`
	Position vmath.Vec2   `json:"position"`
	Velocity vmath.Vec2   `json:"velocity"`
	Speed    float64      `json:"speed"`
	Track    []vmath.Vec2 `json:"track,omitempty"`
}

// PhotonState is one photon inside a Snapshot
type PhotonState struct {
	ID        core.Entity `json:"id"`
	Position  vmath.Vec2  `json:"position"`
	Angle     float64     `json:"angle"`
	Frequency float64     `json:"frequency"`
}

// Snapshot copies current state; withTracks includes track points
func (s *Simulation) Snapshot(withTracks bool) *Snapshot {
	snap := &Snapshot{
		RunID:     s.runID.String(),
		Frame:     s.frame,
		SimTime:   s.simTime,
		TimeScale: s.cfg.TimeScale,
		Steps:     s.cfg.Steps,
		Focus:     s.focus,
		Bodies:    make([]BodyState, 0, s.bodies.Len()),
		Photons:   make([]PhotonState, 0, s.bodies.PhotonLen()),
		TakenAt:   time.Now(),
	}
	if com, ok := s.CenterOfMass(); ok {
		snap.CenterOfMass = &com
	}

	for _, b := range s.bodies.Bodies().All() {
		st := BodyState{
			ID:       b.ID(),
			Name:     b.Name,
			Kind:     b.Kind(),
			Mass:     b.Mass(),
			Radius:   b.Radius(),
			Position: b.Position,
			Velocity: b.Velocity,
			Speed:    b.Velocity.Len(),
		}
		if withTracks && b.Track != nil {
			st.Track = b.Track.Points()
		}
		snap.Bodies = append(snap.Bodies, st)
		snap.Totals.Mass += b.Mass()
		snap.Totals.Momentum = snap.Totals.Momentum.Add(b.Impulse())
	}
	for _, p := range s.bodies.Photons().All() {
		snap.Photons = append(snap.Photons, PhotonState{
			ID:        p.ID(),
			Position:  p.Position,
			Angle:     p.Angle,
			Frequency: p.Frequency(),
		})
	}
	return snap
}

// Body finds a body by handle
func (snap *Snapshot) Body(id core.Entity) (BodyState, bool) {
	for _, b := range snap.Bodies {
		if b.ID == id {
			return b, true
		}
	}
	return BodyState{}, false
}
