package core

import (
	"fmt"
	"math"

	"github.com/lixenwraith/vi-gravity/parameter"
	"github.com/lixenwraith/vi-gravity/vmath"
)

// Photon travels at exactly C; only its direction changes
type Photon struct {
	Position vmath.Vec2
	// Angle is the direction of travel in radians
	Angle float64
	// Track is nil when tracking is disabled
	Track *Track

	id        Entity
	frequency float64
	removed   bool
}

// NewPhoton creates a photon heading at angle; frequency 0 selects DefaultPhotonFrequency
// trackLimit < 1 disables tracking
func NewPhoton(pos vmath.Vec2, angle, frequency float64, trackLimit int) (*Photon, error) {
	if frequency == 0 {
		frequency = parameter.DefaultPhotonFrequency
	}
	if frequency < 0 || math.IsNaN(frequency) || math.IsInf(frequency, 0) {
		return nil, fmt.Errorf("new photon: %w: %g", ErrInvalidFrequency, frequency)
	}
	p := &Photon{
		Position:  pos,
		Angle:     math.Mod(angle, 2*math.Pi),
		frequency: frequency,
	}
	if trackLimit > 0 {
		p.Track = NewTrack(trackLimit)
	}
	return p, nil
}

// NewPhotonToward creates a photon heading along dir
func NewPhotonToward(pos, dir vmath.Vec2, frequency float64, trackLimit int) (*Photon, error) {
	return NewPhoton(pos, dir.Angle(), frequency, trackLimit)
}

// Validate reports whether the photon can be inserted into a collection
func (p *Photon) Validate() error {
	if p.id != 0 {
		return ErrAlreadyInserted
	}
	if p.frequency <= 0 || math.IsNaN(p.frequency) || math.IsInf(p.frequency, 0) {
		return fmt.Errorf("%w: %g", ErrInvalidFrequency, p.frequency)
	}
	return nil
}

func (p *Photon) ID() Entity { return p.id }
func (p *Photon) Frequency() float64 { return p.frequency }
func (p *Photon) Removed() bool { return p.removed }

// Energy returns h·f
func (p *Photon) Energy() float64 {
	return parameter.PlanckConstant * p.frequency
}

// Mass returns the equivalent mass E/c², used only for lensing magnitude
func (p *Photon) Mass() float64 {
	return p.Energy() / parameter.C2
}

// Velocity returns the constant-speed velocity vector
func (p *Photon) Velocity() vmath.Vec2 {
	return vmath.FromAngle(p.Angle, parameter.C)
}

func (p *Photon) Finite() bool {
	return p.Position.IsFinite() && !math.IsNaN(p.Angle) && !math.IsInf(p.Angle, 0)
}
