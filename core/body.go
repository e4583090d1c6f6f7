package core

import (
	"fmt"
	"math"

	"github.com/lixenwraith/vi-gravity/parameter"
	"github.com/lixenwraith/vi-gravity/vmath"
)

// Entity is a stable handle into a Collection, 0 means none
type Entity uint64

// Body is a massive simulated object
// Kind, mass and radius are kept consistent through the setters: a black hole
// radius is always derived from its current mass
type Body struct {
	Kinetic

	// Name is optional, empty for anonymous bodies
	Name string

	// Track is nil when tracking is disabled
	Track *Track

	id      Entity
	kind    Kind
	mass    float64
	radius  float64
	removed bool
}

// BodyOption configures NewBody
type BodyOption func(*Body)

// WithName sets the display name
func WithName(name string) BodyOption {
	return func(b *Body) { b.Name = name }
}

// WithVelocity sets the initial velocity
func WithVelocity(v vmath.Vec2) BodyOption {
	return func(b *Body) { b.Velocity = v }
}

// WithTrack enables a position history with the given ceiling
func WithTrack(limit int) BodyOption {
	return func(b *Body) { b.Track = NewTrack(limit) }
}

// NewBody validates and creates a body; radius is ignored for black holes
func NewBody(kind Kind, mass, radius float64, pos vmath.Vec2, opts ...BodyOption) (*Body, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("new body: %w: %d", ErrInvalidKind, kind)
	}
	if !validMass(mass) {
		return nil, fmt.Errorf("new body: %w: %g", ErrInvalidMass, mass)
	}
	if kind != BlackHole && !validRadius(radius) {
		return nil, fmt.Errorf("new body: %w: %g", ErrInvalidRadius, radius)
	}

	b := &Body{
		kind:   kind,
		mass:   mass,
		radius: radius,
	}
	b.Position = pos
	for _, opt := range opts {
		opt(b)
	}
	if !validVelocity(b.Velocity) {
		return nil, fmt.Errorf("new body: %w: %v", ErrInvalidVelocity, b.Velocity)
	}
	b.deriveRadius()
	return b, nil
}

// MustBody is NewBody for static tables and tests; panics on invalid input
func MustBody(kind Kind, mass, radius float64, pos vmath.Vec2, opts ...BodyOption) *Body {
	b, err := NewBody(kind, mass, radius, pos, opts...)
	if err != nil {
		panic(err)
	}
	return b
}

// SchwarzschildRadius returns 2GM/c², the event horizon diameter convention used for rendering
func SchwarzschildRadius(mass float64) float64 {
	return 2 * parameter.G * mass / parameter.C2
}

func (b *Body) ID() Entity { return b.id }
func (b *Body) Kind() Kind { return b.kind }
func (b *Body) Mass() float64 { return b.mass }
func (b *Body) Radius() float64 { return b.radius }

// Removed reports whether the body was taken out of its collection
func (b *Body) Removed() bool { return b.removed }

// Label returns the name or a kind-based placeholder
func (b *Body) Label() string {
	if b.Name != "" {
		return b.Name
	}
	return fmt.Sprintf("%s#%d", b.kind, b.id)
}

// SetMass updates mass and re-derives a black hole radius atomically
func (b *Body) SetMass(m float64) error {
	if !validMass(m) {
		return fmt.Errorf("set mass: %w: %g", ErrInvalidMass, m)
	}
	b.mass = m
	b.deriveRadius()
	return nil
}

// SetRadius sets the physical radius; black hole radius cannot be set
func (b *Body) SetRadius(r float64) error {
	if b.kind == BlackHole {
		return ErrDerivedRadius
	}
	if !validRadius(r) {
		return fmt.Errorf("set radius: %w: %g", ErrInvalidRadius, r)
	}
	b.radius = r
	return nil
}

// setKind is reachable only through Collection.SetKind so partitions stay consistent
func (b *Body) setKind(k Kind) {
	b.kind = k
	b.deriveRadius()
}

// RenderRadius is the visible radius: the full event horizon for black holes
func (b *Body) RenderRadius() float64 {
	if b.kind == BlackHole {
		return b.radius * 2
	}
	return b.radius
}

// Impulse returns mass·velocity
func (b *Body) Impulse() vmath.Vec2 {
	return b.Velocity.Scale(b.mass)
}

// ApplyImpulse adds p/mass to velocity
func (b *Body) ApplyImpulse(p vmath.Vec2) {
	b.Velocity = b.Velocity.Add(p.Div(b.mass))
}

// Finite reports whether every kinetic field is finite
func (b *Body) Finite() bool {
	return b.Position.IsFinite() && b.Velocity.IsFinite() && b.Acceleration.IsFinite()
}

func (b *Body) deriveRadius() {
	if b.kind == BlackHole {
		b.radius = SchwarzschildRadius(b.mass) / 2
	}
}

// Validate reports whether the body can be inserted into a collection
func (b *Body) Validate() error {
	switch {
	case b.id != 0:
		return ErrAlreadyInserted
	case !b.kind.Valid():
		return fmt.Errorf("%w: %d", ErrInvalidKind, b.kind)
	case !validMass(b.mass):
		return fmt.Errorf("%w: %g", ErrInvalidMass, b.mass)
	case !validVelocity(b.Velocity):
		return fmt.Errorf("%w: %v", ErrInvalidVelocity, b.Velocity)
	}
	return nil
}

func validMass(m float64) bool {
	return m > 0 && !math.IsInf(m, 0) && !math.IsNaN(m)
}

func validVelocity(v vmath.Vec2) bool {
	return v.IsFinite() && v.LenSq() < parameter.C2
}

func validRadius(r float64) bool {
	return r >= 0 && !math.IsInf(r, 0) && !math.IsNaN(r)
}
