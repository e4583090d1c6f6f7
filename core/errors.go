package core

import "errors"

var (
	// ErrInvalidMass is returned for non-positive or non-finite mass
	ErrInvalidMass = errors.New("mass must be positive and finite")

	// ErrInvalidRadius is returned for negative or non-finite radius
	ErrInvalidRadius = errors.New("radius must be non-negative and finite")

	// ErrInvalidVelocity is returned for non-finite velocity or speed at or above C
	ErrInvalidVelocity = errors.New("velocity must be finite and below the speed of light")

	// ErrInvalidFrequency is returned for non-positive or non-finite photon frequency
	ErrInvalidFrequency = errors.New("frequency must be positive and finite")

	// ErrDerivedRadius is returned when setting the radius of a black hole
	ErrDerivedRadius = errors.New("black hole radius is derived from mass")

	// ErrInvalidKind is returned for kinds outside the enumeration
	ErrInvalidKind = errors.New("invalid body kind")

	// ErrAlreadyInserted is returned when inserting an entity that already has a handle
	ErrAlreadyInserted = errors.New("entity already belongs to a collection")

	// ErrNotFound is returned for unknown handles
	ErrNotFound = errors.New("entity not found")
)
