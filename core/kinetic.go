package core

import "github.com/lixenwraith/vi-gravity/vmath"

type Kinetic struct {
	// Position in meters
	Position vmath.Vec2
	// Velocity in m/s
	Velocity vmath.Vec2
	// Acceleration holds the velocity increment accumulated for the current substep
	// (a·dt), zeroed at the start of every solver pass
	Acceleration vmath.Vec2
}
