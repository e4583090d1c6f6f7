package vmath

import "math"

// OrbitalSpeed returns tangential speed for circular orbit
// gm: G*M of the central body, radius: distance from its center
func OrbitalSpeed(gm, radius float64) float64 {
	return math.Sqrt(gm / radius)
}

// EscapeSpeed returns the speed needed to leave the central body's well from radius
func EscapeSpeed(gm, radius float64) float64 {
	return math.Sqrt(2 * gm / radius)
}

// OrbitalInsert returns velocity vector for circular orbit insertion
// offset: position relative to center
// clockwise: orbit direction (Y up)
func OrbitalInsert(offset Vec2, gm float64, clockwise bool) Vec2 {
	radius := offset.Len()
	if radius == 0 {
		return Vec2{}
	}

	speed := OrbitalSpeed(gm, radius)

	// Tangent is perpendicular to radius
	t := offset.Perpendicular().Normalize()
	if clockwise {
		t = t.Neg()
	}

	return t.Scale(speed)
}

// CircleArea returns π·r²
func CircleArea(r float64) float64 {
	return math.Pi * r * r
}

// RadiusForArea is the inverse of CircleArea
func RadiusForArea(area float64) float64 {
	return math.Sqrt(area / math.Pi)
}
