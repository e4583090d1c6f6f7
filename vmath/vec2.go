package vmath

import (
	"math"
)

// Vec2 is a float64 2D vector for world-space physics
// Value type: every operation returns a new vector, receivers are never modified
type Vec2 struct {
	X float64 `json:"x" toml:"x"`
	Y float64 `json:"y" toml:"y"`
}

// V2 is shorthand for Vec2{x, y}
func V2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// FromAngle returns a vector of length l pointing at angle rad (counter-clockwise from +X)
func FromAngle(rad, l float64) Vec2 {
	return Vec2{math.Cos(rad) * l, math.Sin(rad) * l}
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func (v Vec2) Div(s float64) Vec2 {
	return Vec2{v.X / s, v.Y / s}
}

func (v Vec2) Neg() Vec2 {
	return Vec2{-v.X, -v.Y}
}

// Dot returns x1*x2 + y1*y2
func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

// Cross returns the z component of the 3D cross product
func (v Vec2) Cross(o Vec2) float64 {
	return v.X*o.Y - v.Y*o.X
}

func (v Vec2) LenSq() float64 {
	return v.X*v.X + v.Y*v.Y
}

func (v Vec2) Len() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Angle returns direction in radians, atan2 convention, (0,0) yields 0
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// AngleRel returns the signed angle between v and reference
func (v Vec2) AngleRel(reference Vec2) float64 {
	return math.Atan2(v.Cross(reference), v.Dot(reference))
}

// Rotate rotates counter-clockwise by rad (Y up)
func (v Vec2) Rotate(rad float64) Vec2 {
	cos := math.Cos(rad)
	sin := math.Sin(rad)
	return Vec2{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
}

// Normalize returns unit vector, zero-safe
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	inv := 1.0 / l
	return Vec2{v.X * inv, v.Y * inv}
}

// SetLen returns a vector with v's direction and length l
// Zero vector stays zero
func (v Vec2) SetLen(l float64) Vec2 {
	cur := v.Len()
	if cur == 0 {
		return Vec2{}
	}
	return v.Scale(l / cur)
}

// Perpendicular returns vector rotated 90° counter-clockwise
func (v Vec2) Perpendicular() Vec2 {
	return Vec2{-v.Y, v.X}
}

func (v Vec2) Dist(o Vec2) float64 {
	return math.Hypot(o.X-v.X, o.Y-v.Y)
}

func (v Vec2) DistSq(o Vec2) float64 {
	dx := o.X - v.X
	dy := o.Y - v.Y
	return dx*dx + dy*dy
}

// IsFinite reports whether both components are neither NaN nor ±Inf
func (v Vec2) IsFinite() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) && !math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

// ApproxEqual compares component-wise within absolute tolerance eps
func (v Vec2) ApproxEqual(o Vec2, eps float64) bool {
	return math.Abs(v.X-o.X) <= eps && math.Abs(v.Y-o.Y) <= eps
}
