package view

import (
	"math"

	"github.com/lixenwraith/vi-gravity/vmath"
)

const (
	// DefaultZoom is meters per cell column on startup
	DefaultZoom = 1e9

	// CellAspect is the height of a terminal cell relative to its width
	CellAspect = 2.0

	MinZoom = 1e-3
	MaxZoom = 1e16

	zoomStep = 1.25
)

// Camera maps world meters onto terminal cells, Y up
// Zoom is meters per column; a row spans Zoom*CellAspect meters
type Camera struct {
	Center vmath.Vec2
	Zoom   float64
	Width  int
	Height int
}

// NewCamera centers on the origin at DefaultZoom
func NewCamera(width, height int) Camera {
	return Camera{Zoom: DefaultZoom, Width: width, Height: height}
}

// Resize updates the viewport dimensions
func (c *Camera) Resize(width, height int) {
	c.Width, c.Height = width, height
}

// ToScreenF returns fractional cell coordinates of a world point
func (c Camera) ToScreenF(p vmath.Vec2) (float64, float64) {
	x := float64(c.Width)/2 + (p.X-c.Center.X)/c.Zoom
	y := float64(c.Height)/2 - (p.Y-c.Center.Y)/(c.Zoom*CellAspect)
	return x, y
}

// ToScreen returns the cell containing p
func (c Camera) ToScreen(p vmath.Vec2) (int, int) {
	x, y := c.ToScreenF(p)
	return int(math.Floor(x)), int(math.Floor(y))
}

// ToWorld returns the world point at the center of cell (x, y)
func (c Camera) ToWorld(x, y int) vmath.Vec2 {
	fx := float64(x) + 0.5 - float64(c.Width)/2
	fy := float64(y) + 0.5 - float64(c.Height)/2
	return vmath.V2(c.Center.X+fx*c.Zoom, c.Center.Y-fy*c.Zoom*CellAspect)
}

// Visible reports whether p falls inside the viewport
func (c Camera) Visible(p vmath.Vec2) bool {
	x, y := c.ToScreen(p)
	return x >= 0 && y >= 0 && x < c.Width && y < c.Height
}

// CellsX converts a world length to columns
func (c Camera) CellsX(meters float64) float64 {
	return meters / c.Zoom
}

// ZoomIn magnifies around the camera center
func (c *Camera) ZoomIn() {
	c.setZoom(c.Zoom / zoomStep)
}

// ZoomOut shrinks around the camera center
func (c *Camera) ZoomOut() {
	c.setZoom(c.Zoom * zoomStep)
}

// ZoomAt changes zoom by factor while keeping the world point under (x, y) fixed
func (c *Camera) ZoomAt(x, y int, factor float64) {
	before := c.ToWorld(x, y)
	c.setZoom(c.Zoom * factor)
	after := c.ToWorld(x, y)
	c.Center = c.Center.Add(before.Sub(after))
}

// Pan moves the view by whole cells, positive dy moves down
func (c *Camera) Pan(dx, dy int) {
	c.Center = c.Center.Add(vmath.V2(float64(dx)*c.Zoom, -float64(dy)*c.Zoom*CellAspect))
}

// LookAt centers on p
func (c *Camera) LookAt(p vmath.Vec2) {
	c.Center = p
}

func (c *Camera) setZoom(z float64) {
	c.Zoom = math.Max(MinZoom, math.Min(MaxZoom, z))
}
