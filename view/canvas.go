package view

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-gravity/core"
	"github.com/lixenwraith/vi-gravity/vmath"
)

var (
	RgbBackground     = tcell.NewRGBColor(10, 10, 16)
	RgbText           = tcell.NewRGBColor(220, 220, 220)
	RgbTrack          = tcell.NewRGBColor(52, 91, 149)
	RgbPrediction     = tcell.NewRGBColor(200, 0, 255)
	RgbCenter         = tcell.NewRGBColor(255, 0, 0)
	RgbVelocity       = tcell.NewRGBColor(80, 80, 255)
	RgbAcceleration   = tcell.NewRGBColor(255, 60, 60)
	RgbBodyToBody     = tcell.NewRGBColor(128, 21, 21)
	RgbField          = tcell.NewRGBColor(200, 50, 50)
	RgbPhoton         = tcell.NewRGBColor(179, 102, 0)
	RgbShadow         = tcell.NewRGBColor(35, 35, 35)
	RgbPhotonRing     = tcell.NewRGBColor(255, 167, 0)
	RgbStableOrbit    = tcell.NewRGBColor(106, 0, 0)
	RgbCursor         = tcell.NewRGBColor(255, 165, 0)
	RgbCursorLaunch   = tcell.NewRGBColor(255, 255, 255)
	RgbStatusPaused   = tcell.NewRGBColor(255, 200, 0)
	RgbStatusCritical = tcell.NewRGBColor(255, 0, 0)
)

// kindColors are brightened for a dark terminal background
var kindColors = [...]tcell.Color{
	core.Rock:      tcell.NewRGBColor(140, 130, 130),
	core.Moon:      tcell.NewRGBColor(170, 120, 120),
	core.Planet:    tcell.NewRGBColor(84, 153, 15),
	core.Star:      tcell.NewRGBColor(255, 210, 60),
	core.BlackHole: tcell.NewRGBColor(0, 0, 0),
}

// kindGlyphs mark bodies smaller than a cell
var kindGlyphs = [...]rune{
	core.Rock:      '·',
	core.Moon:      'o',
	core.Planet:    'O',
	core.Star:      '*',
	core.BlackHole: '@',
}

func kindStyle(k core.Kind) tcell.Style {
	st := tcell.StyleDefault.Background(RgbBackground)
	if !k.Valid() {
		return st.Foreground(RgbText)
	}
	if k == core.BlackHole {
		return st.Foreground(RgbPhotonRing).Bold(true)
	}
	return st.Foreground(kindColors[k])
}

func kindGlyph(k core.Kind) rune {
	if !k.Valid() {
		return '?'
	}
	return kindGlyphs[k]
}

// canvas draws world geometry through a camera onto a screen
type canvas struct {
	screen tcell.Screen
	cam    Camera
}

func (c canvas) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < c.cam.Width && y < c.cam.Height
}

func (c canvas) set(x, y int, r rune, st tcell.Style) {
	if c.inside(x, y) {
		c.screen.SetContent(x, y, r, nil, st)
	}
}

// text writes s left to right, clipped at the right edge
func (c canvas) text(x, y int, s string, st tcell.Style) int {
	for _, r := range s {
		c.set(x, y, r, st)
		x++
	}
	return x
}

// line draws a Bresenham segment between world points
// Segments far outside the viewport are skipped
func (c canvas) line(a, b vmath.Vec2, r rune, st tcell.Style) {
	x0, y0 := c.cam.ToScreen(a)
	x1, y1 := c.cam.ToScreen(b)
	c.lineCells(x0, y0, x1, y1, r, st)
}

func (c canvas) lineCells(x0, y0, x1, y1 int, r rune, st tcell.Style) {
	w, h := c.cam.Width, c.cam.Height
	if (x0 < 0 && x1 < 0) || (y0 < 0 && y1 < 0) || (x0 >= w && x1 >= w) || (y0 >= h && y1 >= h) {
		return
	}
	// Guard against huge spans when a point is projected far off-screen
	if abs(x1-x0) > 4*(w+h) || abs(y1-y0) > 4*(w+h) {
		return
	}

	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		c.set(x0, y0, r, st)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// polyline connects consecutive points
func (c canvas) polyline(pts []vmath.Vec2, r rune, st tcell.Style) {
	for i := 1; i < len(pts); i++ {
		c.line(pts[i-1], pts[i], r, st)
	}
}

// arrow is a line with a head marker at the tip
func (c canvas) arrow(from, to vmath.Vec2, st tcell.Style) {
	c.line(from, to, '·', st)
	x, y := c.cam.ToScreen(to)
	c.set(x, y, arrowHead(to.Sub(from)), st)
}

func arrowHead(d vmath.Vec2) rune {
	a := math.Mod(d.Angle()+2*math.Pi, 2*math.Pi)
	heads := [...]rune{'→', '↗', '↑', '↖', '←', '↙', '↓', '↘'}
	return heads[int(math.Round(a/(math.Pi/4)))%len(heads)]
}

// circle outlines a world-space circle
func (c canvas) circle(center vmath.Vec2, radius float64, r rune, st tcell.Style) {
	rc := c.cam.CellsX(radius)
	if rc < 1 {
		return
	}
	if rc > float64(4*(c.cam.Width+c.cam.Height)) {
		return
	}
	n := int(math.Ceil(2 * math.Pi * rc * 2))
	for i := range n {
		p := center.Add(vmath.FromAngle(2*math.Pi*float64(i)/float64(n), radius))
		x, y := c.cam.ToScreen(p)
		c.set(x, y, r, st)
	}
}

// disc fills every cell whose center lies within radius
// Discs below one cell collapse to a single glyph
func (c canvas) disc(center vmath.Vec2, radius float64, glyph rune, st tcell.Style) {
	cx, cy := c.cam.ToScreen(center)
	rx := c.cam.CellsX(radius)
	if rx < 1 {
		c.set(cx, cy, glyph, st)
		return
	}
	ry := rx / CellAspect
	x0 := max(0, int(math.Floor(float64(cx)-rx)))
	x1 := min(c.cam.Width-1, int(math.Ceil(float64(cx)+rx)))
	y0 := max(0, int(math.Floor(float64(cy)-ry)))
	y1 := min(c.cam.Height-1, int(math.Ceil(float64(cy)+ry)))
	rSq := radius * radius
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if c.cam.ToWorld(x, y).DistSq(center) <= rSq {
				c.set(x, y, '█', st)
			}
		}
	}
	c.set(cx, cy, glyph, st.Reverse(true))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
