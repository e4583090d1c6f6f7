package physics

import (
	"github.com/lixenwraith/vi-gravity/core"
	"github.com/lixenwraith/vi-gravity/vmath"
)

// Pair is a detected overlap, A precedes B in discovery order
type Pair struct {
	A, B *core.Body
}

// MergeResult records one resolved collision
type MergeResult struct {
	Gainer    core.Entity
	Destroyed core.Entity

	GainerName    string
	DestroyedName string
	DestroyedKind core.Kind

	// Mass is the gainer's mass after the merge
	Mass     float64
	Position vmath.Vec2
}

// Overlaps reports whether the centers are closer than the larger radius
func Overlaps(a, b *core.Body) bool {
	r := max(a.Radius(), b.Radius())
	return a.Position.DistSq(b.Position) < r*r
}

// DetectCollisions snapshots every overlapping grav↔grav and rock↔grav pair
// Rock↔rock pairs never collide
func DetectCollisions(c *core.Collection) []Pair {
	var pairs []Pair
	grav := c.Gravitational()
	n := grav.Len()
	for i := 0; i < n; i++ {
		a := grav.At(i)
		for j := i + 1; j < n; j++ {
			if b := grav.At(j); Overlaps(a, b) {
				pairs = append(pairs, Pair{a, b})
			}
		}
	}
	for _, a := range c.NonGravitational().All() {
		for _, b := range grav.All() {
			if Overlaps(a, b) {
				pairs = append(pairs, Pair{a, b})
			}
		}
	}
	return pairs
}

// Winner picks the gainer of a pair: heavier body, then higher rank, then A
func Winner(p Pair) (gainer, destroyed *core.Body) {
	a, b := p.A, p.B
	switch {
	case a.Mass() > b.Mass():
		return a, b
	case b.Mass() > a.Mass():
		return b, a
	case b.Kind().Rank() > a.Kind().Rank():
		return b, a
	default:
		return a, b
	}
}

// Merge folds destroyed into gainer: momentum, area and mass are conserved
// The caller removes destroyed from its collection
func Merge(gainer, destroyed *core.Body) error {
	gainer.ApplyImpulse(destroyed.Impulse())

	if gainer.Kind() != core.BlackHole {
		area := vmath.CircleArea(gainer.Radius()) + vmath.CircleArea(destroyed.Radius())
		if err := gainer.SetRadius(vmath.RadiusForArea(area)); err != nil {
			return err
		}
	}
	return gainer.SetMass(gainer.Mass() + destroyed.Mass())
}

// ResolveCollisions merges every snapshotted pair in order, skipping pairs
// whose member was already consumed earlier in the same pass
func ResolveCollisions(c *core.Collection, pairs []Pair) ([]MergeResult, error) {
	var results []MergeResult
	for _, p := range pairs {
		if p.A.Removed() || p.B.Removed() {
			continue
		}
		gainer, destroyed := Winner(p)
		res := MergeResult{
			Gainer:        gainer.ID(),
			Destroyed:     destroyed.ID(),
			GainerName:    gainer.Label(),
			DestroyedName: destroyed.Label(),
			DestroyedKind: destroyed.Kind(),
		}
		if err := Merge(gainer, destroyed); err != nil {
			return results, err
		}
		c.Remove(res.Destroyed)

		res.Mass = gainer.Mass()
		res.Position = gainer.Position
		results = append(results, res)
	}
	return results, nil
}
