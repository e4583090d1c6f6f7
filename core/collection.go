package core

import (
	"fmt"
	"slices"

	"github.com/lixenwraith/vi-gravity/vmath"
)

// Collection owns every body and photon and keeps the partition index
//
// Invariants (after every mutation):
//   - gravitational ∪ nonGravitational == bodies, disjoint, membership by Kind
//   - bodies is stably sorted by descending Kind rank
//   - photons never mix with bodies
//
// Mutation goes only through Insert/InsertPhoton/Remove/RemovePhoton/SetKind/
// ClearPhotons/Clear. Not safe for concurrent use.
type Collection struct {
	nextID Entity

	index       map[Entity]*Body
	photonIndex map[Entity]*Photon

	bodies           []*Body
	gravitational    []*Body
	nonGravitational []*Body
	photons          []*Photon
}

func NewCollection() *Collection {
	return &Collection{
		index:       make(map[Entity]*Body),
		photonIndex: make(map[Entity]*Photon),
	}
}

// Insert adds a body and returns its handle
func (c *Collection) Insert(b *Body) (Entity, error) {
	if b == nil {
		return 0, fmt.Errorf("insert: nil body")
	}
	if err := b.Validate(); err != nil {
		return 0, fmt.Errorf("insert %s: %w", b.Label(), err)
	}

	c.nextID++
	b.id = c.nextID
	b.removed = false
	c.index[b.id] = b

	c.insertSorted(b)
	if b.kind.Gravitational() {
		c.gravitational = append(c.gravitational, b)
	} else {
		c.nonGravitational = append(c.nonGravitational, b)
	}
	return b.id, nil
}

// InsertPhoton adds a photon and returns its handle
func (c *Collection) InsertPhoton(p *Photon) (Entity, error) {
	if p == nil {
		return 0, fmt.Errorf("insert photon: nil photon")
	}
	if err := p.Validate(); err != nil {
		return 0, fmt.Errorf("insert photon: %w", err)
	}

	c.nextID++
	p.id = c.nextID
	p.removed = false
	c.photonIndex[p.id] = p
	c.photons = append(c.photons, p)
	return p.id, nil
}

// Remove deletes the body with handle id, returns false if absent
func (c *Collection) Remove(id Entity) bool {
	b, ok := c.index[id]
	if !ok {
		return false
	}
	delete(c.index, id)
	c.bodies = deleteBody(c.bodies, b)
	if b.kind.Gravitational() {
		c.gravitational = deleteBody(c.gravitational, b)
	} else {
		c.nonGravitational = deleteBody(c.nonGravitational, b)
	}
	b.removed = true
	b.id = 0
	return true
}

// RemovePhoton deletes the photon with handle id, returns false if absent
func (c *Collection) RemovePhoton(id Entity) bool {
	p, ok := c.photonIndex[id]
	if !ok {
		return false
	}
	delete(c.photonIndex, id)
	if i := slices.Index(c.photons, p); i >= 0 {
		c.photons = slices.Delete(c.photons, i, i+1)
	}
	p.removed = true
	p.id = 0
	return true
}

// SetKind changes a body's kind, moving it between partitions and re-sorting
func (c *Collection) SetKind(id Entity, k Kind) error {
	if !k.Valid() {
		return fmt.Errorf("set kind: %w: %d", ErrInvalidKind, k)
	}
	b, ok := c.index[id]
	if !ok {
		return fmt.Errorf("set kind %d: %w", id, ErrNotFound)
	}
	if b.kind == k {
		return nil
	}

	wasGrav := b.kind.Gravitational()
	c.bodies = deleteBody(c.bodies, b)
	b.setKind(k)
	c.insertSorted(b)

	if wasGrav != k.Gravitational() {
		if wasGrav {
			c.gravitational = deleteBody(c.gravitational, b)
			c.nonGravitational = append(c.nonGravitational, b)
		} else {
			c.nonGravitational = deleteBody(c.nonGravitational, b)
			c.gravitational = append(c.gravitational, b)
		}
	}
	return nil
}

// ClearPhotons removes every photon, returns how many were removed
func (c *Collection) ClearPhotons() int {
	n := len(c.photons)
	for _, p := range c.photons {
		p.removed = true
		p.id = 0
	}
	c.photons = nil
	clear(c.photonIndex)
	return n
}

// Clear removes everything; handles are not reused
func (c *Collection) Clear() {
	for _, b := range c.bodies {
		b.removed = true
		b.id = 0
	}
	c.ClearPhotons()
	c.bodies = nil
	c.gravitational = nil
	c.nonGravitational = nil
	clear(c.index)
}

func (c *Collection) Body(id Entity) (*Body, bool) {
	b, ok := c.index[id]
	return b, ok
}

func (c *Collection) Photon(id Entity) (*Photon, bool) {
	p, ok := c.photonIndex[id]
	return p, ok
}

// Contains reports whether id is a live body or photon
func (c *Collection) Contains(id Entity) bool {
	if _, ok := c.index[id]; ok {
		return true
	}
	_, ok := c.photonIndex[id]
	return ok
}

// Bodies is the full list sorted by descending rank (paint order is reverse)
func (c *Collection) Bodies() BodyView { return BodyView{c.bodies} }

func (c *Collection) Gravitational() BodyView { return BodyView{c.gravitational} }

func (c *Collection) NonGravitational() BodyView { return BodyView{c.nonGravitational} }

func (c *Collection) Photons() PhotonView { return PhotonView{c.photons} }

func (c *Collection) Len() int { return len(c.bodies) }

func (c *Collection) PhotonLen() int { return len(c.photons) }

// BodyAt hit-tests front-most first. metersPerCell scales each kind's minimum
// on-screen radius so tiny bodies stay clickable; pass 0 to use physical radii only
func (c *Collection) BodyAt(p vmath.Vec2, metersPerCell float64) *Body {
	for _, b := range c.Bodies().Backward() {
		r := b.RenderRadius()
		if minR := float64(b.kind.MinRadius()) * metersPerCell; r < minR {
			r = minR
		}
		if b.Position.Dist(p) < r {
			return b
		}
	}
	return nil
}

// Validate checks all structural invariants
func (c *Collection) Validate() error {
	if len(c.gravitational)+len(c.nonGravitational) != len(c.bodies) {
		return fmt.Errorf("partition sizes %d+%d != %d",
			len(c.gravitational), len(c.nonGravitational), len(c.bodies))
	}
	if len(c.index) != len(c.bodies) {
		return fmt.Errorf("index size %d != %d", len(c.index), len(c.bodies))
	}
	seen := make(map[Entity]bool, len(c.bodies))
	for _, b := range c.gravitational {
		if !b.kind.Gravitational() {
			return fmt.Errorf("%s in gravitational partition", b.Label())
		}
		seen[b.id] = true
	}
	for _, b := range c.nonGravitational {
		if b.kind.Gravitational() {
			return fmt.Errorf("%s in non-gravitational partition", b.Label())
		}
		if seen[b.id] {
			return fmt.Errorf("%s in both partitions", b.Label())
		}
		seen[b.id] = true
	}
	for i, b := range c.bodies {
		if !seen[b.id] {
			return fmt.Errorf("%s missing from partitions", b.Label())
		}
		if c.index[b.id] != b {
			return fmt.Errorf("%s not indexed", b.Label())
		}
		if i > 0 && c.bodies[i-1].kind.Rank() < b.kind.Rank() {
			return fmt.Errorf("bodies not sorted at %d", i)
		}
	}
	if len(seen) != len(c.bodies) {
		return fmt.Errorf("duplicate bodies in list")
	}
	if len(c.photonIndex) != len(c.photons) {
		return fmt.Errorf("photon index size %d != %d", len(c.photonIndex), len(c.photons))
	}
	return nil
}

// insertSorted places b after every body of equal or higher rank
func (c *Collection) insertSorted(b *Body) {
	rank := b.kind.Rank()
	i, _ := slices.BinarySearchFunc(c.bodies, rank, func(e *Body, r int) int {
		// Descending rank, equal ranks compare as "less" to land after them
		if e.kind.Rank() >= r {
			return -1
		}
		return 1
	})
	c.bodies = slices.Insert(c.bodies, i, b)
}

func deleteBody(list []*Body, b *Body) []*Body {
	if i := slices.Index(list, b); i >= 0 {
		return slices.Delete(list, i, i+1)
	}
	return list
}
