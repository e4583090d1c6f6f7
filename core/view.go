package core

import "iter"

// BodyView is a read-only window over one of the collection's body lists
// Valid until the next collection mutation
type BodyView struct {
	items []*Body
}

func (v BodyView) Len() int { return len(v.items) }

func (v BodyView) At(i int) *Body { return v.items[i] }

// All iterates in list order
func (v BodyView) All() iter.Seq2[int, *Body] {
	return func(yield func(int, *Body) bool) {
		for i, b := range v.items {
			if !yield(i, b) {
				return
			}
		}
	}
}

// Backward iterates in reverse list order (front-most first for the full list)
func (v BodyView) Backward() iter.Seq2[int, *Body] {
	return func(yield func(int, *Body) bool) {
		for i := len(v.items) - 1; i >= 0; i-- {
			if !yield(i, v.items[i]) {
				return
			}
		}
	}
}

// IndexOf returns position of the handle or -1
func (v BodyView) IndexOf(id Entity) int {
	for i, b := range v.items {
		if b.id == id {
			return i
		}
	}
	return -1
}

// PhotonView is a read-only window over the photon list
type PhotonView struct {
	items []*Photon
}

func (v PhotonView) Len() int { return len(v.items) }

func (v PhotonView) At(i int) *Photon { return v.items[i] }

func (v PhotonView) All() iter.Seq2[int, *Photon] {
	return func(yield func(int, *Photon) bool) {
		for i, p := range v.items {
			if !yield(i, p) {
				return
			}
		}
	}
}
