package engine

import (
	"github.com/lixenwraith/vi-gravity/core"
)

// Recorder appends current positions to every enabled track
// Limits apply to tracks it creates; existing tracks keep their own ceiling
type Recorder struct {
	BodyLimit   int
	PhotonLimit int
	// Interval samples every N frames
	Interval int
}

// Due reports whether frame is a sampling frame
func (r Recorder) Due(frame int64) bool {
	if r.Interval <= 1 {
		return true
	}
	return frame%int64(r.Interval) == 0
}

// Sample pushes the current position of every tracked body and photon
func (r Recorder) Sample(c *core.Collection) {
	for _, b := range c.Bodies().All() {
		if b.Track != nil {
			b.Track.Push(b.Position)
		}
	}
	for _, p := range c.Photons().All() {
		if p.Track != nil {
			p.Track.Push(p.Position)
		}
	}
}

// Resize applies new limits to every existing track
func (r Recorder) Resize(c *core.Collection) {
	for _, b := range c.Bodies().All() {
		if b.Track != nil && r.BodyLimit > 0 {
			b.Track.Resize(r.BodyLimit)
		}
	}
	for _, p := range c.Photons().All() {
		if p.Track != nil && r.PhotonLimit > 0 {
			p.Track.Resize(r.PhotonLimit)
		}
	}
}

// ClearTracks drops all recorded samples
func (r Recorder) ClearTracks(c *core.Collection) {
	for _, b := range c.Bodies().All() {
		if b.Track != nil {
			b.Track.Clear()
		}
	}
	for _, p := range c.Photons().All() {
		if p.Track != nil {
			p.Track.Clear()
		}
	}
}
