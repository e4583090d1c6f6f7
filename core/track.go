package core

import "github.com/lixenwraith/vi-gravity/vmath"

// Track is a bounded position history backed by a ring buffer
// Push is O(1); once the limit is reached the oldest sample is evicted
type Track struct {
	buf   []vmath.Vec2
	head  int // index of oldest sample
	count int
}

// NewTrack creates a track holding at most limit samples (limit < 1 is treated as 1)
func NewTrack(limit int) *Track {
	if limit < 1 {
		limit = 1
	}
	return &Track{buf: make([]vmath.Vec2, limit)}
}

// Limit returns the configured ceiling
func (t *Track) Limit() int {
	return len(t.buf)
}

// Len returns stored sample count
func (t *Track) Len() int {
	return t.count
}

// Push appends p, evicting the oldest sample when full
func (t *Track) Push(p vmath.Vec2) {
	limit := len(t.buf)
	if t.count < limit {
		t.buf[(t.head+t.count)%limit] = p
		t.count++
		return
	}
	t.buf[t.head] = p
	t.head = (t.head + 1) % limit
}

// At returns the i-th sample, 0 = oldest
func (t *Track) At(i int) vmath.Vec2 {
	if i < 0 || i >= t.count {
		panic("track index out of range")
	}
	return t.buf[(t.head+i)%len(t.buf)]
}

// Last returns the newest sample
func (t *Track) Last() (vmath.Vec2, bool) {
	if t.count == 0 {
		return vmath.Vec2{}, false
	}
	return t.At(t.count - 1), true
}

// Points copies samples oldest first
func (t *Track) Points() []vmath.Vec2 {
	out := make([]vmath.Vec2, t.count)
	for i := range out {
		out[i] = t.buf[(t.head+i)%len(t.buf)]
	}
	return out
}

// Resize changes the limit, keeping the newest samples
func (t *Track) Resize(limit int) {
	if limit < 1 {
		limit = 1
	}
	if limit == len(t.buf) {
		return
	}
	pts := t.Points()
	if len(pts) > limit {
		pts = pts[len(pts)-limit:]
	}
	t.buf = make([]vmath.Vec2, limit)
	copy(t.buf, pts)
	t.head = 0
	t.count = len(pts)
}

// Clear drops all samples, keeping the limit
func (t *Track) Clear() {
	t.head = 0
	t.count = 0
}
