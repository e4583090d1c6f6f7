package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lixenwraith/vi-gravity/vmath"
)

func TestTrack_PushEvictsOldest(t *testing.T) {
	tr := NewTrack(3)
	for i := range 5 {
		tr.Push(vmath.V2(float64(i), 0))
	}
	assert.Equal(t, 3, tr.Len())
	assert.Equal(t, []vmath.Vec2{vmath.V2(2, 0), vmath.V2(3, 0), vmath.V2(4, 0)}, tr.Points())
	assert.Equal(t, vmath.V2(2, 0), tr.At(0))

	last, ok := tr.Last()
	assert.True(t, ok)
	assert.Equal(t, vmath.V2(4, 0), last)
}

func TestTrack_ResizeKeepsNewest(t *testing.T) {
	tr := NewTrack(5)
	for i := range 5 {
		tr.Push(vmath.V2(float64(i), 0))
	}
	tr.Resize(2)
	assert.Equal(t, 2, tr.Limit())
	assert.Equal(t, []vmath.Vec2{vmath.V2(3, 0), vmath.V2(4, 0)}, tr.Points())

	tr.Resize(4)
	tr.Push(vmath.V2(5, 0))
	assert.Equal(t, []vmath.Vec2{vmath.V2(3, 0), vmath.V2(4, 0), vmath.V2(5, 0)}, tr.Points())

	tr.Clear()
	assert.Equal(t, 0, tr.Len())
	_, ok := tr.Last()
	assert.False(t, ok)
}

func TestTrack_DegenerateLimit(t *testing.T) {
	tr := NewTrack(0)
	assert.Equal(t, 1, tr.Limit())
	tr.Push(vmath.V2(1, 1))
	tr.Push(vmath.V2(2, 2))
	assert.Equal(t, []vmath.Vec2{vmath.V2(2, 2)}, tr.Points())
	assert.Panics(t, func() { tr.At(1) })
}
