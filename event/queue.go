package event

import (
	"sync"

	"github.com/lixenwraith/vi-gravity/parameter"
)

// Queue is a bounded FIFO of simulation events between the simulation and
// whoever dispatches them
//
// The simulation pushes while a frame or mutation runs; the loop, or the
// headless runner, drains once per frame. A consumer that falls behind loses
// the oldest events first and the loss is counted in Dropped, which the
// metrics collector exports.
type Queue struct {
	mu      sync.Mutex
	ring    []SimEvent
	head    int // oldest pending
	pending int
	dropped uint64
}

// NewQueue creates a queue holding parameter.EventQueueSize events
func NewQueue() *Queue {
	return NewQueueSize(parameter.EventQueueSize)
}

// NewQueueSize creates a queue holding size events, at least one
func NewQueueSize(size int) *Queue {
	return &Queue{ring: make([]SimEvent, max(size, 1))}
}

// Push appends ev, evicting the oldest pending event when full
// Returns true when an event was evicted
func (q *Queue) Push(ev SimEvent) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.pending == len(q.ring) {
		q.ring[q.head] = ev
		q.head = (q.head + 1) % len(q.ring)
		q.dropped++
		return true
	}
	q.ring[(q.head+q.pending)%len(q.ring)] = ev
	q.pending++
	return false
}

// Consume returns every pending event oldest first, nil when empty
func (q *Queue) Consume() []SimEvent {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.pending == 0 {
		return nil
	}
	out := make([]SimEvent, q.pending)
	for i := range out {
		idx := (q.head + i) % len(q.ring)
		out[i] = q.ring[idx]
		// Release payloads held by the ring
		q.ring[idx] = SimEvent{}
	}
	q.head = (q.head + q.pending) % len(q.ring)
	q.pending = 0
	return out
}

// Len returns the number of pending events
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.pending
}

// Dropped returns how many events were evicted unread since creation
func (q *Queue) Dropped() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}
