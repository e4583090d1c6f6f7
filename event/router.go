package event

// Handler processes specific event types
// Frontends and observers implement this interface to receive routed events
type Handler interface {
	// HandleEvent processes a single event
	// Called synchronously during DispatchAll
	HandleEvent(ev SimEvent)

	// EventTypes returns the event types this handler processes
	EventTypes() []EventType
}

// HandlerFunc adapts a function and a type list into a Handler
type HandlerFunc struct {
	Types []EventType
	Fn    func(SimEvent)
}

func (h HandlerFunc) HandleEvent(ev SimEvent) { h.Fn(ev) }

func (h HandlerFunc) EventTypes() []EventType { return h.Types }

// Router dispatches queued events to registered handlers
//
// Architecture:
//   - Single-threaded dispatch, owned by the loop that advances the simulation
//   - Multiple handlers can register for the same event type
//   - Handlers are invoked in registration order
//
// Usage:
//  1. Create router: NewRouter(queue)
//  2. Register handlers: router.Register(h)
//  3. After each frame: router.DispatchAll()
type Router struct {
	handlers map[EventType][]Handler
	queue    *Queue
}

// NewRouter creates a router attached to the given queue
func NewRouter(queue *Queue) *Router {
	return &Router{
		handlers: make(map[EventType][]Handler),
		queue:    queue,
	}
}

// Register adds a handler for its declared event types
func (r *Router) Register(h Handler) {
	for _, t := range h.EventTypes() {
		r.handlers[t] = append(r.handlers[t], h)
	}
}

// DispatchAll consumes all pending events and routes them in FIFO order
// Returns the number of events consumed
func (r *Router) DispatchAll() int {
	events := r.queue.Consume()
	for _, ev := range events {
		for _, h := range r.handlers[ev.Type] {
			h.HandleEvent(ev)
		}
	}
	return len(events)
}
