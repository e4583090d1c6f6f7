package engine

import (
	"fmt"

	"github.com/lixenwraith/vi-gravity/core"
	"github.com/lixenwraith/vi-gravity/event"
)

// Focus returns the focused body handle, 0 = none
func (s *Simulation) Focus() core.Entity { return s.focus }

// FocusBody returns the focused body or nil
func (s *Simulation) FocusBody() *core.Body {
	if s.focus == 0 {
		return nil
	}
	b, _ := s.bodies.Body(s.focus)
	return b
}

// SetFocus focuses a body; 0 clears focus. Hooks are not called
func (s *Simulation) SetFocus(id core.Entity) error {
	if id != 0 {
		if _, ok := s.bodies.Body(id); !ok {
			return fmt.Errorf("set focus %d: %w", id, core.ErrNotFound)
		}
	}
	s.focus = id
	return nil
}

// FocusByName focuses the first body with the given name
func (s *Simulation) FocusByName(name string) error {
	for _, b := range s.bodies.Bodies().All() {
		if b.Name == name {
			s.focus = b.ID()
			return nil
		}
	}
	return fmt.Errorf("focus %q: %w", name, core.ErrNotFound)
}

// CycleFocus moves focus through the gravitational bodies, wrapping at both ends
// dir > 0 goes forward. Without a current focus it starts at the first body
func (s *Simulation) CycleFocus(dir int) core.Entity {
	grav := s.bodies.Gravitational()
	n := grav.Len()
	if n == 0 {
		return s.focus
	}

	i := grav.IndexOf(s.focus)
	switch {
	case i < 0:
		i = 0
	case dir >= 0:
		i = (i + 1) % n
	default:
		i = (i - 1 + n) % n
	}
	s.focus = grav.At(i).ID()
	return s.focus
}

// OnFocusChange registers a hook for focus changes the caller did not request
func (s *Simulation) OnFocusChange(h FocusHook) {
	s.focusHooks = append(s.focusHooks, h)
}

func (s *Simulation) reassignFocus(to core.Entity) {
	prev := s.focus
	s.focus = to
	s.notifyFocus(prev, to)
}

func (s *Simulation) notifyFocus(prev, cur core.Entity) {
	for _, h := range s.focusHooks {
		h(prev, cur)
	}
	s.emit(event.EventFocusReassigned, &event.FocusPayload{Previous: prev, Current: cur})
}
