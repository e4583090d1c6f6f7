// Package sound plays short cues for merges and alarms through beep
package sound

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/vi-gravity/core"
	"github.com/lixenwraith/vi-gravity/event"
)

const (
	sampleRate = beep.SampleRate(48000)

	thudDuration  = 250 * time.Millisecond
	alarmDuration = 400 * time.Millisecond
	chimeDuration = 300 * time.Millisecond
)

// Manager turns simulation events into sounds
// Every method is a no-op until Initialize succeeds, so a machine without
// an audio device runs silently
type Manager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	muted       bool
}

// NewManager creates an uninitialized manager
func NewManager() *Manager {
	return &Manager{mixer: &beep.Mixer{}}
}

// Initialize sets up the speaker
func (m *Manager) Initialize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return err
	}
	speaker.Play(m.mixer)
	m.initialized = true
	return nil
}

// Cleanup stops all sounds
func (m *Manager) Cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized {
		return
	}
	speaker.Lock()
	m.mixer.Clear()
	speaker.Unlock()
	m.initialized = false
}

// SetMuted toggles output without tearing down the speaker
func (m *Manager) SetMuted(muted bool) {
	m.mu.Lock()
	m.muted = muted
	m.mu.Unlock()
}

// Muted reports the mute state
func (m *Manager) Muted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.muted
}

// PlayMerge plays a thud pitched by the destroyed body's kind
func (m *Manager) PlayMerge(destroyed core.Kind) {
	m.play(beep.Take(sampleRate.N(thudDuration), NewThudGenerator(sampleRate, ThudFrequency(destroyed))))
}

// PlayAlarm plays the non-finite state alarm
func (m *Manager) PlayAlarm() {
	m.play(beep.Take(sampleRate.N(alarmDuration), NewBuzzGenerator(sampleRate, 120)))
}

// PlayChime plays the scenario loaded cue
func (m *Manager) PlayChime() {
	m.play(beep.Take(sampleRate.N(chimeDuration), NewChimeGenerator(sampleRate, 660)))
}

func (m *Manager) play(s beep.Streamer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.initialized || m.muted {
		return
	}
	speaker.Lock()
	m.mixer.Add(s)
	speaker.Unlock()
}

// EventTypes implements event.Handler
func (m *Manager) EventTypes() []event.EventType {
	return []event.EventType{event.EventBodyMerged, event.EventNonFinite, event.EventScenarioLoaded}
}

// HandleEvent implements event.Handler
func (m *Manager) HandleEvent(ev event.SimEvent) {
	switch p := ev.Payload.(type) {
	case *event.MergePayload:
		m.PlayMerge(p.DestroyedKind)
	case *event.NonFinitePayload:
		m.PlayAlarm()
	case *event.ScenarioPayload:
		m.PlayChime()
	}
}
