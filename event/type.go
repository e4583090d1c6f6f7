package event

import "time"

// EventType represents the type of simulation event
type EventType int

const (
	// EventTick is the zero value, never queued
	EventTick EventType = iota

	// === Collection Event ===

	// EventBodyInserted signals a body entered the simulation
	// Trigger: Simulation.Insert, presets, launches | Payload: *BodyPayload
	EventBodyInserted

	// EventBodyRemoved signals a body was removed by request
	// Trigger: Simulation.Remove | Payload: *BodyPayload
	EventBodyRemoved

	// EventBodyMerged signals one body consumed another
	// Trigger: collision pass | Consumer: sound, metrics, log | Payload: *MergePayload
	EventBodyMerged

	// EventPhotonsEmitted signals a batch of photons was added
	// Trigger: emitters | Payload: *PhotonsPayload
	EventPhotonsEmitted

	// EventPhotonsCleared signals every photon was dropped
	// Trigger: Simulation.ClearPhotons | Payload: *PhotonsPayload
	EventPhotonsCleared

	// === Focus Event ===

	// EventFocusReassigned signals the focused body changed outside of a direct SetFocus
	// Trigger: merge destroyed the focus, focus removed | Payload: *FocusPayload
	EventFocusReassigned

	// === Health Event ===

	// EventNonFinite signals NaN/Inf state after a frame
	// Trigger: AdvanceFrame | Payload: *NonFinitePayload
	EventNonFinite

	// === Scenario Event ===

	// EventScenarioLoaded signals the simulation was rebuilt from a scenario
	// Trigger: scenario load and hot reload | Payload: *ScenarioPayload
	EventScenarioLoaded

	// EventTimeScaleChanged signals a new time scale
	// Trigger: viewer keys | Payload: *TimeScalePayload
	EventTimeScaleChanged
)

// SimEvent represents a single simulation event with metadata
type SimEvent struct {
	Type    EventType
	Payload any
	Frame   int64
	// SimTime is simulated seconds elapsed when the event was raised
	SimTime   float64
	Timestamp time.Time
}
