package event

import (
	"github.com/lixenwraith/vi-gravity/core"
)

// BodyPayload identifies a body at the moment of the event
type BodyPayload struct {
	ID   core.Entity `json:"id"`
	Name string      `json:"name"`
	Kind core.Kind   `json:"kind"`
	Mass float64     `json:"mass"`
}

// MergePayload describes a resolved collision
type MergePayload struct {
	Gainer        core.Entity `json:"gainer"`
	Destroyed     core.Entity `json:"destroyed"`
	GainerName    string      `json:"gainer_name"`
	DestroyedName string      `json:"destroyed_name"`
	DestroyedKind core.Kind   `json:"destroyed_kind"`
	Mass          float64     `json:"mass"` // Gainer mass after merge
	X             float64     `json:"x"`
	Y             float64     `json:"y"`
}

// FocusPayload carries the old and new focus handles, 0 = none
type FocusPayload struct {
	Previous core.Entity `json:"previous"`
	Current  core.Entity `json:"current"`
}

// PhotonsPayload carries a photon count
type PhotonsPayload struct {
	Count int `json:"count"`
}

// NonFinitePayload names the first entity found with NaN/Inf state
type NonFinitePayload struct {
	ID     core.Entity `json:"id"`
	Name   string      `json:"name"`
	Photon bool        `json:"photon"`
}

// ScenarioPayload describes a loaded scenario
type ScenarioPayload struct {
	Name    string `json:"name"`
	Source  string `json:"source"` // preset name or file path
	Bodies  int    `json:"bodies"`
	Photons int    `json:"photons"`
}

// TimeScalePayload carries the new time scale in simulated seconds per real second
type TimeScalePayload struct {
	TimeScale float64 `json:"time_scale"`
}
