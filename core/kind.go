package core

import (
	"fmt"
	"strings"
)

// Kind is the closed set of body categories
type Kind uint8

const (
	Rock Kind = iota
	Moon
	Planet
	Star
	BlackHole

	kindCount
)

// PhotonMinRadius is the on-screen size of a photon marker; photons are not a Kind
const PhotonMinRadius = 2

// kindInfo is the per-kind lookup table entry
type kindInfo struct {
	name          string
	key           string
	rank          int
	minRadius     int
	gravitational bool
}

// Explicit table, rank is independent of enum value assignment
var kindTable = [kindCount]kindInfo{
	Rock:      {name: "Rock", key: "rock", rank: 1, minRadius: 2, gravitational: false},
	Moon:      {name: "Moon", key: "moon", rank: 2, minRadius: 3, gravitational: true},
	Planet:    {name: "Planet", key: "planet", rank: 3, minRadius: 4, gravitational: true},
	Star:      {name: "Star", key: "star", rank: 4, minRadius: 5, gravitational: true},
	BlackHole: {name: "Black hole", key: "blackhole", rank: 5, minRadius: 6, gravitational: true},
}

// Kinds lists every kind in ascending rank
var Kinds = [...]Kind{Rock, Moon, Planet, Star, BlackHole}

func (k Kind) Valid() bool {
	return k < kindCount
}

func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindTable[k].name
}

// Key is the lowercase config identifier
func (k Kind) Key() string {
	if !k.Valid() {
		return ""
	}
	return kindTable[k].key
}

// Rank is the paint/hit-test order, higher is drawn later (front-most)
func (k Kind) Rank() int {
	if !k.Valid() {
		return 0
	}
	return kindTable[k].rank
}

// MinRadius is the minimum on-screen radius in cells, rendering only
func (k Kind) MinRadius() int {
	if !k.Valid() {
		return 0
	}
	return kindTable[k].minRadius
}

// Gravitational reports whether bodies of this kind exert gravity
func (k Kind) Gravitational() bool {
	return k.Valid() && kindTable[k].gravitational
}

// ParseKind accepts the config key or display name, case-insensitive
func ParseKind(s string) (Kind, error) {
	norm := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), " ", ""))
	norm = strings.ReplaceAll(norm, "_", "")
	for _, k := range Kinds {
		if kindTable[k].key == norm {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown body kind %q", s)
}

// MarshalText implements encoding.TextMarshaler
func (k Kind) MarshalText() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("invalid kind %d", uint8(k))
	}
	return []byte(k.Key()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
