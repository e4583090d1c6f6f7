// Package scenario loads, saves and builds initial systems described in TOML
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/lixenwraith/vi-gravity/core"
	"github.com/lixenwraith/vi-gravity/vmath"
)

// ErrUnknownPreset is returned when a name matches neither a preset nor a file
var ErrUnknownPreset = errors.New("unknown scenario preset")

// ErrOrbitTarget is returned when a body orbits a name not listed before it
var ErrOrbitTarget = errors.New("orbit must name an earlier body")

var validate = validator.New()

// File is the on-disk form of a scenario
type File struct {
	Name        string  `toml:"name" validate:"required"`
	Description string  `toml:"description,omitempty"`
	TimeScale   float64 `toml:"time_scale,omitempty" validate:"gte=0"`
	Steps       int     `toml:"steps,omitempty" validate:"gte=0"`
	// Focus names the body selected after loading
	Focus string `toml:"focus,omitempty"`

	Bodies  []BodySpec   `toml:"body" validate:"dive"`
	Photons []PhotonSpec `toml:"photon,omitempty" validate:"dive"`
	Beams   []BeamSpec   `toml:"beam,omitempty" validate:"dive"`
}

// BodySpec describes one body; radius is ignored for black holes
type BodySpec struct {
	Name     string     `toml:"name,omitempty"`
	Kind     core.Kind  `toml:"kind"`
	Mass     float64    `toml:"mass" validate:"gt=0"`
	Radius   float64    `toml:"radius,omitempty" validate:"gte=0"`
	Position vmath.Vec2 `toml:"position,inline"`
	Velocity vmath.Vec2 `toml:"velocity,inline"`
	// Pinned bodies keep their orientation when the build randomizes rotation
	Pinned bool `toml:"pinned,omitempty"`
	// Orbit names an earlier body to circle; Velocity is then added on top
	// of the circular insertion velocity relative to that body
	Orbit     string `toml:"orbit,omitempty"`
	Clockwise bool   `toml:"clockwise,omitempty"`
}

// PhotonSpec describes one photon, angle in radians
type PhotonSpec struct {
	Position  vmath.Vec2 `toml:"position,inline"`
	Angle     float64    `toml:"angle"`
	Frequency float64    `toml:"frequency,omitempty" validate:"gte=0"`
}

// BeamSpec is a row of parallel photons starting at From, each offset by Spacing
type BeamSpec struct {
	From      vmath.Vec2 `toml:"from,inline"`
	Spacing   vmath.Vec2 `toml:"spacing,inline"`
	Angle     float64    `toml:"angle"`
	Count     int        `toml:"count" validate:"min=1,max=10000"`
	Frequency float64    `toml:"frequency,omitempty" validate:"gte=0"`
}

// Validate checks field bounds, that Focus names a body and that every
// Orbit names a body listed before it
func (f *File) Validate() error {
	if err := validate.Struct(f); err != nil {
		return fmt.Errorf("scenario %q: %w", f.Name, err)
	}
	for i, b := range f.Bodies {
		if !b.Kind.Valid() {
			return fmt.Errorf("scenario %q body %d: %w", f.Name, i, core.ErrInvalidKind)
		}
		if b.Orbit == "" {
			continue
		}
		if j := f.body(b.Orbit); j < 0 || j >= i {
			return fmt.Errorf("scenario %q body %d: orbit %q: %w", f.Name, i, b.Orbit, ErrOrbitTarget)
		}
	}
	if f.Focus != "" && f.body(f.Focus) < 0 {
		return fmt.Errorf("scenario %q: focus %q: %w", f.Name, f.Focus, core.ErrNotFound)
	}
	return nil
}

func (f *File) body(name string) int {
	for i, b := range f.Bodies {
		if b.Name == name {
			return i
		}
	}
	return -1
}

// Parse decodes and validates a scenario; unknown keys are rejected
func Parse(data []byte) (*File, error) {
	var f File
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("parsing scenario: %w", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Load reads a scenario file from path
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Marshal encodes f as TOML
func Marshal(f *File) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(f); err != nil {
		return nil, fmt.Errorf("marshaling scenario: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes f to path, creating parent directories as needed
func Save(path string, f *File) error {
	if err := f.Validate(); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", dir, err)
	}
	data, err := Marshal(f)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing scenario: %w", err)
	}
	return nil
}
