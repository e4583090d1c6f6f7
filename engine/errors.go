package engine

import (
	"errors"
	"fmt"

	"github.com/lixenwraith/vi-gravity/core"
)

var (
	// ErrNonFinite marks NaN/Inf body or photon state after a frame
	ErrNonFinite = errors.New("non-finite simulation state")

	// ErrInvalidFrame rejects non-positive or non-finite frame interval / time scale
	ErrInvalidFrame = errors.New("invalid frame parameters")

	// ErrInvalidConfig rejects a configuration that fails validation
	ErrInvalidConfig = errors.New("invalid simulation config")
)

// NonFiniteError names the first entity found with NaN/Inf state
type NonFiniteError struct {
	ID     core.Entity
	Name   string
	Photon bool
	Frame  int64
}

func (e *NonFiniteError) Error() string {
	what := "body"
	if e.Photon {
		what = "photon"
	}
	return fmt.Sprintf("frame %d: %s %s (#%d): %v", e.Frame, what, e.Name, e.ID, ErrNonFinite)
}

// Is lets errors.Is(err, ErrNonFinite) match
func (e *NonFiniteError) Is(target error) bool {
	return target == ErrNonFinite
}
