package flow

import "errors"

var (
	// ErrInvalidCanvas indicates a non-positive canvas width or height.
	ErrInvalidCanvas = errors.New("flow: canvas dimensions must be positive")

	// ErrInvalidResolution indicates a non-positive grid cell size.
	ErrInvalidResolution = errors.New("flow: grid resolution must be positive")

	// ErrInvalidSchedule indicates a non-positive step budget or speed.
	ErrInvalidSchedule = errors.New("flow: unfurling schedule must be positive")
)
