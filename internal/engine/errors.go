package engine

import "errors"

// ErrInvalidConfig indicates engine settings that cannot drive a frame loop.
var ErrInvalidConfig = errors.New("engine: invalid configuration")
