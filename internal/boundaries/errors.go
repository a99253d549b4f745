package boundaries

import "errors"

var (
	ErrDrift    = errors.New("rotated point left the ground plane")
	ErrNoFrames = errors.New("frame count must be positive")
)
