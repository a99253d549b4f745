package linmath

import "errors"

var (
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrDegenerateVector  = errors.New("degenerate vector")
	ErrParallel          = errors.New("line is parallel to plane")
	ErrUnknownAxis       = errors.New("unknown rotation axis")
)
