package carconfig

import "errors"

var (
	ErrInvalidSession = errors.New("invalid session")
	ErrDegenerateRect = errors.New("rectangle has no area")
	ErrNotObject      = errors.New("car config is not a JSON object")
)
