package window

import "errors"

var (
	// ErrInvalidMode is returned by pacing calls made in immediate mode
	ErrInvalidMode = errors.New("invalid render mode")

	// ErrInvalidSize is returned for non-positive window dimensions
	ErrInvalidSize = errors.New("invalid window size")
)
