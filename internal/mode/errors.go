package mode

import "errors"

// Mode registry errors.
var (
	// ErrInvalidMode indicates an unknown mode identifier.
	ErrInvalidMode = errors.New("mode: invalid mode")

	// ErrNoCurrentMode indicates no mode has been set yet.
	ErrNoCurrentMode = errors.New("mode: no current mode")
)
