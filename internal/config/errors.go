package config

import "errors"

// Settings errors.
var (
	// ErrInvalidJSON indicates a malformed settings document.
	ErrInvalidJSON = errors.New("config: invalid JSON")

	// ErrNoPath indicates Save was called before Load set a file path.
	ErrNoPath = errors.New("config: no settings path")
)
