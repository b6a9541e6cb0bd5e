package lua

import "errors"

// Lua runtime errors.
var (
	// ErrStateClosed indicates the Lua state has been closed.
	ErrStateClosed = errors.New("lua: state is closed")
)
