package plugin

// State represents the lifecycle state of a plugin.
type State int

// Plugin states.
const (
	// StateUnloaded - plugin code is not loaded.
	StateUnloaded State = iota

	// StateLoaded - plugin code is loaded and its commands registered.
	StateLoaded

	// StateError - the plugin failed to load.
	StateError

	// StateClosed - the plugin has been shut down.
	StateClosed
)

// String returns a string representation of the state.
func (s State) String() string {
	switch s {
	case StateUnloaded:
		return "unloaded"
	case StateLoaded:
		return "loaded"
	case StateError:
		return "error"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}
