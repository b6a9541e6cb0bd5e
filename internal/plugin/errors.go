package plugin

import "errors"

// Plugin system errors.
var (
	// ErrNilManifest is returned when a nil manifest is provided.
	ErrNilManifest = errors.New("plugin: manifest is nil")

	// ErrNoManifest is returned when a plugin directory has no plugin.json.
	ErrNoManifest = errors.New("plugin: no manifest found")

	// ErrInvalidManifest is returned when manifest validation fails.
	ErrInvalidManifest = errors.New("plugin: invalid manifest")

	// ErrNoEntryPoint is returned when the entry script is missing.
	ErrNoEntryPoint = errors.New("plugin: entry script not found")

	// ErrAlreadyLoaded is returned when loading an already loaded plugin.
	ErrAlreadyLoaded = errors.New("plugin: already loaded")

	// ErrNotLoaded is returned when using an unloaded plugin.
	ErrNotLoaded = errors.New("plugin: not loaded")
)
