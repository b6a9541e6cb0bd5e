package plugin

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
)

// Loader discovers plugins in configured search paths.
type Loader struct {
	paths []string
}

// NewLoader creates a loader searching the given directories.
func NewLoader(paths ...string) *Loader {
	return &Loader{paths: paths}
}

// DefaultPluginPaths returns the standard plugin search paths following
// the XDG config directory convention.
func DefaultPluginPaths() []string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		configHome = filepath.Join(home, ".config")
	}
	return []string{filepath.Join(configHome, "pictor", "plugins")}
}

// Discover scans the search paths and returns the manifests of all
// enabled plugins, sorted by name. Directories without a manifest are
// skipped; a malformed manifest fails discovery.
func (l *Loader) Discover() ([]*Manifest, error) {
	var manifests []*Manifest

	for _, root := range l.paths {
		entries, err := os.ReadDir(root)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, err
		}

		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			dir := filepath.Join(root, entry.Name())
			m, err := LoadManifest(dir)
			if err != nil {
				if errors.Is(err, ErrNoManifest) {
					continue
				}
				return nil, err
			}
			if !m.Enabled {
				continue
			}
			manifests = append(manifests, m)
		}
	}

	sort.Slice(manifests, func(i, j int) bool {
		return manifests[i].Name < manifests[j].Name
	})
	return manifests, nil
}
