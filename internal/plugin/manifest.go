package plugin

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/tidwall/gjson"
)

// ManifestFile is the manifest filename inside a plugin directory.
const ManifestFile = "plugin.json"

// DefaultEntry is the entry script used when the manifest names none.
const DefaultEntry = "init.lua"

var nameRe = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]*$`)

// Manifest describes a plugin's metadata and entry point.
type Manifest struct {
	// Name is the unique plugin identifier.
	Name string

	// Version is the plugin version string.
	Version string

	// Description is a short description.
	Description string

	// Main is the entry script path relative to the plugin directory.
	Main string

	// Enabled controls whether the plugin is loaded (default true).
	Enabled bool

	// path is the plugin directory.
	path string
}

// ParseManifest parses manifest JSON.
func ParseManifest(data []byte) (*Manifest, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidManifest)
	}

	doc := string(data)
	m := &Manifest{
		Name:        gjson.Get(doc, "name").String(),
		Version:     gjson.Get(doc, "version").String(),
		Description: gjson.Get(doc, "description").String(),
		Main:        gjson.Get(doc, "main").String(),
		Enabled:     true,
	}
	if v := gjson.Get(doc, "enabled"); v.Exists() {
		m.Enabled = v.Bool()
	}
	if m.Main == "" {
		m.Main = DefaultEntry
	}

	if err := m.validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Manifest) validate() error {
	if m.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidManifest)
	}
	if !nameRe.MatchString(m.Name) {
		return fmt.Errorf("%w: bad name %q", ErrInvalidManifest, m.Name)
	}
	return nil
}

// LoadManifest reads and parses the manifest from a plugin directory.
func LoadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoManifest, dir)
		}
		return nil, err
	}

	m, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", dir, err)
	}
	m.path = dir
	return m, nil
}

// Path returns the plugin directory.
func (m *Manifest) Path() string {
	return m.path
}

// EntryPath returns the absolute path of the entry script.
func (m *Manifest) EntryPath() string {
	return filepath.Join(m.path, m.Main)
}
