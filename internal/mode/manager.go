package mode

import (
	"fmt"
	"sync"
)

// Manager manages viewer modes and coordinates mode transitions.
// Exactly one mode is current at any time after SetInitialMode; a switch
// replaces the current mode and the active widget atomically, so a
// dispatch that follows a switch always observes the new pair.
type Manager struct {
	mu sync.RWMutex

	// modes holds all registered modes by name.
	modes map[string]Mode

	// current is the active mode.
	current Mode

	// previous is the mode before the current one.
	previous Mode

	// widget is the active widget under the current mode, or nil.
	widget Widget

	// callbacks are notified on mode changes.
	callbacks []ChangeCallback
}

// ChangeCallback is called after the mode changes.
type ChangeCallback func(from, to Mode)

// NewManager creates a new mode manager.
func NewManager() *Manager {
	return &Manager{
		modes: make(map[string]Mode),
	}
}

// Register adds a mode to the manager.
// If a mode with the same name exists, it is replaced.
func (m *Manager) Register(mode Mode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.modes[mode.Name()] = mode
}

// Get returns a mode by name, or nil if not found.
func (m *Manager) Get(name string) Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.modes[name]
}

// Current returns the current mode, or nil if none is set.
func (m *Manager) Current() Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// CurrentName returns the name of the current mode, or empty string.
func (m *Manager) CurrentName() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return ""
	}
	return m.current.Name()
}

// Previous returns the previous mode, or nil.
func (m *Manager) Previous() Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.previous
}

// ActiveWidget returns the widget bound to the current mode, or nil when
// none is present.
func (m *Manager) ActiveWidget() Widget {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.widget
}

// SetWidget binds a widget to the current mode.
// Returns ErrNoCurrentMode before the initial mode is set.
func (m *Manager) SetWidget(w Widget) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.current == nil {
		return ErrNoCurrentMode
	}
	m.widget = w
	return nil
}

// ClearWidget removes the active widget.
func (m *Manager) ClearWidget() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.widget = nil
}

// Switch changes to a different mode and clears the active widget.
// Unknown mode names are rejected with an error wrapping ErrInvalidMode;
// the switch never silently no-ops.
func (m *Manager) Switch(name string) error {
	return m.SwitchWithWidget(name, nil)
}

// SwitchWithWidget changes to a different mode with the widget that is now
// active under it. The mode and widget are replaced atomically.
func (m *Manager) SwitchWithWidget(name string, w Widget) error {
	m.mu.Lock()

	newMode, ok := m.modes[name]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrInvalidMode, name)
	}

	oldMode, callbacks, err := m.switchToLocked(newMode, w)
	m.mu.Unlock()

	if err != nil {
		return err
	}

	// Notify callbacks outside of lock
	for _, cb := range callbacks {
		if cb != nil {
			cb(oldMode, newMode)
		}
	}

	return nil
}

// switchToLocked performs the mode switch (must hold lock).
// Returns the old mode and callbacks to notify.
func (m *Manager) switchToLocked(newMode Mode, w Widget) (Mode, []ChangeCallback, error) {
	ctx := NewContext()
	ctx.Widget = w

	oldMode := m.current

	if oldMode != nil {
		ctx.NextMode = newMode.Name()
		if err := oldMode.Exit(ctx); err != nil {
			return nil, nil, fmt.Errorf("exit %s: %w", oldMode.Name(), err)
		}
		ctx.PreviousMode = oldMode.Name()
	}
	ctx.NextMode = ""

	if err := newMode.Enter(ctx); err != nil {
		return nil, nil, fmt.Errorf("enter %s: %w", newMode.Name(), err)
	}

	m.previous = oldMode
	m.current = newMode
	m.widget = w

	callbacks := make([]ChangeCallback, len(m.callbacks))
	copy(callbacks, m.callbacks)

	return oldMode, callbacks, nil
}

// OnChange registers a callback for mode changes.
// Returns a function to unregister the callback.
func (m *Manager) OnChange(callback ChangeCallback) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.callbacks = append(m.callbacks, callback)
	index := len(m.callbacks) - 1

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		// Remove callback by setting to nil (preserves indices)
		if index < len(m.callbacks) {
			m.callbacks[index] = nil
		}
	}
}

// Modes returns the names of all registered modes.
func (m *Manager) Modes() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.modes))
	for name := range m.modes {
		names = append(names, name)
	}
	return names
}

// SetInitialMode sets the initial mode without triggering exit hooks.
// Should only be called once during initialization.
func (m *Manager) SetInitialMode(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	mode, ok := m.modes[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrInvalidMode, name)
	}

	m.current = mode

	ctx := NewContext()
	return mode.Enter(ctx)
}

// IsMode returns true if the current mode matches the given name.
func (m *Manager) IsMode(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current != nil && m.current.Name() == name
}
