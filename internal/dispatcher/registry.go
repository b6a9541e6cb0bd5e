package dispatcher

import (
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/pictor/internal/dispatcher/handler"
)

// Command is a named, mode-scoped operation exposed by a plugin.
type Command struct {
	// Name is the command name as typed on the command line.
	Name string

	// Modes are the mode names the command is valid in.
	Modes []string

	// Description is a short help text.
	Description string

	// Handler executes the command.
	Handler handler.Handler
}

// Plugin is a self-registering bundle of one or more commands.
// Plugins register once during startup; their lifetime is the process
// lifetime.
type Plugin interface {
	// Name returns the plugin name.
	Name() string

	// Commands returns the commands the plugin provides.
	Commands() []Command
}

// Registry maps (mode, command name) to commands. Command names are
// unique within a mode's visible command set; registration is one-shot
// before the first dispatch.
type Registry struct {
	mu sync.RWMutex

	// commands maps mode name -> command name -> command.
	commands map[string]map[string]*Command

	// plugins records the registering plugin per (mode, name), for
	// duplicate diagnostics.
	plugins map[string]map[string]string
}

// NewRegistry creates a new command registry.
func NewRegistry() *Registry {
	return &Registry{
		commands: make(map[string]map[string]*Command),
		plugins:  make(map[string]map[string]string),
	}
}

// RegisterPlugin installs all of a plugin's commands. A name collision
// within an overlapping mode fails with ErrDuplicateCommand and is fatal
// to process initialization; nothing is installed on failure.
func (r *Registry) RegisterPlugin(p Plugin) error {
	if p == nil {
		return ErrNilPlugin
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	commands := p.Commands()
	seen := make(map[string]map[string]bool)
	for i := range commands {
		cmd := &commands[i]
		if err := validateCommand(cmd); err != nil {
			return fmt.Errorf("plugin %s: command %q: %w", p.Name(), cmd.Name, err)
		}
		for _, md := range cmd.Modes {
			if owner, ok := r.plugins[md][cmd.Name]; ok {
				return fmt.Errorf("%w: %q in mode %s (already registered by %s)",
					ErrDuplicateCommand, cmd.Name, md, owner)
			}
			if seen[md][cmd.Name] {
				return fmt.Errorf("%w: %q in mode %s (registered twice by %s)",
					ErrDuplicateCommand, cmd.Name, md, p.Name())
			}
			if seen[md] == nil {
				seen[md] = make(map[string]bool)
			}
			seen[md][cmd.Name] = true
		}
	}

	for i := range commands {
		cmd := &commands[i]
		for _, md := range cmd.Modes {
			if r.commands[md] == nil {
				r.commands[md] = make(map[string]*Command)
				r.plugins[md] = make(map[string]string)
			}
			r.commands[md][cmd.Name] = cmd
			r.plugins[md][cmd.Name] = p.Name()
		}
	}

	return nil
}

func validateCommand(cmd *Command) error {
	if cmd.Name == "" {
		return fmt.Errorf("empty command name")
	}
	if len(cmd.Modes) == 0 {
		return ErrNoModes
	}
	if cmd.Handler == nil {
		return ErrNilHandler
	}
	return nil
}

// Resolve returns the command registered under the given mode, or
// ErrCommandNotFound.
func (r *Registry) Resolve(name, modeName string) (*Command, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if cmd, ok := r.commands[modeName][name]; ok {
		return cmd, nil
	}
	return nil, fmt.Errorf("%w: %q in mode %s", ErrCommandNotFound, name, modeName)
}

// Has returns true if a command is registered for the mode.
func (r *Registry) Has(name, modeName string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.commands[modeName][name]
	return ok
}

// List returns the sorted command names visible in a mode.
func (r *Registry) List(modeName string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.commands[modeName]))
	for name := range r.commands[modeName] {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the total number of (mode, command) registrations.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := 0
	for _, cmds := range r.commands {
		n += len(cmds)
	}
	return n
}
