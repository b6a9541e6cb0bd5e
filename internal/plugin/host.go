package plugin

import (
	"fmt"
	"os"
	"sync"

	"github.com/dshills/pictor/internal/command"
	"github.com/dshills/pictor/internal/dispatcher"
	"github.com/dshills/pictor/internal/dispatcher/execctx"
	"github.com/dshills/pictor/internal/dispatcher/handler"
	"github.com/dshills/pictor/internal/message"
	"github.com/dshills/pictor/internal/mode"
	hostlua "github.com/dshills/pictor/internal/plugin/lua"
)

// Host runs a single Lua plugin. It loads the entry script, collects the
// commands the script registers, and exposes them to the dispatcher.
type Host struct {
	mu sync.Mutex

	manifest *Manifest
	state    *hostlua.State
	bridge   *hostlua.Bridge

	bus   message.Bus
	modes *mode.Manager

	commands []dispatcher.Command
	st       State
	loadErr  error
}

// NewHost creates a host for the given plugin manifest.
func NewHost(m *Manifest, bus message.Bus, modes *mode.Manager) (*Host, error) {
	if m == nil {
		return nil, ErrNilManifest
	}
	return &Host{
		manifest: m,
		bus:      bus,
		modes:    modes,
		st:       StateUnloaded,
	}, nil
}

// Load executes the plugin's entry script and collects its commands.
// Load is one-shot; a second call fails with ErrAlreadyLoaded.
func (h *Host) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.st != StateUnloaded {
		return fmt.Errorf("%w: %s", ErrAlreadyLoaded, h.manifest.Name)
	}

	entry := h.manifest.EntryPath()
	if _, err := os.Stat(entry); err != nil {
		if os.IsNotExist(err) {
			err = fmt.Errorf("%w: %s", ErrNoEntryPoint, entry)
		}
		h.fail(err)
		return err
	}

	h.state = hostlua.NewState()
	h.bridge = hostlua.NewBridge(h.state, h.bus, h.modes)
	h.bridge.Install()

	if err := h.state.DoFile(entry); err != nil {
		err = fmt.Errorf("plugin %s: %w", h.manifest.Name, err)
		h.fail(err)
		return err
	}

	for _, spec := range h.bridge.Specs() {
		h.commands = append(h.commands, dispatcher.Command{
			Name:        spec.Name,
			Modes:       spec.Modes,
			Description: spec.Description,
			Handler:     h.commandHandler(spec),
		})
	}

	h.st = StateLoaded
	return nil
}

// fail records a load error and releases the Lua state.
func (h *Host) fail(err error) {
	h.st = StateError
	h.loadErr = err
	if h.state != nil {
		h.state.Close()
		h.state = nil
	}
}

// commandHandler wraps a registered Lua function as a dispatch handler.
func (h *Host) commandHandler(spec hostlua.CommandSpec) handler.Handler {
	return handler.NewHandlerFunc(func(act command.Action, ctx *execctx.ExecutionContext) handler.Result {
		h.mu.Lock()
		bridge := h.bridge
		h.mu.Unlock()

		if bridge == nil {
			return handler.Errorf("plugin %s is not loaded", h.manifest.Name)
		}

		invocation := bridge.InvocationTable(act.Name, act.Flags, act.Args, ctx.Mode, ctx.Widget)
		outcome, err := bridge.CallCommand(spec, invocation)
		if err != nil {
			return handler.Error(err).WithMessage(fmt.Sprintf("%s: plugin error", act.Name))
		}

		if !outcome.OK {
			msg := outcome.Message
			if msg == "" {
				msg = fmt.Sprintf("%s: command failed", act.Name)
			}
			return handler.ErrorWithMessage(msg)
		}
		if outcome.Message != "" {
			return handler.SuccessWithMessage(outcome.Message)
		}
		return handler.Success()
	})
}

// Name implements dispatcher.Plugin.
func (h *Host) Name() string {
	return h.manifest.Name
}

// Commands implements dispatcher.Plugin. It returns nothing until Load
// has succeeded.
func (h *Host) Commands() []dispatcher.Command {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]dispatcher.Command, len(h.commands))
	copy(out, h.commands)
	return out
}

// Manifest returns the plugin manifest.
func (h *Host) Manifest() *Manifest {
	return h.manifest
}

// State returns the host lifecycle state.
func (h *Host) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.st
}

// LoadError returns the error recorded by a failed Load, if any.
func (h *Host) LoadError() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.loadErr
}

// Close releases the plugin's Lua state. Commands must not be invoked
// afterwards.
func (h *Host) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.st == StateClosed {
		return nil
	}
	if h.state != nil {
		h.state.Close()
		h.state = nil
	}
	h.bridge = nil
	h.st = StateClosed
	return nil
}
