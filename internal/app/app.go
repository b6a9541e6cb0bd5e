package app

import (
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/pictor/internal/command/history"
	"github.com/dshills/pictor/internal/config"
	"github.com/dshills/pictor/internal/dialog"
	"github.com/dshills/pictor/internal/dispatcher"
	"github.com/dshills/pictor/internal/message"
	"github.com/dshills/pictor/internal/mode"
	"github.com/dshills/pictor/internal/plugin"
	"github.com/dshills/pictor/internal/statusbar"
)

// Application is the central coordinator for all viewer components.
// It manages component lifecycles, wiring, and the main event loop.
type Application struct {
	mu sync.RWMutex

	logger *Logger

	// Core infrastructure
	bus      message.Bus
	settings *config.Settings

	// Command plumbing
	modes      *mode.Manager
	registry   *dispatcher.Registry
	dispatcher *dispatcher.Dispatcher
	dialogs    dialog.Service
	history    *history.History
	runner     *Runner

	// Extension components
	hosts []*plugin.Host

	// UI
	screen    tcell.Screen
	statusBar *statusbar.StatusBar

	// Command line state while in command mode. The previous mode's
	// widget is held here so leaving command mode restores it.
	input       string
	savedWidget mode.Widget

	// State
	running  atomic.Bool
	done     chan struct{}
	quitOnce sync.Once

	opts Options
}

// Options configures the application.
type Options struct {
	// ConfigPath is the settings file; empty uses the default location.
	ConfigPath string

	// HistoryPath is the command history file; empty uses the default.
	HistoryPath string

	// PluginPaths are extra plugin search directories.
	PluginPaths []string

	// LogLevel sets the logging verbosity.
	LogLevel string

	// DisablePlugins skips Lua plugin loading.
	DisablePlugins bool
}

// New creates a new Application with the given options.
func New(opts Options) (*Application, error) {
	app := &Application{
		opts: opts,
		done: make(chan struct{}),
	}

	if err := app.bootstrap(); err != nil {
		return nil, err
	}

	return app, nil
}

// SetScreen sets the terminal screen. Must be called before Run; when
// unset, Run allocates a real terminal screen.
func (app *Application) SetScreen(s tcell.Screen) error {
	app.mu.Lock()
	defer app.mu.Unlock()

	if app.running.Load() {
		return ErrAlreadyRunning
	}
	app.screen = s
	return nil
}

// SetDialogService replaces the dialog presenter. Hosts with native
// dialogs install theirs before Run; the default reports on the bus.
func (app *Application) SetDialogService(svc dialog.Service) {
	app.mu.Lock()
	defer app.mu.Unlock()
	app.dialogs = svc
}

// Run starts the main event loop and blocks until shutdown.
func (app *Application) Run() error {
	if !app.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer app.running.Store(false)

	app.mu.Lock()
	screen := app.screen
	app.mu.Unlock()

	if screen == nil {
		s, err := tcell.NewScreen()
		if err != nil {
			return &InitError{Component: "screen", Err: err}
		}
		app.mu.Lock()
		app.screen = s
		screen = s
		app.mu.Unlock()
	}

	if err := screen.Init(); err != nil {
		return &InitError{Component: "screen", Err: err}
	}
	defer screen.Fini()

	app.logger.Info("starting in mode %s", app.modes.CurrentName())
	return app.eventLoop()
}

// requestQuit initiates shutdown. Safe to call multiple times.
func (app *Application) requestQuit() {
	app.quitOnce.Do(func() {
		close(app.done)
	})
}

// Quit requests a normal application exit.
func (app *Application) Quit() {
	app.requestQuit()
}

// Shutdown persists state and releases components. Called after Run
// returns, or directly in headless use.
func (app *Application) Shutdown() {
	app.requestQuit()

	if app.history != nil {
		path := app.opts.HistoryPath
		if path == "" {
			path = history.DefaultPath()
		}
		if path != "" {
			if err := history.Write(path, app.history.Commands()); err != nil {
				app.logger.Warn("write history: %v", err)
			}
		}
	}

	for _, h := range app.hosts {
		if err := h.Close(); err != nil {
			app.logger.Warn("close plugin %s: %v", h.Name(), err)
		}
	}

	if app.statusBar != nil {
		if err := app.bus.Unsubscribe(app.statusBar.Subscription()); err != nil {
			app.logger.Debug("unsubscribe status bar: %v", err)
		}
	}
}

// IsRunning returns true while the event loop is active.
func (app *Application) IsRunning() bool {
	return app.running.Load()
}

// Bus returns the message bus.
func (app *Application) Bus() message.Bus {
	return app.bus
}

// Settings returns the settings store.
func (app *Application) Settings() *config.Settings {
	return app.settings
}

// Modes returns the mode manager.
func (app *Application) Modes() *mode.Manager {
	return app.modes
}

// Dispatcher returns the command dispatcher.
func (app *Application) Dispatcher() *dispatcher.Dispatcher {
	return app.dispatcher
}

// Runner returns the command line runner.
func (app *Application) Runner() *Runner {
	return app.runner
}

// History returns the command history.
func (app *Application) History() *history.History {
	return app.history
}

// StatusBar returns the status bar.
func (app *Application) StatusBar() *statusbar.StatusBar {
	return app.statusBar
}

// Plugins returns the loaded Lua plugin hosts.
func (app *Application) Plugins() []*plugin.Host {
	out := make([]*plugin.Host, len(app.hosts))
	copy(out, app.hosts)
	return out
}

// Logger returns the application logger.
func (app *Application) Logger() *Logger {
	return app.logger
}
