package app

import (
	"fmt"

	"github.com/dshills/pictor/internal/command/history"
	"github.com/dshills/pictor/internal/config"
	"github.com/dshills/pictor/internal/dialog"
	"github.com/dshills/pictor/internal/dispatcher"
	"github.com/dshills/pictor/internal/message"
	"github.com/dshills/pictor/internal/mode"
	"github.com/dshills/pictor/internal/plugin"
	prnt "github.com/dshills/pictor/internal/plugins/print"
	"github.com/dshills/pictor/internal/statusbar"
)

// bootstrap initializes all components in dependency order. Duplicate
// command registrations are fatal; most other failures degrade with a
// warning.
func (app *Application) bootstrap() error {
	// 1. Logger
	logCfg := DefaultLoggerConfig()
	logCfg.Level = ParseLogLevel(app.opts.LogLevel)
	app.logger = NewLogger(logCfg)

	// 2. Message bus
	app.bus = message.NewBus()

	// 3. Settings
	app.settings = config.New()
	configPath := app.opts.ConfigPath
	if configPath == "" {
		configPath = config.DefaultPath()
	}
	if configPath != "" {
		if err := app.settings.Load(configPath); err != nil {
			// Malformed settings fall back to defaults.
			app.logger.Warn("load settings: %v", err)
			app.bus.Publish(message.Warning(fmt.Sprintf("settings: %v", err)))
		}
	}

	// 4. Modes
	app.modes = mode.NewManager()
	for _, m := range mode.Builtin() {
		app.modes.Register(m)
	}
	startup := app.settings.GetString("startup_mode")
	if err := app.modes.SetInitialMode(startup); err != nil {
		app.logger.Warn("startup mode %q: %v", startup, err)
		if err := app.modes.SetInitialMode(mode.ModeLibrary); err != nil {
			return &InitError{Component: "modes", Err: err}
		}
	}

	// 5. Dialog service; hosts with native dialogs replace it via
	// SetDialogService.
	app.dialogs = dialog.NewStatusFallback(app.bus)

	// 6. Dispatcher
	app.registry = dispatcher.NewRegistry()
	dispatchCfg := dispatcher.DefaultConfig()
	app.dispatcher = dispatcher.New(app.registry, app.modes, app.bus, dialogServiceRef{app}, dispatchCfg)

	// 7. Built-in plugins
	for _, p := range []dispatcher.Plugin{
		&builtinPlugin{app: app},
		prnt.New(),
	} {
		if err := app.registry.RegisterPlugin(p); err != nil {
			return &InitError{Component: "plugins", Err: err}
		}
	}

	// 8. Lua plugins
	if err := app.loadPlugins(); err != nil {
		return err
	}

	// 9. Command history
	historyPath := app.opts.HistoryPath
	if historyPath == "" {
		historyPath = history.DefaultPath()
	}
	var stored []string
	if historyPath != "" {
		var err error
		stored, err = history.Read(historyPath)
		if err != nil {
			app.logger.Warn("read history: %v", err)
		}
	}
	app.history = history.New(stored, app.settings.GetInt("history.max_items"))

	// 10. Status bar
	app.statusBar = statusbar.New(app.bus, app.modes, statusbar.OptionsFromConfig(app.settings))

	// 11. Command runner
	app.runner = NewRunner(app.dispatcher, app.history, app.bus)

	return nil
}

// loadPlugins discovers and loads Lua plugins. A plugin whose script
// fails is skipped with a warning; a duplicate command is fatal.
func (app *Application) loadPlugins() error {
	if app.opts.DisablePlugins || !app.settings.GetBool("plugins.enabled") {
		return nil
	}

	paths := append([]string{}, app.opts.PluginPaths...)
	paths = append(paths, plugin.DefaultPluginPaths()...)

	manifests, err := plugin.NewLoader(paths...).Discover()
	if err != nil {
		app.logger.Warn("discover plugins: %v", err)
		return nil
	}

	for _, m := range manifests {
		host, err := plugin.NewHost(m, app.bus, app.modes)
		if err != nil {
			app.logger.Warn("plugin %s: %v", m.Name, err)
			continue
		}
		if err := host.Load(); err != nil {
			app.logger.Warn("load plugin %s: %v", m.Name, err)
			app.bus.Publish(message.Error(fmt.Sprintf("plugin %s failed to load", m.Name)))
			continue
		}
		if err := app.registry.RegisterPlugin(host); err != nil {
			return &InitError{Component: "plugins", Err: err}
		}
		app.hosts = append(app.hosts, host)
		app.logger.Info("loaded plugin %s %s", m.Name, m.Version)
	}
	return nil
}

// dialogServiceRef forwards to the application's current dialog service,
// so SetDialogService takes effect after the dispatcher is built.
type dialogServiceRef struct {
	app *Application
}

func (r dialogServiceRef) Show(req dialog.Request) {
	r.app.mu.RLock()
	svc := r.app.dialogs
	r.app.mu.RUnlock()
	if svc != nil {
		svc.Show(req)
	}
}
