package plugin_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/dshills/pictor/internal/command"
	"github.com/dshills/pictor/internal/dispatcher/execctx"
	"github.com/dshills/pictor/internal/dispatcher/handler"
	"github.com/dshills/pictor/internal/message"
	"github.com/dshills/pictor/internal/mode"
	"github.com/dshills/pictor/internal/plugin"
)

type hostWidget struct{ name string }

func (w *hostWidget) Name() string { return w.name }

func newHostModes(t *testing.T) *mode.Manager {
	t.Helper()
	modes := mode.NewManager()
	for _, m := range mode.Builtin() {
		modes.Register(m)
	}
	if err := modes.SetInitialMode(mode.ModeImage); err != nil {
		t.Fatalf("SetInitialMode() error = %v", err)
	}
	return modes
}

func newTestHost(t *testing.T, script string) *plugin.Host {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, plugin.ManifestFile), `{"name": "testplug"}`)
	writeFile(t, filepath.Join(dir, plugin.DefaultEntry), script)

	m, err := plugin.LoadManifest(dir)
	if err != nil {
		t.Fatalf("LoadManifest() error = %v", err)
	}
	h, err := plugin.NewHost(m, message.NewBus(), newHostModes(t))
	if err != nil {
		t.Fatalf("NewHost() error = %v", err)
	}
	t.Cleanup(func() { _ = h.Close() })
	return h
}

func TestHostLoad(t *testing.T) {
	h := newTestHost(t, `
pictor.register_command("hello", {"image"}, function(cmd)
	return "hello " .. (cmd.args[1] or "world")
end)
`)

	if err := h.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if h.State() != plugin.StateLoaded {
		t.Errorf("State() = %v, want loaded", h.State())
	}
	if h.Name() != "testplug" {
		t.Errorf("Name() = %q, want testplug", h.Name())
	}

	cmds := h.Commands()
	if len(cmds) != 1 {
		t.Fatalf("Commands() returned %d, want 1", len(cmds))
	}
	if cmds[0].Name != "hello" {
		t.Errorf("command name = %q, want hello", cmds[0].Name)
	}

	act := command.Action{Name: "hello", Args: []string{"there"}}
	ctx := &execctx.ExecutionContext{Mode: mode.ModeImage, Widget: &hostWidget{name: "w"}}
	res := cmds[0].Handler.Handle(act, ctx)
	if !res.IsOK() {
		t.Fatalf("result = %+v, want ok", res)
	}
	if res.Message != "hello there" {
		t.Errorf("Message = %q, want %q", res.Message, "hello there")
	}
}

func TestHostLoadTwice(t *testing.T) {
	h := newTestHost(t, ``)
	if err := h.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := h.Load(); !errors.Is(err, plugin.ErrAlreadyLoaded) {
		t.Errorf("second Load() error = %v, want ErrAlreadyLoaded", err)
	}
}

func TestHostMissingEntry(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, plugin.ManifestFile), `{"name": "noentry"}`)

	m, err := plugin.LoadManifest(dir)
	if err != nil {
		t.Fatalf("LoadManifest() error = %v", err)
	}
	h, err := plugin.NewHost(m, message.NewBus(), newHostModes(t))
	if err != nil {
		t.Fatalf("NewHost() error = %v", err)
	}

	if err := h.Load(); !errors.Is(err, plugin.ErrNoEntryPoint) {
		t.Errorf("Load() error = %v, want ErrNoEntryPoint", err)
	}
	if h.State() != plugin.StateError {
		t.Errorf("State() = %v, want error", h.State())
	}
	if h.LoadError() == nil {
		t.Error("LoadError() = nil, want error")
	}
}

func TestHostScriptError(t *testing.T) {
	h := newTestHost(t, `error("init failed")`)

	if err := h.Load(); err == nil {
		t.Fatal("Load() with failing script should error")
	}
	if h.State() != plugin.StateError {
		t.Errorf("State() = %v, want error", h.State())
	}
}

func TestHostCommandFailure(t *testing.T) {
	h := newTestHost(t, `
pictor.register_command("deny", {"image"}, function(cmd)
	return false, "deny: not permitted"
end)
pictor.register_command("boom", {"image"}, function(cmd)
	error("internal")
end)
`)
	if err := h.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	byName := make(map[string]handler.Handler)
	for _, cmd := range h.Commands() {
		byName[cmd.Name] = cmd.Handler
	}
	ctx := &execctx.ExecutionContext{Mode: mode.ModeImage}

	res := byName["deny"].Handle(command.Action{Name: "deny"}, ctx)
	if !res.IsError() {
		t.Errorf("deny result = %+v, want error", res)
	}
	if res.Message != "deny: not permitted" {
		t.Errorf("deny Message = %q", res.Message)
	}

	res = byName["boom"].Handle(command.Action{Name: "boom"}, ctx)
	if !res.IsError() {
		t.Errorf("boom result = %+v, want error", res)
	}
	if res.Message != "boom: plugin error" {
		t.Errorf("boom Message = %q, want %q", res.Message, "boom: plugin error")
	}
}

func TestHostClose(t *testing.T) {
	h := newTestHost(t, `
pictor.register_command("noop", {"image"}, function(cmd) end)
`)
	if err := h.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if err := h.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if h.State() != plugin.StateClosed {
		t.Errorf("State() = %v, want closed", h.State())
	}

	// Invoking a command after Close fails instead of panicking.
	cmds := h.Commands()
	res := cmds[0].Handler.Handle(command.Action{Name: "noop"}, &execctx.ExecutionContext{Mode: mode.ModeImage})
	if !res.IsError() {
		t.Errorf("result after Close = %+v, want error", res)
	}
}
