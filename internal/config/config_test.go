package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/pictor/internal/config"
)

func TestDefaults(t *testing.T) {
	s := config.New()

	if got := s.GetString("startup_mode"); got != "library" {
		t.Errorf("expected default startup_mode library, got %q", got)
	}
	if !s.GetBool("statusbar.show_mode") {
		t.Error("expected statusbar.show_mode default true")
	}
	if got := s.GetInt("history.max_items"); got != 100 {
		t.Errorf("expected history.max_items 100, got %d", got)
	}
	if s.Has("no.such.setting") {
		t.Error("expected unknown path to be absent")
	}
}

func TestSetOverridesDefault(t *testing.T) {
	s := config.New()

	if err := s.Set("statusbar.show_mode", false); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if s.GetBool("statusbar.show_mode") {
		t.Error("expected user setting to override default")
	}

	// Other defaults remain visible.
	if got := s.GetInt("statusbar.message_timeout_ms"); got != 5000 {
		t.Errorf("expected untouched default, got %d", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	s := config.New()

	if err := s.Load(filepath.Join(t.TempDir(), "absent.json")); err != nil {
		t.Fatalf("expected missing file to be tolerated, got %v", err)
	}
	if got := s.GetString("startup_mode"); got != "library" {
		t.Errorf("expected defaults after missing file, got %q", got)
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	s := config.New()
	if err := s.Load(path); !errors.Is(err, config.ErrInvalidJSON) {
		t.Errorf("expected ErrInvalidJSON, got %v", err)
	}
}

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pictor", "settings.json")

	s := config.New()
	if err := s.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := s.Set("theme.error", "#ff0000"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded := config.New()
	if err := reloaded.Load(path); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := reloaded.GetString("theme.error"); got != "#ff0000" {
		t.Errorf("expected persisted value, got %q", got)
	}
}

func TestSaveWithoutPath(t *testing.T) {
	s := config.New()
	if err := s.Save(); !errors.Is(err, config.ErrNoPath) {
		t.Errorf("expected ErrNoPath, got %v", err)
	}
}

func TestSetRaw(t *testing.T) {
	s := config.New()

	if err := s.SetRaw("keybindings", `{"p": "print"}`); err != nil {
		t.Fatalf("SetRaw: %v", err)
	}
	if got := s.GetString("keybindings.p"); got != "print" {
		t.Errorf("expected raw fragment stored, got %q", got)
	}

	if err := s.SetRaw("broken", `{oops`); !errors.Is(err, config.ErrInvalidJSON) {
		t.Errorf("expected ErrInvalidJSON, got %v", err)
	}
}

func TestDefaultPathUsesXDGConfigHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	want := filepath.Join(dir, "pictor", "settings.json")
	if got := config.DefaultPath(); got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}
