package statusbar

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/pictor/internal/config"
	"github.com/dshills/pictor/internal/message"
	"github.com/dshills/pictor/internal/mode"
)

func newTestModes(t *testing.T) *mode.Manager {
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

func TestStatusBarLatestMessageWins(t *testing.T) {
	bus := message.NewBus()
	bar := New(bus, newTestModes(t), DefaultOptions())

	bus.Publish(message.Info("first"))
	bus.Publish(message.Error("second"))

	msg, ok := bar.Current()
	if !ok {
		t.Fatal("Current() ok = false, want message")
	}
	if msg.Text != "second" || msg.Kind != message.KindError {
		t.Errorf("Current() = %+v, want second/error", msg)
	}
}

func TestStatusBarMessageExpiry(t *testing.T) {
	bus := message.NewBus()
	opts := DefaultOptions()
	opts.MessageTimeout = 100 * time.Millisecond
	bar := New(bus, newTestModes(t), opts)

	base := time.Now()
	bar.now = func() time.Time { return base }
	bus.Publish(message.Info("transient"))

	if _, ok := bar.Current(); !ok {
		t.Fatal("message should be visible before timeout")
	}

	bar.now = func() time.Time { return base.Add(200 * time.Millisecond) }
	if _, ok := bar.Current(); ok {
		t.Error("message should have expired")
	}
}

func TestStatusBarNoTimeout(t *testing.T) {
	bus := message.NewBus()
	opts := DefaultOptions()
	opts.MessageTimeout = 0
	bar := New(bus, newTestModes(t), opts)

	base := time.Now()
	bar.now = func() time.Time { return base }
	bus.Publish(message.Info("sticky"))

	bar.now = func() time.Time { return base.Add(time.Hour) }
	if _, ok := bar.Current(); !ok {
		t.Error("message with zero timeout should never expire")
	}
}

func TestStatusBarClear(t *testing.T) {
	bus := message.NewBus()
	bar := New(bus, newTestModes(t), DefaultOptions())

	bus.Publish(message.Info("gone soon"))
	bar.Clear()
	if _, ok := bar.Current(); ok {
		t.Error("Current() after Clear should report no message")
	}
}

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.New()
	opts := OptionsFromConfig(cfg)

	if !opts.ShowMode {
		t.Error("ShowMode = false, want true from defaults")
	}
	if opts.MessageTimeout != 5*time.Second {
		t.Errorf("MessageTimeout = %v, want 5s", opts.MessageTimeout)
	}
}

func TestHexColorFallback(t *testing.T) {
	fallback := tcell.ColorRed
	if got := hexColor("not-a-color", fallback); got != fallback {
		t.Errorf("hexColor() = %v, want fallback", got)
	}
	if got := hexColor("#102030", fallback); got == fallback {
		t.Error("hexColor() with valid hex should not return fallback")
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		text string
		max  int
		want string
	}{
		{"short", 10, "short"},
		{"exactly ten chars here", 10, "exactly t…"},
		{"anything", 0, ""},
		{"ab", 2, "ab"},
	}
	for _, tt := range tests {
		if got := truncate(tt.text, tt.max); got != tt.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tt.text, tt.max, got, tt.want)
		}
	}
}

func TestStatusBarDraw(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(40, 5)

	bus := message.NewBus()
	modes := newTestModes(t)
	opts := DefaultOptions()
	opts.MessageTimeout = 0
	bar := New(bus, modes, opts)

	bus.Publish(message.Info("3 images loaded"))
	bar.Draw(screen)
	screen.Show()

	row := screenRow(screen, 4)
	if !strings.HasPrefix(row, "3 images loaded") {
		t.Errorf("row = %q, want message on the left", row)
	}
	if !strings.Contains(row, " IMAGE ") {
		t.Errorf("row = %q, want mode indicator on the right", row)
	}
}

func TestStatusBarDrawWithoutMode(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("screen init: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(40, 5)

	bus := message.NewBus()
	opts := DefaultOptions()
	opts.ShowMode = false
	bar := New(bus, newTestModes(t), opts)

	bar.Draw(screen)
	screen.Show()

	row := screenRow(screen, 4)
	if strings.Contains(row, "IMAGE") {
		t.Errorf("row = %q, mode indicator should be hidden", row)
	}
}

// screenRow reassembles the text of a simulation screen row.
func screenRow(screen tcell.SimulationScreen, row int) string {
	cells, width, _ := screen.GetContents()
	var sb strings.Builder
	for x := 0; x < width; x++ {
		cell := cells[row*width+x]
		sb.Write(cell.Bytes)
	}
	return sb.String()
}
