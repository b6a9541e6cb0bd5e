// Package statusbar renders the bottom status row: the latest bus
// message on the left and the current mode indicator on the right.
package statusbar

import (
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/dshills/pictor/internal/config"
	"github.com/dshills/pictor/internal/message"
	"github.com/dshills/pictor/internal/mode"
)

// ellipsis marks truncated text.
const ellipsis = "…"

// Options configure a status bar.
type Options struct {
	// Theme holds the bar colors.
	Theme Theme

	// ShowMode toggles the mode indicator on the right.
	ShowMode bool

	// MessageTimeout is how long a message stays visible. Zero means
	// messages never expire.
	MessageTimeout time.Duration
}

// DefaultOptions returns the built-in status bar options.
func DefaultOptions() Options {
	return Options{
		Theme:          DefaultTheme(),
		ShowMode:       true,
		MessageTimeout: 5 * time.Second,
	}
}

// OptionsFromConfig builds options from the statusbar.* and theme.*
// settings.
func OptionsFromConfig(cfg *config.Settings) Options {
	return Options{
		Theme:          ThemeFromConfig(cfg),
		ShowMode:       cfg.GetBool("statusbar.show_mode"),
		MessageTimeout: time.Duration(cfg.GetInt("statusbar.message_timeout_ms")) * time.Millisecond,
	}
}

// StatusBar subscribes to the message bus and renders the latest message
// alongside the current mode.
type StatusBar struct {
	mu sync.Mutex

	modes *mode.Manager
	opts  Options

	msg    message.Message
	hasMsg bool
	setAt  time.Time

	sub message.Subscription

	// now is swappable for tests.
	now func() time.Time
}

// New creates a status bar and subscribes it to the bus.
func New(bus message.Bus, modes *mode.Manager, opts Options) *StatusBar {
	s := &StatusBar{
		modes: modes,
		opts:  opts,
		now:   time.Now,
	}
	s.sub = bus.Subscribe(s)
	return s
}

// Handle implements message.Handler; the latest message wins.
func (s *StatusBar) Handle(msg message.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.msg = msg
	s.hasMsg = true
	s.setAt = s.now()
}

// Current returns the visible message, if any. Expired messages are
// dropped.
func (s *StatusBar) Current() (message.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.hasMsg {
		return message.Message{}, false
	}
	if s.opts.MessageTimeout > 0 && s.now().Sub(s.setAt) >= s.opts.MessageTimeout {
		s.hasMsg = false
		return message.Message{}, false
	}
	return s.msg, true
}

// Clear drops the visible message.
func (s *StatusBar) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hasMsg = false
}

// Subscription returns the bar's bus subscription, for teardown.
func (s *StatusBar) Subscription() message.Subscription {
	return s.sub
}

// Draw renders the status bar onto the bottom row of the screen.
func (s *StatusBar) Draw(screen tcell.Screen) {
	width, height := screen.Size()
	if width == 0 || height == 0 {
		return
	}
	row := height - 1

	theme := s.opts.Theme
	bar := theme.barStyle()
	for x := 0; x < width; x++ {
		screen.SetContent(x, row, ' ', nil, bar)
	}

	// Mode indicator on the right.
	left := width
	if s.opts.ShowMode {
		if cur := s.modes.Current(); cur != nil {
			badge := " " + cur.DisplayName() + " "
			bw := uniseg.StringWidth(badge)
			if bw < width {
				drawText(screen, width-bw, row, badge, theme.modeStyle())
				left = width - bw - 1
			}
		}
	}

	// Latest message on the left, truncated to the space remaining.
	if msg, ok := s.Current(); ok {
		style := theme.messageStyle(msg.Kind == message.KindError, msg.Kind == message.KindWarning)
		drawText(screen, 0, row, truncate(msg.Text, left), style)
	}
}

// drawText writes a string starting at (x, row), grapheme by grapheme.
func drawText(screen tcell.Screen, x, row int, text string, style tcell.Style) {
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		runes := g.Runes()
		if len(runes) == 0 {
			continue
		}
		screen.SetContent(x, row, runes[0], runes[1:], style)
		x += g.Width()
	}
}

// truncate shortens text to at most max display cells, appending an
// ellipsis when anything was cut.
func truncate(text string, max int) string {
	if max <= 0 {
		return ""
	}
	if uniseg.StringWidth(text) <= max {
		return text
	}

	budget := max - uniseg.StringWidth(ellipsis)
	var out []byte
	used := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		w := g.Width()
		if used+w > budget {
			break
		}
		out = append(out, g.Str()...)
		used += w
	}
	return string(out) + ellipsis
}
