package app

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/dshills/pictor/internal/command/history"
	"github.com/dshills/pictor/internal/dispatcher"
	"github.com/dshills/pictor/internal/dispatcher/handler"
	"github.com/dshills/pictor/internal/message"
)

// SearchFunc runs a search for the given pattern.
type SearchFunc func(pattern string)

// ExternalFunc runs an external shell command.
type ExternalFunc func(cmdline string) error

// Runner interprets finished command-line input. The leading character
// selects the backend: ":" dispatches a viewer command, ":!" runs an
// external shell command, "/" searches.
type Runner struct {
	dispatcher *dispatcher.Dispatcher
	history    *history.History
	bus        message.Bus

	external ExternalFunc
	search   SearchFunc
}

// NewRunner creates a runner. A nil external function falls back to
// running through the shell; a nil search function reports search as
// unavailable.
func NewRunner(d *dispatcher.Dispatcher, hist *history.History, bus message.Bus) *Runner {
	return &Runner{
		dispatcher: d,
		history:    hist,
		bus:        bus,
		external:   runShell,
	}
}

// SetSearch installs the search backend.
func (r *Runner) SetSearch(fn SearchFunc) {
	r.search = fn
}

// SetExternal installs the external command backend.
func (r *Runner) SetExternal(fn ExternalFunc) {
	if fn != nil {
		r.external = fn
	}
}

// Run executes one finished command line, prefix included, and records
// it in history.
func (r *Runner) Run(text string) handler.Result {
	if strings.TrimSpace(text) == "" || text == ":" || text == "/" {
		return handler.NoOp()
	}
	if r.history != nil {
		r.history.Update(text)
	}

	switch {
	case strings.HasPrefix(text, ":!"):
		return r.runExternal(strings.TrimSpace(text[2:]))
	case strings.HasPrefix(text, ":"):
		return r.dispatcher.Run(text[1:])
	case strings.HasPrefix(text, "/"):
		return r.runSearch(text[1:])
	default:
		// Bare text behaves like a ":" command.
		return r.dispatcher.Run(text)
	}
}

func (r *Runner) runExternal(cmdline string) handler.Result {
	if cmdline == "" {
		return handler.NoOp()
	}
	if err := r.external(cmdline); err != nil {
		text := fmt.Sprintf("!%s: %v", cmdline, err)
		r.bus.Publish(message.Error(text))
		return handler.Error(err)
	}
	return handler.Success()
}

func (r *Runner) runSearch(pattern string) handler.Result {
	if r.search == nil {
		r.bus.Publish(message.Error("search: not available"))
		return handler.Errorf("search backend not configured")
	}
	r.search(pattern)
	return handler.Success()
}

// runShell executes a command line through the shell.
func runShell(cmdline string) error {
	return exec.Command("sh", "-c", cmdline).Run()
}
