// Package dialog provides fire-and-forget requests to present modal
// dialogs. The core never awaits the dialog's user interaction result;
// presentation belongs to the hosting UI.
package dialog

import (
	"fmt"
	"sync"

	"github.com/dshills/pictor/internal/message"
	"github.com/dshills/pictor/internal/mode"
)

// Kind names the dialog to show.
type Kind string

// Dialog kinds issued by the core.
const (
	// KindPrint is the OS-native print dialog.
	KindPrint Kind = "print"

	// KindPrintPreview is the print preview dialog.
	KindPrintPreview Kind = "print-preview"
)

// Request asks the hosting UI to show a named dialog bound to a widget.
type Request struct {
	// Kind names the dialog to show.
	Kind Kind

	// Widget is the target of the dialog.
	Widget mode.Widget
}

// Service presents dialogs. Show must not block on user interaction.
type Service interface {
	Show(req Request)
}

// ServiceFunc is a function adapter for Service.
type ServiceFunc func(req Request)

// Show implements the Service interface.
func (f ServiceFunc) Show(req Request) {
	f(req)
}

// Recorder is a Service that records requests, for tests and headless use.
type Recorder struct {
	mu       sync.Mutex
	requests []Request
}

// NewRecorder creates a new request recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Show records the request.
func (r *Recorder) Show(req Request) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, req)
}

// Requests returns a copy of the recorded requests.
func (r *Recorder) Requests() []Request {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Request, len(r.requests))
	copy(out, r.requests)
	return out
}

// Reset discards all recorded requests.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = nil
}

// NewStatusFallback returns a Service for hosts without native dialogs.
// It reports each request on the message bus instead of presenting UI.
func NewStatusFallback(bus message.Bus) Service {
	return ServiceFunc(func(req Request) {
		target := "none"
		if req.Widget != nil {
			target = req.Widget.Name()
		}
		bus.Publish(message.Info(fmt.Sprintf("%s: dialog requested for %s", req.Kind, target)))
	})
}
