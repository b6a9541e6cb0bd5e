// Package execctx provides the execution context for command handlers.
package execctx

import (
	"github.com/dshills/pictor/internal/dialog"
	"github.com/dshills/pictor/internal/message"
	"github.com/dshills/pictor/internal/mode"
)

// ExecutionContext carries the state a handler may act on during a single
// command invocation. The widget reference is non-owning and must not be
// retained past the invocation.
type ExecutionContext struct {
	// Mode is the name of the mode the command was dispatched under.
	Mode string

	// Widget is the active widget, or nil when none is present.
	Widget mode.Widget

	// Bus is the status message bus.
	Bus message.Bus

	// Dialogs presents modal dialogs, fire-and-forget.
	Dialogs dialog.Service

	// Data holds dispatch-scoped values shared between hooks and handlers.
	Data map[string]any
}

// New creates an empty execution context.
func New() *ExecutionContext {
	return &ExecutionContext{
		Data: make(map[string]any),
	}
}

// HasWidget returns true if a widget is bound to the invocation.
func (ctx *ExecutionContext) HasWidget() bool {
	return ctx.Widget != nil
}
