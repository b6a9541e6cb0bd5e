// Package handler provides the handler interface and result types for
// command dispatch.
package handler

import (
	"github.com/dshills/pictor/internal/command"
	"github.com/dshills/pictor/internal/dispatcher/execctx"
)

// Handler processes a command invocation. Routing is done by the
// registry's (mode, name) key; the handler only executes.
type Handler interface {
	// Handle executes the command and returns a result.
	Handle(act command.Action, ctx *execctx.ExecutionContext) Result
}

// HandlerFunc is a function adapter for the Handler interface.
type HandlerFunc func(act command.Action, ctx *execctx.ExecutionContext) Result

// NewHandlerFunc creates a HandlerFunc from a function.
func NewHandlerFunc(fn func(act command.Action, ctx *execctx.ExecutionContext) Result) HandlerFunc {
	return HandlerFunc(fn)
}

// Handle implements Handler.Handle.
func (f HandlerFunc) Handle(act command.Action, ctx *execctx.ExecutionContext) Result {
	if f == nil {
		return Errorf("handler function is nil")
	}
	return f(act, ctx)
}
