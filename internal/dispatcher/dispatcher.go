// Package dispatcher routes textual commands to plugin handlers, gated by
// the current mode, and surfaces outcomes on the message bus.
package dispatcher

import (
	"fmt"
	"runtime"
	"time"

	"github.com/dshills/pictor/internal/command"
	"github.com/dshills/pictor/internal/dialog"
	"github.com/dshills/pictor/internal/dispatcher/execctx"
	"github.com/dshills/pictor/internal/dispatcher/handler"
	"github.com/dshills/pictor/internal/message"
	"github.com/dshills/pictor/internal/mode"
)

// Dispatcher resolves command lines against the registry and invokes the
// matching handler synchronously. Collaborators are passed explicitly so
// each instance is isolated; there is no ambient singleton state.
type Dispatcher struct {
	registry *Registry
	modes    *mode.Manager
	bus      message.Bus
	dialogs  dialog.Service

	config Config

	metrics *Metrics
}

// New creates a dispatcher wired to its collaborators.
func New(reg *Registry, modes *mode.Manager, bus message.Bus, dialogs dialog.Service, config Config) *Dispatcher {
	d := &Dispatcher{
		registry: reg,
		modes:    modes,
		bus:      bus,
		dialogs:  dialogs,
		config:   config,
	}
	if config.EnableMetrics {
		d.metrics = NewMetrics()
	}
	return d
}

// Run tokenizes and executes a single command line.
//
// An unmatched command emits exactly one error message on the bus and
// returns without invoking any handler. A matched command runs
// synchronously with the active widget; its result message, if any, is
// published with a severity matching the result status, then the result
// is returned unmodified to the caller. Handler failures are terminal for
// the invocation and never crash the caller.
func (d *Dispatcher) Run(line string) handler.Result {
	startTime := time.Now()

	act := command.Parse(line)
	if act.IsEmpty() {
		return handler.NoOp()
	}

	// The mode is read at dispatch time; a completed mode switch is
	// observable by the very next Run.
	currentMode := d.modes.CurrentName()

	cmd, err := d.registry.Resolve(act.Name, currentMode)
	if err != nil {
		text := fmt.Sprintf("%s: command not available in %s", act.Name, currentMode)
		d.bus.Publish(message.Error(text))
		result := handler.Error(err)
		d.record(act.Name, startTime, result.Status)
		return result
	}

	ctx := d.buildContext(currentMode)

	var result handler.Result
	if d.config.RecoverFromPanic {
		result = d.executeWithRecovery(cmd, act, ctx)
	} else {
		result = cmd.Handler.Handle(act, ctx)
	}

	d.processResult(result)
	d.record(act.Name, startTime, result.Status)

	return result
}

// buildContext builds an execution context from current state.
func (d *Dispatcher) buildContext(currentMode string) *execctx.ExecutionContext {
	ctx := execctx.New()
	ctx.Mode = currentMode
	ctx.Widget = d.modes.ActiveWidget()
	ctx.Bus = d.bus
	ctx.Dialogs = d.dialogs
	return ctx
}

// executeWithRecovery executes a handler with panic recovery.
func (d *Dispatcher) executeWithRecovery(cmd *Command, act command.Action, ctx *execctx.ExecutionContext) (result handler.Result) {
	defer func() {
		if r := recover(); r != nil {
			stack := make([]byte, 4096)
			n := runtime.Stack(stack, false)

			result = handler.Errorf("handler panic for %s: %v\n%s", cmd.Name, r, string(stack[:n]))
			result.Message = fmt.Sprintf("%s: internal error", cmd.Name)

			if d.metrics != nil {
				d.metrics.RecordPanic(cmd.Name)
			}
		}
	}()

	return cmd.Handler.Handle(act, ctx)
}

// processResult publishes the result message and applies mode changes.
// Publishing here rather than in handlers keeps every user-visible
// outcome on the bus exactly once per invocation.
func (d *Dispatcher) processResult(result handler.Result) {
	if result.Message != "" {
		if result.IsError() {
			d.bus.Publish(message.Error(result.Message))
		} else {
			d.bus.Publish(message.Info(result.Message))
		}
	}

	if result.ModeChange != "" {
		if err := d.modes.Switch(result.ModeChange); err != nil {
			d.bus.Publish(message.Error(err.Error()))
		}
	}
}

func (d *Dispatcher) record(name string, start time.Time, status handler.ResultStatus) {
	if d.metrics != nil {
		d.metrics.RecordDispatch(name, time.Since(start), status)
	}
}

// Registry returns the command registry.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Metrics returns the metrics collector (nil if disabled).
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Config returns the dispatcher configuration.
func (d *Dispatcher) Config() Config {
	return d.config
}
