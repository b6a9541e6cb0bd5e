package app

import (
	"fmt"
	"strconv"

	"github.com/dshills/pictor/internal/command"
	"github.com/dshills/pictor/internal/dispatcher"
	"github.com/dshills/pictor/internal/dispatcher/execctx"
	"github.com/dshills/pictor/internal/dispatcher/handler"
	"github.com/dshills/pictor/internal/mode"
)

// builtinPlugin provides the commands every installation has: quit,
// mode switching, and settings changes.
type builtinPlugin struct {
	app *Application
}

// Name implements dispatcher.Plugin.
func (p *builtinPlugin) Name() string {
	return "builtin"
}

// Commands implements dispatcher.Plugin.
func (p *builtinPlugin) Commands() []dispatcher.Command {
	allModes := []string{mode.ModeImage, mode.ModeLibrary, mode.ModeThumbnail, mode.ModeCommand}

	return []dispatcher.Command{
		{
			Name:        "quit",
			Modes:       allModes,
			Description: "exit the viewer",
			Handler:     handler.NewHandlerFunc(p.runQuit),
		},
		{
			Name:        "enter",
			Modes:       allModes,
			Description: "switch to another mode",
			Handler:     handler.NewHandlerFunc(p.runEnter),
		},
		{
			Name:        "set",
			Modes:       allModes,
			Description: "change a setting",
			Handler:     handler.NewHandlerFunc(p.runSet),
		},
	}
}

func (p *builtinPlugin) runQuit(_ command.Action, _ *execctx.ExecutionContext) handler.Result {
	p.app.requestQuit()
	return handler.Success()
}

func (p *builtinPlugin) runEnter(act command.Action, _ *execctx.ExecutionContext) handler.Result {
	if len(act.Args) != 1 {
		return handler.ErrorWithMessage("enter: usage: enter <mode>")
	}
	target := act.Args[0]
	if p.app.modes.Get(target) == nil {
		return handler.ErrorWithMessage(fmt.Sprintf("enter: unknown mode %s", target))
	}
	return handler.Success().WithModeChange(target)
}

func (p *builtinPlugin) runSet(act command.Action, _ *execctx.ExecutionContext) handler.Result {
	if len(act.Args) != 2 {
		return handler.ErrorWithMessage("set: usage: set <option> <value>")
	}
	key, raw := act.Args[0], act.Args[1]

	if err := p.app.settings.Set(key, coerceValue(raw)); err != nil {
		return handler.Error(err).WithMessage(fmt.Sprintf("set: cannot set %s", key))
	}
	return handler.SuccessWithMessage(fmt.Sprintf("%s = %s", key, raw))
}

// coerceValue maps literal booleans and numbers to their JSON types;
// everything else stays a string.
func coerceValue(raw string) any {
	switch raw {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.Atoi(raw); err == nil {
		return n
	}
	return raw
}
