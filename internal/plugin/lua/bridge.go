package lua

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/pictor/internal/message"
	"github.com/dshills/pictor/internal/mode"
)

// CommandSpec is a command registered from Lua.
type CommandSpec struct {
	// Name is the command name.
	Name string

	// Modes are the mode names the command is valid in.
	Modes []string

	// Description is a short help text.
	Description string

	// Fn is the Lua function implementing the command.
	Fn *lua.LFunction
}

// Bridge installs the pictor module into a Lua state and collects the
// commands plugin code registers.
type Bridge struct {
	state *State
	bus   message.Bus
	modes *mode.Manager

	specs []CommandSpec
}

// NewBridge creates a bridge for the given state and collaborators.
func NewBridge(state *State, bus message.Bus, modes *mode.Manager) *Bridge {
	return &Bridge{state: state, bus: bus, modes: modes}
}

// Install registers the pictor module in the Lua state.
func (b *Bridge) Install() {
	L := b.state.L

	mod := L.NewTable()
	L.SetFuncs(mod, map[string]lua.LGFunction{
		"register_command": b.luaRegisterCommand,
		"message":          b.luaMessage,
		"current_mode":     b.luaCurrentMode,
		"widget":           b.luaWidget,
	})
	L.SetGlobal("pictor", mod)
}

// Specs returns the commands registered so far.
func (b *Bridge) Specs() []CommandSpec {
	out := make([]CommandSpec, len(b.specs))
	copy(out, b.specs)
	return out
}

// luaRegisterCommand implements pictor.register_command(name, modes, fn[, description]).
func (b *Bridge) luaRegisterCommand(L *lua.LState) int {
	name := L.CheckString(1)
	modesTable := L.CheckTable(2)
	fn := L.CheckFunction(3)
	description := L.OptString(4, "")

	var modes []string
	modesTable.ForEach(func(_, v lua.LValue) {
		if s, ok := v.(lua.LString); ok {
			modes = append(modes, string(s))
		}
	})
	if len(modes) == 0 {
		L.ArgError(2, "at least one mode required")
		return 0
	}

	b.specs = append(b.specs, CommandSpec{
		Name:        name,
		Modes:       modes,
		Description: description,
		Fn:          fn,
	})
	return 0
}

// luaMessage implements pictor.message(kind, text).
func (b *Bridge) luaMessage(L *lua.LState) int {
	kind := L.CheckString(1)
	text := L.CheckString(2)

	switch kind {
	case "error":
		b.bus.Publish(message.Error(text))
	case "warning":
		b.bus.Publish(message.Warning(text))
	default:
		b.bus.Publish(message.Info(text))
	}
	return 0
}

// luaCurrentMode implements pictor.current_mode().
func (b *Bridge) luaCurrentMode(L *lua.LState) int {
	L.Push(lua.LString(b.modes.CurrentName()))
	return 1
}

// luaWidget implements pictor.widget(); returns the active widget name
// or nil.
func (b *Bridge) luaWidget(L *lua.LState) int {
	w := b.modes.ActiveWidget()
	if w == nil {
		L.Push(lua.LNil)
	} else {
		L.Push(lua.LString(w.Name()))
	}
	return 1
}

// InvocationTable builds the Lua argument table for a command call.
func (b *Bridge) InvocationTable(name string, flags map[string]string, args []string, modeName string, widget mode.Widget) *lua.LTable {
	L := b.state.L

	tbl := L.NewTable()
	tbl.RawSetString("name", lua.LString(name))
	tbl.RawSetString("mode", lua.LString(modeName))

	flagsTbl := L.NewTable()
	for key, value := range flags {
		if value == "" {
			flagsTbl.RawSetString(key, lua.LTrue)
		} else {
			flagsTbl.RawSetString(key, lua.LString(value))
		}
	}
	tbl.RawSetString("flags", flagsTbl)

	argsTbl := L.NewTable()
	for _, arg := range args {
		argsTbl.Append(lua.LString(arg))
	}
	tbl.RawSetString("args", argsTbl)

	if widget != nil {
		tbl.RawSetString("widget", lua.LString(widget.Name()))
	}
	return tbl
}

// Outcome is the interpreted result of a Lua command call.
type Outcome struct {
	// OK reports whether the command succeeded.
	OK bool

	// Message is an optional status text.
	Message string
}

// CallCommand invokes a registered command function with the invocation
// table and interprets its return values.
func (b *Bridge) CallCommand(spec CommandSpec, invocation *lua.LTable) (Outcome, error) {
	results, err := b.state.Call(spec.Fn, 2, invocation)
	if err != nil {
		return Outcome{}, fmt.Errorf("lua: command %s: %w", spec.Name, err)
	}
	return interpretResults(results), nil
}

// interpretResults maps Lua return values to an Outcome:
// nothing or nil or true -> success; a string -> success with message;
// false plus optional string -> failure with message.
func interpretResults(results []lua.LValue) Outcome {
	if len(results) == 0 {
		return Outcome{OK: true}
	}

	switch first := results[0].(type) {
	case *lua.LNilType:
		return Outcome{OK: true}
	case lua.LBool:
		out := Outcome{OK: bool(first)}
		if len(results) > 1 {
			if s, ok := results[1].(lua.LString); ok {
				out.Message = string(s)
			}
		}
		return out
	case lua.LString:
		return Outcome{OK: true, Message: string(first)}
	default:
		return Outcome{OK: true}
	}
}
