// Package plugin loads runtime plugins written in Lua.
//
// A plugin is a directory containing a plugin.json manifest and a Lua
// entry script. At load time the script registers commands through the
// pictor module:
//
//	pictor.register_command("hello", {"image"}, function(cmd)
//	    pictor.message("info", "hello " .. (cmd.widget or "nobody"))
//	    return true
//	end)
//
// Command functions receive a table with the command name, flags, args,
// mode and widget name. They return nothing or true for success, a string
// for success with a status message, or false plus a message for failure.
//
// A loaded Host implements dispatcher.Plugin, so Lua commands enter the
// same registry, mode gating and duplicate rules as built-in commands.
package plugin
