// Package dispatcher implements mode-gated command dispatch.
//
// Plugins register commands keyed by (mode, name) in a Registry; the
// Dispatcher parses command lines, resolves them against the registry
// under the mode manager's current mode, and invokes the matching handler
// synchronously with the active widget. Outcomes surface on the message
// bus as status messages or through the dialog service as fire-and-forget
// dialog requests.
//
// Registration is one-shot during startup: a duplicate command name in an
// overlapping mode is a configuration fault that aborts initialization.
// At dispatch time an unmatched command is recoverable and only produces
// a user-visible error message.
package dispatcher
