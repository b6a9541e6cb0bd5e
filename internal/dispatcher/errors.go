package dispatcher

import "errors"

// Dispatcher errors.
var (
	// ErrCommandNotFound indicates no command matched under the current mode.
	ErrCommandNotFound = errors.New("dispatcher: command not found")

	// ErrDuplicateCommand indicates two plugins registered the same command
	// name for an overlapping mode. This is a startup configuration fault.
	ErrDuplicateCommand = errors.New("dispatcher: duplicate command")

	// ErrNilPlugin indicates a nil plugin was passed to RegisterPlugin.
	ErrNilPlugin = errors.New("dispatcher: nil plugin")

	// ErrNoModes indicates a command was declared without any valid mode.
	ErrNoModes = errors.New("dispatcher: command declares no modes")

	// ErrNilHandler indicates a command was declared without a handler.
	ErrNilHandler = errors.New("dispatcher: command has no handler")
)
