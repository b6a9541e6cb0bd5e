package handler

import "fmt"

// ResultStatus indicates the outcome of a command.
type ResultStatus uint8

const (
	// StatusOK indicates successful execution.
	StatusOK ResultStatus = iota
	// StatusNoOp indicates the command had no effect.
	StatusNoOp
	// StatusError indicates an error occurred.
	StatusError
	// StatusCancelled indicates the command was not executed.
	StatusCancelled
)

// String returns a string representation of the status.
func (s ResultStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoOp:
		return "no-op"
	case StatusError:
		return "error"
	case StatusCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Result represents the outcome of handling a command. The dispatcher
// publishes Message on the bus, so a populated Message is the handler's
// way of talking to the user; Error stays with the calling code.
type Result struct {
	// Status indicates the result status.
	Status ResultStatus

	// Error contains any error that occurred.
	Error error

	// Message is an optional status message for display.
	Message string

	// ModeChange requests a mode transition (empty if no change).
	ModeChange string

	// Data holds handler-specific return data.
	Data map[string]any
}

// IsOK returns true if the result indicates success.
func (r Result) IsOK() bool {
	return r.Status == StatusOK
}

// IsError returns true if the result indicates an error.
func (r Result) IsError() bool {
	return r.Status == StatusError
}

// Success creates a successful result.
func Success() Result {
	return Result{Status: StatusOK}
}

// SuccessWithMessage creates a successful result with a message.
func SuccessWithMessage(msg string) Result {
	return Result{Status: StatusOK, Message: msg}
}

// NoOp creates a no-operation result.
func NoOp() Result {
	return Result{Status: StatusNoOp}
}

// Error creates an error result.
func Error(err error) Result {
	return Result{Status: StatusError, Error: err}
}

// Errorf creates an error result with a formatted error.
func Errorf(format string, args ...any) Result {
	return Result{Status: StatusError, Error: fmt.Errorf(format, args...)}
}

// ErrorWithMessage creates an error result whose exact text is shown to
// the user.
func ErrorWithMessage(msg string) Result {
	return Result{
		Status:  StatusError,
		Error:   fmt.Errorf("%s", msg),
		Message: msg,
	}
}

// Cancelled creates a cancelled result with a message.
func Cancelled(msg string) Result {
	return Result{Status: StatusCancelled, Message: msg}
}

// WithMessage returns a copy of the result with the given message.
func (r Result) WithMessage(msg string) Result {
	r.Message = msg
	return r
}

// WithModeChange returns a copy of the result requesting a mode change.
func (r Result) WithModeChange(mode string) Result {
	r.ModeChange = mode
	return r
}

// WithData returns a copy of the result with data added.
func (r Result) WithData(key string, value any) Result {
	if r.Data == nil {
		r.Data = make(map[string]any)
	}
	r.Data[key] = value
	return r
}

// GetData retrieves a value from the result data.
func (r Result) GetData(key string) (any, bool) {
	if r.Data == nil {
		return nil, false
	}
	v, ok := r.Data[key]
	return v, ok
}
