// Package message provides the status message bus. Commands and plugins
// publish short status messages; display surfaces such as the status bar
// subscribe to them.
package message

// Kind classifies the severity of a message.
type Kind uint8

const (
	// KindInfo is a neutral status message.
	KindInfo Kind = iota
	// KindWarning is a non-fatal problem worth showing to the user.
	KindWarning
	// KindError is a failure the user should see.
	KindError
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case KindInfo:
		return "info"
	case KindWarning:
		return "warning"
	case KindError:
		return "error"
	default:
		return "unknown"
	}
}

// Message is an immutable status string with a severity tag.
type Message struct {
	// Text is the user-visible message text.
	Text string

	// Kind is the message severity.
	Kind Kind
}

// Info creates an info message.
func Info(text string) Message {
	return Message{Text: text, Kind: KindInfo}
}

// Warning creates a warning message.
func Warning(text string) Message {
	return Message{Text: text, Kind: KindWarning}
}

// Error creates an error message.
func Error(text string) Message {
	return Message{Text: text, Kind: KindError}
}

// IsError returns true for error messages.
func (m Message) IsError() bool {
	return m.Kind == KindError
}

// Handler receives published messages.
type Handler interface {
	// Handle processes a single message. It must not block.
	Handle(msg Message)
}

// HandlerFunc is a function adapter for Handler.
type HandlerFunc func(msg Message)

// Handle implements the Handler interface.
func (f HandlerFunc) Handle(msg Message) {
	f(msg)
}
