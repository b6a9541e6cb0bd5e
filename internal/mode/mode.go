// Package mode tracks the application's operating modes and the widget,
// if any, a command can act upon. The current mode gates which commands
// the dispatcher will resolve.
package mode

// Mode defines the interface for viewer modes.
// Each mode determines which commands are valid and what the status bar
// displays.
type Mode interface {
	// Name returns the unique mode identifier (e.g., "image", "library").
	Name() string

	// DisplayName returns a human-readable name for the status bar.
	DisplayName() string

	// Enter is called when entering this mode.
	Enter(ctx *Context) error

	// Exit is called when leaving this mode.
	Exit(ctx *Context) error
}

// Widget is an opaque handle to the on-screen object a command acts upon,
// such as the loaded image view. The mode manager owns the reference;
// command handlers hold it only for a single invocation.
type Widget interface {
	// Name identifies the widget (e.g., the loaded image path).
	Name() string
}

// Context provides information during mode transitions.
type Context struct {
	// PreviousMode is the mode being transitioned from (for Enter).
	PreviousMode string

	// NextMode is the mode being transitioned to (for Exit).
	NextMode string

	// Widget is the widget that will be active after the transition,
	// or nil if the new mode has none.
	Widget Widget
}

// NewContext creates a new mode context.
func NewContext() *Context {
	return &Context{}
}

// Standard mode names.
const (
	// ModeImage is the single-image viewing mode.
	ModeImage = "image"

	// ModeLibrary is the directory browser mode.
	ModeLibrary = "library"

	// ModeThumbnail is the thumbnail grid mode.
	ModeThumbnail = "thumbnail"

	// ModeCommand is the command-line entry mode.
	ModeCommand = "command"
)
