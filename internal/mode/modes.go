package mode

// base provides the shared no-op Enter/Exit behavior for the built-in
// modes. External collaborators that need transition side effects use
// Manager.OnChange instead.
type base struct {
	name    string
	display string
}

func (b base) Name() string        { return b.name }
func (b base) DisplayName() string { return b.display }
func (b base) Enter(*Context) error {
	return nil
}
func (b base) Exit(*Context) error {
	return nil
}

// NewImage creates the image viewing mode.
func NewImage() Mode {
	return base{name: ModeImage, display: "IMAGE"}
}

// NewLibrary creates the directory browser mode.
func NewLibrary() Mode {
	return base{name: ModeLibrary, display: "LIBRARY"}
}

// NewThumbnail creates the thumbnail grid mode.
func NewThumbnail() Mode {
	return base{name: ModeThumbnail, display: "THUMBNAIL"}
}

// NewCommand creates the command-line entry mode.
func NewCommand() Mode {
	return base{name: ModeCommand, display: "COMMAND"}
}

// Builtin returns all built-in modes.
func Builtin() []Mode {
	return []Mode{NewImage(), NewLibrary(), NewThumbnail(), NewCommand()}
}
