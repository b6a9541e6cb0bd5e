// Package print provides the built-in print plugin. In image mode it
// opens the print or print-preview dialog for the active widget.
package print

import (
	"github.com/dshills/pictor/internal/command"
	"github.com/dshills/pictor/internal/dialog"
	"github.com/dshills/pictor/internal/dispatcher"
	"github.com/dshills/pictor/internal/dispatcher/execctx"
	"github.com/dshills/pictor/internal/dispatcher/handler"
	"github.com/dshills/pictor/internal/mode"
)

// FlagPreview selects the print-preview dialog instead of the print dialog.
const FlagPreview = "preview"

// Plugin implements the print command.
type Plugin struct{}

// New creates the print plugin.
func New() *Plugin {
	return &Plugin{}
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return "print"
}

// Commands returns the commands the plugin provides.
func (p *Plugin) Commands() []dispatcher.Command {
	return []dispatcher.Command{
		{
			Name:        "print",
			Modes:       []string{mode.ModeImage},
			Description: "Print the current image, or preview with --preview",
			Handler:     handler.NewHandlerFunc(p.run),
		},
	}
}

// run opens the print or print-preview dialog for the active widget.
// Flags other than --preview are ignored.
func (p *Plugin) run(act command.Action, ctx *execctx.ExecutionContext) handler.Result {
	if !ctx.HasWidget() {
		return handler.ErrorWithMessage("print: No widget to print")
	}

	kind := dialog.KindPrint
	if act.HasFlag(FlagPreview) {
		kind = dialog.KindPrintPreview
	}

	ctx.Dialogs.Show(dialog.Request{Kind: kind, Widget: ctx.Widget})
	return handler.Success()
}
