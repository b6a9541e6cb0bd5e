package app

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/pictor/internal/command/history"
	"github.com/dshills/pictor/internal/mode"
)

// eventLoop polls terminal events until quit is requested.
func (app *Application) eventLoop() error {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	go app.screen.ChannelEvents(events, quit)

	app.draw()

	for {
		select {
		case <-app.done:
			close(quit)
			return nil

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				app.screen.Sync()
				app.draw()
			case *tcell.EventKey:
				app.handleKey(ev)
				app.draw()
			}
		}
	}
}

// handleKey routes a key event by mode: command mode edits the input
// line, all other modes react to the command-line entry keys.
func (app *Application) handleKey(ev *tcell.EventKey) {
	if app.modes.IsMode(mode.ModeCommand) {
		app.handleCommandKey(ev)
		return
	}

	if ev.Key() == tcell.KeyRune {
		switch ev.Rune() {
		case ':':
			app.enterCommandMode(":")
		case '/':
			app.enterCommandMode("/")
		case 'q':
			app.requestQuit()
		}
	}
}

// handleCommandKey edits the command line.
func (app *Application) handleCommandKey(ev *tcell.EventKey) {
	switch ev.Key() {
	case tcell.KeyEscape:
		app.leaveCommandMode()

	case tcell.KeyEnter:
		line := app.input
		app.leaveCommandMode()
		app.runner.Run(line)

	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(app.input) > 1 {
			runes := []rune(app.input)
			app.input = string(runes[:len(runes)-1])
		} else {
			// Deleting the prompt aborts entry.
			app.leaveCommandMode()
		}

	case tcell.KeyUp:
		app.input = app.history.Cycle(history.Next, app.input)

	case tcell.KeyDown:
		app.input = app.history.Cycle(history.Prev, app.input)

	case tcell.KeyRune:
		app.input += string(ev.Rune())
	}
}

// enterCommandMode switches to command mode with the given prompt. The
// active widget is saved so the previous mode gets it back on exit.
func (app *Application) enterCommandMode(prompt string) {
	w := app.modes.ActiveWidget()
	if err := app.modes.Switch(mode.ModeCommand); err != nil {
		app.logger.Error("enter command mode: %v", err)
		return
	}
	app.savedWidget = w
	app.input = prompt
}

// leaveCommandMode restores the previous mode and its widget and clears
// the line. It runs before the entered command is dispatched, so the
// dispatch resolves against the restored mode and widget.
func (app *Application) leaveCommandMode() {
	app.input = ""
	app.history.Reset()

	target := mode.ModeLibrary
	if prev := app.modes.Previous(); prev != nil {
		target = prev.Name()
	}
	w := app.savedWidget
	app.savedWidget = nil
	if err := app.modes.SwitchWithWidget(target, w); err != nil {
		app.logger.Error("leave command mode: %v", err)
	}
}

// draw renders the bottom row: the command line while typing, otherwise
// the status bar.
func (app *Application) draw() {
	if app.modes.IsMode(mode.ModeCommand) {
		app.drawCommandLine()
	} else {
		app.screen.HideCursor()
		app.statusBar.Draw(app.screen)
	}
	app.screen.Show()
}

// drawCommandLine renders the input line over the status row.
func (app *Application) drawCommandLine() {
	width, height := app.screen.Size()
	if width == 0 || height == 0 {
		return
	}
	row := height - 1

	style := tcell.StyleDefault
	for x := 0; x < width; x++ {
		app.screen.SetContent(x, row, ' ', nil, style)
	}
	x := 0
	for _, r := range app.input {
		if x >= width {
			break
		}
		app.screen.SetContent(x, row, r, nil, style)
		x++
	}
	app.screen.ShowCursor(x, row)
}
