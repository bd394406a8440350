package app

import (
	"github.com/dshills/gale/internal/renderer/backend"
)

// HandleEvent processes one backend event. It returns ErrQuit when the
// application should exit. A panic in a handler is returned as a
// RecoveredPanicError.
func (app *Application) HandleEvent(ev backend.Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = NewRecoveredPanicError(r)
		}
	}()

	switch ev.Type {
	case backend.EventKey:
		return app.handleKey(ev)
	case backend.EventPaste:
		return app.handlePaste(ev)
	default:
		// Resizes are picked up by the next Render.
		return nil
	}
}

func (app *Application) handleKey(ev backend.Event) error {
	if app.prompt != nil {
		return app.handlePromptKey(ev)
	}
	if cmd, ok := commands[ev.Key]; ok {
		return cmd(app)
	}
	return app.handleEditKey(ev)
}

// handleEditKey applies editing and navigation keys to the engine.
func (app *Application) handleEditKey(ev backend.Event) error {
	e := app.doc.Engine

	switch ev.Key {
	case backend.KeyRune:
		return app.edit(func() error { return e.InsertChar(ev.Rune) })
	case backend.KeyEnter:
		return app.edit(e.Newline)
	case backend.KeyTab:
		return app.edit(e.InsertTab)
	case backend.KeyBackspace:
		return app.edit(e.Backspace)
	case backend.KeyDelete:
		return app.edit(e.DeleteForward)

	case backend.KeyLeft:
		app.beepUnless(e.MoveLeft())
	case backend.KeyRight:
		app.beepUnless(e.MoveRight())
	case backend.KeyUp:
		app.beepUnless(e.MoveUp() == nil)
	case backend.KeyDown:
		app.beepUnless(e.MoveDown() == nil)
	case backend.KeyHome:
		e.Home()
	case backend.KeyEnd:
		e.End()
	case backend.KeyPageUp:
		app.beepUnless(e.PageUp() == nil)
	case backend.KeyPageDown:
		app.beepUnless(e.PageDown() == nil)
	}
	return nil
}

// edit runs a buffer change. Any edit ends find highlighting.
func (app *Application) edit(fn func() error) error {
	if err := fn(); err != nil {
		return err
	}
	app.highlights = nil
	return nil
}

func (app *Application) beepUnless(ok bool) {
	if !ok && app.backend != nil {
		app.backend.Beep()
	}
}

func (app *Application) handlePaste(ev backend.Event) error {
	if ev.PasteText == "" {
		return nil
	}
	if app.prompt != nil {
		app.prompt.InsertString(ev.PasteText)
		return nil
	}
	return app.edit(func() error { return app.doc.Engine.InsertText(ev.PasteText) })
}

func (app *Application) handlePromptKey(ev backend.Event) error {
	p := app.prompt

	switch ev.Key {
	case backend.KeyEscape:
		app.prompt = nil
	case backend.KeyEnter:
		app.prompt = nil
		return app.submitPrompt(p.Kind, p.Text())
	case backend.KeyRune:
		p.Insert(ev.Rune)
	case backend.KeyBackspace:
		p.Backspace()
	case backend.KeyDelete:
		p.Delete()
	case backend.KeyLeft:
		p.Left()
	case backend.KeyRight:
		p.Right()
	case backend.KeyHome:
		p.Home()
	case backend.KeyEnd:
		p.End()
	}
	return nil
}
