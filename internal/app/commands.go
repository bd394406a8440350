package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dshills/gale/internal/engine"
	"github.com/dshills/gale/internal/renderer"
	"github.com/dshills/gale/internal/renderer/backend"
	"github.com/dshills/gale/internal/script"
)

// command handles a control key outside of prompts.
type command func(app *Application) error

var commands = map[backend.Key]command{
	backend.KeyCtrlS: (*Application).cmdSave,
	backend.KeyCtrlO: (*Application).cmdOpen,
	backend.KeyCtrlA: (*Application).cmdHelp,
	backend.KeyCtrlQ: (*Application).cmdQuit,
	backend.KeyCtrlG: (*Application).cmdGoto,
	backend.KeyCtrlW: (*Application).cmdWordCount,
	backend.KeyCtrlF: (*Application).cmdFind,
	backend.KeyCtrlZ: (*Application).cmdUndo,
	backend.KeyCtrlR: (*Application).cmdScript,
}

func (app *Application) cmdSave() error {
	if app.doc.IsScratch() {
		app.prompt = NewPrompt(PromptSave)
		return nil
	}
	app.save("")
	return nil
}

func (app *Application) cmdOpen() error {
	app.prompt = NewPrompt(PromptOpen)
	return nil
}

func (app *Application) cmdHelp() error {
	app.setMessage(app.help.Next(app.now()))
	return nil
}

func (app *Application) cmdQuit() error {
	if !app.doc.IsModified() {
		return ErrQuit
	}
	quit, remaining := app.quit.Press(app.now())
	if quit {
		return ErrQuit
	}
	app.setError(fmt.Sprintf("File has unsaved changes. Press Ctrl+Q %d more %s to quit",
		remaining, plural(remaining, "time", "times")))
	return nil
}

func (app *Application) cmdGoto() error {
	app.prompt = NewPrompt(PromptGoto)
	return nil
}

func (app *Application) cmdWordCount() error {
	app.setMessage(fmt.Sprintf("There are %d words in the current file", app.doc.Engine.WordCount()))
	return nil
}

func (app *Application) cmdFind() error {
	app.prompt = NewPrompt(PromptFind)
	return nil
}

func (app *Application) cmdScript() error {
	app.prompt = NewPrompt(PromptScript)
	return nil
}

func (app *Application) cmdUndo() error {
	snap, err := app.doc.Engine.Undo()
	if errors.Is(err, engine.ErrNothingToUndo) {
		app.setMessage("Nothing to undo")
		return nil
	}
	if err != nil {
		return err
	}
	app.highlights = nil
	app.metrics.RecordUndo()
	app.Logger().WithComponent("history").Debug("restored snapshot %s", snap.ID)
	return nil
}

// submitPrompt runs the action of an entered prompt. Empty input cancels.
func (app *Application) submitPrompt(kind PromptKind, input string) error {
	if strings.TrimSpace(input) == "" {
		return nil
	}

	switch kind {
	case PromptSave:
		app.save(input)
	case PromptOpen:
		app.open(input)
	case PromptGoto:
		app.gotoLine(input)
	case PromptFind:
		app.find(input)
	case PromptScript:
		app.runScript(input)
	}
	return nil
}

func (app *Application) save(path string) {
	log := app.Logger().WithComponent("document")
	n, err := app.Save(path)
	if err != nil {
		log.Error("save: %v", err)
		app.setError("Failed to save file, make sure the location exists and you have permission")
		return
	}
	log.Info("saved %s (%d bytes)", app.doc.Path, n)
	app.setMessage(fmt.Sprintf("%d bytes written to disk", n))
}

func (app *Application) open(path string) {
	log := app.Logger().WithComponent("document")
	n, err := app.doc.Open(path)
	if err != nil {
		log.Error("open: %v", err)
		app.setError("Failed to open file, make sure the file exists and you have permission")
		return
	}
	app.highlights = nil
	log.Info("opened %s (%d bytes)", path, n)
	app.setMessage(fmt.Sprintf("Loaded %d bytes from %s", n, path))
}

func (app *Application) gotoLine(input string) {
	line, err := strconv.Atoi(strings.TrimSpace(input))
	if err == nil {
		err = app.doc.Engine.GotoLine(line)
	}
	if err != nil {
		app.setError("Invalid line entered")
	}
}

func (app *Application) find(pattern string) {
	matches, err := app.doc.Engine.Find(pattern)
	if err != nil {
		app.setError(fmt.Sprintf("Invalid regex %q", pattern))
		return
	}
	if len(matches) == 0 {
		app.highlights = nil
		app.setMessage(fmt.Sprintf("No matches found for %q", pattern))
		return
	}

	app.highlights = make([]renderer.Highlight, len(matches))
	for i, m := range matches {
		app.highlights[i] = renderer.Highlight{Row: m.Row, Col: m.Col, Len: m.Len}
	}
	app.doc.Engine.JumpToMatch(matches)
	app.setMessage(fmt.Sprintf("Found %d %s for %q", len(matches), plural(len(matches), "match", "matches"), pattern))
}

func (app *Application) runScript(path string) {
	if err := app.RunScript(app.ctx, path); err != nil {
		app.setError("Script failed: " + err.Error())
	}
}

// RunScript executes a Lua file against the document. Print output and
// ed.message text go to the message line and to ScriptOutput when set.
func (app *Application) RunScript(ctx context.Context, path string) error {
	log := app.Logger().WithComponent("script")
	app.setMessage("Ran " + path)

	err := script.RunFile(ctx, app.doc.Engine, app, path, script.WithOutput(&scriptWriter{app: app}))
	app.highlights = nil
	if err != nil {
		log.Error("%s: %v", path, err)
		return err
	}
	log.Info("ran %s", path)
	return nil
}

// Save implements script.Host. An empty path saves to the document's own
// path.
func (app *Application) Save(path string) (int, error) {
	return app.doc.Save(path)
}

// Message implements script.Host.
func (app *Application) Message(text string) {
	app.setMessage(text)
	if app.scriptOut != nil {
		_, _ = io.WriteString(app.scriptOut, text+"\n")
	}
}

// scriptWriter shows the last line printed by a script.
type scriptWriter struct {
	app *Application
}

func (w *scriptWriter) Write(p []byte) (int, error) {
	if w.app.scriptOut != nil {
		if _, err := w.app.scriptOut.Write(p); err != nil {
			return 0, err
		}
	}
	if line := lastLine(string(p)); line != "" {
		w.app.setMessage(line)
	}
	return len(p), nil
}

func lastLine(s string) string {
	s = strings.TrimRight(s, "\r\n")
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	return s
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
