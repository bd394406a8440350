package config

import (
	"fmt"

	"github.com/dshills/gale/internal/engine"
	"github.com/dshills/gale/internal/renderer"
	"github.com/dshills/gale/internal/renderer/core"
	"github.com/dshills/gale/internal/renderer/gutter"
)

// EngineOptions returns the engine options for these settings.
func (s Settings) EngineOptions() []engine.Option {
	return []engine.Option{
		engine.WithTabSize(s.Editor.TabSize),
		engine.WithScrollLines(s.Cursor.ScrollLines),
		engine.WithUndoCapacity(s.Editor.UndoCapacity),
		engine.WithUndoWindow(s.Editor.UndoWindow),
	}
}

// ApplyToEngine updates a running engine. Shrinking the undo capacity
// evicts the oldest snapshots.
func (s Settings) ApplyToEngine(e *engine.Engine) {
	e.SetTabSize(s.Editor.TabSize)
	e.SetScrollLines(s.Cursor.ScrollLines)
	e.SetUndoCapacity(s.Editor.UndoCapacity)
	e.SetUndoWindow(s.Editor.UndoWindow)
}

// RendererOptions converts the display and colour settings.
func (s Settings) RendererOptions() (renderer.Options, error) {
	mode, err := gutter.ParseLineNumberMode(s.Display.LineNumbers)
	if err != nil {
		return renderer.Options{}, fmt.Errorf("display.line_numbers: %w", err)
	}

	theme, err := s.Colors.Theme()
	if err != nil {
		return renderer.Options{}, err
	}

	return renderer.Options{
		Gutter: gutter.Config{
			ShowLineNumbers:    s.Display.ShowLineNumbers,
			MinLineNumberWidth: s.Display.LineNumberMinWidth,
			Mode:               mode,
		},
		StatusBarLayout: s.Display.StatusBar,
		Theme:           theme,
	}, nil
}

// Theme parses the colour pairs into renderer styles.
func (c ColorConfig) Theme() (renderer.Theme, error) {
	var theme renderer.Theme
	fields := []struct {
		path string
		pair string
		dst  *core.Style
	}{
		{"colors.text", c.Text, &theme.Text},
		{"colors.cursor", c.Cursor, &theme.Cursor},
		{"colors.line_number", c.LineNumber, &theme.LineNumber},
		{"colors.empty_line_number", c.EmptyLineNumber, &theme.EmptyLineNumber},
		{"colors.status_bar", c.StatusBar, &theme.StatusBar},
		{"colors.prompt", c.Prompt, &theme.Prompt},
		{"colors.match", c.Match, &theme.Match},
	}
	for _, f := range fields {
		style, err := core.ParseStyle(f.pair)
		if err != nil {
			return renderer.Theme{}, fmt.Errorf("%s: %w", f.path, err)
		}
		*f.dst = style
	}
	return theme, nil
}
