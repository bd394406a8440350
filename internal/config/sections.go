package config

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/dshills/gale/internal/renderer/core"
	"github.com/dshills/gale/internal/renderer/gutter"
	"github.com/dshills/gale/internal/renderer/statusline"
)

// Default setting values.
const (
	DefaultTabSize            = 4
	DefaultUndoWindow         = 500 * time.Millisecond
	DefaultUndoCapacity       = 15
	DefaultMessageTimeout     = 3 * time.Second
	DefaultQuitConfirmations  = 3
	DefaultScrollLines        = 10
	DefaultLineNumberMinWidth = gutter.MinLineNumberWidth
)

// Settings is a snapshot of every gale setting. It is a plain value:
// mutating a copy does not affect the Config it came from.
type Settings struct {
	Editor  EditorConfig
	Cursor  CursorConfig
	Display DisplayConfig
	Colors  ColorConfig
}

// EditorConfig holds editing behaviour settings.
type EditorConfig struct {
	// TabSize is the tab stop width used when Tab inserts spaces.
	TabSize int

	// UndoWindow is the coalescing window: edits closer together than
	// this collapse into one undo step.
	UndoWindow time.Duration

	// UndoCapacity bounds the number of stored undo snapshots.
	UndoCapacity int

	// MessageTimeout is how long message line text stays visible.
	MessageTimeout time.Duration

	// QuitConfirmations is how many Ctrl+Q presses quit a modified buffer.
	QuitConfirmations int
}

// CursorConfig holds cursor movement settings.
type CursorConfig struct {
	// ScrollLines is how far PageUp and PageDown move the cursor.
	ScrollLines int
}

// DisplayConfig holds layout settings.
type DisplayConfig struct {
	ShowLineNumbers    bool
	LineNumbers        string // absolute, relative or hybrid
	LineNumberMinWidth int
	StatusBar          string // status bar layout
}

// ColorConfig holds the "FG_BG" colour pair for each screen element.
type ColorConfig struct {
	Text            string
	Cursor          string
	LineNumber      string
	EmptyLineNumber string
	StatusBar       string
	Prompt          string
	Match           string
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Editor: EditorConfig{
			TabSize:           DefaultTabSize,
			UndoWindow:        DefaultUndoWindow,
			UndoCapacity:      DefaultUndoCapacity,
			MessageTimeout:    DefaultMessageTimeout,
			QuitConfirmations: DefaultQuitConfirmations,
		},
		Cursor: CursorConfig{
			ScrollLines: DefaultScrollLines,
		},
		Display: DisplayConfig{
			ShowLineNumbers:    true,
			LineNumbers:        gutter.LineNumberAbsolute.String(),
			LineNumberMinWidth: DefaultLineNumberMinWidth,
			StatusBar:          statusline.DefaultLayout,
		},
		Colors: ColorConfig{
			Text:            "WHITE_BLACK",
			Cursor:          "BLACK_WHITE",
			LineNumber:      "BLACK_WHITE",
			EmptyLineNumber: "WHITE_BLACK",
			StatusBar:       "WHITE_BLUE",
			Prompt:          "WHITE_BLACK",
			Match:           "BLACK_YELLOW",
		},
	}
}

// Validate checks every setting and returns all failures joined.
func (s Settings) Validate() error {
	var errs []error
	positive := func(path string, v int) {
		if v <= 0 {
			errs = append(errs, &ValidationError{Path: path, Message: "must be positive", Value: v})
		}
	}

	positive("editor.tab_size", s.Editor.TabSize)
	positive("editor.undo_capacity", s.Editor.UndoCapacity)
	positive("editor.quit_confirmations", s.Editor.QuitConfirmations)
	positive("cursor.scroll_lines", s.Cursor.ScrollLines)
	positive("display.line_number_min_width", s.Display.LineNumberMinWidth)

	if s.Editor.UndoWindow < 0 {
		errs = append(errs, &ValidationError{Path: "editor.undo_window", Message: "must not be negative", Value: s.Editor.UndoWindow})
	}
	if s.Editor.MessageTimeout <= 0 {
		errs = append(errs, &ValidationError{Path: "editor.message_timeout", Message: "must be positive", Value: s.Editor.MessageTimeout})
	}
	if _, err := gutter.ParseLineNumberMode(s.Display.LineNumbers); err != nil {
		errs = append(errs, &ValidationError{Path: "display.line_numbers", Message: err.Error(), Value: s.Display.LineNumbers})
	}
	if _, err := statusline.ParseLayout(s.Display.StatusBar); err != nil {
		errs = append(errs, &ValidationError{Path: "display.status_bar", Message: err.Error(), Value: s.Display.StatusBar})
	}

	for path, pair := range s.Colors.pairs() {
		if _, err := core.ParseStyle(pair); err != nil {
			errs = append(errs, &ValidationError{Path: path, Message: err.Error(), Value: pair})
		}
	}

	return errors.Join(errs...)
}

func (c ColorConfig) pairs() map[string]string {
	return map[string]string{
		"colors.text":              c.Text,
		"colors.cursor":            c.Cursor,
		"colors.line_number":       c.LineNumber,
		"colors.empty_line_number": c.EmptyLineNumber,
		"colors.status_bar":        c.StatusBar,
		"colors.prompt":            c.Prompt,
		"colors.match":             c.Match,
	}
}

// Flatten returns every setting keyed by its dotted path. Durations are
// rendered as strings so the map can be written back as TOML or YAML.
func (s Settings) Flatten() map[string]any {
	m := map[string]any{
		"editor.tab_size":               s.Editor.TabSize,
		"editor.undo_window":            s.Editor.UndoWindow.String(),
		"editor.undo_capacity":          s.Editor.UndoCapacity,
		"editor.message_timeout":        s.Editor.MessageTimeout.String(),
		"editor.quit_confirmations":     s.Editor.QuitConfirmations,
		"cursor.scroll_lines":           s.Cursor.ScrollLines,
		"display.line_numbers":          s.lineNumbersValue(),
		"display.line_number_min_width": s.Display.LineNumberMinWidth,
		"display.status_bar":            s.Display.StatusBar,
	}
	for path, pair := range s.Colors.pairs() {
		m[path] = pair
	}
	return m
}

// Tree returns Flatten nested by section.
func (s Settings) Tree() map[string]any {
	tree := make(map[string]any)
	for path, v := range s.Flatten() {
		section, key, _ := strings.Cut(path, ".")
		sec, ok := tree[section].(map[string]any)
		if !ok {
			sec = make(map[string]any)
			tree[section] = sec
		}
		sec[key] = v
	}
	return tree
}

func (s Settings) lineNumbersValue() string {
	if !s.Display.ShowLineNumbers {
		return "off"
	}
	return s.Display.LineNumbers
}

// Diff returns the paths whose values differ between s and other, sorted.
func (s Settings) Diff(other Settings) []string {
	a, b := s.Flatten(), other.Flatten()
	var changed []string
	for path, v := range a {
		if b[path] != v {
			changed = append(changed, path)
		}
	}
	sort.Strings(changed)
	return changed
}
