// Package statusline provides the status bar and the message line below it.
package statusline

import (
	"github.com/dshills/gale/internal/renderer/backend"
	"github.com/dshills/gale/internal/renderer/core"
)

// MessageType indicates the type of message line text.
type MessageType int

const (
	MessageNone MessageType = iota
	MessageInfo
	MessageError
)

// Prompt is an active single-line input shown on the message line.
type Prompt struct {
	Label  string
	Input  string
	Cursor int // rune index into Input
}

// StatusLine renders the status bar and message line.
type StatusLine struct {
	layout      Layout
	barStyle    core.Style
	promptStyle core.Style
}

// New creates a status line with the given layout.
func New(layout Layout, barStyle, promptStyle core.Style) *StatusLine {
	return &StatusLine{
		layout:      layout,
		barStyle:    barStyle,
		promptStyle: promptStyle,
	}
}

// SetLayout replaces the status bar layout.
func (s *StatusLine) SetLayout(layout Layout) {
	s.layout = layout
}

// SetStyles replaces the bar and message line styles.
func (s *StatusLine) SetStyles(barStyle, promptStyle core.Style) {
	s.barStyle = barStyle
	s.promptStyle = promptStyle
}

// RenderBar draws the status bar across row y.
func (s *StatusLine) RenderBar(b backend.Backend, y, width int, info Info) {
	b.Fill(core.RectFromSize(y, 0, 1, width), core.NewStyledCell(' ', s.barStyle))
	backend.DrawString(b, 0, y, width, s.layout.Assemble(info, width), s.barStyle)
}

// RenderMessage draws the message line on row y. An active prompt takes
// precedence over the message and receives the terminal cursor.
func (s *StatusLine) RenderMessage(b backend.Backend, y, width int, msg string, kind MessageType, prompt *Prompt) {
	b.Fill(core.RectFromSize(y, 0, 1, width), core.NewStyledCell(' ', s.promptStyle))

	if prompt != nil {
		x := backend.DrawString(b, 0, y, width, prompt.Label, s.promptStyle)
		input := []rune(prompt.Input)
		// Scroll the input so the caret stays on screen.
		start := 0
		if avail := width - x - 1; avail > 0 && prompt.Cursor > avail {
			start = prompt.Cursor - avail
		}
		backend.DrawString(b, x, y, width, string(input[min(start, len(input)):]), s.promptStyle)
		b.ShowCursor(min(x+prompt.Cursor-start, max(width-1, 0)), y)
		return
	}

	style := s.promptStyle
	if kind == MessageError {
		style = style.Bold()
	}
	backend.DrawString(b, 0, y, width, msg, style)
}
