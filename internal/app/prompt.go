package app

import "github.com/dshills/gale/internal/renderer/statusline"

// PromptKind identifies what a submitted prompt does.
type PromptKind int

const (
	PromptSave PromptKind = iota
	PromptOpen
	PromptGoto
	PromptFind
	PromptScript
)

var promptLabels = map[PromptKind]string{
	PromptSave:   "Save file: ",
	PromptOpen:   "Open file: ",
	PromptGoto:   "Line number: ",
	PromptFind:   "Regex to find: ",
	PromptScript: "Run script: ",
}

// Label returns the text shown before the input.
func (k PromptKind) Label() string {
	return promptLabels[k]
}

// Prompt is single-line input on the message line. The caret is a rune
// index into the input.
type Prompt struct {
	Kind  PromptKind
	input []rune
	pos   int
}

// NewPrompt creates an empty prompt of the given kind.
func NewPrompt(kind PromptKind) *Prompt {
	return &Prompt{Kind: kind}
}

// Text returns the current input.
func (p *Prompt) Text() string {
	return string(p.input)
}

// Cursor returns the caret position.
func (p *Prompt) Cursor() int {
	return p.pos
}

// Insert inserts r at the caret.
func (p *Prompt) Insert(r rune) {
	p.input = append(p.input, 0)
	copy(p.input[p.pos+1:], p.input[p.pos:])
	p.input[p.pos] = r
	p.pos++
}

// InsertString inserts s at the caret, dropping line breaks.
func (p *Prompt) InsertString(s string) {
	for _, r := range s {
		if r == '\n' || r == '\r' {
			continue
		}
		p.Insert(r)
	}
}

// Backspace removes the rune before the caret.
func (p *Prompt) Backspace() {
	if p.pos == 0 {
		return
	}
	p.input = append(p.input[:p.pos-1], p.input[p.pos:]...)
	p.pos--
}

// Delete removes the rune after the caret.
func (p *Prompt) Delete() {
	if p.pos == len(p.input) {
		return
	}
	p.input = append(p.input[:p.pos], p.input[p.pos+1:]...)
}

// Left moves the caret one rune left.
func (p *Prompt) Left() {
	p.pos = max(p.pos-1, 0)
}

// Right moves the caret one rune right.
func (p *Prompt) Right() {
	p.pos = min(p.pos+1, len(p.input))
}

// Home moves the caret to the start of the input.
func (p *Prompt) Home() {
	p.pos = 0
}

// End moves the caret past the last rune.
func (p *Prompt) End() {
	p.pos = len(p.input)
}

// View returns the prompt as drawn by the status line.
func (p *Prompt) View() *statusline.Prompt {
	return &statusline.Prompt{
		Label:  p.Kind.Label(),
		Input:  p.Text(),
		Cursor: p.pos,
	}
}
