package engine

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/dshills/gale/internal/engine/buffer"
	"github.com/dshills/gale/internal/engine/cursor"
	"github.com/dshills/gale/internal/engine/history"
)

// Re-export commonly used types for convenience.
type (
	// Point represents a row and gap column position.
	Point = buffer.Point

	// LineEnding specifies the line ending style.
	LineEnding = buffer.LineEnding

	// Snapshot is a captured undo state.
	Snapshot = history.Snapshot

	// Direction is a vertical scroll direction.
	Direction = cursor.Direction
)

// Re-export constants.
const (
	LineEndingLF   = buffer.LineEndingLF
	LineEndingCRLF = buffer.LineEndingCRLF
	LineEndingCR   = buffer.LineEndingCR
)

// Match is a single find result. Col and Len are measured in columns.
type Match struct {
	Row int
	Col int
	Len int
}

// Engine is the editing session: a line buffer, the cursor into it and the
// undo engine watching them. It is driven from a single goroutine.
type Engine struct {
	buf  *buffer.Buffer
	cur  *cursor.Cursor
	hist *history.History

	tabSize     int
	scrollLines int
	lineEnding  LineEnding
	modified    bool

	// creation-only settings
	initContent  string
	undoCapacity int
	undoWindow   time.Duration
	clock        history.Clock
}

// New creates an engine and captures its initial content as the undo floor.
func New(opts ...Option) *Engine {
	e := &Engine{
		tabSize:      DefaultTabSize,
		scrollLines:  DefaultScrollLines,
		lineEnding:   LineEndingLF,
		undoCapacity: DefaultUndoCapacity,
		undoWindow:   DefaultUndoWindow,
		clock:        history.SystemClock{},
	}
	for _, opt := range opts {
		opt(e)
	}

	e.buf = buffer.NewFromString(e.initContent)
	e.cur = cursor.New()
	e.hist = history.New(
		history.WithClock(e.clock),
		history.WithCapacity(e.undoCapacity),
		history.WithWindow(e.undoWindow),
	)
	e.hist.Tick(e.buf, e.cur.Position())
	return e
}

// Read Operations

// Buffer returns the underlying line buffer. Callers must not mutate it.
func (e *Engine) Buffer() *buffer.Buffer {
	return e.buf
}

// History returns the undo engine.
func (e *Engine) History() *history.History {
	return e.hist
}

// Cursor returns the cursor position.
func (e *Engine) Cursor() Point {
	return e.cur.Position()
}

// LineCount returns the number of lines.
func (e *Engine) LineCount() int {
	return e.buf.LineCount()
}

// Line returns the text of a line.
func (e *Engine) Line(row int) (string, error) {
	return e.buf.Line(row)
}

// Lines returns a copy of every line.
func (e *Engine) Lines() []string {
	return e.buf.Lines()
}

// Text returns the content joined with the engine's line ending.
func (e *Engine) Text() string {
	return strings.Join(e.buf.Lines(), e.lineEnding.Sequence())
}

// Modified reports whether the content changed since the last load or save.
func (e *Engine) Modified() bool {
	return e.modified
}

// MarkSaved clears the modified flag.
func (e *Engine) MarkSaved() {
	e.modified = false
}

// TabSize returns the tab stop width.
func (e *Engine) TabSize() int {
	return e.tabSize
}

// SetTabSize changes the tab stop width. Non-positive values are ignored.
func (e *Engine) SetTabSize(size int) {
	if size > 0 {
		e.tabSize = size
	}
}

// ScrollLines returns how far PageUp and PageDown move.
func (e *Engine) ScrollLines() int {
	return e.scrollLines
}

// SetScrollLines changes how far PageUp and PageDown move.
func (e *Engine) SetScrollLines(lines int) {
	if lines > 0 {
		e.scrollLines = lines
	}
}

// Editing

// InsertChar inserts ch at the cursor and advances past it.
func (e *Engine) InsertChar(ch rune) error {
	pos := e.cur.Position()
	p, err := e.buf.InsertChar(pos.Row, pos.Col, ch)
	if err != nil {
		return fmt.Errorf("insert %q at %s: %w", ch, pos, err)
	}
	e.cur.SetPosition(e.buf, p.Row, p.Col)
	e.edited()
	return nil
}

// InsertText inserts s at the cursor. Newlines split the line.
func (e *Engine) InsertText(s string) error {
	for _, line := range strings.SplitAfter(s, "\n") {
		text := strings.TrimSuffix(line, "\n")
		for _, ch := range text {
			if ch == '\r' {
				continue
			}
			if err := e.InsertChar(ch); err != nil {
				return err
			}
		}
		if len(text) < len(line) {
			if err := e.Newline(); err != nil {
				return err
			}
		}
	}
	return nil
}

// InsertTab inserts spaces up to the next tab stop.
func (e *Engine) InsertTab() error {
	n := e.tabSize - e.cur.Col()%e.tabSize
	for i := 0; i < n; i++ {
		if err := e.InsertChar(' '); err != nil {
			return err
		}
	}
	return nil
}

// Backspace deletes the character before the cursor, joining with the
// previous line at column 0. The cursor moves left first and the deletion
// happens at the old position. At the start of the buffer it does nothing.
func (e *Engine) Backspace() error {
	old := e.cur.Position()
	if !e.cur.MoveHorizontal(e.buf, -1) {
		return nil
	}
	p, err := e.buf.DeleteBefore(old.Row, old.Col)
	if err != nil {
		e.cur.SetPosition(e.buf, old.Row, old.Col)
		return fmt.Errorf("backspace at %s: %w", old, err)
	}
	e.cur.SetPosition(e.buf, p.Row, p.Col)
	e.edited()
	return nil
}

// DeleteForward deletes the character after the cursor, joining the next line
// at the end of a line. The cursor does not move.
func (e *Engine) DeleteForward() error {
	pos := e.cur.Position()
	if pos.Col == e.buf.LineLen(pos.Row) && pos.Row == e.buf.LineCount()-1 {
		return nil
	}
	if _, err := e.buf.DeleteAfter(pos.Row, pos.Col); err != nil {
		return fmt.Errorf("delete at %s: %w", pos, err)
	}
	e.edited()
	return nil
}

// Newline splits the line at the cursor and moves to the start of the new line.
func (e *Engine) Newline() error {
	pos := e.cur.Position()
	p, err := e.buf.SplitLine(pos.Row, pos.Col)
	if err != nil {
		return fmt.Errorf("newline at %s: %w", pos, err)
	}
	e.cur.SetPosition(e.buf, p.Row, p.Col)
	e.edited()
	return nil
}

// Navigation

// MoveLeft moves one column left, wrapping to the previous line.
func (e *Engine) MoveLeft() bool {
	return e.cur.MoveHorizontal(e.buf, -1)
}

// MoveRight moves one column right, wrapping to the next line.
func (e *Engine) MoveRight() bool {
	return e.cur.MoveHorizontal(e.buf, 1)
}

// MoveUp moves one line up, keeping the desired column.
func (e *Engine) MoveUp() error {
	return e.cur.MoveVertical(e.buf, -1)
}

// MoveDown moves one line down, keeping the desired column.
func (e *Engine) MoveDown() error {
	return e.cur.MoveVertical(e.buf, 1)
}

// Home moves to the start of the line.
func (e *Engine) Home() {
	e.cur.MoveToLineStart()
}

// End moves past the end of the line.
func (e *Engine) End() {
	e.cur.MoveToLineEnd(e.buf)
}

// PageUp moves up by the configured scroll lines, stopping at the first line.
func (e *Engine) PageUp() error {
	return e.cur.Scroll(e.buf, e.scrollLines, cursor.Up)
}

// PageDown moves down by the configured scroll lines, stopping at the last line.
func (e *Engine) PageDown() error {
	return e.cur.Scroll(e.buf, e.scrollLines, cursor.Down)
}

// GotoLine moves to the start of a 1-indexed line.
func (e *Engine) GotoLine(line int) error {
	if line < 1 || line > e.buf.LineCount() {
		return fmt.Errorf("line %d: %w", line, ErrInvalidLine)
	}
	e.cur.SetPosition(e.buf, line-1, 0)
	return nil
}

// SetCursor places the cursor, clamped into the buffer.
func (e *Engine) SetCursor(row, col int) {
	e.cur.SetPosition(e.buf, row, col)
}

// Queries

// WordCount counts whitespace-separated words made only of letters.
func (e *Engine) WordCount() int {
	words := 0
	for _, line := range e.buf.Lines() {
		for _, field := range strings.Fields(line) {
			if isAlpha(field) {
				words++
			}
		}
	}
	return words
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}

// Find returns every non-empty match of pattern, in buffer order.
func (e *Engine) Find(pattern string) ([]Match, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}

	var matches []Match
	for row, line := range e.buf.Lines() {
		for _, loc := range re.FindAllStringIndex(line, -1) {
			if loc[0] == loc[1] {
				continue
			}
			col := utf8.RuneCountInString(line[:loc[0]])
			matches = append(matches, Match{
				Row: row,
				Col: col,
				Len: utf8.RuneCountInString(line[loc[0]:loc[1]]),
			})
		}
	}
	return matches, nil
}

// JumpToMatch moves the cursor to the first match at or after the cursor,
// wrapping to the first match. Returns false when matches is empty.
func (e *Engine) JumpToMatch(matches []Match) bool {
	if len(matches) == 0 {
		return false
	}
	pos := e.cur.Position()
	target := matches[0]
	for _, m := range matches {
		if !(Point{Row: m.Row, Col: m.Col}).Before(pos) {
			target = m
			break
		}
	}
	e.cur.SetPosition(e.buf, target.Row, target.Col)
	return true
}

// Undo

// Tick lets the undo engine capture the current state. The input loop calls
// it once per cycle. Returns true if a snapshot was pushed.
func (e *Engine) Tick() bool {
	return e.hist.Tick(e.buf, e.cur.Position())
}

// Commit closes the current undo step so later edits undo separately,
// however quickly they follow. Returns true if a snapshot was pushed.
func (e *Engine) Commit() bool {
	return e.hist.Commit(e.buf, e.cur.Position())
}

// Undo restores the previous snapshot. Returns ErrNothingToUndo when no
// state has been captured. The content only counts as modified when the
// restored text differs from the live buffer.
func (e *Engine) Undo() (Snapshot, error) {
	snap, err := e.hist.Undo()
	if err != nil {
		return Snapshot{}, err
	}
	before := e.buf.Text()
	e.buf.Restore(snap.Buffer)
	e.cur.SetPosition(e.buf, snap.Cursor.Row, snap.Cursor.Col)
	if e.buf.Text() != before {
		e.modified = true
	}
	return snap, nil
}

// SetUndoCapacity changes the snapshot bound.
func (e *Engine) SetUndoCapacity(n int) {
	e.hist.SetCapacity(n)
}

// SetUndoWindow changes the coalescing window.
func (e *Engine) SetUndoWindow(d time.Duration) {
	e.hist.SetWindow(d)
}

// Load replaces the content with text, moves the cursor to the origin and
// restarts undo history from the loaded state.
func (e *Engine) Load(text string) {
	e.lineEnding = buffer.DetectLineEnding(text)
	e.buf.ReplaceAll(buffer.SplitLines(text))
	e.cur.SetPosition(e.buf, 0, 0)
	e.hist.Reset()
	e.hist.Tick(e.buf, e.cur.Position())
	e.modified = false
}

// LineEnding returns the line ending used by Text.
func (e *Engine) LineEnding() LineEnding {
	return e.lineEnding
}

func (e *Engine) edited() {
	e.modified = true
	e.hist.MarkDirty()
}
