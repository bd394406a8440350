package buffer

import (
	"strings"
)

// LineEnding specifies the line ending style used when the buffer is written out.
type LineEnding uint8

const (
	LineEndingLF   LineEnding = iota // Unix: \n
	LineEndingCRLF                   // Windows: \r\n
	LineEndingCR                     // Old Mac: \r
)

// String returns the string representation of the line ending.
func (le LineEnding) String() string {
	switch le {
	case LineEndingCRLF:
		return "\\r\\n"
	case LineEndingCR:
		return "\\r"
	default:
		return "\\n"
	}
}

// Sequence returns the actual line ending characters.
func (le LineEnding) Sequence() string {
	switch le {
	case LineEndingCRLF:
		return "\r\n"
	case LineEndingCR:
		return "\r"
	default:
		return "\n"
	}
}

// DetectLineEnding returns a LineEnding based on the most common line ending in the text.
// Returns LineEndingLF if no line endings are found.
func DetectLineEnding(text string) LineEnding {
	var lfCount, crlfCount, crCount int

	i := 0
	for i < len(text) {
		if i+1 < len(text) && text[i] == '\r' && text[i+1] == '\n' {
			crlfCount++
			i += 2
		} else if text[i] == '\r' {
			crCount++
			i++
		} else if text[i] == '\n' {
			lfCount++
			i++
		} else {
			i++
		}
	}

	if crlfCount > 0 && crlfCount >= lfCount && crlfCount >= crCount {
		return LineEndingCRLF
	}
	if crCount > 0 && crCount >= lfCount && crCount >= crlfCount {
		return LineEndingCR
	}
	return LineEndingLF
}

// Buffer is an ordered, index-addressed sequence of lines.
// It always holds at least one line.
type Buffer struct {
	lines [][]rune
}

// New creates a buffer holding one empty line.
func New() *Buffer {
	return &Buffer{lines: [][]rune{{}}}
}

// NewFromLines creates a buffer holding copies of the given lines.
// An empty slice yields a buffer with one empty line.
func NewFromLines(lines []string) *Buffer {
	b := New()
	b.ReplaceAll(lines)
	return b
}

// NewFromString creates a buffer from newline-separated text.
// CRLF and CR line endings are normalized before splitting.
func NewFromString(s string) *Buffer {
	return NewFromLines(SplitLines(s))
}

// SplitLines normalizes line endings and splits text into lines.
// A trailing newline does not produce an extra empty line.
func SplitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	if s == "" {
		return []string{""}
	}
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}

// Read Operations

// LineCount returns the number of lines. It is always at least 1.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// Line returns the text of a line.
// Returns ErrNotFound if the row does not exist.
func (b *Buffer) Line(row int) (string, error) {
	if row < 0 || row >= len(b.lines) {
		return "", ErrNotFound
	}
	return string(b.lines[row]), nil
}

// LineLen returns the length of a line in columns.
// Returns 0 for rows that do not exist.
func (b *Buffer) LineLen(row int) int {
	if row < 0 || row >= len(b.lines) {
		return 0
	}
	return len(b.lines[row])
}

// Char returns the character immediately right of the gap at col.
// Returns ErrNotFound if there is no such character.
func (b *Buffer) Char(row, col int) (rune, error) {
	if row < 0 || row >= len(b.lines) {
		return 0, ErrNotFound
	}
	line := b.lines[row]
	if col < 0 || col >= len(line) {
		return 0, ErrNotFound
	}
	return line[col], nil
}

// Lines returns a copy of every line as strings.
func (b *Buffer) Lines() []string {
	out := make([]string, len(b.lines))
	for i, line := range b.lines {
		out[i] = string(line)
	}
	return out
}

// Text returns the buffer content joined with "\n".
func (b *Buffer) Text() string {
	return strings.Join(b.Lines(), "\n")
}

// IsEmpty returns true if the buffer holds a single empty line.
func (b *Buffer) IsEmpty() bool {
	return len(b.lines) == 1 && len(b.lines[0]) == 0
}

// Valid reports whether p is a valid gap position in the buffer.
func (b *Buffer) Valid(p Point) bool {
	return p.Row >= 0 && p.Row < len(b.lines) && p.Col >= 0 && p.Col <= len(b.lines[p.Row])
}

// Write Operations

// InsertChar splices ch into the line at the gap col.
// The inserted character becomes the character right of gap col,
// and the returned point is the gap just after it.
func (b *Buffer) InsertChar(row, col int, ch rune) (Point, error) {
	if !b.Valid(Point{Row: row, Col: col}) {
		return Point{}, ErrIndexOutOfRange
	}

	line := b.lines[row]
	newLine := make([]rune, 0, len(line)+1)
	newLine = append(newLine, line[:col]...)
	newLine = append(newLine, ch)
	newLine = append(newLine, line[col:]...)
	b.lines[row] = newLine

	return Point{Row: row, Col: col + 1}, nil
}

// DeleteBefore deletes the character immediately left of the gap col.
//
// At col 0 on any row but the first, the line is joined onto the end of the
// previous line and removed. At (0, 0) nothing happens. A line emptied by
// deleting its last character remains as an empty line.
// The returned point is the gap where the deleted character was, or the join
// point for a join.
func (b *Buffer) DeleteBefore(row, col int) (Point, error) {
	if !b.Valid(Point{Row: row, Col: col}) {
		return Point{}, ErrIndexOutOfRange
	}

	if col == 0 {
		if row == 0 {
			return Point{}, nil
		}
		joinCol := len(b.lines[row-1])
		b.joinWithNext(row - 1)
		return Point{Row: row - 1, Col: joinCol}, nil
	}

	line := b.lines[row]
	b.lines[row] = append(line[:col-1:col-1], line[col:]...)
	return Point{Row: row, Col: col - 1}, nil
}

// DeleteAfter deletes the character immediately right of the gap col.
// At the end of a line the next line, if any, is joined onto this one.
// The returned point is always (row, col).
func (b *Buffer) DeleteAfter(row, col int) (Point, error) {
	if !b.Valid(Point{Row: row, Col: col}) {
		return Point{}, ErrIndexOutOfRange
	}

	line := b.lines[row]
	if col == len(line) {
		if row+1 < len(b.lines) {
			b.joinWithNext(row)
		}
		return Point{Row: row, Col: col}, nil
	}

	b.lines[row] = append(line[:col:col], line[col+1:]...)
	return Point{Row: row, Col: col}, nil
}

// SplitLine breaks the line at the gap col, moving everything right of the
// gap onto a new line inserted after row. The returned point is the start of
// the new line.
func (b *Buffer) SplitLine(row, col int) (Point, error) {
	if !b.Valid(Point{Row: row, Col: col}) {
		return Point{}, ErrIndexOutOfRange
	}

	line := b.lines[row]
	head := append([]rune(nil), line[:col]...)
	tail := append([]rune(nil), line[col:]...)

	b.lines = append(b.lines, nil)
	copy(b.lines[row+2:], b.lines[row+1:])
	b.lines[row] = head
	b.lines[row+1] = tail

	return Point{Row: row + 1, Col: 0}, nil
}

// ReplaceAll replaces the whole content with copies of lines.
// An empty slice leaves a single empty line.
func (b *Buffer) ReplaceAll(lines []string) {
	if len(lines) == 0 {
		b.lines = [][]rune{{}}
		return
	}
	b.lines = make([][]rune, len(lines))
	for i, line := range lines {
		b.lines[i] = []rune(line)
	}
}

// joinWithNext appends line row+1 onto line row and removes row+1.
func (b *Buffer) joinWithNext(row int) {
	joined := make([]rune, 0, len(b.lines[row])+len(b.lines[row+1]))
	joined = append(joined, b.lines[row]...)
	joined = append(joined, b.lines[row+1]...)
	b.lines[row] = joined
	b.lines = append(b.lines[:row+1], b.lines[row+2:]...)
}
