package buffer

import "strings"

// Snapshot is a read-only copy of a buffer's lines at a point in time.
// It shares no memory with the buffer it was taken from.
type Snapshot struct {
	lines []string
}

// Snapshot returns a deep copy of the current buffer content.
func (b *Buffer) Snapshot() Snapshot {
	return Snapshot{lines: b.Lines()}
}

// Restore replaces the buffer content with the snapshot's lines.
func (b *Buffer) Restore(s Snapshot) {
	b.ReplaceAll(s.lines)
}

// LineCount returns the number of lines in the snapshot.
func (s Snapshot) LineCount() int {
	if len(s.lines) == 0 {
		return 1
	}
	return len(s.lines)
}

// Line returns the text of a line, or ErrNotFound.
func (s Snapshot) Line(row int) (string, error) {
	if len(s.lines) == 0 && row == 0 {
		return "", nil
	}
	if row < 0 || row >= len(s.lines) {
		return "", ErrNotFound
	}
	return s.lines[row], nil
}

// Lines returns a copy of the snapshot's lines.
func (s Snapshot) Lines() []string {
	if len(s.lines) == 0 {
		return []string{""}
	}
	return append([]string(nil), s.lines...)
}

// Text returns the snapshot content joined with "\n".
func (s Snapshot) Text() string {
	return strings.Join(s.lines, "\n")
}
