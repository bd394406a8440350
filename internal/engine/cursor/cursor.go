package cursor

import (
	"errors"
	"fmt"

	"github.com/dshills/gale/internal/engine/buffer"
)

// Point is an alias for buffer.Point for convenience.
type Point = buffer.Point

// ErrOutOfRange indicates a move would leave the valid rows of the buffer.
var ErrOutOfRange = errors.New("cursor out of range")

// LineSource provides the line bounds a cursor is validated against.
// *buffer.Buffer satisfies it.
type LineSource interface {
	LineCount() int
	LineLen(row int) int
}

// Direction is a vertical scroll direction.
type Direction int

const (
	Down Direction = iota
	Up
)

// String returns the direction name.
func (d Direction) String() string {
	if d == Up {
		return "up"
	}
	return "down"
}

// Cursor is a gap position into a line source with desired column memory.
type Cursor struct {
	row     int
	col     int
	desired DesiredColumn
}

// New creates a cursor at the origin.
func New() *Cursor {
	return &Cursor{}
}

// Row returns the cursor's row.
func (c *Cursor) Row() int {
	return c.row
}

// Col returns the cursor's gap column.
func (c *Cursor) Col() int {
	return c.col
}

// Position returns the cursor position as a Point.
func (c *Cursor) Position() Point {
	return Point{Row: c.row, Col: c.col}
}

// Desired returns the remembered column.
func (c *Cursor) Desired() DesiredColumn {
	return c.desired
}

// SetPosition places the cursor at (row, col), clamped into the line source,
// and clears the desired column.
func (c *Cursor) SetPosition(src LineSource, row, col int) {
	c.row, c.col = clampPoint(src, row, col)
	c.desired = DesiredColumn{}
}

// Clamp pulls the cursor back inside the line source after the content was
// replaced underneath it. The desired column is kept.
func (c *Cursor) Clamp(src LineSource) {
	c.row, c.col = clampPoint(src, c.row, c.col)
}

// MoveHorizontal moves one column left (dir < 0) or right (dir > 0).
// At a line boundary it wraps to the end of the previous line or the start
// of the next one. Returns false when there is nowhere to go.
// A successful move clears the desired column.
func (c *Cursor) MoveHorizontal(src LineSource, dir int) bool {
	switch {
	case dir > 0:
		if c.col < src.LineLen(c.row) {
			c.col++
		} else if c.row+1 < src.LineCount() {
			c.row++
			c.col = 0
		} else {
			return false
		}
	case dir < 0:
		if c.col > 0 {
			c.col--
		} else if c.row > 0 {
			c.row--
			c.col = src.LineLen(c.row)
		} else {
			return false
		}
	default:
		return false
	}
	c.desired = DesiredColumn{}
	return true
}

// MoveVertical moves delta rows. The target column is the larger of the
// current and desired columns, clamped to the target line. When clamping
// shortens the move, that column is remembered for later moves.
// Returns ErrOutOfRange if the target row does not exist.
func (c *Cursor) MoveVertical(src LineSource, delta int) error {
	target := c.row + delta
	if target < 0 || target >= src.LineCount() {
		return fmt.Errorf("move to row %d: %w", target, ErrOutOfRange)
	}

	want := c.desired.Resolve(c.col)
	col := min(want, src.LineLen(target))

	c.row = target
	c.col = col
	if col < want {
		c.desired = Desired(want)
	} else {
		c.desired = DesiredColumn{}
	}
	return nil
}

// MoveToLineStart moves to column 0 and clears the desired column.
func (c *Cursor) MoveToLineStart() {
	c.col = 0
	c.desired = DesiredColumn{}
}

// MoveToLineEnd moves past the last character of the line and clears the
// desired column.
func (c *Cursor) MoveToLineEnd(src LineSource) {
	c.col = src.LineLen(c.row)
	c.desired = DesiredColumn{}
}

// Scroll moves up to lines rows in dir, stopping at the buffer boundary.
func (c *Cursor) Scroll(src LineSource, lines int, dir Direction) error {
	if lines < 0 {
		lines = 0
	}

	var delta int
	switch dir {
	case Up:
		delta = -min(lines, c.row)
	default:
		delta = min(lines, src.LineCount()-1-c.row)
	}
	return c.MoveVertical(src, delta)
}

// String returns a string representation of the cursor.
func (c *Cursor) String() string {
	return fmt.Sprintf("Cursor(%d:%d desired=%s)", c.row, c.col, c.desired)
}

func clampPoint(src LineSource, row, col int) (int, int) {
	row = max(0, min(row, src.LineCount()-1))
	col = max(0, min(col, src.LineLen(row)))
	return row, col
}
