// Package buffer provides the line buffer at the heart of the editor engine.
//
// A Buffer is an ordered sequence of lines. It is never empty: a buffer with
// no content holds exactly one empty line. All structural mutation (insert,
// delete, split, join) happens here.
//
// Position Model:
//
// Positions are expressed as a Point{Row, Col}. Row indexes the line and Col
// is a gap index, not a character index: Col 0 is the slot before the first
// character and Col == LineLen(row) is the slot after the last one. Columns
// count code points, so a rune typed by the user always occupies one column.
//
//	buf := buffer.New()
//	p, _ := buf.InsertChar(0, 0, 'a') // p == Point{0, 1}
//	p, _ = buf.InsertChar(p.Row, p.Col, 'b')
//	buf.Line(0) // "ab"
//
// Every mutator validates its coordinates first and returns
// ErrIndexOutOfRange without touching the buffer when they are invalid.
// Mutators report the gap position a caret should occupy afterwards.
//
// Snapshots:
//
// Snapshot returns an immutable deep copy of the line set. Snapshots share no
// memory with the live buffer, so restoring one is a plain value substitution.
// Copying is O(buffer size); that is the accepted cost of snapshot isolation
// for interactive single-user editing.
//
// Concurrency:
//
// Buffer is not safe for concurrent use. The editor drives it from a single
// goroutine and callers must keep it that way.
package buffer
