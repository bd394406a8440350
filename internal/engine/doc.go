// Package engine provides the editing core of the Gale text editor.
//
// The engine package is the facade the input loop, the scripting layer and
// tests drive. It combines the line buffer, the cursor and the undo engine
// into one editing session.
//
// # Architecture
//
// The engine is built on three sub-packages:
//
//   - buffer: ordered lines with gap-indexed insert, delete, split and join
//   - cursor: caret position with desired column memory
//   - history: time-coalescing undo snapshots
//
// # Edit Cycle
//
// Every completed edit marks the undo engine dirty. The surrounding loop calls
// Tick once per cycle, which is when snapshots are taken:
//
//	e := engine.New(engine.WithContent("hello"))
//	e.End()
//	e.InsertChar('!')
//	e.Tick()
//
//	if _, err := e.Undo(); errors.Is(err, engine.ErrNothingToUndo) {
//		// report to the user
//	}
//
// Backspace follows a fixed ordering: the cursor moves left first, then the
// character before the old position is deleted. At column 0 this joins the
// line onto the previous one and leaves the cursor at the join point.
//
// # Thread Safety
//
// Engine is not safe for concurrent use. Every call must come from the
// goroutine that owns the editing session.
package engine
