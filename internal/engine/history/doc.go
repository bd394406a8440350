// Package history provides the snapshot-based undo engine for the editor.
//
// Instead of recording individual operations, History stores whole-buffer
// snapshots paired with a cursor position. Snapshots are deep copies and never
// alias the live buffer, so restoring one is a plain value substitution.
//
// # Coalescing
//
// Edits are reported with MarkDirty and captured on the next Tick. When the
// previous capture happened less than the coalescing window ago, the previous
// snapshot is replaced rather than kept, so a burst of typing becomes one undo
// step while a pause followed by more typing starts a new one.
//
//	h := history.New(history.WithWindow(500 * time.Millisecond))
//	h.Tick(buf, cur.Position()) // captures the pristine state
//	// ... edit ...
//	h.MarkDirty()
//	h.Tick(buf, cur.Position())
//
//	snap, err := h.Undo()
//	if errors.Is(err, history.ErrNothingToUndo) { ... }
//	buf.Restore(snap.Buffer)
//
// The top of the stack always mirrors the live state after a Tick. Undo
// discards it and returns the snapshot below, which stays on the stack as the
// new current state. The last remaining snapshot is a floor: undoing there
// returns it again.
//
// # Capacity
//
// The stack is bounded. Pushing onto a full stack silently evicts the oldest
// snapshot; Evicted reports how many were dropped.
//
// # Time
//
// Elapsed time is read from an injected Clock. Tests use ManualClock to step
// time deterministically.
package history
