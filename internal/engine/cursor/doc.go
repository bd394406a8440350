// Package cursor provides the caret model used by the editor engine.
//
// A Cursor is a (row, column) position into a line source, where the column
// is a gap index: 0 is before the first character and LineLen(row) is after
// the last one. The cursor holds no reference to the buffer; every operation
// that needs line bounds takes a LineSource.
//
// Desired Column:
//
// Vertical movement remembers horizontal intent. When moving onto a line too
// short to hold the current column, the cursor clamps to the end of that line
// and remembers the column it wanted. Moving on to a longer line restores it:
//
//	lines: "abcdef", "xy", "z"
//	(0,5) -down-> (1,2) -down-> (2,1) -up-> (1,2) -up-> (0,5)
//
// Any horizontal movement forgets the remembered column.
//
// Invariant:
//
// After every successful operation 0 <= Row < LineCount and
// 0 <= Col <= LineLen(Row). Operations that would break the invariant fail
// with ErrOutOfRange and leave the cursor unchanged.
package cursor
