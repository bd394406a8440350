package cursor

import "fmt"

// DesiredColumn is an optional remembered column for vertical movement.
// The zero value is unset.
type DesiredColumn struct {
	value int
	set   bool
}

// Desired returns a DesiredColumn holding col.
func Desired(col int) DesiredColumn {
	return DesiredColumn{value: col, set: true}
}

// IsSet reports whether a column is remembered.
func (d DesiredColumn) IsSet() bool {
	return d.set
}

// Resolve returns the column vertical movement should aim for from col:
// the larger of col and the remembered column.
func (d DesiredColumn) Resolve(col int) int {
	if d.set && d.value > col {
		return d.value
	}
	return col
}

// String returns a string representation of the desired column.
func (d DesiredColumn) String() string {
	if !d.set {
		return "unset"
	}
	return fmt.Sprintf("%d", d.value)
}
