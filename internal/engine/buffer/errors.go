package buffer

import "errors"

// Errors returned by buffer operations.
var (
	// ErrIndexOutOfRange indicates a row or column outside the valid bounds.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrNotFound indicates a requested line or character does not exist.
	ErrNotFound = errors.New("not found")
)
