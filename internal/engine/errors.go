package engine

import (
	"errors"

	"github.com/dshills/gale/internal/engine/buffer"
	"github.com/dshills/gale/internal/engine/cursor"
	"github.com/dshills/gale/internal/engine/history"
)

// Errors returned by engine operations.
var (
	// ErrIndexOutOfRange indicates a buffer row or column outside the valid bounds.
	ErrIndexOutOfRange = buffer.ErrIndexOutOfRange

	// ErrOutOfRange indicates a cursor move past the first or last line.
	ErrOutOfRange = cursor.ErrOutOfRange

	// ErrNothingToUndo indicates the undo stack is empty.
	ErrNothingToUndo = history.ErrNothingToUndo

	// ErrInvalidLine indicates a goto target that is not a line of the buffer.
	ErrInvalidLine = errors.New("invalid line")

	// ErrInvalidPattern indicates a find pattern that does not compile.
	ErrInvalidPattern = errors.New("invalid pattern")
)
