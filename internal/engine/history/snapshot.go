package history

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/gale/internal/engine/buffer"
)

// Snapshot is an immutable capture of buffer content and cursor position.
type Snapshot struct {
	ID     uuid.UUID
	Buffer buffer.Snapshot
	Cursor buffer.Point
	Taken  time.Time
}

// NewSnapshot deep-copies buf and records pos.
func NewSnapshot(buf *buffer.Buffer, pos buffer.Point, at time.Time) Snapshot {
	return Snapshot{
		ID:     uuid.New(),
		Buffer: buf.Snapshot(),
		Cursor: pos,
		Taken:  at,
	}
}

// String returns a short description for logging.
func (s Snapshot) String() string {
	return fmt.Sprintf("snapshot %s (%d lines, cursor %s)", s.ID, s.Buffer.LineCount(), s.Cursor)
}
