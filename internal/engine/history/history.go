package history

import (
	"errors"
	"time"

	"github.com/dshills/gale/internal/engine/buffer"
)

// ErrNothingToUndo is returned by Undo when no snapshot has been captured.
var ErrNothingToUndo = errors.New("nothing to undo")

// DefaultWindow is the default coalescing window.
const DefaultWindow = 500 * time.Millisecond

// History is the time-coalescing undo engine.
type History struct {
	stack  *Stack
	clock  Clock
	window time.Duration

	dirty    bool
	lastPush time.Time
	// forceNew makes the next dirty Tick start a new snapshot regardless
	// of the window.
	forceNew bool
}

// Option configures a History.
type Option func(*History)

// WithClock sets the clock used to measure the coalescing window.
func WithClock(c Clock) Option {
	return func(h *History) {
		if c != nil {
			h.clock = c
		}
	}
}

// WithWindow sets the coalescing window.
func WithWindow(d time.Duration) Option {
	return func(h *History) {
		if d >= 0 {
			h.window = d
		}
	}
}

// WithCapacity sets the maximum number of snapshots retained.
func WithCapacity(n int) Option {
	return func(h *History) {
		h.stack = NewStack(n)
	}
}

// New creates an empty undo engine.
func New(opts ...Option) *History {
	h := &History{
		stack:  NewStack(DefaultCapacity),
		clock:  SystemClock{},
		window: DefaultWindow,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// MarkDirty flags that the next Tick should capture the current state.
func (h *History) MarkDirty() {
	h.dirty = true
}

// Tick captures a snapshot of buf and pos when needed and reports whether one
// was pushed.
//
// On an empty stack the state is captured unconditionally. Otherwise a
// capture only happens after MarkDirty; if the previous capture is younger
// than the window it is replaced instead of kept.
func (h *History) Tick(buf *buffer.Buffer, pos buffer.Point) bool {
	now := h.clock.Now()

	if h.stack.Len() == 0 {
		h.stack.Push(NewSnapshot(buf, pos, now))
		h.dirty = false
		h.forceNew = true
		h.lastPush = now
		return true
	}

	if !h.dirty {
		return false
	}
	h.dirty = false

	if !h.forceNew && now.Sub(h.lastPush) < h.window {
		h.stack.Pop()
	}
	h.stack.Push(NewSnapshot(buf, pos, now))
	h.forceNew = false
	h.lastPush = now
	return true
}

// Commit captures buf and pos as a step of its own, ignoring the coalescing
// window, and keeps the next capture from replacing it. Without pending
// edits it does nothing and reports false.
func (h *History) Commit(buf *buffer.Buffer, pos buffer.Point) bool {
	if h.stack.Len() == 0 {
		return h.Tick(buf, pos)
	}
	if !h.dirty {
		return false
	}
	now := h.clock.Now()
	h.stack.Push(NewSnapshot(buf, pos, now))
	h.dirty = false
	h.forceNew = true
	h.lastPush = now
	return true
}

// Undo discards the current snapshot and returns the one before it, which
// becomes the new current state. With a single snapshot left it is returned
// unchanged. Returns ErrNothingToUndo when the stack is empty.
func (h *History) Undo() (Snapshot, error) {
	if h.stack.Len() == 0 {
		return Snapshot{}, ErrNothingToUndo
	}
	if h.stack.Len() > 1 {
		h.stack.Pop()
	}
	snap, _ := h.stack.Peek()

	h.dirty = false
	h.forceNew = true
	return snap, nil
}

// Reset drops every snapshot. The next Tick captures a new floor state.
func (h *History) Reset() {
	h.stack.Clear()
	h.dirty = false
	h.forceNew = false
	h.lastPush = time.Time{}
}

// Len returns the number of snapshots held.
func (h *History) Len() int {
	return h.stack.Len()
}

// Capacity returns the snapshot bound.
func (h *History) Capacity() int {
	return h.stack.Capacity()
}

// SetCapacity changes the snapshot bound.
func (h *History) SetCapacity(n int) {
	h.stack.SetCapacity(n)
}

// Window returns the coalescing window.
func (h *History) Window() time.Duration {
	return h.window
}

// SetWindow changes the coalescing window.
func (h *History) SetWindow(d time.Duration) {
	if d >= 0 {
		h.window = d
	}
}

// Evicted returns how many snapshots were dropped for capacity.
func (h *History) Evicted() int {
	return h.stack.Evicted()
}

// Snapshots returns the held snapshots from oldest to newest.
func (h *History) Snapshots() []Snapshot {
	return h.stack.Entries()
}
