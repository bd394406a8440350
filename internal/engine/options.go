package engine

import (
	"time"

	"github.com/dshills/gale/internal/engine/buffer"
	"github.com/dshills/gale/internal/engine/history"
)

// Default configuration values.
const (
	DefaultTabSize      = 4
	DefaultScrollLines  = 10
	DefaultUndoCapacity = history.DefaultCapacity
	DefaultUndoWindow   = history.DefaultWindow
)

// Option configures an Engine during creation.
type Option func(*Engine)

// WithContent sets the initial content of the engine.
func WithContent(content string) Option {
	return func(e *Engine) {
		e.initContent = content
	}
}

// WithTabSize sets the tab stop width used by InsertTab.
func WithTabSize(size int) Option {
	return func(e *Engine) {
		if size > 0 {
			e.tabSize = size
		}
	}
}

// WithScrollLines sets how far PageUp and PageDown move.
func WithScrollLines(lines int) Option {
	return func(e *Engine) {
		if lines > 0 {
			e.scrollLines = lines
		}
	}
}

// WithLineEnding sets the line ending style used by Text for saving.
func WithLineEnding(ending buffer.LineEnding) Option {
	return func(e *Engine) {
		e.lineEnding = ending
	}
}

// WithUndoCapacity sets the maximum number of undo snapshots.
func WithUndoCapacity(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.undoCapacity = n
		}
	}
}

// WithUndoWindow sets the undo coalescing window.
func WithUndoWindow(d time.Duration) Option {
	return func(e *Engine) {
		if d >= 0 {
			e.undoWindow = d
		}
	}
}

// WithClock sets the clock used by the undo engine.
func WithClock(c history.Clock) Option {
	return func(e *Engine) {
		e.clock = c
	}
}
