package app

import (
	"errors"
	"fmt"
	"runtime/debug"
)

var (
	// ErrQuit ends the event loop normally.
	ErrQuit = errors.New("quit requested")

	ErrAlreadyRunning = errors.New("application already running")

	// ErrNoFilename is returned by a save of a scratch document with no
	// path given.
	ErrNoFilename = errors.New("no file name")

	ErrNoBackend = errors.New("no backend")
)

// FileError records the file operation and path behind an I/O failure.
type FileError struct {
	Op   string // "open" or "save"
	Path string
	Err  error
}

func newFileError(op, path string, err error) *FileError {
	return &FileError{Op: op, Path: path, Err: err}
}

func (e *FileError) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Op
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FileError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// RecoveredPanicError is returned by HandleEvent when a handler panics.
// Stack is captured at the point of recovery.
type RecoveredPanicError struct {
	Value any
	Stack []byte
}

// NewRecoveredPanicError captures the current stack for value.
func NewRecoveredPanicError(value any) *RecoveredPanicError {
	return &RecoveredPanicError{Value: value, Stack: debug.Stack()}
}

func (e *RecoveredPanicError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("recovered panic: %v", e.Value)
}
