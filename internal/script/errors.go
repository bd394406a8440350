package script

import "errors"

// Errors for script execution.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrTimeout is returned when a script runs past its time limit.
	ErrTimeout = errors.New("lua execution timeout")

	// ErrNoHost is raised inside scripts that call host functions such as
	// ed.save when no host is attached.
	ErrNoHost = errors.New("no script host")
)
