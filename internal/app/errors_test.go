package app

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *FileError
		want string
	}{
		{"nil", nil, ""},
		{"op only", &FileError{Op: "save"}, "save"},
		{"with path", &FileError{Op: "open", Path: "notes.txt"}, "open notes.txt"},
		{"wrapped", &FileError{Op: "save", Path: "/ro/x", Err: fs.ErrPermission}, "save /ro/x: permission denied"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestFileErrorUnwrap(t *testing.T) {
	err := error(newFileError("open", "x", fs.ErrNotExist))
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.NotErrorIs(t, err, fs.ErrPermission)

	var nilErr *FileError
	assert.Nil(t, nilErr.Unwrap())
}

func TestRecoveredPanicError(t *testing.T) {
	var nilErr *RecoveredPanicError
	assert.Empty(t, nilErr.Error())

	err := NewRecoveredPanicError("boom")
	assert.Equal(t, "recovered panic: boom", err.Error())
	assert.NotEmpty(t, err.Stack)
}

func TestSentinelErrorsDistinct(t *testing.T) {
	sentinels := []error{ErrQuit, ErrAlreadyRunning, ErrNoFilename, ErrNoBackend}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j {
				assert.False(t, errors.Is(a, b), "%v matched %v", a, b)
			}
		}
	}
}
