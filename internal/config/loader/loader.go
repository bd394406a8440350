// Package loader reads gale configuration sources into generic maps.
//
// A file's format is chosen by its extension (TOML or YAML). Environment
// variables with the GALE_ prefix produce the same shape of map, so the
// sources can be combined with DeepMerge before the typed decode.
package loader

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsupportedFormat is returned for files whose extension has no loader.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// FileSystem is the file access the loaders need.
type FileSystem interface {
	fs.FS
	ReadFile(path string) ([]byte, error)
	Stat(path string) (fs.FileInfo, error)
}

// OSFS implements FileSystem on the real file system.
type OSFS struct{}

func (OSFS) Open(name string) (fs.File, error) { return os.Open(name) }
func (OSFS) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }
func (OSFS) Stat(path string) (fs.FileInfo, error) { return os.Stat(path) }

// DefaultFS returns OSFS.
func DefaultFS() FileSystem { return OSFS{} }

// File loads one configuration file.
type File struct {
	fs     FileSystem
	path   string
	format *Format
}

// ForPath returns a loader for path, picking the format by extension.
// A nil fsys reads from the OS.
func ForPath(fsys FileSystem, path string) (*File, error) {
	format := FormatFor(path)
	if format == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if fsys == nil {
		fsys = DefaultFS()
	}
	return &File{fs: fsys, path: path, format: format}, nil
}

// Path returns the file the loader reads.
func (f *File) Path() string { return f.path }

// Format returns the file's format.
func (f *File) Format() *Format { return f.format }

// Load reads and parses the file. A missing file returns nil, nil.
func (f *File) Load() (map[string]any, error) {
	data, err := f.fs.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", f.path, err)
	}
	return f.format.parse(f.path, data)
}

// Decode parses the file's format from r instead of the file.
func (f *File) Decode(r io.Reader) (map[string]any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return f.format.parse("<reader>", data)
}

// ParseError reports malformed configuration. Line and Column are zero
// when the decoder does not report a position.
type ParseError struct {
	Path    string
	Line    int
	Column  int
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	var where strings.Builder
	where.WriteString(e.Path)
	if e.Line > 0 {
		fmt.Fprintf(&where, " at line %d", e.Line)
		if e.Column > 0 {
			fmt.Fprintf(&where, ", column %d", e.Column)
		}
	}
	return fmt.Sprintf("parse error in %s: %s", where.String(), e.Message)
}

func (e *ParseError) Unwrap() error { return e.Err }

func extension(path string) string {
	return strings.ToLower(filepath.Ext(path))
}
