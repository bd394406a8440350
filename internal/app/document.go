package app

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dshills/gale/internal/engine"
)

// Document is the file being edited: its path and the engine holding the
// text. A document without a path is a scratch buffer.
type Document struct {
	// Path is the file path (empty for scratch buffers).
	Path string

	// Name is the display name, the base of Path.
	Name string

	// Engine is the text buffer and editing engine.
	Engine *engine.Engine
}

// NewDocument creates a scratch document around eng.
func NewDocument(eng *engine.Engine) *Document {
	return &Document{Engine: eng}
}

// IsScratch returns true if this is a scratch buffer (no file path).
func (d *Document) IsScratch() bool {
	return d.Path == ""
}

// IsModified returns true if the document has unsaved changes.
func (d *Document) IsModified() bool {
	return d.Engine.Modified()
}

// Content returns the full document content.
func (d *Document) Content() string {
	return d.Engine.Text()
}

// Open replaces the content with the file at path and returns the bytes
// read. Undo history restarts from the loaded text.
func (d *Document) Open(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, newFileError("open", path, err)
	}
	d.Engine.Load(string(data))
	d.setPath(path)
	return len(data), nil
}

// OpenOrCreate opens path, or names the empty document path when the file
// does not exist yet.
func (d *Document) OpenOrCreate(path string) (int, error) {
	n, err := d.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		d.setPath(path)
		return 0, nil
	}
	return n, err
}

// Save writes every line followed by the document's line ending to path,
// or to the document's own path when path is empty, and returns the bytes
// written. A successful save names the document after path and clears the
// modified flag.
func (d *Document) Save(path string) (int, error) {
	if path == "" {
		path = d.Path
	}
	if path == "" {
		return 0, ErrNoFilename
	}

	data := []byte(d.Content() + d.Engine.LineEnding().Sequence())
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return 0, newFileError("save", path, err)
	}

	d.setPath(path)
	d.Engine.MarkSaved()
	return len(data), nil
}

func (d *Document) setPath(path string) {
	d.Path = path
	d.Name = filepath.Base(path)
}
