package app

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/gale/internal/engine"
)

func TestNewDocument(t *testing.T) {
	doc := NewDocument(engine.New())

	assert.True(t, doc.IsScratch())
	assert.Empty(t, doc.Name)
	assert.False(t, doc.IsModified())
	assert.Equal(t, "", doc.Content())
}

func TestDocumentSaveWithoutName(t *testing.T) {
	doc := NewDocument(engine.New())
	_, err := doc.Save("")
	assert.ErrorIs(t, err, ErrNoFilename)
}

func TestDocumentSaveAndOpen(t *testing.T) {
	dir := t.TempDir()
	doc := NewDocument(engine.New(engine.WithContent("one\ntwo")))
	require.NoError(t, doc.Engine.InsertText("zero "))
	require.True(t, doc.IsModified())

	path := filepath.Join(dir, "doc.txt")
	n, err := doc.Save(path)
	require.NoError(t, err)
	assert.Equal(t, len("zero one\ntwo\n"), n)
	assert.Equal(t, "doc.txt", doc.Name)
	assert.False(t, doc.IsModified())

	other := NewDocument(engine.New())
	n, err = other.Open(path)
	require.NoError(t, err)
	assert.Equal(t, 13, n)
	assert.Equal(t, []string{"zero one", "two"}, other.Engine.Lines())
	assert.Equal(t, path, other.Path)
}

func TestDocumentKeepsCRLF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crlf.txt")
	require.NoError(t, os.WriteFile(path, []byte("a\r\nb"), 0o644))

	doc := NewDocument(engine.New())
	_, err := doc.Open(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, doc.Engine.Lines())

	_, err = doc.Save("")
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\r\nb\r\n", string(data))
}

func TestDocumentOpenMissing(t *testing.T) {
	doc := NewDocument(engine.New(engine.WithContent("keep")))
	path := filepath.Join(t.TempDir(), "missing.txt")

	_, err := doc.Open(path)
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	var fileErr *FileError
	require.ErrorAs(t, err, &fileErr)
	assert.Equal(t, "open", fileErr.Op)
	assert.Equal(t, "keep", doc.Content())
	assert.True(t, doc.IsScratch())

	n, err := doc.OpenOrCreate(path)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Equal(t, path, doc.Path)
}
