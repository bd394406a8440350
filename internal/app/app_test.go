package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/gale/internal/config"
	"github.com/dshills/gale/internal/engine"
	"github.com/dshills/gale/internal/engine/history"
	"github.com/dshills/gale/internal/renderer/backend"
	"github.com/dshills/gale/internal/renderer/statusline"
)

type testApp struct {
	*Application
	nb    *backend.NullBackend
	now   time.Time
	clock *history.ManualClock
}

func newTestApp(t *testing.T, path string) *testApp {
	t.Helper()
	start := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	ta := &testApp{
		nb:    backend.NewNullBackend(40, 10),
		now:   start,
		clock: history.NewManualClock(start),
	}
	a, err := New(Options{
		Backend:       ta.nb,
		Path:          path,
		Logger:        NullLogger,
		Now:           func() time.Time { return ta.now },
		EngineOptions: []engine.Option{engine.WithClock(ta.clock)},
	})
	require.NoError(t, err)
	ta.Application = a
	return ta
}

func (ta *testApp) advance(d time.Duration) {
	ta.now = ta.now.Add(d)
	ta.clock.Advance(d)
}

func (ta *testApp) key(t *testing.T, k backend.Key) error {
	t.Helper()
	return ta.HandleEvent(backend.Event{Type: backend.EventKey, Key: k})
}

func (ta *testApp) typeText(t *testing.T, s string) {
	t.Helper()
	for _, r := range s {
		require.NoError(t, ta.HandleEvent(backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: r}))
	}
}

func (ta *testApp) message() string {
	text, _ := ta.MessageLine()
	return text
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewScratch(t *testing.T) {
	ta := newTestApp(t, "")

	assert.True(t, ta.Document().IsScratch())
	assert.False(t, ta.Document().IsModified())
	assert.Equal(t, DefaultMessage, ta.message())
	assert.Nil(t, ta.Prompt())
}

func TestNewMissingFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.txt")
	ta := newTestApp(t, path)

	assert.Equal(t, path, ta.Document().Path)
	assert.Equal(t, "new.txt", ta.Document().Name)
	assert.Equal(t, []string{""}, ta.Engine().Lines())
	assert.False(t, ta.Document().IsModified())
}

func TestNewOpensFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.txt", "one\ntwo")
	ta := newTestApp(t, path)

	assert.Equal(t, []string{"one", "two"}, ta.Engine().Lines())
}

func TestTypingRendersTextAndStatus(t *testing.T) {
	ta := newTestApp(t, "")
	ta.typeText(t, "hello")
	ta.Render()

	assert.Contains(t, ta.nb.Row(0), "hello")
	assert.Equal(t, "~", strings.TrimSpace(ta.nb.Row(1)))

	status := ta.nb.Row(8)
	assert.Contains(t, status, "[No filename]")
	assert.Contains(t, status, "1 line")
	assert.Contains(t, status, "(modified)")
	assert.Contains(t, ta.nb.Row(9), "COMMANDS:")
}

func TestEditingKeys(t *testing.T) {
	ta := newTestApp(t, "")
	ta.typeText(t, "ab")
	require.NoError(t, ta.key(t, backend.KeyEnter))
	require.NoError(t, ta.key(t, backend.KeyTab))
	ta.typeText(t, "c")
	require.NoError(t, ta.key(t, backend.KeyBackspace))
	require.NoError(t, ta.key(t, backend.KeyHome))
	require.NoError(t, ta.key(t, backend.KeyDelete))

	assert.Equal(t, []string{"ab", "   "}, ta.Engine().Lines())
	assert.Equal(t, engine.Point{Row: 1, Col: 0}, ta.Engine().Cursor())
}

func TestMovementBeepsAtEdges(t *testing.T) {
	ta := newTestApp(t, "")

	require.NoError(t, ta.key(t, backend.KeyLeft))
	require.NoError(t, ta.key(t, backend.KeyUp))
	require.NoError(t, ta.key(t, backend.KeyDown))
	assert.Equal(t, 3, ta.nb.Beeps())

	ta.typeText(t, "x")
	require.NoError(t, ta.key(t, backend.KeyLeft))
	assert.Equal(t, 3, ta.nb.Beeps())
}

func TestPageKeys(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.txt", strings.Repeat("x\n", 30))
	ta := newTestApp(t, path)

	require.NoError(t, ta.key(t, backend.KeyPageDown))
	assert.Equal(t, config.DefaultScrollLines, ta.Engine().Cursor().Row)

	require.NoError(t, ta.key(t, backend.KeyPageUp))
	assert.Equal(t, 0, ta.Engine().Cursor().Row)
}

func TestPaste(t *testing.T) {
	ta := newTestApp(t, "")
	require.NoError(t, ta.HandleEvent(backend.Event{Type: backend.EventPaste, PasteText: "a\nb"}))

	assert.Equal(t, []string{"a", "b"}, ta.Engine().Lines())
}

func TestSavePromptsForName(t *testing.T) {
	ta := newTestApp(t, "")
	ta.typeText(t, "hello")

	require.NoError(t, ta.key(t, backend.KeyCtrlS))
	require.NotNil(t, ta.Prompt())
	assert.Equal(t, PromptSave, ta.Prompt().Kind)

	ta.Render()
	assert.Contains(t, ta.nb.Row(9), "Save file:")

	path := filepath.Join(t.TempDir(), "out.txt")
	ta.typeText(t, path)
	require.NoError(t, ta.key(t, backend.KeyEnter))

	assert.Nil(t, ta.Prompt())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", string(data))
	assert.Equal(t, "6 bytes written to disk", ta.message())
	assert.Equal(t, "out.txt", ta.Document().Name)
	assert.False(t, ta.Document().IsModified())
}

func TestSaveNamedDocument(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.txt", "abc\n")
	ta := newTestApp(t, path)
	ta.typeText(t, "x")

	require.NoError(t, ta.key(t, backend.KeyCtrlS))

	assert.Nil(t, ta.Prompt())
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "xabc\n", string(data))
	assert.Equal(t, "5 bytes written to disk", ta.message())
}

func TestSaveFailureShowsError(t *testing.T) {
	ta := newTestApp(t, "")
	require.NoError(t, ta.key(t, backend.KeyCtrlS))
	ta.typeText(t, filepath.Join(t.TempDir(), "missing", "out.txt"))
	require.NoError(t, ta.key(t, backend.KeyEnter))

	text, kind := ta.MessageLine()
	assert.Contains(t, text, "Failed to save file")
	assert.Equal(t, statusline.MessageError, kind)
	assert.True(t, ta.Document().IsScratch())
}

func TestOpenPrompt(t *testing.T) {
	path := writeFile(t, t.TempDir(), "b.txt", "line one\nline two")
	ta := newTestApp(t, "")

	require.NoError(t, ta.key(t, backend.KeyCtrlO))
	ta.typeText(t, path)
	require.NoError(t, ta.key(t, backend.KeyEnter))

	assert.Equal(t, []string{"line one", "line two"}, ta.Engine().Lines())
	assert.Equal(t, "Loaded 17 bytes from "+path, ta.message())
	assert.Equal(t, path, ta.Document().Path)

	require.NoError(t, ta.key(t, backend.KeyCtrlO))
	ta.typeText(t, path+".missing")
	require.NoError(t, ta.key(t, backend.KeyEnter))
	assert.Contains(t, ta.message(), "Failed to open file")
	assert.Equal(t, path, ta.Document().Path)
}

func TestEscapeCancelsPrompt(t *testing.T) {
	ta := newTestApp(t, "")
	require.NoError(t, ta.key(t, backend.KeyCtrlG))
	ta.typeText(t, "12")
	require.NoError(t, ta.key(t, backend.KeyEscape))

	assert.Nil(t, ta.Prompt())
	assert.Equal(t, []string{""}, ta.Engine().Lines())
}

func TestPromptIgnoresCommands(t *testing.T) {
	ta := newTestApp(t, "")
	require.NoError(t, ta.key(t, backend.KeyCtrlF))
	require.NoError(t, ta.key(t, backend.KeyCtrlQ))

	require.NotNil(t, ta.Prompt())
	assert.Equal(t, PromptFind, ta.Prompt().Kind)
}

func TestGotoLine(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.txt", "a\nbb\nccc")
	ta := newTestApp(t, path)
	ta.Engine().SetCursor(2, 3)

	tests := []struct {
		input   string
		want    engine.Point
		message string
	}{
		{"2", engine.Point{Row: 1, Col: 0}, DefaultMessage},
		{" 1 ", engine.Point{Row: 0, Col: 0}, DefaultMessage},
		{"9", engine.Point{Row: 0, Col: 0}, "Invalid line entered"},
		{"0", engine.Point{Row: 0, Col: 0}, "Invalid line entered"},
		{"two", engine.Point{Row: 0, Col: 0}, "Invalid line entered"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.NoError(t, ta.key(t, backend.KeyCtrlG))
			ta.typeText(t, tt.input)
			require.NoError(t, ta.key(t, backend.KeyEnter))

			assert.Equal(t, tt.want, ta.Engine().Cursor())
			assert.Equal(t, tt.message, ta.message())
			ta.advance(time.Minute)
		})
	}
}

func TestFindHighlightsUntilEdit(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.txt", "foo bar\nbar foo")
	ta := newTestApp(t, path)
	ta.Engine().SetCursor(0, 2)

	require.NoError(t, ta.key(t, backend.KeyCtrlF))
	ta.typeText(t, "foo")
	require.NoError(t, ta.key(t, backend.KeyEnter))

	assert.Equal(t, `Found 2 matches for "foo"`, ta.message())
	assert.Len(t, ta.Highlights(), 2)
	assert.Equal(t, engine.Point{Row: 1, Col: 4}, ta.Engine().Cursor())

	ta.Render()
	ta.typeText(t, "x")
	assert.Empty(t, ta.Highlights())
}

func TestFindMessages(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.txt", "foo")
	ta := newTestApp(t, path)

	require.NoError(t, ta.key(t, backend.KeyCtrlF))
	ta.typeText(t, "zzz")
	require.NoError(t, ta.key(t, backend.KeyEnter))
	assert.Equal(t, `No matches found for "zzz"`, ta.message())

	require.NoError(t, ta.key(t, backend.KeyCtrlF))
	ta.typeText(t, "(")
	require.NoError(t, ta.key(t, backend.KeyEnter))
	assert.Equal(t, `Invalid regex "("`, ta.message())

	require.NoError(t, ta.key(t, backend.KeyCtrlF))
	ta.typeText(t, "fo")
	require.NoError(t, ta.key(t, backend.KeyEnter))
	assert.Equal(t, `Found 1 match for "fo"`, ta.message())
}

func TestWordCount(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.txt", "hello world 42\nfoo-bar again")
	ta := newTestApp(t, path)

	require.NoError(t, ta.key(t, backend.KeyCtrlW))
	assert.Equal(t, "There are 3 words in the current file", ta.message())
}

func TestHelpCycles(t *testing.T) {
	ta := newTestApp(t, "")

	require.NoError(t, ta.key(t, backend.KeyCtrlA))
	assert.Equal(t, "Command help 1/2: "+HelpLines[0], ta.message())

	require.NoError(t, ta.key(t, backend.KeyCtrlA))
	assert.Equal(t, "Command help 2/2: "+HelpLines[1], ta.message())

	require.NoError(t, ta.key(t, backend.KeyCtrlA))
	assert.Equal(t, "Command help 1/2: "+HelpLines[0], ta.message())

	ta.advance(config.DefaultMessageTimeout)
	assert.Equal(t, DefaultMessage, ta.message())
	require.NoError(t, ta.key(t, backend.KeyCtrlA))
	assert.Equal(t, "Command help 1/2: "+HelpLines[0], ta.message())
}

func TestQuitUnmodified(t *testing.T) {
	ta := newTestApp(t, "")
	assert.ErrorIs(t, ta.key(t, backend.KeyCtrlQ), ErrQuit)
}

func TestQuitModifiedNeedsConfirmation(t *testing.T) {
	ta := newTestApp(t, "")
	ta.typeText(t, "x")

	require.NoError(t, ta.key(t, backend.KeyCtrlQ))
	assert.Equal(t, "File has unsaved changes. Press Ctrl+Q 2 more times to quit", ta.message())

	require.NoError(t, ta.key(t, backend.KeyCtrlQ))
	assert.Equal(t, "File has unsaved changes. Press Ctrl+Q 1 more time to quit", ta.message())

	// Waiting too long starts the count again.
	ta.advance(config.DefaultMessageTimeout)
	require.NoError(t, ta.key(t, backend.KeyCtrlQ))
	require.NoError(t, ta.key(t, backend.KeyCtrlQ))
	assert.ErrorIs(t, ta.key(t, backend.KeyCtrlQ), ErrQuit)
}

func TestUndoRestoresSnapshots(t *testing.T) {
	ta := newTestApp(t, "")

	ta.typeText(t, "ab")
	ta.Step()
	ta.advance(time.Second)
	ta.typeText(t, "c")
	ta.Step()
	require.Equal(t, "abc", ta.Engine().Text())

	require.NoError(t, ta.key(t, backend.KeyCtrlZ))
	assert.Equal(t, "ab", ta.Engine().Text())
	assert.Equal(t, engine.Point{Row: 0, Col: 2}, ta.Engine().Cursor())

	require.NoError(t, ta.key(t, backend.KeyCtrlZ))
	assert.Equal(t, "", ta.Engine().Text())

	// The initial state is the floor.
	require.NoError(t, ta.key(t, backend.KeyCtrlZ))
	assert.Equal(t, "", ta.Engine().Text())
	assert.Equal(t, uint64(3), ta.Metrics().Snapshot().Undos)
}

func TestUndoCoalescesQuickEdits(t *testing.T) {
	ta := newTestApp(t, "")

	ta.typeText(t, "a")
	ta.Step()
	ta.advance(100 * time.Millisecond)
	ta.typeText(t, "b")
	ta.Step()

	require.NoError(t, ta.key(t, backend.KeyCtrlZ))
	assert.Equal(t, "", ta.Engine().Text())
}

func TestRunScriptFromPrompt(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "edit.lua", `
ed.insert("hi")
ed.newline()
ed.message("done")
`)
	ta := newTestApp(t, "")

	require.NoError(t, ta.key(t, backend.KeyCtrlR))
	ta.typeText(t, path)
	require.NoError(t, ta.key(t, backend.KeyEnter))

	assert.Equal(t, []string{"hi", ""}, ta.Engine().Lines())
	assert.Equal(t, "done", ta.message())
}

func TestRunScriptOutput(t *testing.T) {
	path := writeFile(t, t.TempDir(), "p.lua", `print("words:", ed.word_count())`)
	var out bytes.Buffer

	a, err := New(Options{
		Path:         writeFile(t, t.TempDir(), "doc.txt", "one two"),
		Logger:       NullLogger,
		ScriptOutput: &out,
	})
	require.NoError(t, err)

	require.NoError(t, a.RunScript(context.Background(), path))
	assert.Equal(t, "words:\t2\n", out.String())
	text, _ := a.MessageLine()
	assert.Equal(t, "words:\t2", text)
}

func TestRunScriptFailure(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.lua", `error("nope")`)
	ta := newTestApp(t, "")

	require.NoError(t, ta.key(t, backend.KeyCtrlR))
	ta.typeText(t, path)
	require.NoError(t, ta.key(t, backend.KeyEnter))

	text, kind := ta.MessageLine()
	assert.True(t, strings.HasPrefix(text, "Script failed:"), text)
	assert.Equal(t, statusline.MessageError, kind)
}

func TestScriptSaveUsesDocument(t *testing.T) {
	docPath := writeFile(t, t.TempDir(), "doc.txt", "")
	script := writeFile(t, t.TempDir(), "s.lua", `ed.insert("saved") ed.save()`)
	ta := newTestApp(t, docPath)

	require.NoError(t, ta.RunScript(context.Background(), script))

	data, err := os.ReadFile(docPath)
	require.NoError(t, err)
	assert.Equal(t, "saved\n", string(data))
	assert.False(t, ta.Document().IsModified())
}

func TestRunQuitsOnCtrlQ(t *testing.T) {
	ta := newTestApp(t, "")
	ta.nb.PostEvent(backend.Event{Type: backend.EventKey, Key: backend.KeyRune, Rune: 'h'})
	for i := 0; i < config.DefaultQuitConfirmations; i++ {
		ta.nb.PostEvent(backend.Event{Type: backend.EventKey, Key: backend.KeyCtrlQ})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, ta.Run(ctx))
	assert.Equal(t, "h", ta.Engine().Text())
	assert.False(t, ta.IsRunning())
	assert.GreaterOrEqual(t, ta.Metrics().Snapshot().Events, uint64(4))
	assert.Contains(t, ta.nb.Row(0), "h")
}

func TestRunStopsOnContextCancel(t *testing.T) {
	ta := newTestApp(t, "")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, ta.Run(ctx), context.Canceled)
}

func TestRunRequiresBackend(t *testing.T) {
	a, err := New(Options{Logger: NullLogger})
	require.NoError(t, err)
	assert.ErrorIs(t, a.Run(context.Background()), ErrNoBackend)
}

func TestConfigReloadAppliesSettings(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.toml", "[editor]\ntab_size = 2\n")
	cfg := config.New(config.WithPath(path), config.WithEnvPrefix(""))
	require.NoError(t, cfg.Load(context.Background()))
	defer cfg.Close()

	a, err := New(Options{Backend: backend.NewNullBackend(40, 10), Config: cfg, Logger: NullLogger})
	require.NoError(t, err)
	defer a.Close()
	require.Equal(t, 2, a.Engine().TabSize())

	writeFile(t, dir, "config.toml", "[editor]\ntab_size = 6\n\n[display]\nline_numbers = false\n")
	require.NoError(t, cfg.Reload())

	a.applyReload(<-a.reloads)
	assert.Equal(t, 6, a.Engine().TabSize())
	assert.Equal(t, 0, a.renderer.Viewport().GutterWidth())
}

func TestConfigReloadFailureKeepsSettings(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.toml", "[editor]\ntab_size = 2\n")
	cfg := config.New(config.WithPath(path), config.WithEnvPrefix(""))
	require.NoError(t, cfg.Load(context.Background()))
	defer cfg.Close()

	a, err := New(Options{Config: cfg, Logger: NullLogger})
	require.NoError(t, err)
	defer a.Close()

	writeFile(t, dir, "config.toml", "[editor\n")
	require.Error(t, cfg.Reload())

	a.applyReload(<-a.reloads)
	assert.Equal(t, 2, a.Engine().TabSize())
	text, kind := a.MessageLine()
	assert.Contains(t, text, "Config reload failed")
	assert.Equal(t, statusline.MessageError, kind)
}
