package script

import (
	"context"
	"errors"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/gale/internal/engine"
)

// ModuleName is the global name of the editor module.
const ModuleName = "ed"

// Host provides the operations that live outside the engine.
type Host interface {
	// Save writes the buffer to path, or to the current file name when
	// path is empty, and returns the number of bytes written.
	Save(path string) (int, error)

	// Message shows text on the message line.
	Message(text string)
}

// EditorModule exposes an engine to Lua as the "ed" module.
type EditorModule struct {
	engine *engine.Engine
	host   Host
}

// NewEditorModule creates the module. host may be nil; ed.save and
// ed.message then raise an error.
func NewEditorModule(e *engine.Engine, host Host) *EditorModule {
	return &EditorModule{engine: e, host: host}
}

// Register installs the module into s.
func (m *EditorModule) Register(s *State) {
	s.RegisterModule(ModuleName, map[string]lua.LGFunction{
		"insert":     m.insert,
		"newline":    m.newline,
		"backspace":  m.backspace,
		"delete":     m.delete,
		"tab":        m.tab,
		"move":       m.move,
		"home":       m.home,
		"end_line":   m.endLine,
		"goto_line":  m.gotoLine,
		"cursor":     m.cursor,
		"line":       m.line,
		"line_count": m.lineCount,
		"text":       m.text,
		"modified":   m.modified,
		"undo":       m.undo,
		"commit":     m.commit,
		"word_count": m.wordCount,
		"find":       m.find,
		"save":       m.save,
		"message":    m.message,
	})
}

// insert(s)
// Inserts text at the cursor; "\n" splits lines.
func (m *EditorModule) insert(L *lua.LState) int {
	if err := m.engine.InsertText(L.CheckString(1)); err != nil {
		L.RaiseError("insert: %v", err)
	}
	return 0
}

// newline()
func (m *EditorModule) newline(L *lua.LState) int {
	if err := m.engine.Newline(); err != nil {
		L.RaiseError("newline: %v", err)
	}
	return 0
}

// backspace()
func (m *EditorModule) backspace(L *lua.LState) int {
	if err := m.engine.Backspace(); err != nil {
		L.RaiseError("backspace: %v", err)
	}
	return 0
}

// delete()
// Deletes the character after the cursor.
func (m *EditorModule) delete(L *lua.LState) int {
	if err := m.engine.DeleteForward(); err != nil {
		L.RaiseError("delete: %v", err)
	}
	return 0
}

// tab()
func (m *EditorModule) tab(L *lua.LState) int {
	if err := m.engine.InsertTab(); err != nil {
		L.RaiseError("tab: %v", err)
	}
	return 0
}

// move(dir[, n]) -> bool
// dir is "left", "right", "up" or "down". Returns false when a boundary
// stopped the movement early.
func (m *EditorModule) move(L *lua.LState) int {
	dir := strings.ToLower(L.CheckString(1))
	n := L.OptInt(2, 1)

	var step func() bool
	switch dir {
	case "left":
		step = m.engine.MoveLeft
	case "right":
		step = m.engine.MoveRight
	case "up":
		step = func() bool { return m.engine.MoveUp() == nil }
	case "down":
		step = func() bool { return m.engine.MoveDown() == nil }
	default:
		L.ArgError(1, "direction must be left, right, up or down")
		return 0
	}

	for i := 0; i < n; i++ {
		if !step() {
			L.Push(lua.LFalse)
			return 1
		}
	}
	L.Push(lua.LTrue)
	return 1
}

// home()
func (m *EditorModule) home(L *lua.LState) int {
	m.engine.Home()
	return 0
}

// end_line()
func (m *EditorModule) endLine(L *lua.LState) int {
	m.engine.End()
	return 0
}

// goto_line(n)
// Moves to the start of line n.
func (m *EditorModule) gotoLine(L *lua.LState) int {
	if err := m.engine.GotoLine(L.CheckInt(1)); err != nil {
		L.RaiseError("goto_line: %v", err)
	}
	return 0
}

// cursor() -> row, col
func (m *EditorModule) cursor(L *lua.LState) int {
	p := m.engine.Cursor()
	L.Push(lua.LNumber(p.Row + 1))
	L.Push(lua.LNumber(p.Col + 1))
	return 2
}

// line(n) -> string
func (m *EditorModule) line(L *lua.LState) int {
	n := L.CheckInt(1)
	text, err := m.engine.Line(n - 1)
	if err != nil {
		L.RaiseError("line: %v", err)
		return 0
	}
	L.Push(lua.LString(text))
	return 1
}

// line_count() -> number
func (m *EditorModule) lineCount(L *lua.LState) int {
	L.Push(lua.LNumber(m.engine.LineCount()))
	return 1
}

// text() -> string
func (m *EditorModule) text(L *lua.LState) int {
	L.Push(lua.LString(m.engine.Text()))
	return 1
}

// modified() -> bool
func (m *EditorModule) modified(L *lua.LState) int {
	L.Push(lua.LBool(m.engine.Modified()))
	return 1
}

// undo() -> bool
// Returns false when there is nothing to undo.
func (m *EditorModule) undo(L *lua.LState) int {
	_, err := m.engine.Undo()
	if err != nil && !errors.Is(err, engine.ErrNothingToUndo) {
		L.RaiseError("undo: %v", err)
		return 0
	}
	L.Push(lua.LBool(err == nil))
	return 1
}

// commit() -> bool
// Captures the current state as an undo step. Scripts call it between
// edits that should undo separately.
func (m *EditorModule) commit(L *lua.LState) int {
	L.Push(lua.LBool(m.engine.Commit()))
	return 1
}

// word_count() -> number
func (m *EditorModule) wordCount(L *lua.LState) int {
	L.Push(lua.LNumber(m.engine.WordCount()))
	return 1
}

// find(pattern) -> { {row=, col=, len=}, ... }
func (m *EditorModule) find(L *lua.LState) int {
	matches, err := m.engine.Find(L.CheckString(1))
	if err != nil {
		L.RaiseError("find: %v", err)
		return 0
	}

	result := L.CreateTable(len(matches), 0)
	for _, match := range matches {
		t := L.CreateTable(0, 3)
		t.RawSetString("row", lua.LNumber(match.Row+1))
		t.RawSetString("col", lua.LNumber(match.Col+1))
		t.RawSetString("len", lua.LNumber(match.Len))
		result.Append(t)
	}
	L.Push(result)
	return 1
}

// save([path]) -> bytes
func (m *EditorModule) save(L *lua.LState) int {
	if m.host == nil {
		L.RaiseError("save: %v", ErrNoHost)
		return 0
	}
	n, err := m.host.Save(L.OptString(1, ""))
	if err != nil {
		L.RaiseError("save: %v", err)
		return 0
	}
	L.Push(lua.LNumber(n))
	return 1
}

// message(text)
func (m *EditorModule) message(L *lua.LState) int {
	if m.host == nil {
		L.RaiseError("message: %v", ErrNoHost)
		return 0
	}
	m.host.Message(L.CheckString(1))
	return 0
}

// RunFile executes a script file against e in a fresh state.
func RunFile(ctx context.Context, e *engine.Engine, host Host, path string, opts ...StateOption) error {
	s := NewState(opts...)
	defer s.Close()
	NewEditorModule(e, host).Register(s)
	return s.DoFile(ctx, path)
}

// RunString executes code against e in a fresh state.
func RunString(ctx context.Context, e *engine.Engine, host Host, code string, opts ...StateOption) error {
	s := NewState(opts...)
	defer s.Close()
	NewEditorModule(e, host).Register(s)
	return s.DoString(ctx, code)
}
