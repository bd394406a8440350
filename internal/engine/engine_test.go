package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/dshills/gale/internal/engine/history"
)

func newTestEngine(t *testing.T, content string) (*Engine, *history.ManualClock) {
	t.Helper()
	clock := history.NewManualClock(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	e := New(WithContent(content), WithClock(clock))
	return e, clock
}

func TestInsertIntoEmptyBuffer(t *testing.T) {
	e, _ := newTestEngine(t, "")

	require.NoError(t, e.InsertChar('a'))
	require.NoError(t, e.InsertChar('b'))

	require.Equal(t, []string{"ab"}, e.Lines())
	require.Equal(t, Point{Row: 0, Col: 2}, e.Cursor())
	require.True(t, e.Modified())
}

func TestBackspaceWithinLine(t *testing.T) {
	e, _ := newTestEngine(t, "ab")
	e.End()

	require.NoError(t, e.Backspace())
	require.Equal(t, []string{"a"}, e.Lines())
	require.Equal(t, Point{Row: 0, Col: 1}, e.Cursor())
}

func TestBackspaceJoinsLines(t *testing.T) {
	e, _ := newTestEngine(t, "hello\nworld")
	e.SetCursor(1, 0)

	require.NoError(t, e.Backspace())
	require.Equal(t, []string{"helloworld"}, e.Lines())
	require.Equal(t, Point{Row: 0, Col: 5}, e.Cursor())
}

func TestBackspaceOntoEmptyLine(t *testing.T) {
	e, _ := newTestEngine(t, "\nabc")
	e.SetCursor(1, 0)

	require.NoError(t, e.Backspace())
	require.Equal(t, []string{"abc"}, e.Lines())
	require.Equal(t, Point{Row: 0, Col: 0}, e.Cursor())
}

func TestBackspaceAtOrigin(t *testing.T) {
	e, _ := newTestEngine(t, "abc")

	require.NoError(t, e.Backspace())
	require.Equal(t, []string{"abc"}, e.Lines())
	require.False(t, e.Modified())
}

func TestDeleteForward(t *testing.T) {
	e, _ := newTestEngine(t, "ab\ncd")
	e.End()

	require.NoError(t, e.DeleteForward())
	require.Equal(t, []string{"abcd"}, e.Lines())
	require.Equal(t, Point{Row: 0, Col: 2}, e.Cursor())

	e.End()
	require.NoError(t, e.DeleteForward())
	require.Equal(t, []string{"abcd"}, e.Lines())
}

func TestNewline(t *testing.T) {
	e, _ := newTestEngine(t, "hello")
	e.SetCursor(0, 2)

	require.NoError(t, e.Newline())
	require.Equal(t, []string{"he", "llo"}, e.Lines())
	require.Equal(t, Point{Row: 1, Col: 0}, e.Cursor())
}

func TestInsertText(t *testing.T) {
	e, _ := newTestEngine(t, "")

	require.NoError(t, e.InsertText("ab\r\ncd\n"))
	require.Equal(t, []string{"ab", "cd", ""}, e.Lines())
	require.Equal(t, Point{Row: 2, Col: 0}, e.Cursor())
}

func TestInsertTab(t *testing.T) {
	e, _ := newTestEngine(t, "")
	e.SetTabSize(4)

	require.NoError(t, e.InsertChar('a'))
	require.NoError(t, e.InsertTab())
	require.Equal(t, []string{"a   "}, e.Lines())
	require.Equal(t, 4, e.Cursor().Col)

	require.NoError(t, e.InsertTab())
	require.Equal(t, 8, e.Cursor().Col)
}

func TestVerticalMovementRemembersColumn(t *testing.T) {
	e, _ := newTestEngine(t, "abcdef\nxy\nz")
	e.SetCursor(0, 5)

	require.NoError(t, e.MoveDown())
	require.NoError(t, e.MoveDown())
	require.Equal(t, Point{Row: 2, Col: 1}, e.Cursor())

	require.NoError(t, e.MoveUp())
	require.NoError(t, e.MoveUp())
	require.Equal(t, Point{Row: 0, Col: 5}, e.Cursor())

	require.ErrorIs(t, e.MoveUp(), ErrOutOfRange)
}

func TestPageUpDown(t *testing.T) {
	lines := make([]byte, 0, 64)
	for i := 0; i < 25; i++ {
		lines = append(lines, 'x', '\n')
	}
	e := New(WithContent(string(lines)), WithScrollLines(10))
	require.Equal(t, 25, e.LineCount())

	require.NoError(t, e.PageDown())
	require.Equal(t, 10, e.Cursor().Row)
	require.NoError(t, e.PageDown())
	require.NoError(t, e.PageDown())
	require.Equal(t, 24, e.Cursor().Row)

	require.NoError(t, e.PageUp())
	require.Equal(t, 14, e.Cursor().Row)
}

func TestGotoLine(t *testing.T) {
	e, _ := newTestEngine(t, "a\nbb\nccc")
	e.End()

	require.NoError(t, e.GotoLine(3))
	require.Equal(t, Point{Row: 2, Col: 0}, e.Cursor())

	require.ErrorIs(t, e.GotoLine(0), ErrInvalidLine)
	require.ErrorIs(t, e.GotoLine(4), ErrInvalidLine)
}

func TestWordCount(t *testing.T) {
	e, _ := newTestEngine(t, "hello world 42\nfoo-bar baz\n\n  élan  ")
	require.Equal(t, 4, e.WordCount())
}

func TestFind(t *testing.T) {
	e, _ := newTestEngine(t, "foo bar foo\nbaz\nfoofoo")

	matches, err := e.Find("foo")
	require.NoError(t, err)
	require.Equal(t, []Match{
		{Row: 0, Col: 0, Len: 3},
		{Row: 0, Col: 8, Len: 3},
		{Row: 2, Col: 0, Len: 3},
		{Row: 2, Col: 3, Len: 3},
	}, matches)

	e.SetCursor(0, 1)
	require.True(t, e.JumpToMatch(matches))
	require.Equal(t, Point{Row: 0, Col: 8}, e.Cursor())

	e.SetCursor(2, 4)
	require.True(t, e.JumpToMatch(matches))
	require.Equal(t, Point{Row: 0, Col: 0}, e.Cursor())
}

func TestFindMultibyteColumns(t *testing.T) {
	e, _ := newTestEngine(t, "日本語 text")
	matches, err := e.Find("text")
	require.NoError(t, err)
	require.Equal(t, []Match{{Row: 0, Col: 4, Len: 4}}, matches)
}

func TestFindInvalidPattern(t *testing.T) {
	e, _ := newTestEngine(t, "abc")
	_, err := e.Find("(")
	require.ErrorIs(t, err, ErrInvalidPattern)
}

func TestFindSkipsEmptyMatches(t *testing.T) {
	e, _ := newTestEngine(t, "abc")
	matches, err := e.Find("x*")
	require.NoError(t, err)
	require.Empty(t, matches)
	require.False(t, e.JumpToMatch(matches))
}

func TestUndoRestoresLoadState(t *testing.T) {
	e, clock := newTestEngine(t, "")
	e.Load("original")
	require.False(t, e.Modified())

	e.End()
	require.NoError(t, e.InsertChar('!'))
	clock.Advance(10 * time.Millisecond)
	e.Tick()

	snap, err := e.Undo()
	require.NoError(t, err)
	require.NotEmpty(t, snap.ID.String())
	require.Equal(t, []string{"original"}, e.Lines())
	require.Equal(t, Point{}, e.Cursor())
}

func TestUndoAtFloorKeepsUnmodified(t *testing.T) {
	e, _ := newTestEngine(t, "")
	e.Load("saved")

	_, err := e.Undo()
	require.NoError(t, err)
	require.False(t, e.Modified())
	require.Equal(t, []string{"saved"}, e.Lines())
}

func TestUndoAfterEditMarksModified(t *testing.T) {
	e, clock := newTestEngine(t, "")
	e.Load("saved")
	e.End()
	require.NoError(t, e.InsertChar('!'))
	clock.Advance(10 * time.Millisecond)
	e.Tick()
	e.MarkSaved()

	_, err := e.Undo()
	require.NoError(t, err)
	require.True(t, e.Modified())
	require.Equal(t, []string{"saved"}, e.Lines())
}

func TestCommitSeparatesQuickEdits(t *testing.T) {
	e, _ := newTestEngine(t, "")

	require.NoError(t, e.InsertChar('a'))
	require.True(t, e.Commit())
	require.NoError(t, e.InsertChar('b'))
	require.True(t, e.Commit())
	require.False(t, e.Commit())

	_, err := e.Undo()
	require.NoError(t, err)
	require.Equal(t, []string{"a"}, e.Lines())
}

func TestUndoCoalescedTyping(t *testing.T) {
	e, clock := newTestEngine(t, "")

	for _, ch := range "abc" {
		require.NoError(t, e.InsertChar(ch))
		clock.Advance(100 * time.Millisecond)
		e.Tick()
	}
	require.Equal(t, 2, e.History().Len())

	clock.Advance(time.Second)
	require.NoError(t, e.InsertChar('d'))
	e.Tick()

	_, err := e.Undo()
	require.NoError(t, err)
	require.Equal(t, []string{"abc"}, e.Lines())
	require.Equal(t, Point{Row: 0, Col: 3}, e.Cursor())

	_, err = e.Undo()
	require.NoError(t, err)
	require.Equal(t, []string{""}, e.Lines())
}

func TestLoadResetsHistory(t *testing.T) {
	e, clock := newTestEngine(t, "one")
	require.NoError(t, e.InsertChar('x'))
	clock.Advance(time.Second)
	e.Tick()

	e.Load("two\r\nlines\r\n")
	require.Equal(t, 1, e.History().Len())
	require.Equal(t, []string{"two", "lines"}, e.Lines())
	require.Equal(t, LineEndingCRLF, e.LineEnding())
	require.Equal(t, "two\r\nlines", e.Text())
}

func TestCursorStaysValidUnderEdits(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		e := New(WithClock(history.NewManualClock(time.Unix(0, 0))))

		steps := rapid.IntRange(1, 80).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			switch rapid.IntRange(0, 10).Draw(t, "op") {
			case 0, 1:
				_ = e.InsertChar(rapid.RuneFrom([]rune("abc xyz")).Draw(t, "ch"))
			case 2:
				_ = e.Backspace()
			case 3:
				_ = e.DeleteForward()
			case 4:
				_ = e.Newline()
			case 5:
				e.MoveLeft()
			case 6:
				e.MoveRight()
			case 7:
				_ = e.MoveUp()
			case 8:
				_ = e.MoveDown()
			case 9:
				e.Tick()
			case 10:
				_, _ = e.Undo()
			}

			pos := e.Cursor()
			if pos.Row < 0 || pos.Row >= e.LineCount() {
				t.Fatalf("row %d outside [0,%d)", pos.Row, e.LineCount())
			}
			if pos.Col < 0 || pos.Col > e.Buffer().LineLen(pos.Row) {
				t.Fatalf("col %d outside line of %d", pos.Col, e.Buffer().LineLen(pos.Row))
			}
		}
	})
}
