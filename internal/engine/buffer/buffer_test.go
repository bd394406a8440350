package buffer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNew(t *testing.T) {
	b := New()
	require.Equal(t, 1, b.LineCount())
	require.True(t, b.IsEmpty())

	line, err := b.Line(0)
	require.NoError(t, err)
	require.Equal(t, "", line)
}

func TestNewFromString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"empty", "", []string{""}},
		{"single", "hello", []string{"hello"}},
		{"lf", "a\nb", []string{"a", "b"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"cr", "a\rb", []string{"a", "b"}},
		{"trailing newline", "a\n", []string{"a"}},
		{"blank lines", "a\n\nb", []string{"a", "", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewFromString(tt.input)
			require.Equal(t, tt.want, b.Lines())
		})
	}
}

func TestInsertChar(t *testing.T) {
	b := New()

	p, err := b.InsertChar(0, 0, 'a')
	require.NoError(t, err)
	require.Equal(t, Point{Row: 0, Col: 1}, p)

	p, err = b.InsertChar(p.Row, p.Col, 'b')
	require.NoError(t, err)
	require.Equal(t, Point{Row: 0, Col: 2}, p)

	line, _ := b.Line(0)
	require.Equal(t, "ab", line)

	// Insert in the middle.
	p, err = b.InsertChar(0, 1, 'x')
	require.NoError(t, err)
	require.Equal(t, Point{Row: 0, Col: 2}, p)
	line, _ = b.Line(0)
	require.Equal(t, "axb", line)
}

func TestInsertCharMultibyte(t *testing.T) {
	b := NewFromString("日本")
	require.Equal(t, 2, b.LineLen(0))

	p, err := b.InsertChar(0, 1, 'é')
	require.NoError(t, err)
	require.Equal(t, Point{Row: 0, Col: 2}, p)

	line, _ := b.Line(0)
	require.Equal(t, "日é本", line)
}

func TestInsertCharOutOfRange(t *testing.T) {
	b := NewFromString("abc")

	_, err := b.InsertChar(0, 4, 'x')
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = b.InsertChar(1, 0, 'x')
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	_, err = b.InsertChar(-1, 0, 'x')
	require.ErrorIs(t, err, ErrIndexOutOfRange)

	require.Equal(t, []string{"abc"}, b.Lines())
}

func TestDeleteBefore(t *testing.T) {
	b := NewFromString("ab")

	p, err := b.DeleteBefore(0, 2)
	require.NoError(t, err)
	require.Equal(t, Point{Row: 0, Col: 1}, p)
	require.Equal(t, []string{"a"}, b.Lines())

	// Emptying a line keeps it.
	p, err = b.DeleteBefore(0, 1)
	require.NoError(t, err)
	require.Equal(t, Point{Row: 0, Col: 0}, p)
	require.Equal(t, []string{""}, b.Lines())

	// Origin is a no-op.
	p, err = b.DeleteBefore(0, 0)
	require.NoError(t, err)
	require.Equal(t, Point{}, p)
	require.Equal(t, []string{""}, b.Lines())
}

func TestDeleteBeforeJoins(t *testing.T) {
	b := NewFromLines([]string{"hello", "world"})

	p, err := b.DeleteBefore(1, 0)
	require.NoError(t, err)
	require.Equal(t, Point{Row: 0, Col: 5}, p)
	require.Equal(t, []string{"helloworld"}, b.Lines())
}

func TestDeleteBeforeJoinsOntoEmptyLine(t *testing.T) {
	b := NewFromLines([]string{"", "abc"})

	p, err := b.DeleteBefore(1, 0)
	require.NoError(t, err)
	require.Equal(t, Point{Row: 0, Col: 0}, p)
	require.Equal(t, []string{"abc"}, b.Lines())
}

func TestDeleteAfter(t *testing.T) {
	b := NewFromLines([]string{"abc", "def"})

	p, err := b.DeleteAfter(0, 1)
	require.NoError(t, err)
	require.Equal(t, Point{Row: 0, Col: 1}, p)
	require.Equal(t, []string{"ac", "def"}, b.Lines())

	// End of line joins the next line.
	p, err = b.DeleteAfter(0, 2)
	require.NoError(t, err)
	require.Equal(t, Point{Row: 0, Col: 2}, p)
	require.Equal(t, []string{"acdef"}, b.Lines())

	// End of the last line is a no-op.
	p, err = b.DeleteAfter(0, 5)
	require.NoError(t, err)
	require.Equal(t, Point{Row: 0, Col: 5}, p)
	require.Equal(t, []string{"acdef"}, b.Lines())
}

func TestSplitLine(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		at    Point
		want  []string
	}{
		{"middle", []string{"hello"}, Point{0, 2}, []string{"he", "llo"}},
		{"start", []string{"hello"}, Point{0, 0}, []string{"", "hello"}},
		{"end", []string{"hello"}, Point{0, 5}, []string{"hello", ""}},
		{"between lines", []string{"a", "bc", "d"}, Point{1, 1}, []string{"a", "b", "c", "d"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewFromLines(tt.lines)
			p, err := b.SplitLine(tt.at.Row, tt.at.Col)
			require.NoError(t, err)
			require.Equal(t, Point{Row: tt.at.Row + 1, Col: 0}, p)
			require.Equal(t, tt.want, b.Lines())
		})
	}
}

func TestSplitLineOutOfRange(t *testing.T) {
	b := NewFromString("abc")
	_, err := b.SplitLine(0, 10)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	require.Equal(t, 1, b.LineCount())
}

func TestChar(t *testing.T) {
	b := NewFromString("ab")

	ch, err := b.Char(0, 1)
	require.NoError(t, err)
	require.Equal(t, 'b', ch)

	_, err = b.Char(0, 2)
	require.ErrorIs(t, err, ErrNotFound)
	_, err = b.Char(3, 0)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLineNotFound(t *testing.T) {
	b := New()
	_, err := b.Line(1)
	require.ErrorIs(t, err, ErrNotFound)
	require.Equal(t, 0, b.LineLen(5))
}

func TestReplaceAllEmpty(t *testing.T) {
	b := NewFromString("abc\ndef")
	b.ReplaceAll(nil)
	require.True(t, b.IsEmpty())
}

func TestSnapshotIsolation(t *testing.T) {
	b := NewFromString("abc")
	snap := b.Snapshot()

	_, err := b.InsertChar(0, 3, 'd')
	require.NoError(t, err)
	_, err = b.SplitLine(0, 1)
	require.NoError(t, err)

	require.Equal(t, []string{"abc"}, snap.Lines())

	b.Restore(snap)
	require.Equal(t, []string{"abc"}, b.Lines())

	// Mutating after restore must not leak back into the snapshot.
	_, err = b.InsertChar(0, 0, 'z')
	require.NoError(t, err)
	require.Equal(t, "abc", snap.Text())
}

func TestDetectLineEnding(t *testing.T) {
	require.Equal(t, LineEndingLF, DetectLineEnding("a\nb"))
	require.Equal(t, LineEndingCRLF, DetectLineEnding("a\r\nb\r\n"))
	require.Equal(t, LineEndingCR, DetectLineEnding("a\rb"))
	require.Equal(t, LineEndingLF, DetectLineEnding("plain"))
}

func TestPointCompare(t *testing.T) {
	require.True(t, Point{0, 5}.Before(Point{1, 0}))
	require.Equal(t, 0, Point{2, 2}.Compare(Point{2, 2}))
	require.Equal(t, "(1:2)", Point{1, 2}.String())
}

func linesGen() *rapid.Generator[[]string] {
	return rapid.SliceOfN(rapid.StringMatching(`[a-z ]{0,8}`), 1, 6)
}

func TestBufferNeverEmpty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		b := NewFromLines(linesGen().Draw(t, "lines"))
		steps := rapid.IntRange(1, 40).Draw(t, "steps")

		for i := 0; i < steps; i++ {
			row := rapid.IntRange(0, b.LineCount()-1).Draw(t, "row")
			col := rapid.IntRange(0, b.LineLen(row)).Draw(t, "col")

			var err error
			switch rapid.IntRange(0, 3).Draw(t, "op") {
			case 0:
				_, err = b.InsertChar(row, col, 'x')
			case 1:
				_, err = b.DeleteBefore(row, col)
			case 2:
				_, err = b.DeleteAfter(row, col)
			case 3:
				_, err = b.SplitLine(row, col)
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if b.LineCount() < 1 {
				t.Fatalf("buffer has %d lines", b.LineCount())
			}
		}
	})
}

func TestInsertThenDeleteRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lines := linesGen().Draw(t, "lines")
		b := NewFromLines(lines)
		row := rapid.IntRange(0, b.LineCount()-1).Draw(t, "row")
		col := rapid.IntRange(0, b.LineLen(row)).Draw(t, "col")

		p, err := b.InsertChar(row, col, 'Q')
		if err != nil {
			t.Fatal(err)
		}
		if _, err := b.DeleteBefore(p.Row, p.Col); err != nil {
			t.Fatal(err)
		}
		if got := strings.Join(b.Lines(), "\n"); got != strings.Join(lines, "\n") {
			t.Fatalf("got %q, want %q", got, strings.Join(lines, "\n"))
		}
	})
}

func TestSplitThenJoinRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lines := linesGen().Draw(t, "lines")
		b := NewFromLines(lines)
		row := rapid.IntRange(0, b.LineCount()-1).Draw(t, "row")
		col := rapid.IntRange(0, b.LineLen(row)).Draw(t, "col")

		p, err := b.SplitLine(row, col)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := b.DeleteBefore(p.Row, p.Col); err != nil {
			t.Fatal(err)
		}
		if got := b.Lines(); strings.Join(got, "\n") != strings.Join(lines, "\n") {
			t.Fatalf("got %q, want %q", got, lines)
		}
	})
}
