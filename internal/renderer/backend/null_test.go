package backend

import (
	"testing"

	"github.com/dshills/gale/internal/renderer/core"
)

func TestNullBackendDrawString(t *testing.T) {
	b := NewNullBackend(5, 2)

	next := DrawString(b, 1, 0, 5, "abcdef", core.DefaultStyle())
	if next != 5 {
		t.Errorf("expected clip at 5, got %d", next)
	}
	if got := b.Row(0); got != " abcd" {
		t.Errorf("expected %q, got %q", " abcd", got)
	}
}

func TestNullBackendFillAndClear(t *testing.T) {
	b := NewNullBackend(4, 3)
	b.Fill(core.RectFromSize(1, 0, 1, 10), core.NewStyledCell('~', core.DefaultStyle()))

	if got := b.Row(1); got != "~~~~" {
		t.Errorf("expected fill, got %q", got)
	}
	b.Clear()
	if got := b.Row(1); got != "" {
		t.Errorf("expected cleared row, got %q", got)
	}
}

func TestNullBackendResizeQueuesEvent(t *testing.T) {
	b := NewNullBackend(4, 3)
	b.Resize(8, 6)

	ev := b.PollEvent()
	if ev.Type != EventResize || ev.Width != 8 || ev.Height != 6 {
		t.Errorf("unexpected event %+v", ev)
	}
	if w, h := b.Size(); w != 8 || h != 6 {
		t.Errorf("unexpected size %dx%d", w, h)
	}
}

func TestNullBackendCursor(t *testing.T) {
	b := NewNullBackend(4, 3)
	b.ShowCursor(2, 1)
	x, y, visible := b.CursorPosition()
	if x != 2 || y != 1 || !visible {
		t.Errorf("unexpected cursor %d,%d visible=%v", x, y, visible)
	}
	b.HideCursor()
	if _, _, visible := b.CursorPosition(); visible {
		t.Error("expected hidden cursor")
	}
}
