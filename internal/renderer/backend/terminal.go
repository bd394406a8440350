package backend

import (
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/gale/internal/renderer/core"
)

// tcellKeys maps tcell keys to backend keys. Both backspace codes map to
// KeyBackspace; toTcell prefers KeyBackspace2, which most terminals send.
var tcellKeys = map[tcell.Key]Key{
	tcell.KeyRune:       KeyRune,
	tcell.KeyEscape:     KeyEscape,
	tcell.KeyEnter:      KeyEnter,
	tcell.KeyTab:        KeyTab,
	tcell.KeyBackspace:  KeyBackspace,
	tcell.KeyBackspace2: KeyBackspace,
	tcell.KeyDelete:     KeyDelete,
	tcell.KeyHome:       KeyHome,
	tcell.KeyEnd:        KeyEnd,
	tcell.KeyPgUp:       KeyPageUp,
	tcell.KeyPgDn:       KeyPageDown,
	tcell.KeyUp:         KeyUp,
	tcell.KeyDown:       KeyDown,
	tcell.KeyLeft:       KeyLeft,
	tcell.KeyRight:      KeyRight,
	tcell.KeyCtrlA:      KeyCtrlA,
	tcell.KeyCtrlF:      KeyCtrlF,
	tcell.KeyCtrlG:      KeyCtrlG,
	tcell.KeyCtrlO:      KeyCtrlO,
	tcell.KeyCtrlQ:      KeyCtrlQ,
	tcell.KeyCtrlR:      KeyCtrlR,
	tcell.KeyCtrlS:      KeyCtrlS,
	tcell.KeyCtrlW:      KeyCtrlW,
	tcell.KeyCtrlZ:      KeyCtrlZ,
}

var toTcell = func() map[Key]tcell.Key {
	m := make(map[Key]tcell.Key, len(tcellKeys))
	for tk, k := range tcellKeys {
		if tk != tcell.KeyBackspace {
			m[k] = tk
		}
	}
	return m
}()

// Terminal draws to a tcell screen.
//
// Bracketed paste is collapsed: the keys tcell reports between the start
// and end markers come back from PollEvent as a single EventPaste.
type Terminal struct {
	mu     sync.Mutex
	screen tcell.Screen

	// paste is only touched by the PollEvent goroutine.
	pasting bool
	paste   strings.Builder
}

// NewTerminal creates a terminal backend on the controlling terminal.
func NewTerminal() (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return newTerminalWithScreen(screen), nil
}

// newTerminalWithScreen wraps screen; tests pass a simulation screen.
func newTerminalWithScreen(screen tcell.Screen) *Terminal {
	return &Terminal{screen: screen}
}

// locked runs fn with the screen lock held.
func (t *Terminal) locked(fn func(s tcell.Screen)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fn(t.screen)
}

func (t *Terminal) Init() error {
	var err error
	t.locked(func(s tcell.Screen) {
		if err = s.Init(); err != nil {
			return
		}
		s.EnablePaste()
		s.SetCursorStyle(tcell.CursorStyleSteadyBlock)
	})
	return err
}

func (t *Terminal) Shutdown() {
	t.locked(func(s tcell.Screen) { s.Fini() })
}

func (t *Terminal) Size() (width, height int) {
	t.locked(func(s tcell.Screen) { width, height = s.Size() })
	return width, height
}

func (t *Terminal) SetCell(x, y int, cell core.Cell) {
	t.locked(func(s tcell.Screen) {
		s.SetContent(x, y, cell.Rune, nil, convertStyle(cell.Style))
	})
}

func (t *Terminal) Fill(rect core.ScreenRect, cell core.Cell) {
	style := convertStyle(cell.Style)
	t.locked(func(s tcell.Screen) {
		w, h := s.Size()
		for y := max(rect.Top, 0); y < min(rect.Bottom, h); y++ {
			for x := max(rect.Left, 0); x < min(rect.Right, w); x++ {
				s.SetContent(x, y, cell.Rune, nil, style)
			}
		}
	})
}

func (t *Terminal) Clear() {
	t.locked(func(s tcell.Screen) { s.Clear() })
}

func (t *Terminal) Show() {
	t.locked(func(s tcell.Screen) { s.Show() })
}

func (t *Terminal) ShowCursor(x, y int) {
	t.locked(func(s tcell.Screen) { s.ShowCursor(x, y) })
}

func (t *Terminal) HideCursor() {
	t.locked(func(s tcell.Screen) { s.HideCursor() })
}

// PollEvent blocks for the next event. It returns EventNone once the
// screen has been shut down.
func (t *Terminal) PollEvent() Event {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return Event{Type: EventNone}
		}
		if out, ok := t.translate(ev); ok {
			return out
		}
	}
}

// translate converts ev, reporting false for events swallowed while a
// paste is being collected.
func (t *Terminal) translate(ev tcell.Event) (Event, bool) {
	switch e := ev.(type) {
	case *tcell.EventPaste:
		if e.Start() {
			t.pasting = true
			t.paste.Reset()
			return Event{}, false
		}
		t.pasting = false
		return Event{Type: EventPaste, PasteText: t.paste.String()}, true

	case *tcell.EventKey:
		if t.pasting {
			t.collect(e)
			return Event{}, false
		}
		return Event{
			Type: EventKey,
			Key:  tcellKeys[e.Key()],
			Rune: e.Rune(),
			Mod:  convertMod(e.Modifiers()),
		}, true

	case *tcell.EventResize:
		w, h := e.Size()
		return Event{Type: EventResize, Width: w, Height: h}, true

	case *tcell.EventInterrupt:
		return Event{Type: EventInterrupt}, true
	}
	return Event{Type: EventNone}, !t.pasting
}

func (t *Terminal) collect(e *tcell.EventKey) {
	switch e.Key() {
	case tcell.KeyRune:
		t.paste.WriteRune(e.Rune())
	case tcell.KeyEnter:
		t.paste.WriteByte('\n')
	case tcell.KeyTab:
		t.paste.WriteByte('\t')
	}
}

// PostEvent queues a synthetic key or interrupt. Other event types are
// ignored. A full queue drops the event.
func (t *Terminal) PostEvent(event Event) {
	var ev tcell.Event
	switch event.Type {
	case EventKey:
		key, ok := toTcell[event.Key]
		if !ok {
			key = tcell.KeyNUL
		}
		ev = tcell.NewEventKey(key, event.Rune, tcell.ModNone)
	case EventInterrupt:
		ev = tcell.NewEventInterrupt(nil)
	default:
		return
	}
	_ = t.screen.PostEvent(ev)
}

func (t *Terminal) Beep() {
	t.locked(func(s tcell.Screen) { _ = s.Beep() })
}

func convertColor(c core.Color) tcell.Color {
	if c.IsDefault() {
		return tcell.ColorDefault
	}
	return tcell.PaletteColor(int(c))
}

func convertStyle(s core.Style) tcell.Style {
	attrs := map[core.Attribute]tcell.AttrMask{
		core.AttrBold:      tcell.AttrBold,
		core.AttrDim:       tcell.AttrDim,
		core.AttrUnderline: tcell.AttrUnderline,
		core.AttrReverse:   tcell.AttrReverse,
	}
	var mask tcell.AttrMask
	for a, ta := range attrs {
		if s.Attributes.Has(a) {
			mask |= ta
		}
	}
	return tcell.StyleDefault.
		Foreground(convertColor(s.Foreground)).
		Background(convertColor(s.Background)).
		Attributes(mask)
}

func convertMod(m tcell.ModMask) ModMask {
	var mod ModMask
	if m&tcell.ModShift != 0 {
		mod |= ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mod |= ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mod |= ModAlt
	}
	return mod
}
