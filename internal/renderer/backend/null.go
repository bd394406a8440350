package backend

import (
	"strings"
	"sync"

	"github.com/dshills/gale/internal/renderer/core"
)

// NullBackend keeps the screen in memory. Tests read it back with Row and
// GetCell; events are fed with PostEvent or Resize.
type NullBackend struct {
	mu            sync.Mutex
	width, height int
	grid          []core.Cell // row-major
	cursor        struct {
		x, y    int
		visible bool
	}
	beeps  int
	events chan Event
}

// nullQueueSize bounds the event queue; PostEvent drops when it is full.
const nullQueueSize = 100

// NewNullBackend creates a blank width x height screen.
func NewNullBackend(width, height int) *NullBackend {
	b := &NullBackend{events: make(chan Event, nullQueueSize)}
	b.reset(width, height)
	return b
}

// reset reallocates a blank grid. The caller holds mu or owns b.
func (b *NullBackend) reset(width, height int) {
	b.width, b.height = width, height
	b.grid = make([]core.Cell, width*height)
	b.blank()
}

func (b *NullBackend) blank() {
	empty := core.EmptyCell()
	for i := range b.grid {
		b.grid[i] = empty
	}
}

// index returns the grid offset of (x, y), or -1 when off screen.
func (b *NullBackend) index(x, y int) int {
	if x < 0 || y < 0 || x >= b.width || y >= b.height {
		return -1
	}
	return y*b.width + x
}

func (b *NullBackend) Init() error { return nil }

func (b *NullBackend) Shutdown() {}

func (b *NullBackend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

func (b *NullBackend) SetCell(x, y int, cell core.Cell) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i := b.index(x, y); i >= 0 {
		b.grid[i] = cell
	}
}

// GetCell returns the cell at (x, y), or an empty cell off screen.
func (b *NullBackend) GetCell(x, y int) core.Cell {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i := b.index(x, y); i >= 0 {
		return b.grid[i]
	}
	return core.EmptyCell()
}

func (b *NullBackend) Fill(rect core.ScreenRect, cell core.Cell) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for y := max(rect.Top, 0); y < min(rect.Bottom, b.height); y++ {
		for x := max(rect.Left, 0); x < min(rect.Right, b.width); x++ {
			b.grid[y*b.width+x] = cell
		}
	}
}

func (b *NullBackend) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.blank()
}

func (b *NullBackend) Show() {}

func (b *NullBackend) ShowCursor(x, y int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursor.x, b.cursor.y, b.cursor.visible = x, y, true
}

func (b *NullBackend) HideCursor() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursor.visible = false
}

// CursorPosition returns where ShowCursor last put the cursor.
func (b *NullBackend) CursorPosition() (x, y int, visible bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursor.x, b.cursor.y, b.cursor.visible
}

// PollEvent blocks until an event is posted.
func (b *NullBackend) PollEvent() Event {
	return <-b.events
}

func (b *NullBackend) PostEvent(event Event) {
	select {
	case b.events <- event:
	default:
	}
}

func (b *NullBackend) Beep() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.beeps++
}

// Beeps returns how many times Beep was called.
func (b *NullBackend) Beeps() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.beeps
}

// Row returns the text of screen row y with trailing spaces trimmed.
func (b *NullBackend) Row(y int) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	if y < 0 || y >= b.height {
		return ""
	}
	row := b.grid[y*b.width : (y+1)*b.width]
	return strings.TrimRight(core.StringFromCells(row), " ")
}

// Resize changes the screen size, blanking it, and queues a resize event.
func (b *NullBackend) Resize(width, height int) {
	b.mu.Lock()
	b.reset(width, height)
	b.mu.Unlock()
	b.PostEvent(Event{Type: EventResize, Width: width, Height: height})
}
