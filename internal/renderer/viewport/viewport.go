// Package viewport maps the visible window of a buffer onto a fixed-size
// display region.
//
// The viewport holds two scroll offsets: the first buffer row shown and the
// first buffer column shown. Before every frame the renderer calls Update
// with the cursor position, which moves the offsets the minimum amount needed
// to keep the cursor on screen. The left part of the region is reserved for
// the line number gutter, whose width follows the buffer's line count.
package viewport

import (
	"github.com/dshills/gale/internal/engine/buffer"
	"github.com/dshills/gale/internal/renderer/gutter"
)

// Viewport represents the visible portion of the buffer.
type Viewport struct {
	// First visible buffer row and column.
	vscroll int
	hscroll int

	// Region size in screen cells, gutter included.
	width  int
	height int

	gutter *gutter.Gutter
}

// New creates a viewport for a region of the given size.
// A nil gutter uses gutter.DefaultConfig.
func New(width, height int, g *gutter.Gutter) *Viewport {
	if g == nil {
		g = gutter.New(gutter.DefaultConfig())
	}
	return &Viewport{
		width:  max(width, 0),
		height: max(height, 0),
		gutter: g,
	}
}

// Width returns the region width including the gutter.
func (v *Viewport) Width() int {
	return v.width
}

// Height returns the region height.
func (v *Viewport) Height() int {
	return v.height
}

// Resize updates the region size. Offsets are corrected on the next Update.
func (v *Viewport) Resize(width, height int) {
	v.width = max(width, 0)
	v.height = max(height, 0)
}

// VScroll returns the first visible buffer row.
func (v *Viewport) VScroll() int {
	return v.vscroll
}

// HScroll returns the first visible buffer column.
func (v *Viewport) HScroll() int {
	return v.hscroll
}

// Gutter returns the line number gutter.
func (v *Viewport) Gutter() *gutter.Gutter {
	return v.gutter
}

// GutterWidth returns the columns reserved left of the text.
func (v *Viewport) GutterWidth() int {
	return v.gutter.Width()
}

// TextWidth returns the columns available for text.
func (v *Viewport) TextWidth() int {
	return max(v.width-v.gutter.Width(), 0)
}

// Update resizes the gutter for lineCount and recomputes the offsets so the
// cursor is visible in the current region.
func (v *Viewport) Update(cursor buffer.Point, lineCount int) {
	v.gutter.Update(lineCount, cursor.Row)
	v.Recompute(cursor, lineCount, v.height, v.width, v.gutter.Width())
}

// Recompute moves the scroll offsets the minimum needed to place cursor
// inside a height x width region whose first reservedLeft columns are
// unavailable for text. Regions with no text area leave the offsets alone.
// lineCount does not bound the offsets.
func (v *Viewport) Recompute(cursor buffer.Point, lineCount, height, width, reservedLeft int) {
	if height >= 1 {
		if cursor.Row > v.vscroll+height-1 {
			v.vscroll = cursor.Row - height + 1
		} else if cursor.Row < v.vscroll {
			v.vscroll = cursor.Row
		}
	}

	textWidth := width - reservedLeft
	if textWidth >= 1 {
		if cursor.Col > v.hscroll+textWidth-1 {
			v.hscroll = cursor.Col - textWidth + 1
		} else if cursor.Col < v.hscroll {
			v.hscroll = cursor.Col
		}
	}

	v.vscroll = max(v.vscroll, 0)
	v.hscroll = max(v.hscroll, 0)
}

// VisibleRows returns the buffer rows drawn for a buffer of lineCount
// lines, as a half-open range [first, last).
func (v *Viewport) VisibleRows(lineCount int) (first, last int) {
	first = min(v.vscroll, lineCount)
	last = min(v.vscroll+v.height, lineCount)
	return first, last
}

// BufferToScreen converts a buffer position to region coordinates.
// ok is false when the position is scrolled out of view.
func (v *Viewport) BufferToScreen(p buffer.Point) (x, y int, ok bool) {
	y = p.Row - v.vscroll
	x = p.Col - v.hscroll
	if y < 0 || y >= v.height || x < 0 || x >= v.TextWidth() {
		return 0, 0, false
	}
	return x + v.gutter.Width(), y, true
}
