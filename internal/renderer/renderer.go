package renderer

import (
	"fmt"
	"time"

	"github.com/dshills/gale/internal/engine/buffer"
	"github.com/dshills/gale/internal/renderer/backend"
	"github.com/dshills/gale/internal/renderer/core"
	"github.com/dshills/gale/internal/renderer/gutter"
	"github.com/dshills/gale/internal/renderer/statusline"
	"github.com/dshills/gale/internal/renderer/viewport"
)

// reservedBottomRows is the status bar plus the message line.
const reservedBottomRows = 2

// Source provides the buffer content and cursor to draw.
// *engine.Engine satisfies it.
type Source interface {
	LineCount() int
	Line(row int) (string, error)
	Cursor() buffer.Point
}

// Highlight marks a span of a line, measured in columns.
type Highlight struct {
	Row int
	Col int
	Len int
}

// Frame carries the per-frame state that does not live in the engine.
type Frame struct {
	Status      statusline.Info
	Message     string
	MessageType statusline.MessageType
	Prompt      *statusline.Prompt
	Highlights  []Highlight
}

// Theme holds the styles of each screen element.
type Theme struct {
	Text            core.Style
	Cursor          core.Style
	LineNumber      core.Style
	EmptyLineNumber core.Style
	StatusBar       core.Style
	Prompt          core.Style
	Match           core.Style
}

// DefaultTheme returns the stock colour pairs.
func DefaultTheme() Theme {
	return Theme{
		Text:            core.MustParseStyle("WHITE_BLACK"),
		Cursor:          core.MustParseStyle("BLACK_WHITE"),
		LineNumber:      core.MustParseStyle("BLACK_WHITE"),
		EmptyLineNumber: core.MustParseStyle("WHITE_BLACK"),
		StatusBar:       core.MustParseStyle("WHITE_BLUE"),
		Prompt:          core.MustParseStyle("WHITE_BLACK"),
		Match:           core.MustParseStyle("BLACK_YELLOW"),
	}
}

// Options configures the renderer.
type Options struct {
	Gutter          gutter.Config
	StatusBarLayout string
	Theme           Theme
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		Gutter:          gutter.DefaultConfig(),
		StatusBarLayout: statusline.DefaultLayout,
		Theme:           DefaultTheme(),
	}
}

// Renderer is the main rendering facade.
type Renderer struct {
	backend  backend.Backend
	viewport *viewport.Viewport
	status   *statusline.StatusLine
	theme    Theme

	frameCount uint64
	lastFrame  time.Duration
}

// New creates a renderer drawing to b.
func New(b backend.Backend, opts Options) (*Renderer, error) {
	layout, err := statusline.ParseLayout(opts.StatusBarLayout)
	if err != nil {
		return nil, fmt.Errorf("status bar layout: %w", err)
	}

	width, height := b.Size()
	return &Renderer{
		backend:  b,
		viewport: viewport.New(width, max(height-reservedBottomRows, 0), gutter.New(opts.Gutter)),
		status:   statusline.New(layout, opts.Theme.StatusBar, opts.Theme.Prompt),
		theme:    opts.Theme,
	}, nil
}

// SetOptions applies new options, for example after a config reload.
func (r *Renderer) SetOptions(opts Options) error {
	layout, err := statusline.ParseLayout(opts.StatusBarLayout)
	if err != nil {
		return fmt.Errorf("status bar layout: %w", err)
	}
	r.viewport.Gutter().SetConfig(opts.Gutter)
	r.status.SetLayout(layout)
	r.status.SetStyles(opts.Theme.StatusBar, opts.Theme.Prompt)
	r.theme = opts.Theme
	return nil
}

// Viewport returns the viewport used for the text area.
func (r *Renderer) Viewport() *viewport.Viewport {
	return r.viewport
}

// FrameCount returns the number of frames rendered.
func (r *Renderer) FrameCount() uint64 {
	return r.frameCount
}

// LastFrameDuration returns how long the last Render took.
func (r *Renderer) LastFrameDuration() time.Duration {
	return r.lastFrame
}

// Render draws a complete frame and flushes it to the backend.
func (r *Renderer) Render(src Source, f Frame) {
	start := time.Now()

	width, height := r.backend.Size()
	textHeight := max(height-reservedBottomRows, 0)
	lineCount := src.LineCount()
	cur := src.Cursor()

	r.viewport.Resize(width, textHeight)
	r.viewport.Update(cur, lineCount)

	r.backend.Clear()
	r.renderText(src, lineCount, textHeight, f.Highlights)

	if f.Prompt == nil {
		r.renderCursor(src, cur)
	} else {
		r.backend.HideCursor()
	}

	if height > textHeight {
		r.status.RenderBar(r.backend, textHeight, width, f.Status)
	}
	if height > textHeight+1 {
		r.status.RenderMessage(r.backend, textHeight+1, width, f.Message, f.MessageType, f.Prompt)
	}

	r.backend.Show()
	r.frameCount++
	r.lastFrame = time.Since(start)
}

func (r *Renderer) renderText(src Source, lineCount, textHeight int, highlights []Highlight) {
	g := r.viewport.Gutter()
	gutterWidth := g.Width()
	width := r.viewport.Width()
	hscroll := r.viewport.HScroll()

	byRow := make(map[int][]Highlight)
	for _, h := range highlights {
		byRow[h.Row] = append(byRow[h.Row], h)
	}

	for y := 0; y < textHeight; y++ {
		row := r.viewport.VScroll() + y

		text, kind := g.RenderLine(row)
		style := r.theme.LineNumber
		if kind == gutter.StyleEmptyLine {
			style = r.theme.EmptyLineNumber
		} else if kind == gutter.StyleCurrentLine {
			style = style.Bold()
		}
		backend.DrawString(r.backend, 0, y, gutterWidth, text, style)

		if row >= lineCount {
			continue
		}
		line, err := src.Line(row)
		if err != nil {
			continue
		}
		runes := []rune(line)
		for x := gutterWidth; x < width; x++ {
			col := hscroll + x - gutterWidth
			if col >= len(runes) {
				break
			}
			style := r.theme.Text
			if inHighlight(byRow[row], col) {
				style = r.theme.Match
			}
			r.backend.SetCell(x, y, core.NewStyledCell(runes[col], style))
		}
	}
}

func (r *Renderer) renderCursor(src Source, cur buffer.Point) {
	x, y, ok := r.viewport.BufferToScreen(cur)
	if !ok {
		r.backend.HideCursor()
		return
	}

	ch := ' '
	if line, err := src.Line(cur.Row); err == nil {
		if runes := []rune(line); cur.Col < len(runes) {
			ch = runes[cur.Col]
		}
	}
	r.backend.SetCell(x, y, core.NewStyledCell(ch, r.theme.Cursor))
	r.backend.ShowCursor(x, y)
}

func inHighlight(spans []Highlight, col int) bool {
	for _, h := range spans {
		if col >= h.Col && col < h.Col+h.Len {
			return true
		}
	}
	return false
}
