// Package gutter provides the line number column left of the text area.
package gutter

// EmptyLineMarker is drawn in the gutter for screen rows past the end of
// the buffer.
const EmptyLineMarker = "~"

// MinLineNumberWidth is the default minimum gutter width.
const MinLineNumberWidth = 3

// Config holds gutter configuration.
type Config struct {
	// ShowLineNumbers enables line number display.
	ShowLineNumbers bool

	// MinLineNumberWidth is the minimum width of the number column.
	MinLineNumberWidth int

	// Mode selects absolute, relative or hybrid numbering.
	Mode LineNumberMode
}

// DefaultConfig returns the default gutter configuration.
func DefaultConfig() Config {
	return Config{
		ShowLineNumbers:    true,
		MinLineNumberWidth: MinLineNumberWidth,
		Mode:               LineNumberAbsolute,
	}
}

// CellStyle describes how to style a gutter cell.
type CellStyle uint8

const (
	StyleLineNumber CellStyle = iota
	StyleCurrentLine
	StyleEmptyLine
)

// Gutter renders line numbers for a buffer of a given size.
type Gutter struct {
	config    Config
	formatter *LineNumberFormatter
	lineCount int
	current   int
	width     int
}

// New creates a gutter for an empty buffer.
func New(config Config) *Gutter {
	g := &Gutter{
		config:    config,
		formatter: NewLineNumberFormatter(config.Mode, 0),
		lineCount: 1,
	}
	g.recalculate()
	return g
}

// Config returns the gutter configuration.
func (g *Gutter) Config() Config {
	return g.config
}

// SetConfig replaces the configuration and recomputes the width.
func (g *Gutter) SetConfig(config Config) {
	g.config = config
	g.formatter.SetMode(config.Mode)
	g.recalculate()
}

// Update records the buffer line count and cursor row for this frame.
func (g *Gutter) Update(lineCount, currentRow int) {
	g.lineCount = lineCount
	g.current = currentRow
	g.formatter.SetCurrentLine(currentRow)
	g.recalculate()
}

// Width returns the gutter width in columns, 0 when line numbers are off.
func (g *Gutter) Width() int {
	return g.width
}

// RenderLine returns the gutter text and style for a buffer row. Rows at or
// past the line count render the empty line marker.
func (g *Gutter) RenderLine(row int) (string, CellStyle) {
	if g.width == 0 {
		return "", StyleLineNumber
	}
	if row < 0 || row >= g.lineCount {
		return EmptyLineMarker, StyleEmptyLine
	}
	text := g.formatter.Format(row)
	if row == g.current {
		return text, StyleCurrentLine
	}
	return text, StyleLineNumber
}

func (g *Gutter) recalculate() {
	if !g.config.ShowLineNumbers {
		g.width = 0
	} else {
		g.width = CalculateWidth(g.lineCount, g.config.MinLineNumberWidth)
	}
	g.formatter.SetWidth(g.width)
}
