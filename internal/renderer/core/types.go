// Package core provides shared types for the renderer subsystem.
// This package breaks import cycles between renderer and backend.
package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnknownColor is returned when a colour name is not in the palette.
	ErrUnknownColor = errors.New("unknown color")
	// ErrInvalidColorPair is returned for a pair without the FG_BG separator.
	ErrInvalidColorPair = errors.New("invalid color pair")
)

// Attribute represents text attributes (bold, reverse, etc.).
type Attribute uint8

// Text attribute flags.
const (
	AttrNone      Attribute = 0
	AttrBold      Attribute = 1 << iota
	AttrDim                 // Faint/dim text
	AttrUnderline           // Underlined text
	AttrReverse             // Reverse video (swap fg/bg)
)

// Has returns true if the attribute set contains the given attribute.
func (a Attribute) Has(attr Attribute) bool {
	return a&attr != 0
}

// With returns a new attribute set with the given attribute added.
func (a Attribute) With(attr Attribute) Attribute {
	return a | attr
}

// Color is a terminal palette colour. The eight basic ANSI colours map to
// palette indexes 0-7; ColorDefault is the terminal's own colour.
type Color int16

// Palette colours.
const (
	ColorDefault Color = -1
	ColorBlack   Color = 0
	ColorRed     Color = 1
	ColorGreen   Color = 2
	ColorYellow  Color = 3
	ColorBlue    Color = 4
	ColorMagenta Color = 5
	ColorCyan    Color = 6
	ColorWhite   Color = 7
)

var colorNames = map[string]Color{
	"DEFAULT": ColorDefault,
	"BLACK":   ColorBlack,
	"RED":     ColorRed,
	"GREEN":   ColorGreen,
	"YELLOW":  ColorYellow,
	"BLUE":    ColorBlue,
	"MAGENTA": ColorMagenta,
	"CYAN":    ColorCyan,
	"WHITE":   ColorWhite,
}

// ParseColor looks up a colour by name, case-insensitively.
func ParseColor(name string) (Color, error) {
	c, ok := colorNames[strings.ToUpper(strings.TrimSpace(name))]
	if !ok {
		return ColorDefault, fmt.Errorf("%w: %q", ErrUnknownColor, name)
	}
	return c, nil
}

// IsDefault returns true if this is the terminal's default colour.
func (c Color) IsDefault() bool {
	return c == ColorDefault
}

// String returns the palette name of the colour.
func (c Color) String() string {
	for name, v := range colorNames {
		if v == c {
			return name
		}
	}
	return fmt.Sprintf("Color(%d)", int(c))
}

// Style represents the visual style of text.
type Style struct {
	Foreground Color
	Background Color
	Attributes Attribute
}

// DefaultStyle returns the default terminal style.
func DefaultStyle() Style {
	return Style{
		Foreground: ColorDefault,
		Background: ColorDefault,
	}
}

// ParseStyle parses a colour pair written as "FG_BG", for example
// "WHITE_BLUE".
func ParseStyle(pair string) (Style, error) {
	fgName, bgName, ok := strings.Cut(pair, "_")
	if !ok {
		return DefaultStyle(), fmt.Errorf("%w: %q, want FG_BG", ErrInvalidColorPair, pair)
	}
	fg, err := ParseColor(fgName)
	if err != nil {
		return DefaultStyle(), fmt.Errorf("color pair %q: %w", pair, err)
	}
	bg, err := ParseColor(bgName)
	if err != nil {
		return DefaultStyle(), fmt.Errorf("color pair %q: %w", pair, err)
	}
	return Style{Foreground: fg, Background: bg}, nil
}

// MustParseStyle is ParseStyle for known-good literals. It panics on error.
func MustParseStyle(pair string) Style {
	s, err := ParseStyle(pair)
	if err != nil {
		panic(err)
	}
	return s
}

// Bold returns a new style with bold added.
func (s Style) Bold() Style {
	s.Attributes = s.Attributes.With(AttrBold)
	return s
}

// Reverse returns a new style with reverse video added.
func (s Style) Reverse() Style {
	s.Attributes = s.Attributes.With(AttrReverse)
	return s
}

// String returns the style as an "FG_BG" pair.
func (s Style) String() string {
	return s.Foreground.String() + "_" + s.Background.String()
}

// Cell represents a single terminal cell.
type Cell struct {
	Rune  rune
	Style Style
}

// EmptyCell returns a blank cell with default style.
func EmptyCell() Cell {
	return Cell{Rune: ' ', Style: DefaultStyle()}
}

// NewStyledCell creates a cell with the given rune and style.
func NewStyledCell(r rune, style Style) Cell {
	return Cell{Rune: r, Style: style}
}

// CellsFromString converts a string to cells with the given style.
func CellsFromString(s string, style Style) []Cell {
	cells := make([]Cell, 0, len(s))
	for _, r := range s {
		cells = append(cells, Cell{Rune: r, Style: style})
	}
	return cells
}

// StringFromCells extracts the runes of cells as a string.
func StringFromCells(cells []Cell) string {
	var sb strings.Builder
	for _, c := range cells {
		if c.Rune == 0 {
			sb.WriteRune(' ')
			continue
		}
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}

// ScreenRect represents a rectangular region on screen.
type ScreenRect struct {
	Top    int // First row (inclusive)
	Left   int // First column (inclusive)
	Bottom int // Last row (exclusive)
	Right  int // Last column (exclusive)
}

// RectFromSize creates a rectangle from position and size.
func RectFromSize(top, left, height, width int) ScreenRect {
	return ScreenRect{Top: top, Left: left, Bottom: top + height, Right: left + width}
}

// Width returns the width of the rectangle.
func (r ScreenRect) Width() int {
	if r.Right <= r.Left {
		return 0
	}
	return r.Right - r.Left
}

// Height returns the height of the rectangle.
func (r ScreenRect) Height() int {
	if r.Bottom <= r.Top {
		return 0
	}
	return r.Bottom - r.Top
}

// IsEmpty returns true if the rectangle has no area.
func (r ScreenRect) IsEmpty() bool {
	return r.Width() == 0 || r.Height() == 0
}

// Contains returns true if (x, y) is inside the rectangle.
func (r ScreenRect) Contains(x, y int) bool {
	return x >= r.Left && x < r.Right && y >= r.Top && y < r.Bottom
}
