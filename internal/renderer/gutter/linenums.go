package gutter

import (
	"fmt"
	"strconv"
	"strings"
)

// LineNumberMode defines how line numbers are displayed.
type LineNumberMode uint8

const (
	// LineNumberAbsolute shows absolute line numbers (1, 2, 3, ...).
	LineNumberAbsolute LineNumberMode = iota

	// LineNumberRelative shows relative line numbers from cursor.
	LineNumberRelative

	// LineNumberHybrid shows absolute for current line, relative for others.
	LineNumberHybrid
)

// ParseLineNumberMode parses "absolute", "relative" or "hybrid".
func ParseLineNumberMode(s string) (LineNumberMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "absolute":
		return LineNumberAbsolute, nil
	case "relative":
		return LineNumberRelative, nil
	case "hybrid":
		return LineNumberHybrid, nil
	default:
		return LineNumberAbsolute, fmt.Errorf("unknown line number mode %q", s)
	}
}

// String returns the mode name.
func (m LineNumberMode) String() string {
	switch m {
	case LineNumberRelative:
		return "relative"
	case LineNumberHybrid:
		return "hybrid"
	default:
		return "absolute"
	}
}

// LineNumberFormatter formats line numbers according to configuration.
type LineNumberFormatter struct {
	mode        LineNumberMode
	width       int
	currentLine int
}

// NewLineNumberFormatter creates a new line number formatter.
func NewLineNumberFormatter(mode LineNumberMode, width int) *LineNumberFormatter {
	return &LineNumberFormatter{
		mode:  mode,
		width: width,
	}
}

// SetMode changes the line number mode.
func (f *LineNumberFormatter) SetMode(mode LineNumberMode) {
	f.mode = mode
}

// SetWidth sets the display width for line numbers.
func (f *LineNumberFormatter) SetWidth(width int) {
	f.width = width
}

// SetCurrentLine sets the cursor row for relative numbering.
func (f *LineNumberFormatter) SetCurrentLine(row int) {
	f.currentLine = row
}

// Format returns the right-aligned number for a 0-indexed row.
func (f *LineNumberFormatter) Format(row int) string {
	return PadLeft(strconv.Itoa(f.number(row)), f.width)
}

func (f *LineNumberFormatter) number(row int) int {
	switch f.mode {
	case LineNumberRelative:
		return absDiff(row, f.currentLine)
	case LineNumberHybrid:
		if row == f.currentLine {
			return row + 1
		}
		return absDiff(row, f.currentLine)
	default:
		return row + 1
	}
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

// PadLeft pads a string with spaces on the left to the specified width.
func PadLeft(s string, width int) string {
	if n := width - len(s); n > 0 {
		return strings.Repeat(" ", n) + s
	}
	return s
}

// CalculateWidth returns the columns needed to show line numbers for
// lineCount lines, never less than minWidth.
func CalculateWidth(lineCount, minWidth int) int {
	return max(countDigits(lineCount), minWidth)
}

func countDigits(n int) int {
	if n <= 0 {
		return 1
	}
	digits := 0
	for n > 0 {
		digits++
		n /= 10
	}
	return digits
}

// FormatPosition formats a 0-indexed position as 1-indexed "row,col".
func FormatPosition(row, col int) string {
	return strconv.Itoa(row+1) + "," + strconv.Itoa(col+1)
}
