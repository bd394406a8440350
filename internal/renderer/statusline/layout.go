package statusline

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dshills/gale/internal/renderer/gutter"
)

// DefaultLayout is the status bar layout used when none is configured.
const DefaultLayout = `filename-lines\modified/time-cursor`

// ErrUnknownElement is returned for layout elements that are not recognized.
var ErrUnknownElement = errors.New("unknown status bar element")

// Element names usable in a layout.
const (
	ElementFilename = "filename"
	ElementLines    = "lines"
	ElementModified = "modified"
	ElementTime     = "time"
	ElementCursor   = "cursor"
)

// Info is the editor state shown in the status bar.
type Info struct {
	Filename string
	Lines    int
	Modified bool
	Row, Col int
	Now      time.Time
}

type segment struct {
	name string
	join string // text placed before this element when it follows another
}

// Layout is a parsed status bar description.
//
// Elements are separated by "-" (joined with " - "), "\" (joined with a
// space) or "/" (everything after goes to the right-hand side).
type Layout struct {
	left  []segment
	right []segment
}

// ParseLayout parses a layout such as DefaultLayout.
func ParseLayout(format string) (Layout, error) {
	var l Layout
	side := &l.left
	join := ""
	var name strings.Builder

	flush := func() error {
		n := strings.TrimSpace(name.String())
		name.Reset()
		if n == "" {
			return nil
		}
		switch n {
		case ElementFilename, ElementLines, ElementModified, ElementTime, ElementCursor:
		default:
			return fmt.Errorf("%w: %q", ErrUnknownElement, n)
		}
		*side = append(*side, segment{name: n, join: join})
		return nil
	}

	for _, r := range format {
		switch r {
		case '-', '\\':
			if err := flush(); err != nil {
				return Layout{}, err
			}
			join = " - "
			if r == '\\' {
				join = " "
			}
		case '/':
			if err := flush(); err != nil {
				return Layout{}, err
			}
			side = &l.right
			join = ""
		default:
			name.WriteRune(r)
		}
	}
	if err := flush(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// Assemble builds the status bar text padded or clipped to width.
// The right-hand side keeps one column of padding from the edge.
func (l Layout) Assemble(info Info, width int) string {
	left := assembleSide(l.left, info)
	right := assembleSide(l.right, info)
	if right != "" {
		right += " "
	}

	gap := width - len([]rune(left)) - len([]rune(right))
	if gap < 1 {
		gap = 1
	}
	line := []rune(left + strings.Repeat(" ", gap) + right)
	if len(line) > width {
		line = line[:max(width, 0)]
	}
	return string(line)
}

func assembleSide(segs []segment, info Info) string {
	var sb strings.Builder
	for _, seg := range segs {
		text := elementText(seg.name, info)
		if text == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(seg.join)
		}
		sb.WriteString(text)
	}
	return sb.String()
}

func elementText(name string, info Info) string {
	switch name {
	case ElementFilename:
		if info.Filename == "" {
			return "[No filename]"
		}
		return info.Filename
	case ElementLines:
		if info.Lines == 1 {
			return "1 line"
		}
		return fmt.Sprintf("%d lines", info.Lines)
	case ElementModified:
		if info.Modified {
			return "(modified)"
		}
		return ""
	case ElementTime:
		return info.Now.Format("15:04")
	case ElementCursor:
		return gutter.FormatPosition(info.Row, info.Col)
	}
	return ""
}
