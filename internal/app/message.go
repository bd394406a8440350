package app

import (
	"fmt"
	"time"

	"github.com/dshills/gale/internal/renderer/statusline"
)

// DefaultMessage is shown on the message line when nothing else is.
const DefaultMessage = "COMMANDS: Ctrl+S - save | Ctrl+O - open | Ctrl+A - command help | Ctrl+Q - quit"

// HelpLines are cycled through by Ctrl+A.
var HelpLines = []string{
	"Ctrl+G - goto line | Ctrl+W - word count | Ctrl+F - find",
	"Ctrl+Z - undo | Ctrl+R - run script | Esc - cancel prompt",
}

// messageLine holds a transient message that falls back to DefaultMessage
// once timeout has passed.
type messageLine struct {
	text    string
	kind    statusline.MessageType
	set     time.Time
	timeout time.Duration
}

func (m *messageLine) Set(text string, kind statusline.MessageType, now time.Time) {
	m.text = text
	m.kind = kind
	m.set = now
}

func (m *messageLine) Current(now time.Time) (string, statusline.MessageType) {
	if m.text == "" || !now.Before(m.set.Add(m.timeout)) {
		return DefaultMessage, statusline.MessageNone
	}
	return m.text, m.kind
}

// helpCycle steps through HelpLines, restarting at the first line when
// Ctrl+A has not been pressed for reset.
type helpCycle struct {
	next  int
	last  time.Time
	reset time.Duration
}

func (h *helpCycle) Next(now time.Time) string {
	if !h.last.IsZero() && !now.Before(h.last.Add(h.reset)) {
		h.next = 0
	}
	h.last = now

	i := h.next
	h.next = (h.next + 1) % len(HelpLines)
	return fmt.Sprintf("Command help %d/%d: %s", i+1, len(HelpLines), HelpLines[i])
}

// quitCounter requires need quit presses, each within window of the
// previous one.
type quitCounter struct {
	need   int
	count  int
	last   time.Time
	window time.Duration
}

// Press records a quit press. It reports whether the required count was
// reached and how many presses remain otherwise.
func (q *quitCounter) Press(now time.Time) (quit bool, remaining int) {
	if q.count > 0 && !now.Before(q.last.Add(q.window)) {
		q.count = 0
	}
	q.count++
	q.last = now

	if q.count >= q.need {
		q.count = 0
		return true, 0
	}
	return false, q.need - q.count
}
