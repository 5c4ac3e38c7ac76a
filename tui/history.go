// Package tui provides a Bubble Tea terminal UI for the simcore
// interpreter.
package tui

// History is a bounded command-history buffer with cursor-based
// navigation for the up/down keys.
type History struct {
	entries []string
	max     int
	cursor  int // -1 = not navigating, otherwise index into entries
}

// NewHistory creates a history buffer with the given maximum size.
func NewHistory(max int) *History {
	return &History{
		entries: make([]string, 0, max),
		max:     max,
		cursor:  -1,
	}
}

// Push adds an input line to history. Consecutive duplicates are
// skipped; the oldest entry is dropped once the buffer is full.
func (h *History) Push(line string) {
	if len(h.entries) > 0 && h.entries[len(h.entries)-1] == line {
		return
	}
	h.entries = append(h.entries, line)
	if len(h.entries) > h.max {
		h.entries = h.entries[1:]
	}
}

// Older moves the cursor toward older entries and returns the entry
// there. Returns ("", false) if history is empty.
func (h *History) Older() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	switch {
	case h.cursor == -1:
		h.cursor = len(h.entries) - 1
	case h.cursor > 0:
		h.cursor--
	}
	return h.entries[h.cursor], true
}

// Newer moves the cursor toward newer entries. Returns ("", false)
// when past the most recent entry (back to fresh input).
func (h *History) Newer() (string, bool) {
	if h.cursor == -1 {
		return "", false
	}
	h.cursor++
	if h.cursor >= len(h.entries) {
		h.cursor = -1
		return "", false
	}
	return h.entries[h.cursor], true
}

// ResetCursor leaves navigation mode.
func (h *History) ResetCursor() {
	h.cursor = -1
}
