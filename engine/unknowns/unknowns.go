// Package unknowns keeps a bounded record of inputs the classifier
// could not recognize, for diagnostics and vocabulary tuning.
package unknowns

// Capacity is the maximum number of retained entries. Once full, the
// oldest entry is evicted first.
const Capacity = 50

// Log is an insertion-ordered list of raw input strings. Exact
// duplicates are never stored twice.
type Log struct {
	entries []string
	seen    map[string]bool
}

// NewLog creates an empty log.
func NewLog() *Log {
	return &Log{seen: map[string]bool{}}
}

// Add records a raw input. Duplicate exact strings and empty strings
// are ignored.
func (l *Log) Add(raw string) {
	if raw == "" || l.seen[raw] {
		return
	}
	l.entries = append(l.entries, raw)
	l.seen[raw] = true
	if len(l.entries) > Capacity {
		delete(l.seen, l.entries[0])
		l.entries = l.entries[1:]
	}
}

// Len returns the number of retained entries.
func (l *Log) Len() int {
	return len(l.entries)
}

// Snapshot returns a copy of the entries in insertion order.
func (l *Log) Snapshot() []string {
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

// Clear discards all entries.
func (l *Log) Clear() {
	l.entries = nil
	l.seen = map[string]bool{}
}

// Restore replaces the log contents, preserving order and dropping
// duplicates. Used when loading a saved session.
func (l *Log) Restore(entries []string) {
	l.Clear()
	for _, e := range entries {
		l.Add(e)
	}
}
