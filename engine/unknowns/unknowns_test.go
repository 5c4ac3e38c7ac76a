package unknowns

import (
	"fmt"
	"testing"
)

func TestAddAndSnapshot(t *testing.T) {
	l := NewLog()
	l.Add("juggle the oranges")
	l.Add("feed the pigeons")

	got := l.Snapshot()
	if len(got) != 2 || got[0] != "juggle the oranges" || got[1] != "feed the pigeons" {
		t.Errorf("Snapshot() = %v", got)
	}
}

func TestAddIgnoresDuplicates(t *testing.T) {
	l := NewLog()
	l.Add("juggle the oranges")
	l.Add("juggle the oranges")
	l.Add("juggle the oranges")

	if l.Len() != 1 {
		t.Errorf("Len() = %d after duplicate adds, want 1", l.Len())
	}
}

func TestAddIgnoresEmpty(t *testing.T) {
	l := NewLog()
	l.Add("")
	if l.Len() != 0 {
		t.Errorf("Len() = %d after adding empty string, want 0", l.Len())
	}
}

func TestCapacityEvictsOldest(t *testing.T) {
	l := NewLog()
	for i := 0; i < Capacity+5; i++ {
		l.Add(fmt.Sprintf("mystery input %d", i))
	}

	if l.Len() != Capacity {
		t.Fatalf("Len() = %d, want %d", l.Len(), Capacity)
	}

	got := l.Snapshot()
	if got[0] != "mystery input 5" {
		t.Errorf("oldest retained entry = %q, want %q", got[0], "mystery input 5")
	}
	if got[len(got)-1] != fmt.Sprintf("mystery input %d", Capacity+4) {
		t.Errorf("newest entry = %q", got[len(got)-1])
	}
}

func TestEvictedEntryCanReturn(t *testing.T) {
	l := NewLog()
	l.Add("first")
	for i := 0; i < Capacity; i++ {
		l.Add(fmt.Sprintf("filler %d", i))
	}
	// "first" has been evicted; adding it again should store it.
	l.Add("first")

	got := l.Snapshot()
	if got[len(got)-1] != "first" {
		t.Errorf("re-added entry not stored, last = %q", got[len(got)-1])
	}
}

func TestClear(t *testing.T) {
	l := NewLog()
	l.Add("something")
	l.Clear()
	if l.Len() != 0 {
		t.Errorf("Len() = %d after Clear, want 0", l.Len())
	}
	// Cleared entries can be re-added.
	l.Add("something")
	if l.Len() != 1 {
		t.Errorf("Len() = %d after re-add, want 1", l.Len())
	}
}

func TestRestore(t *testing.T) {
	l := NewLog()
	l.Add("stale")
	l.Restore([]string{"a", "b", "a", ""})

	got := l.Snapshot()
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("Restore result = %v, want [a b]", got)
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	l := NewLog()
	l.Add("original")
	snap := l.Snapshot()
	snap[0] = "mutated"
	if l.Snapshot()[0] != "original" {
		t.Error("Snapshot() shares backing storage with the log")
	}
}
