package tui

import (
	"strings"
	"testing"

	"github.com/mlowen/simcore/sim"
	"github.com/mlowen/simcore/types"
)

func TestClassifyLine(t *testing.T) {
	tests := []struct {
		line string
		want lineKind
	}{
		{"You see: Marta, Old Hobbs", kindYouSee},
		{"Exits: east, north", kindExits},
		{"[Game saved to test.]", kindSystem},
		{"[trace] intent=move confidence=0.81", kindTrace},
		{"You can't go west from here.", kindError},
		{"You don't have a job. Try applying somewhere that's hiring.", kindError},
		{"You're not sure how to \"juggle the oranges\".", kindError},
		{"Where do you want to go?", kindPrompt},
		{"Buy Sudsy's for $100? (yes/no)", kindPrompt},
		{"The main street of town.", kindNarrative},
		{"", kindNarrative},
		{"Marta says: 'Best in town.'", kindSpeech},
	}
	for _, tt := range tests {
		got := classifyLine(tt.line)
		if got != tt.want {
			t.Errorf("classifyLine(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestContainsQuotedSpeech(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"Marta says: 'What can I get you today?'", true},
		{"It's a door.", false},    // short quote segment
		{"No quotes here.", false}, // no quotes at all
		{"'Hi'", false},            // too short
		{"He mutters 'the rates here are criminal, you know.'", true},
	}
	for _, tt := range tests {
		got := containsQuotedSpeech(tt.line)
		if got != tt.want {
			t.Errorf("containsQuotedSpeech(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestWordWrap(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"short", 80, "short"},
		{"hello world", 5, "hello\nworld"},
		{"Shopfronts line both sides of the quiet main street.", 30,
			"Shopfronts line both sides of\nthe quiet main street."},
		{"", 80, ""},
		{"one", 80, "one"},
		{"a b c d e", 3, "a b\nc d\ne"},
	}
	for _, tt := range tests {
		got := wordWrap(tt.text, tt.width)
		if got != tt.want {
			t.Errorf("wordWrap(%q, %d) =\n  %q\nwant:\n  %q", tt.text, tt.width, got, tt.want)
		}
	}
}

func TestHistory_PushAndOlder(t *testing.T) {
	h := NewHistory(5)
	h.Push("look")
	h.Push("go north")
	h.Push("work")

	older, ok := h.Older()
	if !ok || older != "work" {
		t.Errorf("expected 'work', got %q (ok=%v)", older, ok)
	}

	older, ok = h.Older()
	if !ok || older != "go north" {
		t.Errorf("expected 'go north', got %q (ok=%v)", older, ok)
	}

	older, ok = h.Older()
	if !ok || older != "look" {
		t.Errorf("expected 'look', got %q (ok=%v)", older, ok)
	}

	// At oldest, stays there.
	older, ok = h.Older()
	if !ok || older != "look" {
		t.Errorf("expected 'look' at boundary, got %q (ok=%v)", older, ok)
	}
}

func TestHistory_Newer(t *testing.T) {
	h := NewHistory(5)
	h.Push("look")
	h.Push("go north")

	h.Older() // "go north"
	h.Older() // "look"

	newer, ok := h.Newer()
	if !ok || newer != "go north" {
		t.Errorf("expected 'go north', got %q (ok=%v)", newer, ok)
	}

	_, ok = h.Newer()
	if ok {
		t.Error("expected false when past newest entry")
	}
}

func TestHistory_Empty(t *testing.T) {
	h := NewHistory(5)
	if _, ok := h.Older(); ok {
		t.Error("expected false on empty history")
	}
	if _, ok := h.Newer(); ok {
		t.Error("expected false on empty history")
	}
}

func TestHistory_MaxSize(t *testing.T) {
	h := NewHistory(2)
	h.Push("a")
	h.Push("b")
	h.Push("c") // "a" evicted

	older, _ := h.Older()
	if older != "c" {
		t.Errorf("expected 'c', got %q", older)
	}
	older, _ = h.Older()
	if older != "b" {
		t.Errorf("expected 'b', got %q", older)
	}
	// "a" is gone.
	older, _ = h.Older()
	if older != "b" {
		t.Errorf("expected 'b' at boundary, got %q", older)
	}
}

func TestHistory_NoConsecutiveDuplicates(t *testing.T) {
	h := NewHistory(5)
	h.Push("look")
	h.Push("look") // skipped
	h.Push("look") // skipped

	if len(h.entries) != 1 {
		t.Errorf("expected 1 entry, got %d", len(h.entries))
	}
}

func TestHistory_ResetCursor(t *testing.T) {
	h := NewHistory(5)
	h.Push("look")
	h.Push("go north")

	h.Older() // "go north"
	h.ResetCursor()

	// After reset, Older starts from the end again.
	older, ok := h.Older()
	if !ok || older != "go north" {
		t.Errorf("expected 'go north' after reset, got %q", older)
	}
}

// testGame builds a minimal game for meta-command testing.
func testGame(t *testing.T) *sim.Game {
	t.Helper()
	defs := &sim.Defs{
		Game: types.GameDef{
			Title:   "Test Town",
			Author:  "Test",
			Version: "1.0",
			Start:   "street",
			Intro:   "Welcome to the test.",
		},
		Places: map[string]types.PlaceDef{
			"street": {
				ID: "street", Name: "Main Street",
				Description: "The main drag.",
			},
		},
	}
	g, errs := sim.New(defs)
	if len(errs) > 0 {
		t.Fatalf("sim.New() errors: %v", errs)
	}
	return g
}

func TestHandleMeta_Quit(t *testing.T) {
	m := New(testGame(t))

	_, quit := m.handleMeta("/quit")
	if !quit {
		t.Error("expected quit=true for /quit")
	}

	_, quit = m.handleMeta("/exit")
	if !quit {
		t.Error("expected quit=true for /exit")
	}
}

func TestHandleMeta_Save(t *testing.T) {
	m := New(testGame(t))
	m.saveDir = t.TempDir()

	output, quit := m.handleMeta("/save test")
	if quit {
		t.Error("save should not quit")
	}
	if len(output) == 0 || !strings.Contains(output[0], "Game saved") {
		t.Errorf("expected save confirmation, got %v", output)
	}
}

func TestHandleMeta_LoadNonexistent(t *testing.T) {
	m := New(testGame(t))
	m.saveDir = t.TempDir()

	output, quit := m.handleMeta("/load nonexistent")
	if quit {
		t.Error("load should not quit")
	}
	if len(output) == 0 || !strings.Contains(output[0], "Load failed") {
		t.Errorf("expected load failure, got %v", output)
	}
}

func TestHandleMeta_Help(t *testing.T) {
	m := New(testGame(t))

	output, quit := m.handleMeta("/help")
	if quit {
		t.Error("help should not quit")
	}

	joined := strings.Join(output, "\n")
	for _, expected := range []string{"/save", "/load", "/quit", "work", "borrow"} {
		if !strings.Contains(joined, expected) {
			t.Errorf("expected %q in help output", expected)
		}
	}
}

func TestHandleMeta_Trace(t *testing.T) {
	m := New(testGame(t))

	output, _ := m.handleMeta("/trace")
	if !m.trace {
		t.Error("expected trace to be enabled")
	}
	if len(output) == 0 || !strings.Contains(output[0], "enabled") {
		t.Errorf("expected enabled message, got %v", output)
	}

	output, _ = m.handleMeta("/trace")
	if m.trace {
		t.Error("expected trace to be disabled")
	}
	if len(output) == 0 || !strings.Contains(output[0], "disabled") {
		t.Errorf("expected disabled message, got %v", output)
	}
}

func TestHandleMeta_Unknown(t *testing.T) {
	m := New(testGame(t))

	output, quit := m.handleMeta("/bogus")
	if quit {
		t.Error("unknown command should not quit")
	}
	if len(output) == 0 || !strings.Contains(output[0], "Unknown command") {
		t.Errorf("expected unknown command message, got %v", output)
	}
}

func TestHandleMeta_State(t *testing.T) {
	m := New(testGame(t))

	output, quit := m.handleMeta("/state")
	if quit {
		t.Error("state should not quit")
	}

	joined := strings.Join(output, "\n")
	if !strings.Contains(joined, "Location: street") {
		t.Error("expected location in state output")
	}
	if !strings.Contains(joined, "Day 1") {
		t.Error("expected day in state output")
	}
}

func TestHandleMeta_Unknowns(t *testing.T) {
	g := testGame(t)
	g.Handle("juggle the oranges")
	m := New(g)

	output, _ := m.handleMeta("/unknowns")
	joined := strings.Join(output, "\n")
	if !strings.Contains(joined, "juggle the oranges") {
		t.Errorf("expected recorded input, got %v", output)
	}

	m.handleMeta("/unknowns clear")
	output, _ = m.handleMeta("/unknowns")
	if len(output) == 0 || !strings.Contains(output[0], "No unrecognized inputs") {
		t.Errorf("expected empty-log message, got %v", output)
	}
}
