package dialogue

import (
	"testing"

	"github.com/mlowen/simcore/types"
)

// harness wires a controller to recording callbacks.
type harness struct {
	ctrl       *Controller
	dispatched []string
	executed   []types.Command
	emitted    []string
	resolve    func(slot, input string) (types.Entity, bool)
}

func newHarness() *harness {
	h := &harness{ctrl: New()}
	h.ctrl.Dispatch = func(input string) { h.dispatched = append(h.dispatched, input) }
	h.ctrl.Exec = func(cmd types.Command) { h.executed = append(h.executed, cmd) }
	h.ctrl.Emit = func(line string) { h.emitted = append(h.emitted, line) }
	h.ctrl.Resolve = func(slot, input string) (types.Entity, bool) {
		if h.resolve != nil {
			return h.resolve(slot, input)
		}
		return types.Entity{}, false
	}
	return h
}

func TestHandleWithoutStateDispatches(t *testing.T) {
	h := newHarness()
	h.ctrl.Handle("look around")
	if len(h.dispatched) != 1 || h.dispatched[0] != "look around" {
		t.Errorf("dispatched = %v", h.dispatched)
	}
	if h.ctrl.Active() {
		t.Error("controller active with no state opened")
	}
}

func TestOpenEmitsPromptOnce(t *testing.T) {
	h := newHarness()
	h.ctrl.Open(State{Kind: Incomplete, Prompt: "Where do you want to go?", Action: "move", MissingSlot: "location"})
	if len(h.emitted) != 1 || h.emitted[0] != "Where do you want to go?" {
		t.Errorf("emitted = %v", h.emitted)
	}
	if h.ctrl.Pending() != Incomplete {
		t.Errorf("Pending() = %v, want Incomplete", h.ctrl.Pending())
	}
}

func TestOpenOverwrites(t *testing.T) {
	h := newHarness()
	h.ctrl.Open(State{Kind: Incomplete, Action: "move", MissingSlot: "location"})
	h.ctrl.Open(State{Kind: YesNo, Prompt: "Take the loan? (yes/no)"})
	if h.ctrl.Pending() != YesNo {
		t.Errorf("Pending() = %v, want YesNo (last write wins)", h.ctrl.Pending())
	}
}

func TestCancelWordsClearAnyState(t *testing.T) {
	for _, word := range []string{"cancel", "quit", "exit", "CANCEL"} {
		for _, kind := range []Kind{Incomplete, Confirmation, Clarification, YesNo} {
			h := newHarness()
			h.ctrl.Open(State{Kind: kind, Options: []string{"a"}})
			h.ctrl.Handle(word)
			if h.ctrl.Active() {
				t.Errorf("%q did not clear %v state", word, kind)
			}
			if len(h.emitted) == 0 || h.emitted[len(h.emitted)-1] != "Never mind, then." {
				t.Errorf("cancel notice missing for %q/%v: %v", word, kind, h.emitted)
			}
			if len(h.executed) != 0 {
				t.Errorf("cancel executed a command: %v", h.executed)
			}
		}
	}
}

func TestCancelWordsNotReservedWhenIdle(t *testing.T) {
	h := newHarness()
	h.ctrl.Handle("quit")
	if len(h.dispatched) != 1 || h.dispatched[0] != "quit" {
		t.Errorf("idle 'quit' should dispatch normally, got %v", h.dispatched)
	}
}

func TestIncompleteResolvesSlot(t *testing.T) {
	h := newHarness()
	h.resolve = func(slot, input string) (types.Entity, bool) {
		if slot == "location" && input == "the cafe" {
			return types.Entity{Kind: types.KindLocation, Key: "cafe"}, true
		}
		return types.Entity{}, false
	}

	h.ctrl.Open(State{
		Kind:        Incomplete,
		Action:      "move",
		MissingSlot: "location",
		Partial:     types.Command{Name: "move", Raw: "go to"},
	})
	h.ctrl.Handle("the cafe")

	if h.ctrl.Active() {
		t.Error("state still active after resolution")
	}
	if len(h.executed) != 1 {
		t.Fatalf("executed = %v", h.executed)
	}
	cmd := h.executed[0]
	if cmd.Name != "move" || cmd.Target != "cafe" || cmd.Raw != "go to" {
		t.Errorf("executed command = %+v", cmd)
	}
}

func TestIncompleteFallsBackToLiteral(t *testing.T) {
	h := newHarness()
	h.ctrl.Open(State{Kind: Incomplete, Action: "examine", MissingSlot: "target"})
	h.ctrl.Handle("The Sign")

	if len(h.executed) != 1 {
		t.Fatalf("executed = %v", h.executed)
	}
	if h.executed[0].Target != "the sign" {
		t.Errorf("Target = %q, want lowercase literal", h.executed[0].Target)
	}
}

func TestConfirmation(t *testing.T) {
	open := func(h *harness) {
		h.ctrl.Open(State{
			Kind:    Confirmation,
			Action:  "buy",
			Details: map[string]string{"target": "grocery_store", "amount": "18000"},
		})
	}

	t.Run("yes executes confirmed command", func(t *testing.T) {
		h := newHarness()
		open(h)
		h.ctrl.Handle("yes")
		if len(h.executed) != 1 {
			t.Fatalf("executed = %v", h.executed)
		}
		cmd := h.executed[0]
		if !cmd.Confirmed || cmd.Name != "buy" || cmd.Target != "grocery_store" || cmd.Amount != 18000 {
			t.Errorf("command = %+v", cmd)
		}
	})

	t.Run("y works", func(t *testing.T) {
		h := newHarness()
		open(h)
		h.ctrl.Handle("y")
		if len(h.executed) != 1 {
			t.Errorf("executed = %v", h.executed)
		}
	})

	t.Run("no cancels", func(t *testing.T) {
		h := newHarness()
		open(h)
		h.ctrl.Handle("no")
		if len(h.executed) != 0 || h.ctrl.Active() {
			t.Error("no should cancel without executing")
		}
		if h.emitted[len(h.emitted)-1] != "Cancelled." {
			t.Errorf("emitted = %v", h.emitted)
		}
	})

	t.Run("other input re-prompts", func(t *testing.T) {
		h := newHarness()
		open(h)
		h.ctrl.Handle("maybe")
		if !h.ctrl.Active() {
			t.Error("state dropped on invalid answer")
		}
		if h.emitted[len(h.emitted)-1] != "Please answer yes or no." {
			t.Errorf("emitted = %v", h.emitted)
		}
	})
}

func TestClarification(t *testing.T) {
	open := func(h *harness) {
		h.ctrl.Open(State{
			Kind:    Clarification,
			Action:  "talk",
			Options: []string{"Marta", "Old Hobbs"},
			Extra:   map[string]string{"topic": "rates"},
		})
	}

	t.Run("numeric selection", func(t *testing.T) {
		h := newHarness()
		open(h)
		h.ctrl.Handle("2")
		if len(h.executed) != 1 {
			t.Fatalf("executed = %v", h.executed)
		}
		cmd := h.executed[0]
		if cmd.Target != "Old Hobbs" || cmd.Topic != "rates" || cmd.Confirmed {
			t.Errorf("command = %+v", cmd)
		}
	})

	t.Run("name selection", func(t *testing.T) {
		h := newHarness()
		open(h)
		h.ctrl.Handle("marta")
		if len(h.executed) != 1 || h.executed[0].Target != "Marta" {
			t.Errorf("executed = %v", h.executed)
		}
	})

	t.Run("substring selection", func(t *testing.T) {
		h := newHarness()
		open(h)
		h.ctrl.Handle("hobbs")
		if len(h.executed) != 1 || h.executed[0].Target != "Old Hobbs" {
			t.Errorf("executed = %v", h.executed)
		}
	})

	t.Run("out of range index re-prompts", func(t *testing.T) {
		h := newHarness()
		open(h)
		h.ctrl.Handle("7")
		if !h.ctrl.Active() || len(h.executed) != 0 {
			t.Error("invalid index should re-prompt, not resolve")
		}
	})

	t.Run("unmatched name re-prompts", func(t *testing.T) {
		h := newHarness()
		open(h)
		h.ctrl.Handle("nobody")
		if !h.ctrl.Active() {
			t.Error("unmatched name should keep the state")
		}
	})
}

func TestYesNo(t *testing.T) {
	t.Run("yes runs OnConfirm", func(t *testing.T) {
		h := newHarness()
		confirmed := false
		h.ctrl.Open(State{Kind: YesNo, OnConfirm: func() { confirmed = true }})
		h.ctrl.Handle("yes")
		if !confirmed || h.ctrl.Active() {
			t.Error("OnConfirm not run or state not cleared")
		}
	})

	t.Run("no runs OnCancel", func(t *testing.T) {
		h := newHarness()
		cancelled := false
		h.ctrl.Open(State{Kind: YesNo, OnCancel: func() { cancelled = true }})
		h.ctrl.Handle("n")
		if !cancelled {
			t.Error("OnCancel not run")
		}
	})

	t.Run("no without OnCancel emits notice", func(t *testing.T) {
		h := newHarness()
		h.ctrl.Open(State{Kind: YesNo})
		h.ctrl.Handle("no")
		if h.emitted[len(h.emitted)-1] != "Cancelled." {
			t.Errorf("emitted = %v", h.emitted)
		}
	})

	t.Run("invalid answer re-prompts", func(t *testing.T) {
		h := newHarness()
		h.ctrl.Open(State{Kind: YesNo})
		h.ctrl.Handle("probably")
		if !h.ctrl.Active() {
			t.Error("state dropped on invalid answer")
		}
	})
}

// Resolving a state must clear it before executing, so a handler can
// open a follow-up interaction without it being wiped out.
func TestExecCanOpenFollowUpState(t *testing.T) {
	h := newHarness()
	h.ctrl.Exec = func(cmd types.Command) {
		h.executed = append(h.executed, cmd)
		h.ctrl.Open(State{Kind: Confirmation, Action: "buy"})
	}

	h.ctrl.Open(State{Kind: Incomplete, Action: "buy", MissingSlot: "business"})
	h.ctrl.Handle("the grocery")

	if h.ctrl.Pending() != Confirmation {
		t.Errorf("Pending() = %v, want Confirmation opened by Exec", h.ctrl.Pending())
	}
}
