// Package dialogue implements the single-slot pending-interaction
// state machine. While a state is active it intercepts every input
// line until the interaction resolves, is cancelled, or re-prompts.
package dialogue

import (
	"strconv"
	"strings"

	"github.com/mlowen/simcore/engine/normalize"
	"github.com/mlowen/simcore/types"
)

// Kind discriminates the pending-interaction variants.
type Kind int

const (
	None Kind = iota
	Incomplete
	Confirmation
	Clarification
	YesNo
)

// State is one pending interaction. Only the fields of its Kind are
// meaningful:
//
//	Incomplete    — Action, MissingSlot, Partial
//	Confirmation  — Action, Details
//	Clarification — Action, Options, Extra
//	YesNo         — OnConfirm, OnCancel, Extra
//
// Prompt, if set, is shown once when the state is entered.
type State struct {
	Kind        Kind
	Prompt      string
	Action      string
	MissingSlot string
	Partial     types.Command
	Details     map[string]string
	Options     []string
	Extra       map[string]string
	OnConfirm   func()
	OnCancel    func()
}

// Controller routes raw input either straight through the normal
// command pipeline or into the active pending interaction. At most one
// state is active; opening another overwrites it (last write wins).
type Controller struct {
	state *State

	// Dispatch runs the normal classify→normalize→execute pipeline.
	Dispatch func(input string)
	// Exec hands a resolved command to the simulation.
	Exec func(cmd types.Command)
	// Emit surfaces a prompt or notice to the player.
	Emit func(line string)
	// Resolve extracts a single slot value from a bare response line.
	Resolve func(slot, input string) (types.Entity, bool)
}

// New creates a controller with no pending state. Callers must set the
// callback fields before use.
func New() *Controller {
	return &Controller{}
}

// Active reports whether a pending interaction exists.
func (c *Controller) Active() bool {
	return c.state != nil
}

// Pending returns the kind of the active state, or None.
func (c *Controller) Pending() Kind {
	if c.state == nil {
		return None
	}
	return c.state.Kind
}

// Open makes st the active pending interaction, overwriting any
// previous one, and shows its prompt once.
func (c *Controller) Open(st State) {
	c.state = &st
	if st.Prompt != "" {
		c.Emit(st.Prompt)
	}
}

// Clear drops the pending interaction, if any.
func (c *Controller) Clear() {
	c.state = nil
}

// Handle consumes one input line. With no pending state the line goes
// to Dispatch; otherwise it is resolved against the pending state.
// Invalid responses never abandon the state — they re-prompt — except
// the reserved cancellation keywords, which always clear it.
func (c *Controller) Handle(input string) {
	input = strings.TrimSpace(input)

	if c.state == nil {
		c.Dispatch(input)
		return
	}

	lower := strings.ToLower(input)
	if lower == "cancel" || lower == "quit" || lower == "exit" {
		c.Clear()
		c.Emit("Never mind, then.")
		return
	}

	st := *c.state
	switch st.Kind {
	case Incomplete:
		c.resolveIncomplete(st, input)
	case Confirmation:
		c.resolveConfirmation(st, lower)
	case Clarification:
		c.resolveClarification(st, lower)
	case YesNo:
		c.resolveYesNo(st, lower)
	default:
		// Should not occur. Recover rather than wedge the session.
		c.Clear()
		c.Emit("Something went wrong with that exchange; starting over.")
	}
}

// resolveIncomplete treats the response as the value of the missing
// slot: extracted if possible, taken literally otherwise, merged into
// the partial command, and dispatched.
func (c *Controller) resolveIncomplete(st State, input string) {
	ent, ok := types.Entity{}, false
	if c.Resolve != nil {
		ent, ok = c.Resolve(st.MissingSlot, input)
	}
	if !ok {
		ent = types.Entity{Kind: types.KindTarget, Text: strings.ToLower(input)}
	}

	cmd := st.Partial
	if cmd.Name == "" {
		cmd.Name = st.Action
	}
	normalize.Assign(&cmd, st.MissingSlot, ent)

	c.Clear()
	c.Exec(cmd)
}

func (c *Controller) resolveConfirmation(st State, lower string) {
	switch lower {
	case "yes", "y":
		c.Clear()
		c.Exec(commandFromDetails(st.Action, st.Details))
	case "no", "n":
		c.Clear()
		c.Emit("Cancelled.")
	default:
		c.Emit("Please answer yes or no.")
	}
}

func (c *Controller) resolveClarification(st State, lower string) {
	chosen, ok := pickOption(st.Options, lower)
	if !ok {
		c.Emit("Invalid selection. Pick a number or a name from the list.")
		return
	}

	cmd := commandFromDetails(st.Action, st.Extra)
	cmd.Confirmed = false
	cmd.Target = chosen

	c.Clear()
	c.Exec(cmd)
}

func (c *Controller) resolveYesNo(st State, lower string) {
	switch lower {
	case "yes", "y":
		c.Clear()
		if st.OnConfirm != nil {
			st.OnConfirm()
		}
	case "no", "n":
		c.Clear()
		if st.OnCancel != nil {
			st.OnCancel()
		} else {
			c.Emit("Cancelled.")
		}
	default:
		c.Emit("Please answer yes or no.")
	}
}

// pickOption matches a response against the option list: a 1-based
// index, an exact match, or a substring of an option.
func pickOption(options []string, lower string) (string, bool) {
	if lower == "" {
		return "", false
	}
	if idx, err := strconv.Atoi(lower); err == nil {
		if idx >= 1 && idx <= len(options) {
			return options[idx-1], true
		}
		return "", false
	}
	for _, opt := range options {
		o := strings.ToLower(opt)
		if o == lower || strings.Contains(o, lower) {
			return opt, true
		}
	}
	return "", false
}

// commandFromDetails rebuilds a command from the string payload a
// confirmation or clarification state carries.
func commandFromDetails(action string, details map[string]string) types.Command {
	cmd := types.Command{Name: action, Confirmed: true}
	for key, val := range details {
		switch key {
		case "target":
			cmd.Target = val
		case "topic":
			cmd.Topic = val
		case "direction":
			cmd.Direction = val
		case "amount":
			if n, err := strconv.Atoi(val); err == nil && n > 0 {
				cmd.Amount = n
			}
		case "duration":
			if n, err := strconv.Atoi(val); err == nil && n > 0 {
				cmd.Duration = n
			}
		case "raw":
			cmd.Raw = val
		}
	}
	return cmd
}
