// Package normalize turns a recognition result into the canonical
// command record consumed by simulation handlers.
package normalize

import (
	"github.com/mlowen/simcore/engine/classify"
	"github.com/mlowen/simcore/engine/extract"
	"github.com/mlowen/simcore/engine/text"
	"github.com/mlowen/simcore/engine/vocab"
	"github.com/mlowen/simcore/types"
)

// fallbackIntents may re-scan the whole raw input for slots direct
// extraction missed.
var fallbackIntents = map[string]bool{
	"move": true,
	"talk": true,
	"loan": true,
	"buy":  true,
}

// Normalizer assigns extracted entities to canonical command fields.
type Normalizer struct {
	vocab *vocab.Registry
}

// New creates a normalizer over the given vocabulary registry.
func New(registry *vocab.Registry) *Normalizer {
	return &Normalizer{vocab: registry}
}

// Normalize builds the canonical command for a recognition result.
// Fields whose entities are absent stay at their zero value; deciding
// whether an omission needs a follow-up dialogue is the receiving
// handler's call, not ours.
func (n *Normalizer) Normalize(rec types.Recognition, ctx types.Context) types.Command {
	cmd := types.Command{Name: rec.Intent, Raw: rec.Raw}
	if rec.Intent == classify.Unknown {
		return cmd
	}

	def, ok := n.vocab.Get(rec.Intent)
	if !ok {
		return cmd
	}

	for _, slot := range def.Slots {
		if ent, found := rec.Entities[slot]; found {
			Assign(&cmd, slot, ent)
		}
	}

	if !fallbackIntents[rec.Intent] {
		return cmd
	}

	// One fallback pass over the whole input for anything still empty.
	normalized := text.Normalize(rec.Raw)
	for _, slot := range def.Slots {
		if slotFilled(cmd, slot) {
			continue
		}
		kind, known := vocab.SlotKind(slot)
		if !known {
			continue
		}
		if ent, found := extract.Extract(kind, normalized, ctx); found {
			Assign(&cmd, slot, ent)
		}
	}
	return cmd
}

// Assign merges one extracted entity into a command under its slot
// name. Used both during normalization and when a dialogue completes a
// missing slot.
func Assign(cmd *types.Command, slot string, ent types.Entity) {
	switch slot {
	case "location", "character":
		if ent.Key != "" {
			cmd.Target = ent.Key
		} else if ent.Text != "" {
			cmd.Target = ent.Text
		}
	case "target", "business":
		if ent.Text != "" {
			cmd.Target = ent.Text
		} else if ent.Key != "" {
			cmd.Target = ent.Key
		}
	case "direction":
		cmd.Direction = ent.Text
	case "topic":
		cmd.Topic = ent.Text
	case "amount":
		if ent.Number > 0 {
			cmd.Amount = ent.Number
		}
	case "duration":
		if ent.Number > 0 {
			cmd.Duration = ent.Number
		}
	}
}

func slotFilled(cmd types.Command, slot string) bool {
	switch slot {
	case "location", "character", "target", "business":
		return cmd.Target != ""
	case "direction":
		return cmd.Direction != ""
	case "topic":
		return cmd.Topic != ""
	case "amount":
		return cmd.Amount > 0
	case "duration":
		return cmd.Duration > 0
	default:
		return false
	}
}
