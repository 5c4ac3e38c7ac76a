// Package vocab implements the vocabulary registry: the mutable table
// of intent definitions the classifier scores against. Entries are
// added at startup and may be extended at runtime (e.g. from content
// files).
package vocab

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mlowen/simcore/types"
)

// slotKinds is the closed set of valid slot names and their kinds.
var slotKinds = map[string]types.EntityKind{
	"location":  types.KindLocation,
	"character": types.KindCharacter,
	"amount":    types.KindAmount,
	"duration":  types.KindDuration,
	"direction": types.KindDirection,
	"topic":     types.KindTopic,
	"target":    types.KindTarget,
	"business":  types.KindBusiness,
}

// SlotKind maps a slot name to its entity kind.
// Returns false for names outside the fixed set.
func SlotKind(slot string) (types.EntityKind, bool) {
	k, ok := slotKinds[slot]
	return k, ok
}

// Registry holds intent definitions keyed by name.
type Registry struct {
	intents map[string]types.IntentDef
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{intents: map[string]types.IntentDef{}}
}

// Register validates and adds an intent definition. Registering a name
// that already exists replaces the previous definition.
func (r *Registry) Register(def types.IntentDef) error {
	def.Name = strings.TrimSpace(strings.ToLower(def.Name))
	if def.Name == "" {
		return fmt.Errorf("intent name must not be empty")
	}
	if len(def.Keywords) == 0 {
		return fmt.Errorf("intent %s: at least one keyword required", def.Name)
	}
	for i, kw := range def.Keywords {
		kw = strings.TrimSpace(strings.ToLower(kw))
		if kw == "" {
			return fmt.Errorf("intent %s: keyword %d is empty", def.Name, i)
		}
		def.Keywords[i] = kw
	}
	for i, p := range def.Patterns {
		p = strings.TrimSpace(strings.ToLower(p))
		if p == "" {
			return fmt.Errorf("intent %s: pattern %d is empty", def.Name, i)
		}
		def.Patterns[i] = p
	}
	for i, slot := range def.Slots {
		slot = strings.TrimSpace(strings.ToLower(slot))
		if slot == "" {
			return fmt.Errorf("intent %s: slot %d is empty", def.Name, i)
		}
		if _, ok := slotKinds[slot]; !ok {
			return fmt.Errorf("intent %s: unknown slot %q", def.Name, slot)
		}
		def.Slots[i] = slot
	}
	if def.Priority <= 0 {
		return fmt.Errorf("intent %s: priority must be positive", def.Name)
	}
	r.intents[def.Name] = def
	return nil
}

// Get returns the definition for an intent name.
func (r *Registry) Get(name string) (types.IntentDef, bool) {
	def, ok := r.intents[name]
	return def, ok
}

// All returns every registered definition, sorted by name so iteration
// order never depends on map ordering.
func (r *Registry) All() []types.IntentDef {
	defs := make([]types.IntentDef, 0, len(r.intents))
	for _, def := range r.intents {
		defs = append(defs, def)
	}
	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}
