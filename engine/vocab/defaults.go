package vocab

import "github.com/mlowen/simcore/types"

// DefaultRegistry returns a registry pre-loaded with the built-in
// command vocabulary. Content files may extend it at load time.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	defs := []types.IntentDef{
		{
			Name:     "move",
			Keywords: []string{"go", "move", "walk", "head", "travel", "visit"},
			Patterns: []string{"go to", "head to", "walk to", "travel to"},
			Slots:    []string{"location", "direction"},
			Priority: 9,
		},
		{
			Name:     "talk",
			Keywords: []string{"talk", "speak", "chat", "ask", "greet"},
			Patterns: []string{"talk to", "speak with", "speak to", "chat with", "ask about"},
			Slots:    []string{"character", "topic"},
			Priority: 9,
		},
		{
			Name:     "examine",
			Keywords: []string{"examine", "inspect", "study"},
			Patterns: []string{"look at", "check out"},
			Slots:    []string{"target"},
			Priority: 7,
		},
		{
			Name:     "look",
			Keywords: []string{"look", "around", "where"},
			Patterns: []string{"look around", "where am i"},
			Priority: 8,
		},
		{
			Name:     "work",
			Keywords: []string{"work", "shift"},
			Patterns: []string{"go to work", "start shift", "start my shift"},
			Priority: 8,
		},
		{
			Name:     "sleep",
			Keywords: []string{"sleep", "rest", "nap", "bed"},
			Patterns: []string{"go to bed", "lie down", "turn in"},
			Slots:    []string{"duration"},
			Priority: 8,
		},
		{
			Name:     "eat",
			Keywords: []string{"eat", "dine", "meal", "hungry"},
			Patterns: []string{"grab a bite", "something to eat"},
			Slots:    []string{"target"},
			Priority: 7,
		},
		{
			Name:     "loan",
			Keywords: []string{"loan", "borrow", "lend"},
			Patterns: []string{"take out a loan", "borrow money", "get a loan"},
			Slots:    []string{"amount"},
			Priority: 8,
		},
		{
			Name:     "apply",
			Keywords: []string{"apply", "application", "hire"},
			Patterns: []string{"apply for", "look for a job"},
			Priority: 7,
		},
		{
			Name:     "buy",
			Keywords: []string{"buy", "purchase", "acquire"},
			Patterns: []string{"buy the", "purchase the", "put an offer"},
			Slots:    []string{"business", "amount"},
			Priority: 8,
		},
	}
	for _, def := range defs {
		// Built-in definitions are static; Register only fails on
		// malformed input.
		if err := r.Register(def); err != nil {
			panic(err)
		}
	}
	return r
}
