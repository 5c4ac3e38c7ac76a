// Package classify scores every registered intent against an input
// line and picks the best candidate. Intentionally dumb: weighted
// keyword and pattern matching, no NLP.
package classify

import (
	"strings"
	"time"

	"github.com/mlowen/simcore/engine/text"
	"github.com/mlowen/simcore/engine/unknowns"
	"github.com/mlowen/simcore/engine/vocab"
	"github.com/mlowen/simcore/types"
)

// Unknown is the intent name returned when no candidate clears the
// confidence threshold.
const Unknown = "unknown"

// Scoring tunables. These values are load-bearing: changing them
// shifts every classification decision.
const (
	keywordWeight = 1.0  // each keyword present as a token or substring
	patternWeight = 0.5  // each pattern substring present
	startBonus    = 0.3  // first token is one of the intent's keywords
	exactSingle   = 0.95 // input is exactly one token and that token is a keyword
	lengthDamping = 0.5  // per-token confidence damping
	priorityScale = 10.0 // priority normalization divisor
	minConfidence = 0.3  // below this the result is "unknown"
)

// Classifier scores inputs against a vocabulary registry and records
// unrecognized inputs.
type Classifier struct {
	vocab    *vocab.Registry
	unknowns *unknowns.Log
}

// New creates a classifier over the given registry. The unknowns log
// may be nil if unrecognized inputs need not be recorded.
func New(registry *vocab.Registry, log *unknowns.Log) *Classifier {
	return &Classifier{vocab: registry, unknowns: log}
}

// Classify scores the normalized input against every registered intent
// and returns the winner with its confidence. Empty input and inputs
// where no candidate reaches the confidence threshold yield the
// "unknown" intent with confidence 0; only the latter is recorded in
// the unknowns log.
func (c *Classifier) Classify(normalized string) types.Recognition {
	rec := types.Recognition{
		Intent: Unknown,
		Raw:    normalized,
		Time:   time.Now(),
	}
	tokens := text.Tokenize(normalized)
	if len(tokens) == 0 {
		return rec
	}

	best, found := c.bestCandidate(normalized, tokens)
	if !found || best.confidence < minConfidence {
		if c.unknowns != nil {
			c.unknowns.Add(normalized)
		}
		return rec
	}

	rec.Intent = best.name
	rec.Confidence = best.confidence
	return rec
}

type candidate struct {
	name       string
	priority   int
	confidence float64
}

// bestCandidate scores every intent and picks the strongest. Ties are
// broken by higher priority, then lexicographic name, so the outcome
// never depends on table iteration order.
func (c *Classifier) bestCandidate(normalized string, tokens []string) (candidate, bool) {
	var best candidate
	found := false
	for _, def := range c.vocab.All() {
		conf, ok := score(def, normalized, tokens)
		if !ok {
			continue
		}
		cand := candidate{name: def.Name, priority: def.Priority, confidence: conf}
		if !found || better(cand, best) {
			best = cand
			found = true
		}
	}
	return best, found
}

func better(a, b candidate) bool {
	if a.confidence != b.confidence {
		return a.confidence > b.confidence
	}
	if a.priority != b.priority {
		return a.priority > b.priority
	}
	return a.name < b.name
}

// score computes the confidence of one intent for the input. Returns
// false when neither a keyword nor a pattern matched.
func score(def types.IntentDef, normalized string, tokens []string) (float64, bool) {
	tokenSet := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		tokenSet[t] = true
	}

	raw := 0.0
	keywordSet := make(map[string]bool, len(def.Keywords))
	for _, kw := range def.Keywords {
		keywordSet[kw] = true
		if tokenSet[kw] || strings.Contains(normalized, kw) {
			raw += keywordWeight
		}
	}
	for _, p := range def.Patterns {
		if strings.Contains(normalized, p) {
			raw += patternWeight
		}
	}
	if raw == 0 {
		return 0, false
	}

	// Exact single-word command: a bare keyword is as certain as this
	// classifier ever gets, regardless of priority.
	if len(tokens) == 1 && keywordSet[tokens[0]] {
		return exactSingle, true
	}

	if keywordSet[tokens[0]] {
		raw += startBonus
	}

	conf := raw / (float64(len(tokens))*lengthDamping + 1)
	conf *= float64(def.Priority) / priorityScale
	if conf > 1.0 {
		conf = 1.0
	}
	return conf, true
}
