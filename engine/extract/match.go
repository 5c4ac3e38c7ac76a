package extract

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/mlowen/simcore/engine/text"
	"github.com/mlowen/simcore/types"
)

// Reference-match tunables.
const (
	matchBase         = 0.5 // floor for a full id or name hit
	idBoost           = 0.5 // id hits scale up to matchBase+idBoost
	nameBoost         = 0.3 // name hits scale up to matchBase+nameBoost
	partialConfidence = 0.6 // token-level partial hit, fixed
	acceptThreshold   = 0.4 // candidates below this are treated as absent
	minPartialToken   = 4   // partials only consider words longer than 3 chars
)

// locationLead lists tokens stripped from the front of the input
// before matching against known locations.
var locationLead = map[string]bool{
	"go": true, "move": true, "walk": true, "head": true, "travel": true,
	"visit": true, "to": true, "into": true, "at": true, "toward": true,
	"towards": true, "the": true, "a": true, "an": true,
}

// characterLead is the equivalent strip set for character references.
var characterLead = map[string]bool{
	"talk": true, "speak": true, "chat": true, "ask": true, "greet": true,
	"to": true, "with": true, "the": true, "a": true, "an": true,
	"mr": true, "mrs": true, "ms": true,
}

// matchReference resolves the input against a map of id → named
// reference. Full id or name containment wins with a confidence scaled
// by match-length ratio; otherwise token-level partials (exact, prefix,
// or within a bounded levenshtein distance) score a fixed 0.6. The
// best candidate is accepted only at or above the threshold.
func matchReference(normalized string, refs map[string]types.Ref, kind types.EntityKind, lead map[string]bool) (types.Entity, bool) {
	if len(refs) == 0 {
		return types.Entity{}, false
	}

	tokens := text.Tokenize(normalized)
	i := 0
	for i < len(tokens) && lead[tokens[i]] {
		i++
	}
	tokens = tokens[i:]
	if len(tokens) == 0 {
		return types.Entity{}, false
	}
	stripped := strings.Join(tokens, " ")

	// Sorted ids so equal-confidence candidates resolve the same way
	// on every run.
	ids := make([]string, 0, len(refs))
	for id := range refs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var best types.Entity
	for _, id := range ids {
		name := strings.ToLower(strings.TrimSpace(refs[id].Name))
		conf := referenceConfidence(stripped, tokens, id, name)
		if conf > best.Confidence {
			best = types.Entity{
				Kind:       kind,
				Key:        id,
				Name:       refs[id].Name,
				Confidence: conf,
			}
		}
	}
	if best.Confidence < acceptThreshold {
		return types.Entity{}, false
	}
	return best, true
}

func referenceConfidence(stripped string, tokens []string, id, name string) float64 {
	idText := strings.ReplaceAll(id, "_", " ")
	if strings.Contains(stripped, idText) {
		return matchBase + idBoost*lengthRatio(len(idText), len(stripped))
	}
	if name != "" && strings.Contains(stripped, name) {
		return matchBase + nameBoost*lengthRatio(len(name), len(stripped))
	}

	// Token-level partials against id segments and name words.
	words := strings.Fields(idText)
	if name != "" {
		words = append(words, strings.Fields(name)...)
	}
	for _, tok := range tokens {
		if len(tok) < minPartialToken {
			continue
		}
		for _, w := range words {
			if len(w) < minPartialToken {
				continue
			}
			if tokenMatches(tok, w) {
				return partialConfidence
			}
		}
	}
	return 0
}

// tokenMatches reports whether an input token is close enough to a
// reference word: identical, a prefix either way, or within the
// length-bounded levenshtein distance.
func tokenMatches(tok, word string) bool {
	if tok == word || strings.HasPrefix(word, tok) || strings.HasPrefix(tok, word) {
		return true
	}
	return levenshtein.ComputeDistance(tok, word) <= levenshteinLimit(len(word))
}

func levenshteinLimit(length int) int {
	switch {
	case length <= 4:
		return 1
	case length <= 8:
		return 2
	default:
		return 3
	}
}

func lengthRatio(match, whole int) float64 {
	if whole <= 0 || match <= 0 {
		return 0
	}
	r := float64(match) / float64(whole)
	if r > 1 {
		r = 1
	}
	return r
}
