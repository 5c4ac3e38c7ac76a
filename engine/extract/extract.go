// Package extract pulls typed entity values out of normalized input
// text. Extraction never fails with an error: a value is either found
// or absent.
package extract

import (
	"strconv"
	"strings"

	"github.com/mlowen/simcore/engine/text"
	"github.com/mlowen/simcore/types"
)

// defaultRestHours is assumed when a resting utterance names no
// explicit duration.
const defaultRestHours = 8

// Extract attempts to pull one value of the given kind out of the
// normalized input. The context supplies the known locations and
// characters for reference resolution. Returns false when no value of
// that kind is present.
func Extract(kind types.EntityKind, normalized string, ctx types.Context) (types.Entity, bool) {
	switch kind {
	case types.KindLocation:
		return matchReference(normalized, ctx.Locations, types.KindLocation, locationLead)
	case types.KindCharacter:
		return matchReference(characterClause(normalized), ctx.Characters, types.KindCharacter, characterLead)
	case types.KindAmount:
		return extractAmount(normalized)
	case types.KindDuration:
		return extractDuration(normalized)
	case types.KindDirection:
		return extractDirection(normalized)
	case types.KindTopic:
		return extractTopic(normalized)
	case types.KindTarget:
		return extractFreeForm(normalized, types.KindTarget)
	case types.KindBusiness:
		return extractFreeForm(normalized, types.KindBusiness)
	default:
		return types.Entity{}, false
	}
}

// characterClause cuts the input at "about"/"regarding" so the topic
// tail does not dilute the reference match.
func characterClause(normalized string) string {
	for _, marker := range []string{" about ", " regarding "} {
		if i := strings.Index(normalized, marker); i >= 0 {
			return normalized[:i]
		}
	}
	return normalized
}

func extractAmount(normalized string) (types.Entity, bool) {
	for _, tok := range text.Tokenize(normalized) {
		t := strings.TrimPrefix(tok, "$")
		mult := 1.0
		switch {
		case strings.HasSuffix(t, "k"):
			mult = 1_000
			t = strings.TrimSuffix(t, "k")
		case strings.HasSuffix(t, "m"):
			mult = 1_000_000
			t = strings.TrimSuffix(t, "m")
		}
		t = strings.ReplaceAll(t, ",", "")
		if t == "" {
			continue
		}
		f, err := strconv.ParseFloat(t, 64)
		if err != nil || f <= 0 {
			continue
		}
		return types.Entity{Kind: types.KindAmount, Number: int(f * mult)}, true
	}
	return types.Entity{}, false
}

var hourWords = map[string]bool{
	"hour": true, "hours": true, "hr": true, "hrs": true, "h": true,
}

var restWords = map[string]bool{
	"sleep": true, "rest": true, "nap": true, "doze": true,
}

func extractDuration(normalized string) (types.Entity, bool) {
	tokens := text.Tokenize(normalized)

	// Explicit "<N> hours" takes precedence, in either the two-token
	// form ("8 hours") or the glued form ("8h", "8hrs").
	for i, tok := range tokens {
		if n, err := strconv.Atoi(tok); err == nil && n > 0 {
			if i+1 < len(tokens) && hourWords[tokens[i+1]] {
				return types.Entity{Kind: types.KindDuration, Number: n}, true
			}
			continue
		}
		for suffix := range hourWords {
			if rest, ok := strings.CutSuffix(tok, suffix); ok {
				if n, err := strconv.Atoi(rest); err == nil && n > 0 {
					return types.Entity{Kind: types.KindDuration, Number: n}, true
				}
			}
		}
	}

	for _, tok := range tokens {
		if restWords[tok] {
			return types.Entity{Kind: types.KindDuration, Number: defaultRestHours}, true
		}
	}
	return types.Entity{}, false
}

var directionExpansions = map[string]string{
	"n": "north", "north": "north",
	"s": "south", "south": "south",
	"e": "east", "east": "east",
	"w": "west", "west": "west",
	"u": "up", "up": "up",
	"d": "down", "down": "down",
}

func extractDirection(normalized string) (types.Entity, bool) {
	for _, tok := range text.Tokenize(normalized) {
		if dir, ok := directionExpansions[tok]; ok {
			return types.Entity{Kind: types.KindDirection, Text: dir}, true
		}
	}
	return types.Entity{}, false
}

func extractTopic(normalized string) (types.Entity, bool) {
	tokens := text.Tokenize(normalized)
	for i, tok := range tokens {
		if tok != "about" && tok != "regarding" {
			continue
		}
		topic := strings.TrimSpace(strings.Join(tokens[i+1:], " "))
		if topic == "" {
			return types.Entity{}, false
		}
		return types.Entity{Kind: types.KindTopic, Text: topic}, true
	}
	return types.Entity{}, false
}

// verbWords covers the recognized command verbs so free-form target
// extraction can drop them from the front of the input.
var verbWords = map[string]bool{
	"go": true, "move": true, "walk": true, "head": true, "travel": true,
	"visit": true, "talk": true, "speak": true, "chat": true, "ask": true,
	"greet": true, "examine": true, "inspect": true, "study": true,
	"look": true, "check": true, "work": true, "sleep": true, "rest": true,
	"nap": true, "eat": true, "dine": true, "buy": true, "purchase": true,
	"acquire": true, "apply": true, "borrow": true, "lend": true,
	"loan": true, "get": true, "take": true, "grab": true, "have": true,
}

var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "to": true, "at": true, "in": true,
	"on": true, "with": true, "for": true, "of": true, "my": true,
	"me": true, "some": true, "please": true, "out": true, "up": true,
}

func extractFreeForm(normalized string, kind types.EntityKind) (types.Entity, bool) {
	tokens := text.Tokenize(normalized)

	// Drop the leading verb phrase.
	i := 0
	for i < len(tokens) && (verbWords[tokens[i]] || stopWords[tokens[i]]) {
		i++
	}

	kept := make([]string, 0, len(tokens)-i)
	for _, tok := range tokens[i:] {
		if stopWords[tok] {
			continue
		}
		kept = append(kept, tok)
	}
	if len(kept) == 0 {
		return types.Entity{}, false
	}
	return types.Entity{Kind: kind, Text: strings.Join(kept, " ")}, true
}
