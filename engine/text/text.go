// Package text provides input normalization shared by the classifier
// and the entity extractors.
package text

import "strings"

// Normalize lowercases the input, collapses whitespace, and strips
// punctuation. Dollar signs are kept, and commas and periods are kept
// only between digits, so money forms like "$5,000" survive intact.
func Normalize(raw string) string {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return ""
	}

	runes := []rune(raw)
	var b strings.Builder
	lastSpace := true
	for i, r := range runes {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '$':
			b.WriteRune(r)
			lastSpace = false
		case (r == ',' || r == '.') && betweenDigits(runes, i):
			b.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace {
				b.WriteByte(' ')
			}
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

// Tokenize splits a normalized string on whitespace.
func Tokenize(normalized string) []string {
	if normalized == "" {
		return nil
	}
	return strings.Fields(normalized)
}

func betweenDigits(runes []rune, i int) bool {
	if i == 0 || i+1 >= len(runes) {
		return false
	}
	return isDigit(runes[i-1]) && isDigit(runes[i+1])
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}
