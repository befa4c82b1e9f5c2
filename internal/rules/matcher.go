package rules

import "strings"

// Matches reports whether any keyword occurs in text. Matching is
// case-insensitive pure substring containment: no tokenization, no stemming.
// The first hit short-circuits.
func Matches(text string, keywords []string) bool {
	return matchesLower(strings.ToLower(text), keywords)
}

// matchesLower is the shared inner loop for callers that already hold a
// lower-cased copy of the content.
func matchesLower(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}
