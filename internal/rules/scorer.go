package rules

import (
	"fmt"
	"strings"
)

// ReasonNoConcepts is the fixed reason returned for a score of zero.
const ReasonNoConcepts = "No key architectural concepts detected. Start by adding API and database layers."

// Score counts how many maturity concept groups have at least one keyword
// present in content (no partial credit within a group) and builds a
// human-readable reason. Pure function of content.
func (rs *Ruleset) Score(content string) (int, string) {
	lower := strings.ToLower(content)

	score := 0
	var present []string
	for _, g := range rs.maturity {
		if matchesLower(lower, g.Keywords) {
			score++
			present = append(present, "✓ "+g.Description)
		}
	}

	var reason string
	switch {
	case score == 0:
		reason = ReasonNoConcepts
	case score < 3:
		reason = fmt.Sprintf("Basic design (%d/5): %s", score, strings.Join(present, ", "))
	case score < 5:
		reason = fmt.Sprintf("Good design (%d/5): %s", score, strings.Join(present, ", "))
	default:
		reason = fmt.Sprintf("Comprehensive design (%d/5): %s", score, strings.Join(present, ", "))
	}

	return score, reason
}
