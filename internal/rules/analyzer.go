package rules

import "strings"

// Analyze evaluates every rule against content and returns one Finding per
// missing concept: fixed rules first in definition order, then conditional
// rules in their definition order. A concept whose keywords are present
// produces no finding. Triggering is exact keyword-level, never concept-level.
func (rs *Ruleset) Analyze(content string) []Finding {
	lower := strings.ToLower(content)

	var findings []Finding
	for _, r := range rs.rules {
		if !matchesLower(lower, r.Keywords) {
			findings = append(findings, r.finding())
		}
	}

	for _, c := range rs.conditionals {
		if matchesLower(lower, c.Hints) && !matchesLower(lower, c.Rule.Keywords) {
			findings = append(findings, c.Rule.finding())
		}
	}

	return findings
}
