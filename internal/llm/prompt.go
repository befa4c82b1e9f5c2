package llm

import (
	"fmt"
	"strings"

	"designmentor.app/analysis-engine/internal/rules"
)

// maxExcerptChars caps how much of the design document is sent to the
// generator.
const maxExcerptChars = 2000

const systemPrompt = `You are a system design expert and mentor. Your role is to explain WHY certain components matter in system design, helping students understand the reasoning behind best practices.

CRITICAL RULES:
1. You ONLY explain components that are already identified as missing (provided to you).
2. You NEVER invent or suggest additional missing components.
3. You ALWAYS respond with valid JSON only - no markdown, no extra text.
4. Your explanations should be educational, not generic.
5. Focus on interview preparation and production realities.

OUTPUT FORMAT (strict JSON):
{
  "explanations": [
    {
      "category": "CACHING",
      "why_it_matters": "Clear explanation of importance...",
      "interview_angle": "How this comes up in interviews...",
      "production_angle": "Real-world implications..."
    }
  ]
}

VALID CATEGORIES: CACHING, SCALABILITY, SECURITY, RELIABILITY, PERFORMANCE, DATABASE, API_DESIGN, GENERAL

If you cannot provide explanations, return: {"explanations": []}`

// BuildExplanationPrompt renders the single user prompt sent to the generator:
// a capped excerpt of the design document plus the (category, title) pairs of
// the rule-based findings.
func BuildExplanationPrompt(content string, findings []rules.Finding) string {
	excerpt := content
	if len(excerpt) > maxExcerptChars {
		excerpt = excerpt[:maxExcerptChars] + "... [truncated]"
	}

	lines := make([]string, 0, len(findings))
	for _, f := range findings {
		lines = append(lines, fmt.Sprintf("- %s: %s", f.Category, f.Title))
	}

	return fmt.Sprintf(`Analyze the following system design and explain why the identified missing components are important.

## User's System Design:
%s

## Missing Components (identified by rule-based analysis):
%s

## Your Task:
For EACH missing component listed above, provide:
1. why_it_matters: Why is this component important? (educational explanation)
2. interview_angle: How might an interviewer ask about this?
3. production_angle: What happens in production without this?

RESPOND WITH VALID JSON ONLY. No markdown, no explanations outside JSON.

Example output format:
{
  "explanations": [
    {
      "category": "CACHING",
      "why_it_matters": "Caching reduces database load and improves response times by storing frequently accessed data in memory...",
      "interview_angle": "Interviewers often ask: 'Where would you add caching?' or 'How do you handle cache invalidation?'...",
      "production_angle": "Without caching, your database becomes a bottleneck. At scale, every request hitting the DB causes..."
    }
  ]
}`, excerpt, strings.Join(lines, "\n"))
}
