package llm

import "context"

// Generator is the external text-generation collaborator. Implementations may
// fail with transport or timeout errors; callers above the enrichment boundary
// never see those failures.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}
