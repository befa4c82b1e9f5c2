package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"designmentor.app/analysis-engine/internal/model"
	"designmentor.app/analysis-engine/internal/rules"
)

const defaultTimeout = 30 * time.Second

// Explanation is one validated generator explanation for a missing concept.
// Each text field is bounded to keep enrichment output within suggestion-sized
// prose.
type Explanation struct {
	Category        string `json:"category" validate:"required"`
	WhyItMatters    string `json:"why_it_matters" validate:"required,min=10,max=500"`
	InterviewAngle  string `json:"interview_angle" validate:"required,min=10,max=500"`
	ProductionAngle string `json:"production_angle" validate:"required,min=10,max=500"`
}

// Apply appends the three labeled explanation sections to a rule description,
// blank-line separated, in fixed order.
func (e Explanation) Apply(description string) string {
	return fmt.Sprintf(
		"%s\n\n**Why It Matters:** %s\n\n**Interview Perspective:** %s\n\n**Production Reality:** %s",
		description, e.WhyItMatters, e.InterviewAngle, e.ProductionAngle,
	)
}

type generatorResponse struct {
	Explanations []Explanation `json:"explanations"`
}

// Enricher augments finding descriptions via the generator. It is strictly
// best-effort: an absent generator and every generator failure mode produce an
// empty mapping, never an error.
type Enricher struct {
	gen      Generator
	timeout  time.Duration
	validate *validator.Validate
}

// NewEnricher wraps gen with a call timeout. gen may be nil; a non-positive
// timeout falls back to 30 seconds.
func NewEnricher(gen Generator, timeout time.Duration) *Enricher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Enricher{
		gen:      gen,
		timeout:  timeout,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// Enrich returns at most one explanation per category, keyed by category with
// last-one-wins on duplicates. The mapping is empty when no generator is
// configured, when there is nothing to enrich, or when the generator call
// fails or returns output violating the schema.
func (e *Enricher) Enrich(ctx context.Context, content string, findings []rules.Finding) map[model.Category]Explanation {
	if e.gen == nil {
		slog.DebugContext(ctx, "no generator configured, skipping enrichment")
		return nil
	}
	if len(findings) == 0 {
		return nil
	}

	prompt := BuildExplanationPrompt(content, findings)

	genCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	raw, err := e.gen.Generate(genCtx, prompt)
	if err != nil {
		slog.WarnContext(ctx, "enrichment failed, continuing without explanations", "error", err)
		return nil
	}

	var resp generatorResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		slog.WarnContext(ctx, "generator returned invalid JSON, continuing without explanations", "error", err)
		return nil
	}

	explanations := make(map[model.Category]Explanation, len(resp.Explanations))
	for _, exp := range resp.Explanations {
		category, err := model.ParseCategory(exp.Category)
		if err != nil {
			slog.WarnContext(ctx, "generator returned invalid category, discarding explanations", "error", err)
			return nil
		}
		exp.Category = string(category)

		if err := e.validate.Struct(exp); err != nil {
			slog.WarnContext(ctx, "generator explanation failed validation, discarding explanations",
				"category", category,
				"error", err,
			)
			return nil
		}

		explanations[category] = exp
	}

	slog.InfoContext(ctx, "enrichment succeeded", "explanations", len(explanations))
	return explanations
}
