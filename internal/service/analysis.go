package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"designmentor.app/analysis-engine/internal/llm"
	"designmentor.app/analysis-engine/internal/model"
	"designmentor.app/analysis-engine/internal/rules"
	"designmentor.app/analysis-engine/internal/store"
)

var (
	ErrProjectNotFound    = errors.New("project not found")
	ErrSuggestionNotFound = errors.New("suggestion not found")
)

// noContentReason is the payload reason when a project has nothing to analyze.
const noContentReason = "No design content found"

// Enricher augments finding descriptions. Implementations are best-effort and
// never fail: an empty mapping means "no enrichment".
type Enricher interface {
	Enrich(ctx context.Context, content string, findings []rules.Finding) map[model.Category]llm.Explanation
}

// AnalysisService runs the design-analysis pipeline against a project and
// manages the resulting suggestion records.
type AnalysisService interface {
	// RunAnalysis executes the full pipeline: version reconciliation,
	// auto-resolution of open suggestions, rule analysis, maturity scoring,
	// best-effort enrichment, suggestion creation, and snapshotting. Callers
	// must serialize concurrent runs for the same project.
	RunAnalysis(ctx context.Context, projectID int64) (*AnalysisResult, error)

	// SetSuggestionStatus manually overrides a suggestion's status. version
	// is only consulted when status is ADDRESSED.
	SetSuggestionStatus(ctx context.Context, suggestionID int64, status model.SuggestionStatus, version *int) (*model.Suggestion, error)

	// ProjectEvolution reports the version history and maturity progression
	// of a project.
	ProjectEvolution(ctx context.Context, projectID int64) (*Evolution, error)
}

// AnalysisResult is the aggregate payload returned to the calling layer.
type AnalysisResult struct {
	Suggestions         []model.Suggestion `json:"suggestions"`
	MaturityReason      string             `json:"maturity_reason"`
	DesignVersion       int                `json:"design_version"`
	MaturityScore       int                `json:"maturity_score"`
	NewlyAddressedCount int                `json:"newly_addressed_count"`
	NewSuggestionsCount int                `json:"new_suggestions_count"`
}

type analysisService struct {
	projects    store.ProjectStore
	suggestions store.SuggestionStore
	versions    store.VersionStore
	ruleset     *rules.Ruleset
	enricher    Enricher
}

func NewAnalysisService(
	projects store.ProjectStore,
	suggestions store.SuggestionStore,
	versions store.VersionStore,
	ruleset *rules.Ruleset,
	enricher Enricher,
) AnalysisService {
	return &analysisService{
		projects:    projects,
		suggestions: suggestions,
		versions:    versions,
		ruleset:     ruleset,
		enricher:    enricher,
	}
}

func (s *analysisService) RunAnalysis(ctx context.Context, projectID int64) (*AnalysisResult, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// A project with nothing to analyze yields a zero result, not an
			// error.
			slog.WarnContext(ctx, "no design content found", "project_id", projectID)
			return &AnalysisResult{
				Suggestions:    []model.Suggestion{},
				MaturityReason: noContentReason,
			}, nil
		}
		return nil, fmt.Errorf("loading project: %w", err)
	}

	content := project.DesignContent

	version, err := s.reconcileVersion(ctx, projectID, content)
	if err != nil {
		return nil, err
	}
	slog.InfoContext(ctx, "starting analysis",
		"project_id", projectID,
		"version", version,
		"content_length", len(content),
	)

	addressed, err := s.autoResolve(ctx, projectID, content, version)
	if err != nil {
		return nil, err
	}

	// An empty document still gets a version snapshot, but there is nothing
	// for the rules to say about it yet.
	var findings []rules.Finding
	if content != "" {
		findings = s.ruleset.Analyze(content)
	} else {
		slog.WarnContext(ctx, "design content is empty, skipping rule analysis", "project_id", projectID)
	}
	score, reason := s.ruleset.Score(content)

	// Enrichment is best-effort; failures leave findings untouched.
	explanations := s.enricher.Enrich(ctx, content, findings)
	for i := range findings {
		if exp, ok := explanations[findings[i].Category]; ok {
			findings[i].Description = exp.Apply(findings[i].Description)
		}
	}

	created, err := s.createMissing(ctx, projectID, findings, version)
	if err != nil {
		return nil, err
	}

	open := model.SuggestionStatusOpen
	openSuggestions, err := s.suggestions.ListByProject(ctx, projectID, &open)
	if err != nil {
		return nil, fmt.Errorf("counting open suggestions: %w", err)
	}

	if err := s.snapshot(ctx, projectID, content, version, score, len(openSuggestions)); err != nil {
		return nil, err
	}

	if err := s.projects.UpdateAnalysisState(ctx, projectID, version, score, reason, model.ProjectStatusAnalyzed); err != nil {
		return nil, fmt.Errorf("updating project analysis state: %w", err)
	}

	all, err := s.suggestions.ListByProject(ctx, projectID, nil)
	if err != nil {
		return nil, fmt.Errorf("listing suggestions: %w", err)
	}

	slog.InfoContext(ctx, "analysis complete",
		"project_id", projectID,
		"version", version,
		"maturity_score", score,
		"newly_addressed", addressed,
		"new_suggestions", len(created),
		"open_suggestions", len(openSuggestions),
	)

	return &AnalysisResult{
		Suggestions:         all,
		MaturityReason:      reason,
		DesignVersion:       version,
		MaturityScore:       score,
		NewlyAddressedCount: addressed,
		NewSuggestionsCount: len(created),
	}, nil
}
