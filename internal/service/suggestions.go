package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"designmentor.app/analysis-engine/common/id"
	"designmentor.app/analysis-engine/internal/model"
	"designmentor.app/analysis-engine/internal/rules"
	"designmentor.app/analysis-engine/internal/store"
)

// autoResolve scans the project's OPEN suggestions and marks as ADDRESSED any
// whose trigger keywords now appear in content. Suggestions already ADDRESSED
// or IGNORED are never touched. Returns the number of transitions.
func (s *analysisService) autoResolve(ctx context.Context, projectID int64, content string, newVersion int) (int, error) {
	open := model.SuggestionStatusOpen
	openSuggestions, err := s.suggestions.ListByProject(ctx, projectID, &open)
	if err != nil {
		return 0, fmt.Errorf("listing open suggestions: %w", err)
	}

	resolved := 0
	for i := range openSuggestions {
		sug := &openSuggestions[i]

		// Suggestions stored before trigger keywords were persisted fall back
		// to the fixed rule matching their title. When neither source yields
		// keywords, the suggestion is never auto-resolved.
		keywords := sug.TriggerKeywords
		if len(keywords) == 0 {
			if rule, ok := s.ruleset.RuleByTitle(sug.Title); ok {
				keywords = rule.Keywords
			}
		}
		if len(keywords) == 0 {
			slog.DebugContext(ctx, "no trigger keywords for suggestion, skipping auto-resolve",
				"suggestion_id", sug.ID,
				"title", sug.Title,
			)
			continue
		}

		if !rules.Matches(content, keywords) {
			continue
		}

		now := time.Now().UTC()
		version := newVersion
		sug.Status = model.SuggestionStatusAddressed
		sug.AddressedAt = &now
		sug.AddressedInVersion = &version
		if err := s.suggestions.Update(ctx, sug); err != nil {
			return resolved, fmt.Errorf("resolving suggestion %d: %w", sug.ID, err)
		}
		resolved++

		slog.InfoContext(ctx, "suggestion auto-resolved",
			"suggestion_id", sug.ID,
			"title", sug.Title,
			"version", newVersion,
		)
	}

	return resolved, nil
}

// createMissing persists a new OPEN suggestion for every finding whose title
// has never been raised for the project. Titles already present, in any
// status, are skipped — once flagged, a concept is flagged exactly once for
// the lifetime of the project.
func (s *analysisService) createMissing(ctx context.Context, projectID int64, findings []rules.Finding, version int) ([]model.Suggestion, error) {
	existing, err := s.suggestions.ListByProject(ctx, projectID, nil)
	if err != nil {
		return nil, fmt.Errorf("listing suggestions: %w", err)
	}
	existingTitles := make(map[string]struct{}, len(existing))
	for _, sug := range existing {
		existingTitles[sug.Title] = struct{}{}
	}

	var created []model.Suggestion
	for _, f := range findings {
		if _, ok := existingTitles[f.Title]; ok {
			continue
		}

		sug := model.Suggestion{
			ID:              id.New(),
			ProjectID:       projectID,
			Title:           f.Title,
			Description:     f.Description,
			Category:        f.Category,
			Severity:        f.Severity,
			DesignVersion:   version,
			Status:          model.SuggestionStatusOpen,
			TriggerKeywords: f.TriggerKeywords,
			CreatedAt:       time.Now().UTC(),
		}
		if err := s.suggestions.Create(ctx, &sug); err != nil {
			return nil, fmt.Errorf("creating suggestion %q: %w", f.Title, err)
		}
		created = append(created, sug)

		slog.InfoContext(ctx, "suggestion created",
			"suggestion_id", sug.ID,
			"title", sug.Title,
			"severity", sug.Severity,
			"version", version,
		)
	}

	return created, nil
}

func (s *analysisService) SetSuggestionStatus(ctx context.Context, suggestionID int64, status model.SuggestionStatus, version *int) (*model.Suggestion, error) {
	sug, err := s.suggestions.GetByID(ctx, suggestionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSuggestionNotFound
		}
		return nil, fmt.Errorf("loading suggestion: %w", err)
	}

	sug.Status = status
	switch status {
	case model.SuggestionStatusAddressed:
		now := time.Now().UTC()
		sug.AddressedAt = &now
		if version != nil {
			sug.AddressedInVersion = version
		}
	case model.SuggestionStatusOpen:
		sug.AddressedAt = nil
		sug.AddressedInVersion = nil
	case model.SuggestionStatusIgnored:
		// Status change only.
	}

	if err := s.suggestions.Update(ctx, sug); err != nil {
		return nil, fmt.Errorf("updating suggestion: %w", err)
	}

	slog.InfoContext(ctx, "suggestion status updated",
		"suggestion_id", suggestionID,
		"status", status,
	)
	return sug, nil
}
