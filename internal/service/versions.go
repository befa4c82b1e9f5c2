package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"designmentor.app/analysis-engine/common/id"
	"designmentor.app/analysis-engine/internal/model"
	"designmentor.app/analysis-engine/internal/store"
)

// reconcileVersion decides which version number the current content
// represents: 1 when the project has never been analyzed, the previous number
// plus one when the content changed, and the previous number unchanged when
// the content is byte-identical to the last analyzed snapshot.
func (s *analysisService) reconcileVersion(ctx context.Context, projectID int64, content string) (int, error) {
	latest, err := s.versions.GetLatest(ctx, projectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return 1, nil
		}
		return 0, fmt.Errorf("loading latest version: %w", err)
	}

	if latest.Content != content {
		return latest.VersionNumber + 1, nil
	}
	return latest.VersionNumber, nil
}

// snapshot records the analyzed content and metrics under (projectID,
// version). Re-analyzing unchanged content hits the same version number and
// updates the existing snapshot in place, keeping reconcile+snapshot
// idempotent.
func (s *analysisService) snapshot(ctx context.Context, projectID int64, content string, version, maturityScore, openCount int) error {
	v := &model.DesignVersion{
		ID:               id.New(),
		ProjectID:        projectID,
		VersionNumber:    version,
		Content:          content,
		MaturityScore:    maturityScore,
		SuggestionsCount: openCount,
		CreatedAt:        time.Now().UTC(),
	}
	if err := s.versions.Upsert(ctx, v); err != nil {
		return fmt.Errorf("saving version snapshot: %w", err)
	}

	slog.InfoContext(ctx, "version snapshot saved",
		"project_id", projectID,
		"version", version,
		"maturity_score", maturityScore,
		"open_suggestions", openCount,
	)
	return nil
}

// Evolution summarizes a project's analysis history.
type Evolution struct {
	ProgressSummary      string                `json:"progress_summary"`
	Versions             []model.DesignVersion `json:"versions"`
	ProjectID            int64                 `json:"project_id,string"`
	CurrentVersion       int                   `json:"current_version"`
	CurrentMaturityScore int                   `json:"current_maturity_score"`
}

func (s *analysisService) ProjectEvolution(ctx context.Context, projectID int64) (*Evolution, error) {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("loading project: %w", err)
	}

	versions, err := s.versions.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing versions: %w", err)
	}

	return &Evolution{
		ProgressSummary:      progressSummary(versions),
		Versions:             versions,
		ProjectID:            projectID,
		CurrentVersion:       project.DesignVersionNum,
		CurrentMaturityScore: project.MaturityScore,
	}, nil
}

func progressSummary(versions []model.DesignVersion) string {
	switch len(versions) {
	case 0:
		return "No analysis history yet. Run your first analysis!"
	case 1:
		v := versions[0]
		return fmt.Sprintf("Version 1: %d suggestions, maturity %d/5", v.SuggestionsCount, v.MaturityScore)
	}

	first := versions[0]
	last := versions[len(versions)-1]

	var parts []string
	if diff := first.SuggestionsCount - last.SuggestionsCount; diff > 0 {
		parts = append(parts, fmt.Sprintf("Addressed %d suggestions", diff))
	}
	if diff := last.MaturityScore - first.MaturityScore; diff > 0 {
		parts = append(parts, fmt.Sprintf("Improved maturity by %d points", diff))
	}

	if len(parts) == 0 {
		return fmt.Sprintf("Tracked %d versions. Keep improving your design!", len(versions))
	}

	summary := parts[0]
	for _, p := range parts[1:] {
		summary += " and " + p
	}
	return fmt.Sprintf("Great progress! %s over %d versions.", summary, len(versions))
}
