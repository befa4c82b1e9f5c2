package store

import (
	"context"
	"errors"

	"designmentor.app/analysis-engine/internal/model"
)

var ErrNotFound = errors.New("not found")

// ProjectStore is the engine's view of the externally owned project
// aggregate: read the current design content, write back the analysis
// results.
type ProjectStore interface {
	GetByID(ctx context.Context, id int64) (*model.Project, error)
	UpdateAnalysisState(ctx context.Context, id int64, designVersion, maturityScore int, maturityReason string, status model.ProjectStatus) error
}

type SuggestionStore interface {
	GetByID(ctx context.Context, id int64) (*model.Suggestion, error)
	// ListByProject returns suggestions newest first, optionally filtered by
	// status.
	ListByProject(ctx context.Context, projectID int64, status *model.SuggestionStatus) ([]model.Suggestion, error)
	// Create inserts a suggestion. An existing suggestion with the same
	// (project_id, title) makes the insert a benign no-op, not an error.
	Create(ctx context.Context, s *model.Suggestion) error
	Update(ctx context.Context, s *model.Suggestion) error
}

type VersionStore interface {
	// GetLatest returns the snapshot with the highest version number.
	GetLatest(ctx context.Context, projectID int64) (*model.DesignVersion, error)
	Get(ctx context.Context, projectID int64, versionNumber int) (*model.DesignVersion, error)
	// Upsert inserts the snapshot, or updates content/maturity_score/
	// suggestions_count in place when (project_id, version_number) already
	// exists. The ID on v is only used for inserts.
	Upsert(ctx context.Context, v *model.DesignVersion) error
	// ListByProject returns snapshots in ascending version order.
	ListByProject(ctx context.Context, projectID int64) ([]model.DesignVersion, error)
}
