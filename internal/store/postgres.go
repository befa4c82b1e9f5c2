package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"designmentor.app/analysis-engine/internal/model"
)

// pgUniqueViolation is SQLSTATE 23505.
const pgUniqueViolation = "23505"

type projectStore struct {
	pool *pgxpool.Pool
}

func NewProjectStore(pool *pgxpool.Pool) ProjectStore {
	return &projectStore{pool: pool}
}

func (s *projectStore) GetByID(ctx context.Context, id int64) (*model.Project, error) {
	row := s.pool.QueryRow(ctx, `
		SELECT id, status, design_content, design_version, maturity_score,
		       COALESCE(maturity_reason, ''), created_at, updated_at
		FROM projects
		WHERE id = $1`, id)

	var p model.Project
	err := row.Scan(&p.ID, &p.Status, &p.DesignContent, &p.DesignVersionNum,
		&p.MaturityScore, &p.MaturityReason, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (s *projectStore) UpdateAnalysisState(ctx context.Context, id int64, designVersion, maturityScore int, maturityReason string, status model.ProjectStatus) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE projects
		SET design_version = $2, maturity_score = $3, maturity_reason = $4,
		    status = $5, updated_at = now()
		WHERE id = $1`,
		id, designVersion, maturityScore, maturityReason, string(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

type suggestionStore struct {
	pool *pgxpool.Pool
}

func NewSuggestionStore(pool *pgxpool.Pool) SuggestionStore {
	return &suggestionStore{pool: pool}
}

const suggestionColumns = `id, project_id, title, description, category, severity,
	design_version, status, trigger_keywords, addressed_at, addressed_in_version, created_at`

func (s *suggestionStore) GetByID(ctx context.Context, id int64) (*model.Suggestion, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+suggestionColumns+` FROM suggestions WHERE id = $1`, id)

	sug, err := scanSuggestion(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sug, nil
}

func (s *suggestionStore) ListByProject(ctx context.Context, projectID int64, status *model.SuggestionStatus) ([]model.Suggestion, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if status != nil {
		rows, err = s.pool.Query(ctx,
			`SELECT `+suggestionColumns+` FROM suggestions
			 WHERE project_id = $1 AND status = $2
			 ORDER BY created_at DESC, id DESC`,
			projectID, string(*status))
	} else {
		rows, err = s.pool.Query(ctx,
			`SELECT `+suggestionColumns+` FROM suggestions
			 WHERE project_id = $1
			 ORDER BY created_at DESC, id DESC`,
			projectID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var suggestions []model.Suggestion
	for rows.Next() {
		sug, err := scanSuggestion(rows)
		if err != nil {
			return nil, err
		}
		suggestions = append(suggestions, *sug)
	}
	return suggestions, rows.Err()
}

func (s *suggestionStore) Create(ctx context.Context, sug *model.Suggestion) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO suggestions (id, project_id, title, description, category,
			severity, design_version, status, trigger_keywords, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		sug.ID, sug.ProjectID, sug.Title, sug.Description, string(sug.Category),
		string(sug.Severity), sug.DesignVersion, string(sug.Status),
		sug.TriggerKeywords, sug.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			// Another writer already raised this title for the project; the
			// losing insert is a no-op.
			return nil
		}
		return err
	}
	return nil
}

func (s *suggestionStore) Update(ctx context.Context, sug *model.Suggestion) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE suggestions
		SET status = $2, addressed_at = $3, addressed_in_version = $4
		WHERE id = $1`,
		sug.ID, string(sug.Status), sug.AddressedAt, sug.AddressedInVersion)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanSuggestion(row pgx.Row) (*model.Suggestion, error) {
	var sug model.Suggestion
	err := row.Scan(&sug.ID, &sug.ProjectID, &sug.Title, &sug.Description,
		&sug.Category, &sug.Severity, &sug.DesignVersion, &sug.Status,
		&sug.TriggerKeywords, &sug.AddressedAt, &sug.AddressedInVersion,
		&sug.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &sug, nil
}

type versionStore struct {
	pool *pgxpool.Pool
}

func NewVersionStore(pool *pgxpool.Pool) VersionStore {
	return &versionStore{pool: pool}
}

const versionColumns = `id, project_id, version_number, content, maturity_score,
	suggestions_count, created_at`

func (s *versionStore) GetLatest(ctx context.Context, projectID int64) (*model.DesignVersion, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+versionColumns+` FROM design_versions
		 WHERE project_id = $1
		 ORDER BY version_number DESC
		 LIMIT 1`, projectID)
	return scanVersion(row)
}

func (s *versionStore) Get(ctx context.Context, projectID int64, versionNumber int) (*model.DesignVersion, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+versionColumns+` FROM design_versions
		 WHERE project_id = $1 AND version_number = $2`, projectID, versionNumber)
	return scanVersion(row)
}

func (s *versionStore) Upsert(ctx context.Context, v *model.DesignVersion) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO design_versions (id, project_id, version_number, content,
			maturity_score, suggestions_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (project_id, version_number) DO UPDATE
		SET content = EXCLUDED.content,
		    maturity_score = EXCLUDED.maturity_score,
		    suggestions_count = EXCLUDED.suggestions_count`,
		v.ID, v.ProjectID, v.VersionNumber, v.Content, v.MaturityScore,
		v.SuggestionsCount, v.CreatedAt)
	return err
}

func (s *versionStore) ListByProject(ctx context.Context, projectID int64) ([]model.DesignVersion, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+versionColumns+` FROM design_versions
		 WHERE project_id = $1
		 ORDER BY version_number ASC`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var versions []model.DesignVersion
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, err
		}
		versions = append(versions, *v)
	}
	return versions, rows.Err()
}

func scanVersion(row pgx.Row) (*model.DesignVersion, error) {
	var v model.DesignVersion
	err := row.Scan(&v.ID, &v.ProjectID, &v.VersionNumber, &v.Content,
		&v.MaturityScore, &v.SuggestionsCount, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &v, nil
}
