package store

import (
	"context"
	"slices"
	"sync"
	"time"

	"designmentor.app/analysis-engine/common/id"
	"designmentor.app/analysis-engine/internal/model"
)

// Memory is a map-backed store provider suitable for the offline CLI and for
// tests. The Projects/Suggestions/Versions views share one lock and enforce
// the same (project_id, title) dedup key as the relational adapter.
type Memory struct {
	mu          sync.RWMutex
	projects    map[int64]*model.Project
	suggestions map[int64]*model.Suggestion
	versions    map[int64]map[int]*model.DesignVersion // projectID -> versionNumber
}

func NewMemory() *Memory {
	return &Memory{
		projects:    make(map[int64]*model.Project),
		suggestions: make(map[int64]*model.Suggestion),
		versions:    make(map[int64]map[int]*model.DesignVersion),
	}
}

func (m *Memory) Projects() ProjectStore       { return &memoryProjects{m} }
func (m *Memory) Suggestions() SuggestionStore { return &memorySuggestions{m} }
func (m *Memory) Versions() VersionStore       { return &memoryVersions{m} }

// PutProject seeds or replaces a project aggregate.
func (m *Memory) PutProject(p *model.Project) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cp := *p
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now().UTC()
	}
	cp.UpdatedAt = time.Now().UTC()
	m.projects[cp.ID] = &cp
}

type memoryProjects struct{ m *Memory }

var _ ProjectStore = &memoryProjects{}

func (s *memoryProjects) GetByID(ctx context.Context, projectID int64) (*model.Project, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	p, ok := s.m.projects[projectID]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *memoryProjects) UpdateAnalysisState(ctx context.Context, projectID int64, designVersion, maturityScore int, maturityReason string, status model.ProjectStatus) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	p, ok := s.m.projects[projectID]
	if !ok {
		return ErrNotFound
	}
	p.DesignVersionNum = designVersion
	p.MaturityScore = maturityScore
	p.MaturityReason = maturityReason
	p.Status = status
	p.UpdatedAt = time.Now().UTC()
	return nil
}

type memorySuggestions struct{ m *Memory }

var _ SuggestionStore = &memorySuggestions{}

func (s *memorySuggestions) GetByID(ctx context.Context, suggestionID int64) (*model.Suggestion, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	sug, ok := s.m.suggestions[suggestionID]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneSuggestion(sug), nil
}

func (s *memorySuggestions) ListByProject(ctx context.Context, projectID int64, status *model.SuggestionStatus) ([]model.Suggestion, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	var out []model.Suggestion
	for _, sug := range s.m.suggestions {
		if sug.ProjectID != projectID {
			continue
		}
		if status != nil && sug.Status != *status {
			continue
		}
		out = append(out, *cloneSuggestion(sug))
	}

	// Newest first, matching the relational adapter's ordering.
	slices.SortFunc(out, func(a, b model.Suggestion) int {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			if a.CreatedAt.After(b.CreatedAt) {
				return -1
			}
			return 1
		}
		switch {
		case a.ID > b.ID:
			return -1
		case a.ID < b.ID:
			return 1
		}
		return 0
	})
	return out, nil
}

func (s *memorySuggestions) Create(ctx context.Context, sug *model.Suggestion) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	for _, existing := range s.m.suggestions {
		if existing.ProjectID == sug.ProjectID && existing.Title == sug.Title {
			// Duplicate (project, title): benign no-op.
			return nil
		}
	}

	cp := cloneSuggestion(sug)
	if cp.ID == 0 {
		cp.ID = id.New()
	}
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now().UTC()
	}
	s.m.suggestions[cp.ID] = cp
	*sug = *cloneSuggestion(cp)
	return nil
}

func (s *memorySuggestions) Update(ctx context.Context, sug *model.Suggestion) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	existing, ok := s.m.suggestions[sug.ID]
	if !ok {
		return ErrNotFound
	}
	existing.Status = sug.Status
	existing.AddressedAt = sug.AddressedAt
	existing.AddressedInVersion = sug.AddressedInVersion
	return nil
}

type memoryVersions struct{ m *Memory }

var _ VersionStore = &memoryVersions{}

func (s *memoryVersions) GetLatest(ctx context.Context, projectID int64) (*model.DesignVersion, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	var latest *model.DesignVersion
	for _, v := range s.m.versions[projectID] {
		if latest == nil || v.VersionNumber > latest.VersionNumber {
			latest = v
		}
	}
	if latest == nil {
		return nil, ErrNotFound
	}
	cp := *latest
	return &cp, nil
}

func (s *memoryVersions) Get(ctx context.Context, projectID int64, versionNumber int) (*model.DesignVersion, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	v, ok := s.m.versions[projectID][versionNumber]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *v
	return &cp, nil
}

func (s *memoryVersions) Upsert(ctx context.Context, v *model.DesignVersion) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	byNumber, ok := s.m.versions[v.ProjectID]
	if !ok {
		byNumber = make(map[int]*model.DesignVersion)
		s.m.versions[v.ProjectID] = byNumber
	}

	if existing, ok := byNumber[v.VersionNumber]; ok {
		// Re-analysis of the same version updates the snapshot in place.
		existing.Content = v.Content
		existing.MaturityScore = v.MaturityScore
		existing.SuggestionsCount = v.SuggestionsCount
		return nil
	}

	cp := *v
	if cp.ID == 0 {
		cp.ID = id.New()
	}
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now().UTC()
	}
	byNumber[cp.VersionNumber] = &cp
	return nil
}

func (s *memoryVersions) ListByProject(ctx context.Context, projectID int64) ([]model.DesignVersion, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	var out []model.DesignVersion
	for _, v := range s.m.versions[projectID] {
		out = append(out, *v)
	}
	slices.SortFunc(out, func(a, b model.DesignVersion) int {
		return a.VersionNumber - b.VersionNumber
	})
	return out, nil
}

func cloneSuggestion(s *model.Suggestion) *model.Suggestion {
	cp := *s
	cp.TriggerKeywords = slices.Clone(s.TriggerKeywords)
	if s.AddressedAt != nil {
		t := *s.AddressedAt
		cp.AddressedAt = &t
	}
	if s.AddressedInVersion != nil {
		v := *s.AddressedInVersion
		cp.AddressedInVersion = &v
	}
	return &cp
}
