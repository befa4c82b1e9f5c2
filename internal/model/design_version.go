package model

import "time"

// DesignVersion is a snapshot of a project's design document at one analyzed
// revision. (project_id, version_number) is unique; re-analysis of unchanged
// content updates the existing snapshot in place instead of inserting a new one.
type DesignVersion struct {
	CreatedAt        time.Time `json:"created_at"`
	Content          string    `json:"content"`
	ID               int64     `json:"id,string"`
	ProjectID        int64     `json:"project_id,string"`
	VersionNumber    int       `json:"version_number"`
	MaturityScore    int       `json:"maturity_score"`
	SuggestionsCount int       `json:"suggestions_count"`
}
