package model

import (
	"fmt"
	"strings"
	"time"
)

type ProjectStatus string

const (
	ProjectStatusDraft      ProjectStatus = "DRAFT"
	ProjectStatusInProgress ProjectStatus = "IN_PROGRESS"
	ProjectStatusAnalyzed   ProjectStatus = "ANALYZED"
)

func ParseProjectStatus(s string) (ProjectStatus, error) {
	st := ProjectStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case ProjectStatusDraft, ProjectStatusInProgress, ProjectStatusAnalyzed:
		return st, nil
	}
	return "", fmt.Errorf("invalid project status %q", s)
}

// Project is the externally owned aggregate. The analysis engine reads the
// current design content and writes back the version pointer, maturity fields
// and status after a run; identity and ownership live with the caller.
type Project struct {
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
	DesignContent    string        `json:"design_content"`
	MaturityReason   string        `json:"maturity_reason"`
	Status           ProjectStatus `json:"status"`
	ID               int64         `json:"id,string"`
	DesignVersionNum int           `json:"design_version"`
	MaturityScore    int           `json:"maturity_score"`
}
