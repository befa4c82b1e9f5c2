package model

import (
	"fmt"
	"strings"
	"time"
)

// Category classifies the architectural concern a suggestion belongs to.
type Category string

const (
	CategoryCaching     Category = "CACHING"
	CategoryScalability Category = "SCALABILITY"
	CategorySecurity    Category = "SECURITY"
	CategoryReliability Category = "RELIABILITY"
	CategoryPerformance Category = "PERFORMANCE"
	CategoryDatabase    Category = "DATABASE"
	CategoryAPIDesign   Category = "API_DESIGN"
	CategoryGeneral     Category = "GENERAL"
)

// ParseCategory normalizes s to uppercase and rejects anything outside the
// closed category set.
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(s)))
	switch c {
	case CategoryCaching, CategoryScalability, CategorySecurity, CategoryReliability,
		CategoryPerformance, CategoryDatabase, CategoryAPIDesign, CategoryGeneral:
		return c, nil
	}
	return "", fmt.Errorf("invalid category %q", s)
}

type Severity string

const (
	SeverityInfo     Severity = "INFO"
	SeverityWarning  Severity = "WARNING"
	SeverityCritical Severity = "CRITICAL"
)

func ParseSeverity(s string) (Severity, error) {
	sev := Severity(strings.ToUpper(strings.TrimSpace(s)))
	switch sev {
	case SeverityInfo, SeverityWarning, SeverityCritical:
		return sev, nil
	}
	return "", fmt.Errorf("invalid severity %q", s)
}

type SuggestionStatus string

const (
	SuggestionStatusOpen      SuggestionStatus = "OPEN"
	SuggestionStatusAddressed SuggestionStatus = "ADDRESSED"
	SuggestionStatusIgnored   SuggestionStatus = "IGNORED"
)

func ParseSuggestionStatus(s string) (SuggestionStatus, error) {
	st := SuggestionStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch st {
	case SuggestionStatusOpen, SuggestionStatusAddressed, SuggestionStatusIgnored:
		return st, nil
	}
	return "", fmt.Errorf("invalid suggestion status %q", s)
}

// Suggestion is the persisted, lifecycle-managed record derived from an
// analysis finding. At most one suggestion exists per (project, title) for
// the whole lifetime of the project, regardless of status.
type Suggestion struct {
	CreatedAt          time.Time        `json:"created_at"`
	Title              string           `json:"title"`
	Description        string           `json:"description"`
	Category           Category         `json:"category"`
	Severity           Severity         `json:"severity"`
	Status             SuggestionStatus `json:"status"`
	TriggerKeywords    []string         `json:"trigger_keywords"`
	AddressedAt        *time.Time       `json:"addressed_at,omitempty"`
	AddressedInVersion *int             `json:"addressed_in_version,omitempty"`
	ID                 int64            `json:"id,string"`
	ProjectID          int64            `json:"project_id,string"`
	DesignVersion      int              `json:"design_version"`
}
