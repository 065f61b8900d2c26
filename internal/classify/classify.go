// Package classify holds the keyword heuristics applied to visitor queries.
// Matching is case-insensitive substring search in a fixed order; the first
// rule that matches wins.
package classify

import (
	"strings"

	"portfolio-chat/internal/domain"
)

const (
	SectionSummary         = "summary"
	SectionSkills          = "skills"
	SectionTechnicalSkills = "technicalSkills"
	SectionSoftSkills      = "softSkills"
	SectionWorkExperience  = "workExperience"
	SectionProjects        = "projects"
	SectionEducation       = "education"
	SectionCertifications  = "certifications"
	SectionContact         = "contact"
)

// IsResumeQuery reports whether the visitor is asking for the resume document.
func IsResumeQuery(query string) bool {
	return containsAny(strings.ToLower(query),
		"resume", "cv", "curriculum vitae", "download resume")
}

// SectionKey maps a query to a portfolio section, or "" when nothing matches.
func SectionKey(query string) string {
	q := strings.ToLower(query)
	switch {
	case strings.Contains(q, "project"):
		return SectionProjects
	case strings.Contains(q, "skill") && strings.Contains(q, "technical"):
		return SectionTechnicalSkills
	case strings.Contains(q, "skill") && strings.Contains(q, "soft"):
		return SectionSoftSkills
	case strings.Contains(q, "skill"):
		return SectionSkills
	case containsAny(q, "work", "intern", "experience"):
		return SectionWorkExperience
	case containsAny(q, "education", "degree", "college"):
		return SectionEducation
	case containsAny(q, "certification", "course"):
		return SectionCertifications
	case containsAny(q, "contact", "email", "phone", "linkedin", "github"):
		return SectionContact
	case containsAny(q, "summary", "about"):
		return SectionSummary
	}
	return ""
}

func IsSimpleExplanationQuery(query string) bool {
	return containsAny(strings.ToLower(query), "explain", "describe", "summary", "simple")
}

func IsTechQuery(query string) bool {
	return containsAny(strings.ToLower(query), "tech", "technology", "stack", "tools")
}

func IsImpactQuery(query string) bool {
	return containsAny(strings.ToLower(query), "impact", "achievement", "result", "award", "win")
}

// FindProject returns the first project whose name contains the query.
func FindProject(query string, projects []domain.Project) (domain.Project, bool) {
	q := strings.ToLower(query)
	for _, p := range projects {
		if strings.Contains(strings.ToLower(p.Name), q) {
			return p, true
		}
	}
	return domain.Project{}, false
}

// Hints is the outcome of every heuristic for one query.
type Hints struct {
	Resume            bool
	Section           string
	SimpleExplanation bool
	Tech              bool
	Impact            bool
	Project           string
}

func Analyze(query string, projects []domain.Project) Hints {
	h := Hints{
		Resume:            IsResumeQuery(query),
		Section:           SectionKey(query),
		SimpleExplanation: IsSimpleExplanationQuery(query),
		Tech:              IsTechQuery(query),
		Impact:            IsImpactQuery(query),
	}
	if p, ok := FindProject(query, projects); ok {
		h.Project = p.Name
	}
	return h
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
