// Package job defines the canonical posting record produced by every source
// adapter, the match result of the scorer, and the on-disk store.
package job

import "github.com/pbessa/jobradar/internal/classify"

// DescriptionPreviewLimit bounds the short description carried by a posting.
// The unbounded text lives in FullRequirements.
const DescriptionPreviewLimit = 500

// Posting is the normalized job record. Postings are immutable once created
// by an adapter; the store never merges two records field by field, it keeps
// the one it saw first (SourceLink is the identity key).
type Posting struct {
	ID               string             `json:"id"`
	Company          string             `json:"company"`
	Title            string             `json:"title"`
	Description      string             `json:"description"`
	FullRequirements string             `json:"full_requirements"`
	SkillsDetected   []string           `json:"skills_detected"`
	Seniority        classify.Seniority `json:"seniority,omitempty"`
	Location         string             `json:"location"`
	SourceLink       string             `json:"source_link"`
	CollectedDate    string             `json:"collected_date"`
	ATSSystem        string             `json:"ats_system,omitempty"`
	CompanyURL       string             `json:"company_url,omitempty"`
	SalaryMin        *float64           `json:"salary_min,omitempty"`
	SalaryMax        *float64           `json:"salary_max,omitempty"`
}

// Match pairs a posting with its score against a candidate profile. Matches
// are derived values, recomputed on demand and never persisted.
type Match struct {
	Posting           *Posting `json:"posting"`
	Score             float64  `json:"score"`
	OverlappingSkills []string `json:"overlapping_skills"`
	Rationale         string   `json:"rationale"`
}

// Preview truncates text to the description preview limit.
func Preview(text string) string {
	runes := []rune(text)
	if len(runes) <= DescriptionPreviewLimit {
		return text
	}
	return string(runes[:DescriptionPreviewLimit])
}
