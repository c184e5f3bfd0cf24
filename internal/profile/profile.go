// Package profile extracts a structured candidate profile from resume text
// through an external language model.
package profile

import (
	"github.com/pbessa/jobradar/internal/classify"
)

// Profile is the candidate profile consumed by the scorer.
type Profile struct {
	Area              string             `json:"area"`
	Seniority         classify.Seniority `json:"seniority"`
	Skills            []string           `json:"skills"`
	SoftSkills        []string           `json:"soft_skills"`
	YearsExperience   int                `json:"years_experience"`
	Keywords          []string           `json:"keywords"`
	PreviousCompanies []string           `json:"previous_companies,omitempty"`
}

// raw mirrors the JSON shape the model is instructed to return.
type raw struct {
	Area              string   `json:"area"`
	Seniority         string   `json:"seniority"`
	Skills            []string `json:"skills"`
	SoftSkills        []string `json:"soft_skills"`
	YearsExperience   int      `json:"years_experience"`
	Keywords          []string `json:"keywords"`
	PreviousCompanies []string `json:"previous_companies"`
}

func (r *raw) toProfile() *Profile {
	area := r.Area
	if area == "" {
		area = "Backend"
	}

	return &Profile{
		Area: area,
		// Boundary rule: an unrecognized seniority becomes Pleno here and
		// only here.
		Seniority:         classify.ParseSeniority(r.Seniority),
		Skills:            r.Skills,
		SoftSkills:        r.SoftSkills,
		YearsExperience:   r.YearsExperience,
		Keywords:          r.Keywords,
		PreviousCompanies: r.PreviousCompanies,
	}
}
