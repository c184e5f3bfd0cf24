// Package classify infers structured attributes (skills, seniority) from
// unstructured posting text. All functions are pure and shared by every
// source adapter so the vocabulary cannot drift between providers.
package classify

import "strings"

// Seniority is an ordered experience level. The zero value means the level
// could not be detected, which is a distinct state from a detected Pleno.
type Seniority string

const (
	SeniorityUnspecified Seniority = ""
	SeniorityJunior      Seniority = "Junior"
	SeniorityPleno       Seniority = "Pleno"
	SenioritySenior      Seniority = "Senior"
	SeniorityLead        Seniority = "Lead"
)

// Levels maps each recognized seniority to its ordinal position.
var Levels = map[Seniority]int{
	SeniorityJunior: 0,
	SeniorityPleno:  1,
	SenioritySenior: 2,
	SeniorityLead:   3,
}

// ParseSeniority normalizes an arbitrary string to a recognized level.
// Unrecognized values fall back to Pleno, which is the boundary rule for
// profile construction only; adapters must use DetectSeniority instead.
func ParseSeniority(s string) Seniority {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "junior":
		return SeniorityJunior
	case "pleno":
		return SeniorityPleno
	case "senior":
		return SenioritySenior
	case "lead":
		return SeniorityLead
	default:
		return SeniorityPleno
	}
}

// vocabulary is the fixed reference list of technology terms recognized by
// DetectSkills. Matching is a case-insensitive substring test, no fuzziness.
var vocabulary = []string{
	"Python", "JavaScript", "TypeScript", "Java", "C#", "PHP",
	"Django", "FastAPI", "Flask", "Node.js", "React", "Vue",
	"AWS", "Docker", "Kubernetes", "PostgreSQL", "MongoDB",
	"Git", "REST API", "GraphQL", "SQL", "Linux",
	"Go", "Rust", "Ruby", "Rails", "Laravel",
	"Airflow", "PySpark", "Spark", "Databricks",
	"Pandas", "NumPy", "Scikit-learn", "TensorFlow", "PyTorch",
	"Machine Learning", "Deep Learning", "Data Science",
	"Data Engineer", "Backend", "Frontend", "Full Stack",
	"DevOps", "Cloud", "Microservices", "API", "Database",
}

// Seniority indicators, evaluated in fixed precedence order. Descriptions
// often carry words from several groups ("senior-friendly, junior OK"), so
// the first group with any hit wins and the result stays deterministic.
var (
	seniorIndicators = []string{"senior", "staff", "lead", "principal", "sr."}
	plenoIndicators  = []string{"mid-level", "pleno", "mid", "intermediate", "mid-senior"}
	juniorIndicators = []string{"junior", "entry", "trainee", "jr.", "estagiario", "entry-level"}
)

// DetectSkills returns the subset of the reference vocabulary present in
// text. The result preserves vocabulary order; callers that need set
// semantics already get them since each term appears at most once.
func DetectSkills(text string) []string {
	lower := strings.ToLower(text)

	var found []string
	for _, skill := range vocabulary {
		if strings.Contains(lower, strings.ToLower(skill)) {
			found = append(found, skill)
		}
	}

	return found
}

// DetectSeniority searches text for seniority indicators. It returns
// SeniorityUnspecified when no group matches; adapters never default the
// level themselves.
func DetectSeniority(text string) Seniority {
	lower := strings.ToLower(text)

	for _, groups := range []struct {
		level      Seniority
		indicators []string
	}{
		{SenioritySenior, seniorIndicators},
		{SeniorityPleno, plenoIndicators},
		{SeniorityJunior, juniorIndicators},
	} {
		for _, indicator := range groups.indicators {
			if strings.Contains(lower, indicator) {
				return groups.level
			}
		}
	}

	return SeniorityUnspecified
}
