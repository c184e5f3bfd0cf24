// Package scoring computes the weighted match score between a candidate
// profile and a job posting. Scoring is deterministic and pure so the
// ranked output is reproducible for the same store.
package scoring

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pbessa/jobradar/internal/classify"
	"github.com/pbessa/jobradar/internal/job"
	"github.com/pbessa/jobradar/internal/profile"
)

// Component weights. They sum to 1.0 so the final score stays in [0, 1].
const (
	SkillsWeight    = 0.5
	SeniorityWeight = 0.3
	KeywordsWeight  = 0.2
)

// neutral is the component value used when one side carries no signal:
// absence of data must not read as a mismatch.
const neutral = 0.5

// Score rates posting against p and builds the human-readable rationale.
func Score(p *profile.Profile, posting *job.Posting) *job.Match {
	skillComponent, overlapping := skillOverlap(p.Skills, posting.SkillsDetected)
	seniorityComponent := seniorityScore(p.Seniority, posting.Seniority)
	keywordComponent := keywordRelevance(p.Keywords, posting.Description)

	score := SkillsWeight*skillComponent +
		SeniorityWeight*seniorityComponent +
		KeywordsWeight*keywordComponent

	return &job.Match{
		Posting:           posting,
		Score:             score,
		OverlappingSkills: overlapping,
		Rationale:         buildRationale(p, posting, overlapping, seniorityComponent, keywordComponent),
	}
}

// skillOverlap measures how much of the job's stated skills the candidate
// covers. The denominator is deliberately the job's skill count, not the
// union: a candidate with many extra skills is not penalized for them.
// An empty detected-skill set scores neutral, since it usually reflects
// extraction failure rather than true irrelevance.
func skillOverlap(candidateSkills, jobSkills []string) (float64, []string) {
	overlapping := overlap(candidateSkills, jobSkills)

	if len(jobSkills) == 0 {
		return neutral, overlapping
	}

	score := float64(len(overlapping)) / float64(len(jobSkills))
	return clamp(score), overlapping
}

// overlap returns the candidate skills also present in the job's detected
// skills, case-insensitively, preserving the candidate's order.
func overlap(candidateSkills, jobSkills []string) []string {
	jobSet := make(map[string]struct{}, len(jobSkills))
	for _, skill := range jobSkills {
		jobSet[strings.ToLower(skill)] = struct{}{}
	}

	var common []string
	seen := make(map[string]struct{}, len(candidateSkills))
	for _, skill := range candidateSkills {
		folded := strings.ToLower(skill)
		if _, dup := seen[folded]; dup {
			continue
		}
		seen[folded] = struct{}{}
		if _, ok := jobSet[folded]; ok {
			common = append(common, skill)
		}
	}

	return common
}

// seniorityScore is a fixed lookup on level distance, not a formula: the
// exact-match reward is deliberately much higher than a linear decay would
// give. Unspecified posting seniority scores neutral.
func seniorityScore(candidate, posting classify.Seniority) float64 {
	if posting == classify.SeniorityUnspecified {
		return neutral
	}

	candidateLevel, ok := classify.Levels[candidate]
	if !ok {
		candidateLevel = classify.Levels[classify.SeniorityPleno]
	}
	postingLevel, ok := classify.Levels[posting]
	if !ok {
		postingLevel = classify.Levels[classify.SeniorityPleno]
	}

	distance := candidateLevel - postingLevel
	if distance < 0 {
		distance = -distance
	}

	switch distance {
	case 0:
		return 1.0
	case 1:
		return 0.8
	case 2:
		return 0.5
	default:
		return 0.2
	}
}

// keywordRelevance counts how many profile keywords appear in the posting
// description, case-insensitively.
func keywordRelevance(keywords []string, description string) float64 {
	if len(keywords) == 0 || description == "" {
		return neutral
	}

	lower := strings.ToLower(description)
	matched := 0
	for _, keyword := range keywords {
		if strings.Contains(lower, strings.ToLower(keyword)) {
			matched++
		}
	}

	return clamp(float64(matched) / float64(len(keywords)))
}

// buildRationale assembles the justification in a fixed order so output is
// stable: overlapping skills first, then a seniority note, then a relevance
// note, with a neutral fallback when nothing applies.
func buildRationale(p *profile.Profile, posting *job.Posting, overlapping []string, seniorityComponent, keywordComponent float64) string {
	var reasons []string

	if len(overlapping) > 0 {
		top := overlapping
		if len(top) > 3 {
			top = top[:3]
		}
		reasons = append(reasons, fmt.Sprintf("%d matching skills: %s", len(overlapping), strings.Join(top, ", ")))
	}
	if seniorityComponent > 0.7 {
		reasons = append(reasons, fmt.Sprintf("seniority compatible (%s -> %s)", p.Seniority, posting.Seniority))
	}
	if keywordComponent > 0.5 {
		reasons = append(reasons, "description aligned with your profile")
	}

	if len(reasons) == 0 {
		return "profile partially aligned"
	}
	return strings.Join(reasons, "; ")
}

// Rank scores every posting and sorts matches by score descending. The
// sort is stable, so ties preserve the store's insertion order. Matches
// below minScore are dropped when minScore > 0.
func Rank(p *profile.Profile, postings []*job.Posting, minScore float64) []*job.Match {
	matches := make([]*job.Match, 0, len(postings))
	for _, posting := range postings {
		matches = append(matches, Score(p, posting))
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if minScore <= 0 {
		return matches
	}

	kept := matches[:0]
	for _, match := range matches {
		if match.Score >= minScore {
			kept = append(kept, match)
		}
	}
	return kept
}

func clamp(v float64) float64 {
	if v > 1.0 {
		return 1.0
	}
	if v < 0 {
		return 0
	}
	return v
}
