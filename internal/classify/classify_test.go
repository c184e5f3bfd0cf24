package classify

import "testing"

func TestDetectSkills(t *testing.T) {
	text := "We need a senior backend engineer with Python, Django and AWS. Docker is a plus."

	skills := DetectSkills(text)

	want := map[string]bool{"Python": true, "Django": true, "AWS": true, "Docker": true, "Backend": true}
	for _, skill := range skills {
		delete(want, skill)
	}
	if len(want) != 0 {
		t.Fatalf("missing skills in %v: %v", skills, want)
	}
}

func TestDetectSkillsCaseInsensitive(t *testing.T) {
	skills := DetectSkills("experience with POSTGRESQL and kubernetes")

	found := map[string]bool{}
	for _, skill := range skills {
		found[skill] = true
	}
	if !found["PostgreSQL"] || !found["Kubernetes"] {
		t.Fatalf("expected canonical names, got %v", skills)
	}
}

func TestDetectSkillsNoDuplicates(t *testing.T) {
	skills := DetectSkills("python python PYTHON")

	count := 0
	for _, skill := range skills {
		if skill == "Python" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected Python exactly once, got %v", skills)
	}
}

func TestDetectSeniorityPrecedence(t *testing.T) {
	cases := []struct {
		name string
		text string
		want Seniority
	}{
		{"senior wins over junior", "senior-friendly team, junior OK", SenioritySenior},
		{"pleno wins over junior", "mid-level or junior welcome", SeniorityPleno},
		{"junior alone", "entry level position for trainees", SeniorityJunior},
		{"staff counts as senior", "Staff Engineer", SenioritySenior},
		{"nothing detected", "great team, free coffee", SeniorityUnspecified},
		{"case insensitive", "SENIOR BACKEND", SenioritySenior},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := DetectSeniority(tc.text); got != tc.want {
				t.Fatalf("DetectSeniority(%q) = %q, want %q", tc.text, got, tc.want)
			}
		})
	}
}

func TestParseSeniorityDefaultsToPleno(t *testing.T) {
	if got := ParseSeniority("Principal Architect"); got != SeniorityPleno {
		t.Fatalf("unrecognized value should default to Pleno, got %q", got)
	}
	if got := ParseSeniority(" senior "); got != SenioritySenior {
		t.Fatalf("expected Senior, got %q", got)
	}
}
