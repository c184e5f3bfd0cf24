package careers

import "strings"

// atsSignature pairs an applicant tracking system with the markup
// substrings that betray it.
type atsSignature struct {
	name       string
	signatures []string
}

// Order matters: the first signature matched wins, so vendors with more
// specific markers come first.
var atsSignatures = []atsSignature{
	{"Greenhouse", []string{"boards.greenhouse.io", "greenhouse_config"}},
	{"Gupy", []string{"gupy", "GUPY_CONFIG"}},
	{"Lever", []string{"lever.co", "lever_config"}},
	{"Workable", []string{"workable.com", "workable_config"}},
	{"Kenoby", []string{"kenoby", "kenoby_config"}},
}

// DetectATS matches known ATS signatures against raw page content,
// case-insensitively. Returns the vendor name or "" when nothing matched.
// The result is informational metadata only and never gates extraction.
func DetectATS(html string) string {
	lower := strings.ToLower(html)
	for _, ats := range atsSignatures {
		for _, signature := range ats.signatures {
			if strings.Contains(lower, strings.ToLower(signature)) {
				return ats.name
			}
		}
	}
	return ""
}
