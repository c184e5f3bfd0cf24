// Package source defines the contract every job provider adapter implements
// and the keyword filtering shared between them.
package source

import (
	"context"
	"strings"

	"github.com/pbessa/jobradar/internal/job"
)

// DefaultMaxResults caps a search when the query does not carry its own
// limit.
const DefaultMaxResults = 50

// Query carries the search parameters passed to every adapter. An empty
// keyword list lets the adapter supply its own provider-appropriate default.
type Query struct {
	Keywords   []string
	MaxResults int
}

// Limit returns the effective per-source result cap: MaxResults when
// positive, DefaultMaxResults otherwise.
func (q Query) Limit() int {
	if q.MaxResults > 0 {
		return q.MaxResults
	}
	return DefaultMaxResults
}

// Source translates one external provider's data shape into canonical
// postings. Implementations return an error only for provider-level
// failures; the aggregator records it as a status and moves on, so an error
// here never aborts a run.
type Source interface {
	Name() string
	Search(ctx context.Context, q Query) ([]*job.Posting, error)
}

// MatchesAnyKeyword reports whether any keyword appears as a
// case-insensitive substring of any of the provided fields. Adapters use it
// to filter providers that return unfiltered results; an empty keyword list
// matches everything.
func MatchesAnyKeyword(keywords []string, fields ...string) bool {
	if len(keywords) == 0 {
		return true
	}

	var haystack strings.Builder
	for _, field := range fields {
		haystack.WriteString(strings.ToLower(field))
		haystack.WriteString(" ")
	}
	text := haystack.String()

	for _, keyword := range keywords {
		if strings.Contains(text, strings.ToLower(keyword)) {
			return true
		}
	}

	return false
}
