package remoteok

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pbessa/jobradar/internal/classify"
	"github.com/pbessa/jobradar/internal/source"
)

const apiPayload = `[
  {"legal": "API terms of service apply"},
  {
    "position": "Senior Python Engineer",
    "company": "Acme",
    "description": "Django and AWS heavy backend work",
    "tags": ["python", "django"],
    "location": "Worldwide",
    "url": "https://remoteok.com/jobs/1",
    "salary_min": 70000,
    "salary_max": 110000
  },
  {
    "position": "React Developer",
    "company": "Globex",
    "description": "Frontend only",
    "tags": ["react"],
    "location": "",
    "url": "https://remoteok.com/jobs/2"
  },
  {
    "position": "Pythonista at Initech",
    "company": "",
    "description": "Junior python role",
    "salary_min": "negotiable",
    "url": "https://remoteok.com/jobs/3"
  }
]`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := New(zap.NewNop(), "jobradar-test/1.0")
	client.APIURL = srv.URL
	return client
}

func TestSearchFiltersByKeyword(t *testing.T) {
	var gotUserAgent string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Write([]byte(apiPayload))
	})

	postings, err := client.Search(context.Background(), source.Query{
		Keywords:   []string{"python"},
		MaxResults: 10,
	})
	require.NoError(t, err)

	// The React job does not match; the entry with a bogus salary is skipped.
	require.Len(t, postings, 1)
	assert.Equal(t, "Senior Python Engineer", postings[0].Title)
	assert.Equal(t, "Acme", postings[0].Company)
	assert.Equal(t, "https://remoteok.com/jobs/1", postings[0].SourceLink)
	assert.Equal(t, classify.SenioritySenior, postings[0].Seniority)
	assert.Contains(t, postings[0].SkillsDetected, "Django")
	require.NotNil(t, postings[0].SalaryMin)
	assert.Equal(t, 70000.0, *postings[0].SalaryMin)
	assert.Equal(t, "jobradar-test/1.0", gotUserAgent)
}

func TestSearchRespectsMaxResults(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(apiPayload))
	})

	postings, err := client.Search(context.Background(), source.Query{
		Keywords:   []string{"python", "react"},
		MaxResults: 1,
	})
	require.NoError(t, err)
	assert.Len(t, postings, 1)
}

func TestSearchUnsetMaxResultsStillCollects(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(apiPayload))
	})

	// A query without an explicit cap falls back to the shared default
	// instead of collecting nothing.
	postings, err := client.Search(context.Background(), source.Query{
		Keywords: []string{"python"},
	})
	require.NoError(t, err)
	require.Len(t, postings, 1)
	assert.Equal(t, "Senior Python Engineer", postings[0].Title)
}

func TestSearchBadStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	})

	_, err := client.Search(context.Background(), source.Query{Keywords: []string{"python"}, MaxResults: 5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad status")
}

func TestSearchMalformedTopLevelResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("<html>blocked</html>"))
	})

	_, err := client.Search(context.Background(), source.Query{Keywords: []string{"python"}, MaxResults: 5})
	require.Error(t, err)
}
