package adzuna

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pbessa/jobradar/internal/source"
)

const apiPayload = `{
  "results": [
    {
      "title": "Data Engineer Pleno",
      "description": "Airflow, Spark e SQL em ambiente cloud",
      "redirect_url": "https://adzuna.com/details/1",
      "company": {"display_name": "Initech", "url": "https://initech.br"},
      "location": {"display_name": "Sao Paulo"},
      "salary_min": 9000,
      "salary_max": 14000
    },
    {
      "title": "Missing link",
      "description": "no redirect url on this one"
    },
    {
      "title": "Broken salary",
      "description": "Python",
      "redirect_url": "https://adzuna.com/details/3",
      "salary_min": {"amount": 1}
    }
  ]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := New(zap.NewNop(), "jobradar-test/1.0", "app-id", "app-key")
	client.APIURL = srv.URL
	return client
}

func TestSearchSendsProviderQuery(t *testing.T) {
	var gotQuery map[string][]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(apiPayload))
	})

	postings, err := client.Search(context.Background(), source.Query{
		Keywords:   []string{"Airflow", "Spark"},
		MaxResults: 10,
	})
	require.NoError(t, err)

	assert.Equal(t, "Airflow OR Spark", gotQuery["what"][0])
	assert.Equal(t, "app-id", gotQuery["app_id"][0])
	assert.Equal(t, "brazil", gotQuery["where"][0])

	// Records without a link and records that fail to decode are skipped.
	require.Len(t, postings, 1)
	assert.Equal(t, "Data Engineer Pleno", postings[0].Title)
	assert.Equal(t, "Initech", postings[0].Company)
	assert.Contains(t, postings[0].SkillsDetected, "Airflow")
}

func TestSearchDefaultKeywordsWhenEmpty(t *testing.T) {
	var what string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		what = r.URL.Query().Get("what")
		w.Write([]byte(`{"results": []}`))
	})

	_, err := client.Search(context.Background(), source.Query{MaxResults: 5})
	require.NoError(t, err)
	assert.NotEmpty(t, what)
}

func TestSearchUnsetMaxResultsUsesDefaultPageSize(t *testing.T) {
	var perPage string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		perPage = r.URL.Query().Get("results_per_page")
		w.Write([]byte(apiPayload))
	})

	postings, err := client.Search(context.Background(), source.Query{Keywords: []string{"Airflow"}})
	require.NoError(t, err)
	assert.Equal(t, "50", perPage)
	assert.NotEmpty(t, postings)
}

func TestSearchServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	_, err := client.Search(context.Background(), source.Query{Keywords: []string{"go"}, MaxResults: 5})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad status")
}
