package pipeline

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pbessa/jobradar/internal/aggregate"
	"github.com/pbessa/jobradar/internal/classify"
	"github.com/pbessa/jobradar/internal/job"
	"github.com/pbessa/jobradar/internal/profile"
	"github.com/pbessa/jobradar/internal/source"
)

type fakeSource struct {
	name     string
	postings []*job.Posting
	err      error
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Search(context.Context, source.Query) ([]*job.Posting, error) {
	return f.postings, f.err
}

func posting(link, title string, skills ...string) *job.Posting {
	return &job.Posting{
		ID:             link,
		Title:          title,
		SourceLink:     link,
		SkillsDetected: skills,
		Seniority:      classify.SenioritySenior,
	}
}

func TestCrawlPersistsMergedStore(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "jobs.json")
	require.NoError(t, job.Save([]*job.Posting{posting("a", "Existing")}, storePath))

	agg := aggregate.New(zap.NewNop(),
		&fakeSource{name: "one", postings: []*job.Posting{posting("a", "Duplicate"), posting("b", "Fresh")}},
		&fakeSource{name: "two", err: errors.New("boom")},
	)

	result, err := Crawl(context.Background(), zap.NewNop(), agg, storePath, source.Query{})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Collected)
	assert.Equal(t, 1, result.New)
	assert.Equal(t, 2, result.Total)
	require.Len(t, result.Statuses, 2)
	assert.Error(t, result.Statuses[1].Err)

	stored, err := job.Load(storePath)
	require.NoError(t, err)
	require.Len(t, stored, 2)
	// The record already in the store wins over the freshly crawled duplicate.
	assert.Equal(t, "Existing", stored[0].Title)
}

func TestCrawlWithEmptyStoreFile(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "jobs.json")

	agg := aggregate.New(zap.NewNop(),
		&fakeSource{name: "one", postings: []*job.Posting{posting("a", "Fresh")}},
	)

	result, err := Crawl(context.Background(), zap.NewNop(), agg, storePath, source.Query{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.New)
	assert.Equal(t, 1, result.Total)
}

func TestMatchRanksStoredPostings(t *testing.T) {
	storePath := filepath.Join(t.TempDir(), "jobs.json")
	require.NoError(t, job.Save([]*job.Posting{
		posting("a", "Backend Engineer", "Python", "Go"),
		posting("b", "Frontend Engineer", "React"),
	}, storePath))

	p := &profile.Profile{
		Area:      "Backend",
		Seniority: classify.SenioritySenior,
		Skills:    []string{"Python", "Go"},
	}

	matches, err := Match(storePath, p, 0.7)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "a", matches[0].Posting.SourceLink)
	assert.Greater(t, matches[0].Score, 0.7)
}

func TestMatchEmptyStoreFails(t *testing.T) {
	_, err := Match(filepath.Join(t.TempDir(), "jobs.json"), &profile.Profile{}, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run crawl first")
}
