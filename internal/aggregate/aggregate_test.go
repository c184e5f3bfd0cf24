package aggregate

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pbessa/jobradar/internal/job"
	"github.com/pbessa/jobradar/internal/source"
)

type fakeSource struct {
	name     string
	postings []*job.Posting
	err      error
	delay    time.Duration
	gotQuery source.Query
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Search(ctx context.Context, q source.Query) ([]*job.Posting, error) {
	f.gotQuery = q
	if f.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(f.delay):
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.postings, nil
}

func posting(link string) *job.Posting {
	return &job.Posting{ID: link, SourceLink: link}
}

func TestAggregateFailureIsolation(t *testing.T) {
	first := &fakeSource{name: "one", postings: []*job.Posting{posting("a"), posting("b")}}
	broken := &fakeSource{name: "two", err: errors.New("rate limited")}
	third := &fakeSource{name: "three", postings: []*job.Posting{posting("c")}}

	agg := New(zap.NewNop(), first, broken, third)

	combined, statuses := agg.Aggregate(context.Background(), source.Query{Keywords: []string{"go"}, MaxResults: 10})

	// Concatenation of the two successful lists, in registration order.
	require.Len(t, combined, 3)
	assert.Equal(t, "a", combined[0].SourceLink)
	assert.Equal(t, "b", combined[1].SourceLink)
	assert.Equal(t, "c", combined[2].SourceLink)

	require.Len(t, statuses, 3)
	assert.Equal(t, "one", statuses[0].Source)
	assert.Equal(t, 2, statuses[0].Count)
	assert.NoError(t, statuses[0].Err)
	assert.Error(t, statuses[1].Err)
	assert.Equal(t, 1, statuses[2].Count)
}

func TestAggregatePassesSameQueryToEverySource(t *testing.T) {
	first := &fakeSource{name: "one"}
	second := &fakeSource{name: "two"}

	q := source.Query{Keywords: []string{"python", "sql"}, MaxResults: 7}
	New(zap.NewNop(), first, second).Aggregate(context.Background(), q)

	assert.Equal(t, q, first.gotQuery)
	assert.Equal(t, q, second.gotQuery)
}

func TestAggregateTimeoutTruncatesSlowSource(t *testing.T) {
	slow := &fakeSource{name: "slow", delay: time.Second, postings: []*job.Posting{posting("never")}}
	fast := &fakeSource{name: "fast", postings: []*job.Posting{posting("ok")}}

	agg := New(zap.NewNop(), slow, fast)
	agg.SourceTimeout = 10 * time.Millisecond

	combined, statuses := agg.Aggregate(context.Background(), source.Query{MaxResults: 5})

	require.Len(t, combined, 1)
	assert.Equal(t, "ok", combined[0].SourceLink)
	assert.ErrorIs(t, statuses[0].Err, context.DeadlineExceeded)
	assert.NoError(t, statuses[1].Err)
}

func TestAggregateNoSources(t *testing.T) {
	combined, statuses := New(zap.NewNop()).Aggregate(context.Background(), source.Query{MaxResults: 5})
	assert.Empty(t, combined)
	assert.Empty(t, statuses)
}
