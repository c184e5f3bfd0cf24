// Package pipeline wires collection, persistence and scoring together. The
// crawl side feeds the store, the match side reads it back.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pbessa/jobradar/internal/aggregate"
	"github.com/pbessa/jobradar/internal/job"
	"github.com/pbessa/jobradar/internal/profile"
	"github.com/pbessa/jobradar/internal/scoring"
	"github.com/pbessa/jobradar/internal/source"
)

// CrawlResult summarizes a crawl run.
type CrawlResult struct {
	Collected int
	New       int
	Total     int
	Statuses  []aggregate.Status
}

// Crawl searches every registered source, merges the results into the store
// at storePath and persists it. Postings already in the store win over fresh
// duplicates.
func Crawl(ctx context.Context, logger *zap.Logger, agg *aggregate.Aggregator, storePath string, q source.Query) (*CrawlResult, error) {
	existing, err := job.Load(storePath)
	if err != nil {
		return nil, err
	}

	collected, statuses := agg.Aggregate(ctx, q)

	merged := job.Merge(existing, collected)
	if err := job.Save(merged, storePath); err != nil {
		return nil, err
	}

	result := &CrawlResult{
		Collected: len(collected),
		New:       len(merged) - len(existing),
		Total:     len(merged),
		Statuses:  statuses,
	}
	logger.Info("crawl finished",
		zap.Int("collected", result.Collected),
		zap.Int("new", result.New),
		zap.Int("total", result.Total),
	)

	return result, nil
}

// Match loads the store at storePath and ranks its postings against the
// profile. Matches below minScore are dropped.
func Match(storePath string, p *profile.Profile, minScore float64) ([]*job.Match, error) {
	postings, err := job.Load(storePath)
	if err != nil {
		return nil, err
	}
	if len(postings) == 0 {
		return nil, fmt.Errorf("job store %q is empty, run crawl first", storePath)
	}

	return scoring.Rank(p, postings, minScore), nil
}
