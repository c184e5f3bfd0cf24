// Package aggregate runs every registered source adapter and combines their
// output. A failing adapter contributes nothing; it never aborts the run.
package aggregate

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/pbessa/jobradar/internal/job"
	"github.com/pbessa/jobradar/internal/source"
)

// DefaultSourceTimeout bounds one adapter invocation so a hanging provider
// cannot stall the whole run.
const DefaultSourceTimeout = 30 * time.Second

// Status summarizes one adapter's contribution to a run.
type Status struct {
	Source   string
	Count    int
	Err      error
	Duration time.Duration
}

type Aggregator struct {
	sources       []source.Source
	logger        *zap.Logger
	SourceTimeout time.Duration
}

// New creates an aggregator over the given adapters. Registration order is
// preserved in the combined output.
func New(logger *zap.Logger, sources ...source.Source) *Aggregator {
	return &Aggregator{
		sources:       sources,
		logger:        logger,
		SourceTimeout: DefaultSourceTimeout,
	}
}

// Aggregate invokes every adapter sequentially with the same query and
// concatenates the results in registration order. Deduplication is left to
// the job store merge. The returned statuses are the per-source summary.
func (a *Aggregator) Aggregate(ctx context.Context, q source.Query) ([]*job.Posting, []Status) {
	combined := make([]*job.Posting, 0, q.MaxResults*len(a.sources))
	statuses := make([]Status, 0, len(a.sources))

	for _, src := range a.sources {
		postings, status := a.runSource(ctx, src, q)
		statuses = append(statuses, status)

		if status.Err != nil {
			a.logger.Warn("source failed",
				zap.String("source", status.Source),
				zap.Duration("duration", status.Duration),
				zap.Error(status.Err),
			)
			continue
		}

		combined = append(combined, postings...)

		a.logger.Info("source completed",
			zap.String("source", status.Source),
			zap.Int("postings", status.Count),
			zap.Duration("duration", status.Duration),
		)
	}

	a.logger.Info("aggregation finished",
		zap.Int("sources", len(a.sources)),
		zap.Int("total_postings", len(combined)),
	)

	return combined, statuses
}

func (a *Aggregator) runSource(ctx context.Context, src source.Source, q source.Query) ([]*job.Posting, Status) {
	sourceCtx, cancel := context.WithTimeout(ctx, a.SourceTimeout)
	defer cancel()

	start := time.Now()
	postings, err := src.Search(sourceCtx, q)

	return postings, Status{
		Source:   src.Name(),
		Count:    len(postings),
		Err:      err,
		Duration: time.Since(start),
	}
}
