// Package rssfeeds aggregates job mentions from tech community RSS feeds.
// Feeds that fail to fetch or parse are skipped individually; the adapter
// only errors when no feed could be read at all.
package rssfeeds

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/gofeed"
	"go.uber.org/zap"

	"github.com/pbessa/jobradar/internal/classify"
	"github.com/pbessa/jobradar/internal/job"
	"github.com/pbessa/jobradar/internal/source"
)

// entriesPerFeed bounds how many items one feed can contribute before the
// global cap is applied.
const entriesPerFeed = 20

var defaultKeywords = []string{"Python", "Data", "Engineer", "Job"}

// Feed is one subscribed RSS/Atom source.
type Feed struct {
	Name string
	URL  string
}

// DefaultFeeds lists the community feeds polled when no custom list is
// configured.
var DefaultFeeds = []Feed{
	{Name: "Python Brasil", URL: "https://pybr.org.br/feed.xml"},
	{Name: "JavaScript Brasil", URL: "https://braziljs.org/feed.xml"},
	{Name: "Hacker News", URL: "https://news.ycombinator.com/rss"},
}

type Client struct {
	logger *zap.Logger
	parser *gofeed.Parser
	Feeds  []Feed
}

func New(logger *zap.Logger, userAgent string, feeds []Feed) *Client {
	parser := gofeed.NewParser()
	parser.UserAgent = userAgent

	if len(feeds) == 0 {
		feeds = DefaultFeeds
	}

	return &Client{
		logger: logger,
		parser: parser,
		Feeds:  feeds,
	}
}

func (c *Client) Name() string { return "rssfeeds" }

func (c *Client) Search(ctx context.Context, q source.Query) ([]*job.Posting, error) {
	keywords := q.Keywords
	if len(keywords) == 0 {
		keywords = defaultKeywords
	}

	limit := q.Limit()
	postings := make([]*job.Posting, 0, limit)
	failures := 0

	for _, feed := range c.Feeds {
		if len(postings) >= limit {
			break
		}

		parsed, err := c.parser.ParseURLWithContext(feed.URL, ctx)
		if err != nil {
			failures++
			c.logger.Warn("fetching feed failed",
				zap.String("feed", feed.Name),
				zap.Error(err),
			)
			continue
		}

		c.logger.Debug("parsed feed",
			zap.String("feed", feed.Name),
			zap.Int("entries", len(parsed.Items)),
		)

		taken := 0
		for _, entry := range parsed.Items {
			if len(postings) >= limit || taken >= entriesPerFeed {
				break
			}
			if entry == nil || entry.Link == "" {
				continue
			}

			// Feeds mix jobs with regular articles; keep an entry when a
			// keyword matches or it announces a vacancy outright.
			if !source.MatchesAnyKeyword(keywords, entry.Title, entry.Description) &&
				!source.MatchesAnyKeyword([]string{"vaga", "job", "hiring"}, entry.Title, entry.Description) {
				continue
			}

			postings = append(postings, c.toPosting(entry, feed))
			taken++
		}
	}

	if failures == len(c.Feeds) {
		return nil, fmt.Errorf("all %d feeds failed", failures)
	}

	return postings, nil
}

func (c *Client) toPosting(entry *gofeed.Item, feed Feed) *job.Posting {
	company := feed.Name
	if len(entry.Authors) > 0 && entry.Authors[0] != nil && entry.Authors[0].Name != "" {
		company = entry.Authors[0].Name
	}

	description := entry.Description
	if strings.TrimSpace(description) == "" {
		description = entry.Title
	}

	fullText := fmt.Sprintf("%s %s", entry.Title, entry.Description)

	return &job.Posting{
		ID:               uuid.NewString(),
		Company:          company,
		Title:            entry.Title,
		Description:      job.Preview(description),
		FullRequirements: entry.Description,
		SkillsDetected:   classify.DetectSkills(fullText),
		Seniority:        classify.DetectSeniority(fullText),
		Location:         "Remote",
		SourceLink:       entry.Link,
		CollectedDate:    time.Now().UTC().Format("2006-01-02"),
	}
}
