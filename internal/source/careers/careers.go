// Package careers scrapes curated company careers pages. Retrieval is
// rate-limited and identified with a stable client identity so remote
// operators can tell the traffic apart; extraction goes through pluggable
// per-site strategies.
package careers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/pbessa/jobradar/internal/job"
	"github.com/pbessa/jobradar/internal/source"
)

// Minimum inter-request delay when crawling careers pages.
const requestInterval = time.Second

// Company is one entry of the curated careers directory.
type Company struct {
	Name       string `json:"name" mapstructure:"name"`
	URL        string `json:"url" mapstructure:"url"`
	CareersURL string `json:"careers_url" mapstructure:"careers_url"`
}

type Client struct {
	logger     *zap.Logger
	limiter    *rate.Limiter
	extractors []Extractor
	HTTPClient *http.Client
	UserAgent  string
	Companies  []Company
}

func New(logger *zap.Logger, userAgent string, companies []Company) *Client {
	return &Client{
		logger:     logger,
		limiter:    rate.NewLimiter(rate.Every(requestInterval), 1),
		extractors: DefaultExtractors(),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		UserAgent: userAgent,
		Companies: companies,
	}
}

func (c *Client) Name() string { return "careers" }

// WithExtractors replaces the extraction strategies, keeping their order.
func (c *Client) WithExtractors(extractors []Extractor) *Client {
	c.extractors = extractors
	return c
}

func (c *Client) Search(ctx context.Context, q source.Query) ([]*job.Posting, error) {
	limit := q.Limit()
	postings := make([]*job.Posting, 0, limit)
	failures := 0

	for _, company := range c.Companies {
		if len(postings) >= limit {
			break
		}

		found, err := c.crawlCompany(ctx, company, q)
		if err != nil {
			failures++
			c.logger.Warn("crawling careers page failed",
				zap.String("company", company.Name),
				zap.Error(err),
			)
			continue
		}

		remaining := limit - len(postings)
		if len(found) > remaining {
			found = found[:remaining]
		}
		postings = append(postings, found...)
	}

	if len(c.Companies) > 0 && failures == len(c.Companies) {
		return nil, fmt.Errorf("all %d careers pages failed", failures)
	}

	return postings, nil
}

func (c *Client) crawlCompany(ctx context.Context, company Company, q source.Query) ([]*job.Posting, error) {
	pageURL := company.CareersURL
	if pageURL == "" {
		pageURL = company.URL
	}

	html, err := c.fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	ats := DetectATS(html)

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var extracted []*job.Posting
	for _, extractor := range c.extractors {
		extracted = extractor.Extract(doc, company, pageURL)
		if len(extracted) > 0 {
			c.logger.Debug("extracted postings",
				zap.String("company", company.Name),
				zap.String("strategy", extractor.Name()),
				zap.Int("count", len(extracted)),
			)
			break
		}
	}

	kept := extracted[:0]
	for _, posting := range extracted {
		posting.ATSSystem = ats
		if !source.MatchesAnyKeyword(q.Keywords, posting.Title, posting.Description) {
			continue
		}
		kept = append(kept, posting)
	}

	return kept, nil
}

func (c *Client) fetch(ctx context.Context, pageURL string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("bad status: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return string(body), nil
}
