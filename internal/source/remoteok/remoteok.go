// Package remoteok adapts the public RemoteOK jobs API. The endpoint
// returns every active posting in one response, so keyword filtering
// happens client-side.
package remoteok

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/pbessa/jobradar/internal/classify"
	"github.com/pbessa/jobradar/internal/job"
	"github.com/pbessa/jobradar/internal/source"
)

const apiURL = "https://remoteok.com/api"

var defaultKeywords = []string{"Python", "Data Engineer", "Backend"}

type Client struct {
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
}

// item mirrors one entry of the RemoteOK response. The first array element
// is a legal notice without position/url, which decodes to an empty item
// and is dropped by the link check.
type item struct {
	Position    string   `json:"position"`
	Company     string   `json:"company"`
	CompanyURL  string   `json:"company_url"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Location    string   `json:"location"`
	URL         string   `json:"url"`
	SalaryMin   *float64 `json:"salary_min"`
	SalaryMax   *float64 `json:"salary_max"`
}

func New(logger *zap.Logger, userAgent string) *Client {
	return &Client{
		logger: logger,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		UserAgent: userAgent,
		APIURL:    apiURL,
	}
}

func (c *Client) Name() string { return "remoteok" }

func (c *Client) Search(ctx context.Context, q source.Query) ([]*job.Posting, error) {
	keywords := q.Keywords
	if len(keywords) == 0 {
		keywords = defaultKeywords
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.APIURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	var raw []map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode remoteok response: %w", err)
	}

	c.logger.Debug("got response from remoteok", zap.Int("total_items", len(raw)))

	limit := q.Limit()
	postings := make([]*job.Posting, 0, limit)
	for _, entry := range raw {
		if len(postings) >= limit {
			break
		}

		var it item
		if err := decodeItem(entry, &it); err != nil {
			c.logger.Debug("skipping malformed remoteok item", zap.Error(err))
			continue
		}
		if it.URL == "" {
			continue
		}

		if !source.MatchesAnyKeyword(keywords, it.Position, it.Description, strings.Join(it.Tags, " ")) {
			continue
		}

		postings = append(postings, c.toPosting(&it))
	}

	return postings, nil
}

func decodeItem(entry map[string]any, target *item) error {
	cfg := &mapstructure.DecoderConfig{
		Result:           target,
		TagName:          "json",
		WeaklyTypedInput: true,
	}
	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}
	return decoder.Decode(entry)
}

func (c *Client) toPosting(it *item) *job.Posting {
	fullText := fmt.Sprintf("%s %s %s", it.Position, it.Description, strings.Join(it.Tags, " "))

	company := it.Company
	if company == "" {
		// RemoteOK sometimes only carries the company in the title.
		if _, after, found := strings.Cut(it.Position, " at "); found {
			company = after
		} else {
			company = "Unknown"
		}
	}

	location := it.Location
	if location == "" {
		location = "Remote"
	}

	return &job.Posting{
		ID:               uuid.NewString(),
		Company:          company,
		Title:            it.Position,
		Description:      job.Preview(it.Description),
		FullRequirements: it.Description,
		SkillsDetected:   classify.DetectSkills(fullText),
		Seniority:        classify.DetectSeniority(fullText),
		Location:         location,
		SourceLink:       it.URL,
		CollectedDate:    time.Now().UTC().Format("2006-01-02"),
		CompanyURL:       it.CompanyURL,
		SalaryMin:        it.SalaryMin,
		SalaryMax:        it.SalaryMax,
	}
}
