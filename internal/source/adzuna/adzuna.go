// Package adzuna adapts the Adzuna job search API. Unlike RemoteOK the
// provider filters server-side, so the keyword list is sent as the query.
package adzuna

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"

	"github.com/pbessa/jobradar/internal/classify"
	"github.com/pbessa/jobradar/internal/job"
	"github.com/pbessa/jobradar/internal/source"
)

const (
	apiURL = "https://api.adzuna.com/v1/api/jobs/br/search/1"
	// Provider cap per request.
	maxPerPage = 50
)

var defaultKeywords = []string{"Python", "Data Engineer", "Backend"}

type Client struct {
	logger     *zap.Logger
	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
	AppID      string
	AppKey     string
	Location   string
}

type searchResponse struct {
	Results []map[string]any `json:"results"`
}

type result struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	RedirectURL string `json:"redirect_url"`
	Company     struct {
		DisplayName string `json:"display_name"`
		URL         string `json:"url"`
	} `json:"company"`
	Location struct {
		DisplayName string `json:"display_name"`
	} `json:"location"`
	SalaryMin *float64 `json:"salary_min"`
	SalaryMax *float64 `json:"salary_max"`
}

func New(logger *zap.Logger, userAgent, appID, appKey string) *Client {
	return &Client{
		logger: logger,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		UserAgent: userAgent,
		APIURL:    apiURL,
		AppID:     appID,
		AppKey:    appKey,
		Location:  "brazil",
	}
}

func (c *Client) Name() string { return "adzuna" }

func (c *Client) Search(ctx context.Context, q source.Query) ([]*job.Posting, error) {
	keywords := q.Keywords
	if len(keywords) == 0 {
		keywords = defaultKeywords
	}

	limit := q.Limit()
	perPage := limit
	if perPage > maxPerPage {
		perPage = maxPerPage
	}

	params := url.Values{}
	params.Set("app_id", c.AppID)
	params.Set("app_key", c.AppKey)
	params.Set("results_per_page", strconv.Itoa(perPage))
	params.Set("what", strings.Join(keywords, " OR "))
	params.Set("where", c.Location)
	params.Set("full_time", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.APIURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.UserAgent)
	req.URL.RawQuery = params.Encode()

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	var response searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("decode adzuna response: %w", err)
	}

	c.logger.Debug("got response from adzuna", zap.Int("results", len(response.Results)))

	postings := make([]*job.Posting, 0, len(response.Results))
	for _, entry := range response.Results {
		if len(postings) >= limit {
			break
		}

		var r result
		cfg := &mapstructure.DecoderConfig{Result: &r, TagName: "json", WeaklyTypedInput: true}
		decoder, err := mapstructure.NewDecoder(cfg)
		if err != nil {
			return nil, err
		}
		if err := decoder.Decode(entry); err != nil {
			c.logger.Debug("skipping malformed adzuna result", zap.Error(err))
			continue
		}
		if r.RedirectURL == "" {
			continue
		}

		postings = append(postings, c.toPosting(&r))
	}

	return postings, nil
}

func (c *Client) toPosting(r *result) *job.Posting {
	fullText := fmt.Sprintf("%s %s", r.Title, r.Description)

	company := r.Company.DisplayName
	if company == "" {
		company = "Unknown"
	}
	location := r.Location.DisplayName
	if location == "" {
		location = "Remote"
	}

	return &job.Posting{
		ID:               uuid.NewString(),
		Company:          company,
		Title:            r.Title,
		Description:      job.Preview(r.Description),
		FullRequirements: r.Description,
		SkillsDetected:   classify.DetectSkills(fullText),
		Seniority:        classify.DetectSeniority(fullText),
		Location:         location,
		SourceLink:       r.RedirectURL,
		CollectedDate:    time.Now().UTC().Format("2006-01-02"),
		CompanyURL:       r.Company.URL,
		SalaryMin:        r.SalaryMin,
		SalaryMax:        r.SalaryMax,
	}
}
