package careers

import (
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"github.com/pbessa/jobradar/internal/classify"
	"github.com/pbessa/jobradar/internal/job"
)

// Extractor pulls postings out of one careers page. Extraction from
// arbitrary HTML is inherently heuristic, so each site shape gets its own
// strategy; adjusting one cannot regress the others.
type Extractor interface {
	Name() string
	Extract(doc *goquery.Document, company Company, pageURL string) []*job.Posting
}

// selectorExtractor is the generic CSS-selector strategy: a container
// selector plus title/description selectors evaluated inside each match.
type selectorExtractor struct {
	name              string
	containerSelector string
	titleSelector     string
	descSelector      string
}

// DefaultExtractors covers the page shapes seen on most static careers
// pages. Strategies are tried in order; the first one that finds any
// container handles the whole page.
func DefaultExtractors() []Extractor {
	return []Extractor{
		&selectorExtractor{"generic_div_job", "div.job", "h2,h3", "p"},
		&selectorExtractor{"article_posting", "article.job-posting", "h2", "p"},
		&selectorExtractor{"data_job_id", "div[data-job-id]", "h2", "p"},
		&selectorExtractor{"list_item", "li.job-listing", "h3", "span"},
	}
}

func (e *selectorExtractor) Name() string { return e.name }

func (e *selectorExtractor) Extract(doc *goquery.Document, company Company, pageURL string) []*job.Posting {
	var postings []*job.Posting

	doc.Find(e.containerSelector).Each(func(_ int, container *goquery.Selection) {
		title := strings.TrimSpace(container.Find(e.titleSelector).First().Text())
		if title == "" {
			return
		}
		description := strings.TrimSpace(container.Find(e.descSelector).First().Text())

		link := pageURL
		if href, ok := container.Find("a").First().Attr("href"); ok && href != "" {
			link = resolveLink(pageURL, href)
		}

		postings = append(postings, &job.Posting{
			ID:               uuid.NewString(),
			Company:          company.Name,
			Title:            title,
			Description:      job.Preview(description),
			FullRequirements: description,
			SkillsDetected:   classify.DetectSkills(title + " " + description),
			Seniority:        classify.DetectSeniority(title + " " + description),
			Location:         "Remote",
			SourceLink:       link,
			CollectedDate:    time.Now().UTC().Format("2006-01-02"),
			CompanyURL:       company.URL,
		})
	})

	return postings
}

// resolveLink makes href absolute relative to the page it was found on.
// An unparsable href falls back to the page URL itself.
func resolveLink(pageURL, href string) string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return pageURL
	}
	ref, err := url.Parse(href)
	if err != nil {
		return pageURL
	}
	return base.ResolveReference(ref).String()
}
