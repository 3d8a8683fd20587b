package citation

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
)

// Enricher replaces URL-derived source titles with real page titles.
type Enricher struct {
	client *http.Client
}

// NewEnricher creates an enricher with the given per-request timeout.
func NewEnricher(timeout time.Duration) *Enricher {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Enricher{
		client: &http.Client{
			Timeout: timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 10 {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
	}
}

// Enrich fetches each source page and fills in its real title. Failures
// are tolerated per source: a page that cannot be fetched or parsed
// keeps its URL-derived title. The slice is updated in place; the count
// of enriched sources is returned.
func (e *Enricher) Enrich(ctx context.Context, sources []Source) int {
	enriched := 0
	for i := range sources {
		title, err := e.fetchTitle(ctx, sources[i].URL)
		if err != nil || title == "" {
			log.Printf("No title extracted from %s", sources[i].URL)
			continue
		}
		sources[i].Title = title
		enriched++
	}
	return enriched
}

func (e *Enricher) fetchTitle(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "reportkit/1.0 (source tracker)")

	resp, err := e.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil
	}

	parsedURL, _ := url.Parse(pageURL)
	article, err := readability.FromReader(strings.NewReader(string(body)), parsedURL)
	if err != nil {
		return "", nil
	}
	return strings.TrimSpace(article.Title), nil
}
