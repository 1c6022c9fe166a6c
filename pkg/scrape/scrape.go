// Package scrape fills article bodies by downloading each article's link
// and extracting the readable text. Extraction failures degrade to an
// empty body and never abort the batch.
package scrape

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"net/url"
	"time"

	readability "github.com/go-shiori/go-readability"
	"go.uber.org/zap"

	"github.com/quizwire/flashpipe/pkg/article"
)

const (
	// minBodyLen is the length below which an existing body is
	// considered empty and re-scraped on a re-run.
	minBodyLen = 50

	// Polite delay bounds between consecutive fetches.
	minDelay = 1 * time.Second
	maxDelay = 3 * time.Second

	fetchTimeout = 30 * time.Second
)

// Scraper extracts article body text from links.
type Scraper struct {
	httpClient *http.Client
	logger     *zap.Logger

	// sleep is swappable for tests.
	sleep func(time.Duration)
}

// New creates a Scraper.
func New(logger *zap.Logger) *Scraper {
	return &Scraper{
		httpClient: &http.Client{Timeout: fetchTimeout},
		logger:     logger,
		sleep:      time.Sleep,
	}
}

// Extract downloads the link and returns the cleaned readable body text.
func (s *Scraper) Extract(ctx context.Context, link string) (string, error) {
	parsed, err := url.Parse(link)
	if err != nil {
		return "", fmt.Errorf("parsing link: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", link, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("page returned status %d", resp.StatusCode)
	}

	doc, err := readability.FromReader(resp.Body, parsed)
	if err != nil {
		return "", fmt.Errorf("extracting article: %w", err)
	}

	return CleanArtifacts(doc.TextContent), nil
}

// FillBodies scrapes the body of every article that does not already have
// one, mutating the articles in place, and returns the number of articles
// updated. A per-article scrape failure sets an empty body and continues;
// nothing raises into the pipeline. A jittered delay separates fetches.
func (s *Scraper) FillBodies(ctx context.Context, articles []*article.Article) int {
	updated := 0

	for _, a := range articles {
		if len(a.Body) > minBodyLen {
			continue
		}

		if a.Link == "" || a.Link == article.DefaultLink {
			a.Body = ""
			continue
		}

		body, err := s.Extract(ctx, a.Link)
		if err != nil {
			s.logger.Warn("scrape failed, body left empty",
				zap.String("link", a.Link),
				zap.Error(err),
			)
			a.Body = ""
		} else {
			a.Body = body
			updated++
		}

		s.sleep(minDelay + time.Duration(rand.Int63n(int64(maxDelay-minDelay))))
	}

	s.logger.Info("scraping complete",
		zap.Int("updated", updated),
		zap.Int("total", len(articles)),
	)

	return updated
}
