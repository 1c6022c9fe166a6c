package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/quizwire/flashpipe/pkg/article"
)

const newsdataBaseURL = "https://newsdata.io/api/1/news"

// NewsData fetches from the newsdata.io latest-news API.
type NewsData struct {
	apiKey     string
	country    string
	category   string
	baseURL    string
	httpClient *http.Client
}

// NewsDataConfig holds configuration for the newsdata.io fetcher.
type NewsDataConfig struct {
	// APIKey is the newsdata.io key.
	APIKey string

	// Country filters results (defaults to "in").
	Country string

	// Category filters results (defaults to "business").
	Category string

	// BaseURL overrides the API endpoint, for tests.
	BaseURL string
}

type newsdataResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Title    string `json:"title"`
		Link     string `json:"link"`
		SourceID string `json:"source_id"`
		PubDate  string `json:"pubDate"`
		ImageURL string `json:"image_url"`
	} `json:"results"`
}

// NewNewsData creates a newsdata.io fetcher.
func NewNewsData(cfg NewsDataConfig) *NewsData {
	country := cfg.Country
	if country == "" {
		country = "in"
	}

	category := cfg.Category
	if category == "" {
		category = "business"
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = newsdataBaseURL
	}

	return &NewsData{
		apiKey:     cfg.APIKey,
		country:    country,
		category:   category,
		baseURL:    baseURL,
		httpClient: newHTTPClient(),
	}
}

func (n *NewsData) Name() string { return "newsdata" }

// Fetch returns the latest articles matching the keyword.
func (n *NewsData) Fetch(ctx context.Context, keyword string) ([]*article.Article, error) {
	params := url.Values{}
	params.Set("apikey", n.apiKey)
	params.Set("q", keyword)
	params.Set("language", "en")
	params.Set("country", n.country)
	params.Set("category", n.category)

	var resp newsdataResponse
	if err := getJSON(ctx, n.httpClient, n.baseURL, params, &resp); err != nil {
		return nil, err
	}

	if resp.Status != "success" {
		return nil, fmt.Errorf("newsdata error: status %q", resp.Status)
	}

	articles := make([]*article.Article, 0, len(resp.Results))
	for _, item := range resp.Results {
		articles = append(articles, article.Normalize(article.NormalizeInput{
			Title:       item.Title,
			Link:        item.Link,
			Source:      item.SourceID,
			PublishedAt: item.PubDate,
			Image:       item.ImageURL,
		}))
	}

	return articles, nil
}

var _ Fetcher = (*NewsData)(nil)
