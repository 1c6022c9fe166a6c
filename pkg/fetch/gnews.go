package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/quizwire/flashpipe/pkg/article"
)

const gnewsBaseURL = "https://gnews.io/api/v4/search"

// GNews fetches from the GNews search API.
type GNews struct {
	apiKey     string
	country    string
	maxResults int
	baseURL    string
	httpClient *http.Client
}

// GNewsConfig holds configuration for the GNews fetcher.
type GNewsConfig struct {
	// APIKey is the GNews API token.
	APIKey string

	// Country filters results (defaults to "in").
	Country string

	// MaxResults caps the number of articles per fetch (defaults to 25).
	MaxResults int

	// BaseURL overrides the API endpoint, for tests.
	BaseURL string
}

type gnewsResponse struct {
	Errors   []string `json:"errors"`
	Articles []struct {
		Title       string `json:"title"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
		Image       string `json:"image"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// NewGNews creates a GNews fetcher.
func NewGNews(cfg GNewsConfig) *GNews {
	country := cfg.Country
	if country == "" {
		country = "in"
	}

	maxResults := cfg.MaxResults
	if maxResults == 0 {
		maxResults = 25
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = gnewsBaseURL
	}

	return &GNews{
		apiKey:     cfg.APIKey,
		country:    country,
		maxResults: maxResults,
		baseURL:    baseURL,
		httpClient: newHTTPClient(),
	}
}

func (g *GNews) Name() string { return "gnews" }

// Fetch returns recent articles matching the keyword.
func (g *GNews) Fetch(ctx context.Context, keyword string) ([]*article.Article, error) {
	params := url.Values{}
	params.Set("token", g.apiKey)
	params.Set("q", keyword)
	params.Set("lang", "en")
	params.Set("country", g.country)
	params.Set("sortby", "publishedAt")
	params.Set("max", strconv.Itoa(g.maxResults))

	var resp gnewsResponse
	if err := getJSON(ctx, g.httpClient, g.baseURL, params, &resp); err != nil {
		return nil, err
	}

	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("gnews error: %v", resp.Errors)
	}

	articles := make([]*article.Article, 0, len(resp.Articles))
	for _, item := range resp.Articles {
		articles = append(articles, article.Normalize(article.NormalizeInput{
			Title:       item.Title,
			Link:        item.URL,
			Source:      item.Source.Name,
			PublishedAt: item.PublishedAt,
			Image:       item.Image,
		}))
	}

	return articles, nil
}

var _ Fetcher = (*GNews)(nil)
