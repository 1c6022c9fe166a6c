package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/quizwire/flashpipe/pkg/article"
)

const newsapiBaseURL = "https://newsapi.org/v2/everything"

// lookbackWindow bounds how far back NewsAPI results may reach.
const lookbackWindow = 48 * time.Hour

// NewsAPI fetches from the NewsAPI "everything" endpoint.
type NewsAPI struct {
	apiKey     string
	pageSize   int
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
}

// NewsAPIConfig holds configuration for the NewsAPI fetcher.
type NewsAPIConfig struct {
	// APIKey is the NewsAPI key.
	APIKey string

	// PageSize caps the number of articles per fetch (defaults to 25).
	PageSize int

	// BaseURL overrides the API endpoint, for tests.
	BaseURL string
}

type newsapiResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Articles []struct {
		Title       string `json:"title"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
		URLToImage  string `json:"urlToImage"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// NewNewsAPI creates a NewsAPI fetcher.
func NewNewsAPI(cfg NewsAPIConfig) *NewsAPI {
	pageSize := cfg.PageSize
	if pageSize == 0 {
		pageSize = 25
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = newsapiBaseURL
	}

	return &NewsAPI{
		apiKey:     cfg.APIKey,
		pageSize:   pageSize,
		baseURL:    baseURL,
		httpClient: newHTTPClient(),
		now:        time.Now,
	}
}

func (n *NewsAPI) Name() string { return "newsapi" }

// Fetch returns articles from the last two days matching the keyword.
func (n *NewsAPI) Fetch(ctx context.Context, keyword string) ([]*article.Article, error) {
	since := n.now().Add(-lookbackWindow).Format("2006-01-02")

	params := url.Values{}
	params.Set("q", keyword)
	params.Set("apiKey", n.apiKey)
	params.Set("language", "en")
	params.Set("sortBy", "publishedAt")
	params.Set("from", since)
	params.Set("pageSize", strconv.Itoa(n.pageSize))

	var resp newsapiResponse
	if err := getJSON(ctx, n.httpClient, n.baseURL, params, &resp); err != nil {
		return nil, err
	}

	if resp.Status != "ok" {
		return nil, fmt.Errorf("newsapi error: %s", resp.Message)
	}

	articles := make([]*article.Article, 0, len(resp.Articles))
	for _, item := range resp.Articles {
		articles = append(articles, article.Normalize(article.NormalizeInput{
			Title:       item.Title,
			Link:        item.URL,
			Source:      item.Source.Name,
			PublishedAt: item.PublishedAt,
			Image:       item.URLToImage,
		}))
	}

	return articles, nil
}

var _ Fetcher = (*NewsAPI)(nil)
