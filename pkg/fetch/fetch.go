// Package fetch retrieves raw articles from news providers. Each provider
// is isolated: a failing provider contributes zero results and never
// aborts the aggregate fetch.
package fetch

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/quizwire/flashpipe/pkg/article"
)

// requestTimeout bounds a single provider API call.
const requestTimeout = 30 * time.Second

// Fetcher retrieves normalized articles for a keyword from one provider.
type Fetcher interface {
	// Name identifies the provider in logs.
	Name() string

	// Fetch returns normalized articles matching the keyword.
	Fetch(ctx context.Context, keyword string) ([]*article.Article, error)
}

// All fans the keyword out to every fetcher concurrently and concatenates
// the results in fetcher order. Provider errors are logged and degrade to
// zero results from that provider.
func All(ctx context.Context, fetchers []Fetcher, keyword string, logger *zap.Logger) []*article.Article {
	results := make([][]*article.Article, len(fetchers))

	g, gctx := errgroup.WithContext(ctx)
	for i, f := range fetchers {
		i, f := i, f
		g.Go(func() error {
			articles, err := f.Fetch(gctx, keyword)
			if err != nil {
				logger.Warn("provider fetch failed",
					zap.String("provider", f.Name()),
					zap.Error(err),
				)
				return nil
			}
			results[i] = articles
			return nil
		})
	}
	// Fetch closures always return nil; the group only joins the fan-out.
	_ = g.Wait()

	var all []*article.Article
	for i, r := range results {
		logger.Debug("provider results",
			zap.String("provider", fetchers[i].Name()),
			zap.Int("count", len(r)),
		)
		all = append(all, r...)
	}

	return all
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: requestTimeout}
}
