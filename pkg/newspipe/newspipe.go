// Package newspipe chains the article-processing stages: fetch, keyword
// pre-filter, embedding, deduplication, and ranking. Stages run
// single-threaded, each to completion before the next starts.
package newspipe

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/quizwire/flashpipe/pkg/article"
	"github.com/quizwire/flashpipe/pkg/dedupe"
	"github.com/quizwire/flashpipe/pkg/embeddings/cached"
	"github.com/quizwire/flashpipe/pkg/fetch"
	"github.com/quizwire/flashpipe/pkg/rank"
)

// Config is the configuration options for the pipeline.
type Config struct {
	// Fetchers are the news providers to aggregate.
	Fetchers []fetch.Fetcher

	// Embedder attaches vectors to articles, cache-through.
	Embedder *cached.Embedder

	// Deduper collapses near-duplicate articles.
	Deduper *dedupe.Deduper

	// Ranker scores and orders the survivors.
	Ranker *rank.Ranker

	// Logger is the provided zap logger.
	Logger *zap.Logger
}

// Pipeline turns a free-text topic into a ranked, deduplicated article list.
type Pipeline struct {
	config *Config
}

// New creates a Pipeline.
func New(c *Config) (*Pipeline, error) {
	if len(c.Fetchers) == 0 {
		return nil, fmt.Errorf("at least one fetcher is required")
	}
	if c.Embedder == nil {
		return nil, fmt.Errorf("embedder is required")
	}
	if c.Deduper == nil {
		return nil, fmt.Errorf("deduper is required")
	}
	if c.Ranker == nil {
		return nil, fmt.Errorf("ranker is required")
	}
	if c.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return &Pipeline{config: c}, nil
}

// Search fetches articles for the keyword from every provider, filters
// them by the keyword pre-filter, attaches embeddings, removes
// near-duplicates, and returns the survivors ranked descending by score.
// The returned articles still carry embeddings in memory; persistence
// strips them.
func (p *Pipeline) Search(ctx context.Context, keyword string) ([]*article.Article, error) {
	log := p.config.Logger
	log.Info("searching", zap.String("keyword", keyword))

	raw := fetch.All(ctx, p.config.Fetchers, keyword, log)
	log.Info("fetched raw articles", zap.Int("count", len(raw)))

	filtered := make([]*article.Article, 0, len(raw))
	for _, a := range raw {
		if rank.KeywordMatch(a, keyword) {
			filtered = append(filtered, a)
		}
	}
	log.Info("relevant articles", zap.Int("count", len(filtered)))

	if len(filtered) == 0 {
		return []*article.Article{}, nil
	}

	log.Info("generating semantic embeddings")
	embedded, err := p.config.Embedder.EmbedArticles(ctx, filtered)
	if err != nil {
		return nil, fmt.Errorf("embedding articles: %w", err)
	}

	log.Info("removing duplicates")
	unique := p.config.Deduper.Dedupe(embedded)

	log.Info("ranking articles")
	ranked, err := p.config.Ranker.Rank(ctx, unique, keyword)
	if err != nil {
		return nil, fmt.Errorf("ranking articles: %w", err)
	}

	log.Info("final results", zap.Int("count", len(ranked)))

	return ranked, nil
}
