package flashpipecmder

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/quizwire/flashpipe/pkg/config"
	"github.com/quizwire/flashpipe/pkg/dedupe"
	"github.com/quizwire/flashpipe/pkg/embeddings/cache"
	"github.com/quizwire/flashpipe/pkg/embeddings/cached"
	embedollama "github.com/quizwire/flashpipe/pkg/embeddings/ollama"
	"github.com/quizwire/flashpipe/pkg/fetch"
	cardollama "github.com/quizwire/flashpipe/pkg/flashcard/ollama"
	"github.com/quizwire/flashpipe/pkg/generate"
	"github.com/quizwire/flashpipe/pkg/logger"
	"github.com/quizwire/flashpipe/pkg/newspipe"
	"github.com/quizwire/flashpipe/pkg/rank"
	"github.com/quizwire/flashpipe/pkg/results"
)

// setup resolves the logger and effective config from the command's
// persistent flags.
func setup(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	debug, _ := cmd.Flags().GetBool("debug")
	log := logger.NewLogger(debug)

	configPath, _ := cmd.Flags().GetString("config")
	v, err := config.InitViper(configPath)
	if err != nil {
		return nil, nil, err
	}

	cfg, err := config.Load(v)
	if err != nil {
		return nil, nil, err
	}

	return cfg, log, nil
}

// newFetchers builds one fetcher per provider with a configured API key.
func newFetchers(cfg *config.Config) ([]fetch.Fetcher, error) {
	var fetchers []fetch.Fetcher

	if cfg.Providers.NewsdataKey != "" {
		fetchers = append(fetchers, fetch.NewNewsData(fetch.NewsDataConfig{
			APIKey:  cfg.Providers.NewsdataKey,
			Country: cfg.Providers.Country,
		}))
	}
	if cfg.Providers.NewsAPIKey != "" {
		fetchers = append(fetchers, fetch.NewNewsAPI(fetch.NewsAPIConfig{
			APIKey: cfg.Providers.NewsAPIKey,
		}))
	}
	if cfg.Providers.GNewsKey != "" {
		fetchers = append(fetchers, fetch.NewGNews(fetch.GNewsConfig{
			APIKey:  cfg.Providers.GNewsKey,
			Country: cfg.Providers.Country,
		}))
	}

	if len(fetchers) == 0 {
		return nil, fmt.Errorf("no provider API keys configured (set providers.newsdata_key, providers.newsapi_key or providers.gnews_key)")
	}

	return fetchers, nil
}

// newPipeline wires the search pipeline. The returned cleanup closes the
// embedding cache and model client.
func newPipeline(cfg *config.Config, log *zap.Logger) (*newspipe.Pipeline, func(), error) {
	fetchers, err := newFetchers(cfg)
	if err != nil {
		return nil, nil, err
	}

	embedCache, err := cache.New(cache.Config{
		DBPath:   cfg.Cache.Path,
		MaxItems: cfg.Cache.MaxItems,
	}, log)
	if err != nil {
		return nil, nil, err
	}

	model, err := embedollama.NewEmbedder(embedollama.EmbedderConfig{
		BaseURL: cfg.Embedding.Target,
		Model:   cfg.Embedding.Model,
	})
	if err != nil {
		embedCache.Close()
		return nil, nil, err
	}

	embedder := cached.New(model, embedCache, log)

	pipeline, err := newspipe.New(&newspipe.Config{
		Fetchers: fetchers,
		Embedder: embedder,
		Deduper: dedupe.New(dedupe.Config{
			Eps:       cfg.Dedupe.Eps,
			MinPoints: cfg.Dedupe.MinPoints,
		}, log),
		Ranker: rank.New(embedder, log),
		Logger: log,
	})
	if err != nil {
		embedCache.Close()
		model.Close()
		return nil, nil, err
	}

	cleanup := func() {
		model.Close()
		embedCache.Close()
	}

	return pipeline, cleanup, nil
}

// newOrchestrator wires the flashcard generation orchestrator over the
// results store.
func newOrchestrator(cfg *config.Config, store *results.Store, log *zap.Logger) (*generate.Orchestrator, error) {
	gen, err := cardollama.NewGenerator(cardollama.Config{
		BaseURL:     cfg.Generation.Target,
		Model:       cfg.Generation.Model,
		Temperature: cfg.Generation.Temperature,
	})
	if err != nil {
		return nil, err
	}

	return generate.New(&generate.Config{
		Generator:  gen,
		Store:      store,
		MaxRetries: cfg.Generation.MaxRetries,
		NumWorkers: cfg.Generation.Workers,
		Logger:     log,
	})
}
