// Package cached wraps an embeddings.Embedder with the content-addressed
// cache so the same text is never embedded twice.
package cached

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"go.uber.org/zap"

	"github.com/quizwire/flashpipe/pkg/article"
	"github.com/quizwire/flashpipe/pkg/embeddings"
	"github.com/quizwire/flashpipe/pkg/embeddings/cache"
)

// Hash returns the content digest used as the cache key for a text.
func Hash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}

// Embedder is a cache-through embedder: lookups go to the cache first and
// only misses reach the underlying model.
type Embedder struct {
	model  embeddings.Embedder
	cache  *cache.Cache
	logger *zap.Logger
}

// New creates a cache-through embedder over the given model and cache.
func New(model embeddings.Embedder, c *cache.Cache, logger *zap.Logger) *Embedder {
	return &Embedder{
		model:  model,
		cache:  c,
		logger: logger,
	}
}

// EmbedText returns the embedding for a text, computing and caching it on
// a miss. The same text always hits the cache on the second invocation.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	h := Hash(text)

	vec, ok, err := e.cache.Get(h)
	if err != nil {
		return nil, err
	}
	if ok {
		return vec, nil
	}

	vec, err = e.model.Embed(ctx, text)
	if err != nil {
		return nil, err
	}

	if err := e.cache.Put(h, vec); err != nil {
		return nil, err
	}

	return vec, nil
}

// EmbedArticles attaches an embedding of its title to every article.
// Cached titles get their vector straight from the cache; the remaining
// misses go to the model in a single batched call, and each fresh vector
// is cached individually. Articles are mutated in place and the same
// slice is returned.
func (e *Embedder) EmbedArticles(ctx context.Context, articles []*article.Article) ([]*article.Article, error) {
	var (
		texts []string
		idxs  []int
	)

	for i, a := range articles {
		h := Hash(a.Title)

		vec, ok, err := e.cache.Get(h)
		if err != nil {
			return nil, err
		}
		if ok {
			a.Embedding = vec
			continue
		}

		texts = append(texts, a.Title)
		idxs = append(idxs, i)
	}

	if len(texts) == 0 {
		return articles, nil
	}

	e.logger.Debug("embedding cache misses",
		zap.Int("misses", len(texts)),
		zap.Int("total", len(articles)),
	)

	vecs, err := e.model.EmbedBatch(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(vecs) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d texts", embeddings.ErrEmbedding, len(vecs), len(texts))
	}

	for j, i := range idxs {
		articles[i].Embedding = vecs[j]
		if err := e.cache.Put(Hash(articles[i].Title), vecs[j]); err != nil {
			return nil, err
		}
	}

	return articles, nil
}

// Close releases the underlying model's resources. The cache is owned by
// the caller and is not closed here.
func (e *Embedder) Close() error {
	return e.model.Close()
}
