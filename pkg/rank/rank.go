// Package rank scores and orders articles against a search keyword using a
// hybrid of title-keyword heuristics and embedding similarity.
package rank

import (
	"context"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/quizwire/flashpipe/pkg/article"
	"github.com/quizwire/flashpipe/pkg/dedupe"
)

// Scoring weights and bonuses. The keyword heuristic runs on a small
// integer-ish scale while the semantic score spans 0-100, so the final
// score blends them 0.6/0.4.
const (
	phraseBonus    = 10.0
	tokenBonus     = 3.0
	keywordWeight  = 0.6
	semanticWeight = 0.4
	semanticScale  = 100.0
)

// TextEmbedder is the capability the ranker needs to embed a keyword.
type TextEmbedder interface {
	EmbedText(ctx context.Context, text string) ([]float32, error)
}

// KeywordMatch is the cheap pre-filter applied before embedding to cut
// pipeline volume. It matches when the full keyword phrase is a substring
// of the title, or at least half (rounded up, minimum one) of the keyword
// tokens are. A keyword with no tokens matches nothing.
func KeywordMatch(a *article.Article, keyword string) bool {
	title := strings.ToLower(a.Title)
	keywordL := strings.ToLower(keyword)
	words := strings.Fields(keywordL)

	if len(words) == 0 {
		return false
	}

	if strings.Contains(title, keywordL) {
		return true
	}

	need := (len(words) + 1) / 2
	if need < 1 {
		need = 1
	}

	matches := 0
	for _, w := range words {
		if strings.Contains(title, w) {
			matches++
		}
	}

	return matches >= need
}

// keywordScore is the title heuristic: a phrase bonus when the whole
// keyword appears in the title, plus a per-token bonus for each distinct
// token that appears. The bonuses are additive.
func keywordScore(a *article.Article, keyword string) float64 {
	title := strings.ToLower(a.Title)
	keywordL := strings.ToLower(keyword)

	score := 0.0
	if strings.Contains(title, keywordL) {
		score += phraseBonus
	}

	seen := make(map[string]bool)
	for _, w := range strings.Fields(keywordL) {
		if seen[w] {
			continue
		}
		seen[w] = true
		if strings.Contains(title, w) {
			score += tokenBonus
		}
	}

	return score
}

// Ranker scores articles against keywords. It owns an explicit cache of
// keyword embeddings so each distinct keyword is embedded once per Ranker
// lifetime, not once per batch.
type Ranker struct {
	embedder    TextEmbedder
	keywordVecs map[string][]float32
	logger      *zap.Logger
}

// New creates a Ranker over the given embedder.
func New(embedder TextEmbedder, logger *zap.Logger) *Ranker {
	return &Ranker{
		embedder:    embedder,
		keywordVecs: make(map[string][]float32),
		logger:      logger,
	}
}

// Rank annotates every article with a score and returns the slice sorted
// descending by score. The sort is stable, so exact ties keep their
// incoming relative order.
//
// An article missing an embedding contributes a semantic score of zero; a
// scoring failure for one article defaults its score to zero and never
// aborts the batch. Only a failure to embed the keyword itself is an error.
func (r *Ranker) Rank(ctx context.Context, articles []*article.Article, keyword string) ([]*article.Article, error) {
	if len(articles) == 0 {
		return []*article.Article{}, nil
	}

	kwVec, ok := r.keywordVecs[keyword]
	if !ok {
		vec, err := r.embedder.EmbedText(ctx, keyword)
		if err != nil {
			return nil, err
		}
		r.keywordVecs[keyword] = vec
		kwVec = vec
	}

	for _, a := range articles {
		a.Score = r.score(a, keyword, kwVec)
	}

	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].Score > articles[j].Score
	})

	return articles, nil
}

func (r *Ranker) score(a *article.Article, keyword string, kwVec []float32) float64 {
	kwScore := keywordScore(a, keyword)

	semScore := 0.0
	if len(a.Embedding) > 0 {
		sim := dedupe.CosineSimilarity(a.Embedding, kwVec)
		semScore = sim * semanticScale
	} else {
		r.logger.Debug("article has no embedding, semantic score is zero",
			zap.String("title", a.Title),
		)
	}

	return keywordWeight*kwScore + semanticWeight*semScore
}
