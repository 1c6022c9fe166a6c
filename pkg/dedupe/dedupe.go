// Package dedupe collapses near-duplicate articles by clustering their
// embeddings and keeping one exemplar per cluster.
package dedupe

import (
	"go.uber.org/zap"

	"github.com/quizwire/flashpipe/pkg/article"
)

const (
	// DefaultEps is the cosine-distance clustering threshold: articles
	// within 0.20 of each other (similarity >= 0.80) join the same cluster.
	DefaultEps = 0.20

	// DefaultMinPoints is the minimum cluster density. At 1, every point
	// belongs to some cluster: isolated articles form singleton clusters
	// and nothing is discarded as noise.
	DefaultMinPoints = 1
)

// Config holds clustering parameters for the deduper.
type Config struct {
	// Eps is the cosine-distance threshold. Defaults to DefaultEps if zero.
	Eps float64

	// MinPoints is the density threshold. Defaults to DefaultMinPoints if zero.
	MinPoints int
}

// Deduper clusters articles by embedding similarity.
type Deduper struct {
	eps    float64
	minPts int
	logger *zap.Logger
}

// New creates a Deduper with the given clustering parameters.
func New(c Config, logger *zap.Logger) *Deduper {
	eps := c.Eps
	if eps == 0 {
		eps = DefaultEps
	}

	minPts := c.MinPoints
	if minPts == 0 {
		minPts = DefaultMinPoints
	}

	return &Deduper{
		eps:    eps,
		minPts: minPts,
		logger: logger,
	}
}

// Dedupe clusters the articles with density-based clustering over cosine
// distance and returns one exemplar per cluster: the member with the
// longest title, earliest input position winning ties.
//
// Deduplication is best-effort, never a hard dependency for downstream
// stages: if any article is missing an embedding, or the embeddings do
// not form a uniform matrix, the condition is logged and the input is
// returned unchanged.
func (d *Deduper) Dedupe(articles []*article.Article) []*article.Article {
	if len(articles) == 0 {
		return []*article.Article{}
	}

	if !embeddingsUsable(articles) {
		d.logger.Warn("articles missing usable embeddings, skipping dedupe",
			zap.Int("count", len(articles)),
		)
		return articles
	}

	labels := d.cluster(articles)

	// Group members by cluster label, preserving input order within each
	// group so the tie-break falls out of a strictly-greater comparison.
	clusters := make(map[int][]*article.Article)
	var order []int
	for i, lbl := range labels {
		if _, seen := clusters[lbl]; !seen {
			order = append(order, lbl)
		}
		clusters[lbl] = append(clusters[lbl], articles[i])
	}

	exemplars := make([]*article.Article, 0, len(order))
	for _, lbl := range order {
		exemplars = append(exemplars, pickExemplar(clusters[lbl]))
	}

	d.logger.Info("dedupe reduced articles",
		zap.Int("before", len(articles)),
		zap.Int("after", len(exemplars)),
	)

	return exemplars
}

// cluster runs DBSCAN over cosine distance and returns a cluster label per
// article. With minPts = 1 every point is a core point, so no article is
// labeled noise; points whose only neighbors are already claimed still
// start their own cluster.
func (d *Deduper) cluster(articles []*article.Article) []int {
	const unvisited = -1

	n := len(articles)
	labels := make([]int, n)
	for i := range labels {
		labels[i] = unvisited
	}

	next := 0
	for i := 0; i < n; i++ {
		if labels[i] != unvisited {
			continue
		}

		neighbors := d.regionQuery(articles, i)
		if len(neighbors) < d.minPts {
			// Below the density threshold the point still forms its own
			// singleton cluster rather than being dropped.
			labels[i] = next
			next++
			continue
		}

		labels[i] = next
		for k := 0; k < len(neighbors); k++ {
			j := neighbors[k]
			if labels[j] != unvisited {
				continue
			}
			labels[j] = next

			expansion := d.regionQuery(articles, j)
			if len(expansion) >= d.minPts {
				neighbors = append(neighbors, expansion...)
			}
		}
		next++
	}

	return labels
}

// regionQuery returns the indices within eps cosine distance of point i,
// including i itself.
func (d *Deduper) regionQuery(articles []*article.Article, i int) []int {
	var neighbors []int
	for j := range articles {
		dist := 1.0 - CosineSimilarity(articles[i].Embedding, articles[j].Embedding)
		if dist <= d.eps {
			neighbors = append(neighbors, j)
		}
	}
	return neighbors
}

// pickExemplar selects the cluster member with the longest title. members
// is in input order, so requiring a strictly greater length keeps the
// earliest member on ties.
func pickExemplar(members []*article.Article) *article.Article {
	best := members[0]
	bestLen := len([]rune(best.Title))
	for _, m := range members[1:] {
		if l := len([]rune(m.Title)); l > bestLen {
			best = m
			bestLen = l
		}
	}
	return best
}

// embeddingsUsable reports whether every article carries a non-empty
// embedding of uniform dimensionality.
func embeddingsUsable(articles []*article.Article) bool {
	dim := len(articles[0].Embedding)
	if dim == 0 {
		return false
	}
	for _, a := range articles[1:] {
		if len(a.Embedding) != dim {
			return false
		}
	}
	return true
}
