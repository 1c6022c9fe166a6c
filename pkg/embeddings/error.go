package embeddings

import "errors"

var (
	// ErrEmbedding is returned when embedding generation fails.
	ErrEmbedding = errors.New("embedding failed")

	// ErrCache is returned when the embedding cache store fails.
	ErrCache = errors.New("embedding cache failed")
)
