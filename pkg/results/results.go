// Package results persists the ordered article list as JSON. This file is
// the interchange format between pipeline phases and the final output;
// embeddings never appear in it.
package results

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/quizwire/flashpipe/pkg/article"
)

// Store reads and writes the results file.
type Store struct {
	path   string
	logger *zap.Logger
}

// NewStore creates a Store for the given file path.
func NewStore(path string, logger *zap.Logger) *Store {
	return &Store{
		path:   path,
		logger: logger,
	}
}

// Path returns the results file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the article list. A missing file is an error; callers that
// treat it as an empty batch should check errors.Is(err, os.ErrNotExist).
func (s *Store) Load() ([]*article.Article, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading results: %w", err)
	}

	var articles []*article.Article
	if err := json.Unmarshal(data, &articles); err != nil {
		return nil, fmt.Errorf("parsing results: %w", err)
	}

	return articles, nil
}

// Save writes the article list. The write goes to a temporary file in the
// same directory followed by a rename, so a crash mid-write leaves the
// previous snapshot intact rather than a torn file. Embeddings are
// excluded structurally by the article type.
func (s *Store) Save(articles []*article.Article) error {
	data, err := json.MarshalIndent(articles, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating results directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("writing results: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replacing results file: %w", err)
	}

	s.logger.Debug("results saved",
		zap.String("path", s.path),
		zap.Int("articles", len(articles)),
	)

	return nil
}
