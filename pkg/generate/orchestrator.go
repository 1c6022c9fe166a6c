// Package generate runs flashcard generation over a batch of articles:
// a bounded worker pool invokes the LLM capability per article with
// validation and retries, a single coordinator applies every result to
// the shared list, and progress is checkpointed to durable storage.
package generate

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/quizwire/flashpipe/pkg/article"
	"github.com/quizwire/flashpipe/pkg/flashcard"
)

const (
	// maxWorkers caps the pool regardless of available parallelism.
	maxWorkers = 6

	// defaultMaxRetries is the number of additional attempts after the
	// first failed generation.
	defaultMaxRetries = 3

	// defaultCheckpointEvery persists the batch after this many
	// completed (non-skipped) articles, bounding data loss on abrupt
	// termination.
	defaultCheckpointEvery = 10

	// errMessageLimit truncates one article's error message in the
	// run summary.
	errMessageLimit = 80
)

// CheckpointStore persists the current article list. Implementations
// receive the entire list on every checkpoint and on the final persist.
type CheckpointStore interface {
	Save(articles []*article.Article) error
}

// Config is the configuration options for the orchestrator.
type Config struct {
	// Generator is the external LLM capability producing flashcards.
	Generator flashcard.Generator

	// Store receives periodic and final snapshots of the article list.
	Store CheckpointStore

	// MaxRetries is the number of additional generation attempts per
	// article (defaults to 3).
	MaxRetries int

	// NumWorkers is the worker pool size
	// (defaults to min(6, available hardware parallelism)).
	NumWorkers int

	// CheckpointEvery persists the list each time the completed count
	// reaches a multiple of this value (defaults to 10).
	CheckpointEvery int

	// Logger is the provided zap logger.
	Logger *zap.Logger
}

// Orchestrator fills flashcard fields across a batch of articles.
type Orchestrator struct {
	config *Config
}

// workItem is what a worker hands back to the coordinator: the article's
// pre-assigned index plus exactly one of skip, error, or outcome. Workers
// never write into the shared article list themselves.
type workItem struct {
	index   int
	outcome *Outcome
	err     error
	skipped bool
}

// New creates an Orchestrator, applying defaults for unset knobs.
func New(c *Config) (*Orchestrator, error) {
	if c.Generator == nil {
		return nil, fmt.Errorf("generator is required")
	}
	if c.Store == nil {
		return nil, fmt.Errorf("checkpoint store is required")
	}
	if c.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	if c.MaxRetries == 0 {
		c.MaxRetries = defaultMaxRetries
	}
	if c.NumWorkers == 0 {
		c.NumWorkers = min(maxWorkers, runtime.NumCPU())
	}
	if c.CheckpointEvery == 0 {
		c.CheckpointEvery = defaultCheckpointEvery
	}

	return &Orchestrator{config: c}, nil
}

// Run generates flashcards for every article that does not already carry
// one. Articles are distributed across the worker pool; each result lands
// at its pre-assigned index, so the final list ordering always matches the
// input ordering regardless of completion order. No per-article failure
// escapes the batch; only persistence errors propagate.
func (o *Orchestrator) Run(ctx context.Context, articles []*article.Article) (*Result, error) {
	start := time.Now()
	result := &Result{Total: len(articles)}

	toProcess := 0
	for _, a := range articles {
		if !a.HasFlashcard() {
			toProcess++
		}
	}

	o.config.Logger.Info("flashcard generation started",
		zap.Int("total", len(articles)),
		zap.Int("already_processed", len(articles)-toProcess),
		zap.Int("to_process", toProcess),
		zap.Int("workers", o.config.NumWorkers),
	)

	// Idempotent fast path: nothing to generate, nothing to persist.
	if toProcess == 0 {
		result.Skipped = len(articles)
		result.Elapsed = time.Since(start)
		return result, nil
	}

	jobs := make(chan int)
	items := make(chan workItem, len(articles))

	var wg sync.WaitGroup
	wg.Add(o.config.NumWorkers)
	for w := 0; w < o.config.NumWorkers; w++ {
		go func(id int) {
			defer wg.Done()
			o.config.Logger.Debug("generation worker started", zap.Int("worker_id", id))
			for idx := range jobs {
				items <- o.process(ctx, idx, articles[idx])
			}
		}(w)
	}

	go func() {
		for i := range articles {
			jobs <- i
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(items)
	}()

	// The coordinator is the sole writer of the shared article list.
	var storeErr error
	for item := range items {
		switch {
		case item.skipped:
			result.Skipped++
		case item.err != nil:
			result.Failed++
			result.Errors = append(result.Errors,
				fmt.Sprintf("#%d: %s", item.index+1, truncate(item.err.Error(), errMessageLimit)))
			o.config.Logger.Warn("article generation failed",
				zap.Int("index", item.index),
				zap.String("title", articles[item.index].Title),
				zap.Error(item.err),
			)
		default:
			applyCard(articles[item.index], item.outcome.Card)
			result.Successful++
		}

		if item.skipped || storeErr != nil {
			continue
		}

		if completed := result.Successful + result.Failed; completed%o.config.CheckpointEvery == 0 {
			if err := o.config.Store.Save(articles); err != nil {
				storeErr = fmt.Errorf("checkpoint persist failed: %w", err)
				o.config.Logger.Error("checkpoint persist failed", zap.Error(err))
				continue
			}
			o.config.Logger.Debug("checkpoint persisted", zap.Int("completed", completed))
		}
	}

	result.Elapsed = time.Since(start)

	if storeErr != nil {
		return result, storeErr
	}

	// Unconditional final persist once all work completes.
	if err := o.config.Store.Save(articles); err != nil {
		return result, fmt.Errorf("final persist failed: %w", err)
	}

	o.config.Logger.Info("flashcard generation finished",
		zap.Int("successful", result.Successful),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed),
		zap.Duration("elapsed", result.Elapsed),
	)

	return result, nil
}

// process handles one article inside a worker. It reads the article but
// leaves every write to the coordinator.
func (o *Orchestrator) process(ctx context.Context, idx int, a *article.Article) workItem {
	if a.HasFlashcard() {
		return workItem{index: idx, skipped: true}
	}

	outcome, err := WithRetry(ctx, o.config.Generator, flashcard.NewPayload(a), o.config.MaxRetries)
	if err != nil {
		return workItem{index: idx, err: err}
	}

	if !outcome.Validated {
		o.config.Logger.Warn("accepting flashcard that failed validation after retries",
			zap.String("title", a.Title),
			zap.Int("attempts", outcome.Attempts),
			zap.Strings("issues", outcome.Issues),
		)
	}

	return workItem{index: idx, outcome: outcome}
}

func applyCard(a *article.Article, card *flashcard.Flashcard) {
	a.Summary = card.Summary
	a.Question = card.Question
	a.Answer = card.Answer
	a.Context = card.Context
	a.Entity = card.Entity
	a.PersonOfContact = card.PersonOfContact
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
