package generate

import (
	"context"

	"github.com/quizwire/flashpipe/pkg/flashcard"
)

// Outcome is the tagged result of the bounded retry loop around one
// article's generation. Validated marks a card that passed every quality
// rule; an unvalidated Outcome carries the last attempt's card anyway,
// making the best-effort acceptance policy an explicit return value.
type Outcome struct {
	// Card is the generated flashcard: the first validated attempt, or
	// the last attempt when retries were exhausted.
	Card *flashcard.Flashcard

	// Validated reports whether Card passed validation.
	Validated bool

	// Attempts is the number of generation calls made.
	Attempts int

	// Issues holds the last attempt's validation failures when
	// Validated is false.
	Issues []string
}

// WithRetry invokes the generator for the payload up to maxRetries+1
// times, sequentially, reusing the same payload. A validated card returns
// immediately. After the final attempt the last obtained card is accepted
// even if it still fails validation; only a generation error surviving
// every retry propagates.
func WithRetry(ctx context.Context, gen flashcard.Generator, p flashcard.Payload, maxRetries int) (*Outcome, error) {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		card, err := gen.Generate(ctx, p)
		if err != nil {
			lastErr = err
			continue
		}

		issues := flashcard.Validate(card)
		if len(issues) == 0 {
			return &Outcome{
				Card:      card,
				Validated: true,
				Attempts:  attempt + 1,
			}, nil
		}

		if attempt == maxRetries {
			return &Outcome{
				Card:      card,
				Validated: false,
				Attempts:  attempt + 1,
				Issues:    issues,
			}, nil
		}
	}

	return nil, lastErr
}
