package flashcard

import "github.com/quizwire/flashpipe/pkg/article"

// MaxBodyChars bounds the article body included in a generation request,
// keeping the prompt within the model's context limits.
const MaxBodyChars = 4000

// truncationMarker trails a body that was cut at MaxBodyChars.
const truncationMarker = "..."

// Payload is the generation request built from an article.
type Payload struct {
	Title       string
	Source      string
	PublishedAt string
	Body        string
}

// NewPayload builds the generation payload for an article, truncating the
// body to MaxBodyChars with a trailing marker if it was cut.
func NewPayload(a *article.Article) Payload {
	body := a.Body
	if runes := []rune(body); len(runes) > MaxBodyChars {
		body = string(runes[:MaxBodyChars]) + truncationMarker
	}

	return Payload{
		Title:       a.Title,
		Source:      a.Source,
		PublishedAt: a.PublishedAt,
		Body:        body,
	}
}
