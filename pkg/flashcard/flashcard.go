// Package flashcard defines the study-flashcard schema generated from a
// news article, the generation request payload, and the quality rules a
// generated card must pass before acceptance.
package flashcard

import "context"

// Flashcard is the structured object the LLM generation capability
// returns for an article.
type Flashcard struct {
	// Summary is a 3-5 sentence summary of the whole article.
	Summary string `json:"summary"`

	// Question asks about the most important fact or development.
	Question string `json:"question"`

	// Answer is a detailed factual answer with names, dates and figures.
	Answer string `json:"answer"`

	// Context explains the broader significance of the development.
	Context string `json:"context"`

	// Entity is the main organization or institution in the article.
	Entity string `json:"entity"`

	// PersonOfContact is the key person mentioned, with title or role.
	// Empty when no specific person is central to the story.
	PersonOfContact string `json:"person_of_contact"`
}

// Generator is the external LLM capability that produces a flashcard for
// an article payload. Implementations may return transient errors, which
// the orchestrator retries.
type Generator interface {
	Generate(ctx context.Context, p Payload) (*Flashcard, error)
}
