// Package article defines the article record exchanged between pipeline
// stages and the normalization applied to raw provider results.
package article

import "strings"

// Article is the unit of work flowing through the pipeline. It is created
// by the fetch stage and mutated in place by every stage after it: the
// embedder attaches a vector, the ranker a score, the scraper a body, and
// the flashcard generator the study fields.
type Article struct {
	Title       string `json:"title"`
	Link        string `json:"link"`
	Source      string `json:"source"`
	PublishedAt string `json:"published_at"`
	Image       string `json:"image"`

	// Embedding is transient in-memory state. The json:"-" tag keeps it
	// out of every persisted representation.
	Embedding []float32 `json:"-"`

	Score float64 `json:"score"`
	Body  string  `json:"body,omitempty"`

	Summary         string `json:"summary,omitempty"`
	Question        string `json:"question,omitempty"`
	Answer          string `json:"answer,omitempty"`
	Context         string `json:"context,omitempty"`
	Entity          string `json:"entity,omitempty"`
	PersonOfContact string `json:"person_of_contact,omitempty"`
}

// Defaults applied by Normalize when a provider omits a field.
const (
	DefaultTitle = "No Headline"
	DefaultLink  = "#"
	DefaultImage = "https://via.placeholder.com/150"
)

// NormalizeInput carries the raw fields a provider fetcher extracted from
// its API response. All fields are optional; Normalize fills defaults.
type NormalizeInput struct {
	Title       string
	Link        string
	Source      string
	PublishedAt string
	Image       string
}

// Normalize builds an Article from raw provider fields, applying the
// documented defaults: missing title becomes DefaultTitle, missing link
// DefaultLink, missing image DefaultImage, and the source is upper-cased.
func Normalize(in NormalizeInput) *Article {
	title := in.Title
	if title == "" {
		title = DefaultTitle
	}

	link := in.Link
	if link == "" {
		link = DefaultLink
	}

	image := in.Image
	if image == "" {
		image = DefaultImage
	}

	return &Article{
		Title:       title,
		Link:        link,
		Source:      strings.ToUpper(in.Source),
		PublishedAt: in.PublishedAt,
		Image:       image,
	}
}

// HasFlashcard reports whether the article already carries a generated
// flashcard. Used by the orchestrator to skip work on re-runs.
func (a *Article) HasFlashcard() bool {
	return a.Summary != "" && a.Question != ""
}
