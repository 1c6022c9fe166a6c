// Package ollama implements pkg/flashcard's Generator against Ollama's
// chat API, asking the model for a single JSON flashcard object.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/quizwire/flashpipe/pkg/flashcard"
)

const (
	// DefaultModel is the default generation model.
	DefaultModel = "mistral"

	// DefaultBaseURL is the default Ollama API URL.
	DefaultBaseURL = "http://localhost:11434"

	// DefaultTemperature keeps generation focused on factual content.
	DefaultTemperature = 0.2

	// numPredict bounds the generated token count per card.
	numPredict = 2048
)

// Generator wraps Ollama's chat API in JSON mode.
type Generator struct {
	baseURL     string
	model       string
	temperature float64
	httpClient  *http.Client
}

// Config holds configuration for the Ollama generator.
type Config struct {
	// BaseURL is the Ollama API URL. Defaults to DefaultBaseURL if empty.
	BaseURL string

	// Model is the chat model to use (e.g., "mistral", "llama2").
	// Defaults to DefaultModel if empty.
	Model string

	// Temperature steers generation randomness.
	// Defaults to DefaultTemperature if zero.
	Temperature float64
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Format   string        `json:"format"`
	Options  chatOptions   `json:"options"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatOptions struct {
	Temperature float64 `json:"temperature"`
	NumPredict  int     `json:"num_predict"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
}

// cardJSON is the shape the prompt asks the model to emit. The long
// entity key survives from the original card schema so models keep
// filling it reliably.
type cardJSON struct {
	Summary         string `json:"summary"`
	Question        string `json:"question"`
	Answer          string `json:"answer"`
	Context         string `json:"context"`
	Entity          string `json:"the_entity_mainly_concerned_with_the_news_article"`
	PersonOfContact string `json:"person_of_contact"`
}

// NewGenerator creates a flashcard generator using Ollama's chat API.
func NewGenerator(cfg Config) (*Generator, error) {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	temperature := cfg.Temperature
	if temperature == 0 {
		temperature = DefaultTemperature
	}

	return &Generator{
		baseURL:     baseURL,
		model:       model,
		temperature: temperature,
		httpClient: &http.Client{
			Timeout: 300 * time.Second,
		},
	}, nil
}

// Generate asks the model for one flashcard covering the payload's article.
func (g *Generator) Generate(ctx context.Context, p flashcard.Payload) (*flashcard.Flashcard, error) {
	reqBody := chatRequest{
		Model: g.model,
		Messages: []chatMessage{
			{Role: "user", Content: buildPrompt(p)},
		},
		Stream: false,
		Format: "json",
		Options: chatOptions{
			Temperature: g.temperature,
			NumPredict:  numPredict,
		},
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", g.baseURL+"/api/chat", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	var card cardJSON
	if err := json.Unmarshal([]byte(chatResp.Message.Content), &card); err != nil {
		return nil, fmt.Errorf("parsing flashcard JSON: %w", err)
	}

	return &flashcard.Flashcard{
		Summary:         card.Summary,
		Question:        card.Question,
		Answer:          card.Answer,
		Context:         card.Context,
		Entity:          card.Entity,
		PersonOfContact: card.PersonOfContact,
	}, nil
}

// Ensure Generator implements flashcard.Generator
var _ flashcard.Generator = (*Generator)(nil)
