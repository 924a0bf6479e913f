// Package openai implements the "openai" API type: the model is asked for
// repertoire suggestions and must answer with a strict JSON payload that is
// parsed into score records.
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/responses"

	"github.com/ewilliams-labs/chorale/internal/core/domain"
	"github.com/ewilliams-labs/chorale/internal/core/ports"
)

const defaultModel = "gpt-4o-mini"

const systemPrompt = "You are a choral repertoire librarian. Given a search query, suggest real published " +
	"choral works that fit it. Respond with ONLY a JSON object of the form " +
	`{"results":[{"title":"","composer":"","voicing":"","theme":"","technique":"","difficulty":"","description":"","url":""}]}. ` +
	"No conversational text. Return an empty results array when nothing fits."

// Provider suggests sheet music via the OpenAI Responses API.
type Provider struct {
	client *openai.Client
	model  string
}

var _ ports.ScoreProvider = (*Provider)(nil)

// NewProvider constructs a Provider for the given API key.
func NewProvider(apiKey, model string) *Provider {
	if model == "" {
		model = defaultModel
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Provider{
		client: &client,
		model:  model,
	}
}

type suggestion struct {
	Title       string `json:"title"`
	Composer    string `json:"composer"`
	Voicing     string `json:"voicing"`
	Theme       string `json:"theme"`
	Technique   string `json:"technique"`
	Difficulty  string `json:"difficulty"`
	Description string `json:"description"`
	URL         string `json:"url"`
}

type suggestionPayload struct {
	Results []suggestion `json:"results"`
}

// Search asks the model for suggestions matching the query built from the
// parameters.
func (p *Provider) Search(ctx context.Context, params domain.SearchParameters) ([]domain.ScoreRecord, error) {
	resp, err := p.client.Responses.New(ctx, responses.ResponseNewParams{
		Model:        p.model,
		Instructions: openai.String(systemPrompt),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: openai.String(params.SearchQuery()),
		},
	})
	if err != nil {
		return nil, &ports.TransportError{Op: "openai search", Err: err}
	}

	records, err := parseSuggestions(resp.OutputText())
	if err != nil {
		return nil, fmt.Errorf("openai adapter: %w", err)
	}
	return records, nil
}

// parseSuggestions decodes the model output, tolerating a fenced code block
// around the JSON.
func parseSuggestions(text string) ([]domain.ScoreRecord, error) {
	text = strings.TrimSpace(text)
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	text = strings.TrimSpace(text)

	if text == "" {
		return nil, fmt.Errorf("empty model response")
	}

	var payload suggestionPayload
	if err := json.Unmarshal([]byte(text), &payload); err != nil {
		return nil, fmt.Errorf("decode suggestions: %w", err)
	}

	records := make([]domain.ScoreRecord, 0, len(payload.Results))
	for _, s := range payload.Results {
		if s.Title == "" {
			continue
		}
		records = append(records, domain.ScoreRecord{
			Title:       s.Title,
			Composer:    s.Composer,
			Voicing:     s.Voicing,
			Theme:       s.Theme,
			Technique:   s.Technique,
			Difficulty:  s.Difficulty,
			Description: s.Description,
			SourceURL:   s.URL,
		})
	}
	return records, nil
}
