// Package ai is the gateway to the Gemini API. It suggests trip purposes,
// summarizes trip notes, and answers free-form questions about driving
// history. Every entry point works without an API key by reporting the
// gateway unavailable rather than failing the surrounding feature.
package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/milelog/backend/internal/domain"
)

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.5-flash"

// generator is the slice of the Gemini SDK the client uses.
type generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type sdkGenerator struct {
	client *genai.Client
}

func (g sdkGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return g.client.Models.GenerateContent(ctx, model, contents, config)
}

// Client talks to the Gemini API. The zero-value Client is disabled and
// returns domain.ErrUnavailable from every call.
type Client struct {
	gen   generator
	model string
}

// New creates a Client for the given API key. An empty key yields a
// disabled client rather than an error, so deployments without Gemini
// access still boot. An empty model selects DefaultModel.
func New(ctx context.Context, apiKey, model string) (*Client, error) {
	if model == "" {
		model = DefaultModel
	}
	if apiKey == "" {
		return &Client{model: model}, nil
	}

	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("ai.New: %w", err)
	}
	return &Client{gen: sdkGenerator{client: gc}, model: model}, nil
}

// Enabled reports whether the client can reach the Gemini API.
func (c *Client) Enabled() bool {
	return c != nil && c.gen != nil
}

// generate runs one model call and returns the response text.
func (c *Client) generate(ctx context.Context, prompt string, config *genai.GenerateContentConfig) (string, *genai.GenerateContentResponse, error) {
	if !c.Enabled() {
		return "", nil, fmt.Errorf("ai: gemini api key not configured: %w", domain.ErrUnavailable)
	}

	resp, err := c.gen.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	if err != nil {
		return "", nil, fmt.Errorf("ai: generate content: %w: %w", domain.ErrRequestFailed, err)
	}

	text := resp.Text()
	if text == "" {
		return "", nil, fmt.Errorf("ai: empty model response: %w", domain.ErrRequestFailed)
	}
	return text, resp, nil
}
