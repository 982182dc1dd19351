package ai

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/milelog/backend/internal/domain"
)

// GenerateNotes writes a brief free-text note for a trip from a one-line
// summary of it. The result is plain text, targeted at under 25 words.
func (c *Client) GenerateNotes(ctx context.Context, tripSummary string) (string, error) {
	if strings.TrimSpace(tripSummary) == "" {
		return "", fmt.Errorf("ai.Client.GenerateNotes: %w: trip summary is required", domain.ErrValidation)
	}

	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.7),
	}
	text, _, err := c.generate(ctx, generateNotesPrompt(tripSummary), cfg)
	if err != nil {
		return "", fmt.Errorf("ai.Client.GenerateNotes: %w", err)
	}
	return strings.TrimSpace(text), nil
}
