package ai

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/milelog/backend/internal/domain"
)

// SuggestPurpose asks the model to classify a free-text trip description,
// returning one or more candidate {category, refined description} pairs.
func (c *Client) SuggestPurpose(ctx context.Context, description string) ([]domain.PurposeSuggestion, error) {
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("ai.Client.SuggestPurpose: %w: description is required", domain.ErrValidation)
	}

	cfg := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr[float32](0.5),
		ResponseMIMEType: "application/json",
	}
	text, _, err := c.generate(ctx, suggestPurposePrompt(description), cfg)
	if err != nil {
		return nil, fmt.Errorf("ai.Client.SuggestPurpose: %w", err)
	}

	var suggestions []domain.PurposeSuggestion
	if err := unmarshalResponse(text, &suggestions); err != nil {
		return nil, fmt.Errorf("ai.Client.SuggestPurpose: %w", err)
	}
	if len(suggestions) == 0 {
		return nil, fmt.Errorf("ai.Client.SuggestPurpose: model returned no suggestions: %w", domain.ErrRequestFailed)
	}
	for _, s := range suggestions {
		if !s.PurposeCategory.Valid() {
			return nil, fmt.Errorf("ai.Client.SuggestPurpose: model returned unknown category %q: %w",
				s.PurposeCategory, domain.ErrRequestFailed)
		}
	}
	return suggestions, nil
}
