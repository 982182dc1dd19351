package service

import (
	"context"
	"fmt"

	"github.com/milelog/backend/internal/ai"
	"github.com/milelog/backend/internal/domain"
	"github.com/milelog/backend/internal/state"
)

// AIGateway is the slice of the AI client the assistant uses.
type AIGateway interface {
	SuggestPurpose(ctx context.Context, description string) ([]domain.PurposeSuggestion, error)
	GenerateNotes(ctx context.Context, tripSummary string) (string, error)
	Insights(ctx context.Context, question string, trips []domain.Trip, vehicles []domain.Vehicle) (ai.Insight, error)
}

// AssistService exposes the AI features. It owns assembling the trip
// history context so callers never pass collections over the API.
type AssistService struct {
	app *state.App
	ai  AIGateway
}

func NewAssistService(app *state.App, gateway AIGateway) *AssistService {
	return &AssistService{app: app, ai: gateway}
}

// SuggestPurpose classifies a free-text trip description.
func (s *AssistService) SuggestPurpose(ctx context.Context, description string) ([]domain.PurposeSuggestion, error) {
	suggestions, err := s.ai.SuggestPurpose(ctx, description)
	if err != nil {
		return nil, fmt.Errorf("service.AssistService.SuggestPurpose: %w", err)
	}
	return suggestions, nil
}

// GenerateNotes drafts a short note for a trip.
func (s *AssistService) GenerateNotes(ctx context.Context, tripSummary string) (string, error) {
	note, err := s.ai.GenerateNotes(ctx, tripSummary)
	if err != nil {
		return "", fmt.Errorf("service.AssistService.GenerateNotes: %w", err)
	}
	return note, nil
}

// Insights answers a question about the user's trip history.
func (s *AssistService) Insights(ctx context.Context, question string) (ai.Insight, error) {
	insight, err := s.ai.Insights(ctx, question, s.app.Trips(), s.app.Vehicles())
	if err != nil {
		return ai.Insight{}, fmt.Errorf("service.AssistService.Insights: %w", err)
	}
	return insight, nil
}
