package ai

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/milelog/backend/internal/domain"
)

type mockGenerator struct {
	GenerateContentFn func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

	lastPrompt string
	lastConfig *genai.GenerateContentConfig
}

var _ generator = (*mockGenerator)(nil)

func (m *mockGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		m.lastPrompt = contents[0].Parts[0].Text
	}
	m.lastConfig = config
	return m.GenerateContentFn(ctx, model, contents, config)
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{{Text: text}}}},
		},
	}
}

func newTestClient(gen generator) *Client {
	return &Client{gen: gen, model: DefaultModel}
}

func sampleHistory() ([]domain.Trip, []domain.Vehicle) {
	trips := []domain.Trip{
		{
			ID:              "t1",
			Date:            time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
			StartLocation:   "Home",
			EndLocation:     "1600 Amphitheatre Parkway, Mountain View, CA",
			Distance:        12.5,
			PurposeCategory: domain.PurposeBusiness,
			VehicleID:       "v1",
		},
	}
	vehicles := []domain.Vehicle{
		{ID: "v1", Make: "Honda", Model: "Civic", Year: 2020, Nickname: "Daily"},
	}
	return trips, vehicles
}

func TestClient_Disabled(t *testing.T) {
	c, err := New(context.Background(), "", "")
	require.NoError(t, err)
	assert.False(t, c.Enabled())

	_, err = c.SuggestPurpose(context.Background(), "drove to a client meeting")
	assert.ErrorIs(t, err, domain.ErrUnavailable)

	_, err = c.GenerateNotes(context.Background(), "Home to airport, 18 miles")
	assert.ErrorIs(t, err, domain.ErrUnavailable)

	_, err = c.Insights(context.Background(), "how far did I drive?", nil, nil)
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestSuggestPurpose(t *testing.T) {
	gen := &mockGenerator{
		GenerateContentFn: func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return textResponse("```json\n[{\"purposeCategory\":\"Medical\",\"refinedDescription\":\"Drove to a dental appointment.\"}]\n```"), nil
		},
	}
	c := newTestClient(gen)

	suggestions, err := c.SuggestPurpose(context.Background(), "went to get my teeth looked at")
	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, domain.PurposeMedical, suggestions[0].PurposeCategory)
	assert.Equal(t, "Drove to a dental appointment.", suggestions[0].RefinedDescription)

	require.NotNil(t, gen.lastConfig)
	require.NotNil(t, gen.lastConfig.Temperature)
	assert.InDelta(t, 0.5, float64(*gen.lastConfig.Temperature), 1e-6)
	assert.Equal(t, "application/json", gen.lastConfig.ResponseMIMEType)
	assert.Contains(t, gen.lastPrompt, "went to get my teeth looked at")
}

func TestSuggestPurpose_BlankDescription(t *testing.T) {
	c := newTestClient(&mockGenerator{})

	_, err := c.SuggestPurpose(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSuggestPurpose_UnknownCategory(t *testing.T) {
	gen := &mockGenerator{
		GenerateContentFn: func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return textResponse(`[{"purposeCategory":"Errand","refinedDescription":"x"}]`), nil
		},
	}

	_, err := newTestClient(gen).SuggestPurpose(context.Background(), "quick errand")
	assert.ErrorIs(t, err, domain.ErrRequestFailed)
}

func TestSuggestPurpose_APIFailure(t *testing.T) {
	gen := &mockGenerator{
		GenerateContentFn: func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return nil, errors.New("rate limited")
		},
	}

	_, err := newTestClient(gen).SuggestPurpose(context.Background(), "trip")
	assert.ErrorIs(t, err, domain.ErrRequestFailed)
}

func TestGenerateNotes(t *testing.T) {
	gen := &mockGenerator{
		GenerateContentFn: func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return textResponse("  Client visit downtown; parked at the 5th St garage.\n"), nil
		},
	}
	c := newTestClient(gen)

	note, err := c.GenerateNotes(context.Background(), "Home to client office, 12.5 miles, business")
	require.NoError(t, err)
	assert.Equal(t, "Client visit downtown; parked at the 5th St garage.", note)

	require.NotNil(t, gen.lastConfig.Temperature)
	assert.InDelta(t, 0.7, float64(*gen.lastConfig.Temperature), 1e-6)
	assert.Empty(t, gen.lastConfig.ResponseMIMEType)
}

func TestInsights_PromptCarriesHistory(t *testing.T) {
	gen := &mockGenerator{
		GenerateContentFn: func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return textResponse("You drove 12.5 miles for business."), nil
		},
	}
	c := newTestClient(gen)

	trips, vehicles := sampleHistory()
	insight, err := c.Insights(context.Background(), "How far did I drive for work?", trips, vehicles)
	require.NoError(t, err)
	assert.Equal(t, "You drove 12.5 miles for business.", insight.Answer)
	assert.Empty(t, insight.Citations)

	assert.Contains(t, gen.lastPrompt, "2026-03-14")
	assert.Contains(t, gen.lastPrompt, "Daily (Honda Civic)")
	// Long addresses are truncated before entering the prompt.
	assert.Contains(t, gen.lastPrompt, "1600 Amphitheatre Parkway, Moun")
	assert.NotContains(t, gen.lastPrompt, "Mountain View, CA")
	// No search keyword in the question, so no tools are attached.
	assert.Empty(t, gen.lastConfig.Tools)
}

func TestInsights_SearchKeywordEnablesTool(t *testing.T) {
	gen := &mockGenerator{
		GenerateContentFn: func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			resp := textResponse("Gas prices rose this week.")
			resp.Candidates[0].GroundingMetadata = &genai.GroundingMetadata{
				GroundingChunks: []*genai.GroundingChunk{
					{Web: &genai.GroundingChunkWeb{URI: "https://example.com/gas", Title: "Gas price report"}},
				},
			}
			return resp, nil
		},
	}
	c := newTestClient(gen)

	insight, err := c.Insights(context.Background(), "What are current gas prices near me?", nil, nil)
	require.NoError(t, err)

	require.Len(t, gen.lastConfig.Tools, 1)
	assert.NotNil(t, gen.lastConfig.Tools[0].GoogleSearch)

	require.Len(t, insight.Citations, 1)
	assert.Equal(t, "https://example.com/gas", insight.Citations[0].URI)
	assert.Equal(t, "Gas price report", insight.Citations[0].Title)
}

func TestInsights_HistoryCap(t *testing.T) {
	gen := &mockGenerator{
		GenerateContentFn: func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return textResponse("ok"), nil
		},
	}
	c := newTestClient(gen)

	trips := make([]domain.Trip, 80)
	for i := range trips {
		trips[i] = domain.Trip{
			Date:            time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -i),
			StartLocation:   "A",
			EndLocation:     "B",
			Distance:        1,
			PurposeCategory: domain.PurposeOther,
		}
	}

	_, err := c.Insights(context.Background(), "how much did I drive?", trips, nil)
	require.NoError(t, err)

	assert.Equal(t, maxContextTrips, strings.Count(gen.lastPrompt, "\n- "))
}
