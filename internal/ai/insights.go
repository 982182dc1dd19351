package ai

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/milelog/backend/internal/domain"
)

const (
	// maxContextTrips caps how much history goes into the prompt.
	maxContextTrips = 50
	// maxLocationLen keeps long addresses from dominating the context.
	maxLocationLen = 30
)

// searchKeywords trigger grounding with web search: questions about
// anything the trip history alone cannot answer.
var searchKeywords = []string{"recent", "news", "current"}

// Citation points at a source the model grounded its answer on.
type Citation struct {
	URI     string `json:"uri"`
	Title   string `json:"title"`
	Snippet string `json:"snippet,omitempty"`
}

// Insight is the model's answer to a history question, with any grounding
// citations it used.
type Insight struct {
	Answer    string     `json:"answer"`
	Citations []Citation `json:"citations,omitempty"`
}

// Insights answers a free-form question about the trip history. Questions
// that mention recent events enable the web search tool; answers then carry
// citations for the sources used.
func (c *Client) Insights(ctx context.Context, question string, trips []domain.Trip, vehicles []domain.Vehicle) (Insight, error) {
	if strings.TrimSpace(question) == "" {
		return Insight{}, fmt.Errorf("ai.Client.Insights: %w: question is required", domain.ErrValidation)
	}

	if len(trips) > maxContextTrips {
		trips = trips[:maxContextTrips]
	}

	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](0.5),
	}
	if wantsSearch(question) {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}

	text, resp, err := c.generate(ctx, insightsPrompt(question, trips, vehicles), cfg)
	if err != nil {
		return Insight{}, fmt.Errorf("ai.Client.Insights: %w", err)
	}

	return Insight{
		Answer:    strings.TrimSpace(text),
		Citations: citations(resp),
	}, nil
}

func wantsSearch(question string) bool {
	q := strings.ToLower(question)
	for _, kw := range searchKeywords {
		if strings.Contains(q, kw) {
			return true
		}
	}
	return false
}

// citations extracts grounding sources from the response metadata.
func citations(resp *genai.GenerateContentResponse) []Citation {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}
	md := resp.Candidates[0].GroundingMetadata
	if md == nil {
		return nil
	}

	var out []Citation
	for _, ch := range md.GroundingChunks {
		switch {
		case ch.Web != nil:
			out = append(out, Citation{URI: ch.Web.URI, Title: ch.Web.Title})
		case ch.RetrievedContext != nil:
			out = append(out, Citation{
				URI:     ch.RetrievedContext.URI,
				Title:   ch.RetrievedContext.Title,
				Snippet: ch.RetrievedContext.Text,
			})
		}
	}
	return out
}
