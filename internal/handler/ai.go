package handler

import (
	"net/http"

	"github.com/milelog/backend/internal/domain"
)

type suggestPurposeRequest struct {
	Description string `json:"description"`
}

type suggestPurposeResponse struct {
	Suggestions []domain.PurposeSuggestion `json:"suggestions"`
}

type notesRequest struct {
	TripSummary string `json:"trip_summary"`
}

type notesResponse struct {
	Notes string `json:"notes"`
}

type insightsRequest struct {
	Question string `json:"question"`
}

// SuggestPurpose handles POST /api/ai/suggest-purpose.
func (s *Server) SuggestPurpose(w http.ResponseWriter, r *http.Request) {
	var req suggestPurposeRequest
	if err := decodeJSON(r, &req); err != nil {
		s.badRequest(w, "invalid request body: "+err.Error())
		return
	}

	suggestions, err := s.assist.SuggestPurpose(r.Context(), req.Description)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, suggestPurposeResponse{Suggestions: suggestions})
}

// GenerateNotes handles POST /api/ai/notes.
func (s *Server) GenerateNotes(w http.ResponseWriter, r *http.Request) {
	var req notesRequest
	if err := decodeJSON(r, &req); err != nil {
		s.badRequest(w, "invalid request body: "+err.Error())
		return
	}

	notes, err := s.assist.GenerateNotes(r.Context(), req.TripSummary)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, notesResponse{Notes: notes})
}

// GetInsights handles POST /api/ai/insights.
func (s *Server) GetInsights(w http.ResponseWriter, r *http.Request) {
	var req insightsRequest
	if err := decodeJSON(r, &req); err != nil {
		s.badRequest(w, "invalid request body: "+err.Error())
		return
	}

	insight, err := s.assist.Insights(r.Context(), req.Question)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, insight)
}
