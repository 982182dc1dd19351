package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/milelog/backend/internal/domain"
	"github.com/milelog/backend/internal/service"
)

// tripRequest is the POST /api/trips body. Date is "2006-01-02"; omitted
// means today.
type tripRequest struct {
	Date            string  `json:"date,omitempty"`
	StartLocation   string  `json:"start_location"`
	EndLocation     string  `json:"end_location"`
	Distance        float64 `json:"distance"`
	PurposeCategory string  `json:"purpose_category"`
	PurposeDetail   string  `json:"purpose_detail,omitempty"`
	VehicleID       string  `json:"vehicle_id,omitempty"`
	Notes           string  `json:"notes,omitempty"`
}

type tripListResponse struct {
	Data       []domain.Trip `json:"data"`
	Pagination pagination    `json:"pagination"`
}

type pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// CreateTrip handles POST /api/trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req tripRequest
	if err := decodeJSON(r, &req); err != nil {
		s.badRequest(w, "invalid request body: "+err.Error())
		return
	}

	in := service.LogTripInput{
		StartLocation:   req.StartLocation,
		EndLocation:     req.EndLocation,
		Distance:        req.Distance,
		PurposeCategory: domain.PurposeCategory(req.PurposeCategory),
		PurposeDetail:   req.PurposeDetail,
		VehicleID:       req.VehicleID,
		Notes:           req.Notes,
	}
	if req.Date != "" {
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			s.badRequest(w, "date must be formatted as 2006-01-02")
			return
		}
		in.Date = date
	}

	trip, err := s.trips.Log(r.Context(), in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, trip)
}

// ListTrips handles GET /api/trips.
// Supports ?search=, ?purpose=, ?vehicle_id= filters plus ?page= and
// ?limit= pagination (defaults: page=1, limit=50, max=200).
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.TripFilter{
		Search:    q.Get("search"),
		Purpose:   domain.PurposeCategory(q.Get("purpose")),
		VehicleID: q.Get("vehicle_id"),
	}
	if filter.Purpose != "" && !filter.Purpose.Valid() {
		s.badRequest(w, "unknown purpose category "+q.Get("purpose"))
		return
	}
	page := domain.ParsePage(q.Get("page"), q.Get("limit"))

	trips, total, err := s.trips.History(r.Context(), filter, page)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, tripListResponse{
		Data: trips,
		Pagination: pagination{
			Page:  page.Number,
			Limit: page.Limit,
			Total: total,
		},
	})
}

// DeleteTrip handles DELETE /api/trips/{tripID}.
// Deleting an id that no longer exists still returns 204.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	if err := s.trips.Delete(r.Context(), chi.URLParam(r, "tripID")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
