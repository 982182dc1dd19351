package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/milelog/backend/internal/domain"
	"github.com/milelog/backend/internal/service"
)

type vehicleRequest struct {
	Make     string `json:"make"`
	Model    string `json:"model"`
	Year     int    `json:"year"`
	Nickname string `json:"nickname"`
}

func (v vehicleRequest) input() service.VehicleInput {
	return service.VehicleInput{
		Make:     v.Make,
		Model:    v.Model,
		Year:     v.Year,
		Nickname: v.Nickname,
	}
}

type vehicleListResponse struct {
	Data []domain.Vehicle `json:"data"`
}

// CreateVehicle handles POST /api/vehicles.
func (s *Server) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var req vehicleRequest
	if err := decodeJSON(r, &req); err != nil {
		s.badRequest(w, "invalid request body: "+err.Error())
		return
	}

	vehicle, err := s.vehicles.Add(r.Context(), req.input())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, vehicle)
}

// ListVehicles handles GET /api/vehicles.
func (s *Server) ListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := s.vehicles.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, vehicleListResponse{Data: vehicles})
}

// UpdateVehicle handles PUT /api/vehicles/{vehicleID}.
// Updating an id that no longer exists is a silent no-op (204).
func (s *Server) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	var req vehicleRequest
	if err := decodeJSON(r, &req); err != nil {
		s.badRequest(w, "invalid request body: "+err.Error())
		return
	}

	if err := s.vehicles.Update(r.Context(), chi.URLParam(r, "vehicleID"), req.input()); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteVehicle handles DELETE /api/vehicles/{vehicleID}.
// Deletion detaches the vehicle from any trips referencing it; an absent id
// still returns 204.
func (s *Server) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	if err := s.vehicles.Delete(r.Context(), chi.URLParam(r, "vehicleID")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
