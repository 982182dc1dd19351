package handler

import (
	"net/http"

	"github.com/milelog/backend/internal/geo"
)

type locationResponse struct {
	Coords  geo.Coords `json:"coords"`
	Address string     `json:"address"`
}

// GetLocation handles GET /api/location.
// It resolves the device position and reverse-geocodes it in one call so
// the trip form can prefill a location field.
func (s *Server) GetLocation(w http.ResponseWriter, r *http.Request) {
	coords, err := s.location.CurrentLocation(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}

	address, err := s.location.AddressFromCoords(r.Context(), coords)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, locationResponse{Coords: coords, Address: address})
}
