package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/milelog/backend/internal/domain"
)

// errorResponse is the JSON body for every error the API returns.
type errorResponse struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeJSON serializes v with the given status. A nil v writes only headers.
func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encoding response", "error", err)
	}
}

// writeError maps a service error onto the HTTP error taxonomy:
// validation → 422, not found → 404, gateway disabled → 503, upstream
// failure → 502, anything else → 500.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		s.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Error: errorDetail{Code: "validation_error", Message: unwrapMessage(err)},
		})
	case errors.Is(err, domain.ErrNotFound):
		s.writeJSON(w, http.StatusNotFound, errorResponse{
			Error: errorDetail{Code: "not_found", Message: unwrapMessage(err)},
		})
	case errors.Is(err, domain.ErrUnavailable):
		s.writeJSON(w, http.StatusServiceUnavailable, errorResponse{
			Error: errorDetail{Code: "service_unavailable", Message: unwrapMessage(err)},
		})
	case errors.Is(err, domain.ErrRequestFailed):
		s.writeJSON(w, http.StatusBadGateway, errorResponse{
			Error: errorDetail{Code: "request_failed", Message: unwrapMessage(err)},
		})
	default:
		s.log.Error("internal error", "error", err)
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error: errorDetail{Code: "internal", Message: "internal server error"},
		})
	}
}

// badRequest rejects a request before it reaches the service layer
// (missing or malformed body).
func (s *Server) badRequest(w http.ResponseWriter, message string) {
	s.writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
		Error: errorDetail{Code: "validation_error", Message: message},
	})
}

// decodeJSON decodes the request body into dest, rejecting unknown fields.
func decodeJSON(r *http.Request, dest any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dest)
}

// unwrapMessage extracts the human-readable part from a wrapped sentinel,
// e.g. "service.TripService.Log: validation error: distance must be greater
// than zero" → "distance must be greater than zero".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, sentinel := range []string{
		domain.ErrValidation.Error(),
		domain.ErrNotFound.Error(),
		domain.ErrUnavailable.Error(),
		domain.ErrRequestFailed.Error(),
	} {
		if _, after, ok := strings.Cut(msg, sentinel+": "); ok {
			return after
		}
	}
	return msg
}
