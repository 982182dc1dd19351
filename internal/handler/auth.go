package handler

import (
	"net/http"

	"github.com/milelog/backend/internal/domain"
	"github.com/milelog/backend/internal/route"
)

type loginRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	PhotoURL string `json:"photo_url,omitempty"`
}

type loginResponse struct {
	Token         string       `json:"token"`
	User          domain.User  `json:"user"`
	DefaultScreen route.Screen `json:"default_screen"`
}

// Login handles POST /api/auth/login.
// This is the simulated identity sign-in: the client supplies a profile and
// the server assigns the user id, stores the session, and issues a token.
func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		s.badRequest(w, "invalid request body: "+err.Error())
		return
	}

	user, token, err := s.sessions.Login(r.Context(), req.Name, req.Email, req.PhotoURL)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, loginResponse{
		Token:         token,
		User:          user,
		DefaultScreen: route.DefaultScreen(),
	})
}

// Logout handles POST /api/auth/logout. The session ends and every
// outstanding token stops validating.
func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Logout(r.Context()); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /api/auth/me.
func (s *Server) Me(w http.ResponseWriter, r *http.Request) {
	user, err := s.sessions.Current(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, user)
}
