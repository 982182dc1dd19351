package handler

import (
	"net/http"

	"github.com/milelog/backend/internal/middleware"
	"github.com/milelog/backend/internal/route"
)

// Navigate handles GET /api/navigate?path=.
// It resolves a client path against the session state so the SPA can
// delegate auth gating: the response is either the screen to mount or the
// redirect target.
func (s *Server) Navigate(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		path = "/"
	}

	_, authenticated := middleware.UserFrom(r.Context())
	s.writeJSON(w, http.StatusOK, route.Resolve(path, authenticated))
}
