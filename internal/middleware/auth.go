package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/milelog/backend/internal/auth"
	"github.com/milelog/backend/internal/domain"
)

// TokenValidator checks a bearer token and returns its claims.
type TokenValidator interface {
	Validate(tokenString string) (*auth.Claims, error)
}

// SessionReader exposes the active session user. A token is only honored
// while its user is still logged in.
type SessionReader interface {
	CurrentUser() (domain.User, bool)
}

type userCtxKey struct{}

// UserFrom returns the authenticated user stored by RequireAuth or
// OptionalAuth.
func UserFrom(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(userCtxKey{}).(domain.User)
	return u, ok
}

// RequireAuth rejects requests without a valid bearer token for the active
// session. On success the user is available via UserFrom.
func RequireAuth(tokens TokenValidator, sessions SessionReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := authenticate(r, tokens, sessions)
			if err != nil {
				unauthorized(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userCtxKey{}, user)))
		})
	}
}

// OptionalAuth attaches the user when a valid token is presented but lets
// unauthenticated requests through. Used by endpoints whose behavior merely
// differs by session state.
func OptionalAuth(tokens TokenValidator, sessions SessionReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if user, err := authenticate(r, tokens, sessions); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), userCtxKey{}, user))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func authenticate(r *http.Request, tokens TokenValidator, sessions SessionReader) (domain.User, error) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return domain.User{}, auth.ErrMissingToken
	}

	claims, err := tokens.Validate(token)
	if err != nil {
		return domain.User{}, err
	}

	// The token must belong to the user who is still logged in; logout
	// invalidates every outstanding token.
	user, ok := sessions.CurrentUser()
	if !ok || user.ID != claims.UserID {
		return domain.User{}, auth.ErrInvalidToken
	}
	return user, nil
}

func unauthorized(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
