package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/milelog/backend/internal/domain"
	"github.com/milelog/backend/internal/state"
)

// TokenIssuer mints a bearer token for a logged-in user.
type TokenIssuer interface {
	Generate(user domain.User) (string, error)
}

// SessionService owns the single login session: there is at most one
// active user at a time, and logging in replaces any previous session.
type SessionService struct {
	app    *state.App
	tokens TokenIssuer
}

func NewSessionService(app *state.App, tokens TokenIssuer) *SessionService {
	return &SessionService{app: app, tokens: tokens}
}

// Login starts a session for the given profile and returns the stored user
// together with a bearer token.
func (s *SessionService) Login(ctx context.Context, name, email, photoURL string) (domain.User, string, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return domain.User{}, "", fmt.Errorf("service.SessionService.Login: %w: name is required", domain.ErrValidation)
	}
	if email == "" {
		return domain.User{}, "", fmt.Errorf("service.SessionService.Login: %w: email is required", domain.ErrValidation)
	}

	user := domain.User{
		ID:       uuid.NewString(),
		Name:     name,
		Email:    email,
		PhotoURL: photoURL,
	}
	if err := s.app.SetUser(ctx, user); err != nil {
		return domain.User{}, "", fmt.Errorf("service.SessionService.Login: %w", err)
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return domain.User{}, "", fmt.Errorf("service.SessionService.Login: %w", err)
	}
	return user, token, nil
}

// Logout ends the session. Logging out with no session is a no-op.
func (s *SessionService) Logout(ctx context.Context) error {
	if err := s.app.ClearUser(ctx); err != nil {
		return fmt.Errorf("service.SessionService.Logout: %w", err)
	}
	return nil
}

// Current returns the active user, or ErrNotFound when nobody is logged in.
func (s *SessionService) Current(ctx context.Context) (domain.User, error) {
	user, ok := s.app.CurrentUser()
	if !ok {
		return domain.User{}, fmt.Errorf("service.SessionService.Current: no active session: %w", domain.ErrNotFound)
	}
	return user, nil
}

// Authenticated reports whether a session is active.
func (s *SessionService) Authenticated() bool {
	_, ok := s.app.CurrentUser()
	return ok
}
