// Package services contains the application services behind the dashboard
// views. This file defines the authentication service: login, signup, logout
// and server-side verification of the current session.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/stockdash/internal/client/api"
	"github.com/dmitrijs2005/stockdash/internal/client/models"
	"github.com/dmitrijs2005/stockdash/internal/client/session"
	"github.com/dmitrijs2005/stockdash/internal/client/validation"
	"github.com/dmitrijs2005/stockdash/internal/logging"
)

// ErrEmptyToken means the backend answered an auth call without a token.
var ErrEmptyToken = errors.New("server returned no token")

// AuthService defines authentication operations for the CLI.
//
// Login and Signup validate their input before any network call and, on
// success, establish the session. Logout always ends the local session, even
// when the backend cannot be reached.
type AuthService interface {
	Login(ctx context.Context, email, password string) (session.Session, error)
	Signup(ctx context.Context, form validation.SignupForm) (session.Session, error)
	Logout(ctx context.Context) error
	Verify(ctx context.Context) (models.User, error)
}

type authService struct {
	client   api.Client
	sessions *session.Manager
	logger   logging.Logger
}

func NewAuthService(client api.Client, sessions *session.Manager, logger logging.Logger) AuthService {
	return &authService{client: client, sessions: sessions, logger: logger}
}

func (a *authService) Login(ctx context.Context, email, password string) (session.Session, error) {
	email = strings.TrimSpace(email)
	if err := validation.Login(email, password); err != nil {
		return session.Anonymous, err
	}

	resp, err := a.client.Login(ctx, models.Credentials{Email: email, Password: password})
	if err != nil {
		return session.Anonymous, err
	}
	return a.establish(ctx, resp)
}

func (a *authService) Signup(ctx context.Context, form validation.SignupForm) (session.Session, error) {
	form.Name = strings.TrimSpace(form.Name)
	form.Email = strings.TrimSpace(form.Email)
	if err := validation.Signup(form); err != nil {
		return session.Anonymous, err
	}

	resp, err := a.client.Signup(ctx, models.Credentials{Name: form.Name, Email: form.Email, Password: form.Password})
	if err != nil {
		return session.Anonymous, err
	}
	return a.establish(ctx, resp)
}

func (a *authService) establish(ctx context.Context, resp models.AuthResponse) (session.Session, error) {
	if resp.Token == "" {
		return session.Anonymous, ErrEmptyToken
	}
	s, err := a.sessions.Establish(ctx, resp.Token, resp.User)
	if err != nil {
		return session.Anonymous, fmt.Errorf("establish session: %w", err)
	}
	return s, nil
}

// Logout tells the backend first, then clears local state regardless of the
// outcome. The backend error, if any, is logged and not returned.
func (a *authService) Logout(ctx context.Context) error {
	if a.sessions.Current().Authenticated() {
		if err := a.client.Logout(ctx); err != nil {
			a.logger.Warn(ctx, "logout request failed", "error", err)
		}
	}
	return a.sessions.Clear(ctx)
}

// Verify asks the backend to confirm the token and refreshes the cached user.
func (a *authService) Verify(ctx context.Context) (models.User, error) {
	if _, err := a.sessions.Validate(ctx); err != nil {
		return models.User{}, err
	}
	if !a.sessions.Current().Authenticated() {
		return models.User{}, session.ErrSessionExpired
	}

	u, err := a.client.Verify(ctx)
	if err != nil {
		return models.User{}, err
	}
	if err := a.sessions.UpdateUser(ctx, u); err != nil {
		return models.User{}, err
	}
	return u, nil
}
