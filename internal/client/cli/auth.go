package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/stockdash/internal/client/api"
	"github.com/dmitrijs2005/stockdash/internal/client/router"
	"github.com/dmitrijs2005/stockdash/internal/client/scheduler"
	"github.com/dmitrijs2005/stockdash/internal/client/validation"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

const (
	msgLoggedIn    = "Successfully logged in!"
	msgSignedUp    = "Account created successfully!"
	msgLoggedOut   = "Successfully logged out"
	msgLoginFailed = "Login failed"
	msgSignupError = "An error occurred during signup"
	msgVerified    = "Session verified"
)

// Login opens the login view; authenticated sessions are sent to their
// landing instead.
func (a *App) Login(ctx context.Context) error {
	return a.Open(ctx, router.PathLogin)
}

// Signup opens the signup view.
func (a *App) Signup(ctx context.Context) error {
	return a.Open(ctx, router.PathSignup)
}

func (a *App) loginForm(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.reader, "Password", a.out)
	if err != nil {
		return err
	}

	s, err := a.authService.Login(ctx, email, password)
	if err != nil {
		a.authFailed(ctx, err, msgLoginFailed)
		return err
	}

	a.notifier.Success(msgLoggedIn)
	a.startExpiryWatch()
	return a.landing(ctx, s)
}

func (a *App) signupForm(ctx context.Context) error {
	var form validation.SignupForm
	var err error

	if form.Name, err = getSimpleText(a.reader, "Full name", a.out); err != nil {
		return err
	}
	if form.Email, err = getSimpleText(a.reader, "Email", a.out); err != nil {
		return err
	}
	if form.Password, err = getPassword(a.reader, "Password", a.out); err != nil {
		return err
	}
	if missing := validation.Password(form.Password); len(missing) > 0 {
		for _, c := range missing {
			printlnFn("  missing:", string(c))
		}
	}
	if form.ConfirmPassword, err = getPassword(a.reader, "Confirm password", a.out); err != nil {
		return err
	}

	s, err := a.authService.Signup(ctx, form)
	if err != nil {
		a.authFailed(ctx, err, msgSignupError)
		return err
	}

	a.notifier.Success(msgSignedUp)
	a.startExpiryWatch()
	return a.landing(ctx, s)
}

// authFailed reports a failed login or signup. The backend's message wins
// over the generic fallback; input and network problems go through the
// common handler.
func (a *App) authFailed(ctx context.Context, err error, fallback string) {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		a.logger.Info(ctx, "authentication rejected", "status", apiErr.Status, "error", err)
		if apiErr.Message != "" {
			a.notifier.Error(apiErr.Message)
		} else {
			a.notifier.Error(fallback)
		}
		return
	}
	a.handleError(ctx, err)
}

// Logout ends the session locally (and on the backend when reachable) and
// opens the login view without prompting.
func (a *App) Logout(ctx context.Context) error {
	a.scheduler.Remove(scheduler.JobDashboardRefresh)
	a.scheduler.Remove(scheduler.JobExpiryCheck)

	if err := a.authService.Logout(ctx); err != nil {
		a.handleError(ctx, err)
		return err
	}

	a.mu.Lock()
	a.location = router.PathLogin
	a.from = ""
	a.users = nil
	a.mu.Unlock()

	a.notifier.Success(msgLoggedOut)
	return nil
}

// WhoAmI prints the current session.
func (a *App) WhoAmI(ctx context.Context) error {
	s, err := a.sessions.Validate(ctx)
	if err != nil {
		a.handleError(ctx, err)
		return err
	}
	renderWhoAmI(a.out, s)
	return nil
}

// Verify confirms the session with the backend and refreshes the cached user.
func (a *App) Verify(ctx context.Context) error {
	if _, err := a.authService.Verify(ctx); err != nil {
		a.handleError(ctx, err)
		return err
	}
	a.notifier.Success(msgVerified)
	return a.WhoAmI(ctx)
}
