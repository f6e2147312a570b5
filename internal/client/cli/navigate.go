package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/stockdash/internal/client/router"
	"github.com/dmitrijs2005/stockdash/internal/client/scheduler"
	"github.com/dmitrijs2005/stockdash/internal/client/session"
)

const maxRedirects = 3

var errRedirected = errors.New("redirected")

// resolve validates the session and applies the route guard to path. It
// returns the route that may be shown after following redirects. A redirect
// to the login view preserves the requested location.
func (a *App) resolve(ctx context.Context, path string) (router.Route, session.Session, bool) {
	s, err := a.sessions.Validate(ctx)
	if err != nil {
		a.handleError(ctx, err)
	}

	d := router.Resolve(s, path)
	redirected := false
	for hops := 0; !d.Allowed() && hops < maxRedirects; hops++ {
		redirected = true
		if d.From != "" {
			a.setFrom(d.From)
		}
		d = router.Resolve(s, d.Redirect)
	}
	if !d.Allowed() {
		d = router.Resolve(session.Anonymous, router.PathHome)
	}
	return d.Route, s, redirected
}

// Open navigates to path and renders the resulting view.
func (a *App) Open(ctx context.Context, path string) error {
	r, s, _ := a.resolve(ctx, path)
	return a.enter(ctx, r, s)
}

// require runs the guard for path without rendering it. When the guard
// redirects, the redirect target is rendered instead and errRedirected is
// returned.
func (a *App) require(ctx context.Context, path string) (session.Session, error) {
	r, s, redirected := a.resolve(ctx, path)
	if redirected {
		_ = a.enter(ctx, r, s)
		return s, errRedirected
	}
	a.setLocation(r.Path)
	if r.View != router.ViewAdmin {
		a.scheduler.Remove(scheduler.JobDashboardRefresh)
	}
	return s, nil
}

func (a *App) enter(ctx context.Context, r router.Route, s session.Session) error {
	a.setLocation(r.Path)
	if r.View != router.ViewAdmin {
		a.scheduler.Remove(scheduler.JobDashboardRefresh)
	}

	switch r.View {
	case router.ViewHome:
		renderHome(a.out, s)
		return nil
	case router.ViewLogin:
		return a.loginForm(ctx)
	case router.ViewSignup:
		return a.signupForm(ctx)
	case router.ViewDashboard:
		u, _ := s.User()
		renderProfile(a.out, u)
		return nil
	case router.ViewAdmin:
		return a.adminView(ctx)
	case router.ViewAnalytics:
		return a.analyticsView(ctx)
	case router.ViewSettings:
		return a.settingsView(ctx)
	default:
		renderHome(a.out, s)
		return nil
	}
}

// landing sends an authenticated session to the preserved location if it
// is still permitted, else to the role landing.
func (a *App) landing(ctx context.Context, s session.Session) error {
	target := router.Landing(s.Role())
	if from := a.takeFrom(); from != "" {
		if d := router.Resolve(s, from); d.Allowed() {
			target = d.Route.Path
		}
	}
	return a.Open(ctx, target)
}

// Home opens "/".
func (a *App) Home(ctx context.Context) error {
	return a.Open(ctx, router.PathHome)
}

// Dashboard opens the landing view of the current role.
func (a *App) Dashboard(ctx context.Context) error {
	s := a.sessions.Current()
	if !s.Authenticated() {
		return a.Open(ctx, router.PathDashboard)
	}
	return a.Open(ctx, router.Landing(s.Role()))
}
