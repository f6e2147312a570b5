package router

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/stockdash/internal/client/models"
	"github.com/dmitrijs2005/stockdash/internal/client/session"
	"github.com/dmitrijs2005/stockdash/internal/client/session/sessiontest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func authed(t *testing.T, role models.Role) session.Session {
	t.Helper()
	tok, err := session.ParseToken(sessiontest.Token(t, "1", time.Now().Add(time.Hour)))
	require.NoError(t, err)
	return session.NewAuthenticated(tok, models.User{ID: "1", Role: role})
}

func TestNormalize(t *testing.T) {
	cases := map[string]string{
		"":                 "/",
		"  ":               "/",
		"/":                "/",
		"login":            "/login",
		"/admin/":          "/admin",
		"/admin-dashboard": "/admin",
		"/user-dashboard/": "/dashboard",
		"//":               "/",
	}
	for in, want := range cases {
		assert.Equal(t, want, Normalize(in), "input %q", in)
	}
}

func TestResolve_UnmatchedRedirectsHome(t *testing.T) {
	for _, s := range []session.Session{session.Anonymous, authed(t, models.RoleAdmin)} {
		d := Resolve(s, "/nowhere")
		assert.Equal(t, PathHome, d.Redirect)
		assert.False(t, d.Allowed())
	}
}

func TestResolve_AnonymousGatedGoesToLoginWithFrom(t *testing.T) {
	for _, p := range []string{PathDashboard, PathAdmin, PathAnalytics, PathSettings, "/admin-dashboard"} {
		d := Resolve(session.Anonymous, p)
		assert.Equal(t, PathLogin, d.Redirect, p)
		assert.Equal(t, Normalize(p), d.From, p)
	}
}

func TestResolve_RoleGates(t *testing.T) {
	admin := authed(t, models.RoleAdmin)
	user := authed(t, models.RoleUser)

	tests := []struct {
		name     string
		s        session.Session
		path     string
		redirect string
		view     View
	}{
		{"admin on admin", admin, PathAdmin, "", ViewAdmin},
		{"admin on analytics", admin, PathAnalytics, "", ViewAnalytics},
		{"admin on settings", admin, PathSettings, "", ViewSettings},
		{"admin on user dashboard", admin, PathDashboard, PathAdmin, ""},
		{"user on admin", user, PathAdmin, PathDashboard, ""},
		{"user on analytics", user, PathAnalytics, PathDashboard, ""},
		{"user on dashboard", user, "/user-dashboard", "", ViewDashboard},
		{"admin on home", admin, PathHome, "", ViewHome},
		{"anonymous on home", session.Anonymous, PathHome, "", ViewHome},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Resolve(tt.s, tt.path)
			assert.Equal(t, tt.redirect, d.Redirect)
			assert.Empty(t, d.From)
			if tt.redirect == "" {
				assert.Equal(t, tt.view, d.Route.View)
			}
		})
	}
}

func TestResolve_GuestRoutes(t *testing.T) {
	d := Resolve(session.Anonymous, PathLogin)
	assert.True(t, d.Allowed())
	assert.Equal(t, ViewLogin, d.Route.View)

	assert.Equal(t, PathAdmin, Resolve(authed(t, models.RoleAdmin), PathLogin).Redirect)
	assert.Equal(t, PathDashboard, Resolve(authed(t, models.RoleUser), PathSignup).Redirect)
}

func TestRoute_PermitsEmptyRoleSet(t *testing.T) {
	r := Route{Path: "/x", Access: Gated}
	assert.True(t, r.Permits(models.RoleUser))
	assert.True(t, r.Permits(models.RoleAdmin))
}

func TestLanding(t *testing.T) {
	assert.Equal(t, PathAdmin, Landing(models.RoleAdmin))
	assert.Equal(t, PathDashboard, Landing(models.RoleUser))
}

func TestRoutes_ReturnsCopy(t *testing.T) {
	rs := Routes()
	rs[0].Path = "/mutated"
	r, ok := Lookup(PathHome)
	require.True(t, ok)
	assert.Equal(t, PathHome, r.Path)
}
