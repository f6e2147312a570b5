// Package router maps navigable locations to views and decides, for a given
// session, whether a location may be shown or where to send the user instead.
package router

import (
	"strings"

	"github.com/dmitrijs2005/stockdash/internal/client/models"
)

// View identifies what a route renders.
type View string

const (
	ViewHome      View = "home"
	ViewLogin     View = "login"
	ViewSignup    View = "signup"
	ViewDashboard View = "dashboard"
	ViewAdmin     View = "admin"
	ViewAnalytics View = "analytics"
	ViewSettings  View = "settings"
)

// Access is the gate kind of a route.
type Access int

const (
	// Public routes are open to everyone.
	Public Access = iota
	// Guest routes are meant for anonymous sessions; authenticated sessions
	// are sent to their landing.
	Guest
	// Gated routes require a session whose role is in Roles. An empty Roles
	// admits every authenticated session.
	Gated
)

type Route struct {
	Path   string
	View   View
	Access Access
	Roles  []models.Role
}

// Permits reports whether role may open the route once authenticated.
func (r Route) Permits(role models.Role) bool {
	if len(r.Roles) == 0 {
		return true
	}
	for _, allowed := range r.Roles {
		if allowed == role {
			return true
		}
	}
	return false
}

// Canonical paths.
const (
	PathHome      = "/"
	PathLogin     = "/login"
	PathSignup    = "/signup"
	PathDashboard = "/dashboard"
	PathAdmin     = "/admin"
	PathAnalytics = "/admin/analytics"
	PathSettings  = "/admin/settings"
)

var (
	adminOnly = []models.Role{models.RoleAdmin}
	userOnly  = []models.Role{models.RoleUser}
)

var routes = []Route{
	{Path: PathHome, View: ViewHome, Access: Public},
	{Path: PathLogin, View: ViewLogin, Access: Guest},
	{Path: PathSignup, View: ViewSignup, Access: Guest},
	{Path: PathDashboard, View: ViewDashboard, Access: Gated, Roles: userOnly},
	{Path: PathAdmin, View: ViewAdmin, Access: Gated, Roles: adminOnly},
	{Path: PathAnalytics, View: ViewAnalytics, Access: Gated, Roles: adminOnly},
	{Path: PathSettings, View: ViewSettings, Access: Gated, Roles: adminOnly},
}

var aliases = map[string]string{
	"/user-dashboard":  PathDashboard,
	"/admin-dashboard": PathAdmin,
}

// Routes returns a copy of the route table.
func Routes() []Route {
	return append([]Route(nil), routes...)
}

// Normalize trims whitespace and trailing slashes and resolves aliases.
func Normalize(path string) string {
	p := strings.TrimSpace(path)
	if p == "" {
		return PathHome
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 {
		p = strings.TrimRight(p, "/")
		if p == "" {
			p = PathHome
		}
	}
	if canonical, ok := aliases[p]; ok {
		return canonical
	}
	return p
}

// Lookup finds the route for path after normalization.
func Lookup(path string) (Route, bool) {
	p := Normalize(path)
	for _, r := range routes {
		if r.Path == p {
			return r, true
		}
	}
	return Route{}, false
}

// Landing is the default location for an authenticated role.
func Landing(role models.Role) string {
	if role == models.RoleAdmin {
		return PathAdmin
	}
	return PathDashboard
}
