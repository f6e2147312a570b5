package router

import (
	"github.com/dmitrijs2005/stockdash/internal/client/session"
)

// Decision is the outcome of Resolve. When Redirect is empty, Route may be
// rendered. From carries the first requested location on redirects to
// the login form so a successful login can return there.
type Decision struct {
	Route    Route
	Redirect string
	From     string
}

func (d Decision) Allowed() bool { return d.Redirect == "" }

// Resolve applies the guard rules to path for session s. Callers validate s
// first; Resolve itself never looks at the clock.
func Resolve(s session.Session, path string) Decision {
	r, ok := Lookup(path)
	if !ok {
		return Decision{Redirect: PathHome}
	}

	switch r.Access {
	case Public:
		return Decision{Route: r}
	case Guest:
		if s.Authenticated() {
			return Decision{Redirect: Landing(s.Role())}
		}
		return Decision{Route: r}
	}

	if !s.Authenticated() {
		return Decision{Redirect: PathLogin, From: r.Path}
	}
	if r.Permits(s.Role()) {
		return Decision{Route: r}
	}
	return Decision{Redirect: Landing(s.Role())}
}
