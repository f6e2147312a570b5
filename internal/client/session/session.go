// Package session owns the client-held pairing of a bearer token and the
// cached user record.
//
// A Session is an immutable value: Anonymous or one built by
// NewAuthenticated. The Manager is the only writer of the durable copy
// (the "token" and "user" keys of the session table) and the only place
// where validity is decided. Guards, the periodic expiry watcher and the
// API client's 401 handling all go through Manager.Validate or
// Manager.Invalidate.
package session

import (
	"github.com/dmitrijs2005/stockdash/internal/client/models"
)

// Session is either Anonymous or authenticated.
type Session struct {
	token Token
	user  models.User
}

// Anonymous is the unauthenticated session.
var Anonymous = Session{}

// NewAuthenticated pairs a decoded token with the user it was issued for.
func NewAuthenticated(token Token, user models.User) Session {
	return Session{token: token, user: user}
}

func (s Session) Authenticated() bool { return !s.token.IsZero() }

func (s Session) Token() Token { return s.token }

// User returns the cached user; ok is false for Anonymous.
func (s Session) User() (models.User, bool) {
	return s.user, s.Authenticated()
}

// Role is empty for Anonymous.
func (s Session) Role() models.Role {
	if !s.Authenticated() {
		return ""
	}
	return s.user.Role
}
