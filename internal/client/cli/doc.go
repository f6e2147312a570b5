// Package cli provides the interactive dashboard client.
//
// App is the composition root: it opens the local database, builds the API
// client, the session manager and the services, and runs a REPL in which
// every navigable location is a view. Each navigation validates the session
// and applies the route guard before rendering; a redirect to the login view
// remembers where the user was going.
//
// While a session is active a background job re-checks token expiry, and
// while the admin dashboard is shown another job refreshes its data. Both are
// removed when the view or the session ends.
//
// Failures are reported once, as a notice, by handleError.
package cli
