package cli

import (
	"context"
)

// Root restores the previous session, shows the first view and runs the
// REPL until the user exits.
func (a *App) Root(ctx context.Context) {
	printlnFn("StockScope dashboard (type 'help' for commands)")

	s, err := a.sessions.Load(ctx)
	if err != nil {
		a.handleError(ctx, err)
	}

	switch {
	case s.Authenticated():
		a.startExpiryWatch()
		_ = a.Dashboard(ctx)
	case isSessionEnd(err):
		_ = a.Login(ctx)
	default:
		_ = a.Home(ctx)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}
