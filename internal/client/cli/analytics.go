package cli

import (
	"context"

	"github.com/dmitrijs2005/stockdash/internal/client/router"
)

// Analytics opens the analytics view.
func (a *App) Analytics(ctx context.Context) error {
	return a.Open(ctx, router.PathAnalytics)
}

func (a *App) analyticsView(ctx context.Context) error {
	data, err := a.adminService.Analytics(ctx)
	if err != nil {
		a.handleError(ctx, err)
		return err
	}
	renderAnalytics(a.out, data)
	return nil
}
