package cli

import (
	"context"

	"github.com/dmitrijs2005/stockdash/internal/client/export"
	"github.com/dmitrijs2005/stockdash/internal/client/models"
	"github.com/dmitrijs2005/stockdash/internal/client/router"
	"golang.org/x/sync/errgroup"
)

const msgExportDisabled = "Report export is not configured (set STOCKDASH_S3_BUCKET)."

// Export uploads a report with the analytics summary and every user.
func (a *App) Export(ctx context.Context) error {
	s, err := a.require(ctx, router.PathAdmin)
	if err != nil {
		return err
	}
	if !a.exporter.Enabled() {
		a.notifier.Info(msgExportDisabled)
		return export.ErrDisabled
	}

	var (
		analytics models.Analytics
		users     []models.User
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		analytics, err = a.adminService.Analytics(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		users, err = a.adminService.AllUsers(gctx, a.config.PageSize)
		return err
	})
	if err := g.Wait(); err != nil {
		a.handleError(ctx, err)
		return err
	}

	u, _ := s.User()
	key, err := a.exporter.Upload(ctx, export.Report{
		GeneratedBy: u.Email,
		Analytics:   analytics,
		Users:       users,
	})
	if err != nil {
		a.handleError(ctx, err)
		return err
	}

	a.notifier.Success("Report uploaded: " + key)
	return nil
}
