package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/stockdash/internal/client/api"
	"github.com/dmitrijs2005/stockdash/internal/client/models"
	"github.com/dmitrijs2005/stockdash/internal/client/validation"
	"github.com/dmitrijs2005/stockdash/internal/logging"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// AdminService backs the admin views.
type AdminService interface {
	// Overview fetches statistics and one page of users concurrently.
	// Concurrent calls with the same query share one round trip.
	Overview(ctx context.Context, q models.UserQuery) (models.Overview, error)
	ListUsers(ctx context.Context, q models.UserQuery) (models.UserPage, error)
	// AllUsers walks every page of the user list.
	AllUsers(ctx context.Context, pageSize int) ([]models.User, error)
	UpdateUser(ctx context.Context, id string, u models.UserUpdate) (models.User, error)
	DeleteUser(ctx context.Context, id string) error
	Analytics(ctx context.Context) (models.Analytics, error)
}

type adminService struct {
	client api.Client
	logger logging.Logger
	group  singleflight.Group
}

func NewAdminService(client api.Client, logger logging.Logger) AdminService {
	return &adminService{client: client, logger: logger}
}

func overviewKey(q models.UserQuery) string {
	return fmt.Sprintf("overview|%d|%d|%s|%s", q.Page, q.Limit, q.Search, q.Status)
}

func (s *adminService) Overview(ctx context.Context, q models.UserQuery) (models.Overview, error) {
	v, err, shared := s.group.Do(overviewKey(q), func() (any, error) {
		var ov models.Overview
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			stats, err := s.client.DashboardStats(gctx)
			if err != nil {
				return err
			}
			ov.Stats = stats
			return nil
		})
		g.Go(func() error {
			page, err := s.client.ListUsers(gctx, q)
			if err != nil {
				return err
			}
			ov.Users = page
			return nil
		})
		if err := g.Wait(); err != nil {
			return models.Overview{}, err
		}
		return ov, nil
	})
	if shared {
		s.logger.Debug(ctx, "overview fetch shared", "page", q.Page, "search", q.Search)
	}
	if err != nil {
		return models.Overview{}, err
	}
	return v.(models.Overview), nil
}

func (s *adminService) ListUsers(ctx context.Context, q models.UserQuery) (models.UserPage, error) {
	return s.client.ListUsers(ctx, q)
}

func (s *adminService) AllUsers(ctx context.Context, pageSize int) ([]models.User, error) {
	if pageSize <= 0 {
		pageSize = 50
	}
	var users []models.User
	for page := 1; ; page++ {
		p, err := s.client.ListUsers(ctx, models.UserQuery{Page: page, Limit: pageSize})
		if err != nil {
			return nil, err
		}
		users = append(users, p.Users...)
		if len(p.Users) == 0 || page >= p.Pages() {
			return users, nil
		}
	}
}

func (s *adminService) UpdateUser(ctx context.Context, id string, u models.UserUpdate) (models.User, error) {
	if err := validation.UserUpdate(u); err != nil {
		return models.User{}, err
	}
	return s.client.UpdateUser(ctx, id, u)
}

func (s *adminService) DeleteUser(ctx context.Context, id string) error {
	return s.client.DeleteUser(ctx, id)
}

func (s *adminService) Analytics(ctx context.Context) (models.Analytics, error) {
	return s.client.Analytics(ctx)
}
