package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/stockdash/internal/client/api"
	"github.com/dmitrijs2005/stockdash/internal/client/models"
	"github.com/dmitrijs2005/stockdash/internal/client/validation"
	"github.com/dmitrijs2005/stockdash/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOverview_JoinsStatsAndUsers(t *testing.T) {
	fc := &fakeClient{
		StatsRet: models.DashboardStats{UserStats: models.UserStats{TotalUsers: 3}},
		UsersRet: models.UserPage{Users: []models.User{{ID: "1"}}, Total: 1, Page: 1, Limit: 10},
	}
	svc := NewAdminService(fc, logging.Discard())

	q := models.UserQuery{Page: 1, Limit: 10, Search: "ann"}
	ov, err := svc.Overview(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 3, ov.Stats.UserStats.TotalUsers)
	assert.Len(t, ov.Users.Users, 1)
	assert.Equal(t, q, fc.LastQuery)
}

func TestOverview_EitherFailureFails(t *testing.T) {
	svc := NewAdminService(&fakeClient{StatsErr: api.ErrUnavailable}, logging.Discard())
	_, err := svc.Overview(context.Background(), models.UserQuery{})
	require.ErrorIs(t, err, api.ErrUnavailable)

	svc = NewAdminService(&fakeClient{UsersErr: &api.Error{Status: 403, Kind: api.KindForbidden}}, logging.Discard())
	_, err = svc.Overview(context.Background(), models.UserQuery{})
	require.ErrorIs(t, err, api.ErrForbidden)
}

func TestOverview_ConcurrentCallsShareOneFetch(t *testing.T) {
	fc := &fakeClient{gate: make(chan struct{})}
	svc := NewAdminService(fc, logging.Discard())

	var wg sync.WaitGroup
	var started int32
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			atomic.AddInt32(&started, 1)
			_, err := svc.Overview(context.Background(), models.UserQuery{Page: 1})
			assert.NoError(t, err)
		}()
	}

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&started) == 5 && atomic.LoadInt32(&fc.StatsCalls) == 1
	}, time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	close(fc.gate)
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&fc.StatsCalls))
}

func TestAllUsers_WalksPages(t *testing.T) {
	fc := &fakeClient{UsersFunc: func(q models.UserQuery) (models.UserPage, error) {
		users := []models.User{{ID: "a"}, {ID: "b"}}
		if q.Page == 3 {
			users = users[:1]
		}
		return models.UserPage{Users: users, Total: 5, Page: q.Page, Limit: q.Limit}, nil
	}}

	users, err := NewAdminService(fc, logging.Discard()).AllUsers(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, users, 5)
}

func TestAllUsers_StopsOnError(t *testing.T) {
	boom := errors.New("boom")
	fc := &fakeClient{UsersErr: boom}
	_, err := NewAdminService(fc, logging.Discard()).AllUsers(context.Background(), 0)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 50, fc.LastQuery.Limit)
}

func TestUpdateUser_ValidatesFirst(t *testing.T) {
	fc := &fakeClient{}
	svc := NewAdminService(fc, logging.Discard())

	_, err := svc.UpdateUser(context.Background(), "1", models.UserUpdate{Email: "x"})
	require.ErrorIs(t, err, validation.ErrInvalidInput)
	assert.Zero(t, fc.Calls)

	fc.UpdateRet = models.User{ID: "1", Name: "Bob"}
	upd := models.UserUpdate{Name: "Bob", Email: "bob@example.com", Role: models.RoleUser, Status: models.StatusInactive}
	u, err := svc.UpdateUser(context.Background(), "1", upd)
	require.NoError(t, err)
	assert.Equal(t, "Bob", u.Name)
	assert.Equal(t, upd, fc.LastUpdate)
}

func TestDeleteAndAnalytics_PassThrough(t *testing.T) {
	fc := &fakeClient{AnalyticsRet: models.Analytics{TotalUsers: 7}}
	svc := NewAdminService(fc, logging.Discard())

	require.NoError(t, svc.DeleteUser(context.Background(), "42"))
	assert.Equal(t, "42", fc.LastID)

	a, err := svc.Analytics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 7, a.TotalUsers)
}
