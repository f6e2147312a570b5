package services

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/dmitrijs2005/stockdash/internal/client/api"
	"github.com/dmitrijs2005/stockdash/internal/client/models"
)

// fakeClient implements api.Client for service tests.
type fakeClient struct {
	mu sync.Mutex

	LoginRet  models.AuthResponse
	LoginErr  error
	SignupRet models.AuthResponse
	SignupErr error
	LogoutErr error
	VerifyRet models.User
	VerifyErr error

	StatsRet  models.DashboardStats
	StatsErr  error
	UsersRet  models.UserPage
	UsersErr  error
	UsersFunc func(q models.UserQuery) (models.UserPage, error)

	UpdateRet models.User
	UpdateErr error
	DeleteErr error

	AnalyticsRet models.Analytics
	AnalyticsErr error

	// gate, when set, blocks DashboardStats until closed.
	gate chan struct{}

	LastCreds   models.Credentials
	LastQuery   models.UserQuery
	LastUpdate  models.UserUpdate
	LastID      string
	Calls       int32
	StatsCalls  int32
	LogoutCalls int32
}

var _ api.Client = (*fakeClient)(nil)

func (f *fakeClient) Login(_ context.Context, creds models.Credentials) (models.AuthResponse, error) {
	atomic.AddInt32(&f.Calls, 1)
	f.LastCreds = creds
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Signup(_ context.Context, creds models.Credentials) (models.AuthResponse, error) {
	atomic.AddInt32(&f.Calls, 1)
	f.LastCreds = creds
	return f.SignupRet, f.SignupErr
}

func (f *fakeClient) Logout(context.Context) error {
	atomic.AddInt32(&f.Calls, 1)
	atomic.AddInt32(&f.LogoutCalls, 1)
	return f.LogoutErr
}

func (f *fakeClient) Verify(context.Context) (models.User, error) {
	atomic.AddInt32(&f.Calls, 1)
	return f.VerifyRet, f.VerifyErr
}

func (f *fakeClient) DashboardStats(ctx context.Context) (models.DashboardStats, error) {
	atomic.AddInt32(&f.Calls, 1)
	atomic.AddInt32(&f.StatsCalls, 1)
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return models.DashboardStats{}, ctx.Err()
		}
	}
	return f.StatsRet, f.StatsErr
}

func (f *fakeClient) ListUsers(_ context.Context, q models.UserQuery) (models.UserPage, error) {
	atomic.AddInt32(&f.Calls, 1)
	f.mu.Lock()
	f.LastQuery = q
	f.mu.Unlock()
	if f.UsersFunc != nil {
		return f.UsersFunc(q)
	}
	return f.UsersRet, f.UsersErr
}

func (f *fakeClient) UpdateUser(_ context.Context, id string, u models.UserUpdate) (models.User, error) {
	atomic.AddInt32(&f.Calls, 1)
	f.LastID, f.LastUpdate = id, u
	return f.UpdateRet, f.UpdateErr
}

func (f *fakeClient) DeleteUser(_ context.Context, id string) error {
	atomic.AddInt32(&f.Calls, 1)
	f.LastID = id
	return f.DeleteErr
}

func (f *fakeClient) Analytics(context.Context) (models.Analytics, error) {
	atomic.AddInt32(&f.Calls, 1)
	return f.AnalyticsRet, f.AnalyticsErr
}
