package cli

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/dmitrijs2005/stockdash/internal/client/api"
	"github.com/dmitrijs2005/stockdash/internal/client/router"
	"github.com/dmitrijs2005/stockdash/internal/client/session"
	"github.com/dmitrijs2005/stockdash/internal/client/validation"
	"github.com/stretchr/testify/assert"
)

func TestHandleError_Notices(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    string
		toLogin bool
	}{
		{"unauthorized", &api.Error{Status: 401, Kind: api.KindUnauthorized}, msgSessionExpired, true},
		{"expired", session.ErrSessionExpired, msgSessionExpired, true},
		{"malformed", fmt.Errorf("load: %w", session.ErrMalformedToken), msgSessionExpired, true},
		{"corrupt", session.ErrCorruptUser, msgSessionExpired, true},
		{"forbidden", &api.Error{Status: 403, Kind: api.KindForbidden}, msgForbidden, false},
		{"not found", &api.Error{Status: 404, Kind: api.KindNotFound}, msgNotFound, false},
		{"validation", &api.Error{Status: 422, Kind: api.KindValidation}, msgInvalidInput, false},
		{"rate limited", &api.Error{Status: 429, Kind: api.KindRateLimited}, msgRateLimited, false},
		{"server", &api.Error{Status: 503, Kind: api.KindServer}, msgServerError, false},
		{"network", fmt.Errorf("GET /admin/users: %w", api.ErrUnavailable), msgNetworkError, false},
		{"rejected", &api.Error{Status: 200, Message: "Email already taken", Kind: api.KindRejected}, "Email already taken", false},
		{"other", errors.New("boom"), msgUnexpected, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ta := newTestApp(t, "")
			ta.setLocation(router.PathAdmin)

			ta.handleError(context.Background(), tt.err)

			assert.Equal(t, "[error] "+tt.want, ta.notifier.Last())
			if tt.toLogin {
				assert.Equal(t, router.PathLogin, ta.currentLocation())
			} else {
				assert.Equal(t, router.PathAdmin, ta.currentLocation())
			}
		})
	}
}

func TestHandleError_FieldErrorsListEveryMessage(t *testing.T) {
	ta := newTestApp(t, "")
	err := validation.FieldErrors{
		"email": validation.MsgEmailFormat,
		"name":  validation.MsgNameRequired,
	}

	ta.handleError(context.Background(), fmt.Errorf("update: %w", err))

	assert.Contains(t, ta.out.String(), "[error] "+validation.MsgEmailFormat)
	assert.Contains(t, ta.out.String(), "[error] "+validation.MsgNameRequired)
}

func TestHandleError_SilentCases(t *testing.T) {
	ta := newTestApp(t, "")

	ta.handleError(context.Background(), nil)
	ta.handleError(context.Background(), fmt.Errorf("request: %w", context.Canceled))

	assert.Empty(t, ta.out.String())
}
