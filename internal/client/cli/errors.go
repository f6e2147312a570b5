package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/stockdash/internal/client/api"
	"github.com/dmitrijs2005/stockdash/internal/client/router"
	"github.com/dmitrijs2005/stockdash/internal/client/session"
	"github.com/dmitrijs2005/stockdash/internal/client/validation"
)

// User-facing texts for failed actions.
const (
	msgSessionExpired = "Session expired. Please login again."
	msgForbidden      = "Access denied. Insufficient permissions."
	msgNotFound       = "Resource not found."
	msgInvalidInput   = "Invalid input. Please check your data."
	msgRateLimited    = "Too many requests. Please try again later."
	msgServerError    = "Server error. Please try again later."
	msgNetworkError   = "Network error. Please check your connection."
	msgUnexpected     = "An unexpected error occurred"
)

func isSessionEnd(err error) bool {
	return errors.Is(err, session.ErrSessionExpired) ||
		errors.Is(err, session.ErrMalformedToken) ||
		errors.Is(err, session.ErrCorruptUser)
}

// handleError turns a failed action into a notice. The action is not
// retried. A rejected or expired session also moves the app to the login
// view.
func (a *App) handleError(ctx context.Context, err error) {
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}

	var fe validation.FieldErrors
	if errors.As(err, &fe) {
		for _, msg := range fe.Messages() {
			a.notifier.Error(msg)
		}
		return
	}

	a.logger.Error(ctx, "action failed", "error", err)

	var apiErr *api.Error
	switch {
	case errors.Is(err, api.ErrUnauthorized), isSessionEnd(err):
		a.notifier.Error(msgSessionExpired)
		a.setLocation(router.PathLogin)
	case errors.Is(err, api.ErrForbidden):
		a.notifier.Error(msgForbidden)
	case errors.Is(err, api.ErrNotFound):
		a.notifier.Error(msgNotFound)
	case errors.Is(err, api.ErrValidation):
		a.notifier.Error(msgInvalidInput)
	case errors.Is(err, api.ErrRateLimited):
		a.notifier.Error(msgRateLimited)
	case errors.Is(err, api.ErrServer):
		a.notifier.Error(msgServerError)
	case errors.Is(err, api.ErrUnavailable):
		a.notifier.Error(msgNetworkError)
	case errors.As(err, &apiErr) && apiErr.Message != "":
		a.notifier.Error(apiErr.Message)
	default:
		a.notifier.Error(msgUnexpected)
	}
}
