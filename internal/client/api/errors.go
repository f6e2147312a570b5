package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrUnavailable means no response was received: connection refused,
	// DNS failure, timeout.
	ErrUnavailable = errors.New("server unavailable")

	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrRateLimited  = errors.New("rate limited")
	ErrServer       = errors.New("server error")

	// ErrRejected is a 2xx envelope whose success flag is false.
	ErrRejected = errors.New("request rejected")
)

// Kind classifies a backend error response.
type Kind int

const (
	KindOther Kind = iota
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindValidation
	KindRateLimited
	KindServer
	KindRejected
)

func (k Kind) String() string {
	switch k {
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not-found"
	case KindValidation:
		return "validation"
	case KindRateLimited:
		return "rate-limited"
	case KindServer:
		return "server"
	case KindRejected:
		return "rejected"
	default:
		return "other"
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindUnauthorized:
		return ErrUnauthorized
	case KindForbidden:
		return ErrForbidden
	case KindNotFound:
		return ErrNotFound
	case KindValidation:
		return ErrValidation
	case KindRateLimited:
		return ErrRateLimited
	case KindServer:
		return ErrServer
	case KindRejected:
		return ErrRejected
	default:
		return nil
	}
}

// KindOf maps an HTTP status to a Kind.
func KindOf(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusUnprocessableEntity:
		return KindValidation
	case status == http.StatusTooManyRequests:
		return KindRateLimited
	case status >= 500 && status <= 599:
		return KindServer
	default:
		return KindOther
	}
}

// Error is a response the backend answered with. Message is the server's
// message, if it sent one.
type Error struct {
	Status  int
	Message string
	Kind    Kind
}

func newError(status int, message string) *Error {
	return &Error{Status: status, Message: message, Kind: KindOf(status)}
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("api: %d %s", e.Status, e.Kind)
	}
	return fmt.Sprintf("api: %d %s: %s", e.Status, e.Kind, e.Message)
}

// Is matches the sentinel of the error's kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && s == target
}
