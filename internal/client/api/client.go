// Package api talks to the dashboard backend over REST/JSON.
//
// HTTPClient plays the role of a request/response interceptor pair: every
// request gets the bearer token from a TokenSource and a fresh X-Request-ID,
// and every 401 answer to an authenticated request is reported to the
// OnUnauthorized hook before the error is returned. Failures are classified
// once here: *Error for answered requests, ErrUnavailable for requests that
// got no answer. There are no retries.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/stockdash/internal/client/models"
	"github.com/dmitrijs2005/stockdash/internal/logging"
	"github.com/google/uuid"
)

// Client is the backend contract.
type Client interface {
	Login(ctx context.Context, creds models.Credentials) (models.AuthResponse, error)
	Signup(ctx context.Context, creds models.Credentials) (models.AuthResponse, error)
	Logout(ctx context.Context) error
	Verify(ctx context.Context) (models.User, error)
	DashboardStats(ctx context.Context) (models.DashboardStats, error)
	ListUsers(ctx context.Context, q models.UserQuery) (models.UserPage, error)
	UpdateUser(ctx context.Context, id string, u models.UserUpdate) (models.User, error)
	DeleteUser(ctx context.Context, id string) error
	Analytics(ctx context.Context) (models.Analytics, error)
}

// TokenSource returns the bearer token to attach, or "" for none.
type TokenSource func() string

// UnauthorizedFunc receives the 401 error of an authenticated request.
type UnauthorizedFunc func(ctx context.Context, err error)

const (
	RequestIDHeader = "X-Request-ID"
	maxBodySize     = 4 << 20
)

type HTTPClient struct {
	baseURL        string
	httpClient     *http.Client
	timeout        time.Duration
	token          TokenSource
	onUnauthorized UnauthorizedFunc
	logger         logging.Logger
	newRequestID   func() string
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(baseURL string, timeout time.Duration, logger logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   &http.Client{},
		timeout:      timeout,
		logger:       logger,
		newRequestID: uuid.NewString,
	}
}

func (c *HTTPClient) SetTokenSource(fn TokenSource) { c.token = fn }

func (c *HTTPClient) OnUnauthorized(fn UnauthorizedFunc) { c.onUnauthorized = fn }

func (c *HTTPClient) Login(ctx context.Context, creds models.Credentials) (models.AuthResponse, error) {
	var out models.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", nil, creds, &out)
	return out, err
}

func (c *HTTPClient) Signup(ctx context.Context, creds models.Credentials) (models.AuthResponse, error) {
	var out models.AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/signup", nil, creds, &out)
	return out, err
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil, nil)
}

func (c *HTTPClient) Verify(ctx context.Context) (models.User, error) {
	return envelope[models.User](ctx, c, http.MethodGet, "/auth/verify", nil, nil)
}

func (c *HTTPClient) DashboardStats(ctx context.Context) (models.DashboardStats, error) {
	return envelope[models.DashboardStats](ctx, c, http.MethodGet, "/admin/dashboard/stats", nil, nil)
}

func (c *HTTPClient) ListUsers(ctx context.Context, q models.UserQuery) (models.UserPage, error) {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.Status != "" {
		v.Set("status", string(q.Status))
	}
	return envelope[models.UserPage](ctx, c, http.MethodGet, "/admin/users", v, nil)
}

func (c *HTTPClient) UpdateUser(ctx context.Context, id string, u models.UserUpdate) (models.User, error) {
	return envelope[models.User](ctx, c, http.MethodPut, "/admin/users/"+url.PathEscape(id), nil, u)
}

func (c *HTTPClient) DeleteUser(ctx context.Context, id string) error {
	_, err := envelope[json.RawMessage](ctx, c, http.MethodDelete, "/admin/users/"+url.PathEscape(id), nil, nil)
	return err
}

func (c *HTTPClient) Analytics(ctx context.Context) (models.Analytics, error) {
	return envelope[models.Analytics](ctx, c, http.MethodGet, "/admin/analytics", nil, nil)
}

// envelope performs a request whose body is an Envelope[T] and unwraps it.
func envelope[T any](ctx context.Context, c *HTTPClient, method, path string, query url.Values, body any) (T, error) {
	var env models.Envelope[T]
	if err := c.do(ctx, method, path, query, body, &env); err != nil {
		var zero T
		return zero, err
	}
	if !env.Success {
		var zero T
		msg := env.Message
		if msg == "" {
			msg = "request failed"
		}
		return zero, &Error{Status: http.StatusOK, Message: msg, Kind: KindRejected}
	}
	return env.Data, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	parent := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	var rdr io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rdr = bytes.NewReader(data)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, rdr)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	requestID := c.newRequestID()
	req.Header.Set(RequestIDHeader, requestID)

	var token string
	if c.token != nil {
		token = c.token()
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	log := c.logger.With("method", method, "path", path, "request_id", requestID)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if parent.Err() != nil {
			return parent.Err()
		}
		log.Warn(ctx, "request failed", "error", err)
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("%w: read response: %w", ErrUnavailable, err)
	}

	log.Debug(ctx, "request finished", "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newError(resp.StatusCode, serverMessage(data))
		if apiErr.Kind == KindUnauthorized && token != "" && c.onUnauthorized != nil {
			c.onUnauthorized(context.WithoutCancel(parent), apiErr)
		}
		return apiErr
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// serverMessage extracts the message field of an error body, if any.
func serverMessage(data []byte) string {
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	return body.Error
}

// IsNetwork reports whether err means the backend could not be reached.
func IsNetwork(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
