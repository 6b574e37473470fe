// Package api is the single chokepoint for all HTTP calls to the CareHub
// backend. It attaches credentials, normalizes error shapes, and signals
// session invalidation when the backend rejects a credential.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/carehub-project/carectl/internal/validate"
)

// CredentialSource supplies the current bearer token, if any. An empty
// string means the request goes out anonymous.
type CredentialSource interface {
	AccessToken() string
}

// Client issues authenticated requests against the backend REST surface.
// It owns no session state; on a 401 it fires the session-invalidated hook
// exactly once and leaves the purge to the subscriber.
type Client struct {
	baseURL          string
	httpClient       *http.Client
	creds            CredentialSource
	logger           *slog.Logger
	limiter          *rate.Limiter
	validator        *validate.Validator
	onSessionInvalid func()
}

// Option configures a Client
type Option func(*Client)

// WithRateLimit overrides the default request rate limit
func WithRateLimit(rps float64, burst int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithHTTPClient substitutes the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// New creates a client for the backend at baseURL
func New(baseURL string, timeout time.Duration, creds CredentialSource, logger *slog.Logger, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        20,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		creds:     creds,
		logger:    logger,
		limiter:   rate.NewLimiter(rate.Limit(10), 20),
		validator: validate.New(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnSessionInvalidated registers the hook fired when the backend answers 401.
// The subscriber owns the purge of persisted credentials; the command layer
// owns telling the user to log in again.
func (c *Client) OnSessionInvalidated(fn func()) {
	c.onSessionInvalid = fn
}

// backendError is the error envelope the backend sends on failure
type backendError struct {
	Message string `json:"message"`
}

// do issues a request and decodes the JSON response into out (nil discards
// the body). Query parameters must already be filtered down to the ones the
// caller actually set; absent means no filter, never an empty value.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrUnexpected, err)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: encoding request body: %v", ErrUnexpected, err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnexpected, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if token := c.creds.AccessToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.logger.Debug("backend request", "method", method, "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnexpected, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		c.logger.Warn("authentication rejected by backend", "method", method, "path", path)
		if c.onSessionInvalid != nil {
			c.onSessionInvalid()
		}
		return ErrUnauthorized
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: reading response: %v", ErrUnexpected, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var e backendError
		_ = json.Unmarshal(data, &e)
		if e.Message == "" {
			e.Message = "request failed"
		}
		return &APIError{Status: resp.StatusCode, Message: e.Message}
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%w: decoding response: %v", ErrUnexpected, err)
		}
	}
	return nil
}

// check validates a request payload before any network traffic happens
func (c *Client) check(input any) error {
	return c.validator.Validate(input)
}
