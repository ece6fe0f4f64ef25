// Package apiclient is the Go consumer of the marketplace API. Every call
// retries transient failures with exponential backoff before surfacing an
// error, and every surfaced error carries a user-facing message.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	defaultMaxRetries = 3
	defaultBaseDelay  = 1 * time.Second
)

// User-facing messages by error class.
const (
	userMessageConnectivity = "Unable to connect to the server. Please check your internet connection and try again."
	userMessageNotFound     = "The requested resource was not found."
	userMessageServerError  = "Server error occurred. Please try again later or contact support."
	userMessageRateLimited  = "Too many requests. Please wait a moment and try again."
	userMessageFallback     = "An unexpected error occurred. Please try again."
)

// APIError is the error type every failed call surfaces. Status is zero
// when no HTTP response was obtained (a connectivity failure); Details is
// the parsed error body when the server sent one.
type APIError struct {
	Status      int
	Message     string
	Details     map[string]interface{}
	UserMessage string

	connectivity bool
	cause        error
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("api: %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: %s", e.Message)
}

// Unwrap returns the transport-level cause, if any
func (e *APIError) Unwrap() error {
	return e.cause
}

// IsConnectivity reports whether no HTTP response was obtained
func (e *APIError) IsConnectivity() bool {
	return e.connectivity
}

// Retryable classifies the error: connectivity failures, timeouts (408),
// rate limits (429), and server errors (>=500) are worth retrying; other
// client errors are not.
func (e *APIError) Retryable() bool {
	if e.connectivity {
		return true
	}
	return e.Status == http.StatusRequestTimeout ||
		e.Status == http.StatusTooManyRequests ||
		e.Status >= http.StatusInternalServerError
}

// userMessageFor maps an error class to the fixed user-facing message table.
func userMessageFor(status int, connectivity bool, message string) string {
	switch {
	case connectivity:
		return userMessageConnectivity
	case status == http.StatusNotFound:
		return userMessageNotFound
	case status == http.StatusInternalServerError:
		return userMessageServerError
	case status == http.StatusTooManyRequests:
		return userMessageRateLimited
	case message != "":
		return message
	default:
		return userMessageFallback
	}
}

func newStatusError(status int, message string, details map[string]interface{}) *APIError {
	return &APIError{
		Status:      status,
		Message:     message,
		Details:     details,
		UserMessage: userMessageFor(status, false, message),
	}
}

func newConnectivityError(cause error) *APIError {
	return &APIError{
		Message:      "unable to connect to the server",
		UserMessage:  userMessageFor(0, true, ""),
		connectivity: true,
		cause:        cause,
	}
}

// Client performs HTTP requests against the marketplace API with retry and
// backoff. It keeps no state across calls; retry attempt state lives only
// for the duration of one logical request.
type Client struct {
	baseURL    string
	httpClient *http.Client
	maxRetries int
	baseDelay  time.Duration
	logger     *zap.Logger
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithRetryPolicy overrides the retry budget and base backoff delay
func WithRetryPolicy(maxRetries int, baseDelay time.Duration) Option {
	return func(c *Client) {
		c.maxRetries = maxRetries
		c.baseDelay = baseDelay
	}
}

// WithLogger sets the client logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new API client for the given base URL, e.g.
// "http://localhost:3001/api".
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: http.DefaultClient,
		maxRetries: defaultMaxRetries,
		baseDelay:  defaultBaseDelay,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do performs one logical request: up to maxRetries retries after the
// initial attempt, exponential backoff between attempts, and the last
// error re-raised once the budget is exhausted. Non-retryable errors are
// raised immediately. When out is non-nil the response body is decoded
// into it.
func (c *Client) Do(ctx context.Context, method, path string, body, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return &APIError{
				Message:     "failed to encode request body",
				UserMessage: userMessageFallback,
				cause:       err,
			}
		}
	}

	var lastErr *APIError
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		err := c.attempt(ctx, method, path, payload, out)
		if err == nil {
			return nil
		}

		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			return err
		}
		lastErr = apiErr

		if !apiErr.Retryable() || attempt == c.maxRetries {
			break
		}

		// delay = baseDelay * 2^attempt, no jitter
		delay := c.baseDelay << uint(attempt)
		c.logger.Debug("Retrying request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("attempt", attempt+1),
			zap.Int("maxRetries", c.maxRetries),
			zap.Duration("delay", delay),
		)

		select {
		case <-ctx.Done():
			return lastErr
		case <-time.After(delay):
		}
	}

	return lastErr
}

// attempt performs a single HTTP round trip.
func (c *Client) attempt(ctx context.Context, method, path string, payload []byte, out interface{}) error {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &APIError{
			Message:     "failed to build request",
			UserMessage: userMessageFallback,
			cause:       err,
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// No HTTP status was obtained
		return newConnectivityError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return newConnectivityError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		message := fmt.Sprintf("API error: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
		var details map[string]interface{}
		if json.Unmarshal(data, &details) == nil {
			if m, ok := details["message"].(string); ok && m != "" {
				message = m
			}
		}
		return newStatusError(resp.StatusCode, message, details)
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return &APIError{
				Status:      resp.StatusCode,
				Message:     "invalid JSON in response body",
				UserMessage: userMessageFallback,
				cause:       err,
			}
		}
	}
	return nil
}

// get is a convenience wrapper for GET requests
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	return c.Do(ctx, http.MethodGet, path, nil, out)
}

// post is a convenience wrapper for POST requests
func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	return c.Do(ctx, http.MethodPost, path, body, out)
}
