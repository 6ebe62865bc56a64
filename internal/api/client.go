package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// TokenSource supplies the current bearer credential, empty when logged out
type TokenSource interface {
	Token() string
}

// TokenFunc adapts a function to the TokenSource interface
type TokenFunc func() string

// Token returns the function's result
func (f TokenFunc) Token() string {
	return f()
}

// Client is the shared HTTP transport for all SmartPath service clients
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

// NewClient creates a client for the SmartPath backend API
func NewClient(baseURL string, timeout time.Duration, tokens TokenSource, logger *zap.Logger) *Client {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "smartpath-api",
		MaxRequests: 3,
		Interval:    30 * time.Second,
		Timeout:     15 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.Requests >= 5 && counts.TotalFailures*2 > counts.Requests
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		breaker: breaker,
		logger:  logger,
	}
}

// rawResponse carries the status and body of a completed round trip
type rawResponse struct {
	status int
	body   []byte
}

// errorPayload matches the backend's error envelope
type errorPayload struct {
	Error   string `json:"error"`
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

func (p errorPayload) text() string {
	switch {
	case p.Detail != "":
		return p.Detail
	case p.Error != "":
		return p.Error
	default:
		return p.Message
	}
}

// do issues a JSON request and decodes the response into out (out may be nil)
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var payload io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	result, err := c.breaker.Execute(func() (any, error) {
		resp, err := c.http.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}
		if resp.StatusCode >= http.StatusInternalServerError {
			return nil, remoteFromBody(resp.StatusCode, body)
		}
		return &rawResponse{status: resp.StatusCode, body: body}, nil
	})
	if err != nil {
		var remote *RemoteError
		if errors.As(err, &remote) {
			return remote
		}
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			c.logger.Warn("request short-circuited", zap.String("path", path))
			return NewRemoteError(0, "service temporarily unavailable")
		}
		return NewRemoteError(0, fmt.Sprintf("request failed: %v", err))
	}

	resp := result.(*rawResponse)
	switch {
	case resp.status == http.StatusUnauthorized:
		return ErrUnauthenticated
	case resp.status == http.StatusForbidden:
		return ErrForbidden
	case resp.status < http.StatusOK || resp.status >= http.StatusMultipleChoices:
		return remoteFromBody(resp.status, resp.body)
	}

	if out != nil && len(resp.body) > 0 {
		if err := json.Unmarshal(resp.body, out); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
	}
	return nil
}

// remoteFromBody builds a RemoteError from an error response body
func remoteFromBody(status int, body []byte) *RemoteError {
	var payload errorPayload
	if err := json.Unmarshal(body, &payload); err == nil {
		if msg := payload.text(); msg != "" {
			return NewRemoteError(status, msg)
		}
	}
	return NewRemoteError(status, "")
}
