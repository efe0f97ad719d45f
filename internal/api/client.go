package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotConfigured = errors.New("api: http client not configured")
	ErrNoBaseURL     = errors.New("api: base url not configured")
)

const defaultTimeout = 10 * time.Second

// TokenSource supplies the bearer token for outgoing requests. The
// session store implements it; the client never reads storage itself.
type TokenSource interface {
	Token() string
}

// APIError carries a failure the server reported itself.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: server returned %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: server returned %d", e.Status)
}

// ServerMessage extracts the server-provided message from err, or
// falls back to err.Error() for transport failures.
func ServerMessage(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}

// Client talks to the platform's admin REST API.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Tokens  TokenSource
	Logger  *slog.Logger
	Timeout time.Duration
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out, false)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any, idempotent bool) error {
	if c == nil || c.HTTP == nil {
		return ErrNotConfigured
	}
	if c.BaseURL == "" {
		return ErrNoBaseURL
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	endpoint := strings.TrimRight(c.BaseURL, "/") + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Tokens != nil {
		if token := c.Tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	if idempotent {
		req.Header.Set("Idempotency-Key", uuid.NewString())
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
			err = fmt.Errorf("api: request timeout (%s %s)", method, path)
		} else {
			err = fmt.Errorf("api: platform unreachable (%s %s): %w", method, path, err)
		}
		c.logError("request failed", err)
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		err := c.decodeError(resp)
		c.logError("request rejected", err)
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.logError("response decode failed", err)
		return fmt.Errorf("api: decode response (%s %s): %w", method, path, err)
	}
	return nil
}

// decodeError prefers the server's own message and falls back to a
// body snippet when the payload is not the usual envelope.
func (c *Client) decodeError(resp *http.Response) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))

	var env envelope
	if err := json.Unmarshal(snippet, &env); err == nil && env.Message != "" {
		return &APIError{Status: resp.StatusCode, Message: env.Message}
	}
	return &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(snippet))}
}

// getEnvelope fetches a {success, data} envelope and decodes data into out.
func (c *Client) getEnvelope(ctx context.Context, path string, out any) error {
	var env envelope
	if err := c.get(ctx, path, nil, &env); err != nil {
		return err
	}
	return decodeEnvelopeData(env, out, path)
}

func decodeEnvelopeData(env envelope, out any, path string) error {
	if len(env.Data) == 0 {
		return fmt.Errorf("api: empty response payload (%s)", path)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("api: decode payload (%s): %w", path, err)
	}
	return nil
}

// listPage fetches one page of a list endpoint.
func listPage[T any](ctx context.Context, c *Client, path string, q ListQuery) (*Page[T], error) {
	var page Page[T]
	if err := c.get(ctx, path, q.Values(), &page); err != nil {
		return nil, err
	}
	return &page, nil
}

func (c *Client) logError(msg string, err error) {
	if c != nil && c.Logger != nil {
		c.Logger.Error(msg, "error", err)
	}
}
