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
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// sessionCookieName is the cookie carrying the authenticated session token.
const sessionCookieName = "session"

// AuthError indicates that the session has expired or the credentials were
// rejected (HTTP 401/403). It is terminal for the current session: the
// caller must clear local auth markers and return to the login entry point.
type AuthError struct {
	StatusCode int
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("session expired (%d)", e.StatusCode)
}

// IsAuthError reports whether err (or any error in its chain) is an AuthError.
func IsAuthError(err error) bool {
	var authErr *AuthError
	return errors.As(err, &authErr)
}

// Error is a normalized non-auth API failure carrying the server-provided
// message, or a generic fallback when the server sent none.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

// serverError is the error body shape the webmail API returns on failures.
type serverError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// genericFailureMessage is surfaced when the server gave no usable message.
const genericFailureMessage = "something went wrong, please try again"

// Client is a thin HTTP client for the webmail REST API. It attaches the
// session cookie to every request, normalizes error responses, and captures
// refreshed session cookies from responses.
type Client struct {
	baseURL    string
	httpClient *http.Client

	// mu guards token: requests run in their own goroutines and the
	// server may rotate the cookie on any response.
	mu    sync.Mutex
	token string
}

// NewClient creates a webmail API client. The baseURL should be the root of
// the API (e.g. https://mail.example.com/api).
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SetToken replaces the session token attached to outgoing requests.
// Called when switching between locally known accounts.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current session token so it can be persisted per
// account (keyring).
func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// ClearToken drops the session token, e.g. after logout or a 401.
func (c *Client) ClearToken() {
	c.mu.Lock()
	c.token = ""
	c.mu.Unlock()
}

// Get performs an HTTP GET request and unmarshals the JSON response.
func (c *Client) Get(ctx context.Context, path string, result interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, result)
}

// Post performs an HTTP POST request with a JSON body and unmarshals the
// JSON response.
func (c *Client) Post(
	ctx context.Context,
	path string,
	body interface{},
	result interface{},
) error {
	return c.do(ctx, http.MethodPost, path, body, result)
}

// Put performs an HTTP PUT request with a JSON body.
func (c *Client) Put(
	ctx context.Context,
	path string,
	body interface{},
	result interface{},
) error {
	return c.do(ctx, http.MethodPut, path, body, result)
}

// Delete performs an HTTP DELETE request.
func (c *Client) Delete(ctx context.Context, path string, result interface{}) error {
	return c.do(ctx, http.MethodDelete, path, nil, result)
}

// do is the core HTTP method that builds the request, attaches the session
// cookie, and handles JSON (de)serialization and error normalization.
// Failures are never retried; recovery is the caller's next explicit refresh.
func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	body interface{},
	result interface{},
) error {
	var bodyReader io.Reader
	contentType := ""
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
		contentType = "application/json"
	}

	return c.send(ctx, method, path, bodyReader, contentType, result)
}

// send executes a prepared request body. Multipart callers use it directly
// with their own content type.
func (c *Client) send(
	ctx context.Context,
	method string,
	path string,
	bodyReader io.Reader,
	contentType string,
	result interface{},
) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.Token(); token != "" {
		req.AddCookie(&http.Cookie{Name: sessionCookieName, Value: token})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("method", method).Str("path", path).
			Msg("request failed")
		return fmt.Errorf("executing request %s %s: %w", method, path, err)
	}

	respBody, readErr := io.ReadAll(resp.Body)
	resp.Body.Close()
	if readErr != nil {
		return fmt.Errorf("reading response body: %w", readErr)
	}

	// The server may rotate the session cookie on any response.
	for _, ck := range resp.Cookies() {
		if ck.Name == sessionCookieName {
			c.SetToken(ck.Value)
		}
	}

	if resp.StatusCode == http.StatusUnauthorized ||
		resp.StatusCode == http.StatusForbidden {
		c.ClearToken()
		return &AuthError{StatusCode: resp.StatusCode}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return normalizeError(resp.StatusCode, respBody)
	}

	if result == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	if err := json.Unmarshal(respBody, result); err != nil {
		return fmt.Errorf("unmarshaling response from %s %s: %w", method, path, err)
	}

	return nil
}

// normalizeError turns an error response into a uniform *Error carrying the
// server message when present.
func normalizeError(status int, body []byte) error {
	var se serverError
	if json.Unmarshal(body, &se) == nil {
		if se.Message != "" {
			return &Error{StatusCode: status, Message: se.Message}
		}
		if se.Error != "" {
			return &Error{StatusCode: status, Message: se.Error}
		}
	}
	return &Error{StatusCode: status, Message: genericFailureMessage}
}

// queryString encodes non-empty values into a "?k=v&..." suffix.
func queryString(values url.Values) string {
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}
