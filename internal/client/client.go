package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"strings"

	"github.com/nileshkumaryadav1/smart-campus-service-hub/internal/auth"
)

// Client talks to the portal API the way the browser app does: the session
// cookie lives in a jar, and the session cache only changes after the server
// has answered.
type Client struct {
	baseURL string
	http    *http.Client
	cache   *SessionCache
}

func New(baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("client: cookie jar: %w", err)
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Jar: jar},
		cache:   NewSessionCache(),
	}, nil
}

// Sessions exposes the session cache for guards and UI state.
func (c *Client) Sessions() *SessionCache {
	return c.cache
}

// APIError is a non-2xx answer from the portal.
type APIError struct {
	Status int
	Code   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("client: %d %s", e.Status, e.Code)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("client: encode request: %w", err)
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return fmt.Errorf("client: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var apiErr struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return &APIError{Status: resp.StatusCode, Code: apiErr.Message}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("client: decode response: %w", err)
	}
	return nil
}

// Register creates an account. It does not sign the user in.
func (c *Client) Register(ctx context.Context, name, email, password string) (auth.Profile, error) {
	var profile auth.Profile
	err := c.do(ctx, http.MethodPost, "/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, &profile)
	return profile, err
}

// Login signs in and then confirms the session against /auth/me before the
// cache changes. A cookie that the server will not honor must never become
// a cached signed-in state.
func (c *Client) Login(ctx context.Context, email, password string) (auth.Profile, error) {
	err := c.do(ctx, http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, nil)
	if err != nil {
		return auth.Profile{}, err
	}
	return c.Me(ctx)
}

// Logout signs out. The cache is cleared before navigate runs, so whatever
// renders next already sees a signed-out session.
func (c *Client) Logout(ctx context.Context, navigate func()) error {
	if err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil); err != nil {
		return err
	}
	c.cache.Set(nil)
	if navigate != nil {
		navigate()
	}
	return nil
}

// Me asks the server who the cookie belongs to and refreshes the cache with
// the answer. A 401 ends loading with a signed-out cache rather than an
// error surfaced to the caller.
func (c *Client) Me(ctx context.Context) (auth.Profile, error) {
	var profile auth.Profile
	err := c.do(ctx, http.MethodGet, "/auth/me", nil, &profile)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			c.cache.Set(nil)
		}
		return auth.Profile{}, err
	}
	c.cache.Set(&profile)
	return profile, nil
}
