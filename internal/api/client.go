// ABOUTME: HTTP client for the Birthday Tracker backend API
// ABOUTME: Attaches the session token outbound and normalizes every failure inbound

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/krills/birthday-tracker/cli/internal/session"
)

// Client is the API client for the Birthday Tracker backend
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *session.Store
}

// New creates a new API client with the given base URL and token store
func New(baseURL string, store *session.Store) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		session: store,
	}
}

// BaseURL returns the configured backend address
func (c *Client) BaseURL() string {
	return c.baseURL
}

// isAuthPath reports whether the path is an unauthenticated entry point.
// A 401 from these means bad credentials, not a stale session.
func isAuthPath(path string) bool {
	return path == "/api/auth/login" || path == "/api/auth/register"
}

// do runs one request: marshals body, attaches the bearer token when present,
// and converts any failure into an *APIError. A 401 from an authenticated
// endpoint additionally clears the stored session token; routing away is the
// caller's decision.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &APIError{Kind: ErrTransport, Message: fmt.Sprintf("failed to marshal request: %v", err)}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &APIError{Kind: ErrTransport, Message: fmt.Sprintf("failed to create request: %v", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	if token, ok := c.session.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.requestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		data, _ := io.ReadAll(resp.Body)
		if resp.StatusCode == http.StatusUnauthorized && !isAuthPath(path) {
			c.session.Clear()
		}
		return NormalizeBody(resp.StatusCode, data)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &APIError{Kind: ErrTransport, Message: fmt.Sprintf("invalid response from backend: %v", err)}
	}
	return nil
}

// requestError converts context errors to user-friendly messages
func (c *Client) requestError(ctx context.Context, err error) *APIError {
	if ctx.Err() == context.Canceled {
		return &APIError{Kind: ErrTransport, Message: "request canceled"}
	}
	if ctx.Err() == context.DeadlineExceeded {
		return &APIError{Kind: ErrTransport, Message: "request timed out"}
	}
	return &APIError{Kind: ErrTransport, Message: fmt.Sprintf("cannot connect to backend at %s: %v", c.baseURL, err)}
}

// Register calls POST /api/auth/register
func (c *Client) Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login calls POST /api/auth/login
func (c *Client) Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me calls GET /api/me
func (c *Client) Me(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/api/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile calls PUT /api/me
func (c *Client) UpdateProfile(ctx context.Context, req *ProfileRequest) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodPut, "/api/me", req, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword calls PATCH /api/me/password
func (c *Client) ChangePassword(ctx context.Context, req *ChangePasswordRequest) error {
	return c.do(ctx, http.MethodPatch, "/api/me/password", req, nil)
}

// DeleteAccount calls DELETE /api/me
func (c *Client) DeleteAccount(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/me", nil, nil)
}

// Friends calls GET /api/friends
func (c *Client) Friends(ctx context.Context) ([]Friend, error) {
	var friends []Friend
	if err := c.do(ctx, http.MethodGet, "/api/friends", nil, &friends); err != nil {
		return nil, err
	}
	return friends, nil
}

// UpcomingFriends calls GET /api/friends/upcoming, ordered by next birthday
func (c *Client) UpcomingFriends(ctx context.Context) ([]Friend, error) {
	var friends []Friend
	if err := c.do(ctx, http.MethodGet, "/api/friends/upcoming", nil, &friends); err != nil {
		return nil, err
	}
	return friends, nil
}

// CreateFriend calls POST /api/friends
func (c *Client) CreateFriend(ctx context.Context, req *FriendRequest) (*Friend, error) {
	var friend Friend
	if err := c.do(ctx, http.MethodPost, "/api/friends", req, &friend); err != nil {
		return nil, err
	}
	return &friend, nil
}

// UpdateFriend calls PUT /api/friends/{id}
func (c *Client) UpdateFriend(ctx context.Context, id string, req *FriendRequest) (*Friend, error) {
	var friend Friend
	if err := c.do(ctx, http.MethodPut, "/api/friends/"+id, req, &friend); err != nil {
		return nil, err
	}
	return &friend, nil
}

// DeleteFriend calls DELETE /api/friends/{id}
func (c *Client) DeleteFriend(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/friends/"+id, nil, nil)
}
