// Package profileapi is the client for the optional profile backend. The
// backend is probed once at startup; when it is unreachable every dependent
// feature is skipped, not failed. Callers treat all failures here as
// non-fatal unless they decide otherwise.
package profileapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"kzone-booking-backend/internal/models"
)

// ErrUnavailable is returned when the backend is not configured or failed
// its health probe
var ErrUnavailable = fmt.Errorf("profile backend unavailable")

// BackendUser is the payload for POST /auth/users
type BackendUser struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`
}

// Info is the backend's version/environment report from GET /
type Info struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

// Client talks to the optional profile backend over REST
type Client struct {
	baseURL   string
	http      *http.Client
	available atomic.Bool
}

// NewClient creates a backend client. An empty baseURL disables the backend
// entirely.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Probe runs the startup health check and records the result. A failed probe
// is logged and leaves the client in degraded mode; it never fails startup.
func (c *Client) Probe(ctx context.Context) {
	if c.baseURL == "" {
		log.Info().Msg("Profile backend not configured, skipping")
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		log.Warn().Err(err).Msg("Profile backend health check failed")
		return
	}
	resp, err := c.http.Do(req)
	if err != nil {
		log.Warn().Err(err).Msg("Profile backend unreachable, continuing without it")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Warn().Int("status", resp.StatusCode).Msg("Profile backend unhealthy, continuing without it")
		return
	}

	c.available.Store(true)
	log.Info().Str("base_url", c.baseURL).Msg("Profile backend available")
}

// Available reports whether the startup probe succeeded
func (c *Client) Available() bool {
	return c.available.Load()
}

// GetInfo fetches the backend's version/environment info
func (c *Client) GetInfo(ctx context.Context) (*Info, error) {
	var info Info
	if err := c.do(ctx, http.MethodGet, "/", "", nil, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// GetProfile fetches the caller's profile mirror
func (c *Client) GetProfile(ctx context.Context, token string) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := c.do(ctx, http.MethodGet, "/auth/profile", token, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile mirrors a profile update to the backend
func (c *Client) UpdateProfile(ctx context.Context, token string, update models.ProfileUpdate) error {
	return c.do(ctx, http.MethodPut, "/auth/profile", token, update, nil)
}

// CreateUser mirrors a new account to the backend
func (c *Client) CreateUser(ctx context.Context, user BackendUser) error {
	return c.do(ctx, http.MethodPost, "/auth/users", "", user, nil)
}

// DeleteUser removes a mirrored account
func (c *Client) DeleteUser(ctx context.Context, token, uid string) error {
	return c.do(ctx, http.MethodDelete, "/auth/users/"+uid, token, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path, token string, body, out interface{}) error {
	if !c.Available() {
		return ErrUnavailable
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("backend returned status %d", resp.StatusCode)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode backend response: %w", err)
		}
	}
	return nil
}
