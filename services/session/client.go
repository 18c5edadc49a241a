package session

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"fintrack/models"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	requestTimeout        = 10 * time.Second
	validityCheckInterval = 5 * time.Minute
	refreshLookahead      = 10 * time.Minute
)

// Client performs authenticated requests against the upstream finance API.
// A 401 response triggers a single-flight token refresh followed by exactly
// one replay of the original request; a second 401 tears the session down.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      TokenStore
	logger     *zap.Logger
	clock      clockwork.Clock

	refreshGroup singleflight.Group

	checkerMu   sync.Mutex
	checkerStop chan struct{}

	onLogout func()
}

// NewClient creates a session client. The clock is injected so timer-driven
// behavior can be tested; production callers pass clockwork.NewRealClock().
func NewClient(baseURL string, store TokenStore, logger *zap.Logger, clock clockwork.Clock) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: requestTimeout},
		store:      store,
		logger:     logger,
		clock:      clock,
	}
}

// SetOnLogout registers a hook invoked after the session is torn down, either
// explicitly or following an irrecoverable refresh failure. The dashboard
// uses it to stop background polling and bounce the client to the login view.
func (c *Client) SetOnLogout(fn func()) {
	c.onLogout = fn
}

// LoginResult is the successful /auth/login response.
type LoginResult struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         *models.User `json:"user"`
}

// Login authenticates against the upstream API, persists the token pair and
// user profile, and starts the periodic validity check.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	payload, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return nil, &AuthError{Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(payload))
	if err != nil {
		return nil, &AuthError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &AuthError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &AuthError{Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &AuthError{Err: fmt.Errorf("login rejected with status %d: %s", resp.StatusCode, apiMessage(raw))}
	}

	var result LoginResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, &AuthError{Err: err}
	}
	if result.AccessToken == "" || result.User == nil {
		return nil, &AuthError{Err: errors.New("malformed login response")}
	}

	if err := c.store.SetToken(ctx, result.AccessToken); err != nil {
		return nil, fmt.Errorf("failed to persist access token: %w", err)
	}
	if result.RefreshToken != "" {
		if err := c.store.SetRefreshToken(ctx, result.RefreshToken); err != nil {
			return nil, fmt.Errorf("failed to persist refresh token: %w", err)
		}
	}
	if err := c.store.SetUser(ctx, result.User); err != nil {
		return nil, fmt.Errorf("failed to persist user profile: %w", err)
	}

	c.startValidityCheck()
	return &result, nil
}

// Request issues an authenticated call and decodes the JSON response into out
// when out is non-nil.
func (c *Client) Request(ctx context.Context, method, endpoint string, body any, out any) error {
	return c.do(ctx, method, endpoint, body, out, false)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body any, out any, retried bool) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token, err := c.store.Token(ctx); err == nil && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if retried {
			// Replay already happened once; the refreshed token was
			// rejected too, so the session is unrecoverable.
			c.forceLogout(ctx)
			return ErrSessionExpired
		}
		if _, err := c.refresh(ctx); err != nil {
			return ErrSessionExpired
		}
		return c.do(ctx, method, endpoint, body, out, true)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Message: apiMessage(raw)}
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// apiMessage extracts the error field from the upstream error envelope.
func apiMessage(raw []byte) string {
	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error != "" {
		return envelope.Error
	}
	return "request failed"
}

func (c *Client) Get(ctx context.Context, endpoint string, out any) error {
	return c.Request(ctx, http.MethodGet, endpoint, nil, out)
}

func (c *Client) Post(ctx context.Context, endpoint string, body any, out any) error {
	return c.Request(ctx, http.MethodPost, endpoint, body, out)
}

func (c *Client) Put(ctx context.Context, endpoint string, body any, out any) error {
	return c.Request(ctx, http.MethodPut, endpoint, body, out)
}

func (c *Client) Delete(ctx context.Context, endpoint string, out any) error {
	return c.Request(ctx, http.MethodDelete, endpoint, nil, out)
}

// CurrentUser fetches the authenticated profile from /auth/me.
func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.Get(ctx, "/auth/me", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// IsAuthenticated reports whether an access token is currently stored.
func (c *Client) IsAuthenticated(ctx context.Context) bool {
	token, err := c.store.Token(ctx)
	return err == nil && token != ""
}

// Logout clears stored credentials and stops the background validity check.
// Calling it on an already-cleared session is a no-op.
func (c *Client) Logout(ctx context.Context) error {
	c.stopValidityCheck()
	if err := c.store.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear session storage: %w", err)
	}
	if c.onLogout != nil {
		c.onLogout()
	}
	return nil
}

func (c *Client) forceLogout(ctx context.Context) {
	if err := c.Logout(ctx); err != nil {
		c.logger.Error("Failed to clear session", zap.Error(err))
	}
}
