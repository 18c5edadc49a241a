package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// refresh mints a new access token using the stored refresh token. Concurrent
// callers are collapsed into a single upstream call and all observe the same
// outcome. A failed refresh tears the session down; the next 401 or periodic
// check starts a fresh attempt.
func (c *Client) refresh(ctx context.Context) (string, error) {
	v, err, _ := c.refreshGroup.Do("refresh", func() (any, error) {
		return c.doRefresh(ctx)
	})
	if err != nil {
		c.forceLogout(ctx)
		return "", err
	}
	return v.(string), nil
}

func (c *Client) doRefresh(ctx context.Context) (string, error) {
	refreshToken, err := c.store.RefreshToken(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read refresh token: %w", err)
	}
	if refreshToken == "" {
		return "", errors.New("refresh token not found")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/refresh", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+refreshToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("token refresh failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("token refresh failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token refresh failed with status %d: %s", resp.StatusCode, apiMessage(raw))
	}

	var result struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.Unmarshal(raw, &result); err != nil {
		return "", fmt.Errorf("token refresh returned malformed body: %w", err)
	}
	if result.AccessToken == "" {
		return "", errors.New("token refresh returned no access token")
	}

	if err := c.store.SetToken(ctx, result.AccessToken); err != nil {
		return "", fmt.Errorf("failed to persist refreshed token: %w", err)
	}
	// The server may omit rotation; the existing refresh token then stays
	// valid and is reused on the next refresh.
	if result.RefreshToken != "" {
		if err := c.store.SetRefreshToken(ctx, result.RefreshToken); err != nil {
			return "", fmt.Errorf("failed to persist rotated refresh token: %w", err)
		}
	}

	c.logger.Debug("Access token refreshed")
	return result.AccessToken, nil
}
