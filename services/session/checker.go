package session

import (
	"context"

	"fintrack/utils"

	"go.uber.org/zap"
)

// startValidityCheck launches the periodic token expiry check. Invoked on
// login; a second call while a checker is already running is a no-op.
func (c *Client) startValidityCheck() {
	c.checkerMu.Lock()
	defer c.checkerMu.Unlock()
	if c.checkerStop != nil {
		return
	}
	stop := make(chan struct{})
	c.checkerStop = stop
	go c.runValidityCheck(stop)
}

// stopValidityCheck halts background polling. Invoked on logout so no timers
// outlive the session.
func (c *Client) stopValidityCheck() {
	c.checkerMu.Lock()
	defer c.checkerMu.Unlock()
	if c.checkerStop == nil {
		return
	}
	close(c.checkerStop)
	c.checkerStop = nil
}

func (c *Client) runValidityCheck(stop <-chan struct{}) {
	ticker := c.clock.NewTicker(validityCheckInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.Chan():
			c.checkTokenValidity(context.Background())
		case <-stop:
			return
		}
	}
}

// checkTokenValidity refreshes proactively when the access token expires in
// less than refreshLookahead. Decoding failures are logged and ignored; the
// reactive 401 path still covers actual expiry.
func (c *Client) checkTokenValidity(ctx context.Context) {
	token, err := c.store.Token(ctx)
	if err != nil || token == "" {
		return
	}
	expiry, err := utils.TokenExpiry(token)
	if err != nil {
		c.logger.Debug("Could not decode token expiry", zap.Error(err))
		return
	}
	if expiry.Sub(c.clock.Now()) < refreshLookahead {
		c.logger.Debug("Access token near expiry, refreshing")
		if _, err := c.refresh(ctx); err != nil {
			c.logger.Warn("Proactive token refresh failed", zap.Error(err))
		}
	}
}
