package handlers

import (
	"errors"
	"net/http"

	"fintrack/services/finance"
	"fintrack/services/notification"
	"fintrack/services/session"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HandlerBundle groups all endpoint handlers and their dependencies.
type HandlerBundle struct {
	Session       *session.Client
	Finance       finance.FinanceService
	Notifications notification.NotificationService
}

// respondError maps service errors to HTTP responses. Session expiry becomes
// 401 so the dashboard can bounce to login; upstream API errors pass their
// status through.
func respondError(c *gin.Context, logger *zap.Logger, err error, msg string) {
	var apiErr *session.APIError

	switch {
	case errors.Is(err, session.ErrSessionExpired):
		logger.Warn("Session expired during request")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired. Please log in again."})
	case errors.As(err, &apiErr):
		logger.Error(msg, zap.Int("upstreamStatus", apiErr.Status), zap.Error(err))
		c.JSON(apiErr.Status, gin.H{"error": apiErr.Message})
	default:
		logger.Error(msg, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
	}
}
