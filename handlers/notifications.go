package handlers

import (
	"net/http"

	"fintrack/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestNotificationPermissionHandler asks the push capability for consent.
func (hb *HandlerBundle) RequestNotificationPermissionHandler(c *gin.Context) {
	granted := hb.Notifications.RequestPermission(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"granted": granted})
}

// NotificationHistoryHandler returns the retained alert records, most recent
// 50, after pruning anything older than a day.
func (hb *HandlerBundle) NotificationHistoryHandler(c *gin.Context) {
	hb.Notifications.ClearOldNotifications()
	history := hb.Notifications.GetNotificationHistory()
	if history == nil {
		history = []*models.Notification{}
	}
	c.JSON(http.StatusOK, gin.H{"notifications": history})
}

// ClearOldNotificationsHandler drops history records older than a day.
func (hb *HandlerBundle) ClearOldNotificationsHandler(c *gin.Context) {
	hb.Notifications.ClearOldNotifications()
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// MarkNotificationReadHandler flags one history record as read.
func (hb *HandlerBundle) MarkNotificationReadHandler(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if !hb.Notifications.MarkRead(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Notification not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// NotificationSettingsHandler returns the persisted toggles plus the derived
// capability state.
func (hb *HandlerBundle) NotificationSettingsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, hb.Notifications.GetSettings(c.Request.Context()))
}

// UpdateNotificationSettingsHandler persists the four preference toggles.
func (hb *HandlerBundle) UpdateNotificationSettingsHandler(c *gin.Context) {
	logger := getLogger(c)

	var settings models.NotificationSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		logger.Error("Invalid settings payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := hb.Notifications.UpdateSettings(c.Request.Context(), settings); err != nil {
		logger.Error("Failed to persist notification settings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save settings"})
		return
	}
	c.JSON(http.StatusOK, hb.Notifications.GetSettings(c.Request.Context()))
}
