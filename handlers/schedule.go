package handlers

import (
	"net/http"

	"fintrack/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (hb *HandlerBundle) ListScheduleEventsHandler(c *gin.Context) {
	logger := getLogger(c)

	events, err := hb.Finance.ScheduleEvents(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to fetch schedule events")
		return
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

func (hb *HandlerBundle) CreateScheduleEventHandler(c *gin.Context) {
	logger := getLogger(c)

	var event models.ScheduleEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		logger.Error("Invalid schedule event payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := hb.Finance.CreateScheduleEvent(c.Request.Context(), event); err != nil {
		respondError(c, logger, err, "Failed to create schedule event")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true})
}

func (hb *HandlerBundle) UpdateScheduleEventHandler(c *gin.Context) {
	logger := getLogger(c)

	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var event models.ScheduleEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		logger.Error("Invalid schedule event payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := hb.Finance.UpdateScheduleEvent(c.Request.Context(), id, event); err != nil {
		respondError(c, logger, err, "Failed to update schedule event")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (hb *HandlerBundle) DeleteScheduleEventHandler(c *gin.Context) {
	logger := getLogger(c)

	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := hb.Finance.DeleteScheduleEvent(c.Request.Context(), id); err != nil {
		respondError(c, logger, err, "Failed to delete schedule event")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
