package handlers

import (
	"net/http"

	"fintrack/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (hb *HandlerBundle) ListGoalsHandler(c *gin.Context) {
	logger := getLogger(c)

	goals, err := hb.Finance.Goals(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to fetch goals")
		return
	}
	c.JSON(http.StatusOK, gin.H{"goals": goals})
}

func (hb *HandlerBundle) CreateGoalHandler(c *gin.Context) {
	logger := getLogger(c)

	var goal models.Goal
	if err := c.ShouldBindJSON(&goal); err != nil {
		logger.Error("Invalid goal payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := hb.Finance.CreateGoal(c.Request.Context(), goal); err != nil {
		respondError(c, logger, err, "Failed to create goal")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true})
}

// UpdateGoalHandler proxies the update and alerts when the edited goal just
// crossed its target.
func (hb *HandlerBundle) UpdateGoalHandler(c *gin.Context) {
	logger := getLogger(c)

	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var goal models.Goal
	if err := c.ShouldBindJSON(&goal); err != nil {
		logger.Error("Invalid goal payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := hb.Finance.UpdateGoal(c.Request.Context(), id, goal); err != nil {
		respondError(c, logger, err, "Failed to update goal")
		return
	}

	if goal.Progress >= 100 {
		goal.ID = id
		hb.Notifications.NotifyGoalAchieved(c.Request.Context(), goal)
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (hb *HandlerBundle) DeleteGoalHandler(c *gin.Context) {
	logger := getLogger(c)

	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := hb.Finance.DeleteGoal(c.Request.Context(), id); err != nil {
		respondError(c, logger, err, "Failed to delete goal")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
