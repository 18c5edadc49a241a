package handlers

import (
	"net/http"

	"fintrack/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (hb *HandlerBundle) ListPlanningsHandler(c *gin.Context) {
	logger := getLogger(c)

	plannings, err := hb.Finance.Plannings(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to fetch budget plannings")
		return
	}
	c.JSON(http.StatusOK, gin.H{"plannings": plannings})
}

func (hb *HandlerBundle) CreatePlanningHandler(c *gin.Context) {
	logger := getLogger(c)

	var planning models.Planning
	if err := c.ShouldBindJSON(&planning); err != nil {
		logger.Error("Invalid planning payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := hb.Finance.CreatePlanning(c.Request.Context(), planning); err != nil {
		respondError(c, logger, err, "Failed to create planning")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true})
}

func (hb *HandlerBundle) UpdatePlanningHandler(c *gin.Context) {
	logger := getLogger(c)

	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var planning models.Planning
	if err := c.ShouldBindJSON(&planning); err != nil {
		logger.Error("Invalid planning payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := hb.Finance.UpdatePlanning(c.Request.Context(), id, planning); err != nil {
		respondError(c, logger, err, "Failed to update planning")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (hb *HandlerBundle) DeletePlanningHandler(c *gin.Context) {
	logger := getLogger(c)

	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := hb.Finance.DeletePlanning(c.Request.Context(), id); err != nil {
		respondError(c, logger, err, "Failed to delete planning")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
