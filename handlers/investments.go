package handlers

import (
	"net/http"

	"fintrack/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (hb *HandlerBundle) ListInvestmentsHandler(c *gin.Context) {
	logger := getLogger(c)

	investments, err := hb.Finance.Investments(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to fetch investments")
		return
	}
	c.JSON(http.StatusOK, gin.H{"investments": investments})
}

func (hb *HandlerBundle) CreateInvestmentHandler(c *gin.Context) {
	logger := getLogger(c)

	var investment models.Investment
	if err := c.ShouldBindJSON(&investment); err != nil {
		logger.Error("Invalid investment payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := hb.Finance.CreateInvestment(c.Request.Context(), investment); err != nil {
		respondError(c, logger, err, "Failed to create investment")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true})
}

// UpdateInvestmentHandler proxies the update and dispatches a value-change
// alert when investment updates are enabled.
func (hb *HandlerBundle) UpdateInvestmentHandler(c *gin.Context) {
	logger := getLogger(c)

	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var investment models.Investment
	if err := c.ShouldBindJSON(&investment); err != nil {
		logger.Error("Invalid investment payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := hb.Finance.UpdateInvestment(c.Request.Context(), id, investment); err != nil {
		respondError(c, logger, err, "Failed to update investment")
		return
	}

	if hb.Notifications.GetSettings(c.Request.Context()).InvestmentUpdates {
		investment.ID = id
		hb.Notifications.NotifyInvestmentUpdate(c.Request.Context(), investment)
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (hb *HandlerBundle) DeleteInvestmentHandler(c *gin.Context) {
	logger := getLogger(c)

	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := hb.Finance.DeleteInvestment(c.Request.Context(), id); err != nil {
		respondError(c, logger, err, "Failed to delete investment")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
