package handlers

import (
	"net/http"
	"strconv"

	"fintrack/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// parseID reads a numeric path parameter and writes a 400 on failure.
func parseID(c *gin.Context, param string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + param})
		return 0, false
	}
	return id, true
}

func (hb *HandlerBundle) ListTransactionsHandler(c *gin.Context) {
	logger := getLogger(c)

	transactions, err := hb.Finance.Transactions(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to fetch transactions")
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}

// CreateTransactionHandler proxies the create upstream and dispatches a
// transaction alert so the dashboard surfaces the new entry immediately.
func (hb *HandlerBundle) CreateTransactionHandler(c *gin.Context) {
	logger := getLogger(c)

	var tx models.Transaction
	if err := c.ShouldBindJSON(&tx); err != nil {
		logger.Error("Invalid transaction payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := hb.Finance.CreateTransaction(c.Request.Context(), tx); err != nil {
		respondError(c, logger, err, "Failed to create transaction")
		return
	}

	hb.Notifications.NotifyTransactionAdded(c.Request.Context(), tx)
	c.JSON(http.StatusCreated, gin.H{"success": true})
}

func (hb *HandlerBundle) UpdateTransactionHandler(c *gin.Context) {
	logger := getLogger(c)

	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var tx models.Transaction
	if err := c.ShouldBindJSON(&tx); err != nil {
		logger.Error("Invalid transaction payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := hb.Finance.UpdateTransaction(c.Request.Context(), id, tx); err != nil {
		respondError(c, logger, err, "Failed to update transaction")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (hb *HandlerBundle) DeleteTransactionHandler(c *gin.Context) {
	logger := getLogger(c)

	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := hb.Finance.DeleteTransaction(c.Request.Context(), id); err != nil {
		respondError(c, logger, err, "Failed to delete transaction")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
