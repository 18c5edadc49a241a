package handlers

import (
	"net/http"

	"fintrack/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (hb *HandlerBundle) ListCreditCardsHandler(c *gin.Context) {
	logger := getLogger(c)

	cards, err := hb.Finance.CreditCards(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to fetch credit cards")
		return
	}
	c.JSON(http.StatusOK, gin.H{"cards": cards})
}

func (hb *HandlerBundle) CreateCreditCardHandler(c *gin.Context) {
	logger := getLogger(c)

	var card models.CreditCard
	if err := c.ShouldBindJSON(&card); err != nil {
		logger.Error("Invalid credit card payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := hb.Finance.CreateCreditCard(c.Request.Context(), card); err != nil {
		respondError(c, logger, err, "Failed to create credit card")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true})
}

func (hb *HandlerBundle) UpdateCreditCardHandler(c *gin.Context) {
	logger := getLogger(c)

	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var card models.CreditCard
	if err := c.ShouldBindJSON(&card); err != nil {
		logger.Error("Invalid credit card payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := hb.Finance.UpdateCreditCard(c.Request.Context(), id, card); err != nil {
		respondError(c, logger, err, "Failed to update credit card")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (hb *HandlerBundle) DeleteCreditCardHandler(c *gin.Context) {
	logger := getLogger(c)

	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := hb.Finance.DeleteCreditCard(c.Request.Context(), id); err != nil {
		respondError(c, logger, err, "Failed to delete credit card")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (hb *HandlerBundle) ListCreditCardTransactionsHandler(c *gin.Context) {
	logger := getLogger(c)

	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	transactions, err := hb.Finance.CreditCardTransactions(c.Request.Context(), id)
	if err != nil {
		respondError(c, logger, err, "Failed to fetch card transactions")
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": transactions})
}

func (hb *HandlerBundle) CreateCreditCardTransactionHandler(c *gin.Context) {
	logger := getLogger(c)

	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var tx models.Transaction
	if err := c.ShouldBindJSON(&tx); err != nil {
		logger.Error("Invalid card transaction payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	if err := hb.Finance.CreateCreditCardTransaction(c.Request.Context(), id, tx); err != nil {
		respondError(c, logger, err, "Failed to create card transaction")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true})
}
