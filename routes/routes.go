package routes

import (
	"net/http"
	"time"

	"fintrack/handlers"
	"fintrack/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers session endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/login", hb.LoginHandler)
		api.POST("/logout", hb.LogoutHandler)
		api.GET("/me", hb.MeHandler)
		api.GET("/status", hb.SessionStatusHandler)
	}
}

// RegisterFinanceRoutes registers the proxied finance resources.
func RegisterFinanceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/transactions", hb.ListTransactionsHandler)
		api.POST("/transactions", hb.CreateTransactionHandler)
		api.PUT("/transactions/:id", hb.UpdateTransactionHandler)
		api.DELETE("/transactions/:id", hb.DeleteTransactionHandler)

		api.GET("/credit-cards", hb.ListCreditCardsHandler)
		api.POST("/credit-cards", hb.CreateCreditCardHandler)
		api.PUT("/credit-cards/:id", hb.UpdateCreditCardHandler)
		api.DELETE("/credit-cards/:id", hb.DeleteCreditCardHandler)
		api.GET("/credit-cards/:id/transactions", hb.ListCreditCardTransactionsHandler)
		api.POST("/credit-cards/:id/transactions", hb.CreateCreditCardTransactionHandler)

		api.GET("/goals", hb.ListGoalsHandler)
		api.POST("/goals", hb.CreateGoalHandler)
		api.PUT("/goals/:id", hb.UpdateGoalHandler)
		api.DELETE("/goals/:id", hb.DeleteGoalHandler)

		api.GET("/investments", hb.ListInvestmentsHandler)
		api.POST("/investments", hb.CreateInvestmentHandler)
		api.PUT("/investments/:id", hb.UpdateInvestmentHandler)
		api.DELETE("/investments/:id", hb.DeleteInvestmentHandler)

		api.GET("/schedule", hb.ListScheduleEventsHandler)
		api.POST("/schedule", hb.CreateScheduleEventHandler)
		api.PUT("/schedule/:id", hb.UpdateScheduleEventHandler)
		api.DELETE("/schedule/:id", hb.DeleteScheduleEventHandler)

		api.GET("/planning", hb.ListPlanningsHandler)
		api.POST("/planning", hb.CreatePlanningHandler)
		api.PUT("/planning/:id", hb.UpdatePlanningHandler)
		api.DELETE("/planning/:id", hb.DeletePlanningHandler)
	}
}

// RegisterNotificationRoutes registers the dispatcher endpoints.
func RegisterNotificationRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/notifications")
	{
		api.POST("/permission", hb.RequestNotificationPermissionHandler)
		api.GET("/history", hb.NotificationHistoryHandler)
		api.POST("/history/clear-old", hb.ClearOldNotificationsHandler)
		api.PUT("/history/:id/read", hb.MarkNotificationReadHandler)
		api.GET("/settings", hb.NotificationSettingsHandler)
		api.PUT("/settings", hb.UpdateNotificationSettingsHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		status := utils.GetHealthStatus()
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": status})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterFinanceRoutes(r, hb)
	RegisterNotificationRoutes(r, hb)
	RegisterHealthRoute(r)
}
