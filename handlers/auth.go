package handlers

import (
	"net/http"

	"fintrack/services/notification"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginHandler authenticates against the upstream API. On success the
// periodic domain checks start and a welcome alert is dispatched.
func (hb *HandlerBundle) LoginHandler(c *gin.Context) {
	logger := getLogger(c)

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid login request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: " + err.Error()})
		return
	}

	result, err := hb.Session.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		logger.Warn("Login failed", zap.String("email", req.Email), zap.Error(err))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	hb.Notifications.StartChecks()
	hb.Notifications.SendNotification(c.Request.Context(), "Welcome back!", notification.Options{
		Body: "You are signed in to your finance dashboard.",
		Tag:  "welcome",
	})

	c.JSON(http.StatusOK, gin.H{"user": result.User})
}

// LogoutHandler tears the session down. Logging out twice is harmless.
func (hb *HandlerBundle) LogoutHandler(c *gin.Context) {
	logger := getLogger(c)

	if err := hb.Session.Logout(c.Request.Context()); err != nil {
		logger.Error("Logout failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to log out"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// MeHandler returns the authenticated profile from the upstream API.
func (hb *HandlerBundle) MeHandler(c *gin.Context) {
	logger := getLogger(c)

	user, err := hb.Finance.CurrentUser(c.Request.Context())
	if err != nil {
		respondError(c, logger, err, "Failed to fetch profile")
		return
	}

	c.JSON(http.StatusOK, user)
}

// SessionStatusHandler reports whether a session is currently active.
func (hb *HandlerBundle) SessionStatusHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"authenticated": hb.Session.IsAuthenticated(c.Request.Context())})
}
