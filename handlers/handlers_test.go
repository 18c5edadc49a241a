package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fintrack/models"
	"fintrack/services/finance"
	"fintrack/services/notification"
	"fintrack/services/session"

	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func upstreamStub(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/auth/login":
			var creds map[string]string
			json.NewDecoder(r.Body).Decode(&creds)
			if creds["password"] != "hunter2" {
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"Invalid credentials"}`))
				return
			}
			w.Write([]byte(`{"access_token":"token-1","refresh_token":"refresh-1","user":{"id":"u1","name":"Ada","email":"ada@example.com"}}`))
		case "/auth/me":
			w.Write([]byte(`{"id":"u1","name":"Ada","email":"ada@example.com"}`))
		case "/transactions":
			w.Write([]byte(`{"transactions":[{"id":1,"description":"Salary","amount":"3000"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"not found"}`))
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newRouter(t *testing.T) (*gin.Engine, *HandlerBundle, *session.MemoryTokenStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	upstream := upstreamStub(t)
	store := session.NewMemoryTokenStore()
	client := session.NewClient(upstream.URL, store, zap.NewNop(), clockwork.NewFakeClock())
	t.Cleanup(func() { client.Logout(context.Background()) })

	notifSvc, err := notification.NewDefaultNotificationService(
		notification.UnsupportedPusher{},
		notification.NewMemorySettingsStore(),
		nil, nil,
		clockwork.NewFakeClock(),
		zap.NewNop(),
	)
	require.NoError(t, err)
	t.Cleanup(notifSvc.StopChecks)

	hb := &HandlerBundle{
		Session:       client,
		Finance:       finance.NewDefaultFinanceService(client),
		Notifications: notifSvc,
	}

	router := gin.New()
	router.POST("/api/auth/login", hb.LoginHandler)
	router.POST("/api/auth/logout", hb.LogoutHandler)
	router.GET("/api/auth/me", hb.MeHandler)
	router.GET("/api/transactions", hb.ListTransactionsHandler)
	router.GET("/api/notifications/settings", hb.NotificationSettingsHandler)
	router.PUT("/api/notifications/settings", hb.UpdateNotificationSettingsHandler)
	router.GET("/api/notifications/history", hb.NotificationHistoryHandler)
	return router, hb, store
}

func TestLoginEndpoint(t *testing.T) {
	router, _, store := newRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"ada@example.com","password":"hunter2"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Ada")

	token, err := store.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "token-1", token)
}

func TestLoginEndpointRejectsBadCredentials(t *testing.T) {
	router, _, _ := newRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email":"ada@example.com","password":"wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginEndpointValidatesBody(t *testing.T) {
	router, _, _ := newRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"not-an-email"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogoutEndpointIsIdempotent(t *testing.T) {
	router, _, _ := newRouter(t)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestTransactionsEndpoint(t *testing.T) {
	router, _, store := newRouter(t)
	require.NoError(t, store.SetToken(context.Background(), "token-1"))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Salary")
}

func TestNotificationSettingsEndpoints(t *testing.T) {
	router, _, _ := newRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/api/notifications/settings",
		strings.NewReader(`{"paymentReminders":true,"goalUpdates":false,"budgetAlerts":true,"investmentUpdates":true}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/notifications/settings", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var settings models.NotificationSettings
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &settings))
	assert.True(t, settings.PaymentReminders)
	assert.False(t, settings.GoalUpdates)
	assert.False(t, settings.Supported)
}

func TestNotificationHistoryEndpointEmpty(t *testing.T) {
	router, _, _ := newRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/notifications/history", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"notifications":[]}`, w.Body.String())
}
