package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fintrack/config"
	"fintrack/cron"
	"fintrack/handlers"
	"fintrack/middleware"
	"fintrack/routes"
	"fintrack/services/finance"
	"fintrack/services/notification"
	"fintrack/services/session"
	"fintrack/services/tasks"
	"fintrack/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/jonboulle/clockwork"
)

// upstreamProbe reports whether the upstream finance API is reachable.
func upstreamProbe(baseURL string) utils.UpstreamProbe {
	client := &http.Client{Timeout: 5 * time.Second}
	return func(ctx context.Context) bool {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/health", nil)
		if err != nil {
			return false
		}
		resp, err := client.Do(req)
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode < 500
	}
}

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	utils.InitSessionCache()
	utils.InitSettingsCache()
	utils.FirebaseInit()

	clock := clockwork.NewRealClock()

	// Session client against the upstream finance API.
	tokenStore := session.NewRedisTokenStore(utils.GetSessionCacheClient())
	apiClient := session.NewClient(config.AppConfig.APIBaseURL, tokenStore, logger, clock)

	financeService := finance.NewDefaultFinanceService(apiClient)
	alertFeed := finance.NewAlertFeed(financeService, clock)

	// Push capability: FCM when credentials are configured, otherwise a
	// stub that reports unsupported.
	var pusher notification.Pusher = notification.UnsupportedPusher{}
	if utils.FCMClient != nil {
		pusher = notification.NewFCMPusher(utils.FCMClient, config.AppConfig.FCMDeviceToken)
	}

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer asynqClient.Close()

	notificationService, err := notification.NewDefaultNotificationService(
		pusher,
		notification.NewRedisSettingsStore(utils.GetSettingsCacheClient()),
		alertFeed,
		tasks.NewAsynqReminderScheduler(asynqClient),
		clock,
		logger,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	// Session teardown stops the periodic checks so no polling outlives the
	// login.
	apiClient.SetOnLogout(notificationService.StopChecks)

	// Deliver queued reminders in background.
	cron.InitReminderWorker(notificationService)

	utils.StartHealthMonitor(
		[]*redis.Client{utils.GetSessionCacheClient(), utils.GetSettingsCacheClient()},
		upstreamProbe(config.AppConfig.APIBaseURL),
	)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RequestLoggerMiddleware())
	router.Use(middleware.RateLimitMiddleware())

	handlerBundle := &handlers.HandlerBundle{
		Session:       apiClient,
		Finance:       financeService,
		Notifications: notificationService,
	}

	routes.RegisterRoutes(router, handlerBundle)

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	notificationService.StopChecks()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
