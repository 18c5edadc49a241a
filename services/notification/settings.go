package notification

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"fintrack/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Storage keys for the persisted preference toggles. Absence means enabled;
// only the string "false" disables a category.
const (
	paymentRemindersKey  = "notify_payments"
	goalUpdatesKey       = "notify_goals"
	budgetAlertsKey      = "notify_budget"
	investmentUpdatesKey = "notify_investments"
)

// SettingsStore is the durable key-value backend for preference toggles.
type SettingsStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// RedisSettingsStore keeps preferences in Redis.
type RedisSettingsStore struct {
	Client *redis.Client
}

func NewRedisSettingsStore(client *redis.Client) *RedisSettingsStore {
	return &RedisSettingsStore{Client: client}
}

func (s *RedisSettingsStore) Get(ctx context.Context, key string) (string, error) {
	val, err := s.Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read setting %s: %w", key, err)
	}
	return val, nil
}

func (s *RedisSettingsStore) Set(ctx context.Context, key, value string) error {
	return s.Client.Set(ctx, key, value, 0).Err()
}

// MemorySettingsStore is an in-process SettingsStore for tests.
type MemorySettingsStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemorySettingsStore() *MemorySettingsStore {
	return &MemorySettingsStore{values: make(map[string]string)}
}

func (s *MemorySettingsStore) Get(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[key], nil
}

func (s *MemorySettingsStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

// GetSettings combines the persisted toggles with live-derived capability
// state.
func (s *DefaultNotificationService) GetSettings(ctx context.Context) models.NotificationSettings {
	s.mu.Lock()
	permission := s.permission
	s.mu.Unlock()

	return models.NotificationSettings{
		Enabled:           s.IsEnabled(),
		Permission:        permission,
		Supported:         s.Pusher.Supported(),
		PaymentReminders:  s.flag(ctx, paymentRemindersKey),
		GoalUpdates:       s.flag(ctx, goalUpdatesKey),
		BudgetAlerts:      s.flag(ctx, budgetAlertsKey),
		InvestmentUpdates: s.flag(ctx, investmentUpdatesKey),
	}
}

// UpdateSettings persists the four preference toggles. Permission and support
// state are derived live and never written.
func (s *DefaultNotificationService) UpdateSettings(ctx context.Context, settings models.NotificationSettings) error {
	toggles := map[string]bool{
		paymentRemindersKey:  settings.PaymentReminders,
		goalUpdatesKey:       settings.GoalUpdates,
		budgetAlertsKey:      settings.BudgetAlerts,
		investmentUpdatesKey: settings.InvestmentUpdates,
	}
	for key, value := range toggles {
		if err := s.Settings.Set(ctx, key, strconv.FormatBool(value)); err != nil {
			return fmt.Errorf("failed to persist setting %s: %w", key, err)
		}
	}
	return nil
}

func (s *DefaultNotificationService) flag(ctx context.Context, key string) bool {
	val, err := s.Settings.Get(ctx, key)
	if err != nil {
		s.Logger.Error("Failed to read notification setting", zap.String("key", key), zap.Error(err))
		return true
	}
	return val != "false"
}
