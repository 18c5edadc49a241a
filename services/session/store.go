package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"fintrack/models"

	"github.com/go-redis/redis/v8"
)

// Storage keys for the durable session state.
const (
	tokenKey        = "token"
	refreshTokenKey = "refresh_token"
	userKey         = "user"
)

// TokenStore persists the session credentials and the cached user profile.
// Absent values come back as empty strings or nil without error.
type TokenStore interface {
	Token(ctx context.Context) (string, error)
	SetToken(ctx context.Context, token string) error
	RefreshToken(ctx context.Context) (string, error)
	SetRefreshToken(ctx context.Context, token string) error
	User(ctx context.Context) (*models.User, error)
	SetUser(ctx context.Context, user *models.User) error
	Clear(ctx context.Context) error
}

// RedisTokenStore keeps the session state in Redis.
type RedisTokenStore struct {
	Client *redis.Client
}

func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{Client: client}
}

func (s *RedisTokenStore) get(ctx context.Context, key string) (string, error) {
	val, err := s.Client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", key, err)
	}
	return val, nil
}

func (s *RedisTokenStore) Token(ctx context.Context) (string, error) {
	return s.get(ctx, tokenKey)
}

func (s *RedisTokenStore) SetToken(ctx context.Context, token string) error {
	return s.Client.Set(ctx, tokenKey, token, 0).Err()
}

func (s *RedisTokenStore) RefreshToken(ctx context.Context) (string, error) {
	return s.get(ctx, refreshTokenKey)
}

func (s *RedisTokenStore) SetRefreshToken(ctx context.Context, token string) error {
	return s.Client.Set(ctx, refreshTokenKey, token, 0).Err()
}

func (s *RedisTokenStore) User(ctx context.Context) (*models.User, error) {
	data, err := s.get(ctx, userKey)
	if err != nil || data == "" {
		return nil, err
	}
	var user models.User
	if err := json.Unmarshal([]byte(data), &user); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached user: %w", err)
	}
	return &user, nil
}

func (s *RedisTokenStore) SetUser(ctx context.Context, user *models.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}
	return s.Client.Set(ctx, userKey, data, 0).Err()
}

func (s *RedisTokenStore) Clear(ctx context.Context) error {
	return s.Client.Del(ctx, tokenKey, refreshTokenKey, userKey).Err()
}

// MemoryTokenStore is an in-process TokenStore used by tests and as a
// fallback when Redis is not configured.
type MemoryTokenStore struct {
	mu           sync.RWMutex
	token        string
	refreshToken string
	user         *models.User
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (s *MemoryTokenStore) Token(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, nil
}

func (s *MemoryTokenStore) SetToken(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryTokenStore) RefreshToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken, nil
}

func (s *MemoryTokenStore) SetRefreshToken(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshToken = token
	return nil
}

func (s *MemoryTokenStore) User(ctx context.Context) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user, nil
}

func (s *MemoryTokenStore) SetUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
	return nil
}

func (s *MemoryTokenStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.refreshToken = ""
	s.user = nil
	return nil
}
