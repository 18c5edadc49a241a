package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// HealthStatus represents current status of external services.
type HealthStatus struct {
	Redis     []bool    `json:"redis"`
	Upstream  bool      `json:"upstream"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

// UpstreamProbe reports whether the upstream finance API answered recently.
type UpstreamProbe func(ctx context.Context) bool

// StartHealthMonitor performs periodic health checks and updates in-memory state.
func StartHealthMonitor(redisClients []*redis.Client, probe UpstreamProbe) {
	go func() {
		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()

		ctx := context.Background()

		for range ticker.C {
			var redisHealth []bool

			for _, client := range redisClients {
				err := client.Ping(ctx).Err()
				redisHealth = append(redisHealth, err == nil)
			}

			upstreamHealthy := true
			if probe != nil {
				upstreamHealthy = probe(ctx)
			}

			mu.Lock()
			currentHealth = HealthStatus{
				Redis:     redisHealth,
				Upstream:  upstreamHealthy,
				CheckedAt: time.Now(),
			}
			mu.Unlock()
		}
	}()
}
