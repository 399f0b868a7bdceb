package utils

import (
	"context"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"
)

// HealthStatus reports reachability of each backend the reservation engine
// depends on: the Mongo reservation store and the redis databases backing the
// cache, customer sessions and the expiry task queue.
type HealthStatus struct {
	ReservationStore bool      `json:"reservation_store"`
	Cache            bool      `json:"cache"`
	Sessions         bool      `json:"sessions"`
	TaskQueue        bool      `json:"task_queue"`
	CheckedAt        time.Time `json:"checked_at"`
}

// HealthBackends bundles the probed connections. A nil entry is reported
// unhealthy.
type HealthBackends struct {
	Mongo    *mongo.Client
	Cache    *redis.Client
	Sessions *redis.Client
	Tasks    *redis.Client
}

var (
	currentHealth HealthStatus
	healthMu      sync.RWMutex
)

// GetHealthStatus returns the latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	healthMu.RLock()
	defer healthMu.RUnlock()
	return currentHealth
}

func pingRedis(ctx context.Context, client *redis.Client) bool {
	if client == nil {
		return false
	}
	return client.Ping(ctx).Err() == nil
}

func (b HealthBackends) probe(ctx context.Context) HealthStatus {
	status := HealthStatus{CheckedAt: time.Now()}
	if b.Mongo != nil {
		status.ReservationStore = b.Mongo.Ping(ctx, nil) == nil
	}
	status.Cache = pingRedis(ctx, b.Cache)
	status.Sessions = pingRedis(ctx, b.Sessions)
	status.TaskQueue = pingRedis(ctx, b.Tasks)
	return status
}

// StartHealthMonitor probes the backends once at startup and then every
// minute, keeping the in-memory snapshot served by /health current.
func StartHealthMonitor(backends HealthBackends) {
	go func() {
		ctx := context.Background()
		update := func() {
			snapshot := backends.probe(ctx)
			healthMu.Lock()
			currentHealth = snapshot
			healthMu.Unlock()
		}
		update()

		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			update()
		}
	}()
}
