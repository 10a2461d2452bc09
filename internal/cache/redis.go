package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"workshop-backend/internal/config"
)

// Cache keys
const (
	DashboardKey      = "dashboard:summary"
	TodaySalesKey     = "pos:today_summary"
	SettingsKey       = "settings:all"
	JobCardStatsKey   = "job_cards:stats"
	DashboardTTL      = 30 * time.Second
	TodaySalesTTL     = 30 * time.Second
	SettingsTTL       = 5 * time.Minute
	JobCardStatsTTL   = 30 * time.Second
)

var client *redis.Client

// Init connects to Redis. A failed connection degrades to a no-op
// cache rather than taking the server down.
func Init(cfg *config.Config) error {
	client = redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// GetClient returns the Redis client, nil when caching is disabled.
func GetClient() *redis.Client {
	return client
}

// GetCached returns cached data for a key.
func GetCached(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetCached stores data with a TTL.
func SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// InvalidateKeys removes specific cache keys.
func InvalidateKeys(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}

// InvalidateSalesCaches clears sales-derived aggregates. Called after
// checkout, refund, payments and invoice changes.
func InvalidateSalesCaches(ctx context.Context) {
	InvalidateKeys(ctx, DashboardKey, TodaySalesKey)
}

// InvalidateJobCardCaches clears job card aggregates. Called on any
// job card or line mutation.
func InvalidateJobCardCaches(ctx context.Context) {
	InvalidateKeys(ctx, DashboardKey, JobCardStatsKey)
}

// InvalidateSettingCaches clears cached settings. Called when a
// setting is updated.
func InvalidateSettingCaches(ctx context.Context) {
	InvalidateKeys(ctx, SettingsKey)
}
