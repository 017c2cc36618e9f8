package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"kolan-weather/models"

	"github.com/redis/go-redis/v9"
)

// RedisSnapshotStore shares snapshots between service instances through Redis
type RedisSnapshotStore struct{ rdb *redis.Client }

// NewRedisSnapshotStore wraps an existing client
func NewRedisSnapshotStore(rdb *redis.Client) *RedisSnapshotStore {
	return &RedisSnapshotStore{rdb: rdb}
}

func snapshotKey(key string) string { return "forecast:snapshot:" + key }

func (r *RedisSnapshotStore) Get(ctx context.Context, key string) (*models.ForecastSnapshot, bool, error) {
	b, err := r.rdb.Get(ctx, snapshotKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var snapshot models.ForecastSnapshot
	if err := json.Unmarshal(b, &snapshot); err != nil {
		return nil, false, fmt.Errorf("decode cached snapshot: %w", err)
	}
	return &snapshot, true, nil
}

func (r *RedisSnapshotStore) Set(ctx context.Context, key string, snapshot *models.ForecastSnapshot, ttl time.Duration) error {
	b, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return r.rdb.Set(ctx, snapshotKey(key), b, ttl).Err()
}

var _ SnapshotStore = (*RedisSnapshotStore)(nil)
