package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/schedly/course-planner-api/internal/models"
	appErrors "github.com/schedly/course-planner-api/pkg/errors"
)

// SnapshotRepository persists selection snapshots in Redis. The storage
// TTL mirrors the snapshot horizon, but expiry is still checked at load
// time by the selection service rather than trusted to the medium.
type SnapshotRepository struct {
	client *redis.Client
	key    string
	logger *zap.Logger
}

// NewSnapshotRepository constructs a snapshot repository writing under
// the given key prefix.
func NewSnapshotRepository(client *redis.Client, keyPrefix string, logger *zap.Logger) *SnapshotRepository {
	if keyPrefix == "" {
		keyPrefix = "planner:selection"
	}
	return &SnapshotRepository{client: client, key: keyPrefix + ":snapshot", logger: logger}
}

// Load retrieves the persisted snapshot. A missing client or absent key
// yields ErrCacheMiss.
func (r *SnapshotRepository) Load(ctx context.Context) (*models.SelectionSnapshot, error) {
	if r.client == nil {
		return nil, appErrors.ErrCacheMiss
	}

	raw, err := r.client.Get(ctx, r.key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, appErrors.ErrCacheMiss
		}
		return nil, fmt.Errorf("redis get %s: %w", r.key, err)
	}

	var snapshot models.SelectionSnapshot
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &snapshot, nil
}

// Save stores the snapshot with the given TTL.
func (r *SnapshotRepository) Save(ctx context.Context, snapshot models.SelectionSnapshot, ttl time.Duration) error {
	if r.client == nil {
		return nil
	}

	payload, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	if err := r.client.Set(ctx, r.key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", r.key, err)
	}
	return nil
}

// Clear removes the persisted snapshot.
func (r *SnapshotRepository) Clear(ctx context.Context) error {
	if r.client == nil {
		return nil
	}
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("redis delete %s: %w", r.key, err)
	}
	return nil
}

// Close releases the underlying Redis connection if present.
func (r *SnapshotRepository) Close() error {
	if r.client == nil {
		return nil
	}
	return r.client.Close()
}
