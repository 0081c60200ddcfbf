package narrative

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/codequest-rpg/dungeon-engine/internal/entities"
	"github.com/redis/go-redis/v9"
)

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client *redis.Client
}

// redisRepository implements Repository using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedisRepository creates a new Redis-backed repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil || cfg.Client == nil {
		panic("RedisRepoConfig and Client are required")
	}

	return &redisRepository{
		client: cfg.Client,
	}
}

func narrativeKey(userID string) string {
	return fmt.Sprintf("narrative:%s", userID)
}

// GetOrCreate retrieves narrative progress, creating floor 1 state on first access
func (r *redisRepository) GetOrCreate(ctx context.Context, userID string) (*entities.NarrativeProgress, error) {
	data, err := r.client.Get(ctx, narrativeKey(userID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			return nil, err
		}

		fresh := entities.NewNarrativeProgress(userID)
		payload, marshalErr := json.Marshal(fresh)
		if marshalErr != nil {
			return nil, marshalErr
		}
		created, setErr := r.client.SetNX(ctx, narrativeKey(userID), string(payload), 0).Result()
		if setErr != nil {
			return nil, setErr
		}
		if created {
			return fresh, nil
		}
		data, err = r.client.Get(ctx, narrativeKey(userID)).Bytes()
		if err != nil {
			return nil, err
		}
	}

	var progress entities.NarrativeProgress
	if err := json.Unmarshal(data, &progress); err != nil {
		return nil, err
	}

	return &progress, nil
}

// Update persists modified narrative progress
func (r *redisRepository) Update(ctx context.Context, progress *entities.NarrativeProgress) error {
	if progress == nil || progress.UserID == "" {
		return fmt.Errorf("narrative progress with user ID is required")
	}

	progress.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(progress)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, narrativeKey(progress.UserID), string(data), 0).Err()
}
