package characters

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

func characterKey(userID string) string {
	return fmt.Sprintf("character:%s", userID)
}

// GetOrCreate retrieves a character sheet, creating defaults on first access
func (r *redisRepository) GetOrCreate(ctx context.Context, userID string) (*entities.CharacterStats, error) {
	stats, err := r.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if stats != nil {
		return stats, nil
	}

	fresh := entities.NewCharacterStats(userID)
	data, err := json.Marshal(fresh)
	if err != nil {
		return nil, err
	}

	// SetNX so a concurrent first access does not clobber an existing sheet
	created, err := r.client.SetNX(ctx, characterKey(userID), string(data), 0).Result()
	if err != nil {
		return nil, err
	}
	if !created {
		return r.Get(ctx, userID)
	}

	return fresh, nil
}

// Get retrieves an existing character sheet, nil if absent
func (r *redisRepository) Get(ctx context.Context, userID string) (*entities.CharacterStats, error) {
	data, err := r.client.Get(ctx, characterKey(userID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var stats entities.CharacterStats
	if err := json.Unmarshal(data, &stats); err != nil {
		return nil, err
	}

	return &stats, nil
}

// Update persists a modified character sheet
func (r *redisRepository) Update(ctx context.Context, stats *entities.CharacterStats) error {
	if stats == nil || stats.UserID == "" {
		return fmt.Errorf("character stats with user ID are required")
	}

	stats.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, characterKey(stats.UserID), string(data), 0).Err()
}
