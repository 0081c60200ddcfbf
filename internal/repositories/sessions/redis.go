package sessions

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

func combatKey(userID string) string {
	return fmt.Sprintf("combat:%s", userID)
}

// Get retrieves the active combat session for a user, nil if none
func (r *redisRepository) Get(ctx context.Context, userID string) (*entities.CombatSession, error) {
	data, err := r.client.Get(ctx, combatKey(userID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var session entities.CombatSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}

	return &session, nil
}

// Save persists a combat session
func (r *redisRepository) Save(ctx context.Context, session *entities.CombatSession) error {
	if session == nil || session.UserID == "" {
		return fmt.Errorf("combat session with user ID is required")
	}

	session.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, combatKey(session.UserID), string(data), 0).Err()
}

// Delete removes the active combat session for a user
func (r *redisRepository) Delete(ctx context.Context, userID string) error {
	return r.client.Del(ctx, combatKey(userID)).Err()
}
