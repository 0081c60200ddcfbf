package wallets

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

func walletKey(userID string) string {
	return fmt.Sprintf("wallet:%s", userID)
}

// GetOrCreate retrieves a wallet, creating an empty one on first access
func (r *redisRepository) GetOrCreate(ctx context.Context, userID string) (*entities.Wallet, error) {
	data, err := r.client.Get(ctx, walletKey(userID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			return nil, err
		}

		fresh := entities.NewWallet(userID)
		payload, marshalErr := json.Marshal(fresh)
		if marshalErr != nil {
			return nil, marshalErr
		}
		created, setErr := r.client.SetNX(ctx, walletKey(userID), string(payload), 0).Result()
		if setErr != nil {
			return nil, setErr
		}
		if created {
			return fresh, nil
		}
		// Lost the race; read what won
		data, err = r.client.Get(ctx, walletKey(userID)).Bytes()
		if err != nil {
			return nil, err
		}
	}

	var wallet entities.Wallet
	if err := json.Unmarshal(data, &wallet); err != nil {
		return nil, err
	}

	return &wallet, nil
}

// Update persists a modified wallet
func (r *redisRepository) Update(ctx context.Context, wallet *entities.Wallet) error {
	if wallet == nil || wallet.UserID == "" {
		return fmt.Errorf("wallet with user ID is required")
	}

	wallet.UpdatedAt = time.Now().UTC()
	data, err := json.Marshal(wallet)
	if err != nil {
		return err
	}

	return r.client.Set(ctx, walletKey(wallet.UserID), string(data), 0).Err()
}
