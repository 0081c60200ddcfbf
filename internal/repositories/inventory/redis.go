package inventory

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/codequest-rpg/dungeon-engine/internal/entities"
	"github.com/redis/go-redis/v9"
)

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client *redis.Client
}

// redisRepository implements Repository using Redis hashes, one hash per
// user mapping item ID to stacked quantity. HIncrBy keeps stacking atomic.
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

func consumablesKey(userID string) string {
	return fmt.Sprintf("inventory:consumables:%s", userID)
}

func equipmentKey(userID string) string {
	return fmt.Sprintf("inventory:equipment:%s", userID)
}

// AddConsumable adds quantity of a consumable to a player's inventory
func (r *redisRepository) AddConsumable(ctx context.Context, userID, itemID string, quantity int) error {
	if userID == "" || itemID == "" {
		return fmt.Errorf("user ID and item ID are required")
	}
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", quantity)
	}

	return r.client.HIncrBy(ctx, consumablesKey(userID), itemID, int64(quantity)).Err()
}

// AddEquipment adds quantity of an equipment item to a player's inventory
func (r *redisRepository) AddEquipment(ctx context.Context, userID, itemID string, quantity int) error {
	if userID == "" || itemID == "" {
		return fmt.Errorf("user ID and item ID are required")
	}
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", quantity)
	}

	return r.client.HIncrBy(ctx, equipmentKey(userID), itemID, int64(quantity)).Err()
}

// ListConsumables retrieves a player's consumable stacks
func (r *redisRepository) ListConsumables(ctx context.Context, userID string) ([]*entities.InventoryItem, error) {
	return r.listStacks(ctx, userID, consumablesKey(userID))
}

// ListEquipment retrieves a player's equipment stacks
func (r *redisRepository) ListEquipment(ctx context.Context, userID string) ([]*entities.InventoryItem, error) {
	return r.listStacks(ctx, userID, equipmentKey(userID))
}

func (r *redisRepository) listStacks(ctx context.Context, userID, key string) ([]*entities.InventoryItem, error) {
	rows, err := r.client.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, err
	}

	items := make([]*entities.InventoryItem, 0, len(rows))
	for itemID, raw := range rows {
		quantity, parseErr := strconv.Atoi(raw)
		if parseErr != nil {
			return nil, fmt.Errorf("corrupt quantity for item %s: %w", itemID, parseErr)
		}
		items = append(items, &entities.InventoryItem{
			UserID:   userID,
			ItemID:   itemID,
			Quantity: quantity,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ItemID < items[j].ItemID
	})
	return items, nil
}
