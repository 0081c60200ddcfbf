package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/codequest-rpg/dungeon-engine/internal/entities"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client *redis.Client
}

// redisRepository implements Repository using Redis. Rows are JSON values
// keyed by ID, with index sets for the list operations.
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

func abilityKey(abilityID string) string {
	return fmt.Sprintf("catalog:ability:%s", abilityID)
}

func enemyKey(enemyID string) string {
	return fmt.Sprintf("catalog:enemy:%s", enemyID)
}

func enemyFloorIndexKey(floorNumber int) string {
	return fmt.Sprintf("catalog:enemies:floor:%d", floorNumber)
}

func bossKey(floorNumber int) string {
	return fmt.Sprintf("catalog:boss:floor:%d", floorNumber)
}

func locationKey(locationID string) string {
	return fmt.Sprintf("catalog:location:%s", locationID)
}

func startLocationKey(floorNumber int) string {
	return fmt.Sprintf("catalog:location:start:%d", floorNumber)
}

func choiceKey(choiceID string) string {
	return fmt.Sprintf("catalog:choice:%s", choiceID)
}

func choiceLocationIndexKey(locationID string) string {
	return fmt.Sprintf("catalog:choices:location:%s", locationID)
}

func outcomeKey(choiceID string, outcomeType entities.OutcomeType) string {
	return fmt.Sprintf("catalog:outcome:%s:%s", choiceID, outcomeType)
}

func consumableKey(itemID string) string {
	return fmt.Sprintf("catalog:consumable:%s", itemID)
}

func equipmentKey(itemID string) string {
	return fmt.Sprintf("catalog:equipment:%s", itemID)
}

const abilityIndexKey = "catalog:abilities"

func (r *redisRepository) putJSON(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, 0).Err()
}

func (r *redisRepository) getJSON(ctx context.Context, key string, dest any) (bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return false, err
	}
	return true, nil
}

// PutAbility stores an ability definition
func (r *redisRepository) PutAbility(ctx context.Context, ability *entities.Ability) error {
	if ability == nil || ability.ID == "" {
		return fmt.Errorf("ability with ID is required")
	}
	if err := r.putJSON(ctx, abilityKey(ability.ID), ability); err != nil {
		return err
	}
	return r.client.SAdd(ctx, abilityIndexKey, ability.ID).Err()
}

// GetAbility retrieves an ability by ID, nil if absent
func (r *redisRepository) GetAbility(ctx context.Context, abilityID string) (*entities.Ability, error) {
	var ability entities.Ability
	found, err := r.getJSON(ctx, abilityKey(abilityID), &ability)
	if err != nil || !found {
		return nil, err
	}
	return &ability, nil
}

// ListAbilities retrieves every ability definition. Rows are fetched
// concurrently since the index only holds IDs.
func (r *redisRepository) ListAbilities(ctx context.Context) ([]*entities.Ability, error) {
	ids, err := r.client.SMembers(ctx, abilityIndexKey).Result()
	if err != nil {
		return nil, err
	}

	abilities := make([]*entities.Ability, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			ability, getErr := r.GetAbility(gctx, id)
			if getErr != nil {
				return getErr
			}
			abilities[i] = ability
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make([]*entities.Ability, 0, len(abilities))
	for _, ability := range abilities {
		if ability != nil {
			result = append(result, ability)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].RequiredLevel != result[j].RequiredLevel {
			return result[i].RequiredLevel < result[j].RequiredLevel
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// PutEnemy stores an enemy definition
func (r *redisRepository) PutEnemy(ctx context.Context, enemy *entities.EnemyType) error {
	if enemy == nil || enemy.ID == "" {
		return fmt.Errorf("enemy with ID is required")
	}
	if err := r.putJSON(ctx, enemyKey(enemy.ID), enemy); err != nil {
		return err
	}
	return r.client.SAdd(ctx, enemyFloorIndexKey(enemy.FloorNumber), enemy.ID).Err()
}

// GetEnemy retrieves an enemy by ID, nil if absent
func (r *redisRepository) GetEnemy(ctx context.Context, enemyID string) (*entities.EnemyType, error) {
	var enemy entities.EnemyType
	found, err := r.getJSON(ctx, enemyKey(enemyID), &enemy)
	if err != nil || !found {
		return nil, err
	}
	return &enemy, nil
}

// ListEnemiesByFloor retrieves all enemies that spawn on a floor
func (r *redisRepository) ListEnemiesByFloor(ctx context.Context, floorNumber int) ([]*entities.EnemyType, error) {
	ids, err := r.client.SMembers(ctx, enemyFloorIndexKey(floorNumber)).Result()
	if err != nil {
		return nil, err
	}

	enemies := make([]*entities.EnemyType, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			enemy, getErr := r.GetEnemy(gctx, id)
			if getErr != nil {
				return getErr
			}
			enemies[i] = enemy
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make([]*entities.EnemyType, 0, len(enemies))
	for _, enemy := range enemies {
		if enemy != nil {
			result = append(result, enemy)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// PutBoss stores a boss definition
func (r *redisRepository) PutBoss(ctx context.Context, boss *entities.BossEnemy) error {
	if boss == nil || boss.ID == "" {
		return fmt.Errorf("boss with ID is required")
	}
	return r.putJSON(ctx, bossKey(boss.FloorNumber), boss)
}

// GetBossForFloor retrieves the boss of a floor, nil if absent
func (r *redisRepository) GetBossForFloor(ctx context.Context, floorNumber int) (*entities.BossEnemy, error) {
	var boss entities.BossEnemy
	found, err := r.getJSON(ctx, bossKey(floorNumber), &boss)
	if err != nil || !found {
		return nil, err
	}
	return &boss, nil
}

// PutLocation stores a narrative location
func (r *redisRepository) PutLocation(ctx context.Context, location *entities.NarrativeLocation) error {
	if location == nil || location.ID == "" {
		return fmt.Errorf("location with ID is required")
	}
	if err := r.putJSON(ctx, locationKey(location.ID), location); err != nil {
		return err
	}
	if location.LocationType == entities.LocationTypeStart {
		return r.client.Set(ctx, startLocationKey(location.FloorNumber), location.ID, 0).Err()
	}
	return nil
}

// GetLocation retrieves a location by ID, nil if absent
func (r *redisRepository) GetLocation(ctx context.Context, locationID string) (*entities.NarrativeLocation, error) {
	var location entities.NarrativeLocation
	found, err := r.getJSON(ctx, locationKey(locationID), &location)
	if err != nil || !found {
		return nil, err
	}
	return &location, nil
}

// GetStartLocation retrieves the entry location of a floor, nil if absent
func (r *redisRepository) GetStartLocation(ctx context.Context, floorNumber int) (*entities.NarrativeLocation, error) {
	locationID, err := r.client.Get(ctx, startLocationKey(floorNumber)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}
	return r.GetLocation(ctx, locationID)
}

// PutChoice stores a narrative choice
func (r *redisRepository) PutChoice(ctx context.Context, choice *entities.NarrativeChoice) error {
	if choice == nil || choice.ID == "" {
		return fmt.Errorf("choice with ID is required")
	}
	if err := r.putJSON(ctx, choiceKey(choice.ID), choice); err != nil {
		return err
	}
	return r.client.SAdd(ctx, choiceLocationIndexKey(choice.LocationID), choice.ID).Err()
}

// GetChoice retrieves a choice by ID, nil if absent
func (r *redisRepository) GetChoice(ctx context.Context, choiceID string) (*entities.NarrativeChoice, error) {
	var choice entities.NarrativeChoice
	found, err := r.getJSON(ctx, choiceKey(choiceID), &choice)
	if err != nil || !found {
		return nil, err
	}
	return &choice, nil
}

// ListChoicesForLocation retrieves a location's choices in display order
func (r *redisRepository) ListChoicesForLocation(ctx context.Context, locationID string) ([]*entities.NarrativeChoice, error) {
	ids, err := r.client.SMembers(ctx, choiceLocationIndexKey(locationID)).Result()
	if err != nil {
		return nil, err
	}

	choices := make([]*entities.NarrativeChoice, len(ids))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			choice, getErr := r.GetChoice(gctx, id)
			if getErr != nil {
				return getErr
			}
			choices[i] = choice
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make([]*entities.NarrativeChoice, 0, len(choices))
	for _, choice := range choices {
		if choice != nil {
			result = append(result, choice)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].DisplayOrder != result[j].DisplayOrder {
			return result[i].DisplayOrder < result[j].DisplayOrder
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// PutOutcome stores an outcome row
func (r *redisRepository) PutOutcome(ctx context.Context, outcome *entities.NarrativeOutcome) error {
	if outcome == nil || outcome.ChoiceID == "" || outcome.OutcomeType == "" {
		return fmt.Errorf("outcome with choice ID and outcome type is required")
	}
	return r.putJSON(ctx, outcomeKey(outcome.ChoiceID, outcome.OutcomeType), outcome)
}

// GetOutcome retrieves the outcome row for a choice and outcome type,
// nil if absent
func (r *redisRepository) GetOutcome(ctx context.Context, choiceID string, outcomeType entities.OutcomeType) (*entities.NarrativeOutcome, error) {
	var outcome entities.NarrativeOutcome
	found, err := r.getJSON(ctx, outcomeKey(choiceID, outcomeType), &outcome)
	if err != nil || !found {
		return nil, err
	}
	return &outcome, nil
}

// PutConsumable stores a consumable item definition
func (r *redisRepository) PutConsumable(ctx context.Context, item *entities.ConsumableItem) error {
	if item == nil || item.ID == "" {
		return fmt.Errorf("consumable with ID is required")
	}
	return r.putJSON(ctx, consumableKey(item.ID), item)
}

// GetConsumable retrieves a consumable by ID, nil if absent
func (r *redisRepository) GetConsumable(ctx context.Context, itemID string) (*entities.ConsumableItem, error) {
	var item entities.ConsumableItem
	found, err := r.getJSON(ctx, consumableKey(itemID), &item)
	if err != nil || !found {
		return nil, err
	}
	return &item, nil
}

// PutEquipment stores an equipment item definition
func (r *redisRepository) PutEquipment(ctx context.Context, item *entities.EquipmentItem) error {
	if item == nil || item.ID == "" {
		return fmt.Errorf("equipment with ID is required")
	}
	return r.putJSON(ctx, equipmentKey(item.ID), item)
}

// GetEquipment retrieves equipment by ID, nil if absent
func (r *redisRepository) GetEquipment(ctx context.Context, itemID string) (*entities.EquipmentItem, error) {
	var item entities.EquipmentItem
	found, err := r.getJSON(ctx, equipmentKey(itemID), &item)
	if err != nil || !found {
		return nil, err
	}
	return &item, nil
}
