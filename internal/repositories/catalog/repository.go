package catalog

import (
	"context"

	"github.com/codequest-rpg/dungeon-engine/internal/entities"
)

// Repository defines the interface for the game content catalog.
// Content is written once at seed time and read-only afterwards.
// Lookups by ID return (nil, nil) when the row does not exist so
// callers can distinguish absence from storage failure.
type Repository interface {
	// PutAbility stores an ability definition
	PutAbility(ctx context.Context, ability *entities.Ability) error

	// GetAbility retrieves an ability by ID, nil if absent
	GetAbility(ctx context.Context, abilityID string) (*entities.Ability, error)

	// ListAbilities retrieves every ability definition
	ListAbilities(ctx context.Context) ([]*entities.Ability, error)

	// PutEnemy stores an enemy definition
	PutEnemy(ctx context.Context, enemy *entities.EnemyType) error

	// GetEnemy retrieves an enemy by ID, nil if absent
	GetEnemy(ctx context.Context, enemyID string) (*entities.EnemyType, error)

	// ListEnemiesByFloor retrieves all enemies that spawn on a floor
	ListEnemiesByFloor(ctx context.Context, floorNumber int) ([]*entities.EnemyType, error)

	// PutBoss stores a boss definition
	PutBoss(ctx context.Context, boss *entities.BossEnemy) error

	// GetBossForFloor retrieves the boss of a floor, nil if absent
	GetBossForFloor(ctx context.Context, floorNumber int) (*entities.BossEnemy, error)

	// PutLocation stores a narrative location
	PutLocation(ctx context.Context, location *entities.NarrativeLocation) error

	// GetLocation retrieves a location by ID, nil if absent
	GetLocation(ctx context.Context, locationID string) (*entities.NarrativeLocation, error)

	// GetStartLocation retrieves the entry location of a floor, nil if absent
	GetStartLocation(ctx context.Context, floorNumber int) (*entities.NarrativeLocation, error)

	// PutChoice stores a narrative choice
	PutChoice(ctx context.Context, choice *entities.NarrativeChoice) error

	// GetChoice retrieves a choice by ID, nil if absent
	GetChoice(ctx context.Context, choiceID string) (*entities.NarrativeChoice, error)

	// ListChoicesForLocation retrieves a location's choices in display order
	ListChoicesForLocation(ctx context.Context, locationID string) ([]*entities.NarrativeChoice, error)

	// PutOutcome stores an outcome row
	PutOutcome(ctx context.Context, outcome *entities.NarrativeOutcome) error

	// GetOutcome retrieves the outcome row for a choice and outcome type,
	// nil if absent
	GetOutcome(ctx context.Context, choiceID string, outcomeType entities.OutcomeType) (*entities.NarrativeOutcome, error)

	// PutConsumable stores a consumable item definition
	PutConsumable(ctx context.Context, item *entities.ConsumableItem) error

	// GetConsumable retrieves a consumable by ID, nil if absent
	GetConsumable(ctx context.Context, itemID string) (*entities.ConsumableItem, error)

	// PutEquipment stores an equipment item definition
	PutEquipment(ctx context.Context, item *entities.EquipmentItem) error

	// GetEquipment retrieves equipment by ID, nil if absent
	GetEquipment(ctx context.Context, itemID string) (*entities.EquipmentItem, error)
}
