package catalog

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/codequest-rpg/dungeon-engine/internal/entities"
)

// inMemoryRepository implements Repository using in-memory storage
type inMemoryRepository struct {
	mu             sync.RWMutex
	abilities      map[string]*entities.Ability
	enemies        map[string]*entities.EnemyType
	bosses         map[int]*entities.BossEnemy
	locations      map[string]*entities.NarrativeLocation
	startLocations map[int]string
	choices        map[string]*entities.NarrativeChoice
	outcomes       map[string]*entities.NarrativeOutcome
	consumables    map[string]*entities.ConsumableItem
	equipment      map[string]*entities.EquipmentItem
}

// NewInMemoryRepository creates a new in-memory catalog repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		abilities:      make(map[string]*entities.Ability),
		enemies:        make(map[string]*entities.EnemyType),
		bosses:         make(map[int]*entities.BossEnemy),
		locations:      make(map[string]*entities.NarrativeLocation),
		startLocations: make(map[int]string),
		choices:        make(map[string]*entities.NarrativeChoice),
		outcomes:       make(map[string]*entities.NarrativeOutcome),
		consumables:    make(map[string]*entities.ConsumableItem),
		equipment:      make(map[string]*entities.EquipmentItem),
	}
}

// PutAbility stores an ability definition
func (r *inMemoryRepository) PutAbility(ctx context.Context, ability *entities.Ability) error {
	if ability == nil || ability.ID == "" {
		return fmt.Errorf("ability with ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	abilityCopy := *ability
	r.abilities[ability.ID] = &abilityCopy
	return nil
}

// GetAbility retrieves an ability by ID, nil if absent
func (r *inMemoryRepository) GetAbility(ctx context.Context, abilityID string) (*entities.Ability, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ability, exists := r.abilities[abilityID]
	if !exists {
		return nil, nil
	}

	abilityCopy := *ability
	return &abilityCopy, nil
}

// ListAbilities retrieves every ability definition
func (r *inMemoryRepository) ListAbilities(ctx context.Context) ([]*entities.Ability, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*entities.Ability, 0, len(r.abilities))
	for _, ability := range r.abilities {
		abilityCopy := *ability
		result = append(result, &abilityCopy)
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
func (r *inMemoryRepository) PutEnemy(ctx context.Context, enemy *entities.EnemyType) error {
	if enemy == nil || enemy.ID == "" {
		return fmt.Errorf("enemy with ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	enemyCopy := *enemy
	r.enemies[enemy.ID] = &enemyCopy
	return nil
}

// GetEnemy retrieves an enemy by ID, nil if absent
func (r *inMemoryRepository) GetEnemy(ctx context.Context, enemyID string) (*entities.EnemyType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	enemy, exists := r.enemies[enemyID]
	if !exists {
		return nil, nil
	}

	enemyCopy := *enemy
	return &enemyCopy, nil
}

// ListEnemiesByFloor retrieves all enemies that spawn on a floor
func (r *inMemoryRepository) ListEnemiesByFloor(ctx context.Context, floorNumber int) ([]*entities.EnemyType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*entities.EnemyType
	for _, enemy := range r.enemies {
		if enemy.FloorNumber == floorNumber {
			enemyCopy := *enemy
			result = append(result, &enemyCopy)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})
	return result, nil
}

// PutBoss stores a boss definition
func (r *inMemoryRepository) PutBoss(ctx context.Context, boss *entities.BossEnemy) error {
	if boss == nil || boss.ID == "" {
		return fmt.Errorf("boss with ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	bossCopy := *boss
	r.bosses[boss.FloorNumber] = &bossCopy
	return nil
}

// GetBossForFloor retrieves the boss of a floor, nil if absent
func (r *inMemoryRepository) GetBossForFloor(ctx context.Context, floorNumber int) (*entities.BossEnemy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	boss, exists := r.bosses[floorNumber]
	if !exists {
		return nil, nil
	}

	bossCopy := *boss
	return &bossCopy, nil
}

// PutLocation stores a narrative location
func (r *inMemoryRepository) PutLocation(ctx context.Context, location *entities.NarrativeLocation) error {
	if location == nil || location.ID == "" {
		return fmt.Errorf("location with ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	locationCopy := *location
	r.locations[location.ID] = &locationCopy
	if location.LocationType == entities.LocationTypeStart {
		r.startLocations[location.FloorNumber] = location.ID
	}
	return nil
}

// GetLocation retrieves a location by ID, nil if absent
func (r *inMemoryRepository) GetLocation(ctx context.Context, locationID string) (*entities.NarrativeLocation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	location, exists := r.locations[locationID]
	if !exists {
		return nil, nil
	}

	locationCopy := *location
	return &locationCopy, nil
}

// GetStartLocation retrieves the entry location of a floor, nil if absent
func (r *inMemoryRepository) GetStartLocation(ctx context.Context, floorNumber int) (*entities.NarrativeLocation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	locationID, exists := r.startLocations[floorNumber]
	if !exists {
		return nil, nil
	}

	location, exists := r.locations[locationID]
	if !exists {
		return nil, nil
	}

	locationCopy := *location
	return &locationCopy, nil
}

// PutChoice stores a narrative choice
func (r *inMemoryRepository) PutChoice(ctx context.Context, choice *entities.NarrativeChoice) error {
	if choice == nil || choice.ID == "" {
		return fmt.Errorf("choice with ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	choiceCopy := *choice
	r.choices[choice.ID] = &choiceCopy
	return nil
}

// GetChoice retrieves a choice by ID, nil if absent
func (r *inMemoryRepository) GetChoice(ctx context.Context, choiceID string) (*entities.NarrativeChoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	choice, exists := r.choices[choiceID]
	if !exists {
		return nil, nil
	}

	choiceCopy := *choice
	return &choiceCopy, nil
}

// ListChoicesForLocation retrieves a location's choices in display order
func (r *inMemoryRepository) ListChoicesForLocation(ctx context.Context, locationID string) ([]*entities.NarrativeChoice, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*entities.NarrativeChoice
	for _, choice := range r.choices {
		if choice.LocationID == locationID {
			choiceCopy := *choice
			result = append(result, &choiceCopy)
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
func (r *inMemoryRepository) PutOutcome(ctx context.Context, outcome *entities.NarrativeOutcome) error {
	if outcome == nil || outcome.ChoiceID == "" || outcome.OutcomeType == "" {
		return fmt.Errorf("outcome with choice ID and outcome type is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	outcomeCopy := *outcome
	r.outcomes[outcomeCopy.CompletionKey()] = &outcomeCopy
	return nil
}

// GetOutcome retrieves the outcome row for a choice and outcome type,
// nil if absent
func (r *inMemoryRepository) GetOutcome(ctx context.Context, choiceID string, outcomeType entities.OutcomeType) (*entities.NarrativeOutcome, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	outcome, exists := r.outcomes[fmt.Sprintf("%s:%s", choiceID, outcomeType)]
	if !exists {
		return nil, nil
	}

	outcomeCopy := *outcome
	return &outcomeCopy, nil
}

// PutConsumable stores a consumable item definition
func (r *inMemoryRepository) PutConsumable(ctx context.Context, item *entities.ConsumableItem) error {
	if item == nil || item.ID == "" {
		return fmt.Errorf("consumable with ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	itemCopy := *item
	r.consumables[item.ID] = &itemCopy
	return nil
}

// GetConsumable retrieves a consumable by ID, nil if absent
func (r *inMemoryRepository) GetConsumable(ctx context.Context, itemID string) (*entities.ConsumableItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.consumables[itemID]
	if !exists {
		return nil, nil
	}

	itemCopy := *item
	return &itemCopy, nil
}

// PutEquipment stores an equipment item definition
func (r *inMemoryRepository) PutEquipment(ctx context.Context, item *entities.EquipmentItem) error {
	if item == nil || item.ID == "" {
		return fmt.Errorf("equipment with ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	itemCopy := *item
	r.equipment[item.ID] = &itemCopy
	return nil
}

// GetEquipment retrieves equipment by ID, nil if absent
func (r *inMemoryRepository) GetEquipment(ctx context.Context, itemID string) (*entities.EquipmentItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, exists := r.equipment[itemID]
	if !exists {
		return nil, nil
	}

	itemCopy := *item
	return &itemCopy, nil
}
