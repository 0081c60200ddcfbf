package inventory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/codequest-rpg/dungeon-engine/internal/entities"
)

// inMemoryRepository implements Repository using in-memory storage
type inMemoryRepository struct {
	mu          sync.RWMutex
	consumables map[string]map[string]*entities.InventoryItem
	equipment   map[string]map[string]*entities.InventoryItem
}

// NewInMemoryRepository creates a new in-memory inventory repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		consumables: make(map[string]map[string]*entities.InventoryItem),
		equipment:   make(map[string]map[string]*entities.InventoryItem),
	}
}

// AddConsumable adds quantity of a consumable to a player's inventory
func (r *inMemoryRepository) AddConsumable(ctx context.Context, userID, itemID string, quantity int) error {
	return r.addStack(r.consumables, userID, itemID, quantity)
}

// AddEquipment adds quantity of an equipment item to a player's inventory
func (r *inMemoryRepository) AddEquipment(ctx context.Context, userID, itemID string, quantity int) error {
	return r.addStack(r.equipment, userID, itemID, quantity)
}

func (r *inMemoryRepository) addStack(store map[string]map[string]*entities.InventoryItem, userID, itemID string, quantity int) error {
	if userID == "" || itemID == "" {
		return fmt.Errorf("user ID and item ID are required")
	}
	if quantity <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", quantity)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stacks, exists := store[userID]
	if !exists {
		stacks = make(map[string]*entities.InventoryItem)
		store[userID] = stacks
	}

	if item, exists := stacks[itemID]; exists {
		item.Quantity += quantity
		return nil
	}

	stacks[itemID] = &entities.InventoryItem{
		UserID:     userID,
		ItemID:     itemID,
		Quantity:   quantity,
		AcquiredAt: time.Now().UTC(),
	}
	return nil
}

// ListConsumables retrieves a player's consumable stacks
func (r *inMemoryRepository) ListConsumables(ctx context.Context, userID string) ([]*entities.InventoryItem, error) {
	return r.listStacks(r.consumables, userID)
}

// ListEquipment retrieves a player's equipment stacks
func (r *inMemoryRepository) ListEquipment(ctx context.Context, userID string) ([]*entities.InventoryItem, error) {
	return r.listStacks(r.equipment, userID)
}

func (r *inMemoryRepository) listStacks(store map[string]map[string]*entities.InventoryItem, userID string) ([]*entities.InventoryItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stacks := store[userID]
	items := make([]*entities.InventoryItem, 0, len(stacks))
	for _, item := range stacks {
		itemCopy := *item
		items = append(items, &itemCopy)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].ItemID < items[j].ItemID
	})
	return items, nil
}
