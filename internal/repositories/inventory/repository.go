package inventory

import (
	"context"

	"github.com/codequest-rpg/dungeon-engine/internal/entities"
)

// Repository defines the interface for player inventory storage.
// Rows stack: adding an item the player already holds bumps its quantity.
type Repository interface {
	// AddConsumable adds quantity of a consumable to a player's inventory
	AddConsumable(ctx context.Context, userID, itemID string, quantity int) error

	// AddEquipment adds quantity of an equipment item to a player's inventory
	AddEquipment(ctx context.Context, userID, itemID string, quantity int) error

	// ListConsumables retrieves a player's consumable stacks
	ListConsumables(ctx context.Context, userID string) ([]*entities.InventoryItem, error)

	// ListEquipment retrieves a player's equipment stacks
	ListEquipment(ctx context.Context, userID string) ([]*entities.InventoryItem, error)
}
