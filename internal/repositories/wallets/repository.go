package wallets

import (
	"context"

	"github.com/codequest-rpg/dungeon-engine/internal/entities"
)

// Repository defines the interface for wallet storage
type Repository interface {
	// GetOrCreate retrieves a wallet, lazily creating an empty one
	GetOrCreate(ctx context.Context, userID string) (*entities.Wallet, error)

	// Update persists a modified wallet
	Update(ctx context.Context, wallet *entities.Wallet) error
}
