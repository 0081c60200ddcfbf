package wallets

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/codequest-rpg/dungeon-engine/internal/entities"
)

// inMemoryRepository implements Repository using in-memory storage
type inMemoryRepository struct {
	mu      sync.RWMutex
	wallets map[string]*entities.Wallet
}

// NewInMemoryRepository creates a new in-memory wallet repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		wallets: make(map[string]*entities.Wallet),
	}
}

// GetOrCreate retrieves a wallet, creating an empty one on first access
func (r *inMemoryRepository) GetOrCreate(ctx context.Context, userID string) (*entities.Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if wallet, exists := r.wallets[userID]; exists {
		walletCopy := *wallet
		return &walletCopy, nil
	}

	fresh := entities.NewWallet(userID)
	stored := *fresh
	r.wallets[userID] = &stored
	return fresh, nil
}

// Update persists a modified wallet
func (r *inMemoryRepository) Update(ctx context.Context, wallet *entities.Wallet) error {
	if wallet == nil || wallet.UserID == "" {
		return fmt.Errorf("wallet with user ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	wallet.UpdatedAt = time.Now().UTC()
	walletCopy := *wallet
	r.wallets[wallet.UserID] = &walletCopy
	return nil
}
