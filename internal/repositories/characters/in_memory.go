package characters

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/codequest-rpg/dungeon-engine/internal/entities"
)

// inMemoryRepository implements Repository using in-memory storage
type inMemoryRepository struct {
	mu     sync.RWMutex
	sheets map[string]*entities.CharacterStats
}

// NewInMemoryRepository creates a new in-memory character repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		sheets: make(map[string]*entities.CharacterStats),
	}
}

// GetOrCreate retrieves a character sheet, creating defaults on first access
func (r *inMemoryRepository) GetOrCreate(ctx context.Context, userID string) (*entities.CharacterStats, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if stats, exists := r.sheets[userID]; exists {
		statsCopy := *stats
		return &statsCopy, nil
	}

	fresh := entities.NewCharacterStats(userID)
	stored := *fresh
	r.sheets[userID] = &stored
	return fresh, nil
}

// Get retrieves an existing character sheet, nil if absent
func (r *inMemoryRepository) Get(ctx context.Context, userID string) (*entities.CharacterStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats, exists := r.sheets[userID]
	if !exists {
		return nil, nil
	}

	statsCopy := *stats
	return &statsCopy, nil
}

// Update persists a modified character sheet
func (r *inMemoryRepository) Update(ctx context.Context, stats *entities.CharacterStats) error {
	if stats == nil || stats.UserID == "" {
		return fmt.Errorf("character stats with user ID are required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	stats.UpdatedAt = time.Now().UTC()
	statsCopy := *stats
	r.sheets[stats.UserID] = &statsCopy
	return nil
}
