package exploration

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/codequest-rpg/dungeon-engine/internal/entities"
)

// inMemoryRepository implements Repository using in-memory storage
type inMemoryRepository struct {
	mu       sync.RWMutex
	progress map[string]*entities.DungeonProgress
}

// NewInMemoryRepository creates a new in-memory exploration repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		progress: make(map[string]*entities.DungeonProgress),
	}
}

// GetOrCreate retrieves dungeon progress, creating floor 1 state on first access
func (r *inMemoryRepository) GetOrCreate(ctx context.Context, userID string) (*entities.DungeonProgress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if progress, exists := r.progress[userID]; exists {
		progressCopy := *progress
		return &progressCopy, nil
	}

	fresh := entities.NewDungeonProgress(userID)
	stored := *fresh
	r.progress[userID] = &stored
	return fresh, nil
}

// Update persists modified dungeon progress
func (r *inMemoryRepository) Update(ctx context.Context, progress *entities.DungeonProgress) error {
	if progress == nil || progress.UserID == "" {
		return fmt.Errorf("dungeon progress with user ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	progress.UpdatedAt = time.Now().UTC()
	progressCopy := *progress
	r.progress[progress.UserID] = &progressCopy
	return nil
}
