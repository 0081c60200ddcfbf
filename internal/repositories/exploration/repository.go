package exploration

import (
	"context"

	"github.com/codequest-rpg/dungeon-engine/internal/entities"
)

// Repository defines the interface for dungeon progress storage
type Repository interface {
	// GetOrCreate retrieves dungeon progress, creating floor 1 state on first access
	GetOrCreate(ctx context.Context, userID string) (*entities.DungeonProgress, error)

	// Update persists modified dungeon progress
	Update(ctx context.Context, progress *entities.DungeonProgress) error
}
