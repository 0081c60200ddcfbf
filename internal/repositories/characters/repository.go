package characters

import (
	"context"

	"github.com/codequest-rpg/dungeon-engine/internal/entities"
)

// Repository defines the interface for character stat storage
type Repository interface {
	// GetOrCreate retrieves a character sheet, lazily creating the default
	// sheet on first access
	GetOrCreate(ctx context.Context, userID string) (*entities.CharacterStats, error)

	// Get retrieves an existing character sheet
	Get(ctx context.Context, userID string) (*entities.CharacterStats, error)

	// Update persists a modified character sheet
	Update(ctx context.Context, stats *entities.CharacterStats) error
}
