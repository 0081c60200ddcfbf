package narrative

import (
	"context"

	"github.com/codequest-rpg/dungeon-engine/internal/entities"
)

// Repository defines the interface for narrative progress storage
type Repository interface {
	// GetOrCreate retrieves narrative progress, creating floor 1 state on first access
	GetOrCreate(ctx context.Context, userID string) (*entities.NarrativeProgress, error)

	// Update persists modified narrative progress
	Update(ctx context.Context, progress *entities.NarrativeProgress) error
}
