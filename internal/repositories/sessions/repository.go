package sessions

import (
	"context"

	"github.com/codequest-rpg/dungeon-engine/internal/entities"
)

// Repository defines the interface for combat session storage
type Repository interface {
	// Get retrieves the active combat session for a user, nil if none
	Get(ctx context.Context, userID string) (*entities.CombatSession, error)

	// Save persists a combat session
	Save(ctx context.Context, session *entities.CombatSession) error

	// Delete removes the active combat session for a user
	Delete(ctx context.Context, userID string) error
}
