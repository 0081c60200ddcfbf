package sessions

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
	sessions map[string]*entities.CombatSession
}

// NewInMemoryRepository creates a new in-memory session repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		sessions: make(map[string]*entities.CombatSession),
	}
}

// copySession clones a session including its cooldown map and effect
// slices, so caller-side ticking never reaches the stored state without
// a Save.
func copySession(session *entities.CombatSession) *entities.CombatSession {
	clone := *session

	if session.AbilityCooldowns != nil {
		clone.AbilityCooldowns = make(map[string]int, len(session.AbilityCooldowns))
		for id, turns := range session.AbilityCooldowns {
			clone.AbilityCooldowns[id] = turns
		}
	}
	if session.ActiveBuffs != nil {
		clone.ActiveBuffs = make([]entities.CombatEffect, len(session.ActiveBuffs))
		copy(clone.ActiveBuffs, session.ActiveBuffs)
	}
	if session.ActiveDebuffs != nil {
		clone.ActiveDebuffs = make([]entities.CombatEffect, len(session.ActiveDebuffs))
		copy(clone.ActiveDebuffs, session.ActiveDebuffs)
	}

	return &clone
}

// Get retrieves the active combat session for a user, nil if none
func (r *inMemoryRepository) Get(ctx context.Context, userID string) (*entities.CombatSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, exists := r.sessions[userID]
	if !exists {
		return nil, nil
	}

	return copySession(session), nil
}

// Save persists a combat session
func (r *inMemoryRepository) Save(ctx context.Context, session *entities.CombatSession) error {
	if session == nil || session.UserID == "" {
		return fmt.Errorf("combat session with user ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	session.UpdatedAt = time.Now().UTC()
	r.sessions[session.UserID] = copySession(session)
	return nil
}

// Delete removes the active combat session for a user
func (r *inMemoryRepository) Delete(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, userID)
	return nil
}
