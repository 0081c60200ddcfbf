package narrative

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
	progress map[string]*entities.NarrativeProgress
}

// NewInMemoryRepository creates a new in-memory narrative repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		progress: make(map[string]*entities.NarrativeProgress),
	}
}

// copyProgress clones a record including its flag map and slices, so the
// caller and the store never share mutable state. Mutations on a returned
// copy must go through Update to become visible.
func copyProgress(progress *entities.NarrativeProgress) *entities.NarrativeProgress {
	clone := *progress

	if progress.VisitedLocations != nil {
		clone.VisitedLocations = make([]string, len(progress.VisitedLocations))
		copy(clone.VisitedLocations, progress.VisitedLocations)
	}
	if progress.CompletedChoices != nil {
		clone.CompletedChoices = make([]string, len(progress.CompletedChoices))
		copy(clone.CompletedChoices, progress.CompletedChoices)
	}
	if progress.StoryFlags != nil {
		clone.StoryFlags = make(map[string]any, len(progress.StoryFlags))
		for k, v := range progress.StoryFlags {
			clone.StoryFlags[k] = v
		}
	}

	return &clone
}

// GetOrCreate retrieves narrative progress, creating floor 1 state on first access
func (r *inMemoryRepository) GetOrCreate(ctx context.Context, userID string) (*entities.NarrativeProgress, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if progress, exists := r.progress[userID]; exists {
		return copyProgress(progress), nil
	}

	fresh := entities.NewNarrativeProgress(userID)
	r.progress[userID] = copyProgress(fresh)
	return fresh, nil
}

// Update persists modified narrative progress
func (r *inMemoryRepository) Update(ctx context.Context, progress *entities.NarrativeProgress) error {
	if progress == nil || progress.UserID == "" {
		return fmt.Errorf("narrative progress with user ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	progress.UpdatedAt = time.Now().UTC()
	r.progress[progress.UserID] = copyProgress(progress)
	return nil
}
