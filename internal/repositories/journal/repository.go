package journal

//go:generate mockgen -destination=mock/mock_time_provider.go -package=mockjournal github.com/codequest-rpg/dungeon-engine/internal/repositories/journal TimeProvider

import (
	"context"
	"time"

	"github.com/codequest-rpg/dungeon-engine/internal/entities"
)

// TimeProvider abstracts time for testing
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider returns the actual current time
type RealTimeProvider struct{}

// Now returns the current UTC time
func (r *RealTimeProvider) Now() time.Time {
	return time.Now().UTC()
}

// Repository defines the interface for the append-only audit journal
type Repository interface {
	// AppendCombatLog records a finished combat
	AppendCombatLog(ctx context.Context, entry *entities.CombatLogEntry) error

	// ListCombatLog retrieves the most recent combat entries for a user,
	// newest first
	ListCombatLog(ctx context.Context, userID string, limit int) ([]*entities.CombatLogEntry, error)

	// AppendSkillCheck records a resolved skill check
	AppendSkillCheck(ctx context.Context, record *entities.SkillCheckRecord) error

	// ListSkillChecks retrieves the most recent skill check records for a
	// user, newest first
	ListSkillChecks(ctx context.Context, userID string, limit int) ([]*entities.SkillCheckRecord, error)
}
