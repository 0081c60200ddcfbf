package journal

import (
	"context"
	"fmt"
	"sync"

	"github.com/codequest-rpg/dungeon-engine/internal/entities"
	"github.com/codequest-rpg/dungeon-engine/internal/uuid"
)

// inMemoryRepository implements Repository using in-memory storage
type inMemoryRepository struct {
	mu            sync.RWMutex
	combatLogs    map[string][]*entities.CombatLogEntry
	skillChecks   map[string][]*entities.SkillCheckRecord
	uuidGenerator uuid.Generator
	timeProvider  TimeProvider
}

// NewInMemoryRepository creates a new in-memory journal repository
func NewInMemoryRepository() Repository {
	return &inMemoryRepository{
		combatLogs:    make(map[string][]*entities.CombatLogEntry),
		skillChecks:   make(map[string][]*entities.SkillCheckRecord),
		uuidGenerator: uuid.NewGoogleUUIDGenerator(),
		timeProvider:  &RealTimeProvider{},
	}
}

// AppendCombatLog records a finished combat
func (r *inMemoryRepository) AppendCombatLog(ctx context.Context, entry *entities.CombatLogEntry) error {
	if entry == nil || entry.UserID == "" {
		return fmt.Errorf("combat log entry with user ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if entry.ID == "" {
		entry.ID = r.uuidGenerator.New()
	}
	entry.CreatedAt = r.timeProvider.Now()

	entryCopy := *entry
	// Prepend so reads come back newest first
	r.combatLogs[entry.UserID] = append([]*entities.CombatLogEntry{&entryCopy}, r.combatLogs[entry.UserID]...)
	return nil
}

// ListCombatLog retrieves the most recent combat entries for a user,
// newest first
func (r *inMemoryRepository) ListCombatLog(ctx context.Context, userID string, limit int) ([]*entities.CombatLogEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	logs := r.combatLogs[userID]
	if len(logs) > limit {
		logs = logs[:limit]
	}

	entries := make([]*entities.CombatLogEntry, 0, len(logs))
	for _, entry := range logs {
		entryCopy := *entry
		entries = append(entries, &entryCopy)
	}

	return entries, nil
}

// AppendSkillCheck records a resolved skill check
func (r *inMemoryRepository) AppendSkillCheck(ctx context.Context, record *entities.SkillCheckRecord) error {
	if record == nil || record.UserID == "" {
		return fmt.Errorf("skill check record with user ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if record.ID == "" {
		record.ID = r.uuidGenerator.New()
	}
	record.CreatedAt = r.timeProvider.Now()

	recordCopy := *record
	r.skillChecks[record.UserID] = append([]*entities.SkillCheckRecord{&recordCopy}, r.skillChecks[record.UserID]...)
	return nil
}

// ListSkillChecks retrieves the most recent skill check records for a
// user, newest first
func (r *inMemoryRepository) ListSkillChecks(ctx context.Context, userID string, limit int) ([]*entities.SkillCheckRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	checks := r.skillChecks[userID]
	if len(checks) > limit {
		checks = checks[:limit]
	}

	records := make([]*entities.SkillCheckRecord, 0, len(checks))
	for _, record := range checks {
		recordCopy := *record
		records = append(records, &recordCopy)
	}

	return records, nil
}
