package journal

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/codequest-rpg/dungeon-engine/internal/entities"
	"github.com/codequest-rpg/dungeon-engine/internal/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client        *redis.Client
	UUIDGenerator uuid.Generator
	TimeProvider  TimeProvider
}

// redisRepository implements Repository using Redis lists. Entries are
// pushed to the head so LRange(0, n) yields newest first.
type redisRepository struct {
	client        *redis.Client
	uuidGenerator uuid.Generator
	timeProvider  TimeProvider
}

// NewRedisRepository creates a new Redis-backed repository
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil || cfg.Client == nil {
		panic("RedisRepoConfig and Client are required")
	}

	generator := cfg.UUIDGenerator
	if generator == nil {
		generator = uuid.NewGoogleUUIDGenerator()
	}
	timeProvider := cfg.TimeProvider
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}

	return &redisRepository{
		client:        cfg.Client,
		uuidGenerator: generator,
		timeProvider:  timeProvider,
	}
}

func combatLogKey(userID string) string {
	return fmt.Sprintf("journal:combat:%s", userID)
}

func skillCheckKey(userID string) string {
	return fmt.Sprintf("journal:skillchecks:%s", userID)
}

// AppendCombatLog records a finished combat
func (r *redisRepository) AppendCombatLog(ctx context.Context, entry *entities.CombatLogEntry) error {
	if entry == nil || entry.UserID == "" {
		return fmt.Errorf("combat log entry with user ID is required")
	}

	if entry.ID == "" {
		entry.ID = r.uuidGenerator.New()
	}
	entry.CreatedAt = r.timeProvider.Now()

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	return r.client.LPush(ctx, combatLogKey(entry.UserID), data).Err()
}

// ListCombatLog retrieves the most recent combat entries for a user,
// newest first
func (r *redisRepository) ListCombatLog(ctx context.Context, userID string, limit int) ([]*entities.CombatLogEntry, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.client.LRange(ctx, combatLogKey(userID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]*entities.CombatLogEntry, 0, len(rows))
	for _, row := range rows {
		var entry entities.CombatLogEntry
		if err := json.Unmarshal([]byte(row), &entry); err != nil {
			return nil, err
		}
		entries = append(entries, &entry)
	}

	return entries, nil
}

// AppendSkillCheck records a resolved skill check
func (r *redisRepository) AppendSkillCheck(ctx context.Context, record *entities.SkillCheckRecord) error {
	if record == nil || record.UserID == "" {
		return fmt.Errorf("skill check record with user ID is required")
	}

	if record.ID == "" {
		record.ID = r.uuidGenerator.New()
	}
	record.CreatedAt = r.timeProvider.Now()

	data, err := json.Marshal(record)
	if err != nil {
		return err
	}

	return r.client.LPush(ctx, skillCheckKey(record.UserID), data).Err()
}

// ListSkillChecks retrieves the most recent skill check records for a
// user, newest first
func (r *redisRepository) ListSkillChecks(ctx context.Context, userID string, limit int) ([]*entities.SkillCheckRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := r.client.LRange(ctx, skillCheckKey(userID), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	records := make([]*entities.SkillCheckRecord, 0, len(rows))
	for _, row := range rows {
		var record entities.SkillCheckRecord
		if err := json.Unmarshal([]byte(row), &record); err != nil {
			return nil, err
		}
		records = append(records, &record)
	}

	return records, nil
}
