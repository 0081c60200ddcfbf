package character

import (
	"context"
	"log"

	"github.com/codequest-rpg/dungeon-engine/internal/entities"
	"github.com/codequest-rpg/dungeon-engine/internal/errors"
	"github.com/codequest-rpg/dungeon-engine/internal/repositories/catalog"
	"github.com/codequest-rpg/dungeon-engine/internal/repositories/characters"
)

// LevelUpResult reports what an XP award did to the character
type LevelUpResult struct {
	Stats             *entities.CharacterStats
	XPAwarded         int
	LevelsGained      int
	StatPointsAwarded int
}

// LeveledUp reports whether the award crossed at least one level boundary
func (r *LevelUpResult) LeveledUp() bool {
	return r.LevelsGained > 0
}

// SpendTarget names what a stat point can be spent on: one of the four
// attributes, or the flat health/mana sinks.
const (
	SpendTargetHealth = "health"
	SpendTargetMana   = "mana"
)

// Service manages character sheets: lazy creation, stat point spending,
// XP and leveling.
type Service interface {
	// GetOrCreateStats loads a character sheet, creating defaults on first access
	GetOrCreateStats(ctx context.Context, userID string) (*entities.CharacterStats, error)

	// UpdateStats persists a sheet another service has mutated
	UpdateStats(ctx context.Context, stats *entities.CharacterStats) error

	// SpendStatPoint spends one available point on an attribute (+1),
	// health (+5 max) or mana (+5 max)
	SpendStatPoint(ctx context.Context, userID, target string) (*entities.CharacterStats, error)

	// DistributePoints spends several points in one batch
	DistributePoints(ctx context.Context, userID string, allocations map[string]int) (*entities.CharacterStats, error)

	// Restore refills health and mana to their maxima
	Restore(ctx context.Context, userID string) (*entities.CharacterStats, error)

	// AwardXP adds experience and runs the leveling loop, granting one
	// stat point per level gained
	AwardXP(ctx context.Context, userID string, xp int) (*LevelUpResult, error)

	// UnlockedAbilities lists the catalog abilities available at the
	// character's current level
	UnlockedAbilities(ctx context.Context, userID string) ([]*entities.Ability, error)
}

// ServiceConfig holds the dependencies for the character service
type ServiceConfig struct {
	CharacterRepository characters.Repository
	CatalogRepository   catalog.Repository
}

type service struct {
	characterRepo characters.Repository
	catalogRepo   catalog.Repository
}

// NewService creates a new character service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil {
		panic("ServiceConfig is required")
	}
	if cfg.CharacterRepository == nil {
		panic("CharacterRepository is required")
	}
	if cfg.CatalogRepository == nil {
		panic("CatalogRepository is required")
	}

	return &service{
		characterRepo: cfg.CharacterRepository,
		catalogRepo:   cfg.CatalogRepository,
	}
}

// GetOrCreateStats loads a character sheet, creating defaults on first access
func (s *service) GetOrCreateStats(ctx context.Context, userID string) (*entities.CharacterStats, error) {
	if userID == "" {
		return nil, errors.InvalidArgument("user ID is required")
	}

	stats, err := s.characterRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to load character stats")
	}
	return stats, nil
}

// UpdateStats persists a sheet another service has mutated
func (s *service) UpdateStats(ctx context.Context, stats *entities.CharacterStats) error {
	if stats == nil || stats.UserID == "" {
		return errors.InvalidArgument("character stats with user ID are required")
	}

	if err := s.characterRepo.Update(ctx, stats); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to save character stats")
	}
	return nil
}

// SpendStatPoint spends one available point on an attribute, health or mana
func (s *service) SpendStatPoint(ctx context.Context, userID, target string) (*entities.CharacterStats, error) {
	stats, err := s.GetOrCreateStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	if stats.StatPointsAvailable < 1 {
		return nil, errors.InsufficientResource("no stat points available")
	}

	if err := applyStatPoint(stats, target); err != nil {
		return nil, err
	}
	stats.StatPointsAvailable--

	if err := s.characterRepo.Update(ctx, stats); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to save character stats")
	}
	return stats, nil
}

// DistributePoints spends several points in one batch. The whole batch is
// validated before anything is persisted.
func (s *service) DistributePoints(ctx context.Context, userID string, allocations map[string]int) (*entities.CharacterStats, error) {
	stats, err := s.GetOrCreateStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	total := 0
	for target, count := range allocations {
		if count < 0 {
			return nil, errors.InvalidArgumentf("negative allocation for %s", target)
		}
		if !validSpendTarget(target) {
			return nil, errors.InvalidStatef("unknown stat target %q", target)
		}
		total += count
	}
	if total > stats.StatPointsAvailable {
		return nil, errors.InsufficientResourcef("need %d stat points, have %d", total, stats.StatPointsAvailable)
	}

	for target, count := range allocations {
		for i := 0; i < count; i++ {
			if err := applyStatPoint(stats, target); err != nil {
				return nil, err
			}
		}
	}
	stats.StatPointsAvailable -= total

	if err := s.characterRepo.Update(ctx, stats); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to save character stats")
	}
	return stats, nil
}

func validSpendTarget(target string) bool {
	if target == SpendTargetHealth || target == SpendTargetMana {
		return true
	}
	return entities.ValidAttribute(entities.Attribute(target))
}

// applyStatPoint mutates the sheet for one spent point. Attribute spends
// recompute the derived stats; the flat health/mana sinks do not.
func applyStatPoint(stats *entities.CharacterStats, target string) error {
	switch target {
	case SpendTargetHealth:
		stats.MaxHealth += 5
		stats.CurrentHealth += 5
		return nil
	case SpendTargetMana:
		stats.MaxMana += 5
		stats.CurrentMana += 5
		return nil
	}

	switch entities.Attribute(target) {
	case entities.AttributeStrength:
		stats.Strength++
	case entities.AttributeIntelligence:
		stats.Intelligence++
	case entities.AttributeDexterity:
		stats.Dexterity++
	case entities.AttributeCharisma:
		stats.Charisma++
	default:
		return errors.InvalidStatef("unknown stat target %q", target)
	}
	stats.RecalculateDerived()
	return nil
}

// Restore refills health and mana to their maxima
func (s *service) Restore(ctx context.Context, userID string) (*entities.CharacterStats, error) {
	stats, err := s.GetOrCreateStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats.RestoreAll()
	if err := s.characterRepo.Update(ctx, stats); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to save character stats")
	}
	return stats, nil
}

// AwardXP adds experience and runs the leveling loop. The curve escalates:
// each level costs level*100 XP, so remaining XP carries over between
// levels and one award can cross several boundaries.
func (s *service) AwardXP(ctx context.Context, userID string, xp int) (*LevelUpResult, error) {
	if xp < 0 {
		return nil, errors.InvalidArgumentf("xp must be non-negative, got %d", xp)
	}

	stats, err := s.GetOrCreateStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	stats.CurrentXP += xp
	levelsGained := 0
	for stats.CurrentXP >= stats.Level*100 {
		stats.CurrentXP -= stats.Level * 100
		stats.Level++
		stats.StatPointsAvailable++
		levelsGained++
	}

	if levelsGained > 0 {
		stats.RecalculateDerived()
		log.Printf("user %s leveled up to %d (+%d stat points)", userID, stats.Level, levelsGained)
	}

	if err := s.characterRepo.Update(ctx, stats); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to save character stats")
	}

	return &LevelUpResult{
		Stats:             stats,
		XPAwarded:         xp,
		LevelsGained:      levelsGained,
		StatPointsAwarded: levelsGained,
	}, nil
}

// UnlockedAbilities lists the catalog abilities available at the character's
// current level
func (s *service) UnlockedAbilities(ctx context.Context, userID string) ([]*entities.Ability, error) {
	stats, err := s.GetOrCreateStats(ctx, userID)
	if err != nil {
		return nil, err
	}

	all, err := s.catalogRepo.ListAbilities(ctx)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to list abilities")
	}

	unlocked := make([]*entities.Ability, 0, len(all))
	for _, ability := range all {
		if ability.RequiredLevel <= stats.Level {
			unlocked = append(unlocked, ability)
		}
	}
	return unlocked, nil
}
