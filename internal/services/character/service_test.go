package character_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/codequest-rpg/dungeon-engine/internal/entities"
	apperrors "github.com/codequest-rpg/dungeon-engine/internal/errors"
	"github.com/codequest-rpg/dungeon-engine/internal/repositories/catalog"
	"github.com/codequest-rpg/dungeon-engine/internal/repositories/characters"
	"github.com/codequest-rpg/dungeon-engine/internal/services/character"
)

type CharacterServiceSuite struct {
	suite.Suite
	ctx           context.Context
	characterRepo characters.Repository
	catalogRepo   catalog.Repository
	service       character.Service

	userID string
}

func (s *CharacterServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.userID = "user-123"
	s.characterRepo = characters.NewInMemoryRepository()
	s.catalogRepo = catalog.NewInMemoryRepository()
	s.service = character.NewService(&character.ServiceConfig{
		CharacterRepository: s.characterRepo,
		CatalogRepository:   s.catalogRepo,
	})
}

func (s *CharacterServiceSuite) TestLazyDefaults() {
	stats, err := s.service.GetOrCreateStats(s.ctx, s.userID)
	s.Require().NoError(err)

	s.Equal(1, stats.Level)
	s.Equal(1, stats.Strength)
	s.Equal(50, stats.MaxHealth)
	s.Equal(50, stats.CurrentHealth)
	s.Equal(30, stats.MaxMana)
	s.Equal(10, stats.BaseDamage)
	s.Equal(5, stats.Defense)
	s.InDelta(0.05, stats.CriticalChance, 1e-9)
	s.InDelta(0.05, stats.DodgeChance, 1e-9)
	s.Equal(2, stats.StatPointsAvailable)
}

func (s *CharacterServiceSuite) TestAwardXPSingleLevel() {
	// 250 XP at level 1: 100 to reach level 2, 150 banked, short of the
	// 200 needed for level 3
	result, err := s.service.AwardXP(s.ctx, s.userID, 250)
	s.Require().NoError(err)

	s.Equal(1, result.LevelsGained)
	s.Equal(1, result.StatPointsAwarded)
	s.Equal(2, result.Stats.Level)
	s.Equal(150, result.Stats.CurrentXP)
	s.Equal(3, result.Stats.StatPointsAvailable)
	s.True(result.LeveledUp())
}

func (s *CharacterServiceSuite) TestAwardXPMultipleLevels() {
	// 100 + 200 + 300 = 600 XP reaches level 4 exactly
	result, err := s.service.AwardXP(s.ctx, s.userID, 600)
	s.Require().NoError(err)

	s.Equal(3, result.LevelsGained)
	s.Equal(4, result.Stats.Level)
	s.Equal(0, result.Stats.CurrentXP)
}

func (s *CharacterServiceSuite) TestAwardXPRecomputesDerived() {
	result, err := s.service.AwardXP(s.ctx, s.userID, 100)
	s.Require().NoError(err)

	s.Equal(2, result.Stats.Level)
	s.Equal(120, result.Stats.MaxHealth)
}

func (s *CharacterServiceSuite) TestAwardXPNoLevel() {
	result, err := s.service.AwardXP(s.ctx, s.userID, 99)
	s.Require().NoError(err)

	s.Equal(0, result.LevelsGained)
	s.Equal(1, result.Stats.Level)
	s.Equal(99, result.Stats.CurrentXP)
	s.False(result.LeveledUp())
}

func (s *CharacterServiceSuite) TestSpendStatPointOnAttribute() {
	stats, err := s.service.SpendStatPoint(s.ctx, s.userID, "dexterity")
	s.Require().NoError(err)

	s.Equal(2, stats.Dexterity)
	s.Equal(1, stats.StatPointsAvailable)
	s.InDelta(0.06, stats.CriticalChance, 1e-9)
}

func (s *CharacterServiceSuite) TestSpendStatPointOnHealth() {
	stats, err := s.service.SpendStatPoint(s.ctx, s.userID, character.SpendTargetHealth)
	s.Require().NoError(err)

	s.Equal(55, stats.MaxHealth)
	s.Equal(55, stats.CurrentHealth)
}

func (s *CharacterServiceSuite) TestSpendStatPointInvalidTarget() {
	_, err := s.service.SpendStatPoint(s.ctx, s.userID, "luck")
	s.True(apperrors.IsInvalidState(err))
}

func (s *CharacterServiceSuite) TestSpendStatPointWithoutPoints() {
	_, err := s.service.SpendStatPoint(s.ctx, s.userID, "strength")
	s.Require().NoError(err)
	_, err = s.service.SpendStatPoint(s.ctx, s.userID, "strength")
	s.Require().NoError(err)

	_, err = s.service.SpendStatPoint(s.ctx, s.userID, "strength")
	s.True(apperrors.IsInsufficientResource(err))
}

func (s *CharacterServiceSuite) TestDistributePoints() {
	stats, err := s.service.DistributePoints(s.ctx, s.userID, map[string]int{
		"strength":  1,
		"dexterity": 1,
	})
	s.Require().NoError(err)

	s.Equal(2, stats.Strength)
	s.Equal(2, stats.Dexterity)
	s.Equal(0, stats.StatPointsAvailable)
}

func (s *CharacterServiceSuite) TestDistributePointsOverspend() {
	_, err := s.service.DistributePoints(s.ctx, s.userID, map[string]int{
		"strength": 3,
	})
	s.True(apperrors.IsInsufficientResource(err))

	// nothing persisted
	stats, err := s.service.GetOrCreateStats(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Equal(1, stats.Strength)
	s.Equal(2, stats.StatPointsAvailable)
}

func (s *CharacterServiceSuite) TestRestore() {
	stats, err := s.service.GetOrCreateStats(s.ctx, s.userID)
	s.Require().NoError(err)
	stats.ApplyDamage(30)
	stats.SpendMana(20)
	s.Require().NoError(s.characterRepo.Update(s.ctx, stats))

	restored, err := s.service.Restore(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Equal(restored.MaxHealth, restored.CurrentHealth)
	s.Equal(restored.MaxMana, restored.CurrentMana)
}

func (s *CharacterServiceSuite) TestUnlockedAbilities() {
	s.Require().NoError(s.catalogRepo.PutAbility(s.ctx, &entities.Ability{ID: "slash", RequiredLevel: 1}))
	s.Require().NoError(s.catalogRepo.PutAbility(s.ctx, &entities.Ability{ID: "fireball", RequiredLevel: 2}))

	unlocked, err := s.service.UnlockedAbilities(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Require().Len(unlocked, 1)
	s.Equal("slash", unlocked[0].ID)

	_, err = s.service.AwardXP(s.ctx, s.userID, 100)
	s.Require().NoError(err)

	unlocked, err = s.service.UnlockedAbilities(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Len(unlocked, 2)
}

func TestCharacterServiceSuite(t *testing.T) {
	suite.Run(t, new(CharacterServiceSuite))
}
