package narrative_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	mockdice "github.com/codequest-rpg/dungeon-engine/internal/dice/mock"
	"github.com/codequest-rpg/dungeon-engine/internal/entities"
	apperrors "github.com/codequest-rpg/dungeon-engine/internal/errors"
	"github.com/codequest-rpg/dungeon-engine/internal/repositories/catalog"
	"github.com/codequest-rpg/dungeon-engine/internal/repositories/characters"
	"github.com/codequest-rpg/dungeon-engine/internal/repositories/inventory"
	"github.com/codequest-rpg/dungeon-engine/internal/repositories/journal"
	narrativeRepo "github.com/codequest-rpg/dungeon-engine/internal/repositories/narrative"
	"github.com/codequest-rpg/dungeon-engine/internal/repositories/wallets"
	"github.com/codequest-rpg/dungeon-engine/internal/services/character"
	"github.com/codequest-rpg/dungeon-engine/internal/services/narrative"
)

type NarrativeServiceSuite struct {
	suite.Suite
	ctx           context.Context
	roller        *mockdice.ManualMockRoller
	characterRepo characters.Repository
	catalogRepo   catalog.Repository
	walletRepo    wallets.Repository
	inventoryRepo inventory.Repository
	journalRepo   journal.Repository
	progressRepo  narrativeRepo.Repository
	service       narrative.Service

	userID string
}

func (s *NarrativeServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.userID = "user-123"
	s.roller = mockdice.NewManualMockRoller()

	s.characterRepo = characters.NewInMemoryRepository()
	s.catalogRepo = catalog.NewInMemoryRepository()
	s.walletRepo = wallets.NewInMemoryRepository()
	s.inventoryRepo = inventory.NewInMemoryRepository()
	s.journalRepo = journal.NewInMemoryRepository()
	s.progressRepo = narrativeRepo.NewInMemoryRepository()

	characterService := character.NewService(&character.ServiceConfig{
		CharacterRepository: s.characterRepo,
		CatalogRepository:   s.catalogRepo,
	})

	s.service = narrative.NewService(&narrative.ServiceConfig{
		CharacterService:    characterService,
		NarrativeRepository: s.progressRepo,
		CatalogRepository:   s.catalogRepo,
		WalletRepository:    s.walletRepo,
		InventoryRepository: s.inventoryRepo,
		JournalRepository:   s.journalRepo,
		Roller:              s.roller,
	})

	s.seedCatalog()
}

func (s *NarrativeServiceSuite) seedCatalog() {
	s.Require().NoError(s.catalogRepo.PutLocation(s.ctx, &entities.NarrativeLocation{
		ID:           "gate",
		FloorNumber:  1,
		Name:         "Gate",
		LocationType: entities.LocationTypeStart,
	}))
	s.Require().NoError(s.catalogRepo.PutLocation(s.ctx, &entities.NarrativeLocation{
		ID:          "hall",
		FloorNumber: 1,
		Name:        "Hall",
	}))

	s.Require().NoError(s.catalogRepo.PutChoice(s.ctx, &entities.NarrativeChoice{
		ID:                 "climb",
		LocationID:         "gate",
		ChoiceText:         "Climb the wall",
		RequiresSkillCheck: true,
		SkillType:          "strength",
		SkillDC:            12,
		DisplayOrder:       1,
	}))
	s.Require().NoError(s.catalogRepo.PutChoice(s.ctx, &entities.NarrativeChoice{
		ID:           "walk",
		LocationID:   "gate",
		ChoiceText:   "Walk through",
		DisplayOrder: 2,
	}))
	s.Require().NoError(s.catalogRepo.PutChoice(s.ctx, &entities.NarrativeChoice{
		ID:           "secret",
		LocationID:   "gate",
		ChoiceText:   "Use the secret door",
		DisplayOrder: 3,
		RequiresFlag: map[string]any{"has_key": true},
	}))
	// choice with no DC configured, resolver defaults to 10
	s.Require().NoError(s.catalogRepo.PutChoice(s.ctx, &entities.NarrativeChoice{
		ID:                 "sneak",
		LocationID:         "hall",
		ChoiceText:         "Sneak past",
		RequiresSkillCheck: true,
		SkillType:          "dexterity",
	}))

	heal := &entities.HealAmount{Amount: 10}
	s.Require().NoError(s.catalogRepo.PutOutcome(s.ctx, &entities.NarrativeOutcome{
		ID:             "climb-success",
		ChoiceID:       "climb",
		OutcomeType:    entities.OutcomeSuccess,
		Description:    "You haul yourself over.",
		NextLocationID: "hall",
		Rewards:        &entities.OutcomeRewards{Gold: 25, XP: 40, Heal: heal, Items: []string{"potion", "unknown-item"}},
		SetsFlags:      map[string]any{"climbed_wall": true},
	}))
	s.Require().NoError(s.catalogRepo.PutOutcome(s.ctx, &entities.NarrativeOutcome{
		ID:          "climb-failure",
		ChoiceID:    "climb",
		OutcomeType: entities.OutcomeFailure,
		Description: "You slip and crash down.",
		Penalties:   &entities.OutcomePenalties{Damage: 10, Gold: 5},
	}))
	s.Require().NoError(s.catalogRepo.PutOutcome(s.ctx, &entities.NarrativeOutcome{
		ID:             "walk-default",
		ChoiceID:       "walk",
		OutcomeType:    entities.OutcomeDefault,
		Description:    "You stroll in.",
		NextLocationID: "hall",
	}))
	s.Require().NoError(s.catalogRepo.PutOutcome(s.ctx, &entities.NarrativeOutcome{
		ID:          "sneak-success",
		ChoiceID:    "sneak",
		OutcomeType: entities.OutcomeSuccess,
		Description: "Unseen, unheard.",
	}))
	s.Require().NoError(s.catalogRepo.PutOutcome(s.ctx, &entities.NarrativeOutcome{
		ID:          "sneak-failure",
		ChoiceID:    "sneak",
		OutcomeType: entities.OutcomeFailure,
		Description: "A guard spots you.",
	}))

	s.Require().NoError(s.catalogRepo.PutConsumable(s.ctx, &entities.ConsumableItem{
		ID:   "potion",
		Name: "Potion",
	}))
}

func (s *NarrativeServiceSuite) check(choiceID string, roll, modifier int, challengeSuccess bool) *narrative.SkillCheckResult {
	result, err := s.service.ResolveSkillCheck(s.ctx, &narrative.SkillCheckInput{
		UserID:           s.userID,
		ChoiceID:         choiceID,
		DiceRoll:         roll,
		StatModifier:     modifier,
		ChallengeSuccess: challengeSuccess,
	})
	s.Require().NoError(err)
	return result
}

func (s *NarrativeServiceSuite) TestStartFloor() {
	progress, err := s.service.StartFloor(s.ctx, s.userID, 1)
	s.Require().NoError(err)

	s.Equal(1, progress.FloorNumber)
	s.Equal("gate", progress.CurrentLocationID)
	s.Contains(progress.VisitedLocations, "gate")
}

func (s *NarrativeServiceSuite) TestStartFloorWithoutStartLocation() {
	_, err := s.service.StartFloor(s.ctx, s.userID, 99)
	s.True(apperrors.IsNotFound(err))
}

func (s *NarrativeServiceSuite) TestChoicesHiddenByMissingFlag() {
	choices, err := s.service.GetLocationChoices(s.ctx, s.userID, "gate")
	s.Require().NoError(err)

	s.Require().Len(choices, 2)
	s.Equal("climb", choices[0].ID)
	s.Equal("walk", choices[1].ID)
}

func (s *NarrativeServiceSuite) TestChoicesVisibleWithFlag() {
	progress, err := s.service.GetProgress(s.ctx, s.userID)
	s.Require().NoError(err)
	progress.MergeFlags(map[string]any{"has_key": true})
	s.Require().NoError(s.progressRepo.Update(s.ctx, progress))

	choices, err := s.service.GetLocationChoices(s.ctx, s.userID, "gate")
	s.Require().NoError(err)
	s.Len(choices, 3)
}

func (s *NarrativeServiceSuite) TestModifierGatedOnChallenge() {
	// 9 + 4 = 13 vs DC 12 passes with the challenge solved
	result := s.check("climb", 9, 4, true)
	s.Equal(4, result.AppliedModifier)
	s.Equal(13, result.TotalRoll)
	s.True(result.CheckPassed)
	s.Equal(entities.OutcomeSuccess, result.OutcomeType)
}

func (s *NarrativeServiceSuite) TestFailedChallengeDropsModifier() {
	// same roll, unsolved challenge: flat 9 vs DC 12 fails
	result := s.check("climb", 9, 4, false)
	s.Equal(0, result.AppliedModifier)
	s.Equal(9, result.TotalRoll)
	s.False(result.CheckPassed)
	s.Equal(entities.OutcomeFailure, result.OutcomeType)
}

func (s *NarrativeServiceSuite) TestNatural20OverridesFailingTotal() {
	// 20 - 15 fails DC 12 numerically, but a natural 20 always crits.
	// With no critical_success row authored, the fallback goes by the
	// failing total, not by the crit: the failure row applies.
	result := s.check("climb", 20, -15, true)
	s.Equal(entities.OutcomeCriticalSuccess, result.OutcomeType)
	s.False(result.CheckPassed)
	s.Equal("climb-failure", result.Outcome.ID)
}

func (s *NarrativeServiceSuite) TestNatural20PassingTotalFallsBackToSuccess() {
	result := s.check("climb", 20, 0, true)
	s.Equal(entities.OutcomeCriticalSuccess, result.OutcomeType)
	s.True(result.CheckPassed)
	s.Equal("climb-success", result.Outcome.ID)
}

func (s *NarrativeServiceSuite) TestNatural1OverridesPassingTotal() {
	// 1 + 19 clears DC 12, the natural 1 still fumbles, and the missing
	// critical_failure row falls back by the passing total
	result := s.check("climb", 1, 19, true)
	s.True(result.CheckPassed)
	s.Equal(entities.OutcomeCriticalFailure, result.OutcomeType)
	s.Equal("climb-success", result.Outcome.ID)
}

func (s *NarrativeServiceSuite) TestNatural1FailingTotalFallsBackToFailure() {
	result := s.check("climb", 1, 0, true)
	s.False(result.CheckPassed)
	s.Equal(entities.OutcomeCriticalFailure, result.OutcomeType)
	s.Equal("climb-failure", result.Outcome.ID)
}

func (s *NarrativeServiceSuite) TestDefaultDCIsTen() {
	result := s.check("sneak", 10, 0, true)
	s.Equal(10, result.DC)
	s.True(result.CheckPassed)

	result = s.check("sneak", 9, 0, true)
	s.False(result.CheckPassed)
}

func (s *NarrativeServiceSuite) TestRewardsAppliedOnFirstSuccess() {
	result := s.check("climb", 15, 0, true)

	s.Equal("hall", result.Progress.CurrentLocationID)
	s.Contains(result.Progress.VisitedLocations, "hall")
	s.Equal(true, result.Progress.StoryFlags["climbed_wall"])

	wallet, err := s.walletRepo.GetOrCreate(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Equal(25, wallet.Gold)

	stats, err := s.characterRepo.GetOrCreate(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Equal(40, stats.CurrentXP)

	items, err := s.inventoryRepo.ListConsumables(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Require().Len(items, 1)
	s.Equal("potion", items[0].ItemID)
	s.Equal(1, items[0].Quantity)
}

func (s *NarrativeServiceSuite) TestRewardsIdempotent() {
	s.check("climb", 15, 0, true)
	s.check("climb", 15, 0, true)

	wallet, err := s.walletRepo.GetOrCreate(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Equal(25, wallet.Gold)

	stats, err := s.characterRepo.GetOrCreate(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Equal(40, stats.CurrentXP)

	items, err := s.inventoryRepo.ListConsumables(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Require().Len(items, 1)
	s.Equal(1, items[0].Quantity)

	progress, err := s.service.GetProgress(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Len(progress.CompletedChoices, 1)
}

func (s *NarrativeServiceSuite) TestPenaltiesUnconditional() {
	wallet, err := s.walletRepo.GetOrCreate(s.ctx, s.userID)
	s.Require().NoError(err)
	wallet.Credit(8)
	s.Require().NoError(s.walletRepo.Update(s.ctx, wallet))

	s.check("climb", 2, 0, true)
	s.check("climb", 2, 0, true)

	stats, err := s.characterRepo.GetOrCreate(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Equal(30, stats.CurrentHealth)

	// two 5-gold penalties against 8 gold floor at zero
	wallet, err = s.walletRepo.GetOrCreate(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Equal(0, wallet.Gold)
}

func (s *NarrativeServiceSuite) TestBookkeepingAndHistory() {
	s.check("climb", 15, 2, true)
	s.check("climb", 2, 0, false)

	progress, err := s.service.GetProgress(s.ctx, s.userID)
	s.Require().NoError(err)
	s.Equal(2, progress.TotalSkillChecks)
	s.Equal(1, progress.SuccessfulSkillChecks)
	s.Equal(2, progress.LastRoll)

	records, err := s.journalRepo.ListSkillChecks(s.ctx, s.userID, 10)
	s.Require().NoError(err)
	s.Require().Len(records, 2)
	// newest first
	s.Equal(2, records[0].DiceRoll)
	s.Equal(15, records[1].DiceRoll)
	s.Equal(17, records[1].TotalRoll)
}

func (s *NarrativeServiceSuite) TestInvalidDiceRoll() {
	_, err := s.service.ResolveSkillCheck(s.ctx, &narrative.SkillCheckInput{
		UserID:   s.userID,
		ChoiceID: "climb",
		DiceRoll: 21,
	})
	s.True(apperrors.IsInvalidArgument(err))
}

func (s *NarrativeServiceSuite) TestUnknownChoice() {
	_, err := s.service.ResolveSkillCheck(s.ctx, &narrative.SkillCheckInput{
		UserID:   s.userID,
		ChoiceID: "nope",
		DiceRoll: 10,
	})
	s.True(apperrors.IsNotFound(err))
}

func (s *NarrativeServiceSuite) TestMakeSimpleChoice() {
	outcome, progress, err := s.service.MakeSimpleChoice(s.ctx, s.userID, "walk")
	s.Require().NoError(err)

	s.Equal("walk-default", outcome.ID)
	s.Equal("hall", progress.CurrentLocationID)
}

func (s *NarrativeServiceSuite) TestMakeSimpleChoiceWithoutDefaultOutcome() {
	_, _, err := s.service.MakeSimpleChoice(s.ctx, s.userID, "climb")
	s.True(apperrors.IsNotFound(err))
}

func (s *NarrativeServiceSuite) TestRollD20Bounds() {
	s.roller.SetRolls([]int{20})
	roll, err := s.service.RollD20(s.ctx)
	s.Require().NoError(err)
	s.Equal(20, roll)
}

func TestNarrativeServiceSuite(t *testing.T) {
	suite.Run(t, new(NarrativeServiceSuite))
}
